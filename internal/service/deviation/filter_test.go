package deviation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"seguimiento-estructuras/internal/storage"
)

func fixtureSeries() []storage.SeriesRecord {
	return []storage.SeriesRecord{
		{SerieID: "S-001", Modelo: "T200", OfLateral: "OF123", FechaIni: "2025-03-01", Lateral: block(f(104), f(100))},
		{SerieID: "S-002", Modelo: "T300", OfBastidor: "OF123-A", FechaIni: "2025-03-10", Bastidor: block(f(120), f(100))},
		{SerieID: "s-003", Modelo: "T200", OfLateral: "of999", Lateral: block(f(110), f(100))},
		{SerieID: "S-004", Modelo: "t200", OfLateral: "OF555", FechaIni: "2025-04-02"},
	}
}

func TestFilterSeries_DefaultsReturnAll(t *testing.T) {
	all := fixtureSeries()

	result := FilterSeries(all, DefaultFilters())
	assert.Equal(t, all, result)

	result = FilterSeries(all, Filters{})
	assert.Equal(t, all, result)
}

func TestFilterSeries_Modelo_CaseSensitive(t *testing.T) {
	result := FilterSeries(fixtureSeries(), Filters{Modelo: "T200", Semaforo: SemaphoreAll})
	assert.Equal(t, []string{"S-001", "s-003"}, ids(result))
}

func TestFilterSeries_Semaforo(t *testing.T) {
	all := fixtureSeries()

	assert.Equal(t, []string{"S-001"}, ids(FilterSeries(all, Filters{Semaforo: SemaphoreGreen})))
	assert.Equal(t, []string{"S-002"}, ids(FilterSeries(all, Filters{Semaforo: SemaphoreRed})))
	assert.Equal(t, []string{"s-003"}, ids(FilterSeries(all, Filters{Semaforo: SemaphoreYellow})))
	assert.Equal(t, []string{"S-004"}, ids(FilterSeries(all, Filters{Semaforo: SemaphoreGray})))
}

func TestFilterSeries_Texto_Substring(t *testing.T) {
	all := fixtureSeries()

	// подстрока, а не точное совпадение: OF123 находит и OF123, и OF123-A
	result := FilterSeries(all, Filters{Texto: "OF123"})
	assert.Equal(t, []string{"S-001", "S-002"}, ids(result))

	// регистр не важен
	result = FilterSeries(all, Filters{Texto: "OF999"})
	assert.Equal(t, []string{"s-003"}, ids(result))

	result = FilterSeries(all, Filters{Texto: "S-00"})
	assert.Len(t, result, 4)

	result = FilterSeries(all, Filters{Texto: "nothing"})
	assert.Empty(t, result)
}

func TestFilterSeries_DateRange(t *testing.T) {
	all := fixtureSeries()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// границы включительно, серия без fechaIni отсекается
	result := FilterSeries(all, Filters{FechaDesde: &from, FechaHasta: &to})
	assert.Equal(t, []string{"S-001", "S-002"}, ids(result))

	result = FilterSeries(all, Filters{FechaDesde: &to})
	assert.Equal(t, []string{"S-002", "S-004"}, ids(result))

	result = FilterSeries(all, Filters{FechaHasta: &from})
	assert.Equal(t, []string{"S-001"}, ids(result))
}

func TestFilterSeries_CombinedAnd(t *testing.T) {
	all := fixtureSeries()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	result := FilterSeries(all, Filters{Modelo: "T200", Texto: "of", FechaDesde: &from, Semaforo: SemaphoreGreen})
	assert.Equal(t, []string{"S-001"}, ids(result))
}

func TestFilterSeries_DoesNotMutateInput(t *testing.T) {
	all := fixtureSeries()
	before := fixtureSeries()

	_ = FilterSeries(all, Filters{Semaforo: SemaphoreRed})
	assert.Equal(t, before, all)
}
