package deviation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seguimiento-estructuras/internal/storage"
)

func TestOperationDetail(t *testing.T) {
	s := storage.SeriesRecord{
		SerieID:    "S-10",
		OfLateral:  "OF-L1",
		NSeriesLat: 3,
		EnvLatInfo: "2/3 enviadas",
		Lateral: &storage.SubAssemblyBlock{
			Real:        f(22),
			Theoretical: f(20),
			Operations: []storage.OperationRecord{
				{Name: "Corte", Real: f(10), Theoretical: f(10)},
				{Name: "Soldadura", Real: f(12), Theoretical: f(10)},
				{Name: "Pintura", Real: f(1)},
			},
		},
	}

	detail := OperationDetail(s)

	assert.Equal(t, "S-10|OF-L1|", detail.Series.Key)
	assert.Equal(t, SemaphoreYellow, detail.Series.Semaforo)

	require.True(t, detail.Lateral.Present)
	assert.Equal(t, "OF-L1", detail.Lateral.Of)
	assert.Equal(t, 3, detail.Lateral.NSeries)
	require.NotNil(t, detail.Lateral.Desv)
	assert.InDelta(t, 10.0, *detail.Lateral.Desv, 1e-9)

	require.Len(t, detail.Lateral.Operations, 3)
	assert.Equal(t, "Corte", detail.Lateral.Operations[0].Name)
	assert.Equal(t, SemaphoreGreen, detail.Lateral.Operations[0].Semaforo)
	assert.Equal(t, SemaphoreRed, detail.Lateral.Operations[1].Semaforo)
	assert.Nil(t, detail.Lateral.Operations[2].Desv)
	assert.Equal(t, SemaphoreGray, detail.Lateral.Operations[2].Semaforo)

	assert.False(t, detail.Bastidor.Present)
	assert.Equal(t, SemaphoreGray, detail.Bastidor.Semaforo)
	assert.Empty(t, detail.Bastidor.Operations)
}

func TestClassifySeries(t *testing.T) {
	c := ClassifySeries(serieWith("x", f(95), f(130)))

	require.NotNil(t, c.LateralDesv)
	assert.InDelta(t, -5.0, *c.LateralDesv, 1e-9)
	assert.Equal(t, SemaphoreGreen, c.LateralSemaforo)
	assert.Equal(t, SemaphoreRed, c.BastidorSemaforo)
	assert.Equal(t, SemaphoreRed, c.Semaforo)

	c = ClassifySeries(serieWith("y", nil, nil))
	assert.Nil(t, c.LateralDesv)
	assert.Nil(t, c.BastidorDesv)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 5, p.TotalItems)

	p = Paginate(items, 10, 2)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, []int{5}, p.Items)

	p = Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, p.Items, 5)

	empty := Paginate([]int{}, 1, 25)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
}
