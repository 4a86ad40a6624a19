package deviation

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"seguimiento-estructuras/internal/storage"
)

const DateLayout = "2006-01-02"

// Filters состояние фильтров UI. Нулевое значение (или Semaforo=todos) ничего не отсекает.
type Filters struct {
	Modelo     string
	Semaforo   Semaphore
	Texto      string
	FechaDesde *time.Time
	FechaHasta *time.Time
}

func DefaultFilters() Filters {
	return Filters{Semaforo: SemaphoreAll}
}

// FilterSeries возвращает новый срез с сериями, прошедшими все заданные предикаты (AND).
// Порядок входа сохраняется.
func FilterSeries(all []storage.SeriesRecord, f Filters) []storage.SeriesRecord {
	folder := cases.Fold()
	texto := ""
	if f.Texto != "" {
		texto = folder.String(f.Texto)
	}

	desde := dateKey(f.FechaDesde)
	hasta := dateKey(f.FechaHasta)

	result := make([]storage.SeriesRecord, 0, len(all))
	for _, s := range all {
		if f.Modelo != "" && s.Modelo != f.Modelo {
			continue
		}

		if f.Semaforo != "" && f.Semaforo != SemaphoreAll && OverallSemaphore(s) != f.Semaforo {
			continue
		}

		if texto != "" && !matchesText(folder, s, texto) {
			continue
		}

		if desde != "" || hasta != "" {
			ini, ok := normalizeDate(s.FechaIni)
			if !ok {
				continue
			}
			if desde != "" && ini < desde {
				continue
			}
			if hasta != "" && ini > hasta {
				continue
			}
		}

		result = append(result, s)
	}

	return result
}

func matchesText(folder cases.Caser, s storage.SeriesRecord, texto string) bool {
	for _, field := range []string{s.SerieID, s.OfLateral, s.OfBastidor} {
		if field == "" {
			continue
		}
		if strings.Contains(folder.String(field), texto) {
			return true
		}
	}
	return false
}

func dateKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// normalizeDate приводит fechaIni к ISO; ISO-строки сравниваются лексикографически.
func normalizeDate(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}
