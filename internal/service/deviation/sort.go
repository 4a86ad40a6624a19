package deviation

import (
	"cmp"
	"slices"

	"seguimiento-estructuras/internal/storage"
)

type SortColumn string

const (
	SortSerie        SortColumn = "serie"
	SortModelo       SortColumn = "modelo"
	SortFechaIni     SortColumn = "fechaIni"
	SortLateralReal  SortColumn = "lateralReal"
	SortBastidorReal SortColumn = "bastidorReal"
	SortLateralDesv  SortColumn = "lateralDesv"
	SortBastidorDesv SortColumn = "bastidorDesv"
	SortSemaforo     SortColumn = "semaforo"
)

func ParseSortColumn(v string) (SortColumn, bool) {
	switch c := SortColumn(v); c {
	case SortSerie, SortModelo, SortFechaIni, SortLateralReal, SortBastidorReal,
		SortLateralDesv, SortBastidorDesv, SortSemaforo:
		return c, true
	default:
		return "", false
	}
}

// SortSeries стабильная сортировка в новый срез. Пустые ключи всегда в конце,
// направление меняет только порядок среди заданных значений.
// Для semaforo ascending означает "худшие первыми".
func SortSeries(series []storage.SeriesRecord, column SortColumn, ascending bool) []storage.SeriesRecord {
	result := slices.Clone(series)
	if result == nil {
		result = []storage.SeriesRecord{}
	}

	var compare func(a, b storage.SeriesRecord) int

	switch column {
	case SortSerie:
		compare = func(a, b storage.SeriesRecord) int {
			return compareOptional(a.SerieID, true, b.SerieID, true, ascending)
		}
	case SortModelo:
		compare = func(a, b storage.SeriesRecord) int {
			return compareOptional(a.Modelo, true, b.Modelo, true, ascending)
		}
	case SortFechaIni:
		compare = func(a, b storage.SeriesRecord) int {
			ak, aok := normalizeDate(a.FechaIni)
			bk, bok := normalizeDate(b.FechaIni)
			return compareOptional(ak, aok, bk, bok, ascending)
		}
	case SortLateralReal:
		compare = byFloat(func(s storage.SeriesRecord) (float64, bool) { return blockReal(s.Lateral) }, ascending)
	case SortBastidorReal:
		compare = byFloat(func(s storage.SeriesRecord) (float64, bool) { return blockReal(s.Bastidor) }, ascending)
	case SortLateralDesv:
		compare = byFloat(func(s storage.SeriesRecord) (float64, bool) { return BlockDeviation(s.Lateral) }, ascending)
	case SortBastidorDesv:
		compare = byFloat(func(s storage.SeriesRecord) (float64, bool) { return BlockDeviation(s.Bastidor) }, ascending)
	case SortSemaforo:
		compare = func(a, b storage.SeriesRecord) int {
			// больше severity = раньше при ascending
			return compareOptional(-OverallSemaphore(a).Severity(), true, -OverallSemaphore(b).Severity(), true, ascending)
		}
	default:
		return result
	}

	slices.SortStableFunc(result, compare)
	return result
}

func byFloat(key func(storage.SeriesRecord) (float64, bool), ascending bool) func(a, b storage.SeriesRecord) int {
	return func(a, b storage.SeriesRecord) int {
		av, aok := key(a)
		bv, bok := key(b)
		return compareOptional(av, aok, bv, bok, ascending)
	}
}

func compareOptional[T cmp.Ordered](a T, aok bool, b T, bok bool, ascending bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	c := cmp.Compare(a, b)
	if !ascending {
		c = -c
	}
	return c
}

func blockReal(block *storage.SubAssemblyBlock) (float64, bool) {
	if block == nil || block.Real == nil {
		return 0, false
	}
	return *block.Real, true
}
