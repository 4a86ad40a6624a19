package deviation

import "seguimiento-estructuras/internal/storage"

func f(v float64) *float64 {
	return &v
}

func block(real, theo *float64) *storage.SubAssemblyBlock {
	return &storage.SubAssemblyBlock{Real: real, Theoretical: theo}
}

// serieWith серия, у которой lateral даёт нужное отклонение относительно 100 часов.
func serieWith(id string, latReal *float64, basReal *float64) storage.SeriesRecord {
	s := storage.SeriesRecord{SerieID: id, Modelo: "M1"}
	if latReal != nil {
		s.Lateral = block(latReal, f(100))
	}
	if basReal != nil {
		s.Bastidor = block(basReal, f(100))
	}
	return s
}

func ids(series []storage.SeriesRecord) []string {
	out := make([]string, 0, len(series))
	for _, s := range series {
		out = append(out, s.SerieID)
	}
	return out
}
