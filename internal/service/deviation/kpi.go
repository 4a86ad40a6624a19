package deviation

import "seguimiento-estructuras/internal/storage"

type KPISummary struct {
	Total     int `json:"total"`
	Verdes    int `json:"verdes"`
	Amarillas int `json:"amarillas"`
	Rojas     int `json:"rojas"`
	Grises    int `json:"grises"`
	Parciales int `json:"parciales"`
}

// ComputeKPIs один проход: цвет по OverallSemaphore, parcial считается независимо от цвета.
func ComputeKPIs(series []storage.SeriesRecord) KPISummary {
	kpi := KPISummary{Total: len(series)}

	for _, s := range series {
		switch OverallSemaphore(s) {
		case SemaphoreGreen:
			kpi.Verdes++
		case SemaphoreYellow:
			kpi.Amarillas++
		case SemaphoreRed:
			kpi.Rojas++
		default:
			kpi.Grises++
		}

		if s.Parcial {
			kpi.Parciales++
		}
	}

	return kpi
}

// UniqueModels различные modelo по полной (нефильтрованной) коллекции в порядке первого появления.
func UniqueModels(series []storage.SeriesRecord) []string {
	seen := make(map[string]bool, len(series))
	models := []string{}

	for _, s := range series {
		if s.Modelo == "" || seen[s.Modelo] {
			continue
		}
		seen[s.Modelo] = true
		models = append(models, s.Modelo)
	}

	return models
}
