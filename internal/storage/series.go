package storage

import (
	"errors"
	"time"
)

var ErrLoadNotFound = errors.New("load not found")

// OperationRecord одна операция внутри сборки (lateral/bastidor).
// Real и Theoretical независимо могут отсутствовать.
type OperationRecord struct {
	Name        string   `json:"name"`
	Real        *float64 `json:"real"`
	Theoretical *float64 `json:"theoretical"`
}

type SubAssemblyBlock struct {
	Real        *float64          `json:"real"`
	Theoretical *float64          `json:"theoretical"`
	Operations  []OperationRecord `json:"operations"`
}

// SeriesRecord единица классификации: одна серия (изделие) с часами по двум сборкам.
type SeriesRecord struct {
	SerieID    string            `json:"serieId"`
	Modelo     string            `json:"modelo"`
	OfLateral  string            `json:"ofLateral,omitempty"`
	OfBastidor string            `json:"ofBastidor,omitempty"`
	FechaIni   string            `json:"fechaIni,omitempty"`
	FechaFin   string            `json:"fechaFin,omitempty"`
	Lateral    *SubAssemblyBlock `json:"lateral,omitempty"`
	Bastidor   *SubAssemblyBlock `json:"bastidor,omitempty"`
	Parcial    bool              `json:"parcial"`
	NSeriesLat int               `json:"nSeriesLat"`
	NSeriesBas int               `json:"nSeriesBas"`
	EnvLatInfo string            `json:"envLatInfo,omitempty"`
	EnvBasInfo string            `json:"envBasInfo,omitempty"`
}

// Key ключ идентичности для списка: serieId сам по себе может повторяться под двумя OF.
func (s SeriesRecord) Key() string {
	return s.SerieID + "|" + s.OfLateral + "|" + s.OfBastidor
}

// LoadSummary счётчики ETL, показываются пользователю как есть.
type LoadSummary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

type Load struct {
	ID           string      `json:"id"`
	PlanningFile string      `json:"planning_file"`
	FichajesFile string      `json:"fichajes_file"`
	Summary      LoadSummary `json:"summary"`
	CreatedAt    time.Time   `json:"created_at"`
}
