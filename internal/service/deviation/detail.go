package deviation

import "seguimiento-estructuras/internal/storage"

// ClassifiedSeries серия вместе с рассчитанными отклонениями, то что рисует таблица.
type ClassifiedSeries struct {
	storage.SeriesRecord
	Key              string    `json:"key"`
	LateralDesv      *float64  `json:"lateralDesv"`
	BastidorDesv     *float64  `json:"bastidorDesv"`
	LateralSemaforo  Semaphore `json:"lateralSemaforo"`
	BastidorSemaforo Semaphore `json:"bastidorSemaforo"`
	Semaforo         Semaphore `json:"semaforo"`
}

type OperationRow struct {
	Name        string    `json:"name"`
	Real        *float64  `json:"real"`
	Theoretical *float64  `json:"theoretical"`
	Desv        *float64  `json:"desv"`
	Semaforo    Semaphore `json:"semaforo"`
}

type BlockDetail struct {
	Present     bool           `json:"present"`
	Of          string         `json:"of,omitempty"`
	Real        *float64       `json:"real"`
	Theoretical *float64       `json:"theoretical"`
	Desv        *float64       `json:"desv"`
	Semaforo    Semaphore      `json:"semaforo"`
	NSeries     int            `json:"nSeries"`
	EnvInfo     string         `json:"envInfo,omitempty"`
	Operations  []OperationRow `json:"operations"`
}

type SeriesDetail struct {
	Series   ClassifiedSeries `json:"series"`
	Lateral  BlockDetail      `json:"lateral"`
	Bastidor BlockDetail      `json:"bastidor"`
}

func ClassifySeries(s storage.SeriesRecord) ClassifiedSeries {
	return ClassifiedSeries{
		SeriesRecord:     s,
		Key:              s.Key(),
		LateralDesv:      optional(BlockDeviation(s.Lateral)),
		BastidorDesv:     optional(BlockDeviation(s.Bastidor)),
		LateralSemaforo:  BlockSemaphore(s.Lateral),
		BastidorSemaforo: BlockSemaphore(s.Bastidor),
		Semaforo:         OverallSemaphore(s),
	}
}

func ClassifyAll(series []storage.SeriesRecord) []ClassifiedSeries {
	result := make([]ClassifiedSeries, 0, len(series))
	for _, s := range series {
		result = append(result, ClassifySeries(s))
	}
	return result
}

// OperationDetail детализация по операциям для модального окна серии.
func OperationDetail(s storage.SeriesRecord) SeriesDetail {
	return SeriesDetail{
		Series:   ClassifySeries(s),
		Lateral:  blockDetail(s.Lateral, s.OfLateral, s.NSeriesLat, s.EnvLatInfo),
		Bastidor: blockDetail(s.Bastidor, s.OfBastidor, s.NSeriesBas, s.EnvBasInfo),
	}
}

func blockDetail(block *storage.SubAssemblyBlock, of string, nSeries int, envInfo string) BlockDetail {
	detail := BlockDetail{
		Of:         of,
		NSeries:    nSeries,
		EnvInfo:    envInfo,
		Semaforo:   SemaphoreGray,
		Operations: []OperationRow{},
	}
	if block == nil {
		return detail
	}

	detail.Present = true
	detail.Real = block.Real
	detail.Theoretical = block.Theoretical
	detail.Desv = optional(Deviation(block.Real, block.Theoretical))
	detail.Semaforo = BlockSemaphore(block)

	for _, op := range block.Operations {
		dev, ok := Deviation(op.Real, op.Theoretical)
		detail.Operations = append(detail.Operations, OperationRow{
			Name:        op.Name,
			Real:        op.Real,
			Theoretical: op.Theoretical,
			Desv:        optional(dev, ok),
			Semaforo:    Classify(dev, ok),
		})
	}

	return detail
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Paginate страницы с 1; номер страницы зажимается в допустимый диапазон.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = len(items)
		if pageSize == 0 {
			pageSize = 1
		}
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))

	pageItems := make([]T, 0, end-start)
	pageItems = append(pageItems, items[start:end]...)

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: len(items),
	}
}
