package etl

import (
	"context"
	"fmt"
	"io"
	"seguimiento-estructuras/internal/storage"

	"golang.org/x/sync/errgroup"
)

type Result struct {
	Series  []storage.SeriesRecord
	Summary storage.LoadSummary
}

// ofHours фичажи одной OF, агрегированные по операциям в порядке первого появления.
type ofHours struct {
	operations []string
	real       map[string]float64
	hasReal    map[string]bool
	theo       map[string]float64
	hasTheo    map[string]bool
}

// Process разбирает оба файла параллельно и соединяет их в серии.
func Process(ctx context.Context, planning, fichajes io.Reader) (*Result, error) {
	const op = "service.etl.Process"

	var (
		planSheet *PlanningSheet
		fichRows  []FichajeRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		planSheet, err = ParsePlanning(planning)
		if err != nil {
			return fmt.Errorf("planificacion: %w", err)
		}
		return gCtx.Err()
	})
	g.Go(func() error {
		var err error
		fichRows, err = ParseFichajes(fichajes)
		if err != nil {
			return fmt.Errorf("fichajes: %w", err)
		}
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Join(planSheet, fichRows), nil
}

// Join соединяет строки планирования с фичажами по OF.
// Часы OF делятся на количество серий этой OF; строка без фичажей ни по одной OF пропускается.
func Join(planning *PlanningSheet, fichajes []FichajeRow) *Result {
	byOf := aggregateFichajes(fichajes)

	nSeries := make(map[string]int)
	delivered := make(map[string]int)
	for _, row := range planning.Rows {
		if row.Serie == "" {
			continue
		}
		for _, of := range uniqueOfs(row) {
			nSeries[of]++
			if row.Enviada {
				delivered[of]++
			}
		}
	}

	result := &Result{Series: []storage.SeriesRecord{}}

	for _, row := range planning.Rows {
		if row.Serie == "" {
			continue
		}
		result.Summary.Total++

		latHours := lookup(byOf, row.OfLateral)
		basHours := lookup(byOf, row.OfBastidor)
		if latHours == nil && basHours == nil {
			result.Summary.Skipped++
			continue
		}

		s := storage.SeriesRecord{
			SerieID:    row.Serie,
			Modelo:     row.Modelo,
			OfLateral:  row.OfLateral,
			OfBastidor: row.OfBastidor,
			FechaIni:   row.FechaIni,
			FechaFin:   row.FechaFin,
			NSeriesLat: nSeries[row.OfLateral],
			NSeriesBas: nSeries[row.OfBastidor],
		}
		if s.FechaFin == "" {
			s.FechaFin = s.FechaIni
		}
		if row.OfLateral == "" {
			s.NSeriesLat = 0
		}
		if row.OfBastidor == "" {
			s.NSeriesBas = 0
		}

		if latHours != nil {
			s.Lateral = buildBlock(latHours, s.NSeriesLat)
		}
		if basHours != nil {
			s.Bastidor = buildBlock(basHours, s.NSeriesBas)
		}

		if planning.HasEnviada {
			if row.OfLateral != "" {
				s.EnvLatInfo = fmt.Sprintf("%d/%d enviadas", delivered[row.OfLateral], s.NSeriesLat)
				s.Parcial = s.Parcial || delivered[row.OfLateral] < s.NSeriesLat
			}
			if row.OfBastidor != "" {
				s.EnvBasInfo = fmt.Sprintf("%d/%d enviadas", delivered[row.OfBastidor], s.NSeriesBas)
				s.Parcial = s.Parcial || delivered[row.OfBastidor] < s.NSeriesBas
			}
		}

		result.Series = append(result.Series, s)
		result.Summary.Processed++
	}

	return result
}

func aggregateFichajes(rows []FichajeRow) map[string]*ofHours {
	byOf := make(map[string]*ofHours)

	for _, r := range rows {
		if r.Of == "" || r.Operacion == "" {
			continue
		}

		h, ok := byOf[r.Of]
		if !ok {
			h = &ofHours{
				real:    make(map[string]float64),
				hasReal: make(map[string]bool),
				theo:    make(map[string]float64),
				hasTheo: make(map[string]bool),
			}
			byOf[r.Of] = h
		}

		if !contains(h.operations, r.Operacion) {
			h.operations = append(h.operations, r.Operacion)
		}

		if r.Horas != nil {
			h.real[r.Operacion] += *r.Horas
			h.hasReal[r.Operacion] = true
		}

		// стандарт задан на единицу, берём максимум из заполненных
		if r.HorasTeoricas != nil && (!h.hasTheo[r.Operacion] || *r.HorasTeoricas > h.theo[r.Operacion]) {
			h.theo[r.Operacion] = *r.HorasTeoricas
			h.hasTheo[r.Operacion] = true
		}
	}

	return byOf
}

func buildBlock(h *ofHours, nSeries int) *storage.SubAssemblyBlock {
	block := &storage.SubAssemblyBlock{Operations: []storage.OperationRecord{}}

	var totalReal, totalTheo float64
	var hasReal, hasTheo bool

	for _, name := range h.operations {
		rec := storage.OperationRecord{Name: name}

		if h.hasReal[name] && nSeries > 0 {
			v := h.real[name] / float64(nSeries)
			rec.Real = &v
			totalReal += v
			hasReal = true
		}

		if h.hasTheo[name] {
			v := h.theo[name]
			rec.Theoretical = &v
			totalTheo += v
			hasTheo = true
		}

		block.Operations = append(block.Operations, rec)
	}

	if hasReal {
		block.Real = &totalReal
	}
	if hasTheo {
		block.Theoretical = &totalTheo
	}

	return block
}

func lookup(byOf map[string]*ofHours, of string) *ofHours {
	if of == "" {
		return nil
	}
	return byOf[of]
}

func uniqueOfs(row PlanningRow) []string {
	var ofs []string
	if row.OfLateral != "" {
		ofs = append(ofs, row.OfLateral)
	}
	if row.OfBastidor != "" && row.OfBastidor != row.OfLateral {
		ofs = append(ofs, row.OfBastidor)
	}
	return ofs
}

func contains(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
