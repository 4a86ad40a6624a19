package generate_excel

import (
	"context"
	"fmt"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage"

	"github.com/xuri/excelize/v2"
)

type SeriesSource interface {
	Filtered(p seguimiento.QueryParams) ([]storage.SeriesRecord, deviation.KPISummary, error)
}

type GenerateExcelService struct {
	source SeriesSource
}

func NewGenerateService(source SeriesSource) *GenerateExcelService {
	return &GenerateExcelService{source: source}
}

const (
	sheetSeries  = "Seguimiento"
	sheetSummary = "Resumen"
)

var headers = []string{
	"Serie", "Modelo", "OF Lateral", "OF Bastidor", "Fecha Inicio", "Fecha Fin",
	"Lat Real", "Lat Teórico", "Lat Desv %", "Bas Real", "Bas Teórico", "Bas Desv %",
	"Semáforo", "Parcial",
}

// цвет заливки ячейки "Semáforo"
var semaphoreFill = map[deviation.Semaphore]string{
	deviation.SemaphoreGreen:  "C6EFCE",
	deviation.SemaphoreYellow: "FFEB9C",
	deviation.SemaphoreRed:    "FFC7CE",
	deviation.SemaphoreGray:   "E0E0E0",
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, p seguimiento.QueryParams) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	series, kpis, err := g.source.Filtered(p)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSeriesSheet(f, series); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := writeSummarySheet(f, kpis); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeSeriesSheet(f *excelize.File, series []storage.SeriesRecord) error {
	if err := f.SetSheetName("Sheet1", sheetSeries); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return err
	}

	semStyles := make(map[deviation.Semaphore]int, len(semaphoreFill))
	for sem, color := range semaphoreFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		semStyles[sem] = style
	}

	for i, name := range headers {
		f.SetCellValue(sheetSeries, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheetSeries, "A1", cellName(len(headers), 1), headerStyle)

	for rowIdx, s := range series {
		row := rowIdx + 2
		c := deviation.ClassifySeries(s)

		values := []interface{}{
			s.SerieID,
			s.Modelo,
			s.OfLateral,
			s.OfBastidor,
			s.FechaIni,
			s.FechaFin,
			blockValue(s.Lateral, true),
			blockValue(s.Lateral, false),
			rounded(c.LateralDesv),
			blockValue(s.Bastidor, true),
			blockValue(s.Bastidor, false),
			rounded(c.BastidorDesv),
			c.Semaforo.Label(),
			parcialLabel(s.Parcial),
		}

		for col, v := range values {
			f.SetCellValue(sheetSeries, cellName(col+1, row), v)
		}

		semCell := cellName(13, row)
		f.SetCellStyle(sheetSeries, semCell, semCell, semStyles[c.Semaforo])
	}

	f.SetPanes(sheetSeries, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	f.SetColWidth(sheetSeries, "A", "F", 15)
	f.SetColWidth(sheetSeries, "G", "N", 12)

	return nil
}

func writeSummarySheet(f *excelize.File, kpis deviation.KPISummary) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Total", kpis.Total},
		{"Verdes", kpis.Verdes},
		{"Amarillas", kpis.Amarillas},
		{"Rojas", kpis.Rojas},
		{"Sin datos", kpis.Grises},
		{"Parciales", kpis.Parciales},
	}

	for i, r := range rows {
		f.SetCellValue(sheetSummary, cellName(1, i+1), r[0])
		f.SetCellValue(sheetSummary, cellName(2, i+1), r[1])
	}

	f.SetColWidth(sheetSummary, "A", "A", 15)
	return nil
}

// blockValue real или теоретические часы блока; пустая ячейка если нет данных.
func blockValue(block *storage.SubAssemblyBlock, wantReal bool) interface{} {
	if block == nil {
		return ""
	}
	v := block.Theoretical
	if wantReal {
		v = block.Real
	}
	if v == nil {
		return ""
	}
	return deviation.RoundDisplay(*v)
}

func rounded(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return deviation.RoundDisplay(*v)
}

func parcialLabel(p bool) string {
	if p {
		return "Sí"
	}
	return "No"
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
