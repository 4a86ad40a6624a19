package generate_pdf

import (
	"bytes"
	"context"
	"fmt"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type SeriesSource interface {
	Filtered(p seguimiento.QueryParams) ([]storage.SeriesRecord, deviation.KPISummary, error)
}

type GeneratePDFService struct {
	source SeriesSource
	now    func() time.Time
}

func NewGenerateService(source SeriesSource) *GeneratePDFService {
	return &GeneratePDFService{source: source, now: time.Now}
}

type pdfColumn struct {
	title string
	width float64
}

var columns = []pdfColumn{
	{"Serie", 32},
	{"Modelo", 24},
	{"OF Lateral", 30},
	{"OF Bastidor", 30},
	{"Inicio", 22},
	{"Lat Real", 20},
	{"Lat Desv %", 22},
	{"Bas Real", 20},
	{"Bas Desv %", 22},
	{"Semáforo", 24},
	{"Parcial", 16},
}

var semaphoreRGB = map[deviation.Semaphore][3]int{
	deviation.SemaphoreGreen:  {198, 239, 206},
	deviation.SemaphoreYellow: {255, 235, 156},
	deviation.SemaphoreRed:    {255, 199, 206},
	deviation.SemaphoreGray:   {224, 224, 224},
}

func (g *GeneratePDFService) GeneratePDF(ctx context.Context, p seguimiento.QueryParams) ([]byte, error) {
	const op = "service.generate_pdf.GeneratePDF"

	series, kpis, err := g.source.Filtered(p)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	// core-шрифты в cp1252, акценты переводим из utf-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Seguimiento Estructuras", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("Seguimiento Estructuras: real vs. teórico"), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado %s", g.now().Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(kpiLine(kpis)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeHeader(pdf, tr)

	pdf.SetFont("Arial", "", 8)
	for _, s := range series {
		if pdf.GetY() > 190 {
			pdf.AddPage()
			writeHeader(pdf, tr)
			pdf.SetFont("Arial", "", 8)
		}

		c := deviation.ClassifySeries(s)
		values := []string{
			s.SerieID,
			s.Modelo,
			s.OfLateral,
			s.OfBastidor,
			s.FechaIni,
			hours(s.Lateral),
			percent(c.LateralDesv),
			hours(s.Bastidor),
			percent(c.BastidorDesv),
			c.Semaforo.Label(),
			parcialLabel(s.Parcial),
		}

		for i, v := range values {
			fill := false
			if i == 9 {
				rgb := semaphoreRGB[c.Semaforo]
				pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
				fill = true
			}
			pdf.CellFormat(columns[i].width, 6, tr(v), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(224, 224, 224)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func kpiLine(k deviation.KPISummary) string {
	return fmt.Sprintf("Total: %d | Verdes: %d | Amarillas: %d | Rojas: %d | Sin datos: %d | Parciales: %d",
		k.Total, k.Verdes, k.Amarillas, k.Rojas, k.Grises, k.Parciales)
}

func hours(block *storage.SubAssemblyBlock) string {
	if block == nil || block.Real == nil {
		return "-"
	}
	return strconv.FormatFloat(deviation.RoundDisplay(*block.Real), 'f', 1, 64)
}

func percent(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(deviation.RoundDisplay(*v), 'f', 1, 64) + "%"
}

func parcialLabel(p bool) string {
	if p {
		return "Sí"
	}
	return ""
}
