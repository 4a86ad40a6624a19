package etl

import (
	"errors"
	"fmt"
	"io"
	"seguimiento-estructuras/internal/constants"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptySheet      = errors.New("sheet has no data rows")
	ErrMissingColumn   = errors.New("required column not found")
	ErrInvalidWorkbook = errors.New("file is not an xlsx workbook")
)

// сколько верхних строк просматриваем в поисках заголовка (над ним бывает шапка отчёта)
const headerScanRows = 10

type PlanningRow struct {
	Serie      string
	Modelo     string
	OfLateral  string
	OfBastidor string
	FechaIni   string
	FechaFin   string
	Enviada    bool
}

type PlanningSheet struct {
	Rows       []PlanningRow
	HasEnviada bool
}

type FichajeRow struct {
	Of            string
	Operacion     string
	Horas         *float64
	HorasTeoricas *float64
}

type column struct {
	name    string
	aliases map[string]bool
}

// ParsePlanning читает первый лист файла планирования.
func ParsePlanning(r io.Reader) (*PlanningSheet, error) {
	const op = "service.etl.ParsePlanning"

	rows, err := readFirstSheet(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cols := []column{
		{"Serie", constants.ColSerie},
		{"Modelo", constants.ColModelo},
		{"OF Lateral", constants.ColOfLateral},
		{"OF Bastidor", constants.ColOfBastidor},
		{"Fecha Inicio", constants.ColFechaIni},
		{"Fecha Fin", constants.ColFechaFin},
		{"Enviada", constants.ColEnviada},
	}

	headerIdx, idx := locateHeader(rows, cols, constants.ColSerie)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w: Serie", op, ErrMissingColumn)
	}

	for _, required := range []string{"Serie", "Modelo"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrMissingColumn, required)
		}
	}

	_, hasLat := idx["OF Lateral"]
	_, hasBas := idx["OF Bastidor"]
	if !hasLat && !hasBas {
		return nil, fmt.Errorf("%s: %w: OF Lateral / OF Bastidor", op, ErrMissingColumn)
	}

	_, hasEnviada := idx["Enviada"]
	sheet := &PlanningSheet{HasEnviada: hasEnviada}

	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}

		sheet.Rows = append(sheet.Rows, PlanningRow{
			Serie:      cell(row, idx, "Serie"),
			Modelo:     cell(row, idx, "Modelo"),
			OfLateral:  cell(row, idx, "OF Lateral"),
			OfBastidor: cell(row, idx, "OF Bastidor"),
			FechaIni:   ParseDate(cell(row, idx, "Fecha Inicio")),
			FechaFin:   ParseDate(cell(row, idx, "Fecha Fin")),
			Enviada:    constants.TrueValues[NormalizeHeader(cell(row, idx, "Enviada"))],
		})
	}

	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySheet)
	}

	return sheet, nil
}

// ParseFichajes читает первый лист выгрузки фичажей (учёт рабочего времени по OF).
func ParseFichajes(r io.Reader) ([]FichajeRow, error) {
	const op = "service.etl.ParseFichajes"

	rows, err := readFirstSheet(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cols := []column{
		{"OF", constants.ColOf},
		{"Operacion", constants.ColOperacion},
		{"Horas", constants.ColHoras},
		{"Horas Teoricas", constants.ColHorasTeoricas},
	}

	headerIdx, idx := locateHeader(rows, cols, constants.ColOf)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w: OF", op, ErrMissingColumn)
	}

	for _, required := range []string{"Operacion", "Horas"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrMissingColumn, required)
		}
	}

	var result []FichajeRow
	for _, row := range rows[headerIdx+1:] {
		if isBlank(row) {
			continue
		}

		result = append(result, FichajeRow{
			Of:            cell(row, idx, "OF"),
			Operacion:     cell(row, idx, "Operacion"),
			Horas:         ParseHours(cell(row, idx, "Horas")),
			HorasTeoricas: ParseHours(cell(row, idx, "Horas Teoricas")),
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySheet)
	}

	return result, nil
}

func readFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// locateHeader ищет строку заголовка по ключевой колонке и возвращает индексы известных колонок.
func locateHeader(rows [][]string, cols []column, key map[string]bool) (int, map[string]int) {
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		found := false
		for _, v := range rows[i] {
			if key[NormalizeHeader(v)] {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		idx := make(map[string]int)
		for pos, v := range rows[i] {
			h := NormalizeHeader(v)
			for _, c := range cols {
				if _, taken := idx[c.name]; !taken && c.aliases[h] {
					idx[c.name] = pos
					break
				}
			}
		}
		return i, idx
	}

	return -1, nil
}

func cell(row []string, idx map[string]int, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader нижний регистр, без диакритики, разделители схлопнуты в один пробел.
func NormalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	out = strings.ToLower(out)
	out = strings.Map(func(r rune) rune {
		switch r {
		case '_', '.', '-', '/', 'º', '°', '(', ')', ':':
			return ' '
		}
		return r
	}, out)

	return strings.Join(strings.Fields(out), " ")
}

// ParseHours пустое или нечисловое значение = нет данных.
// Десятичный разделитель тот, что стоит последним ("1.234,5" и "1,234.5" = 1234.5).
// Одиночная запятая десятичная, одиночная точка тоже ("1.234" = 1.234, как отдаёт Excel).
// Повторяющийся разделитель считается разделителем тысяч ("1.234.567").
func ParseHours(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	dot, comma := strings.LastIndex(v, "."), strings.LastIndex(v, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		} else {
			v = strings.ReplaceAll(v, ",", "")
		}
	case comma >= 0:
		if strings.Count(v, ",") > 1 {
			v = strings.ReplaceAll(v, ",", "")
		} else {
			v = strings.ReplaceAll(v, ",", ".")
		}
	case dot >= 0 && strings.Count(v, ".") > 1:
		v = strings.ReplaceAll(v, ".", "")
	}

	h, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &h
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"01-02-06", // формат excelize по умолчанию (numFmt 14)
	"1-2-06",
}

// ParseDate возвращает дату в ISO или пустую строку, если разобрать не удалось.
func ParseDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}

	// серийный номер даты Excel
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}
