package generate_pdf

import (
	"bytes"
	"context"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSeriesSource struct {
	mock.Mock
}

func (m *MockSeriesSource) Filtered(p seguimiento.QueryParams) ([]storage.SeriesRecord, deviation.KPISummary, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, deviation.KPISummary{}, args.Error(2)
	}
	return args.Get(0).([]storage.SeriesRecord), args.Get(1).(deviation.KPISummary), args.Error(2)
}

func TestGeneratePDF(t *testing.T) {
	realH, theo := 12.0, 10.0

	var series []storage.SeriesRecord
	// достаточно строк, чтобы таблица ушла на вторую страницу
	for i := 0; i < 60; i++ {
		series = append(series, storage.SeriesRecord{
			SerieID:  "S-" + string(rune('A'+i%26)),
			Modelo:   "Camión",
			Lateral:  &storage.SubAssemblyBlock{Real: &realH, Theoretical: &theo},
			Parcial:  i%2 == 0,
			FechaIni: "2025-03-01",
		})
	}

	src := new(MockSeriesSource)
	src.On("Filtered", mock.Anything).Return(series, deviation.ComputeKPIs(series), nil)

	out, err := NewGenerateService(src).GeneratePDF(context.Background(), seguimiento.QueryParams{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	src.AssertExpectations(t)
}

func TestGeneratePDF_Canceled(t *testing.T) {
	src := new(MockSeriesSource)
	src.On("Filtered", mock.Anything).Return([]storage.SeriesRecord{}, deviation.KPISummary{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerateService(src).GeneratePDF(ctx, seguimiento.QueryParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatting(t *testing.T) {
	v := 12.345
	assert.Equal(t, "12.3%", percent(&v))
	assert.Equal(t, "-", percent(nil))
	assert.Equal(t, "-", hours(nil))
	assert.Equal(t, "Total: 1 | Verdes: 1 | Amarillas: 0 | Rojas: 0 | Sin datos: 0 | Parciales: 0",
		kpiLine(deviation.KPISummary{Total: 1, Verdes: 1}))
}
