package deviation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"seguimiento-estructuras/internal/storage"
)

func TestDeviation_Undefined(t *testing.T) {
	cases := []struct {
		name string
		real *float64
		theo *float64
	}{
		{"nil theoretical", f(10), nil},
		{"zero theoretical", f(10), f(0)},
		{"nil real", nil, f(10)},
		{"both nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Deviation(tc.real, tc.theo)
			assert.False(t, ok)
			assert.Equal(t, SemaphoreGray, Classify(Deviation(tc.real, tc.theo)))
		})
	}
}

func TestDeviation_Values(t *testing.T) {
	dev, ok := Deviation(f(105), f(100))
	assert.True(t, ok)
	assert.InDelta(t, 5.0, dev, 1e-9)
	assert.Equal(t, SemaphoreGreen, Classify(dev, ok))

	dev, ok = Deviation(f(116), f(100))
	assert.True(t, ok)
	assert.InDelta(t, 16.0, dev, 1e-9)
	assert.Equal(t, SemaphoreRed, Classify(dev, ok))

	dev, ok = Deviation(f(85), f(100))
	assert.True(t, ok)
	assert.InDelta(t, -15.0, dev, 1e-9)
	assert.Equal(t, SemaphoreYellow, Classify(dev, ok))

	// реальные часы 0 это валидное значение, а не "нет данных"
	dev, ok = Deviation(f(0), f(50))
	assert.True(t, ok)
	assert.Equal(t, -100.0, dev)
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, SemaphoreGreen, Classify(0, true))
	assert.Equal(t, SemaphoreGreen, Classify(5, true))
	assert.Equal(t, SemaphoreGreen, Classify(-5, true))
	assert.Equal(t, SemaphoreYellow, Classify(5.0001, true))
	assert.Equal(t, SemaphoreYellow, Classify(15, true))
	assert.Equal(t, SemaphoreYellow, Classify(-15, true))
	assert.Equal(t, SemaphoreRed, Classify(15.0001, true))
	assert.Equal(t, SemaphoreRed, Classify(-40, true))
	assert.Equal(t, SemaphoreGray, Classify(0, false))
}

func TestOverallSemaphore(t *testing.T) {
	cases := []struct {
		name     string
		series   storage.SeriesRecord
		expected Semaphore
	}{
		{"green + absent", serieWith("1", f(102), nil), SemaphoreGreen},
		{"green + gray block", storage.SeriesRecord{Lateral: block(f(102), f(100)), Bastidor: block(nil, f(100))}, SemaphoreGreen},
		{"red + green", serieWith("2", f(130), f(101)), SemaphoreRed},
		{"green + yellow", serieWith("3", f(100), f(110)), SemaphoreYellow},
		{"both absent", storage.SeriesRecord{SerieID: "4"}, SemaphoreGray},
		{"both gray", storage.SeriesRecord{Lateral: block(f(3), f(0)), Bastidor: block(nil, nil)}, SemaphoreGray},
		{"absent + red", serieWith("5", nil, f(50)), SemaphoreRed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OverallSemaphore(tc.series))
		})
	}
}

func TestWorst_TotalOrder(t *testing.T) {
	all := []Semaphore{SemaphoreGray, SemaphoreGreen, SemaphoreYellow, SemaphoreRed}
	for i, a := range all {
		for j, b := range all {
			expected := all[max(i, j)]
			assert.Equal(t, expected, Worst(a, b), "%s vs %s", a, b)
		}
	}
}

func TestParseSemaphore(t *testing.T) {
	s, ok := ParseSemaphore("")
	assert.True(t, ok)
	assert.Equal(t, SemaphoreAll, s)

	s, ok = ParseSemaphore("red")
	assert.True(t, ok)
	assert.Equal(t, SemaphoreRed, s)

	_, ok = ParseSemaphore("purple")
	assert.False(t, ok)
}

func TestRoundDisplay(t *testing.T) {
	assert.Equal(t, 12.3, RoundDisplay(12.34))
	assert.Equal(t, -4.6, RoundDisplay(-4.56))
	assert.Equal(t, 5.0, RoundDisplay(5))
}
