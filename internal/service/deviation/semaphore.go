package deviation

import (
	"math"
	"seguimiento-estructuras/internal/storage"
)

// Пороги отклонения в процентах. Граница принадлежит более строгой (нижней) зоне.
const (
	GreenThreshold  = 5.0
	YellowThreshold = 15.0
)

type Semaphore string

const (
	SemaphoreAll    Semaphore = "todos"
	SemaphoreGreen  Semaphore = "green"
	SemaphoreYellow Semaphore = "yellow"
	SemaphoreRed    Semaphore = "red"
	SemaphoreGray   Semaphore = "gray"
)

// Severity явный порядок: red > yellow > green > gray.
func (s Semaphore) Severity() int {
	switch s {
	case SemaphoreRed:
		return 3
	case SemaphoreYellow:
		return 2
	case SemaphoreGreen:
		return 1
	default:
		return 0
	}
}

// Worst возвращает менее благоприятный из двух цветов; gray проигрывает любому конкретному цвету.
func Worst(a, b Semaphore) Semaphore {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// ParseSemaphore разбирает значение фильтра. Пустая строка и неизвестные значения = todos.
func ParseSemaphore(v string) (Semaphore, bool) {
	switch Semaphore(v) {
	case SemaphoreGreen, SemaphoreYellow, SemaphoreRed, SemaphoreGray, SemaphoreAll:
		return Semaphore(v), true
	case "":
		return SemaphoreAll, true
	default:
		return SemaphoreAll, false
	}
}

// Deviation считает (real - theoretical) / theoretical * 100.
// ok=false если нет real, нет theoretical или theoretical == 0.
func Deviation(real, theoretical *float64) (float64, bool) {
	if real == nil || theoretical == nil || *theoretical == 0 {
		return 0, false
	}
	return (*real - *theoretical) / *theoretical * 100, true
}

func Classify(dev float64, ok bool) Semaphore {
	if !ok {
		return SemaphoreGray
	}
	abs := math.Abs(dev)
	switch {
	case abs <= GreenThreshold:
		return SemaphoreGreen
	case abs <= YellowThreshold:
		return SemaphoreYellow
	default:
		return SemaphoreRed
	}
}

// BlockSemaphore цвет одной сборки; отсутствующий блок = gray.
func BlockSemaphore(block *storage.SubAssemblyBlock) Semaphore {
	if block == nil {
		return SemaphoreGray
	}
	return Classify(Deviation(block.Real, block.Theoretical))
}

func BlockDeviation(block *storage.SubAssemblyBlock) (float64, bool) {
	if block == nil {
		return 0, false
	}
	return Deviation(block.Real, block.Theoretical)
}

// OverallSemaphore худший из цветов lateral и bastidor.
func OverallSemaphore(s storage.SeriesRecord) Semaphore {
	return Worst(BlockSemaphore(s.Lateral), BlockSemaphore(s.Bastidor))
}

// RoundDisplay округление до одного знака для вывода.
func RoundDisplay(v float64) float64 {
	return math.Round(v*10) / 10
}

// Label подпись для отчётов.
func (s Semaphore) Label() string {
	switch s {
	case SemaphoreGreen:
		return "Verde"
	case SemaphoreYellow:
		return "Amarillo"
	case SemaphoreRed:
		return "Rojo"
	case SemaphoreAll:
		return "Todos"
	default:
		return "Sin datos"
	}
}
