package constants

// Заголовки колонок сравниваются после нормализации: нижний регистр, без диакритики,
// пробелы/подчёркивания/точки схлопнуты в один пробел.
var (
	// TODO планирование
	ColSerie = map[string]bool{
		"serie":           true,
		"n serie":         true,
		"no serie":        true,
		"numero serie":    true,
		"numero de serie": true,
		"serie id":        true,
	}

	ColModelo = map[string]bool{
		"modelo":   true,
		"model":    true,
		"producto": true,
	}

	ColOfLateral = map[string]bool{
		"of lateral":    true,
		"orden lateral": true,
		"of lat":        true,
		"lateral of":    true,
	}

	ColOfBastidor = map[string]bool{
		"of bastidor":    true,
		"orden bastidor": true,
		"of bas":         true,
		"bastidor of":    true,
	}

	ColFechaIni = map[string]bool{
		"fecha inicio": true,
		"fecha ini":    true,
		"inicio":       true,
		"fecha":        true,
		"f inicio":     true,
	}

	ColFechaFin = map[string]bool{
		"fecha fin":   true,
		"fin":         true,
		"fecha final": true,
		"f fin":       true,
	}

	ColEnviada = map[string]bool{
		"enviada":   true,
		"enviado":   true,
		"entregada": true,
		"entregado": true,
		"expedida":  true,
	}

	// TODO фичажи
	ColOf = map[string]bool{
		"of":                   true,
		"orden":                true,
		"orden de fabricacion": true,
		"orden fabricacion":    true,
	}

	ColOperacion = map[string]bool{
		"operacion": true,
		"fase":      true,
		"tarea":     true,
	}

	ColHoras = map[string]bool{
		"horas":        true,
		"horas reales": true,
		"horas real":   true,
		"real":         true,
		"tiempo":       true,
	}

	ColHorasTeoricas = map[string]bool{
		"horas teoricas": true,
		"horas teorico":  true,
		"teorico":        true,
		"teoricas":       true,
		"estandar":       true,
		"horas estandar": true,
	}

	// Значения колонки "Enviada", означающие что серия отгружена.
	TrueValues = map[string]bool{
		"si":   true,
		"s":    true,
		"x":    true,
		"1":    true,
		"true": true,
		"yes":  true,
		"ok":   true,
	}
)
