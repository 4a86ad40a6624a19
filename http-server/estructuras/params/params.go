package params

import (
	"fmt"
	"net/http"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/seguimiento"
	"strconv"
	"strings"
	"time"
)

const maxPageSize = 500

// ParseQuery разбирает фильтры, сортировку и пагинацию из query-параметров.
func ParseQuery(r *http.Request, defaultPageSize int) (seguimiento.QueryParams, error) {
	q := r.URL.Query()

	p := seguimiento.QueryParams{
		Filters:   deviation.DefaultFilters(),
		Ascending: true,
		Page:      1,
		PageSize:  defaultPageSize,
	}

	p.Filters.Modelo = strings.TrimSpace(q.Get("modelo"))
	p.Filters.Texto = strings.TrimSpace(q.Get("texto"))

	sem, ok := deviation.ParseSemaphore(q.Get("semaforo"))
	if !ok {
		return p, fmt.Errorf("invalid semaforo %q", q.Get("semaforo"))
	}
	p.Filters.Semaforo = sem

	var err error
	if p.Filters.FechaDesde, err = parseDate(q.Get("desde")); err != nil {
		return p, fmt.Errorf("invalid desde: %w", err)
	}
	if p.Filters.FechaHasta, err = parseDate(q.Get("hasta")); err != nil {
		return p, fmt.Errorf("invalid hasta: %w", err)
	}

	if v := q.Get("sort"); v != "" {
		col, ok := deviation.ParseSortColumn(v)
		if !ok {
			return p, fmt.Errorf("invalid sort column %q", v)
		}
		p.Sort = col
	}

	if v := q.Get("asc"); v != "" {
		if p.Ascending, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("invalid asc: %w", err)
		}
	}

	if v := q.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page < 1 {
			return p, fmt.Errorf("invalid page %q", v)
		}
	}

	if v := q.Get("page_size"); v != "" {
		if p.PageSize, err = strconv.Atoi(v); err != nil || p.PageSize < 1 {
			return p, fmt.Errorf("invalid page_size %q", v)
		}
	}
	p.PageSize = min(p.PageSize, maxPageSize)

	return p, nil
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(deviation.DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
