package get

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"seguimiento-estructuras/http-server/estructuras/params"
	"seguimiento-estructuras/internal/service/deviation"
	"seguimiento-estructuras/internal/service/seguimiento"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const msgNoData = "no hay datos cargados"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SeriesQuery interface {
	Query(p seguimiento.QueryParams) (*seguimiento.QueryResult, error)
}

type SeriesDetailProvider interface {
	Series(key string) (*deviation.SeriesDetail, error)
}

type ModelsProvider interface {
	Models() ([]string, error)
}

// GetSeries список серий: фильтр, сортировка, страница и KPI по отфильтрованному набору.
func GetSeries(log *slog.Logger, query SeriesQuery, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.get.GetSeries"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p, err := params.ParseQuery(r, defaultPageSize)
		if err != nil {
			log.Warn("invalid query parameters", slog.String("error", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := query.Query(p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, res)
	}
}

func GetSeriesDetail(log *slog.Logger, provider SeriesDetailProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.get.GetSeriesDetail"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		key, err := url.PathUnescape(chi.URLParam(r, "key"))
		if err != nil || key == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: "clave de serie inválida"})
			return
		}

		detail, err := provider.Series(key)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, detail)
	}
}

func GetModels(log *slog.Logger, provider ModelsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.get.GetModels"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		models, err := provider.Models()
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, map[string][]string{"modelos": models})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, seguimiento.ErrNoDataset):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: msgNoData})
	case errors.Is(err, seguimiento.ErrSeriesNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "serie no encontrada"})
	default:
		log.Error("request failed", slog.String("error", err.Error()))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "Internal error"})
	}
}
