package get

import (
	"context"
	"log/slog"
	"net/http"
	"seguimiento-estructuras/internal/storage"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const defaultHistoryLimit = 20

type LoadsProvider interface {
	History(ctx context.Context, limit int) ([]storage.Load, error)
}

type ResponseLoads struct {
	Cargas []storage.Load `json:"cargas"`
	Error  string         `json:"error,omitempty"`
}

// GetLoads история загрузок из БД, последние сверху.
func GetLoads(log *slog.Logger, provider LoadsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.get.GetLoads"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit := defaultHistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, ResponseLoads{Error: "limit inválido"})
				return
			}
			limit = n
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		loads, err := provider.History(ctx, limit)
		if err != nil {
			log.Error("failed to get load history", slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ResponseLoads{Error: "Internal error"})
			return
		}

		render.JSON(w, r, ResponseLoads{Cargas: loads})
	}
}
