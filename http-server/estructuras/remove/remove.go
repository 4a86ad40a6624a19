package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"seguimiento-estructuras/internal/storage"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type DatasetResetter interface {
	Reset()
}

type LoadDeleter interface {
	DeleteLoad(ctx context.Context, id string) error
}

type Response struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ResetDataset сбрасывает данные в памяти; история в БД не трогается.
func ResetDataset(log *slog.Logger, resetter DatasetResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.remove.ResetDataset"

		resetter.Reset()

		log.Info("dataset reset",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		render.JSON(w, r, Response{Status: "ok"})
	}
}

func DeleteLoad(log *slog.Logger, deleter LoadDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.remove.DeleteLoad"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "id requerido"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteLoad(ctx, id); err != nil {
			if errors.Is(err, storage.ErrLoadNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, Response{Error: "carga no encontrada"})
				return
			}

			log.Error("failed to delete load", slog.String("id", id), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "Internal error"})
			return
		}

		render.JSON(w, r, Response{Status: "ok"})
	}
}
