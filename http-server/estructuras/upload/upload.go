package upload

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"seguimiento-estructuras/internal/service/etl"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	FieldPlanning = "planificacion"
	FieldFichajes = "fichajes"
)

type Loader interface {
	Load(ctx context.Context, planning, fichajes seguimiento.Upload) (*storage.Load, error)
}

type Response struct {
	Load    *storage.Load        `json:"load,omitempty"`
	Summary *storage.LoadSummary `json:"summary,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// UploadEstructuras принимает два файла (планирование и фичажи) и заменяет текущий набор данных.
func UploadEstructuras(log *slog.Logger, loader Loader, maxBytes int64, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.estructuras.upload.UploadEstructuras"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			log.Error("invalid multipart form", slog.String("error", err.Error()))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "formulario inválido o demasiado grande"})
			return
		}

		planning, planningHeader, err := r.FormFile(FieldPlanning)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "falta el archivo de planificación"})
			return
		}
		defer planning.Close()

		fichajes, fichajesHeader, err := r.FormFile(FieldFichajes)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Response{Error: "falta el archivo de fichajes"})
			return
		}
		defer fichajes.Close()

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		load, err := loader.Load(ctx,
			seguimiento.Upload{Name: planningHeader.Filename, Reader: planning},
			seguimiento.Upload{Name: fichajesHeader.Filename, Reader: fichajes},
		)
		if err != nil {
			if errors.Is(err, etl.ErrMissingColumn) ||
				errors.Is(err, etl.ErrEmptySheet) ||
				errors.Is(err, etl.ErrInvalidWorkbook) {
				log.Warn("rejected upload", slog.String("error", err.Error()))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, Response{Error: err.Error()})
				return
			}

			log.Error("failed to load spreadsheets", slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "Internal error"})
			return
		}

		log.Info("upload processed",
			slog.String("load_id", load.ID),
			slog.Int("processed", load.Summary.Processed),
			slog.Int("skipped", load.Summary.Skipped),
		)

		render.JSON(w, r, Response{Load: load, Summary: &load.Summary})
	}
}
