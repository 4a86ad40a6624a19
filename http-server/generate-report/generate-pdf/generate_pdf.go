package generate_pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"seguimiento-estructuras/http-server/estructuras/params"
	"seguimiento-estructuras/internal/service/seguimiento"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type GeneratePDFHandler interface {
	GeneratePDF(ctx context.Context, p seguimiento.QueryParams) ([]byte, error)
}

func GenerateReportPDF(log *slog.Logger, gen GeneratePDFHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportPDF"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p, err := params.ParseQuery(r, 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		pdfBytes, err := gen.GeneratePDF(ctx, p)
		if err != nil {
			if errors.Is(err, seguimiento.ErrNoDataset) {
				http.Error(w, "no hay datos cargados", http.StatusNotFound)
				return
			}
			log.Error("failed to generate pdf", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Seguimiento_Estructuras_%s.pdf", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(pdfBytes)
	}
}
