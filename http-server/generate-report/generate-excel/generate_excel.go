package generate_excel

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

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, p seguimiento.QueryParams) ([]byte, error)
}

// GenerateReportExcel выгрузка отфильтрованных серий в xlsx (те же фильтры, что и у списка).
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		p, err := params.ParseQuery(r, 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // на Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, p)
		if err != nil {
			if errors.Is(err, seguimiento.ErrNoDataset) {
				http.Error(w, "no hay datos cargados", http.StatusNotFound)
				return
			}
			log.Error("failed to generate excel", slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("Seguimiento_Estructuras_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
