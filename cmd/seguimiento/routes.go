package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"seguimiento-estructuras/http-server/estructuras/get"
	"seguimiento-estructuras/http-server/estructuras/remove"
	"seguimiento-estructuras/http-server/estructuras/upload"
	generate_excel "seguimiento-estructuras/http-server/generate-report/generate-excel"
	generate_pdf "seguimiento-estructuras/http-server/generate-report/generate-pdf"
	"seguimiento-estructuras/internal/config"
	"seguimiento-estructuras/internal/middleware/auth"
	"seguimiento-estructuras/internal/service/seguimiento"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	service *seguimiento.Service,
	excelService generate_excel.GenerateExcelHandler,
	pdfService generate_pdf.GeneratePDFHandler,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/estructuras", func(r chi.Router) {
		// загрузка двух Excel: планификация + фичахи
		r.Post("/upload", upload.UploadEstructuras(log, service, cfg.Upload.MaxMB<<20, cfg.Upload.Timeout))

		r.Get("/series", get.GetSeries(log, service, cfg.PageSize))
		r.Get("/series/{key}", get.GetSeriesDetail(log, service))
		r.Get("/modelos", get.GetModels(log, service))
		r.Get("/cargas", get.GetLoads(log, service))

		r.Get("/report/excel", generate_excel.GenerateReportExcel(log, excelService))
		r.Get("/report/pdf", generate_pdf.GenerateReportPDF(log, pdfService))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Delete("/estructuras/dataset", remove.ResetDataset(log, service))
	adminRouter.Delete("/estructuras/cargas/{id}", remove.DeleteLoad(log, service))

	router.Mount("/api/admin", adminRouter)

	// Статика, vue
	if _, err := os.Stat(cfg.FrontendDir); err != nil {
		log.Warn("Папка фронтенда не найдена, отдаём только API", slog.String("path", cfg.FrontendDir))
		return router
	}

	router.HandleFunc("/*", spaHandler(cfg.FrontendDir))

	return router
}

// spaHandler отдаёт существующий файл, иначе index.html.
func spaHandler(frontendDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	}
}
