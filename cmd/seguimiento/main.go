package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"seguimiento-estructuras/internal/config"
	generate_excel "seguimiento-estructuras/internal/service/generate-excel"
	generate_pdf "seguimiento-estructuras/internal/service/generate-pdf"
	"seguimiento-estructuras/internal/service/seguimiento"
	"seguimiento-estructuras/internal/storage/mysql"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storage.Init(ctx); err != nil {
		log.Error("failed to init db", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.AdminLogin == "" || cfg.AdminPass == "" {
		log.Warn("admin credentials not set, admin routes are locked")
	}

	service := seguimiento.NewService(log, storage)
	if cfg.RestoreOnStart {
		if err := service.Restore(ctx); err != nil {
			// без истории сервис всё равно работает, просто пустой
			log.Warn("failed to restore last load", slog.String("error", err.Error()))
		}
	}

	excelService := generate_excel.NewGenerateService(service)
	pdfService := generate_pdf.NewGenerateService(service)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, service, excelService, pdfService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: max(cfg.HTTPServer.Timeout, cfg.Upload.Timeout),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", slog.String("error", err.Error()))
		}
	}()

	log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
