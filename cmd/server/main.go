package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/khatabook/backend/internal/config"
	"github.com/khatabook/backend/internal/handlers"
	"github.com/khatabook/backend/internal/logger"
	mW "github.com/khatabook/backend/internal/middleware"
	"github.com/khatabook/backend/internal/services"
	"github.com/khatabook/backend/internal/storage"
)

// @title Khatabook API
// @version 1.0
// @description Personal finance ledger: khatas, expense log, dasti khata IOUs
// @BasePath /api/v1

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	redisClient, err := storage.InitRedis(cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("redis init failed")
	}
	defer redisClient.Close()

	store := storage.NewRedisStore(redisClient, logger.For(log, "storage"))

	ctx := context.Background()
	khataService, err := services.NewKhataService(ctx, store, logger.For(log, "khata"))
	if err != nil {
		log.Fatal().Err(err).Msg("khata service init failed")
	}
	expenseService, err := services.NewExpenseService(ctx, store, logger.For(log, "expense"))
	if err != nil {
		log.Fatal().Err(err).Msg("expense service init failed")
	}
	dastiService, err := services.NewDastiService(ctx, store, logger.For(log, "dasti"))
	if err != nil {
		log.Fatal().Err(err).Msg("dasti service init failed")
	}
	prefsService := services.NewPreferencesService(store, logger.For(log, "preferences"))
	backupService := services.NewBackupService(store, prefsService, logger.For(log, "backup"))

	khataHandler := handlers.NewKhataHandler(khataService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dastiHandler := handlers.NewDastiHandler(dastiService)
	prefsHandler := handlers.NewPreferencesHandler(prefsService)
	backupHandler := handlers.NewBackupHandler(backupService, khataService, expenseService, logger.For(log, "backup"))

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.yaml"),
	))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yaml")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/khatas", khataHandler.CreateKhata)
		r.Get("/khatas", khataHandler.ListKhatas)
		r.Get("/khatas/{khataId}", khataHandler.GetKhata)
		r.Delete("/khatas/{khataId}", khataHandler.DeleteKhata)
		r.Post("/khatas/{khataId}/expenses", khataHandler.RecordExpense)
		r.Delete("/khatas/{khataId}/expenses/{expenseId}", khataHandler.DeleteExpense)
		r.Post("/khatas/{khataId}/amounts", khataHandler.RecordAddAmount)
		r.Delete("/khatas/{khataId}/transactions/{txId}", khataHandler.DeleteTransaction)

		r.Get("/expenses", expenseHandler.ListExpenses)
		r.Post("/expenses", expenseHandler.AddExpense)
		r.Delete("/expenses/{expenseId}", expenseHandler.DeleteExpense)
		r.Get("/expenses/summary", expenseHandler.Summary)

		r.Get("/dasti-khatas", dastiHandler.ListDastis)
		r.Post("/dasti-khatas", dastiHandler.AddDasti)
		r.Put("/dasti-khatas/{dastiId}/paid", dastiHandler.MarkPaid)
		r.Delete("/dasti-khatas/{dastiId}", dastiHandler.DeleteDasti)

		r.Get("/preferences", prefsHandler.GetPreferences)
		r.Put("/preferences", prefsHandler.SetPreferences)

		r.Post("/backup", backupHandler.CreateBackup)
		r.Get("/backup", backupHandler.BackupInfo)
		r.Delete("/backup", backupHandler.ClearBackup)
		r.Post("/backup/restore", backupHandler.RestoreBackup)
		r.Post("/import", backupHandler.ImportData)
		r.Get("/export", backupHandler.Export)
		r.Get("/export/qr", backupHandler.ExportQR)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
