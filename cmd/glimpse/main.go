package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/glimpse-search/glimpse/internal/config"
	"github.com/glimpse-search/glimpse/internal/handler"
	"github.com/glimpse-search/glimpse/internal/logging"
	"github.com/glimpse-search/glimpse/internal/middleware"
	"github.com/glimpse-search/glimpse/internal/pipeline"
	"github.com/glimpse-search/glimpse/internal/search"
	"github.com/glimpse-search/glimpse/internal/summary"
)

func main() {
	cfg := config.Load()

	log := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer log.Sync()

	provider := search.NewSerpAPIProvider(search.Options{
		Endpoint: cfg.SerpAPIEndpoint,
		APIKey:   cfg.SerpAPIKey,
		Location: cfg.SearchLocation,
		Timeout:  cfg.SearchTimeout,
	})
	summarizer := summary.NewSummarizer(summary.Options{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.SummaryModel,
	}, log)
	pipe := pipeline.New(provider, summarizer, pipeline.Options{
		SummaryTimeout: cfg.SummaryTimeout,
	}, log)

	summaries := handler.NewSummaryRegistry(cfg.SummaryTTL)
	defer summaries.Close()
	searchHandler := handler.NewSearchHandler(pipe, summaries, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/search", searchHandler.Search)
	r.Post("/api/search", searchHandler.Followup)
	r.Get("/api/search/summary/{id}", searchHandler.GetSummary)

	log.Info("glimpse listening",
		zap.String("port", cfg.Port),
		zap.String("searchProvider", provider.Name()))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
