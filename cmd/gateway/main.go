package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/lingua-loop/lingualms/internal/api/http"
	"github.com/lingua-loop/lingualms/internal/config"
	"github.com/lingua-loop/lingualms/internal/db"
	"github.com/lingua-loop/lingualms/internal/exercise"
	"github.com/lingua-loop/lingualms/internal/grading"
	"github.com/lingua-loop/lingualms/internal/progress"
	"github.com/lingua-loop/lingualms/internal/session"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	exercises := exercise.NewSQLStore(dbh)
	sessions := session.NewSQLStore(dbh)
	reporter := progress.NewSQLReporter(dbh)
	evaluator := grading.NewEvaluator(grading.WithFuzzyThreshold(cfg.FuzzyThreshold))
	svc := session.NewService(sessions, exercises, evaluator, reporter)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Exercises:     exercises,
		Sessions:      svc,
		Progress:      reporter,
		PassThreshold: cfg.PassThreshold,
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log.Printf("lingualms gateway listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
