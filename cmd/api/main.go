package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/repolens/repolens/internal/application"
	appai "github.com/repolens/repolens/internal/application/ai"
	appanalysis "github.com/repolens/repolens/internal/application/analysis"
	"github.com/repolens/repolens/internal/config"
	domain "github.com/repolens/repolens/internal/domain/analysis"
	"github.com/repolens/repolens/internal/domain/analysiserrors"
	"github.com/repolens/repolens/internal/domain/summaries"
	openaiClient "github.com/repolens/repolens/internal/infra/ai/openai"
	mysqldb "github.com/repolens/repolens/internal/infra/db/mysql"
	postgresdb "github.com/repolens/repolens/internal/infra/db/postgres"
	"github.com/repolens/repolens/internal/infra/github"
	"github.com/repolens/repolens/internal/infra/httpserver"
	minioStore "github.com/repolens/repolens/internal/infra/storage"
	"github.com/repolens/repolens/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (driver selected by config)
	var (
		db          *sql.DB
		profileRepo domain.Repository
		summaryRepo summaries.Repository
		errorRepo   analysiserrors.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		profileRepo = postgresdb.NewProfileRepository(db)
		summaryRepo = postgresdb.NewSummaryRepository(db)
		errorRepo = postgresdb.NewAnalysisErrorRepository(db)
	default:
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		profileRepo = mysqldb.NewProfileRepository(db)
		summaryRepo = mysqldb.NewSummaryRepository(db)
		errorRepo = mysqldb.NewAnalysisErrorRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init provider
	provider := github.New(cfg.GitHub.Token)

	// init services
	svc := &appanalysis.Service{
		Provider: provider,
		Repo:     profileRepo,
		Reports:  store,
		Errors:   errorRepo,
		Clock:    application.SystemClock{},
	}
	var aiSvc *appai.Service
	if cfg.OpenAI.APIKey != "" {
		client := openaiClient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		aiSvc = appai.NewService(client, profileRepo, summaryRepo)
	}

	// init router with middleware chain
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	mux.Mount("/", httpserver.NewRouter(svc, aiSvc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
