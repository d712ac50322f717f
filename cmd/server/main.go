package main

import (
	"context"
	"os"
	"path/filepath"

	"repurpose/internal/ai"
	"repurpose/internal/api"
	"repurpose/internal/config"
	"repurpose/internal/content"
	"repurpose/internal/metrics"
	"repurpose/internal/repository"
	"repurpose/internal/state"
	"repurpose/internal/stt"
	"repurpose/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set, tokens are signed with the development secret")
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	providers, err := stt.CreateProviders(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create STT providers: %v", err)
	}
	if len(providers) == 0 {
		log.Warn("No transcription provider configured, the demo transcript will be returned")
	}

	if cfg.GroqKey == "" {
		log.Warn("GROQ_API_KEY not set, generated content will use fallback templates")
	}
	synth := ai.NewSynthesizer(ai.NewChatClient(cfg.GroqKey, cfg.GroqBaseURL), m)

	store := state.NewMemoryStore()
	contentSvc := content.NewService(synth, state.NewProfessions(store), openLibrary(ctx, cfg))
	userSvc := users.NewService(users.NewFileRepository(filepath.Join(cfg.DataDir, "users.json")), cfg.JWTSecret, cfg.TokenTTL)

	srv := api.NewServer(api.Options{
		Users:       userSvc,
		Content:     contentSvc,
		Transcriber: stt.NewResolver(providers, m),
		Usage:       state.NewUsageMeter(store),
		Gatherer:    prometheus.DefaultGatherer,
		JWTSecret:   cfg.JWTSecret,
		Environment: cfg.Environment,
	})

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	srv.RegisterRoutes(r)

	log.Infof("Repurpose backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openLibrary uses Postgres when DATABASE_URL is set and the JSON file otherwise
func openLibrary(ctx context.Context, cfg *config.Config) repository.LibraryRepository {
	path := filepath.Join(cfg.DataDir, "library.json")
	if cfg.DatabaseURL == "" {
		log.Infof("DATABASE_URL not set, storing library in %s", path)
		return repository.NewFileRepository(path)
	}

	log.Info("Initializing database connection with DATABASE_URL...")
	db, err := repository.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warnf("Failed to initialize database: %v. Storing library in %s", err, path)
		return repository.NewFileRepository(path)
	}
	log.Info("Database and repository initialized successfully")
	return repository.NewPostgresRepository(db)
}
