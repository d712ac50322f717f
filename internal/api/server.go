package api

import (
	"context"
	"net/http"
	"time"

	"repurpose/internal/content"
	"repurpose/internal/state"
	"repurpose/internal/stt"
	"repurpose/internal/users"
	"repurpose/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transcriber resolves audio into text; it never fails
type Transcriber interface {
	Resolve(ctx context.Context, audio []byte, mimeType string) *stt.Transcription
}

// Server holds the handler dependencies
type Server struct {
	users       *users.Service
	content     *content.Service
	transcriber Transcriber
	usage       *state.UsageMeter
	gatherer    prometheus.Gatherer
	jwtSecret   []byte
	environment string
	startedAt   time.Time
}

type Options struct {
	Users       *users.Service
	Content     *content.Service
	Transcriber Transcriber
	Usage       *state.UsageMeter
	Gatherer    prometheus.Gatherer
	JWTSecret   string
	Environment string
}

func NewServer(opts Options) *Server {
	g := opts.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &Server{
		users:       opts.Users,
		content:     opts.Content,
		transcriber: opts.Transcriber,
		usage:       opts.Usage,
		gatherer:    g,
		jwtSecret:   []byte(opts.JWTSecret),
		environment: opts.Environment,
		startedAt:   time.Now(),
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())

	r.GET("/health", s.healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	// Auth
	a := r.Group("/api")
	{
		a.POST("/signup", s.signup)
		a.POST("/login", s.login)
		a.POST("/verify-token", s.authMiddleware(), s.verifyToken)
	}

	// Public catalogs
	r.GET("/platforms", s.listPlatforms)
	r.GET("/professions", s.listProfessions)
	r.GET("/usage", s.getUsage)

	authed := r.Group("/", s.authMiddleware())
	{
		authed.POST("/profession", s.setProfession)
		authed.POST("/transcribe", s.transcribe)
		authed.POST("/generate-content", s.generateContent)

		authed.GET("/library", s.listLibrary)
		authed.GET("/library/:id", s.getLibraryEntry)
		authed.DELETE("/library/:id", s.deleteLibraryEntry)
		authed.POST("/library/delete", s.deleteLibraryEntryByBody)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "endpoint not found")
	})
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(s.startedAt).Seconds(),
		"environment": s.environment,
	})
}
