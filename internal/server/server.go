package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/verinews/apiserver/config"
	"github.com/verinews/apiserver/internal/classifier"
	"github.com/verinews/apiserver/internal/db"
	"github.com/verinews/apiserver/internal/events"
	"github.com/verinews/apiserver/internal/handlers"
	"github.com/verinews/apiserver/internal/newsapi"
	"github.com/verinews/apiserver/internal/services"
	"github.com/verinews/apiserver/internal/storage"
	"github.com/verinews/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  events.Publisher
}

// New constructs a Server with all dependencies wired. The scoring
// artifact loads here; if it cannot be loaded the constructor fails
// and the process never serves.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := newLogger(cfg.LogLevel)

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scorer, err := loadScorer(ctx, cfg.Model)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("load scoring model: %w", err)
	}

	newsClient, err := newsapi.NewClient(cfg.News)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	auditRepo := store.NewAuditRepository(dbConn)
	lifecycleRepo := store.NewLifecycleRepository(dbConn)

	userService := services.NewUserService(userRepo)
	auditService := services.NewAuditService(auditRepo)
	lifecycleService := services.NewLifecycleService(lifecycleRepo, publisher, logger)
	feedService := services.NewFeedService(newsClient, classifier.New(scorer, logger))

	if strings.TrimSpace(cfg.Admin.Password) != "" {
		if err := userService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			_ = publisher.Close()
			_ = dbConn.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		jwtSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if jwtSecret == "" {
		_ = publisher.Close()
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})
	router.Route("/feed", func(r chi.Router) {
		handlers.FeedRouter(r, feedService, userService, authMiddleware)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, userService, lifecycleService, auditService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func loadScorer(ctx context.Context, cfg config.ModelConfig) (*classifier.Scorer, error) {
	fetcher, err := storage.NewFetcher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reader, err := fetcher.Fetch(ctx, cfg.Key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	artifact, err := classifier.LoadArtifact(reader)
	if err != nil {
		return nil, err
	}
	return classifier.NewScorer(artifact), nil
}

func newLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
