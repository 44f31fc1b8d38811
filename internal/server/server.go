// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where every
// dependency chain is assembled in one place:
//
//	sqlite.DB → UserService/MealService → UserHandler/MealHandler → routes
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete *sqlite.DB), handlers get services (not
// repositories), and the router gets handlers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/diet-tracker/internal/auth"
	"github.com/sakif/diet-tracker/internal/config"
	"github.com/sakif/diet-tracker/internal/handler"
	"github.com/sakif/diet-tracker/internal/middleware"
	sqliteRepo "github.com/sakif/diet-tracker/internal/repository/sqlite"
	"github.com/sakif/diet-tracker/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection: when the server shuts down it
// must close it to flush the WAL and release the file lock. That happens in
// Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB // owned by the server, closed on shutdown
}

// New creates a new Server with the given config.
//
// IMPORT ALIAS:
// repository/sqlite is imported as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// Handler exposes the fully-wired router. Tests mount it on an
// httptest.Server; Start() mounts it on a real one.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/user            → register (public, issues the session cookie)
//	GET    /api/user            → whoami
//	GET    /api/meals           → list meals (insertion order)
//	GET    /api/meals/summary   → adherence summary
//	GET    /api/meals/{id}      → get single meal
//	POST   /api/meals           → create meal
//	PUT    /api/meals/{id}      → partial update
//	DELETE /api/meals/{id}      → delete meal
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added:
// 1. RequestID — assigns a unique ID to each request (for log correlation)
// 2. RealIP — extracts the real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
// 5. RequireAuth — only on the protected sub-routers, resolving the session
//    cookie to an identity on EVERY request (never cached between requests).
//
// /summary is registered before /{id} so chi matches the literal segment
// first — otherwise "summary" would be captured as a meal id.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userService := service.NewUserService(s.db, s.logger)
	mealService := service.NewMealService(s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.config.SessionCookieMaxAge, s.logger)
	mealHandler := handler.NewMealHandler(mealService, s.logger)

	requireAuth := auth.RequireAuth(s.db, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Registration is the only unauthenticated operation.
		r.Post("/user", userHandler.HandleRegister)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user", userHandler.HandleMe)
		})

		r.Route("/meals", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", mealHandler.HandleList)
			r.Get("/summary", mealHandler.HandleSummary)
			r.Get("/{id}", mealHandler.HandleGetByID)
			r.Post("/", mealHandler.HandleCreate)
			r.Put("/{id}", mealHandler.HandleUpdate)
			r.Delete("/{id}", mealHandler.HandleDelete)
		})
	})
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases the file lock)
//
// The `defer s.db.Close()` ensures step 3 happens even if something panics.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
