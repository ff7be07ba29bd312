// Package server contains the HTTP handlers and routing for the posts, comments and likes API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"simplesocial/internal/apidoc"
	"simplesocial/internal/config"
	"simplesocial/internal/database"
	"simplesocial/internal/middleware"
	"simplesocial/internal/models"
	"simplesocial/internal/notifications"
	"simplesocial/internal/repository"
	"simplesocial/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ServiceName identifies this API in metrics and traces.
const ServiceName = "simplesocial-api"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	notifier       *notifications.Notifier
	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, which disables event publishing. opts are passed to
// every service.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...service.Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	store := repository.NewStore(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		notifier:       notifications.NewNotifier(redisClient, cfg.EventsChannel),
		postService:    service.NewPostService(store, opts...),
		commentService: service.NewCommentService(store, opts...),
		likeService:    service.NewLikeService(store, opts...),
	}

	if cfg.MetricsEnabled {
		server.promMiddleware = middleware.InitMetrics(ServiceName)
	}

	return server, nil
}

// NewApp builds a fiber app with the server's middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Simple Social Media API",
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders errors that escape handlers, including fiber's own
// 404/405 errors, in the {code, message} envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return models.RespondWithError(c, fiberErr.Code, fiberErr)
	}
	middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers; the API is meant to be called from any origin
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		// fiber rejects credentials combined with a wildcard origin
		AllowCredentials: origins != "*",
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// API description and Swagger UI
	apidoc.Register()
	app.Get("/openapi.json", s.OpenAPIDocument)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api/swagger/index.html", fiber.StatusTemporaryRedirect)
	})

	api := app.Group(apidoc.BasePath)
	api.Get("/swagger/*", swagger.HandlerDefault)

	posts := api.Group("/posts")
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.CreatePost)

	// Define specific /:postId/:resource routes BEFORE generic /:postId route
	posts.Get("/:postId/comments", s.ListComments)
	posts.Post("/:postId/comments", s.CreateComment)
	posts.Get("/:postId/comments/:commentId", s.GetComment)
	posts.Patch("/:postId/comments/:commentId", s.UpdateComment)
	posts.Delete("/:postId/comments/:commentId", s.DeleteComment)

	posts.Post("/:postId/likes", s.LikePost)
	posts.Delete("/:postId/likes", s.UnlikePost)

	posts.Get("/:postId", s.GetPost)
	posts.Patch("/:postId", s.UpdatePost)
	posts.Delete("/:postId", s.DeletePost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   models.FormatTime(time.Now()),
	})
}

// ReadinessCheck reports whether the database (and Redis, when configured) answer pings.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": models.FormatTime(time.Now()),
	})
}

// OpenAPIDocument serves the embedded API description as JSON.
func (s *Server) OpenAPIDocument(c *fiber.Ctx) error {
	doc, err := apidoc.JSON()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(doc)
}

// ShutdownTimeout bounds the graceful shutdown started by Serve.
const ShutdownTimeout = 10 * time.Second

// Start listens on the configured port and serves until ctx is done.
// See Serve for the shutdown sequence.
func (s *Server) Start(ctx context.Context, cleanup ...func(context.Context) error) error {
	ln, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", s.config.Port, err)
	}
	return s.Serve(ctx, ln, cleanup...)
}

// Serve handles requests on ln until ctx is done. It then drains in-flight
// requests, closes the database and Redis connections and runs cleanup in
// order, returning only after all of them finished.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cleanup ...func(context.Context) error) error {
	s.app = s.NewApp()

	served := make(chan error, 1)
	go func() {
		middleware.Logger.Info("Server starting", slog.String("addr", ln.Addr().String()))
		served <- s.app.Listener(ln)
	}()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	middleware.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	err := s.Shutdown(shutdownCtx)
	for _, fn := range cleanup {
		err = errors.Join(err, fn(shutdownCtx))
	}
	return errors.Join(err, <-served)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
