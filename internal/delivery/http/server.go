package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/config"
	"github.com/union-tracker/internal/delivery/http/handler"
	"github.com/union-tracker/internal/delivery/http/middleware"
	"github.com/union-tracker/internal/pkg/utils"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP server on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	verifier middleware.TokenVerifier
	checks   map[string]HealthChecker

	unionHandler *handler.UnionHandler
	authHandler  *handler.AuthHandler
}

// NewServer builds the app with middleware and routes. checks are pinged
// by the health endpoint; nil entries are skipped.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	verifier middleware.TokenVerifier,
	checks map[string]HealthChecker,
	unionHandler *handler.UnionHandler,
	authHandler *handler.AuthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Union Tracker",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		verifier:     verifier,
		checks:       checks,
		unionHandler: unionHandler,
		authHandler:  authHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	if s.config.RateLimit.Max > 0 {
		s.app.Use(middleware.RateLimit(s.config.RateLimit.Max, s.config.RateLimit.Window))
	}
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	api.Get("/health", s.health)

	standard := middleware.RequireToken(s.verifier, s.config.Auth.Secret, s.logger)
	elevated := middleware.RequireToken(s.verifier, s.config.Auth.AdminSecret, s.logger)

	unions := api.Group("/unions")
	unions.Get("/gettoken", s.authHandler.GetToken)
	unions.Get("/radius/:zipcode/:distance", standard, s.unionHandler.SearchByRadius)
	unions.Get("/", standard, s.unionHandler.List)
	unions.Post("/", elevated, s.unionHandler.Create)
	unions.Get("/:id", standard, s.unionHandler.GetByID)
	unions.Put("/:id", elevated, s.unionHandler.Update)
	unions.Delete("/:id", elevated, s.unionHandler.Delete)
}

// health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	services := fiber.Map{}
	for name, check := range s.checks {
		if check == nil {
			continue
		}
		if err := check.Health(ctx); err != nil {
			services[name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"services": services,
		"time":     time.Now(),
	})
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escape handlers, such as unknown
// routes, in the standard envelope.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return utils.SendError(c, err)
	}
}
