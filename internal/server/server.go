// Package server contains the HTTP surface of the application: middleware
// wiring, the route table, and the page handlers.
package server

import (
	"context"
	"net/http"
	"time"

	"journal/internal/cache"
	"journal/internal/config"
	"journal/internal/database"
	"journal/internal/mail"
	"journal/internal/middleware"
	"journal/internal/repository"
	"journal/internal/session"
	"journal/internal/server/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sessionCookie is the name of the cookie carrying the opaque session token.
const sessionCookie = "journal_session"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
	sessions       session.Store
	mailer         mail.Mailer
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient, mail.NewSMTPMailer(cfg)), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mailer mail.Mailer) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("journal"),
		postRepo:       repository.NewPostRepository(db),
		userRepo:       repository.NewUserRepository(db),
		sessions:       session.NewStore(redisClient, session.DefaultTTL),
		mailer:         mailer,
	}
}

// BuildApp constructs the Fiber application with views, middleware, and routes.
func (s *Server) BuildApp() *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	app := fiber.New(fiber.Config{
		AppName: "Journal",
		Views:   engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for log correlation
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				SendString("Too many requests, please try again later.")
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Public pages
	app.Get("/", s.Home)
	app.Get("/about", s.About)
	app.Get("/contact", s.ContactForm)
	app.Post("/contact", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "contact"), s.ContactSubmit)
	app.Get("/post/:postId", s.ShowPost)
	app.Post("/search", s.SearchPosts)

	// Authentication
	app.Get("/register", s.RegisterForm)
	app.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.RegisterSubmit)
	app.Get("/login", s.LoginForm)
	app.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.LoginSubmit)
	app.Get("/logout", s.Logout)

	// Administration; every mutation route checks the session
	app.Get("/admin", s.RequireAuth(), s.Admin)
	app.Get("/compose", s.RequireAuth(), s.ComposeForm)
	app.Post("/compose", s.RequireAuth(), s.ComposeSubmit)
	app.Post("/delete/:postId", s.RequireAuth(), s.DeletePost)
	app.Get("/edit/:postId", s.RequireAuth(), s.EditForm)
	app.Post("/edit", s.RequireAuth(), s.EditSubmit)

	// Operational endpoints
	app.Get("/health", s.HealthCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
}

// RequireAuth redirects anonymous requests to the login page and stores the
// authenticated user ID in locals and the request context.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.currentUserID(c)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// currentUserID resolves the session cookie to a user ID. A store failure is
// logged and treated as an anonymous request.
func (s *Server) currentUserID(c *fiber.Ctx) (uint, bool) {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return 0, false
	}
	userID, ok, err := s.sessions.Get(c.UserContext(), token)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session lookup failed", "error", err)
		return 0, false
	}
	return userID, ok
}

// HealthCheck reports readiness of the database and session store.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Sessions degrade to the in-memory store without Redis.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and begins serving.
func (s *Server) Start() error {
	app := s.BuildApp()
	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
