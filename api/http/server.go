package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/Durgatriveni/Task-backend/api/http/handlers"
	"github.com/Durgatriveni/Task-backend/api/http/middleware"
	"github.com/Durgatriveni/Task-backend/api/http/presenter"
	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/health"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// ServerConfig is the slice of configuration the HTTP layer needs.
type ServerConfig struct {
	CORSOrigins    []string
	CookieSecure   bool
	PublicTaskFeed bool
}

// Deps are the use cases and collaborators served over HTTP.
type Deps struct {
	Auth      auth.AuthUseCase
	Tasks     task.UseCase
	Verifier  auth.TokenVerifier
	Readiness health.ReadinessUseCase
	Log       *logrus.Entry
}

// NewServer builds the Fiber app with middleware and all routes registered.
func NewServer(cfg ServerConfig, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "task-backend",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(middleware.Metrics())
	app.Use(middleware.Logging(deps.Log))
	app.Use(recover.New())
	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origins != "" && origins != "*",
	}))

	authMW := jwt.NewAuthMiddleware(deps.Verifier, deps.Log)
	Register(app,
		handlers.NewAuthHandler(deps.Auth, cfg.CookieSecure, deps.Log),
		handlers.NewTaskHandler(deps.Tasks, deps.Log),
		handlers.NewHealthHandler(deps.Readiness, deps.Log),
		authMW,
		cfg.PublicTaskFeed,
	)
	return app
}

// errorHandler renders framework errors (unknown route, bad method, recovered
// panics) in the same {"message": ...} shape as handler errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return presenter.Error(c, code, msg)
}
