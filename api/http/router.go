package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/Durgatriveni/Task-backend/api/http/handlers"
	"github.com/Durgatriveni/Task-backend/api/http/middleware"
	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
)

// Register wires all HTTP routes onto given Fiber app.
// With publicFeed false, GET /tasks/all requires an admin token.
func Register(app *fiber.App, authH *handlers.AuthHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler, authMW fiber.Handler, publicFeed bool) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/register", authH.Register)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)
	app.Get("/dashboard", authMW, handlers.Dashboard)

	if publicFeed {
		app.Get("/tasks/all", tasks.ListAll)
	} else {
		app.Get("/tasks/all", authMW, jwt.RequireRole(auth.RoleAdmin), tasks.ListAll)
	}
	app.Post("/tasks", authMW, tasks.Create)
	app.Get("/tasks", authMW, tasks.ListOwn)
	app.Put("/tasks/:taskId", authMW, tasks.Update)
	app.Delete("/tasks/:taskId", authMW, tasks.Delete)
}
