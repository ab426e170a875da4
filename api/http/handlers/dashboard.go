package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Durgatriveni/Task-backend/api/http/presenter"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
)

const (
	adminWelcome = "Welcome Admin! You have full access."
	userWelcome  = "Welcome User! You can only manage your tasks."
)

// Dashboard greets the caller according to the role in their token.
// @Summary Role dependent greeting
// @Tags    auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} presenter.MessageResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /dashboard [get]
func Dashboard(c *fiber.Ctx) error {
	id, _ := jwt.IdentityFrom(c)
	if id.IsAdmin() {
		return presenter.Message(c, http.StatusOK, adminWelcome)
	}
	return presenter.Message(c, http.StatusOK, userWelcome)
}
