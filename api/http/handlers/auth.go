package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Durgatriveni/Task-backend/api/http/presenter"
	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
)

type AuthHandler struct {
	useCase      auth.AuthUseCase
	cookieSecure bool
	log          *logrus.Entry
}

func NewAuthHandler(useCase auth.AuthUseCase, cookieSecure bool, log *logrus.Entry) *AuthHandler {
	return &AuthHandler{useCase: useCase, cookieSecure: cookieSecure, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register handles user registration. It does not log the user in.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	_, err := h.useCase.Register(c.UserContext(), auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrRoleRequired):
			return presenter.Error(c, http.StatusBadRequest, "Role is required")
		case errors.Is(err, auth.ErrInvalidRole):
			return presenter.Error(c, http.StatusBadRequest, "Role must be user or admin")
		case errors.Is(err, auth.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, "Username, email and password are required")
		case errors.Is(err, auth.ErrPasswordTooLong):
			return presenter.Error(c, http.StatusBadRequest, "Password must be at most 72 bytes")
		case errors.Is(err, auth.ErrEmailInUse):
			return presenter.Error(c, http.StatusBadRequest, "Email already in use")
		default:
			h.log.WithError(err).Error("register user")
			return presenter.Error(c, http.StatusInternalServerError, "User registration failed")
		}
	}
	return presenter.Message(c, http.StatusOK, "User registered successfully!")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Role    auth.Role `json:"role"`
}

// Login checks credentials and sets the token cookie.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			return presenter.Error(c, http.StatusBadRequest, "User not found")
		case errors.Is(err, auth.ErrInvalidPassword):
			return presenter.Error(c, http.StatusBadRequest, "Invalid password")
		default:
			h.log.WithError(err).Error("login")
			return presenter.Error(c, http.StatusInternalServerError, "failed to login")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     jwt.CookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return presenter.JSON(c, http.StatusOK, loginResponse{
		Message: "Login successful!",
		Role:    result.User.Role,
	})
}

// Logout clears the token cookie. Tokens already handed out stay valid until they expire.
// @Summary Logout
// @Tags    auth
// @Produce json
// @Success 200 {object} presenter.MessageResponse
// @Router  /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(jwt.CookieName)
	return presenter.Message(c, http.StatusOK, "Logged out successfully!")
}
