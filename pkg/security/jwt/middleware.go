package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
)

// CookieName is the cookie that carries the token between client and server.
const CookieName = "token"

const (
	localUserID = "userId"
	localRole   = "role"
)

// NewAuthMiddleware returns a Fiber middleware that validates the token from
// the "token" cookie, falling back to the Authorization header.
// On success sets user id and role into c.Locals.
func NewAuthMiddleware(verifier auth.TokenVerifier, log *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "Access Denied"})
		}
		id, err := verifier.Verify(tokenStr)
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":    c.Path(),
				"expired": errors.Is(err, auth.ErrTokenExpired),
			}).Debug("token rejected")
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "Invalid Token"})
		}
		c.Locals(localUserID, id.UserID)
		c.Locals(localRole, id.Role)
		return c.Next()
	}
}

// RequireRole must run after NewAuthMiddleware.
func RequireRole(role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok || id.Role != role {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by NewAuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	userID, _ := c.Locals(localUserID).(string)
	role, _ := c.Locals(localRole).(auth.Role)
	if userID == "" {
		return auth.Identity{}, false
	}
	return auth.Identity{UserID: userID, Role: role}, true
}

func extractToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies(CookieName)); v != "" {
		return v
	}
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return ""
	}
	// Support both "Bearer <token>" and "<token>" (no prefix).
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authHeader
}
