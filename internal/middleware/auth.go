package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/deppfellow/jobboard/internal/errs"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/labstack/echo/v4"
)

// AdminKey is set to true in the Echo context once RequireAdmin accepts a request.
const AdminKey = "is_admin"

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{server: s}
}

// RequireAdmin accepts only requests carrying
// "Authorization: Bearer <auth.admin_token>".
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	expected := []byte(auth.server.Config.Auth.AdminToken)

	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")

		if !ok || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			GetLogger(c).Warn().
				Str("function", "RequireAdmin").
				Bool("header_present", header != "").
				Msg("admin authentication failed")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(AdminKey, true)
		return next(c)
	}
}

// IsAdmin reports whether RequireAdmin accepted the request.
func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(AdminKey).(bool)
	return admin
}
