package middleware

import (
	"net/http"

	"iptv-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

const AdminTokenCookie = "admin_token"

// ContextKeyAdmin is where the middleware stores the verified admin username.
const ContextKeyAdmin = "admin_username"

// AdminAuth validates the admin session cookie on every request. There is no
// shared login state: each request stands alone with the token it presents.
func AdminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminTokenCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			claims, err := authService.VerifyToken(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			c.Set(ContextKeyAdmin, claims.Username)
			return next(c)
		}
	}
}
