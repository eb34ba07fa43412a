package middleware

import (
	"net/http"

	"github.com/damacus/iron-navigator/internal/services"
	"github.com/damacus/iron-navigator/internal/utils"
	"github.com/labstack/echo/v4"
)

var publicPaths = map[string]bool{
	"/login":  true,
	"/logout": true,
	"/health": true,
}

// AuthMiddleware restores the session identity from the IronSeal cookie
func AuthMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if publicPaths[c.Request().URL.Path] {
				return next(c)
			}

			cookie, err := c.Cookie(utils.CookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}

			identity, err := authService.DecryptIdentity(cookie.Value)
			if err != nil {
				// Clear it so the client stops replaying it
				cookie.Value = ""
				cookie.Path = "/"
				cookie.MaxAge = -1
				c.SetCookie(cookie)
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(utils.ContextKeyIdentity, identity)

			return next(c)
		}
	}
}
