package handlers

import (
	"net/http"
	"time"

	"github.com/damacus/iron-navigator/internal/middleware"
	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/damacus/iron-navigator/internal/utils"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SessionLifetime is how long a session cookie stays valid
const SessionLifetime = 24 * time.Hour

type AuthHandler struct {
	authService   *services.AuthService
	nav           Navigator
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, nav Navigator, secureCookies bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		nav:           nav,
		secureCookies: secureCookies,
		logger:        logger.Named("auth"),
	}
}

type loginRequest struct {
	AccessKey string `json:"accessKey" form:"accessKey"`
	SecretKey string `json:"secretKey" form:"secretKey"`
	Region    string `json:"region" form:"region"`
}

type sessionResponse struct {
	AccessKey     string `json:"accessKey"`
	DefaultRegion string `json:"defaultRegion,omitempty"`
}

// Login validates the key pair against the store and seals it into the session cookie
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AccessKey == "" || req.SecretKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "access key and secret key are required")
	}

	identity := models.Identity{AccessKey: req.AccessKey, SecretKey: req.SecretKey, DefaultRegion: req.Region}

	// ListBuckets works for every user, so it doubles as a credential check
	if _, _, err := h.nav.ListBuckets(c.Request().Context(), &identity, 0, 1); err != nil {
		h.logger.Info("login rejected", zap.String("access_key", req.AccessKey), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: invalid credentials or endpoint unreachable")
	}

	encrypted, err := h.authService.EncryptIdentity(identity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session").SetInternal(err)
	}

	c.SetCookie(h.sessionCookie(c, encrypted, time.Now().Add(SessionLifetime)))
	return c.JSON(http.StatusOK, sessionResponse{AccessKey: identity.AccessKey, DefaultRegion: identity.DefaultRegion})
}

// Logout clears the session
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := h.sessionCookie(c, "", time.Now().Add(-1*time.Hour))
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(c echo.Context, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     utils.CookieName,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies || middleware.IsSecureRequest(c),
	}
}
