package handlers

import (
	"errors"
	"net/http"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/damacus/iron-navigator/internal/utils"
	"github.com/labstack/echo/v4"
)

// GetIdentity retrieves the session identity from the context
func GetIdentity(c echo.Context) (*models.Identity, error) {
	val := c.Get(utils.ContextKeyIdentity)
	if val == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	identity, ok := val.(*models.Identity)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return identity, nil
}

// toHTTPError maps navigator errors onto API status codes
func toHTTPError(err error) *echo.HTTPError {
	var perr *services.ProtocolError
	switch {
	case errors.Is(err, services.ErrNoAccountConfigured):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNoBucketSpecified),
		errors.Is(err, services.ErrDirectoryDeleteUnsupported),
		errors.Is(err, services.ErrInvalidBucketName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &perr):
		return echo.NewHTTPError(http.StatusBadGateway, perr.Message)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
	}
}
