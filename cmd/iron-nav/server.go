package main

import (
	"net/http"

	"github.com/damacus/iron-navigator/internal/config"
	"github.com/damacus/iron-navigator/internal/handlers"
	customMiddleware "github.com/damacus/iron-navigator/internal/middleware"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func newServer(nav handlers.Navigator, authService *services.AuthService, cfg config.ServerConfig, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	authHandler := handlers.NewAuthHandler(authService, nav, cfg.SecureCookies, logger)
	bucketsHandler := handlers.NewBucketsHandler(nav, logger)

	// Middleware
	httpLogger := logger.Named("http")
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				httpLogger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			httpLogger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())
	e.Use(customMiddleware.CSRF())
	// Auth applies globally and skips the public routes itself
	e.Use(customMiddleware.AuthMiddleware(authService))

	// Public Routes
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Protected Routes
	api := e.Group("/api")
	api.GET("/buckets", bucketsHandler.ListBuckets)
	api.GET("/buckets/regions", bucketsHandler.BucketRegions)
	api.POST("/buckets", bucketsHandler.CreateBucket)
	api.GET("/browse", bucketsHandler.Browse)
	api.GET("/browse/all", bucketsHandler.BrowseAll)
	api.POST("/delete", bucketsHandler.Delete)

	return e
}
