package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance: operational endpoints, request logging, OpenAPI
// request validation and every API route of server.
func NewRouter(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(swagger)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, swagger)
	})
	if err = registerSwaggerUI(e, swagger); err != nil {
		return nil, err
	}

	servers.RegisterHandlers(e, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "Request",
					slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request", slog.Group("http", attrs...))
			return nil
		},
	})
}
