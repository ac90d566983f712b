package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"restaurant/internal/adapters/out/broadcast"
	"restaurant/internal/core/application/statistics"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownMenuItem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrInvalidOrderRequest),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransientStoreFailure),
		errors.Is(err, statistics.ErrStatisticsUnavailable),
		errors.Is(err, broadcast.ErrHubClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusFor(err)
	reqCtx := ctx.Request().Context()

	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(reqCtx, "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "status", code, "error", err)
		message = http.StatusText(code)
		if code == http.StatusServiceUnavailable {
			message += ", retry later"
		}
	} else {
		s.logger.DebugContext(reqCtx, "Request rejected",
			"method", ctx.Request().Method, "path", ctx.Path(), "status", code, "error", err)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// errorHandler renders errors raised outside the server methods (routing, parameter
// binding, request validation, panics) with the same Error body.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := statusFor(err)
		message := http.StatusText(code)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "Unhandled request error", "error", err)
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(code)
			return
		}
		_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
	}
}
