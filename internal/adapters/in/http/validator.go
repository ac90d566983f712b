package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator rejects requests to documented operations whose parameters or body do
// not match the OpenAPI document. Requests to undocumented paths pass through untouched.
func RequestValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Match on path only; the document's server URLs depend on the deployment.
	swagger.Servers = nil

	router, err := legacyrouter.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError: false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return echo.NewHTTPError(http.StatusMethodNotAllowed, findErr.Error())
				}
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(validateErr))
			}

			return next(c)
		}
	}, nil
}

// validationMessage keeps the first line of a kin-openapi error; the rest is a schema dump.
func validationMessage(err error) string {
	message, _, _ := strings.Cut(err.Error(), "\n")
	return message
}
