package http

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// apiDoc serves the OpenAPI document to swag, which backs the Swagger UI.
type apiDoc struct {
	doc string
}

func (d apiDoc) ReadDoc() string {
	return d.doc
}

var (
	docOnce sync.Once
	docErr  error
)

// registerSwaggerUI mounts the Swagger UI at /swagger/. The document is registered with
// swag once per process.
func registerSwaggerUI(e *echo.Echo, swagger *openapi3.T) error {
	docOnce.Do(func() {
		data, err := swagger.MarshalJSON()
		if err != nil {
			docErr = fmt.Errorf("render openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, apiDoc{doc: string(data)})
	})
	if docErr != nil {
		return docErr
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
