package servers

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// RawSpec returns the OpenAPI document this package was generated from.
func RawSpec() []byte {
	out := make([]byte, len(rawSpec))
	copy(out, rawSpec)
	return out
}

// GetSwagger returns the Swagger specification corresponding to the generated code
// in this file.
func GetSwagger() (swagger *openapi3.T, err error) {
	loader := openapi3.NewLoader()
	swagger, err = loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
