// Package servers is the HTTP contract of the service: request and response models,
// echo routing for ServerInterface, and the embedded OpenAPI document. The code follows
// the oapi-codegen echo layout but is maintained by hand; change openapi.yaml and these
// files together.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Server-sent stream of committed changes
	// (GET /api/v1/events)
	StreamEvents(ctx echo.Context) error
	// List menu items
	// (GET /api/v1/menu_items)
	GetMenuItems(ctx echo.Context, params GetMenuItemsParams) error
	// List orders with their items
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// Place an order for a table
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Move an order to its next status
	// (PUT /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId OrderId) error
	// Current floor statistics
	// (GET /api/v1/statistics)
	GetStatistics(ctx echo.Context) error
	// List tables with their occupancy
	// (GET /api/v1/tables)
	GetTables(ctx echo.Context) error
	// Re-derive every table's occupancy from its active orders
	// (POST /api/v1/tables/reconcile)
	ReconcileTables(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// StreamEvents converts echo context to params.
func (w *ServerInterfaceWrapper) StreamEvents(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.StreamEvents(ctx)
	return err
}

// GetMenuItems converts echo context to params.
func (w *ServerInterfaceWrapper) GetMenuItems(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetMenuItemsParams
	// ------------- Optional query parameter "available" -------------

	err = runtime.BindQueryParameter("form", true, false, "available", ctx.QueryParams(), &params.Available)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter available: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetMenuItems(ctx, params)
	return err
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params GetOrdersParams
	// ------------- Optional query parameter "active" -------------

	err = runtime.BindQueryParameter("form", true, false, "active", ctx.QueryParams(), &params.Active)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter active: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrders(ctx, params)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpdateOrderStatus(ctx, orderId)
	return err
}

// GetStatistics converts echo context to params.
func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetStatistics(ctx)
	return err
}

// GetTables converts echo context to params.
func (w *ServerInterfaceWrapper) GetTables(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetTables(ctx)
	return err
}

// ReconcileTables converts echo context to params.
func (w *ServerInterfaceWrapper) ReconcileTables(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ReconcileTables(ctx)
	return err
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/events", wrapper.StreamEvents)
	router.GET(baseURL+"/api/v1/menu_items", wrapper.GetMenuItems)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/v1/statistics", wrapper.GetStatistics)
	router.GET(baseURL+"/api/v1/tables", wrapper.GetTables)
	router.POST(baseURL+"/api/v1/tables/reconcile", wrapper.ReconcileTables)

}
