package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - places a cart on a table.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	tableID, err := kernel.UUIDFromBytes(body.TableId[:])
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("table_id", err))
	}

	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(item.MenuItemId[:])
		if idErr != nil {
			return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("menu_item_id", idErr))
		}
		line := commands.OrderLine{MenuItemID: menuItemID, Quantity: item.Quantity}
		if item.Notes != nil {
			line.Note = *item.Notes
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tableID, lines)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally only active ones.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	query := queries.NewGetOrdersQuery(params.Active != nil && *params.Active)

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromReadModel(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromReadModel(o))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, target)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}
