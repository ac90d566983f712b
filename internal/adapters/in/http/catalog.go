package http

import (
	"net/http"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// GetMenuItems handles GET /api/v1/menu_items.
func (s *Server) GetMenuItems(ctx echo.Context, params servers.GetMenuItemsParams) error {
	query := queries.NewGetMenuItemsQuery(params.Available != nil && *params.Available)

	items, err := s.getMenuItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.MenuItem, len(items))
	for i, item := range items {
		response[i] = servers.MenuItem{
			Id:          item.ID.Bytes(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.String(),
			Category:    item.Category,
			ImageUrl:    item.ImageURL,
			IsAvailable: item.IsAvailable,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTables handles GET /api/v1/tables.
func (s *Server) GetTables(ctx echo.Context) error {
	tables, err := s.getTablesHandler.Handle(ctx.Request().Context(), queries.NewGetTablesQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]servers.Table, len(tables))
	for i, t := range tables {
		response[i] = servers.Table{
			Id:        t.ID.Bytes(),
			QrCode:    t.QRCode,
			Status:    servers.TableStatus(t.Status.String()),
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReconcileTables handles POST /api/v1/tables/reconcile and returns the corrected tables.
// Tables that could not be checked are logged; the others are still reported.
func (s *Server) ReconcileTables(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	fixed, err := s.reconcileTablesHandler.Handle(reqCtx, commands.NewReconcileTableOccupancyCommand())
	if err != nil && len(fixed) == 0 {
		return s.writeError(ctx, err)
	}
	if err != nil {
		s.logger.WarnContext(reqCtx, "Table reconciliation finished with errors", "error", err)
	}

	response := make([]servers.Table, len(fixed))
	for i, t := range fixed {
		response[i] = tableFromDomain(t)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStatistics handles GET /api/v1/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	snapshot, err := s.getStatisticsHandler.Handle(ctx.Request().Context(), queries.NewGetStatisticsSnapshotQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Statistics{
		TotalTables:     snapshot.TotalTables,
		OccupiedTables:  snapshot.OccupiedTables,
		AvailableTables: snapshot.AvailableTables,
		PendingOrders:   snapshot.PendingOrders,
		PreparingOrders: snapshot.PreparingOrders,
		ReadyOrders:     snapshot.ReadyOrders,
		ServedOrders:    snapshot.ServedOrders,
		CompletedOrders: snapshot.CompletedOrders,
		CancelledOrders: snapshot.CancelledOrders,
		TotalRevenue:    snapshot.TotalRevenue.String(),
	})
}
