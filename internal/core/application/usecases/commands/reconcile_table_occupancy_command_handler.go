package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// ReconcileTableOccupancyCommandHandler checks every table in its own short transaction:
// lock the table, count its active orders, fix the status if it is wrong.
//
// One table failing does not stop the others; all failures are returned joined.
type ReconcileTableOccupancyCommandHandler struct {
	uowFactory  TableUoWFactory
	coordinator services.TableOccupancyCoordinator
	notifier    notifier
	now         func() time.Time
}

func NewReconcileTableOccupancyCommandHandler(
	uowFactory TableUoWFactory,
	publisher ports.EventPublisher,
	statistics StatisticsRefresher,
	logger *slog.Logger,
) ReconcileTableOccupancyCommandHandler {
	return ReconcileTableOccupancyCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewTableOccupancyCoordinator(),
		notifier: notifier{
			publisher:  publisher,
			statistics: statistics,
			logger:     logger.With("component", "reconcile_table_occupancy_handler"),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the tables whose status was corrected.
func (h ReconcileTableOccupancyCommandHandler) Handle(
	ctx context.Context,
	command ReconcileTableOccupancyCommand,
) ([]*table.Table, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ids, err := h.listTables(ctx)
	if err != nil {
		return nil, err
	}

	var (
		fixed   []*table.Table
		errList []error
	)
	for _, id := range ids {
		t, changed, reconcileErr := h.reconcile(ctx, id)
		switch {
		case errors.Is(reconcileErr, errs.ErrObjectNotFound):
			// removed by the registry since listTables
		case reconcileErr != nil:
			errList = append(errList, fmt.Errorf("table %s: %w", id, reconcileErr))
		case changed:
			fixed = append(fixed, t)
		}
	}

	if len(fixed) > 0 {
		now := h.now()
		published := make([]events.Event, 0, len(fixed))
		for _, t := range fixed {
			published = append(published, events.NewTableStatusUpdated(t, now))
		}
		h.notifier.afterCommit(ctx, published...)
	}

	return fixed, errors.Join(errList...)
}

func (h ReconcileTableOccupancyCommandHandler) listTables(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TableRepository().GetAllIDs(ctx)
}

func (h ReconcileTableOccupancyCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (*table.Table, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()

	t, err := tableRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, false, err
	}

	active, err := uow.OrderRepository().CountActiveByTable(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changed, err := h.coordinator.Reconcile(t, active, h.now())
	if err != nil || !changed {
		return t, false, err
	}

	if err = tableRepo.Update(ctx, t); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return t, true, nil
}
