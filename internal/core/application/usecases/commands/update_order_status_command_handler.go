package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the order to update does not exist. It also matches
// errs.ErrObjectNotFound.
var ErrOrderNotFound = errors.New("order not found")

// UpdateOrderStatusCommandHandler drives one order through the status graph.
//
// The order row is locked first, so two concurrent updates of the same order serialize:
// the second one sees the status written by the first and fails with
// order.ErrIllegalTransition if its target is no longer reachable. When the new status
// releases the table, the table row is locked next and freed only if no other active
// order remains on it.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.TableOccupancyCoordinator
	notifier    notifier
	now         func() time.Time
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	statistics StatisticsRefresher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewTableOccupancyCoordinator(),
		notifier: notifier{
			publisher:  publisher,
			statistics: statistics,
			logger:     logger.With("component", "update_order_status_handler"),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Handle applies the transition and returns the committed order.
//
// Returns:
//   - ErrOrderNotFound when the order does not exist, with no side effects
//   - *order.IllegalTransitionError when the target is unreachable; nothing is written
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.now()
	orderRepo := uow.OrderRepository()

	updated, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	previous, err := updated.ChangeStatus(command.Status(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	var (
		released     *table.Table
		tableChanged bool
	)
	if updated.Status().IsReleased() {
		released, tableChanged, err = h.releaseTable(ctx, uow, updated, now)
		if err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	published := []events.Event{events.NewOrderStatusUpdated(updated, previous, now)}
	if tableChanged {
		published = append(published, events.NewTableStatusUpdated(released, now))
	}
	h.notifier.afterCommit(ctx, published...)

	return updated, nil
}

// releaseTable re-evaluates the order's table and reports whether it was freed.
func (h UpdateOrderStatusCommandHandler) releaseTable(
	ctx context.Context,
	uow UoW,
	released *order.Order,
	now time.Time,
) (*table.Table, bool, error) {
	tableRepo := uow.TableRepository()

	t, err := tableRepo.GetForUpdate(ctx, released.TableID())
	if err != nil {
		return nil, false, err
	}

	active, err := uow.OrderRepository().CountActiveByTable(ctx, released.TableID())
	if err != nil {
		return nil, false, err
	}

	changed, err := h.coordinator.OnOrderReleased(t, active, now)
	if err != nil || !changed {
		return t, false, err
	}

	if err = tableRepo.Update(ctx, t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}
