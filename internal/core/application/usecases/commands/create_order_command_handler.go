package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/application/events"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// CreateOrderCommandHandler creates an order, its items and the table occupancy change
// in one transaction.
//
// Inside the transaction, in this order:
//  1. lock the table row
//  2. snapshot menu prices (UnknownMenuItem aborts everything)
//  3. compute the total and insert the pending order with its items
//  4. occupy the table
//
// After commit it publishes order.created and table.statusUpdated, then refreshes
// statistics.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, aggregator, logger)
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrUnknownMenuItem):
//	    // nothing was persisted
//	case errors.Is(err, errs.ErrTransientStoreFailure):
//	    // safe to retry the whole call
//	}
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	resolver    services.PriceSnapshotResolver
	calculator  services.OrderTotalCalculator
	coordinator services.TableOccupancyCoordinator
	notifier    notifier
	now         func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	statistics StatisticsRefresher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		resolver:    services.NewPriceSnapshotResolver(),
		calculator:  services.NewOrderTotalCalculator(),
		coordinator: services.NewTableOccupancyCoordinator(),
		notifier: notifier{
			publisher:  publisher,
			statistics: statistics,
			logger:     logger.With("component", "create_order_handler"),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the command and returns the committed order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
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
	tableRepo := uow.TableRepository()

	t, err := tableRepo.GetForUpdate(ctx, command.TableID())
	if err != nil {
		return nil, err
	}

	prices, err := h.resolver.Resolve(ctx, uow.MenuRepository(), command.MenuItemIDs())
	if err != nil {
		return nil, err
	}

	lines := command.Lines()
	items := make([]*order.Item, 0, len(lines))
	priced := make([]services.PricedLine, 0, len(lines))
	for _, line := range lines {
		price := prices[line.MenuItemID]

		item, itemErr := order.NewItem(kernel.NewUUID(), line.MenuItemID, line.Quantity, price, line.Note)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
		priced = append(priced, services.PricedLine{Quantity: line.Quantity, UnitPrice: price})
	}

	total, err := h.calculator.Calculate(priced)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(command.OrderID(), t.ID(), items, total, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if _, err = h.coordinator.OnOrderCreated(t, now); err != nil {
		return nil, err
	}

	if err = tableRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.afterCommit(ctx,
		events.NewOrderCreated(created, now),
		events.NewTableStatusUpdated(t, now),
	)

	return created, nil
}
