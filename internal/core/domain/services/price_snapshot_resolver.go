package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// ErrUnknownMenuItem is matched by every UnknownMenuItemError.
var ErrUnknownMenuItem = errors.New("unknown menu item")

// UnknownMenuItemError lists the requested menu item identifiers that did not resolve.
type UnknownMenuItemError struct {
	IDs []kernel.UUID
}

func (e *UnknownMenuItemError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s: %s", ErrUnknownMenuItem, strings.Join(ids, ", "))
}

func (e *UnknownMenuItemError) Unwrap() error {
	return ErrUnknownMenuItem
}

// PriceSource returns the current unit price of every menu item it knows among ids.
// Identifiers it does not know are simply absent from the result.
type PriceSource interface {
	GetPrices(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]kernel.Money, error)
}

// PriceSnapshotResolver snapshots menu prices at order creation time.
//
// The source is expected to read inside the caller's transaction, so the prices are
// consistent with the rest of the creation.
//
// Example:
//
//	prices, err := services.NewPriceSnapshotResolver().Resolve(ctx, uow.MenuRepository(), ids)
//	if errors.Is(err, services.ErrUnknownMenuItem) {
//	    // abort the whole creation, nothing may be persisted
//	}
type PriceSnapshotResolver struct{}

func NewPriceSnapshotResolver() PriceSnapshotResolver {
	return PriceSnapshotResolver{}
}

// Resolve de-duplicates ids and fetches their prices from source.
//
// Returns:
//   - a map holding a price for every requested identifier
//   - *UnknownMenuItemError naming every identifier the source did not resolve
//   - the source's error, unchanged, if the lookup itself failed
func (PriceSnapshotResolver) Resolve(
	ctx context.Context,
	source PriceSource,
	ids []kernel.UUID,
) (map[kernel.UUID]kernel.Money, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("menu item ids")
	}

	distinct := make([]kernel.UUID, 0, len(ids))
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	prices, err := source.GetPrices(ctx, distinct)
	if err != nil {
		return nil, err
	}

	var missing []kernel.UUID
	for _, id := range distinct {
		if _, ok := prices[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &UnknownMenuItemError{IDs: missing}
	}

	return prices, nil
}
