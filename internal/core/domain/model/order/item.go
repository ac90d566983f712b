package order

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

const (
	// MaxNoteLength bounds the free-text note a guest can attach to a line.
	MaxNoteLength = 500
	// MaxQuantity bounds the portions of one line so that totals fit numeric(12,2).
	MaxQuantity = 1000
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order. Its price is the menu item's unit price at the moment
// the order was created and never follows later menu price edits.
type Item struct {
	id         kernel.UUID
	menuItemID kernel.UUID
	quantity   int
	price      kernel.Money
	note       string

	isConstructed bool
}

// NewItem validates and builds an order line.
//
// Parameters:
//   - id: identifier of the line
//   - menuItemID: the referenced menu item (non-owning reference)
//   - quantity: number of portions, in [1, MaxQuantity]
//   - price: unit price snapshotted from the menu
//   - note: optional free text (e.g. "no onions")
func NewItem(id, menuItemID kernel.UUID, quantity int, price kernel.Money, note string) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setQuantity(quantity),
		item.setPrice(price),
		item.setNote(note),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the referenced menu item.
func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the number of portions.
func (i *Item) Quantity() int {
	return i.quantity
}

// Price returns the snapshotted unit price.
func (i *Item) Price() kernel.Money {
	return i.price
}

// Note returns the optional note, empty when absent.
func (i *Item) Note() string {
	return i.note
}

// LineTotal returns quantity × price.
func (i *Item) LineTotal() kernel.Money {
	return i.price.MultiplyBy(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setNote(note string) error {
	note = strings.TrimSpace(note)
	if len(note) > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", len(note), 0, MaxNoteLength)
	}
	i.note = note
	return nil
}
