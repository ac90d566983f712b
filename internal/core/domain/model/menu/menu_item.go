package menu

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MenuItem is a dish or drink offered by the restaurant.
type MenuItem struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	category    string
	available   bool

	guard guard.ConstructorGuard
}

// NewMenuItem validates and builds a MenuItem. Name and category are required and the
// price must be a constructed, non-negative Money.
func NewMenuItem(
	id kernel.UUID,
	name, description string,
	price kernel.Money,
	category string,
	available bool,
) (*MenuItem, error) {
	item := &MenuItem{
		description: description,
		available:   available,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(price),
		item.setCategory(category),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (m *MenuItem) Validate() error {
	if m == nil {
		return ErrMenuItemIsNotConstructed
	}
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

// ID returns the menu item's identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// Name returns the display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Description returns the optional free-text description.
func (m *MenuItem) Description() string {
	return m.description
}

// Price returns the live unit price.
func (m *MenuItem) Price() kernel.Money {
	return m.price
}

// Category returns the menu section the item belongs to.
func (m *MenuItem) Category() string {
	return m.category
}

// IsAvailable reports whether the kitchen currently offers the item.
func (m *MenuItem) IsAvailable() bool {
	return m.available
}

func (m *MenuItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *MenuItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *MenuItem) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	m.price = price
	return nil
}

func (m *MenuItem) setCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	m.category = category
	return nil
}
