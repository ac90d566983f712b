package commands

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrInvalidOrderRequest is returned for malformed carts. It is raised before any
	// transaction opens; the caller can fix the input and resubmit.
	ErrInvalidOrderRequest = errors.New("invalid order request")
)

// OrderLine is one cart entry: a menu item reference, how many portions, and an
// optional note for the kitchen.
type OrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
	Note       string
}

// CreateOrderCommand places a cart on a table.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), tableID, []OrderLine{
//	    {MenuItemID: pizzaID, Quantity: 2},
//	    {MenuItemID: saladID, Quantity: 1, Note: "no croutons"},
//	})
//	if errors.Is(err, ErrInvalidOrderRequest) {
//	    return err // 400, nothing touched the store
//	}
//
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	tableID kernel.UUID
	lines   []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the cart shape. Every violation is reported, joined,
// and each of them matches ErrInvalidOrderRequest.
func NewCreateOrderCommand(orderID, tableID kernel.UUID, lines []OrderLine) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTableID(tableID),
		command.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) TableID() kernel.UUID {
	return c.tableID
}

// Lines returns a copy of the cart in submission order.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// MenuItemIDs returns the referenced menu items in submission order, duplicates included.
func (c CreateOrderCommand) MenuItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		ids = append(ids, line.MenuItemID)
	}
	return ids
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return fmt.Errorf("%w: order id: %w", ErrInvalidOrderRequest, err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return fmt.Errorf("%w: table id: %w", ErrInvalidOrderRequest, err)
	}
	c.tableID = tableID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidOrderRequest)
	}

	var errList []error
	for idx, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("%w: item %d: menu item id: %w", ErrInvalidOrderRequest, idx, err))
		}
		if line.Quantity <= 0 || line.Quantity > order.MaxQuantity {
			errList = append(errList, fmt.Errorf("%w: item %d: quantity must be between 1 and %d, got %d",
				ErrInvalidOrderRequest, idx, order.MaxQuantity, line.Quantity))
		}
		if len(strings.TrimSpace(line.Note)) > order.MaxNoteLength {
			errList = append(errList, fmt.Errorf("%w: item %d: note is longer than %d characters",
				ErrInvalidOrderRequest, idx, order.MaxNoteLength))
		}
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
