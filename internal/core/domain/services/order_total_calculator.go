package services

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
)

// ErrInvalidQuantity is returned for a line whose quantity is not a positive integer.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// PricedLine is one (quantity, unit price) pair.
type PricedLine struct {
	Quantity  int
	UnitPrice kernel.Money
}

// OrderTotalCalculator sums quantity × unit price over the lines with exact decimal
// arithmetic.
type OrderTotalCalculator struct{}

func NewOrderTotalCalculator() OrderTotalCalculator {
	return OrderTotalCalculator{}
}

// Calculate returns Σ(quantity × unit price). An empty input totals zero.
func (OrderTotalCalculator) Calculate(lines []PricedLine) (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for idx, line := range lines {
		if line.Quantity <= 0 {
			return kernel.Money{}, fmt.Errorf("line %d: %w: got %d", idx, ErrInvalidQuantity, line.Quantity)
		}
		if err := line.UnitPrice.Validate(); err != nil {
			return kernel.Money{}, fmt.Errorf("line %d: %w", idx, err)
		}
		total = total.Add(line.UnitPrice.MultiplyBy(line.Quantity))
	}
	return total, nil
}
