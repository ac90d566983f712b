package kernel

import (
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every amount (cents).
const MoneyScale = 2

var (
	// ErrMoneyIsNotConstructed is returned when a zero-value Money is validated.
	ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney, MoneyFromString or ZeroMoney")

	// ErrMoneyIsNegative is returned for amounts below zero.
	ErrMoneyIsNegative = errs.NewValueIsInvalidErrorWithCause("money", errors.New("amount must not be negative"))

	// ErrMoneyHasSubCentPrecision is returned for amounts with more than MoneyScale fractional digits.
	ErrMoneyHasSubCentPrecision = errs.NewValueIsInvalidErrorWithCause(
		"money", fmt.Errorf("amount must not have more than %d fractional digits", MoneyScale))
)

// Money is a non-negative amount in the restaurant's single currency.
// Arithmetic is exact: amounts are held as decimals, never as binary floats,
// so summing line totals cannot drift by a cent.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount and returns it as Money.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, ErrMoneyHasSubCentPrecision
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(amount)
}

// MustMoneyFromString is MoneyFromString for literals known to be valid.
func MustMoneyFromString(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate rejects zero values that bypassed the constructors.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Decimal exposes the exact amount to persistence and transport adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// MultiplyBy returns m × quantity. Quantity must be positive; callers validate it.
func (m Money) MultiplyBy(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}
}

// IsEqual compares amounts numerically, so 5 and 5.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
