package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a price is stored with
const PriceScale int32 = 2

var (
	// ErrNegativePrice is returned when a price below zero is constructed
	ErrNegativePrice = errors.New("price cannot be negative")
	// ErrPriceScale is returned when a price has more fractional digits
	// than PriceScale and so cannot be stored exactly
	ErrPriceScale = errors.New("price has too many fractional digits")
)

// Price is a non-negative monetary amount in the restaurant's single
// currency. It is immutable: every operation returns a new Price.
type Price struct {
	amount decimal.Decimal
}

// NewPrice creates a Price, rejecting negative amounts and amounts finer
// than PriceScale. Trailing zeros do not count, so 12.300 is accepted.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, ErrNegativePrice
	}
	if !amount.Truncate(PriceScale).Equal(amount) {
		return Price{}, ErrPriceScale
	}
	return Price{amount: amount}, nil
}

// NewPriceFromString parses a decimal string such as "16000.00"
func NewPriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price string: %w", err)
	}
	return NewPrice(d)
}

// MustNewPrice is NewPrice for constants and tests; it panics on error
func MustNewPrice(s string) Price {
	p, err := NewPriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ZeroPrice returns a zero price
func ZeroPrice() Price {
	return Price{amount: decimal.Zero}
}

// Amount returns the underlying decimal
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// IsZero returns true if the price is zero
func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

// Add returns the sum of two prices
func (p Price) Add(other Price) Price {
	return Price{amount: p.amount.Add(other.amount)}
}

// Mul returns the price multiplied by a non-negative quantity
func (p Price) Mul(quantity int64) Price {
	return Price{amount: p.amount.Mul(decimal.NewFromInt(quantity))}
}

// GreaterThan returns true if p > other
func (p Price) GreaterThan(other Price) bool {
	return p.amount.GreaterThan(other.amount)
}

// Equals compares amounts numerically, so 16000 equals 16000.00
func (p Price) Equals(other Price) bool {
	return p.amount.Equal(other.amount)
}

// MinorUnits returns the amount in hundredths
func (p Price) MinorUnits() int64 {
	return p.amount.Shift(PriceScale).IntPart()
}

// String returns the amount with two fractional digits
func (p Price) String() string {
	return p.amount.StringFixed(PriceScale)
}

// MarshalJSON renders the price as a JSON string to avoid float rounding
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number
func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	price, err := NewPrice(d)
	if err != nil {
		return err
	}
	*p = price
	return nil
}

// Value implements driver.Valuer
func (p Price) Value() (driver.Value, error) {
	return p.amount.StringFixed(PriceScale), nil
}

// Scan implements sql.Scanner
func (p *Price) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan price: %w", err)
	}
	p.amount = d
	return nil
}
