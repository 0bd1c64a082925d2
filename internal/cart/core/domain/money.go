package domain

import "github.com/shopspring/decimal"

// Money is a decimal amount encoded as a plain JSON number.
type Money struct {
	decimal.Decimal
}

func NewMoney(units int64) Money {
	return Money{Decimal: decimal.NewFromInt(units)}
}

// ParseMoney parses a decimal string such as "199.90".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Mul multiplies the amount by a quantity.
func (m Money) Mul(qty int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}
