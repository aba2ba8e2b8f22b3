package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount in integer minor units (cents). Keeping
// arithmetic in int64 means balances subtract to exact zero; decimals only
// appear at the JSON boundary.
type Amount int64

var centsFactor = decimal.NewFromInt(100)

// FromDecimal converts a decimal currency value to cents, rejecting values
// with sub-cent precision.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", d.String())
	}
	return Amount(cents.IntPart()), nil
}

// Parse converts a decimal string such as "500.00" to cents.
func Parse(raw string) (Amount, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return FromDecimal(d)
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(a)).Div(centsFactor)
}

func (a Amount) Cents() int64 { return int64(a) }

// String renders the amount with two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON emits a plain JSON number with two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
