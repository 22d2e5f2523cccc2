package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Symbol is the currency prefix used on every rendered monetary value.
const Symbol = "N"

// Amount is a monetary value in minor units (kobo). Keeping amounts as
// integers means repeated sums never accumulate floating-point drift.
type Amount int64

// Parse parses a decimal string such as "4900.00" or "2000" into an Amount.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return Amount(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()), nil
}

// FromMajor converts a whole major-unit value (e.g. 2000 naira) to an Amount.
func FromMajor(v int64) Amount {
	return Amount(v * 100)
}

// String formats the amount with exactly two decimal places, no symbol.
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}

// Display formats the amount with the currency prefix, e.g. "N4900.00".
func (a Amount) Display() string {
	return Symbol + a.String()
}

// MulQuantity returns the amount multiplied by an item quantity.
func (a Amount) MulQuantity(qty int) Amount {
	return a * Amount(qty)
}

// MarshalJSON emits the amount as a plain decimal number with two decimal
// places, matching the record backend's wire format.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts any JSON number ("4900", "4900.0", "4900.00") and
// converts it to minor units without going through float64.
func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := Parse(string(data))
	if err != nil {
		return err
	}

	*a = v

	return nil
}
