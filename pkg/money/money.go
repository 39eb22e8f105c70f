package money

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is a monetary amount in Euro cents. All arithmetic on totals,
// tender sums and change is done on this type; decimal Euro values only
// appear at the storage and display boundary.
type Cents int64

// ToCents converts a decimal Euro amount to cents, rounding half-up.
// The rounding policy matters for exactness: 2.505 becomes 251 cents.
func ToCents(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Euros converts back to a decimal Euro amount for the boundary.
func (c Cents) Euros() float64 {
	return float64(c) / 100
}

func (c Cents) Add(other Cents) Cents {
	return c + other
}

// MulQty scales a unit price by a cart quantity.
func (c Cents) MulQty(qty int) Cents {
	return c * Cents(qty)
}

var printer = message.NewPrinter(language.German)

// Format renders an amount for display, e.g. 950 -> "9,50 €".
func (c Cents) Format() string {
	return printer.Sprintf("%.2f €", c.Euros())
}

// MarshalJSON serializes as a plain decimal number with two fraction
// digits, matching the persisted record format.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Euros(), 'f', 2, 64)), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*c = ToCents(f)
	return nil
}
