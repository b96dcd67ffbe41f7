package coinfolio

import "github.com/shopspring/decimal"

// Percent is a ratio: 0.25 is 25%.
type Percent struct {
	value decimal.Decimal
}

// P creates a Percent from a ratio.
func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](ratio T) Percent {
	return Percent{value: newDecimal(ratio)}
}

// fullGain is the gain reported for a position without cost basis.
var fullGain = Percent{value: decimal.NewFromInt(1)}

func (p Percent) Ratio() decimal.Decimal { return p.value }
func (p Percent) IsZero() bool           { return p.value.IsZero() }

// Equal compares two percents rounded to a hundredth of a percent.
func (p Percent) Equal(q Percent) bool {
	return p.value.Round(4).Equal(q.value.Round(4))
}

// String formats the percent with two decimal places, e.g "33.33%".
func (p Percent) String() string {
	return p.value.Shift(2).StringFixed(2) + "%"
}

// SignedString is like String with an explicit sign, 0 is represented as "-".
func (p Percent) SignedString() string {
	res := p.String()
	if res == "0.00%" || res == "-0.00%" {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + res
	}
	return res
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.Round(6).MarshalJSON()
}
