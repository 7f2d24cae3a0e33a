package drip

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode defines how monetary amounts are rounded to the configured precision.
type RoundingMode int

const (
	// HalfEven rounds to the nearest neighbour, ties to the even one (banker's rounding).
	HalfEven RoundingMode = iota
	// HalfUp rounds to the nearest neighbour, ties away from zero.
	HalfUp
	// Down truncates toward zero.
	Down
)

func (r RoundingMode) String() string {
	switch r {
	case HalfEven:
		return "half-even"
	case HalfUp:
		return "half-up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseRoundingMode parses a string into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(s) {
	case "half-even", "bank", "":
		return HalfEven, nil
	case "half-up":
		return HalfUp, nil
	case "down", "truncate":
		return Down, nil
	default:
		return 0, fmt.Errorf("unknown rounding mode: %q", s)
	}
}

func (r *RoundingMode) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRoundingMode(string(text))
	return err
}

func (r RoundingMode) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Precision is the fixed-point policy applied to every monetary mutation of a simulation.
// Places counts fraction digits, not significant digits: 4 keeps 1234.5678 and 0.0001.
type Precision struct {
	Places int32        `yaml:"places"` // digits kept after the decimal point
	Mode   RoundingMode `yaml:"mode"`
}

// DefaultPrecision keeps 4 fraction digits with banker's rounding.
var DefaultPrecision = Precision{Places: 4, Mode: HalfEven}

// round applies the precision to a decimal.
func (p Precision) round(d decimal.Decimal) decimal.Decimal {
	switch p.Mode {
	case HalfUp:
		return d.Round(p.Places)
	case Down:
		return d.Truncate(p.Places)
	default:
		return d.RoundBank(p.Places)
	}
}

// Round returns m rounded to the precision.
func (p Precision) Round(m Money) Money { return Money{value: p.round(m.value), cur: m.cur} }
