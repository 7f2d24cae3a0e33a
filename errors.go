package drip

import (
	"errors"
	"fmt"

	"github.com/etnz/drip/date"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrInvalidSeries is wrapped by every price or dividend series validation error.
var ErrInvalidSeries = errors.New("invalid series")

// MissingPriceDataError reports that a year required to bound the simulation window has no priced date.
type MissingPriceDataError struct {
	Year int
}

func (e *MissingPriceDataError) Error() string {
	return fmt.Sprintf("security price history doesn't have a priced date in %d", e.Year)
}

// InvalidWindowError reports a simulation window that cannot be simulated.
type InvalidWindowError struct {
	Start, End date.Date
	Reason     string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid simulation window %s..%s: %s", e.Start, e.End, e.Reason)
}
