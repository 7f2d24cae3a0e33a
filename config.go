package drip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds every parameter of a simulation run.
type Config struct {
	Investment     decimal.Decimal `yaml:"investment"`      // initial lump sum
	Currency       string          `yaml:"currency"`        // ISO code of every amount
	MonthlyFee     decimal.Decimal `yaml:"monthly_fee"`     // flat account fee, commissions count toward it
	WithholdingTax decimal.Decimal `yaml:"withholding_tax"` // fraction withheld on dividends
	Commission     Schedule        `yaml:"commission"`
	Precision      Precision       `yaml:"precision"`

	// StartYear and EndYear override the simulation window. Zero means the year after
	// the first price, and the year of the last price.
	StartYear int `yaml:"start_year,omitempty"`
	EndYear   int `yaml:"end_year,omitempty"`

	// MaxDays bounds the number of calendar days a run may step through.
	MaxDays int `yaml:"max_days"`
}

// DefaultConfig returns the configuration of a 10000 USD investment held at a broker
// charging a 10 USD monthly minimum, with the US 10% withholding tax for non residents.
func DefaultConfig() Config {
	return Config{
		Investment:     decimal.NewFromInt(10000),
		Currency:       "USD",
		MonthlyFee:     decimal.NewFromInt(10),
		WithholdingTax: decimal.RequireFromString("0.10"),
		Commission:     DefaultSchedule(),
		Precision:      DefaultPrecision,
		MaxDays:        100 * 366,
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration on top of the defaults, and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a simulation.
func (c Config) Validate() error {
	one := decimal.NewFromInt(1)
	switch {
	case !c.Investment.IsPositive():
		return fmt.Errorf("%w: investment %s must be positive", ErrInvalidConfig, c.Investment)
	case c.MonthlyFee.IsNegative():
		return fmt.Errorf("%w: monthly fee %s must not be negative", ErrInvalidConfig, c.MonthlyFee)
	case c.WithholdingTax.IsNegative() || c.WithholdingTax.GreaterThanOrEqual(one):
		return fmt.Errorf("%w: withholding tax %s must be in [0, 1)", ErrInvalidConfig, c.WithholdingTax)
	case c.Commission.PerUnit.IsNegative() || c.Commission.Minimum.IsNegative() || c.Commission.MaximumRate.IsNegative():
		return fmt.Errorf("%w: commission parameters must not be negative", ErrInvalidConfig)
	case c.Precision.Places < 0:
		return fmt.Errorf("%w: precision places %d must not be negative", ErrInvalidConfig, c.Precision.Places)
	case c.Precision.Mode.String() == "unknown":
		return fmt.Errorf("%w: unknown rounding mode %d", ErrInvalidConfig, c.Precision.Mode)
	case c.StartYear != 0 && c.EndYear != 0 && c.EndYear <= c.StartYear:
		return fmt.Errorf("%w: end year %d must be after start year %d", ErrInvalidConfig, c.EndYear, c.StartYear)
	case c.MaxDays <= 0:
		return fmt.Errorf("%w: max days %d must be positive", ErrInvalidConfig, c.MaxDays)
	}
	return nil
}

// Rules returns the per-day accounting rules derived from the configuration.
func (c Config) Rules() Rules {
	return Rules{
		Commission:     c.Commission,
		MonthlyFee:     M(c.MonthlyFee, c.Currency),
		WithholdingTax: c.WithholdingTax,
		Precision:      c.Precision,
	}
}
