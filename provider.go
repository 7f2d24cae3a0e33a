package drip

import "context"

// Provider fetches the full price and dividend history of a security.
//
// Providers are the only part of the module doing I/O: a simulation starts once both
// series are fully materialized.
type Provider interface {
	Fetch(ctx context.Context, symbol string) (prices *PriceSeries, dividends *DividendSeries, err error)
}
