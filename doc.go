// Package drip simulates the long-run total return of a buy-and-hold position in a single
// security, with dividends taxed and reinvested.
//
// Given the daily price history and the dividend history of a security, a simulation:
//   - buys as many whole units as an initial investment allows, commission included,
//   - steps every calendar day of the window, crediting dividends net of withholding tax
//     and reinvesting the cash buffer whenever it can buy whole units,
//   - charges a monthly account fee, against which the month's commissions are offset,
//   - records the market value growth of each calendar year,
//   - reports capital appreciation, capital gains and the geometric average annual return.
//
// All amounts are exact decimals rounded by an explicit Precision, so a simulation is
// deterministic: the same series and Config always give the same Result.
//
// The simulation window starts on the first priced day of the year following the first
// price, and ends on the first priced day of the year of the last price. Both can be
// overridden in the Config.
//
// Series are read from JSONL or CSV files (see DecodeSeriesFile), or fetched by a Provider
// such as the eodhd and dividendcom packages.
package drip
