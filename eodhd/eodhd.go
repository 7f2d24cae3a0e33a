// Package eodhd fetches daily prices and dividends from the EOD Historical Data API.
//
// See https://eodhd.com/financial-apis/ for the API documentation.
package eodhd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Client is a drip.Provider backed by the EODHD API.
type Client struct {
	APIKey  string
	BaseURL string       // empty is DefaultBaseURL
	HTTP    *http.Client // nil is a daily disk caching client

	// From and To bound the history requested, zero means no bound.
	From, To date.Date
}

var _ drip.Provider = (*Client)(nil)

// New returns a Client for apiKey using a daily disk cache.
func New(apiKey string) *Client {
	return &Client{APIKey: apiKey, HTTP: NewCachingClient("", date.Daily)}
}

// Fetch returns the daily close prices and the dividend history of an EODHD ticker.
// The ticker format is "SYMBOL.EXCHANGECODE", e.g. "VTI.US".
func (c *Client) Fetch(ctx context.Context, ticker string) (*drip.PriceSeries, *drip.DividendSeries, error) {
	prices, err := c.fetchPrices(ctx, ticker)
	if err != nil {
		return nil, nil, fmt.Errorf("eodhd prices of %s: %w", ticker, err)
	}
	dividends, err := c.fetchDividends(ctx, ticker)
	if err != nil {
		return nil, nil, fmt.Errorf("eodhd dividends of %s: %w", ticker, err)
	}
	return prices, dividends, nil
}

// fetchPrices returns the daily close prices.
func (c *Client) fetchPrices(ctx context.Context, ticker string) (*drip.PriceSeries, error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// adjusted_close already accounts for dividends, using it would count them twice.
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	if err := jwget(ctx, c.client(), c.addr("eod", ticker), &content); err != nil {
		return nil, err
	}
	prices := drip.NewSeries()
	for _, info := range content {
		prices.Add(info.Date, info.Close)
	}
	return prices, nil
}

// fetchDividends returns the dividend history, keyed by payment date, or by ex-dividend date when the payment date is unknown.
func (c *Client) fetchDividends(ctx context.Context, ticker string) (*drip.DividendSeries, error) {
	type apiDividend struct {
		Date        date.Date       `json:"date"`        // ex-dividend date, see https://eodhd.com/financial-apis/api-splits-dividends
		PaymentDate string          `json:"paymentDate"` // may be null
		Value       decimal.Decimal `json:"value"`
		Currency    string          `json:"currency"`
	}
	content := make([]apiDividend, 0)
	if err := jwget(ctx, c.client(), c.addr("div", ticker), &content); err != nil {
		return nil, err
	}
	dividends := drip.NewSeries()
	for _, d := range content {
		on := d.Date
		if d.PaymentDate != "" {
			paid, err := date.Parse(d.PaymentDate)
			if err != nil {
				return nil, fmt.Errorf("dividend of %s on %s: %w", ticker, d.Date, err)
			}
			on = paid
		}
		// several payouts on the same day are paid together.
		if v, exists := dividends.Get(on); exists {
			d.Value = d.Value.Add(v)
		}
		dividends.Add(on, d.Value)
	}
	return dividends, nil
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// addr builds the url of an endpoint for a ticker.
func (c *Client) addr(endpoint, ticker string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	if !c.From.IsZero() {
		q.Set("from", c.From.String())
	}
	if !c.To.IsZero() {
		q.Set("to", c.To.String())
	}
	return fmt.Sprintf("%s/%s/%s?%s", base, endpoint, url.PathEscape(ticker), q.Encode())
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
