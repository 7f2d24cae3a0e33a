// Package dividendcom fetches price and dividend histories from dividend.com.
//
// The site has no public API: a search for the symbol redirects to the security page,
// and that page serves two chart payloads, payouthistory.json and yieldhistory.json.
package dividendcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the dividend.com site root.
const DefaultBaseURL = "https://www.dividend.com"

// dataPath selects the points of the first chart series in both payloads.
const dataPath = "$.series[0].data"

// Client is a drip.Provider backed by dividend.com.
type Client struct {
	BaseURL string       // empty is DefaultBaseURL
	HTTP    *http.Client // nil is http.DefaultClient
}

var _ drip.Provider = (*Client)(nil)

// Fetch resolves symbol into its security page and reads its payout and price histories.
//
// Dividends are keyed by pay date. Prices are the daily closes of the yield chart.
func (c *Client) Fetch(ctx context.Context, symbol string) (*drip.PriceSeries, *drip.DividendSeries, error) {
	page, err := c.resolve(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}

	dividends := drip.NewSeries()
	payouts, err := c.series(ctx, page+"payouthistory.json")
	if err != nil {
		return nil, nil, err
	}
	for _, p := range payouts {
		// {"x": 1585526400000, "y": 0.6555, "parts": {"Pay Date": "2020-03-30", ...}}
		parts, _ := p["parts"].(map[string]any)
		s, _ := parts["Pay Date"].(string)
		on, err := date.Parse(s)
		if err != nil {
			return nil, nil, fmt.Errorf("dividend.com payout of %s: invalid pay date %q: %w", symbol, s, err)
		}
		v, err := number(p["y"])
		if err != nil {
			return nil, nil, fmt.Errorf("dividend.com payout of %s on %s: %w", symbol, on, err)
		}
		if prev, exists := dividends.Get(on); exists {
			v = v.Add(prev)
		}
		dividends.Add(on, v)
	}

	prices := drip.NewSeries()
	quotes, err := c.series(ctx, page+"yieldhistory.json")
	if err != nil {
		return nil, nil, err
	}
	for _, p := range quotes {
		ms, err := number(p["x"])
		if err != nil {
			return nil, nil, fmt.Errorf("dividend.com price of %s: %w", symbol, err)
		}
		on := date.FromTime(time.UnixMilli(ms.IntPart()).UTC())
		v, err := number(p["y"])
		if err != nil {
			return nil, nil, fmt.Errorf("dividend.com price of %s on %s: %w", symbol, on, err)
		}
		prices.Add(on, v)
	}
	return prices, dividends, nil
}

// resolve returns the security page url, ending with a "/".
func (c *Client) resolve(ctx context.Context, symbol string) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	search, err := url.Parse(base + "/search?q=" + url.QueryEscape(symbol))
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, search.String(), nil)
	if err != nil {
		return "", err
	}
	// the redirect is the answer, don't follow it.
	client := *c.client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("dividend.com has no page for %q: %s", symbol, resp.Status)
	}
	page, err := search.Parse(location)
	if err != nil {
		return "", fmt.Errorf("dividend.com page of %q: %w", symbol, err)
	}
	addr := page.String()
	if addr[len(addr)-1] != '/' {
		addr += "/"
	}
	return addr, nil
}

// series returns the points of the first series of a chart payload.
func (c *Client) series(ctx context.Context, addr string) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var jobj any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", addr, err)
	}
	jval, err := jsonpath.Get(dataPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %q %w", addr, dataPath, err)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %s: %q is not a list", addr, dataPath)
	}
	points := make([]map[string]any, 0, len(list))
	for _, v := range list {
		p, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("error parsing %s: unexpected point %v", addr, v)
		}
		points = append(points, p)
	}
	return points, nil
}

func (c *Client) client() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// number reads a json number decoded with UseNumber.
func number(v any) (decimal.Decimal, error) {
	n, ok := v.(json.Number)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("not a number: %v", v)
	}
	return decimal.NewFromString(n.String())
}
