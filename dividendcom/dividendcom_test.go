package dividendcom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "VTI" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Location", "/etfs/vti-vanguard-total-stock-market-etf")
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/etfs/vti-vanguard-total-stock-market-etf/payouthistory.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":[{"name":"Payout","data":[
			{"x":1585526400000,"y":0.6555,"parts":{"Pay Date":"2020-03-30","Ex-Date":"2020-03-26"}},
			{"x":1593388800000,"y":0.7157,"parts":{"Pay Date":"2020-06-29","Ex-Date":"2020-06-25"}}
		]}]}`)
	})
	mux.HandleFunc("/etfs/vti-vanguard-total-stock-market-etf/yieldhistory.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":[{"name":"Price","data":[
			{"x":1577923200000,"y":164.35},
			{"x":1578009600000,"y":163.06}
		]},{"name":"Yield","data":[]}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newServer(t)
	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}

	prices, dividends, err := c.Fetch(context.Background(), "VTI")
	require.NoError(t, err)

	require.Equal(t, 2, prices.Len())
	first, p := prices.First()
	assert.Equal(t, date.New(2020, 1, 2), first)
	assert.True(t, p.Equal(decimal.RequireFromString("164.35")))

	require.Equal(t, 2, dividends.Len())
	d, ok := dividends.Get(date.New(2020, 6, 29))
	assert.True(t, ok, "dividends are keyed by pay date")
	assert.True(t, d.Equal(decimal.RequireFromString("0.7157")))
}

func TestFetchUnknownSymbol(t *testing.T) {
	srv := newServer(t)
	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}

	_, _, err := c.Fetch(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no page")
}
