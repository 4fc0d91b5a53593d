package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_ConvertsWithTwoDecimals(t *testing.T) {
	myr := Currency{Code: "MYR", Symbol: "RM", Rate: decimal.RequireFromString("4.76")}

	assert.Equal(t, "47.6", myr.Convert(decimal.NewFromInt(10)).String())
	assert.Contains(t, myr.Format(decimal.NewFromInt(10)), "47.60")
	assert.Equal(t, "RM47.60", myr.Format(decimal.NewFromInt(10)))
}

func TestFormat_CodePrefixedCurrencies(t *testing.T) {
	table := NewTable()

	assert.Equal(t, "SAR 37.50", table.Resolve("SAR").Format(decimal.NewFromInt(10)))
	assert.Equal(t, "AED 36.70", table.Resolve("aed").Format(decimal.NewFromInt(10)))
	assert.Equal(t, "$1234.50", table.Resolve("USD").Format(decimal.RequireFromString("1234.5")))
}

func TestTable_ResolveFallsBackToBase(t *testing.T) {
	table := NewTable()

	c := table.Resolve("XXX")
	assert.Equal(t, Base, c.Code)
	assert.False(t, table.Supported("XXX"))
	assert.True(t, table.Supported("idr"))
	assert.Equal(t, "USD", table.List()[0].Code)
}

func TestTable_ApplyRatesKeepsMissingCodes(t *testing.T) {
	table := NewTable()

	n, err := table.ApplyRates(map[string]decimal.Decimal{
		"SAR": decimal.RequireFromString("3.80"),
		"ZZZ": decimal.RequireFromString("9"),
		"GBP": decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, table.Resolve("SAR").Rate.Equal(decimal.RequireFromString("3.8")))
	assert.True(t, table.Resolve("GBP").Rate.Equal(decimal.RequireFromString("0.79")))
}

func TestRefresher_AppliesRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"MYR":4.5,"EUR":0.9}}`))
	}))
	defer srv.Close()

	table := NewTable()
	r := NewRefresher(table, RefresherConfig{URL: srv.URL}, nil)

	require.NoError(t, r.Refresh(context.Background()))
	assert.True(t, table.Resolve("MYR").Rate.Equal(decimal.RequireFromString("4.5")))
	assert.False(t, table.Stale())
}

func TestRefresher_FailureKeepsRatesAndMarksStale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	table := NewTable()
	r := NewRefresher(table, RefresherConfig{URL: srv.URL}, nil)

	assert.Error(t, r.Refresh(context.Background()))
	assert.True(t, table.Stale())
	assert.True(t, table.Resolve("MYR").Rate.Equal(decimal.RequireFromString("4.76")))
}

func TestRefresher_StartStop(t *testing.T) {
	hits := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case hits <- struct{}{}:
		default:
		}
		_, _ = w.Write([]byte(`{"result":"success","rates":{"SAR":3.76}}`))
	}))
	defer srv.Close()

	table := NewTable()
	r := NewRefresher(table, RefresherConfig{URL: srv.URL, Interval: time.Hour}, nil)
	require.NoError(t, r.Start(context.Background()))

	select {
	case <-hits:
	case <-time.After(5 * time.Second):
		t.Fatal("refresher did not fetch on start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Stop(ctx))
	require.NoError(t, r.Stop(ctx))
}

func TestRefresher_DisabledWithoutURL(t *testing.T) {
	r := NewRefresher(NewTable(), RefresherConfig{}, nil)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop(context.Background()))
}
