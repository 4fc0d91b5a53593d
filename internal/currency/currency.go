package currency

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Base is the currency every stored price is expressed in.
const Base = "USD"

// Currency is a display currency with its exchange rate relative to Base.
type Currency struct {
	Code   string          `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
}

// Convert returns price expressed in c.
func (c Currency) Convert(price decimal.Decimal) decimal.Decimal {
	return price.Mul(c.Rate)
}

// Format converts price and renders it with two decimals and no grouping.
// SAR and AED put the code in front ("SAR 37.50"); everything else uses the symbol ("$10.00").
func (c Currency) Format(price decimal.Decimal) string {
	amount := c.Convert(price).StringFixed(2)
	switch c.Code {
	case "SAR", "AED":
		return c.Code + " " + amount
	default:
		return c.Symbol + amount
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fallback rates used until the first successful refresh.
var fallback = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", Rate: d("1")},
	{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal", Rate: d("3.75")},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", Rate: d("3.67")},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", Rate: d("4.76")},
	{Code: "GBP", Symbol: "£", Name: "British Pound", Rate: d("0.79")},
	{Code: "EUR", Symbol: "€", Name: "Euro", Rate: d("0.92")},
	{Code: "PKR", Symbol: "₨", Name: "Pakistani Rupee", Rate: d("278.50")},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Rate: d("83.10")},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah", Rate: d("15650")},
}

// Table is the concurrency-safe set of supported currencies.
type Table struct {
	mu         sync.RWMutex
	currencies map[string]Currency
	order      []string
	stale      bool
}

// NewTable returns a table seeded with the fallback rates.
func NewTable() *Table {
	t := &Table{currencies: make(map[string]Currency, len(fallback))}
	for _, c := range fallback {
		t.currencies[c.Code] = c
		t.order = append(t.order, c.Code)
	}
	return t
}

// Lookup finds a currency by code (case-insensitive).
func (t *Table) Lookup(code string) (Currency, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Resolve is Lookup with a fall back to the base currency.
func (t *Table) Resolve(code string) Currency {
	if c, ok := t.Lookup(code); ok {
		return c
	}
	c, _ := t.Lookup(Base)
	return c
}

// List returns the supported currencies in display order.
func (t *Table) List() []Currency {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Currency, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.currencies[code])
	}
	return out
}

// Supported reports whether code is in the table.
func (t *Table) Supported(code string) bool {
	_, ok := t.Lookup(code)
	return ok
}

// Stale reports whether the last refresh attempt failed.
func (t *Table) Stale() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stale
}

// ApplyRates replaces the rates of known currencies. Codes missing from rates keep their
// previous value; unknown codes are ignored. It reports how many rates were updated.
func (t *Table) ApplyRates(rates map[string]decimal.Decimal) (int, error) {
	if len(rates) == 0 {
		return 0, fmt.Errorf("empty rate table")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for code, c := range t.currencies {
		r, ok := rates[code]
		if !ok || !r.IsPositive() {
			continue
		}
		c.Rate = r
		t.currencies[code] = c
		n++
	}
	t.stale = false
	return n, nil
}

func (t *Table) markStale() {
	t.mu.Lock()
	t.stale = true
	t.mu.Unlock()
}
