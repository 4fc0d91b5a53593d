package domain

import "github.com/shopspring/decimal"

// Money is an amount in a specific currency as reported by the commerce platform.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}
