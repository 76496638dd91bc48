package xrate

import "context"

type (
	Fetcher interface {
		// FetchRate returns the rate of currencyCode against the base currency
		// on the given day.
		FetchRate(ctx context.Context, currencyCode string, year, month, day int) (float64, error)
		// CrossRate returns the rate of fromCurrency against toCurrency on the
		// given day.
		CrossRate(ctx context.Context, fromCurrency, toCurrency string, year, month, day int) (float64, error)
	}
)
