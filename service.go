package xrate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type (
	Service interface {
		Save(ctx context.Context, date time.Time, currenciesToFetch []string) (map[string][]RateWithID, error)
	}

	Conversion interface {
		Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
	}
)
