package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/malusev998/xrate"
)

const conversionPrecision = 6

type ConversionService struct {
	Fetcher xrate.Fetcher
}

var _ xrate.Conversion = ConversionService{}

// Convert returns how many units of to are worth amount units of from on
// date, rounded to six decimal places.
func (c ConversionService) Convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	query := xrate.NewRateQuery(to, date)

	// units of to per one unit of from
	rate, err := c.Fetcher.CrossRate(ctx, to, from, query.Year, query.Month, query.Day)

	if err != nil {
		return decimal.Zero, err
	}

	return convert(amount, rate), nil
}

func convert(value decimal.Decimal, rate float64) decimal.Decimal {
	return value.Mul(decimal.NewFromFloat(rate)).Round(conversionPrecision)
}
