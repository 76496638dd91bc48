package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/malusev998/xrate"
)

const DefaultBase = "EUR"

type Service struct {
	Fetcher xrate.Fetcher
	Storage []xrate.Storage
	// Base labels stored rates with the base currency of the rates API.
	Base string
}

var _ xrate.Service = Service{}

func (f Service) fetch(ctx context.Context, date time.Time, currenciesToFetch []string) ([]xrate.Rate, error) {
	base := f.Base

	if base == "" {
		base = DefaultBase
	}

	rates := make([]xrate.Rate, 0, len(currenciesToFetch))

	for _, currency := range currenciesToFetch {
		query := xrate.NewRateQuery(currency, date)
		value, err := f.Fetcher.FetchRate(ctx, query.Currency, query.Year, query.Month, query.Day)

		if err != nil {
			return nil, err
		}

		rates = append(rates, xrate.Rate{
			Currency: currency,
			Base:     base,
			Date:     query.Date(),
			Value:    value,
		})
	}

	return rates, nil
}

// Save fetches every currency for date, one request per currency, and
// writes the rates to all storages. Nothing is written when a fetch fails.
func (f Service) Save(ctx context.Context, date time.Time, currenciesToFetch []string) (map[string][]xrate.RateWithID, error) {
	fetchedRates, err := f.fetch(ctx, date, currenciesToFetch)

	if err != nil {
		return nil, err
	}

	var mutex sync.Mutex
	data := make(map[string][]xrate.RateWithID, len(f.Storage))
	group, groupCtx := errgroup.WithContext(ctx)

	for _, storage := range f.Storage {
		storage := storage

		group.Go(func() error {
			rates, err := storage.Store(groupCtx, fetchedRates)

			if err != nil {
				return err
			}

			mutex.Lock()
			data[storage.GetStorageProviderName()] = rates
			mutex.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}
