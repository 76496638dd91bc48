package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/cli/cmd"
	"github.com/malusev998/xrate/fetchers"
	"github.com/malusev998/xrate/services"
	"github.com/malusev998/xrate/storage"
)

func createStorages(ctx context.Context, config *Config) ([]xrate.Storage, error) {
	storages := make([]xrate.Storage, 0, len(config.Storage))

	for _, s := range config.Storage {
		c, ok := config.StorageConfig[s]
		if !ok {
			_ = closeStorages(ctx, storages)
			return nil, fmt.Errorf("storage %s does not exist", s)
		}

		st, err := storage.NewStorage(ctx, s, c)

		if err != nil {
			_ = closeStorages(ctx, storages)
			return nil, fmt.Errorf("opening %s: %w", s, err)
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func closeStorages(ctx context.Context, storages []xrate.Storage) error {
	var errs []error

	for _, st := range storages {
		if err := st.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", st.GetStorageProviderName(), err))
		}
	}

	return errors.Join(errs...)
}

func createServices(ctx context.Context, withStorage bool) (*cmd.Services, error) {
	config, err := getConfig()

	if err != nil {
		return nil, err
	}

	fetcher := fetchers.NewRateFetcher(config.URL, fetchers.WithAccessKey(config.AccessKey))
	storages := make([]xrate.Storage, 0)

	if withStorage {
		if storages, err = createStorages(ctx, config); err != nil {
			return nil, err
		}
	}

	return &cmd.Services{
		Fetcher: fetcher,
		CurrencyService: services.Service{
			Fetcher: fetcher,
			Storage: storages,
			Base:    config.Base,
		},
		ConversionService: services.ConversionService{Fetcher: fetcher},
		CurrenciesToFetch: config.CurrenciesToFetch,
		Close: func(ctx context.Context) error {
			return closeStorages(ctx, storages)
		},
	}, nil
}
