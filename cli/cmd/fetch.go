package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var (
	ErrNoCurrencies  = errors.New("no currencies to fetch, pass them as arguments or set currencies in config")
	ErrInvalidPeriod = errors.New("--after must be a positive duration")
)

func handleRateSave(ctx context.Context, config *Config, services *Services, date time.Time, currencies []string, logger *log.Logger) error {
	ratesMap, err := services.CurrencyService.Save(ctx, date, currencies)

	if err != nil {
		return err
	}

	if !config.isDebug() {
		return nil
	}

	for storage, rates := range ratesMap {
		for i, rate := range rates {
			logger.Printf("%d\tRate %s/%s saved to %s: Rate: %f\n", i, rate.Base, rate.Currency, storage, rate.Value)
		}
	}

	return nil
}

func fetch(config *Config) *cobra.Command {
	var (
		standalone bool
		after      time.Duration
		date       string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch [CODES...]",
		Short: "Fetch rates and save them to every configured storage",
	}

	fetchCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if standalone && after <= 0 {
			return fmt.Errorf("%w, got %s", ErrInvalidPeriod, after)
		}

		return nil
	}

	fetchCmd.RunE = runE("fetch", config, true, func(cmd *cobra.Command, args []string, services *Services, logger *log.Logger) error {
		currencies := args

		if len(currencies) == 0 {
			currencies = services.CurrenciesToFetch
		}

		if len(currencies) == 0 {
			return ErrNoCurrencies
		}

		day, err := parseDate(date)

		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if err := handleRateSave(ctx, config, services, day, currencies, logger); err != nil {
			return err
		}

		if !standalone {
			return nil
		}

		errLogger := log.New(cmd.ErrOrStderr(), "fetch-error ", 0)

		for {
			select {
			case <-time.After(after):
				// A fixed --date is fetched again on every tick, otherwise the current day.
				if day, err = parseDate(date); err != nil {
					return err
				}

				if err := handleRateSave(ctx, config, services, day, currencies, logger); err != nil {
					errLogger.Printf("ERROR: %v", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	fetchCmd.Flags().BoolVar(&standalone, "standalone", false, "Start up a long running fetching service")
	fetchCmd.Flags().DurationVar(&after, "after", time.Duration(1)*time.Hour, "Fetching for standalone process")
	fetchCmd.Flags().StringVar(&date, "date", "", "Date of the rates (YYYY-MM-DD), defaults to today in UTC")

	return fetchCmd
}
