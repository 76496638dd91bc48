package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/malusev998/xrate"
)

func formatRate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func rate(config *Config) *cobra.Command {
	var date string

	rateCmd := &cobra.Command{
		Use:   "rate CODE",
		Short: "Print the rate of a currency against the provider's base currency",
		Args:  cobra.ExactArgs(1),
	}

	rateCmd.RunE = runE("rate", config, false, func(cmd *cobra.Command, args []string, services *Services, logger *log.Logger) error {
		day, err := parseDate(date)

		if err != nil {
			return err
		}

		query := xrate.NewRateQuery(args[0], day)
		value, err := services.Fetcher.FetchRate(cmd.Context(), query.Currency, query.Year, query.Month, query.Day)

		if err != nil {
			return err
		}

		if config.isDebug() {
			logger.Printf("Rate %s on %s: %s\n", query.Currency, query.DatePath(), formatRate(value))
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatRate(value))
		return err
	})

	rateCmd.Flags().StringVar(&date, "date", "", "Date of the rate (YYYY-MM-DD), defaults to today in UTC")

	return rateCmd
}

func cross(config *Config) *cobra.Command {
	var date string

	crossCmd := &cobra.Command{
		Use:   "cross FROM TO",
		Short: "Print rate(FROM) / rate(TO) for the given date",
		Args:  cobra.ExactArgs(2),
	}

	crossCmd.RunE = runE("cross", config, false, func(cmd *cobra.Command, args []string, services *Services, logger *log.Logger) error {
		day, err := parseDate(date)

		if err != nil {
			return err
		}

		value, err := services.Fetcher.CrossRate(cmd.Context(), args[0], args[1], day.Year(), int(day.Month()), day.Day())

		if err != nil {
			return err
		}

		if config.isDebug() {
			logger.Printf("Cross %s/%s on %s: %s\n", args[0], args[1], day.Format(dateLayout), formatRate(value))
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), formatRate(value))
		return err
	})

	crossCmd.Flags().StringVar(&date, "date", "", "Date of the rates (YYYY-MM-DD), defaults to today in UTC")

	return crossCmd
}

func convert(config *Config) *cobra.Command {
	var date string

	convertCmd := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount of FROM currency into TO currency",
		Args:  cobra.ExactArgs(3),
	}

	convertCmd.RunE = runE("convert", config, false, func(cmd *cobra.Command, args []string, services *Services, logger *log.Logger) error {
		amount, err := decimal.NewFromString(strings.TrimSpace(args[0]))

		if err != nil {
			return fmt.Errorf("amount %q is not a number", args[0])
		}

		day, err := parseDate(date)

		if err != nil {
			return err
		}

		value, err := services.ConversionService.Convert(cmd.Context(), amount, args[1], args[2], day)

		if err != nil {
			return err
		}

		if config.isDebug() {
			logger.Printf("%s %s = %s %s on %s\n", amount, args[1], value, args[2], day.Format(dateLayout))
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), value.String())
		return err
	})

	convertCmd.Flags().StringVar(&date, "date", "", "Date of the rates (YYYY-MM-DD), defaults to today in UTC")

	return convertCmd
}
