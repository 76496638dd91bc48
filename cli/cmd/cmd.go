package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/fetchers"
)

const (
	ExitOK = iota
	ExitFailure
	ExitNetwork
	ExitParse
	ExitFieldNotFound
	ExitZeroRate
)

const dateLayout = "2006-01-02"

type (
	Services struct {
		Fetcher           xrate.Fetcher
		CurrencyService   xrate.Service
		ConversionService xrate.Conversion
		CurrenciesToFetch []string
		Close             func(ctx context.Context) error
	}

	// ServicesFactory builds the services once the config file has been read.
	// Storages are opened only when withStorage is set.
	ServicesFactory func(ctx context.Context, withStorage bool) (*Services, error)

	Config struct {
		Ctx      context.Context
		Services ServicesFactory
		debug    *bool
	}
)

// reportedError marks an error a command has already written to its error logger.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

func (c *Config) isDebug() bool {
	return c.debug != nil && *c.debug
}

func (s *Services) close(ctx context.Context) error {
	if s.Close == nil {
		return nil
	}

	return s.Close(ctx)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, fetchers.ErrNetwork):
		return ExitNetwork
	case errors.Is(err, fetchers.ErrParse):
		return ExitParse
	case errors.Is(err, fetchers.ErrFieldNotFound):
		return ExitFieldNotFound
	case errors.Is(err, fetchers.ErrZeroRate):
		return ExitZeroRate
	default:
		return ExitFailure
	}
}

func readConfig(configFile string) error {
	absolutePath, err := filepath.Abs(configFile)

	if err != nil {
		return err
	}

	viper.SetConfigFile(absolutePath)
	viper.SetEnvPrefix("XRATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("reading config %s: %w", absolutePath, err)
	}

	return nil
}

// parseDate reads a YYYY-MM-DD flag value, empty meaning today in UTC.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(dateLayout, value)

	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be in YYYY-MM-DD format", value)
	}

	return date, nil
}

// runE loads the services and runs handle with a logger prefixed by the
// command name. Errors are written to the error logger and returned.
func runE(
	name string,
	config *Config,
	withStorage bool,
	handle func(cmd *cobra.Command, args []string, services *Services, logger *log.Logger) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger := log.New(cmd.OutOrStdout(), name+" ", 0)
		errLogger := log.New(cmd.ErrOrStderr(), name+"-error ", 0)

		defer func() {
			if err != nil {
				errLogger.Printf("ERROR: %v", err)
				err = reportedError{err}
			}
		}()

		ctx := cmd.Context()
		services, err := config.Services(ctx, withStorage)

		if err != nil {
			return err
		}

		defer func() {
			if closeErr := services.close(context.Background()); closeErr != nil {
				errLogger.Printf("ERROR: closing storages: %v", closeErr)
			}
		}()

		return handle(cmd, args, services, logger)
	}
}

func NewRootCommand(config *Config) *cobra.Command {
	var (
		debug      bool
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:           "xrate",
		Short:         "Daily currency exchange rates",
		Version:       "v2.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfig(configFile)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./config.yml", "Path to config file")

	config.debug = &debug

	rootCmd.AddCommand(rate(config), cross(config), convert(config), fetch(config))

	return rootCmd
}

func Execute(config *Config) error {
	ctx := config.Ctx

	if ctx == nil {
		ctx = context.Background()
	}

	return executeRoot(ctx, NewRootCommand(config))
}

// executeRoot runs rootCmd and prints the errors no command reported itself:
// unknown commands, bad arguments or flags, and config read failures.
func executeRoot(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)

	var reported reportedError

	if err != nil && !errors.As(err, &reported) {
		log.New(rootCmd.ErrOrStderr(), "xrate-error ", 0).Printf("ERROR: %v", err)
	}

	return err
}
