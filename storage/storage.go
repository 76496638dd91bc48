package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/malusev998/xrate"
)

type (
	Provider   string
	BaseConfig struct {
		Migrate bool
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}
	PostgresConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
		IDGenerator      IDGenerator
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
	BadgerConfig struct {
		BaseConfig
		Path     string
		InMemory bool
	}
)

const (
	MySQL    Provider = "mysql"
	Postgres Provider = "postgres"
	MongoDB  Provider = "mongodb"
	Badger   Provider = "badger"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
	ErrInvalidConfig   = errors.New("invalid storage config")
)

func ConvertToProvidersFromStringSlice(strings []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(strings))

	for _, str := range strings {
		provider, err := ConvertToProviderFromString(str)
		if err != nil {
			return nil, err
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	case "badger":
		return Badger, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

// NewStorage opens the storage for provider. config must be the matching
// Config value. The storage is migrated when config asks for it.
func NewStorage(ctx context.Context, provider Provider, config interface{}) (xrate.Storage, error) {
	var (
		st   xrate.Storage
		base BaseConfig
		err  error
		ok   bool
	)

	switch provider {
	case MySQL:
		var c MySQLConfig
		if c, ok = config.(MySQLConfig); ok {
			base = c.BaseConfig
			st, err = NewMySQLStorage(ctx, c)
		}
	case Postgres:
		var c PostgresConfig
		if c, ok = config.(PostgresConfig); ok {
			base = c.BaseConfig
			st, err = NewPostgresStorage(ctx, c)
		}
	case MongoDB:
		var c MongoDBConfig
		if c, ok = config.(MongoDBConfig); ok {
			base = c.BaseConfig
			st, err = NewMongoStorage(ctx, c)
		}
	case Badger:
		var c BadgerConfig
		if c, ok = config.(BadgerConfig); ok {
			base = c.BaseConfig
			st, err = NewBadgerStorage(c)
		}
	default:
		return nil, ErrStorageNotFound
	}

	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrInvalidConfig, config, provider)
	}

	if err != nil {
		return nil, err
	}

	if base.Migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("migrating %s: %w", provider, err)
		}
	}

	return st, nil
}
