package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/malusev998/xrate/fetchers"
	"github.com/malusev998/xrate/services"
	"github.com/malusev998/xrate/storage"
)

type (
	StorageConfig map[storage.Provider]interface{}
	Config        struct {
		URL               string
		AccessKey         string
		Base              string
		Storage           []storage.Provider
		StorageConfig     StorageConfig
		CurrenciesToFetch []string
	}
)

var ErrDuplicateStorage = errors.New("storage is configured more than once")

func init() {
	viper.SetDefault("url", fetchers.ExchangeRatesAPIURL)
	viper.SetDefault("base", services.DefaultBase)
	viper.SetDefault("databases.mysql.table", "rates")
	viper.SetDefault("databases.postgres.table", "rates")
	viper.SetDefault("databases.mongodb.db", "xrate")
	viper.SetDefault("databases.mongodb.collection", "rates")
	viper.SetDefault("databases.badger.path", "./data/badger")
}

func getMysqlDSN(user, password, addr, db string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = user
	mysqlDriverConfig.Passwd = password
	mysqlDriverConfig.Addr = addr
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = db
	mysqlDriverConfig.ParseTime = true

	return mysqlDriverConfig.FormatDSN()
}

// stringSlice accepts both a YAML list and a comma separated env value.
func stringSlice(key string) []string {
	values := make([]string, 0)

	for _, value := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}

	return values
}

func getConfig() (*Config, error) {
	storages, err := storage.ConvertToProvidersFromStringSlice(stringSlice("storage"))

	if err != nil {
		return nil, err
	}

	seen := make(map[storage.Provider]struct{}, len(storages))

	for _, s := range storages {
		if _, ok := seen[s]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStorage, s)
		}

		seen[s] = struct{}{}
	}

	storageBaseConfig := storage.BaseConfig{
		Migrate: viper.GetBool("migrate"),
	}

	return &Config{
		URL:       viper.GetString("url"),
		AccessKey: viper.GetString("access_key"),
		Base:      strings.ToUpper(viper.GetString("base")),
		Storage:   storages,
		StorageConfig: StorageConfig{
			storage.MySQL: storage.MySQLConfig{
				BaseConfig: storageBaseConfig,
				ConnectionString: getMysqlDSN(
					viper.GetString("databases.mysql.user"),
					viper.GetString("databases.mysql.password"),
					viper.GetString("databases.mysql.addr"),
					viper.GetString("databases.mysql.db"),
				),
				TableName: viper.GetString("databases.mysql.table"),
			},
			storage.Postgres: storage.PostgresConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: viper.GetString("databases.postgres.dsn"),
				TableName:        viper.GetString("databases.postgres.table"),
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: viper.GetString("databases.mongodb.uri"),
				Database:         viper.GetString("databases.mongodb.db"),
				Collection:       viper.GetString("databases.mongodb.collection"),
			},
			storage.Badger: storage.BadgerConfig{
				BaseConfig: storageBaseConfig,
				Path:       viper.GetString("databases.badger.path"),
				InMemory:   viper.GetBool("databases.badger.inmemory"),
			},
		},
		CurrenciesToFetch: stringSlice("currencies"),
	}, nil
}
