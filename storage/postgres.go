package storage

import (
	"context"

	_ "github.com/lib/pq"

	"github.com/malusev998/xrate"
)

func NewPostgresStorage(ctx context.Context, config PostgresConfig) (xrate.Storage, error) {
	return openSQLStorage(ctx, "postgres", PostgresDialect, config.ConnectionString, config.TableName, config.IDGenerator)
}
