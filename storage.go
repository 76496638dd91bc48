package xrate

import "context"

type Storage interface {
	Store(ctx context.Context, rates []Rate) ([]RateWithID, error)
	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Close(ctx context.Context) error
	GetStorageProviderName() string
}
