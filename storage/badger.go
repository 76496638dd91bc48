package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/malusev998/xrate"
)

type (
	badgerStorage struct {
		db *badger.DB
	}

	badgerRecord struct {
		ID        uuid.UUID `json:"id"`
		Currency  string    `json:"currency"`
		Base      string    `json:"base"`
		Rate      float64   `json:"rate"`
		Date      time.Time `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func NewBadgerStorage(config BadgerConfig) (xrate.Storage, error) {
	options := badger.DefaultOptions(config.Path).WithLogger(nil)

	if config.InMemory {
		options = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(options)

	if err != nil {
		return nil, err
	}

	return badgerStorage{db: db}, nil
}

func badgerKey(record badgerRecord) []byte {
	return []byte(fmt.Sprintf("rate:%s:%s:%s", record.Currency, record.Date.Format("2006-01-02"), record.ID))
}

func (b badgerStorage) Store(_ context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	now := time.Now()
	stored := make([]xrate.RateWithID, 0, len(rates))

	err := b.db.Update(func(txn *badger.Txn) error {
		for _, rate := range rates {
			if rate.CreatedAt.IsZero() {
				rate.CreatedAt = now
			}

			record := badgerRecord{
				ID:        uuid.New(),
				Currency:  rate.Currency,
				Base:      rate.Base,
				Rate:      rate.Value,
				Date:      rate.Date,
				CreatedAt: rate.CreatedAt,
			}

			data, err := json.Marshal(record)

			if err != nil {
				return err
			}

			if err := txn.Set(badgerKey(record), data); err != nil {
				return err
			}

			stored = append(stored, xrate.RateWithID{Rate: rate, ID: record.ID})
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("storing rates in badger: %w", err)
	}

	return stored, nil
}

// Migrate is a no-op, badger has no schema.
func (b badgerStorage) Migrate(_ context.Context) error {
	return nil
}

func (b badgerStorage) Drop(_ context.Context) error {
	return b.db.DropAll()
}

func (b badgerStorage) Close(_ context.Context) error {
	return b.db.Close()
}

func (b badgerStorage) GetStorageProviderName() string {
	return string(Badger)
}
