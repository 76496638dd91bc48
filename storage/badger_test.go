package storage

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate"
)

func readBadgerRecords(db *badger.DB, prefix string) ([]badgerRecord, error) {
	records := make([]badgerRecord, 0)

	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record badgerRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})

			if err != nil {
				return err
			}
		}

		return nil
	})

	return records, err
}

func TestBadgerStorage(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	ctx := context.Background()

	st, err := NewBadgerStorage(BadgerConfig{InMemory: true})
	assert.NoError(err)
	defer st.Close(ctx)

	db := st.(badgerStorage).db
	date := time.Date(2010, time.June, 25, 0, 0, 0, 0, time.UTC)

	assert.NoError(st.Migrate(ctx))

	stored, err := st.Store(ctx, []xrate.Rate{
		{Currency: "USD", Base: "EUR", Date: date, Value: 1.25},
		{Currency: "GBP", Base: "EUR", Date: date, Value: 0.85},
		{Currency: "USD", Base: "EUR", Date: date.AddDate(0, 0, 1), Value: 1.26},
	})

	assert.NoError(err)
	assert.Len(stored, 3)

	for _, rate := range stored {
		assert.IsType(uuid.UUID{}, rate.ID)
		assert.False(rate.CreatedAt.IsZero())
	}

	records, err := readBadgerRecords(db, "rate:USD:")
	assert.NoError(err)
	assert.Len(records, 2)

	records, err = readBadgerRecords(db, "rate:USD:2010-06-25:")
	assert.NoError(err)
	assert.Len(records, 1)
	assert.Equal(1.25, records[0].Rate)
	assert.Equal("EUR", records[0].Base)
	assert.Equal(stored[0].ID, records[0].ID)
	assert.True(strings.HasPrefix(string(badgerKey(records[0])), "rate:USD:2010-06-25:"))

	assert.NoError(st.Drop(ctx))

	records, err = readBadgerRecords(db, "rate:")
	assert.NoError(err)
	assert.Empty(records)
	assert.Equal("badger", st.GetStorageProviderName())
}
