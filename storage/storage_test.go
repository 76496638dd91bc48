package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate/storage"
)

func TestConvertToProvidersFromStringSlice(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		value    []string
		expected interface{}
		err      error
	}{
		{
			[]string{"mysql", "PostgreSQL", "mongo", "Badger"},
			[]storage.Provider{storage.MySQL, storage.Postgres, storage.MongoDB, storage.Badger},
			nil,
		},
		{[]string{}, []storage.Provider{}, nil},
		{[]string{"mysql", "not-valid-value"}, []storage.Provider(nil), errors.New("value not-valid-value is not valid Provider")},
	}

	for _, value := range values {
		providers, err := storage.ConvertToProvidersFromStringSlice(value.value)
		assert.Equal(value.expected, providers)
		assert.Equal(value.err, err)
	}
}

func TestConvertToProviderFromString(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"mysql", storage.MySQL, nil},
		{"postgres", storage.Postgres, nil},
		{"mongodb", storage.MongoDB, nil},
		{"badger", storage.Badger, nil},
		{"", storage.Provider(""), errors.New("value  is not valid Provider")},
		{"redis", storage.Provider(""), errors.New("value redis is not valid Provider")},
	}

	for _, value := range values {
		provider, err := storage.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}

func TestNewStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("UnknownProvider", func(t *testing.T) {
		assert := require.New(t)
		st, err := storage.NewStorage(ctx, storage.Provider("redis"), nil)

		assert.Nil(st)
		assert.True(errors.Is(err, storage.ErrStorageNotFound))
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		assert := require.New(t)

		for _, provider := range []storage.Provider{storage.MySQL, storage.Postgres, storage.MongoDB, storage.Badger} {
			st, err := storage.NewStorage(ctx, provider, struct{}{})

			assert.Nil(st)
			assert.True(errors.Is(err, storage.ErrInvalidConfig))
		}
	})

	t.Run("Badger", func(t *testing.T) {
		assert := require.New(t)
		st, err := storage.NewStorage(ctx, storage.Badger, storage.BadgerConfig{
			BaseConfig: storage.BaseConfig{Migrate: true},
			InMemory:   true,
		})

		assert.NoError(err)
		assert.Equal("badger", st.GetStorageProviderName())
		assert.NoError(st.Close(ctx))
	})
}
