package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockStorage struct {
		mock.Mock
		name string
	}
)

func (m *MockStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	args := m.Called(rates)

	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}
	return return1.([]xrate.RateWithID), args.Error(1)
}

func (m *MockStorage) GetStorageProviderName() string {
	if m.name == "" {
		return "MockStorage"
	}
	return m.name
}

func (m *MockStorage) Migrate(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Close(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Drop(ctx context.Context) error {
	return nil
}

func (m *MockFetcher) FetchRate(ctx context.Context, currencyCode string, year, month, day int) (float64, error) {
	args := m.Called(currencyCode, year, month, day)

	return args.Get(0).(float64), args.Error(1)
}

func (m *MockFetcher) CrossRate(ctx context.Context, fromCurrency, toCurrency string, year, month, day int) (float64, error) {
	args := m.Called(fromCurrency, toCurrency, year, month, day)

	return args.Get(0).(float64), args.Error(1)
}

func TestService_Save(t *testing.T) {
	t.Parallel()
	currenciesToFetch := []string{"USD", "GBP"}
	date := time.Date(2010, time.June, 25, 15, 4, 5, 0, time.UTC)
	day := time.Date(2010, time.June, 25, 0, 0, 0, 0, time.UTC)
	ratesWithID := make([]xrate.RateWithID, 0, len(currenciesToFetch))
	ratesFetched := make([]xrate.Rate, 0, len(currenciesToFetch))
	values := make(map[string]float64, len(currenciesToFetch))

	for _, c := range currenciesToFetch {
		values[c] = rand.Float64() + 0.5
		rate := xrate.Rate{
			Currency: c,
			Base:     "EUR",
			Date:     day,
			Value:    values[c],
		}
		ratesFetched = append(ratesFetched, rate)
		rate.CreatedAt = time.Now()
		ratesWithID = append(ratesWithID, xrate.RateWithID{Rate: rate, ID: uuid.New()})
	}

	fetcherFor := func() *MockFetcher {
		fetcher := &MockFetcher{}
		for _, c := range currenciesToFetch {
			fetcher.On("FetchRate", c, 2010, 6, 25).Return(values[c], nil).Once()
		}
		return fetcher
	}

	t.Run("SaveCorrectly", func(t *testing.T) {
		asserts := require.New(t)
		fetcher := fetcherFor()
		storage := &MockStorage{}
		service := Service{
			Fetcher: fetcher,
			Storage: []xrate.Storage{storage},
		}

		storage.On("Store", ratesFetched).Return(ratesWithID, nil)

		savedRates, err := service.Save(context.Background(), date, currenciesToFetch)

		asserts.Nil(err)
		asserts.NotNil(savedRates)
		asserts.Contains(savedRates, "MockStorage")
		asserts.Equal(ratesWithID, savedRates["MockStorage"])

		for _, c := range savedRates["MockStorage"] {
			_, ok := c.ID.(uuid.UUID)
			asserts.True(ok)
		}

		fetcher.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("SaveToEveryStorage", func(t *testing.T) {
		asserts := require.New(t)
		storages := []*MockStorage{{name: "first"}, {name: "second"}, {name: "third"}}
		service := Service{
			Fetcher: fetcherFor(),
			Base:    "EUR",
		}

		for _, storage := range storages {
			storage.On("Store", ratesFetched).Return(ratesWithID, nil).Once()
			service.Storage = append(service.Storage, storage)
		}

		savedRates, err := service.Save(context.Background(), date, currenciesToFetch)

		asserts.NoError(err)
		asserts.Len(savedRates, 3)

		for _, storage := range storages {
			asserts.Contains(savedRates, storage.name)
			storage.AssertExpectations(t)
		}
	})

	t.Run("CustomBase", func(t *testing.T) {
		asserts := require.New(t)
		fetcher := &MockFetcher{}
		fetcher.On("FetchRate", "EUR", 2010, 6, 25).Return(0.8, nil)
		storage := &MockStorage{}
		expected := []xrate.Rate{{Currency: "EUR", Base: "USD", Date: day, Value: 0.8}}
		storage.On("Store", expected).Return([]xrate.RateWithID{{Rate: expected[0], ID: 1}}, nil)

		service := Service{Fetcher: fetcher, Storage: []xrate.Storage{storage}, Base: "USD"}
		savedRates, err := service.Save(context.Background(), date, []string{"EUR"})

		asserts.NoError(err)
		asserts.Len(savedRates["MockStorage"], 1)
		storage.AssertExpectations(t)
	})

	t.Run("FetchReturnsError", func(t *testing.T) {
		asserts := require.New(t)
		fetcher := &MockFetcher{}
		storage := &MockStorage{}
		service := Service{
			Fetcher: fetcher,
			Storage: []xrate.Storage{storage},
		}
		errFetch := errors.New("an error has occurred")

		fetcher.On("FetchRate", "USD", 2010, 6, 25).Return(0.0, errFetch)
		savedRates, err := service.Save(context.Background(), date, currenciesToFetch)

		asserts.Nil(savedRates)
		asserts.True(errors.Is(err, errFetch))
		fetcher.AssertNumberOfCalls(t, "FetchRate", 1)
		storage.AssertNotCalled(t, "Store", mock.Anything)
	})

	t.Run("StorageReturnsError", func(t *testing.T) {
		asserts := require.New(t)
		storage := &MockStorage{}
		healthy := &MockStorage{name: "healthy"}
		service := Service{
			Fetcher: fetcherFor(),
			Storage: []xrate.Storage{healthy, storage},
		}
		healthy.On("Store", ratesFetched).Return(ratesWithID, nil)
		storage.On("Store", ratesFetched).Return(nil, errors.New("error while inserting into storage"))

		savedRates, err := service.Save(context.Background(), date, currenciesToFetch)

		asserts.Nil(savedRates)
		asserts.NotNil(err)
	})

	t.Run("NoStorage", func(t *testing.T) {
		asserts := require.New(t)
		service := Service{Fetcher: fetcherFor()}

		savedRates, err := service.Save(context.Background(), date, currenciesToFetch)

		asserts.NoError(err)
		asserts.Empty(savedRates)
	})
}
