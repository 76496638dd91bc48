package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/malusev998/xrate"
)

type mongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(ctx context.Context, config MongoDBConfig) (xrate.Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return newMongoStorage(client, client.Database(config.Database).Collection(config.Collection)), nil
}

func newMongoStorage(client *mongo.Client, collection *mongo.Collection) mongoStorage {
	return mongoStorage{
		client:     client,
		collection: collection,
	}
}

func (m mongoStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	if len(rates) == 0 {
		return []xrate.RateWithID{}, nil
	}

	now := time.Now()
	copied := make([]xrate.Rate, 0, len(rates))
	documents := make([]interface{}, 0, len(rates))

	for _, rate := range rates {
		if rate.CreatedAt.IsZero() {
			rate.CreatedAt = now
		}

		copied = append(copied, rate)
		documents = append(documents, bson.M{
			"currency":  rate.Currency,
			"base":      rate.Base,
			"rate":      rate.Value,
			"date":      rate.Date,
			"createdAt": rate.CreatedAt,
		})
	}

	result, err := m.collection.InsertMany(ctx, documents)

	if err != nil {
		return nil, err
	}

	stored := make([]xrate.RateWithID, 0, len(rates))

	for i, id := range result.InsertedIDs {
		stored = append(stored, xrate.RateWithID{
			Rate: copied[i],
			ID:   id,
		})
	}

	return stored, nil
}

func (m mongoStorage) Migrate(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "currency", Value: 1},
			{Key: "date", Value: 1},
		},
	})

	return err
}

func (m mongoStorage) Drop(ctx context.Context) error {
	return m.collection.Drop(ctx)
}

func (m mongoStorage) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(ctx)
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}
