package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salonpos/backend/internal/store"
)

const collectionName = "kv_entries"

type entry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New connects and pings the server before returning.
func New(ctx context.Context, uri string, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc entry
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
