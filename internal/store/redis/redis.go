package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"salonpos/backend/internal/store"
)

type Store struct {
	client *goredis.Client
	prefix string
}

func New(addr string, password string, db int, prefix string) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{client: client, prefix: prefix}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set writes without expiry; the documents are the system of record.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
