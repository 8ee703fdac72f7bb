package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Storage key suffixes, mirroring the browser localStorage keys the
// console's predecessors used.
const (
	keyToken      = "token"
	keyIsLoggedIn = "isLoggedIn"
	keyUsername   = "username"
)

// RedisStorage is a Redis-backed credential storage for production use.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStorage creates a Redis-backed credential storage. The prefix
// namespaces the keys so multiple consoles can share one Redis.
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(suffix string) string { return s.prefix + suffix }

// Save writes the three credential keys in one round-trip.
func (s *RedisStorage) Save(ctx context.Context, creds Credentials) error {
	loggedIn := "false"
	if creds.IsLoggedIn {
		loggedIn = "true"
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(keyToken), creds.Token, 0)
	pipe.Set(ctx, s.key(keyIsLoggedIn), loggedIn, 0)
	pipe.Set(ctx, s.key(keyUsername), creds.Username, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Load reads the credential keys. Absent or empty token means no
// persisted credentials.
func (s *RedisStorage) Load(ctx context.Context) (Credentials, error) {
	values, err := s.client.MGet(ctx, s.key(keyToken), s.key(keyIsLoggedIn), s.key(keyUsername)).Result()
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}

	creds := Credentials{
		Token:      stringValue(values[0]),
		IsLoggedIn: stringValue(values[1]) == "true",
		Username:   stringValue(values[2]),
	}
	if creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

// Clear removes all three keys together.
func (s *RedisStorage) Clear(ctx context.Context) error {
	err := s.client.Del(ctx, s.key(keyToken), s.key(keyIsLoggedIn), s.key(keyUsername)).Err()
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
