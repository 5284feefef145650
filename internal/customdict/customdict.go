package customdict

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding the extra dictionary words.
const DefaultKey = "custom_dict"

// CustomDict wraps a Redis client to store words that extend the corpus
// dictionary. They count as dictionary hits but are never tried as keys.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a new CustomDict with the provided Redis client. An empty key
// selects DefaultKey.
func New(client *redis.Client, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, word).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, word).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}
