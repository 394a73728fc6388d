package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const answerKeyPrefix = "qa:answer:"

// AnswerCache keeps recent Q&A responses so repeated policy questions skip
// the retrieval and LLM round trip.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AnswerCache{client: client, ttl: ttl}
}

func (c *AnswerCache) Get(ctx context.Context, key string) (string, bool, error) {
	payload, err := c.client.Get(ctx, answerKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cached answer failed: %w", err)
	}
	return payload, true, nil
}

func (c *AnswerCache) Set(ctx context.Context, key, payload string) error {
	if err := c.client.Set(ctx, answerKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached answer failed: %w", err)
	}
	return nil
}
