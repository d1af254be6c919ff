package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tuitionledger/internal/models/response_models"
)

const publicViewTTL = 5 * time.Minute

// PublicViewCache keeps assembled public projections in Redis. The shared
// payment link is the one hot, unauthenticated read path, so it gets a
// cache; every mutation touching a student's ledger invalidates that
// student's entry by token. A nil client disables caching entirely.
type PublicViewCache struct {
	client *redis.Client
}

func NewPublicViewCache(client *redis.Client) *PublicViewCache {
	return &PublicViewCache{client: client}
}

func cacheKey(token string) string {
	return "publicview:" + token
}

func (c *PublicViewCache) Get(ctx context.Context, token string) *response_models.PublicView {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cacheKey(token)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("public view cache read failed: %v", err)
		}
		return nil
	}
	var view response_models.PublicView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil
	}
	return &view
}

func (c *PublicViewCache) Set(ctx context.Context, token string, view *response_models.PublicView) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(token), data, publicViewTTL).Err(); err != nil {
		log.Printf("public view cache write failed: %v", err)
	}
}

func (c *PublicViewCache) Invalidate(ctx context.Context, token string) {
	if c == nil || c.client == nil || token == "" {
		return
	}
	if err := c.client.Del(ctx, cacheKey(token)).Err(); err != nil {
		log.Printf("public view cache invalidation failed: %v", err)
	}
}
