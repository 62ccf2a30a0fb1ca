package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentloop/service-booking/internal/domain/product"
)

const productKeyPrefix = "booking:product:"

// CachedProductRepository is a read-through Redis cache in front of another
// product.Repository. Redis failures degrade to the underlying lookup.
type CachedProductRepository struct {
	next   product.Repository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProductRepository wraps next with a Redis cache whose entries live for ttl.
func NewCachedProductRepository(next product.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// FindByID returns the cached product or loads and caches it.
func (c *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	key := productKey(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p product.Product
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			return &p, nil
		}
		c.logger.Warn("dropping undecodable cached product", zap.String("product_id", id.String()))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
	}

	p, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("product cache write failed", zap.String("product_id", id.String()), zap.Error(err))
		}
	}
	return p, nil
}

// Invalidate evicts a product so the next lookup reads the catalog table.
func (c *CachedProductRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, productKey(id)).Err()
}

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}
