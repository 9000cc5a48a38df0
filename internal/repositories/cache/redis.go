// Package cache holds the redis-backed wallet snapshot cache. Snapshots are
// cached read models only; the database stays authoritative and every ledger
// mutation invalidates the merchant's key.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paycore/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func (c *SnapshotCache) GetSnapshot(ctx context.Context, merchantID uint) (*models.WalletSnapshot, error) {
	val, err := c.client.Get(ctx, snapshotKey(merchantID)).Result()
	if err != nil {
		return nil, err
	}
	var snap models.WalletSnapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *SnapshotCache) SetSnapshot(ctx context.Context, snap *models.WalletSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(snap.MerchantID), data, c.ttl).Err()
}

func (c *SnapshotCache) Invalidate(ctx context.Context, merchantID uint) error {
	return c.client.Del(ctx, snapshotKey(merchantID)).Err()
}

func (c *SnapshotCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Close() error {
	return c.client.Close()
}

func snapshotKey(merchantID uint) string {
	return fmt.Sprintf("wallet:snapshot:%d", merchantID)
}
