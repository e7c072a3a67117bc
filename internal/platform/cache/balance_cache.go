// Package cache keeps wallet account snapshots in Redis for display reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisBalanceCache stores account snapshots as JSON under
// wallet:account:<owner_ref>:<currency>.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBalanceCache creates a cache whose entries expire after ttl.
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

var _ portsrepo.BalanceCache = (*RedisBalanceCache)(nil)

func accountKey(ownerRef, currencyCode string) string {
	return fmt.Sprintf("wallet:account:%s:%s", ownerRef, currencyCode)
}

func (c *RedisBalanceCache) GetAccount(ctx context.Context, ownerRef string, currencyCode string) (*domain.Account, bool, error) {
	data, err := c.client.Get(ctx, accountKey(ownerRef, currencyCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached account: %w", err)
	}

	var acc domain.Account
	if err := json.Unmarshal(data, &acc); err != nil {
		// Readers treat this as a miss; the next SetAccount overwrites it.
		return nil, false, fmt.Errorf("failed to decode cached account: %w", err)
	}
	return &acc, true, nil
}

func (c *RedisBalanceCache) SetAccount(ctx context.Context, account domain.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}
	if err := c.client.Set(ctx, accountKey(account.OwnerRef, account.CurrencyCode), string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache account: %w", err)
	}
	return nil
}

func (c *RedisBalanceCache) Invalidate(ctx context.Context, accounts ...domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	keys := make([]string, len(accounts))
	for i, acc := range accounts {
		keys[i] = accountKey(acc.OwnerRef, acc.CurrencyCode)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached accounts: %w", err)
	}
	return nil
}
