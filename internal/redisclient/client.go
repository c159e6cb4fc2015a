package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"autoparts-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	catalogKey   = "cache:catalog"
	customersKey = "cache:customers"
)

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetCatalog returns the cached catalog snapshot, if present
func (c *Client) GetCatalog(ctx context.Context) ([]models.Part, bool, error) {
	var parts []models.Part
	found, err := c.getJSON(ctx, catalogKey, &parts)
	return parts, found, err
}

// SetCatalog caches the catalog snapshot with the configured TTL
func (c *Client) SetCatalog(ctx context.Context, parts []models.Part) error {
	return c.setJSON(ctx, catalogKey, parts)
}

// InvalidateCatalog drops the cached catalog snapshot. Called after
// every part mutation.
func (c *Client) InvalidateCatalog(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogKey).Err()
}

// GetCustomers returns the cached customer snapshot, if present
func (c *Client) GetCustomers(ctx context.Context) ([]models.Customer, bool, error) {
	var customers []models.Customer
	found, err := c.getJSON(ctx, customersKey, &customers)
	return customers, found, err
}

// SetCustomers caches the customer snapshot with the configured TTL
func (c *Client) SetCustomers(ctx context.Context, customers []models.Customer) error {
	return c.setJSON(ctx, customersKey, customers)
}

// InvalidateCustomers drops the cached customer snapshot
func (c *Client) InvalidateCustomers(ctx context.Context) error {
	return c.rdb.Del(ctx, customersKey).Err()
}

func (c *Client) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Client) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, payload, c.ttl).Err()
}
