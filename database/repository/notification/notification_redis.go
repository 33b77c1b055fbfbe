package notificationRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servana/models"

	"github.com/go-redis/redis/v8"
)

const storedKeyPrefix = "notifications:stored:"

// StoreRepository persists the durable notification history. The whole list
// is written as one JSON array under a fixed per-company key, last-write-wins;
// no merge strategy across concurrent writers.
type StoreRepository interface {
	Load(companyID string) ([]models.Notification, error)
	Save(companyID string, notifications []models.Notification) error
	Clear(companyID string) error
}

// RedisStoreRepo implements StoreRepository on Redis.
type RedisStoreRepo struct {
	client *redis.Client
}

// NewRedisStoreRepo creates a StoreRepository backed by the given Redis client.
func NewRedisStoreRepo(client *redis.Client) StoreRepository {
	return &RedisStoreRepo{client: client}
}

func (r *RedisStoreRepo) key(companyID string) string {
	return storedKeyPrefix + companyID
}

// Load rehydrates the stored notification list for a company. A missing key
// is an empty history, not an error.
func (r *RedisStoreRepo) Load(companyID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := r.client.Get(ctx, r.key(companyID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load stored notifications for company %s: %w", companyID, err)
	}

	var notifications []models.Notification
	if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode stored notifications for company %s: %w", companyID, err)
	}
	return notifications, nil
}

// Save rewrites the full stored list.
func (r *RedisStoreRepo) Save(companyID string, notifications []models.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to encode stored notifications for company %s: %w", companyID, err)
	}
	if err := r.client.Set(ctx, r.key(companyID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save stored notifications for company %s: %w", companyID, err)
	}
	return nil
}

// Clear drops the stored history for a company.
func (r *RedisStoreRepo) Clear(companyID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := r.client.Del(ctx, r.key(companyID)).Err(); err != nil {
		return fmt.Errorf("failed to clear stored notifications for company %s: %w", companyID, err)
	}
	return nil
}
