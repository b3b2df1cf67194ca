package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Query keys derived reads are cached under. The commit pipeline invalidates
// both after a successful commit so subsequent reads see the new items.
func InventoryKey(householdID string) string {
	return fmt.Sprintf("inventory:%s", householdID)
}

func DashboardMetricsKey(householdID string) string {
	return fmt.Sprintf("dashboard-metrics:%s", householdID)
}

type (
	Invalidator interface {
		Invalidate(ctx context.Context, keys ...string) error
	}

	redisInvalidator struct {
		client *redis.Client
	}

	noopInvalidator struct{}
)

// ConnectRedis returns nil when no REDIS_ADDR is configured; the app then
// wires the no-op invalidator.
func ConnectRedis() *redis.Client {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	db, err := strconv.Atoi(utils.GetConfig("REDIS_DB"))
	if err != nil {
		db = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("redis unavailable, cache invalidation disabled: %v", err)
		return nil
	}

	return client
}

func NewInvalidator(client *redis.Client) Invalidator {
	if client == nil {
		return &noopInvalidator{}
	}
	return &redisInvalidator{client: client}
}

func (i *redisInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return i.client.Del(ctx, keys...).Err()
}

func (i *noopInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	return nil
}
