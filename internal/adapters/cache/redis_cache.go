package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps travel estimates and geocodes as JSON values that expire
// after ttl. It needs no pruning.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "itinerary:"}
}

func (r *RedisCache) travelKey(k ports.TravelKey) string {
	return fmt.Sprintf("%stravel:%s|%s|%s", r.prefix, k.Origin, k.Destination, k.Mode)
}

func (r *RedisCache) geocodeKey(address string) string {
	return r.prefix + "geocode:" + address
}

func (r *RedisCache) GetTravel(ctx context.Context, key ports.TravelKey) (_ ports.TravelEstimate, _ bool, err error) {
	defer obs.Time(ctx, "travel.redis.Get")(&err)

	var est ports.TravelEstimate
	ok, err := r.get(ctx, r.travelKey(key), &est)
	if err != nil {
		return ports.TravelEstimate{}, false, fmt.Errorf("get travel cache: %w", err)
	}
	return est, ok, nil
}

func (r *RedisCache) PutTravel(ctx context.Context, key ports.TravelKey, est ports.TravelEstimate) error {
	if err := r.set(ctx, r.travelKey(key), est); err != nil {
		return fmt.Errorf("insert travel cache %s -> %s: %w", key.Origin, key.Destination, err)
	}
	return nil
}

func (r *RedisCache) GetCoordinates(ctx context.Context, address string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.redis.Get")(&err)

	var c domain.Coordinates
	ok, err := r.get(ctx, r.geocodeKey(address), &c)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}
	return c, ok, nil
}

func (r *RedisCache) PutCoordinates(ctx context.Context, address string, c domain.Coordinates) error {
	if err := r.set(ctx, r.geocodeKey(address), c); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}
	return nil
}

func (r *RedisCache) get(ctx context.Context, key string, out any) (bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.client.Set(ctx, key, b, r.ttl).Err()
}
