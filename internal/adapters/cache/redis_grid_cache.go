package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const gridKeyPrefix = "grid:"

// RedisGridCache caches grid definitions as JSON values with a TTL.
type RedisGridCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedGrid struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	EllipsoidID     int     `json:"ellipsoid_id"`
	FalseEasting    float64 `json:"false_easting"`
	FalseNorthing   float64 `json:"false_northing"`
	OriginLatitude  float64 `json:"origin_latitude"`
	OriginLongitude float64 `json:"origin_longitude"`
	ScaleFactor     float64 `json:"scale_factor"`
}

func NewRedisGridCache(client *redis.Client, ttl time.Duration) (*RedisGridCache, error) {
	if client == nil {
		return nil, errors.New("redis grid cache: client is nil")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("redis grid cache: negative ttl %s", ttl)
	}
	return &RedisGridCache{client: client, ttl: ttl}, nil
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func gridKey(name string) string {
	return gridKeyPrefix + strings.ToLower(strings.TrimSpace(name))
}

func (c *RedisGridCache) Get(ctx context.Context, name string) (_ *domain.NamedGrid, _ bool, err error) {
	defer obs.Time(ctx, "grid.cache.Get")(&err)

	b, err := c.client.Get(ctx, gridKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get grid cache %q: %w", name, err)
	}

	var v cachedGrid
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false, fmt.Errorf("get grid cache %q: decode: %w", name, err)
	}

	return &domain.NamedGrid{
		Name:        v.Name,
		Description: v.Description,
		Ellipsoid:   domain.EllipsoidID(v.EllipsoidID),
		Params: domain.GridParameters{
			FalseEasting:    v.FalseEasting,
			FalseNorthing:   v.FalseNorthing,
			OriginLatitude:  v.OriginLatitude,
			OriginLongitude: v.OriginLongitude,
			ScaleFactor:     v.ScaleFactor,
		},
	}, true, nil
}

func (c *RedisGridCache) Put(ctx context.Context, g *domain.NamedGrid) (err error) {
	defer obs.Time(ctx, "grid.cache.Put")(&err)

	if g == nil || strings.TrimSpace(g.Name) == "" {
		return errors.New("put grid cache: grid must have a name")
	}

	b, err := json.Marshal(cachedGrid{
		Name:            g.Name,
		Description:     g.Description,
		EllipsoidID:     int(g.Ellipsoid),
		FalseEasting:    g.Params.FalseEasting,
		FalseNorthing:   g.Params.FalseNorthing,
		OriginLatitude:  g.Params.OriginLatitude,
		OriginLongitude: g.Params.OriginLongitude,
		ScaleFactor:     g.Params.ScaleFactor,
	})
	if err != nil {
		return fmt.Errorf("put grid cache %q: encode: %w", g.Name, err)
	}

	if err := c.client.Set(ctx, gridKey(g.Name), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put grid cache %q: %w", g.Name, err)
	}
	return nil
}
