package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"julex/internal/domain"
	applog "julex/internal/log"
)

const (
	idsKey        = "julex:products:active"
	productPrefix = "julex:product:"
)

// Redis stores each product under its own key plus an ordered id list, so a
// read is one LRANGE and one MGET. Any failure is logged and reported as a
// miss; the database stays the source of truth.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings addr.
func NewRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	applog.L().Info("cache.redis.connected", zap.String("addr", addr))
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) Products(ctx context.Context) ([]domain.Product, bool) {
	ids, err := r.client.LRange(ctx, idsKey, 0, -1).Result()
	if err != nil {
		if err != redis.Nil {
			applog.L().Warn("cache.redis.read", zap.Error(err))
		}
		return nil, false
	}
	if len(ids) == 0 {
		return nil, false
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		applog.L().Warn("cache.redis.read", zap.Error(err))
		return nil, false
	}
	out := make([]domain.Product, 0, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// evicted entry; a partial list would be wrong
			applog.L().Debug("cache.redis.partial", zap.String("id", ids[i]))
			return nil, false
		}
		var p domain.Product
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			applog.L().Warn("cache.redis.decode", zap.String("id", ids[i]), zap.Error(err))
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

func (r *Redis) Store(ctx context.Context, products []domain.Product) {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, idsKey)
	ids := make([]any, 0, len(products))
	for _, p := range products {
		b, err := json.Marshal(p)
		if err != nil {
			applog.L().Warn("cache.redis.encode", zap.String("id", p.ID), zap.Error(err))
			return
		}
		pipe.Set(ctx, productPrefix+p.ID, b, r.ttl)
		ids = append(ids, p.ID)
	}
	if len(ids) > 0 {
		pipe.RPush(ctx, idsKey, ids...)
		pipe.Expire(ctx, idsKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		applog.L().Warn("cache.redis.write", zap.Error(err))
	}
}

func (r *Redis) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, idsKey).Err(); err != nil {
		applog.L().Warn("cache.redis.invalidate", zap.Error(err))
	}
}
