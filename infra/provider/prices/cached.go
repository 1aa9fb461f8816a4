package prices

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
)

// Cached decorates a price provider with a Redis cache. Each symbol is one
// key; only symbols missing from the cache hit the upstream provider. Cache
// failures degrade to upstream calls, never to errors.
type Cached struct {
	next   crypto.PriceProvider
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewCached wraps next with a Redis price cache.
func NewCached(next crypto.PriceProvider, client *redis.Client, cfg config.PriceProvider, logger *slog.Logger) *Cached {
	return &Cached{
		next:   next,
		client: client,
		ttl:    cfg.CacheTTL,
		prefix: cfg.CachePrefix,
		logger: logger.With("provider", "price-cache"),
	}
}

// NewRedisClient opens a Redis connection from config.
func NewRedisClient(cfg config.Redis) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout
	return redis.NewClient(opt), nil
}

// Prices implements crypto.PriceProvider.
func (c *Cached) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))
	var misses []string

	keys := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		keys = append(keys, c.prefix+strings.ToUpper(sym))
	}
	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("price cache read failed", "error", err)
		cached = make([]any, len(symbols))
	}
	for i, sym := range symbols {
		sym = strings.ToUpper(sym)
		raw, _ := cached[i].(string)
		if raw == "" {
			misses = append(misses, sym)
			continue
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			misses = append(misses, sym)
			continue
		}
		out[sym] = price
	}
	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := c.next.Prices(ctx, misses)
	if err != nil {
		return nil, err
	}
	for sym, price := range fresh {
		out[sym] = price
		key := c.prefix + sym
		if err := c.client.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), c.ttl).Err(); err != nil {
			c.logger.Warn("price cache write failed", "symbol", sym, "error", err)
		}
	}
	return out, nil
}

var _ crypto.PriceProvider = (*Cached)(nil)
