package currency

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache holds one INR→USD rate for ttl. A failed refresh returns the
// fallback without caching it, so the next request tries again.
// Concurrent refreshes share a single fetch; the lock is never held
// while the source is called.
type Cache struct {
	source   RateSource
	ttl      time.Duration
	fallback float64
	now      func() time.Time
	logger   *zap.Logger
	group    singleflight.Group

	mu        sync.RWMutex
	rate      float64
	fetchedAt time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(source RateSource, ttl time.Duration, fallback float64, logger *zap.Logger, opts ...Option) *Cache {
	c := &Cache{
		source:   source,
		ttl:      ttl,
		fallback: fallback,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) INRToUSD(ctx context.Context) float64 {
	if rate, ok := c.cached(); ok {
		return rate
	}

	v, err, _ := c.group.Do("INR", func() (any, error) {
		if rate, ok := c.cached(); ok {
			return rate, nil
		}
		rate, err := c.source.INRToUSD(ctx)
		if err != nil {
			return 0.0, err
		}
		c.mu.Lock()
		c.rate = rate
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return rate, nil
	})
	if err != nil {
		c.logger.Warn("exchange rate refresh failed, using fallback",
			zap.Error(err),
			zap.Float64("fallback", c.fallback),
		)
		return c.fallback
	}
	return v.(float64)
}

func (c *Cache) cached() (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rate > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.rate, true
	}
	return 0, false
}

// Quote is what the storefront needs to render prices for a visitor.
type Quote struct {
	Country      string  `json:"country"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`
	InrToUsd     float64 `json:"inrToUsd"`
}

// QuoteFor picks the display currency for an ISO country code. Only US
// visitors see USD; an empty country is treated as IN.
func (c *Cache) QuoteFor(ctx context.Context, country string) Quote {
	if country == "" {
		country = "IN"
	}
	rate := c.INRToUSD(ctx)
	q := Quote{Country: country, Currency: "INR", ExchangeRate: 1, InrToUsd: rate}
	if country == "US" {
		q.Currency = "USD"
		q.ExchangeRate = rate
	}
	return q
}
