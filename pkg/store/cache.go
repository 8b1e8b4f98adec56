package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mchmarny/basket/pkg/defaults"
	cnserrors "github.com/mchmarny/basket/pkg/errors"
)

const loadKey = "load"

// LoaderFunc produces a fresh value for a Cache.
type LoaderFunc[T any] func(ctx context.Context) (T, error)

// Option configures a Cache.
type Option func(*options)

type options struct {
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	breakerFailures uint32
	breakerCooldown time.Duration
}

// WithTTL sets how long a loaded value stays fresh. Zero or less means it
// never expires.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// WithLoadTimeout bounds a single load. Defaults to defaults.RuleLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithBreaker stops calling the loader after failures consecutive errors.
// Loads then fail fast with SERVICE_UNAVAILABLE until cooldown has passed,
// when a single trial load decides whether to resume. Zero failures
// disables the breaker.
func WithBreaker(failures uint32, cooldown time.Duration) Option {
	return func(o *options) {
		o.breakerFailures = failures
		o.breakerCooldown = cooldown
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Cache holds a single lazily loaded value. It is safe for concurrent use.
type Cache[T any] struct {
	name string
	load LoaderFunc[T]
	opts options

	group   singleflight.Group
	breaker *gobreaker.CircuitBreaker[T]

	mu         sync.RWMutex
	value      T
	loaded     bool
	loadedAt   time.Time
	generation uint64
}

// New creates a Cache named name, used in logs and metric labels.
func New[T any](name string, load LoaderFunc[T], opts ...Option) *Cache[T] {
	o := options{
		loadTimeout: defaults.RuleLoadTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cache[T]{
		name: name,
		load: load,
		opts: o,
	}
	if o.breakerFailures > 0 {
		c.breaker = gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     o.breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= o.breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("cache source breaker state changed",
					"cache", name,
					"from", from.String(),
					"to", to.String())
				cacheBreakerState.WithLabelValues(name).Set(float64(to))
			},
		})
	}
	return c
}

// Name returns the cache name.
func (c *Cache[T]) Name() string {
	return c.name
}

// Get returns the cached value, loading it when absent or expired.
// If a reload fails while an older value exists, the older value is
// returned without error.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	c.mu.RLock()
	value, loaded, loadedAt := c.value, c.loaded, c.loadedAt
	c.mu.RUnlock()

	if loaded && c.fresh(loadedAt) {
		cacheHits.WithLabelValues(c.name).Inc()
		return value, nil
	}
	cacheMisses.WithLabelValues(c.name).Inc()

	v, err := c.fetch(ctx)
	if err != nil {
		if loaded {
			slog.Warn("cache reload failed, serving previous value",
				"cache", c.name,
				"loadedAt", loadedAt,
				"error", err)
			return value, nil
		}
		var zero T
		return zero, err
	}
	return v, nil
}

// Reload loads a new value now. On failure the previous value, if any, is kept
// and the error is returned.
func (c *Cache[T]) Reload(ctx context.Context) (T, error) {
	c.group.Forget(loadKey)
	return c.fetch(ctx)
}

// Invalidate drops the cached value. The next Get loads again.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.loaded = false
	c.loadedAt = time.Time{}
	c.generation++
	c.mu.Unlock()

	c.group.Forget(loadKey)
	slog.Debug("cache invalidated", "cache", c.name)
}

// LoadedAt returns when the current value was loaded, or the zero time.
func (c *Cache[T]) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Ready reports SERVICE_UNAVAILABLE until a value has been loaded. It never
// triggers a load, so it is cheap enough for readiness probes.
func (c *Cache[T]) Ready(context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		return cnserrors.NewWithContext(cnserrors.ErrCodeUnavailable, "cache not loaded",
			map[string]any{"cache": c.name})
	}
	return nil
}

func (c *Cache[T]) fresh(loadedAt time.Time) bool {
	return c.opts.ttl <= 0 || c.opts.now().Sub(loadedAt) < c.opts.ttl
}

func (c *Cache[T]) callLoader(ctx context.Context) (T, error) {
	if c.breaker == nil {
		return c.load(ctx)
	}
	v, err := c.breaker.Execute(func() (T, error) { return c.load(ctx) })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return v, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
			"source disabled after repeated load failures", err, map[string]any{"cache": c.name})
	}
	return v, err
}

// fetch runs one coalesced load. The load itself is detached from the
// caller's cancellation so other waiters are not failed by it; the caller
// stops waiting when ctx is done.
func (c *Cache[T]) fetch(ctx context.Context) (T, error) {
	ch := c.group.DoChan(loadKey, func() (any, error) {
		c.mu.RLock()
		gen := c.generation
		c.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.loadTimeout)
		defer cancel()

		start := time.Now()
		v, err := c.callLoader(loadCtx)
		cacheLoadDuration.WithLabelValues(c.name).Observe(time.Since(start).Seconds())
		if err != nil {
			cacheLoadErrors.WithLabelValues(c.name).Inc()
			return nil, err
		}

		c.mu.Lock()
		if c.generation == gen {
			c.value = v
			c.loaded = true
			c.loadedAt = c.opts.now()
		}
		c.mu.Unlock()

		slog.Debug("cache loaded", "cache", c.name, "duration", time.Since(start).String())
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, cnserrors.Wrap(cnserrors.ErrCodeTimeout, "cache load wait canceled", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	}
}
