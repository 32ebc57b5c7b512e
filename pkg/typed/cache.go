package typed

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache memoizes `Parse` results keyed by the raw type-string. Cached types
// are cloned on the way out, so callers never share memory with the cache.
// A Cache is safe for concurrent use.
type Cache struct {
	lru    *lru.Cache[string, Type]
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCache returns a cache holding at most `size` parsed types. Hit and miss
// counters are registered with `registerer`, or with a private registry when
// it's nil.
func NewCache(size int, registerer prometheus.Registerer) (*Cache, error) {
	l, err := lru.New[string, Type](size)
	if err != nil {
		return nil, err
	}

	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	factory := promauto.With(registerer)

	return &Cache{
		lru: l,
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "typed_cache_hits_total",
			Help: "Number of type-strings found in the parse cache.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "typed_cache_misses_total",
			Help: "Number of type-strings parsed because they were not cached.",
		}),
	}, nil
}

// Parse returns the parsed type of `raw`, parsing it only on a cache miss.
func (c *Cache) Parse(raw string) Type {
	if t, ok := c.lru.Get(raw); ok {
		c.hits.Inc()
		return Clone(t)
	}

	c.misses.Inc()

	t := Parse(raw)
	c.lru.Add(raw, t)

	return Clone(t)
}

// Len returns the number of cached types.
func (c *Cache) Len() int {
	return c.lru.Len()
}
