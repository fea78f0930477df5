package catalog

import (
	"time"

	"github.com/coocood/freecache"
	"github.com/goccy/go-json"

	"github.com/existflow/cardscout/internal/model"
)

// cacheSize bounds the result cache; at a few hundred bytes per card this
// holds far more searches than one session produces.
const cacheSize = 16 * 1024 * 1024

// resultCache stores marshaled card lists with a fixed TTL. An expired
// entry simply stops being returned; there is no sweep.
type resultCache struct {
	cache *freecache.Cache
	ttl   int
}

func newResultCache(ttl time.Duration) *resultCache {
	seconds := int(ttl.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return &resultCache{
		cache: freecache.NewCache(cacheSize),
		ttl:   seconds,
	}
}

func (c *resultCache) Get(key string) ([]model.Card, bool) {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}

	var cards []model.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, false
	}
	return cards, true
}

func (c *resultCache) Set(key string, cards []model.Card) {
	raw, err := json.Marshal(cards)
	if err != nil {
		return
	}
	_ = c.cache.Set([]byte(key), raw, c.ttl)
}

func (c *resultCache) Clear() {
	c.cache.Clear()
}
