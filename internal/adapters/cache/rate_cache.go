package cache

import (
	"fmt"

	"assetrates/internal/domain"

	"github.com/dgraph-io/ristretto"
)

const currentRateKey = "current_rate"

type RistrettoRateCache struct {
	cache *ristretto.Cache
}

func NewRateCache(maxItems int64) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c}, nil
}

func (c *RistrettoRateCache) Get() (domain.RateRecord, bool) {
	if v, ok := c.cache.Get(currentRateKey); ok {
		record, ok := v.(domain.RateRecord)
		return record, ok
	}
	return domain.RateRecord{}, false
}

// Set waits for the buffered write to drain so a read immediately after a
// submit observes the fresh record.
func (c *RistrettoRateCache) Set(record domain.RateRecord) {
	c.cache.Set(currentRateKey, record, 1)
	c.cache.Wait()
}

func (c *RistrettoRateCache) Close() { c.cache.Close() }
