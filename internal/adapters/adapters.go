package adapters

import (
	"context"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
)

// RateStorage persists the single current rate record. Save overwrites the
// record in full and must be atomic with respect to concurrent Load calls:
// a reader observes either the old or the new record, never a torn pair.
type RateStorage interface {
	Save(ctx context.Context, rate decimal.Decimal, updatedAt time.Time) error
	// Load returns domain.ErrRateNotFound if no record was ever written.
	Load(ctx context.Context) (domain.RateRecord, error)
}

// RateCache keeps the current rate record close to the handlers. The storage
// stays the source of truth; a miss is always answered from storage.
type RateCache interface {
	Get() (domain.RateRecord, bool)
	Set(record domain.RateRecord)
	Close()
}
