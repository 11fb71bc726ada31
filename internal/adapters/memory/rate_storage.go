package memory

import (
	"context"
	"sync"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
)

// RateStorage holds the single rate record in a mutex-guarded slot.
// State is lost on process restart, which is acceptable for this backend.
type RateStorage struct {
	mu      sync.RWMutex
	record  domain.RateRecord
	written bool
}

func NewRateStorage() *RateStorage {
	return &RateStorage{}
}

func (s *RateStorage) Save(_ context.Context, rate decimal.Decimal, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = domain.RateRecord{Rate: rate, UpdatedAt: updatedAt}
	s.written = true
	return nil
}

func (s *RateStorage) Load(_ context.Context) (domain.RateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return domain.RateRecord{}, domain.ErrRateNotFound
	}
	return s.record, nil
}
