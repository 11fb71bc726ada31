package rate

import (
	"context"
	"fmt"
	"time"

	"assetrates/internal/adapters"
	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
)

// Service computes the average interest rate of submitted asset batches and
// keeps the single current record in the configured storage backend.
type Service struct {
	storage adapters.RateStorage
	cache   adapters.RateCache
	now     func() time.Time
}

func NewService(storage adapters.RateStorage, cache adapters.RateCache) *Service {
	return &Service{storage: storage, cache: cache, now: time.Now}
}

// SubmitAssets validates the batch, computes the unweighted arithmetic mean of
// the interest rates and overwrites the stored record. The wall clock is read
// once per call so the whole batch shares one timestamp, and the write
// completes (or fails) before the call returns.
func (s *Service) SubmitAssets(ctx context.Context, assets []domain.Asset) (domain.RateRecord, error) {
	if err := ValidateBatch(assets); err != nil {
		return domain.RateRecord{}, err
	}

	sum := decimal.Zero
	for _, asset := range assets {
		sum = sum.Add(asset.InterestRate)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(assets))))

	record := domain.RateRecord{Rate: mean, UpdatedAt: s.now().UTC()}
	if err := s.storage.Save(ctx, record.Rate, record.UpdatedAt); err != nil {
		return domain.RateRecord{}, fmt.Errorf("failed to save average rate: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(record)
	}
	return record, nil
}

// CurrentRate returns the stored record, or domain.ErrRateNotFound if nothing
// was ever written. It never fabricates a zero rate.
func (s *Service) CurrentRate(ctx context.Context) (domain.RateRecord, error) {
	if s.cache != nil {
		if record, ok := s.cache.Get(); ok {
			return record, nil
		}
	}

	record, err := s.storage.Load(ctx)
	if err != nil {
		return domain.RateRecord{}, err
	}
	if s.cache != nil {
		s.cache.Set(record)
	}
	return record, nil
}
