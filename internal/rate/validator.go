package rate

import (
	"errors"
	"fmt"

	"assetrates/internal/domain"
)

var (
	ErrEmptyBatch   = errors.New("asset batch cannot be empty")
	ErrNegativeRate = errors.New("asset interest rate cannot be negative")
)

// ValidateBatch checks a submitted batch: it must be non-empty and every
// interest rate must be non-negative. Zero is a valid rate.
func ValidateBatch(assets []domain.Asset) error {
	if len(assets) == 0 {
		return ErrEmptyBatch
	}
	for _, asset := range assets {
		if asset.InterestRate.IsNegative() {
			return fmt.Errorf("asset %q: %w", asset.ID, ErrNegativeRate)
		}
	}
	return nil
}
