package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
)

// rateDecimals is the fixed-point scale of the on-ledger rate. The ledger has
// no fractional type, so 55.25 is stored as 5525. Scaling is lossless for
// rates with at most two decimal digits and truncates anything beyond.
const rateDecimals = 2

// Storage adapts the ledger node into a RateStorage: decimal rates become
// scaled 256-bit integers and timestamps become Unix seconds.
type Storage struct {
	client *Client
}

func NewStorage(client *Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Save(ctx context.Context, rate decimal.Decimal, updatedAt time.Time) error {
	if rate.IsNegative() {
		return fmt.Errorf("cannot store negative rate %s on the ledger", rate)
	}

	scaled := rate.Shift(rateDecimals).Truncate(0).BigInt()
	timestamp := big.NewInt(updatedAt.Unix())

	if _, err := s.client.UpdateRate(ctx, scaled, timestamp); err != nil {
		return fmt.Errorf("ledger write failed: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context) (domain.RateRecord, error) {
	scaled, timestamp, err := s.client.CurrentRate(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			return domain.RateRecord{}, err
		}
		return domain.RateRecord{}, fmt.Errorf("ledger read failed: %w", err)
	}

	if !timestamp.IsInt64() {
		return domain.RateRecord{}, fmt.Errorf("ledger timestamp %s is out of range", timestamp)
	}

	return domain.RateRecord{
		Rate:      decimal.NewFromBigInt(scaled, -rateDecimals),
		UpdatedAt: time.Unix(timestamp.Int64(), 0).UTC(),
	}, nil
}
