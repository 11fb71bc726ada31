package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assetrates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// singletonID keys the one and only interest_rate row.
const singletonID = 1

// RateStorage keeps the current rate in a single row upserted on every save.
// The rate travels as text on both sides so the numeric value keeps its full
// precision instead of being squeezed through float64.
type RateStorage struct {
	pool *pgxpool.Pool
}

func NewRateStorage(pool *pgxpool.Pool) *RateStorage {
	return &RateStorage{pool: pool}
}

func (s *RateStorage) Save(ctx context.Context, rate decimal.Decimal, updatedAt time.Time) error {
	const q = `
        insert into interest_rate (id, rate, updated_at)
        values ($1, $2::numeric, $3)
        on conflict (id) do update
        set rate = excluded.rate, updated_at = excluded.updated_at;
    `

	if _, err := s.pool.Exec(ctx, q, singletonID, rate.String(), updatedAt); err != nil {
		return fmt.Errorf("failed to upsert interest rate: %w", err)
	}
	return nil
}

func (s *RateStorage) Load(ctx context.Context) (domain.RateRecord, error) {
	const q = `select rate::text, updated_at from interest_rate where id = $1;`

	var (
		rateStr   string
		updatedAt time.Time
	)
	if err := s.pool.QueryRow(ctx, q, singletonID).Scan(&rateStr, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateRecord{}, domain.ErrRateNotFound
		}
		return domain.RateRecord{}, fmt.Errorf("failed to select interest rate: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("failed to parse stored rate %q: %w", rateStr, err)
	}

	return domain.RateRecord{Rate: rate, UpdatedAt: updatedAt}, nil
}
