package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRateStorage_LoadBeforeFirstSave(t *testing.T) {
	s := NewRateStorage()

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestRateStorage_SaveAndLoad(t *testing.T) {
	s := NewRateStorage()
	ctx := context.Background()

	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, s.Save(ctx, decimal.RequireFromString("55"), now))

	record, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, record.Rate.Equal(decimal.RequireFromString("55")))
	require.True(t, record.UpdatedAt.Equal(now))
}

func TestRateStorage_SaveOverwrites(t *testing.T) {
	s := NewRateStorage()
	ctx := context.Background()

	t1 := time.Date(2025, 3, 4, 5, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	require.NoError(t, s.Save(ctx, decimal.NewFromInt(1), t1))
	require.NoError(t, s.Save(ctx, decimal.NewFromInt(2), t2))

	record, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, record.Rate.Equal(decimal.NewFromInt(2)))
	require.True(t, record.UpdatedAt.Equal(t2))
}

// A concurrent reader must always observe a rate with its matching timestamp,
// never a torn pair.
func TestRateStorage_NoTornReads(t *testing.T) {
	s := NewRateStorage()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// Rate i is always written together with timestamp base+i seconds.
	pairFor := func(i int) (decimal.Decimal, time.Time) {
		return decimal.NewFromInt(int64(i)), base.Add(time.Duration(i) * time.Second)
	}

	var wg sync.WaitGroup
	const iterations = 500
	torn := make(chan domain.RateRecord, iterations)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			rate, ts := pairFor(i)
			_ = s.Save(ctx, rate, ts)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			record, err := s.Load(ctx)
			if err != nil {
				continue // nothing written yet
			}
			wantTs := base.Add(time.Duration(record.Rate.IntPart()) * time.Second)
			if !record.UpdatedAt.Equal(wantTs) {
				torn <- record
			}
		}
	}()

	wg.Wait()
	close(torn)
	for record := range torn {
		require.Failf(t, "torn read", "rate %s with timestamp %s", record.Rate, record.UpdatedAt)
	}
}
