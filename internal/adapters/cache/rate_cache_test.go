package cache

import (
	"testing"
	"time"

	"assetrates/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRateCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get()
	require.False(t, ok)
}

func TestRateCache_SetAndGet(t *testing.T) {
	c, err := NewRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	record := domain.RateRecord{
		Rate:      decimal.RequireFromString("55"),
		UpdatedAt: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	c.Set(record)

	got, ok := c.Get()
	require.True(t, ok)
	require.True(t, got.Rate.Equal(record.Rate))
	require.True(t, got.UpdatedAt.Equal(record.UpdatedAt))
}

func TestRateCache_SetOverwrites(t *testing.T) {
	c, err := NewRateCache(64)
	require.NoError(t, err)
	defer c.Close()

	first := domain.RateRecord{Rate: decimal.NewFromInt(1), UpdatedAt: time.Now().UTC()}
	second := domain.RateRecord{Rate: decimal.NewFromInt(2), UpdatedAt: first.UpdatedAt.Add(time.Minute)}

	c.Set(first)
	c.Set(second)

	got, ok := c.Get()
	require.True(t, ok)
	require.True(t, got.Rate.Equal(second.Rate))
}
