package ledgernode

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const ownerKey = "owner-secret"

func TestContract_CurrentRateUninitialized(t *testing.T) {
	c := NewContract(ownerKey)

	_, _, ok := c.CurrentRate()
	require.False(t, ok)
}

func TestContract_FirstWriteAcceptsAnyTimestamp(t *testing.T) {
	c := NewContract(ownerKey)

	receipt, err := c.UpdateRate(ownerKey, big.NewInt(5525), big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, 1, receipt.Status)
	require.Equal(t, uint64(1), receipt.BlockNumber)
	require.NotEmpty(t, receipt.TxHash)

	rate, ts, ok := c.CurrentRate()
	require.True(t, ok)
	require.Zero(t, rate.Cmp(big.NewInt(5525)))
	require.Zero(t, ts.Cmp(big.NewInt(0)))
}

func TestContract_OwnerGuard(t *testing.T) {
	c := NewContract(ownerKey)

	_, err := c.UpdateRate("someone-else", big.NewInt(1), big.NewInt(1))
	require.ErrorIs(t, err, ErrNotOwner)

	_, _, ok := c.CurrentRate()
	require.False(t, ok, "rejected write must not initialize the contract")
}

func TestContract_StaleTimestampRejected(t *testing.T) {
	c := NewContract(ownerKey)

	_, err := c.UpdateRate(ownerKey, big.NewInt(100), big.NewInt(2000))
	require.NoError(t, err)

	_, err = c.UpdateRate(ownerKey, big.NewInt(200), big.NewInt(1999))
	require.ErrorIs(t, err, ErrStaleTimestamp)

	rate, ts, ok := c.CurrentRate()
	require.True(t, ok)
	require.Zero(t, rate.Cmp(big.NewInt(100)), "stored value must be unchanged after rejection")
	require.Zero(t, ts.Cmp(big.NewInt(2000)))
}

func TestContract_EqualTimestampAccepted(t *testing.T) {
	c := NewContract(ownerKey)

	_, err := c.UpdateRate(ownerKey, big.NewInt(100), big.NewInt(2000))
	require.NoError(t, err)

	_, err = c.UpdateRate(ownerKey, big.NewInt(200), big.NewInt(2000))
	require.NoError(t, err)

	rate, _, ok := c.CurrentRate()
	require.True(t, ok)
	require.Zero(t, rate.Cmp(big.NewInt(200)))
}

func TestContract_ValueOutOfRange(t *testing.T) {
	c := NewContract(ownerKey)

	_, err := c.UpdateRate(ownerKey, big.NewInt(-1), big.NewInt(1))
	require.ErrorIs(t, err, ErrValueOutOfRange)

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256) // 2^256
	_, err = c.UpdateRate(ownerKey, tooBig, big.NewInt(1))
	require.ErrorIs(t, err, ErrValueOutOfRange)

	maxUint256 := new(big.Int).Sub(tooBig, big.NewInt(1))
	_, err = c.UpdateRate(ownerKey, maxUint256, big.NewInt(1))
	require.NoError(t, err)
}

func TestContract_EventsPerSuccessfulWrite(t *testing.T) {
	c := NewContract(ownerKey)

	_, err := c.UpdateRate(ownerKey, big.NewInt(100), big.NewInt(1))
	require.NoError(t, err)
	_, err = c.UpdateRate(ownerKey, big.NewInt(200), big.NewInt(2))
	require.NoError(t, err)
	_, err = c.UpdateRate(ownerKey, big.NewInt(300), big.NewInt(1)) // stale, rejected
	require.ErrorIs(t, err, ErrStaleTimestamp)

	events := c.Events()
	require.Len(t, events, 2)
	require.Zero(t, events[0].Rate.Cmp(big.NewInt(100)))
	require.Zero(t, events[1].Rate.Cmp(big.NewInt(200)))
	require.Equal(t, uint64(1), events[0].BlockNumber)
	require.Equal(t, uint64(2), events[1].BlockNumber)
	require.NotEqual(t, events[0].TxHash, events[1].TxHash)
}

// Racing writers with inverted timestamps: exactly one ordering is possible,
// the stored timestamp never moves backwards.
func TestContract_ConcurrentWritersKeepMonotonicity(t *testing.T) {
	c := NewContract(ownerKey)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(ts int64) {
			defer wg.Done()
			_, _ = c.UpdateRate(ownerKey, big.NewInt(ts), big.NewInt(ts))
		}(int64(i))
	}
	wg.Wait()

	events := c.Events()
	require.NotEmpty(t, events)
	prev := big.NewInt(-1)
	for _, e := range events {
		require.True(t, e.Timestamp.Cmp(prev) >= 0, "timestamps must never move backwards")
		prev = e.Timestamp
	}

	_, ts, ok := c.CurrentRate()
	require.True(t, ok)
	require.Zero(t, ts.Cmp(events[len(events)-1].Timestamp))
}
