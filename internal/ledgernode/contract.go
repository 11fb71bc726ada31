package ledgernode

import (
	"crypto/subtle"
	"errors"
	"math/big"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotOwner        = errors.New("sender is not the contract owner")
	ErrStaleTimestamp  = errors.New("timestamp is older than the stored value")
	ErrValueOutOfRange = errors.New("value does not fit into uint256")
)

// gasPerUpdate is a fixed per-write cost reported in receipts.
const gasPerUpdate = 43274

type Receipt struct {
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	Status      int
}

// RateUpdated is emitted once per successful write.
type RateUpdated struct {
	Rate        *big.Int
	Timestamp   *big.Int
	BlockNumber uint64
	TxHash      string
}

// Contract is a single-value ledger: it stores one (rate, timestamp) pair as
// 256-bit unsigned integers behind an owner-only write guard and keeps an
// append-only log of every accepted write.
//
// Lifecycle: uninitialized (reads report no value, any timestamp is accepted
// on the first write) -> initialized (a write whose timestamp is strictly
// less than the stored one is rejected). There is no terminal state.
type Contract struct {
	mu sync.RWMutex

	ownerKey    string
	rate        *big.Int
	updatedAt   *big.Int
	initialized bool
	blockHeight uint64
	events      []RateUpdated
}

func NewContract(ownerKey string) *Contract {
	return &Contract{ownerKey: ownerKey}
}

// UpdateRate overwrites the stored pair. Only the owner may write, values must
// fit into uint256 and the timestamp must not move backwards. The monotonicity
// check is performed under the same lock as the write, so of two racing writes
// with inverted timestamps exactly one succeeds.
func (c *Contract) UpdateRate(senderKey string, rate, timestamp *big.Int) (Receipt, error) {
	if subtle.ConstantTimeCompare([]byte(senderKey), []byte(c.ownerKey)) != 1 {
		return Receipt{}, ErrNotOwner
	}
	if !fitsUint256(rate) || !fitsUint256(timestamp) {
		return Receipt{}, ErrValueOutOfRange
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized && timestamp.Cmp(c.updatedAt) < 0 {
		return Receipt{}, ErrStaleTimestamp
	}

	c.rate = new(big.Int).Set(rate)
	c.updatedAt = new(big.Int).Set(timestamp)
	c.initialized = true
	c.blockHeight++

	receipt := Receipt{
		TxHash:      uuid.NewString(),
		BlockNumber: c.blockHeight,
		GasUsed:     gasPerUpdate,
		Status:      1,
	}
	c.events = append(c.events, RateUpdated{
		Rate:        new(big.Int).Set(rate),
		Timestamp:   new(big.Int).Set(timestamp),
		BlockNumber: receipt.BlockNumber,
		TxHash:      receipt.TxHash,
	})
	return receipt, nil
}

// CurrentRate returns the stored pair. ok is false while the contract is
// uninitialized.
func (c *Contract) CurrentRate() (rate, timestamp *big.Int, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, nil, false
	}
	return new(big.Int).Set(c.rate), new(big.Int).Set(c.updatedAt), true
}

// Events returns a copy of the emitted event log in write order.
func (c *Contract) Events() []RateUpdated {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]RateUpdated, len(c.events))
	copy(out, c.events)
	return out
}

func fitsUint256(v *big.Int) bool {
	return v != nil && v.Sign() >= 0 && v.BitLen() <= 256
}
