package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a single input item supplying one interest-rate sample.
// Assets are not persisted individually.
type Asset struct {
	ID           string
	InterestRate decimal.Decimal
}

// RateRecord is the only persisted entity: the arithmetic mean of the most
// recent batch together with the time it was written. At most one record
// exists at any time; every successful write overwrites it in full.
type RateRecord struct {
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
