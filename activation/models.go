// Package activation defines package activation records.
package activation

import (
	"time"

	"github.com/xraph/walletledger/types"
)

// Status is the activation lifecycle state.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
)

// Record is proof that a package purchase is currently in effect.
// It is created atomically with the balance debit that funds it.
type Record struct {
	types.Entity
	ID          string        `json:"id"`
	AccountUID  string        `json:"account_uid"`
	AccountID   string        `json:"account_id"`
	AccountName string        `json:"account_name"`
	Package     string        `json:"package"`
	Amount      types.Credits `json:"amount"`
	DailyIncome types.Credits `json:"daily_income"`
	Status      Status        `json:"status"`
	ValidTill   time.Time     `json:"valid_till"`
}

// ExpiredAt reports whether the validity window has passed at the given
// time.
func (r *Record) ExpiredAt(now time.Time) bool {
	return now.After(r.ValidTill)
}
