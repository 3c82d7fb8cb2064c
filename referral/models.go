// Package referral defines the denormalized referral income records
// used for sponsor reporting.
package referral

import (
	"github.com/xraph/walletledger/types"
)

// StatusPaid is the only status an income record is written with:
// records exist only for commissions that were committed.
const StatusPaid = "Paid"

// IncomeRecord is a denormalized view of one referral-commission
// journal entry, keyed by sponsor.
type IncomeRecord struct {
	types.Entity
	ID           string        `json:"id"`
	SponsorID    string        `json:"sponsor_id"`
	ReferredID   string        `json:"referred_id"`
	ReferredName string        `json:"referred_name"`
	Package      string        `json:"package"`
	Commission   string        `json:"commission"`
	Amount       types.Credits `json:"amount"`
	Status       string        `json:"status"`
}
