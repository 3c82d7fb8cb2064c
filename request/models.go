// Package request defines deposit and withdrawal request records.
package request

import (
	"time"

	"github.com/xraph/walletledger/types"
)

// Status is the request lifecycle state. A request may be approved at
// most once; approval is the only transition that mutates an account.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
)

// Deposit is a pending or approved credit request.
type Deposit struct {
	types.Entity
	ID          string        `json:"id"`
	AccountUID  string        `json:"account_uid"`
	AccountID   string        `json:"account_id"`
	AccountName string        `json:"account_name"`
	Amount      types.Credits `json:"amount"`
	Method      string        `json:"method"`
	ReferenceID string        `json:"reference_id,omitempty"`
	Status      Status        `json:"status"`
	ApprovedBy  string        `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
}

// Withdrawal is a pending or approved debit request. The fee percentage
// is fixed at request time; the gross amount is debited and the net
// amount settled on approval.
type Withdrawal struct {
	types.Entity
	ID             string        `json:"id"`
	AccountUID     string        `json:"account_uid"`
	AccountID      string        `json:"account_id"`
	AccountName    string        `json:"account_name"`
	Amount         types.Credits `json:"amount"`
	FeePercent     int64         `json:"fee_percent"`
	Method         string        `json:"method"`
	AccountDetails string        `json:"account_details,omitempty"`
	Status         Status        `json:"status"`
	ApprovedBy     string        `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time    `json:"approved_at,omitempty"`
	SettlementRef  string        `json:"settlement_ref,omitempty"`
}

// FeeAmount returns the fee charged on the withdrawal.
func (w *Withdrawal) FeeAmount() types.Credits {
	return w.Amount.Percent(w.FeePercent)
}

// NetAmount returns the amount settled to the account holder after the
// fee is deducted.
func (w *Withdrawal) NetAmount() types.Credits {
	return w.Amount.Subtract(w.FeeAmount())
}

// ListOpts filters request listings. Requests are returned newest first.
type ListOpts struct {
	AccountUID string
	Status     Status
	Limit      int
	Offset     int
}
