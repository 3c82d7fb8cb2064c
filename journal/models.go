// Package journal defines the append-only transaction log.
package journal

import (
	"github.com/xraph/walletledger/types"
)

// Category is the typed class of a journal entry.
type Category string

const (
	CategoryRegistrationBonus  Category = "Registration Bonus"
	CategoryReferralCommission Category = "Referral Commission"
	CategoryDeposit            Category = "Deposit"
	CategoryWithdrawal         Category = "Withdrawal"
	CategoryPackageActivation  Category = "Package Activation"
	CategoryTaskIncome         Category = "Task Income"
)

// StatusSuccess is the outcome recorded on every committed entry.
// Entries are only written as part of a committed operation, so no
// other outcome exists.
const StatusSuccess = "Success"

// Entry is one immutable record of a balance-affecting event. Entries
// are never mutated or deleted once written, and BalanceAfter equals
// the owning account's balance immediately after the entry's effect.
type Entry struct {
	types.Entity
	ID           string        `json:"id"`
	AccountUID   string        `json:"account_uid"`
	AccountID    string        `json:"account_id"`
	AccountName  string        `json:"account_name"`
	Category     Category      `json:"category"`
	Amount       types.Credits `json:"amount"`
	Status       string        `json:"status"`
	BalanceAfter types.Credits `json:"balance_after"`
	Description  string        `json:"description"`

	// Category-specific fields.
	Fee            types.Credits `json:"fee,omitempty"`
	NetAmount      types.Credits `json:"net_amount,omitempty"`
	Method         string        `json:"method,omitempty"`
	AccountDetails string        `json:"account_details,omitempty"`
	DepositID      string        `json:"deposit_id,omitempty"`
	WithdrawalID   string        `json:"withdrawal_id,omitempty"`
	ReferenceID    string        `json:"reference_id,omitempty"`
	SettlementRef  string        `json:"settlement_ref,omitempty"`
	Package        string        `json:"package,omitempty"`
	ReferredUser   string        `json:"referred_user,omitempty"`
}

// ListOpts filters journal listings. Entries are always returned newest
// first.
type ListOpts struct {
	AccountUID string
	Category   Category
	Limit      int
	Offset     int
}
