// Package account defines the balance-bearing account record.
package account

import (
	"time"

	"github.com/xraph/walletledger/types"
)

// Role identifies the account's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// PackageNone is the package recorded before any activation.
const PackageNone = "None"

// RankBeginner is the rank assigned at registration.
const RankBeginner = "Beginner"

// KYCState tracks the account's identity-verification progress.
type KYCState string

const (
	KYCPending     KYCState = "Pending"
	KYCUnderReview KYCState = "Under Review"
	KYCVerified    KYCState = "Verified"
	KYCRejected    KYCState = "Rejected"
)

// Account is the record representing one participant. UID is the stable
// internal identifier assigned by the identity provider; PublicID is the
// human-facing sequential code ("USER0001").
//
// Balance holds spendable credits and Fund holds capital locked into an
// active package. Neither may go negative, and every mutation to either
// is paired with a journal entry recording the delta and resulting
// balance.
type Account struct {
	types.Entity
	UID            string         `json:"uid"`
	PublicID       string         `json:"public_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Mobile         string         `json:"mobile,omitempty"`
	Role           Role           `json:"role"`
	Status         Status         `json:"status"`
	Balance        types.Credits  `json:"balance"`
	Fund           types.Credits  `json:"fund"`
	Package        string         `json:"package"`
	KYC            KYCState       `json:"kyc"`
	SponsorID      string         `json:"sponsor_id,omitempty"`
	Referrals      int            `json:"referrals"`
	TotalIncome    types.Credits  `json:"total_income"`
	TodayIncome    types.Credits  `json:"today_income"`
	ReferralIncome types.Credits  `json:"referral_income"`
	TotalTasks     int            `json:"total_tasks"`
	Rank           string         `json:"rank,omitempty"`
	LastLogin      *time.Time     `json:"last_login,omitempty"`

	// Version is the optimistic concurrency token. Stores reject
	// updates whose observed version is stale.
	Version int64 `json:"version"`
}

// ListOpts filters account listings.
type ListOpts struct {
	Role   Role
	Status Status
	Limit  int
	Offset int
}
