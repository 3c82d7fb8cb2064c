// Package id generates the prefixed record identifiers used by the
// wallet ledger wire format.
//
// Record identifiers are a short uppercase prefix that identifies the
// record type, followed by a 10-digit suffix derived from the current
// epoch time in milliseconds (e.g. "TXN1712345678"). The suffix is kept
// strictly increasing within a process so that identifiers minted in the
// same millisecond stay unique. This format is the stored-data contract
// and must not change.
//
// Public account identifiers are handled separately: the sequential form
// "USER0001" is produced from a shared counter, and a timestamp-derived
// fallback form ("USER" + 8 digits) is used when the counter is
// unavailable.
package id

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Prefix identifies the record type encoded in an identifier.
type Prefix string

// Prefix constants for all persisted record types.
const (
	PrefixTransaction    Prefix = "TXN"    // Journal entry
	PrefixDeposit        Prefix = "DEP"    // Deposit request
	PrefixWithdrawal     Prefix = "WDR"    // Withdrawal request
	PrefixActivation     Prefix = "ACT"    // Package activation record
	PrefixTask           Prefix = "TASK"   // Completed task batch
	PrefixReferral       Prefix = "REF"    // Referral commission journal entry
	PrefixReferralIncome Prefix = "REFINC" // Referral income report record
	PrefixKYC            Prefix = "KYC"    // KYC application
)

const suffixDigits = 10

const suffixMod = 1e10

var (
	mu         sync.Mutex
	lastSuffix int64
)

// New generates a new record identifier with the given prefix.
// The 10-digit suffix is derived from the epoch millisecond clock and is
// strictly increasing across calls, so identifiers minted in the same
// millisecond remain distinct.
func New(prefix Prefix) string {
	mu.Lock()
	defer mu.Unlock()

	suffix := time.Now().UnixMilli() % suffixMod
	if suffix <= lastSuffix {
		suffix = (lastSuffix + 1) % suffixMod
	}
	lastSuffix = suffix

	return string(prefix) + fmt.Sprintf("%0*d", suffixDigits, suffix)
}

// Matches reports whether s carries the given prefix followed by the
// expected 10-digit suffix.
func Matches(s string, prefix Prefix) bool {
	if !strings.HasPrefix(s, string(prefix)) {
		return false
	}
	return isDigits(s[len(prefix):]) && len(s) == len(prefix)+suffixDigits
}

// ──────────────────────────────────────────────────
// Public account identifiers
// ──────────────────────────────────────────────────

const accountPrefix = "USER"

const fallbackDigits = 8

// FormatAccountSeq formats a counter value as a sequential public
// account identifier, zero-padded to 4 digits ("USER0001").
func FormatAccountSeq(seq int64) string {
	return accountPrefix + fmt.Sprintf("%04d", seq)
}

// FallbackAccountID derives a public account identifier from the clock.
// It is used when the shared account counter is unavailable: sequential
// uniqueness is deliberately sacrificed for availability. The fallback
// form ("USER" + last 8 digits of epoch milliseconds) is distinguishable
// from the sequential form via IsFallbackAccountID.
func FallbackAccountID(now time.Time) string {
	return accountPrefix + fmt.Sprintf("%0*d", fallbackDigits, now.UnixMilli()%1e8)
}

// IsFallbackAccountID reports whether s is a timestamp-derived fallback
// account identifier rather than a sequential one.
func IsFallbackAccountID(s string) bool {
	if !strings.HasPrefix(s, accountPrefix) {
		return false
	}
	rest := s[len(accountPrefix):]
	return len(rest) == fallbackDigits && isDigits(rest)
}

// IsAccountID reports whether s is a public account identifier in either
// the sequential or the fallback form.
func IsAccountID(s string) bool {
	if !strings.HasPrefix(s, accountPrefix) {
		return false
	}
	rest := s[len(accountPrefix):]
	return len(rest) >= 4 && isDigits(rest)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
