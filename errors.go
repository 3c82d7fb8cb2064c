package walletledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("walletledger: not found")
	ErrAlreadyExists = errors.New("walletledger: already exists")
	ErrInvalidInput  = errors.New("walletledger: invalid input")
	ErrUnauthorized  = errors.New("walletledger: unauthorized")

	// Account errors
	ErrAccountNotFound = errors.New("walletledger: account not found")
	ErrAccountBlocked  = errors.New("walletledger: account is blocked")
	ErrSponsorNotFound = errors.New("walletledger: sponsor not found")

	// Balance errors
	ErrInsufficientFunds = errors.New("walletledger: insufficient funds")

	// Journal errors
	ErrEntryNotFound = errors.New("walletledger: journal entry not found")

	// Request errors
	ErrDepositNotFound    = errors.New("walletledger: deposit request not found")
	ErrWithdrawalNotFound = errors.New("walletledger: withdrawal request not found")
	ErrRequestNotPending  = errors.New("walletledger: request is not pending")

	// Activation errors
	ErrActivationNotFound = errors.New("walletledger: activation not found")
	ErrNoActivePackage    = errors.New("walletledger: no active package")

	// KYC errors
	ErrKYCNotFound = errors.New("walletledger: kyc application not found")

	// Store errors
	ErrVersionConflict    = errors.New("walletledger: account version conflict")
	ErrCounterUnavailable = errors.New("walletledger: account counter unavailable")
	ErrStoreClosed        = errors.New("walletledger: store is closed")
	ErrTransactionFailed  = errors.New("walletledger: transaction failed")
	ErrMigrationFailed    = errors.New("walletledger: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("walletledger: validation failed for %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrSponsorNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrDepositNotFound) ||
		errors.Is(err, ErrWithdrawalNotFound) ||
		errors.Is(err, ErrActivationNotFound) ||
		errors.Is(err, ErrKYCNotFound)
}

// IsInvalidState returns true if the error indicates an operation was
// attempted against a record in the wrong state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrRequestNotPending) ||
		errors.Is(err, ErrAccountBlocked) ||
		errors.Is(err, ErrAlreadyExists)
}

// IsInsufficientFunds returns true if the error is a balance shortfall.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsPrecondition returns true if the error indicates a missing
// prerequisite rather than bad input.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoActivePackage) ||
		errors.Is(err, ErrSponsorNotFound)
}

// IsRetryable returns true if the error is temporary and the operation
// can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) ||
		errors.Is(err, ErrCounterUnavailable) ||
		errors.Is(err, ErrTransactionFailed)
}
