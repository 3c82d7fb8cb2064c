// Package plugin provides an extensible plugin system for the wallet
// ledger. Plugins can hook into lifecycle events to extend
// functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountRegistered is called after a new account commits.
type OnAccountRegistered interface {
	Plugin
	OnAccountRegistered(ctx context.Context, acct interface{}) error
}

// OnReferralPaid is called after a referral commission commits.
type OnReferralPaid interface {
	Plugin
	OnReferralPaid(ctx context.Context, sponsorID, referredID string, amount int64) error
}

// ──────────────────────────────────────────────────
// Request lifecycle hooks
// ──────────────────────────────────────────────────

// OnDepositApproved is called after a deposit approval commits.
type OnDepositApproved interface {
	Plugin
	OnDepositApproved(ctx context.Context, dep interface{}) error
}

// OnWithdrawalApproved is called after a withdrawal approval commits.
type OnWithdrawalApproved interface {
	Plugin
	OnWithdrawalApproved(ctx context.Context, wd interface{}) error
}

// ──────────────────────────────────────────────────
// Activation and task hooks
// ──────────────────────────────────────────────────

// OnPackageActivated is called after a package activation commits.
type OnPackageActivated interface {
	Plugin
	OnPackageActivated(ctx context.Context, rec interface{}) error
}

// OnActivationExpired is called when the expiry sweeper retires an
// activation.
type OnActivationExpired interface {
	Plugin
	OnActivationExpired(ctx context.Context, rec interface{}) error
}

// OnTaskCompleted is called after a task completion commits.
type OnTaskCompleted interface {
	Plugin
	OnTaskCompleted(ctx context.Context, rec interface{}) error
}

// ──────────────────────────────────────────────────
// KYC hooks
// ──────────────────────────────────────────────────

// OnKYCSubmitted is called after a KYC application commits.
type OnKYCSubmitted interface {
	Plugin
	OnKYCSubmitted(ctx context.Context, app interface{}) error
}
