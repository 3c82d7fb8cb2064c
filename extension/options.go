package extension

import (
	"time"

	walletledger "github.com/xraph/walletledger"
	"github.com/xraph/walletledger/identity"
	"github.com/xraph/walletledger/plugin"
	"github.com/xraph/walletledger/store"
)

// Option configures the wallet ledger Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithIdentityProvider sets the identity provider for the ledger engine.
func WithIdentityProvider(p identity.Provider) Option {
	return func(e *Extension) {
		e.identity = p
	}
}

// WithLedgerOption passes a walletledger.Option through to the underlying engine.
func WithLedgerOption(opt walletledger.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, walletledger.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithSigningKey sets the HMAC key for the default local identity provider.
func WithSigningKey(key string) Option {
	return func(e *Extension) { e.config.SigningKey = key }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithRegistrationBonus sets the welcome credit for new accounts.
func WithRegistrationBonus(bonus int64) Option {
	return func(e *Extension) { e.config.RegistrationBonus = bonus }
}

// WithReferralCommission sets the credit paid per referred signup.
func WithReferralCommission(commission int64) Option {
	return func(e *Extension) { e.config.ReferralCommission = commission }
}

// WithDefaultSponsor sets the sponsor recorded when a signup names none.
func WithDefaultSponsor(sponsorID string) Option {
	return func(e *Extension) { e.config.DefaultSponsor = sponsorID }
}

// WithExpirySweepInterval sets how often lapsed activations are retired.
func WithExpirySweepInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.ExpirySweepInterval = d }
}

// WithExpirySweepBatch sets the maximum activations retired per sweep.
func WithExpirySweepBatch(n int) Option {
	return func(e *Extension) { e.config.ExpirySweepBatch = n }
}
