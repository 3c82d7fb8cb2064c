package extension

import "time"

// Config holds the wallet ledger extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.walletledger" or
// "walletledger" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// SigningKey is the HMAC key for session tokens when no identity
	// provider is supplied programmatically.
	SigningKey string `json:"signing_key" mapstructure:"signing_key" yaml:"signing_key"`

	// RegistrationBonus is the welcome credit for new accounts
	// (default: 50).
	RegistrationBonus int64 `json:"registration_bonus" mapstructure:"registration_bonus" yaml:"registration_bonus"`

	// ReferralCommission is the credit paid to a sponsor per referred
	// signup (default: 10).
	ReferralCommission int64 `json:"referral_commission" mapstructure:"referral_commission" yaml:"referral_commission"`

	// DefaultSponsor is the sponsor recorded when a signup names none
	// (default: "CAPITAL01").
	DefaultSponsor string `json:"default_sponsor" mapstructure:"default_sponsor" yaml:"default_sponsor"`

	// ExpirySweepInterval is how often the background worker retires
	// lapsed activations (default: 1h).
	ExpirySweepInterval time.Duration `json:"expiry_sweep_interval" mapstructure:"expiry_sweep_interval" yaml:"expiry_sweep_interval"`

	// ExpirySweepBatch is the maximum activations retired per sweep
	// (default: 100).
	ExpirySweepBatch int `json:"expiry_sweep_batch" mapstructure:"expiry_sweep_batch" yaml:"expiry_sweep_batch"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RegistrationBonus:   50,
		ReferralCommission:  10,
		DefaultSponsor:      "CAPITAL01",
		ExpirySweepInterval: time.Hour,
		ExpirySweepBatch:    100,
	}
}
