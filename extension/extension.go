// Package extension provides the Forge extension adapter for the wallet
// ledger.
//
// It implements the forge.Extension interface to integrate the engine
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.walletledger" or
// "walletledger" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	walletledger "github.com/xraph/walletledger"
	"github.com/xraph/walletledger/identity"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/store/memory"
	"github.com/xraph/walletledger/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "walletledger"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "MLM wallet and income ledger engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the wallet ledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *walletledger.Ledger
	store      store.Store
	identity   identity.Provider
	ledgerOpts []walletledger.Option
}

// New creates a new wallet ledger Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *walletledger.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Use the local JWT provider if no identity provider was supplied.
	if e.identity == nil {
		e.identity = identity.NewLocal([]byte(e.config.SigningKey))
	}

	opts := e.buildLedgerOpts()

	eng := walletledger.New(e.store, e.identity, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*walletledger.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("walletledger: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("walletledger: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs walletledger.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []walletledger.Option {
	opts := make([]walletledger.Option, 0, len(e.ledgerOpts)+4)

	if e.config.RegistrationBonus > 0 {
		opts = append(opts, walletledger.WithRegistrationBonus(types.Credits(e.config.RegistrationBonus)))
	}
	if e.config.ReferralCommission > 0 {
		opts = append(opts, walletledger.WithReferralCommission(types.Credits(e.config.ReferralCommission)))
	}
	if e.config.DefaultSponsor != "" {
		opts = append(opts, walletledger.WithDefaultSponsor(e.config.DefaultSponsor))
	}
	if e.config.ExpirySweepInterval > 0 && e.config.ExpirySweepBatch > 0 {
		opts = append(opts, walletledger.WithExpirySweep(e.config.ExpirySweepInterval, e.config.ExpirySweepBatch))
	}

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("walletledger: configuration is required but not found in config files; " +
				"ensure 'extensions.walletledger' or 'walletledger' key exists in your config")
		}

		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("walletledger: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("registration_bonus", e.config.RegistrationBonus),
		forge.F("referral_commission", e.config.ReferralCommission),
		forge.F("default_sponsor", e.config.DefaultSponsor),
		forge.F("expiry_sweep_interval", e.config.ExpirySweepInterval),
		forge.F("expiry_sweep_batch", e.config.ExpirySweepBatch),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.walletledger" first (namespaced pattern).
	if cm.IsSet("extensions.walletledger") {
		if err := cm.Bind("extensions.walletledger", &cfg); err == nil {
			e.Logger().Debug("walletledger: loaded config from file",
				forge.F("key", "extensions.walletledger"),
			)
			return cfg, true
		}
		e.Logger().Warn("walletledger: failed to bind extensions.walletledger config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "walletledger" key.
	if cm.IsSet("walletledger") {
		if err := cm.Bind("walletledger", &cfg); err == nil {
			e.Logger().Debug("walletledger: loaded config from file",
				forge.F("key", "walletledger"),
			)
			return cfg, true
		}
		e.Logger().Warn("walletledger: failed to bind walletledger config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.RegistrationBonus == 0 {
		cfg.RegistrationBonus = defaults.RegistrationBonus
	}
	if cfg.ReferralCommission == 0 {
		cfg.ReferralCommission = defaults.ReferralCommission
	}
	if cfg.DefaultSponsor == "" {
		cfg.DefaultSponsor = defaults.DefaultSponsor
	}
	if cfg.ExpirySweepInterval == 0 {
		cfg.ExpirySweepInterval = defaults.ExpirySweepInterval
	}
	if cfg.ExpirySweepBatch == 0 {
		cfg.ExpirySweepBatch = defaults.ExpirySweepBatch
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	if yamlConfig.SigningKey == "" && programmaticConfig.SigningKey != "" {
		yamlConfig.SigningKey = programmaticConfig.SigningKey
	}
	if yamlConfig.DefaultSponsor == "" && programmaticConfig.DefaultSponsor != "" {
		yamlConfig.DefaultSponsor = programmaticConfig.DefaultSponsor
	}

	if yamlConfig.RegistrationBonus == 0 && programmaticConfig.RegistrationBonus != 0 {
		yamlConfig.RegistrationBonus = programmaticConfig.RegistrationBonus
	}
	if yamlConfig.ReferralCommission == 0 && programmaticConfig.ReferralCommission != 0 {
		yamlConfig.ReferralCommission = programmaticConfig.ReferralCommission
	}
	if yamlConfig.ExpirySweepInterval == 0 && programmaticConfig.ExpirySweepInterval != 0 {
		yamlConfig.ExpirySweepInterval = programmaticConfig.ExpirySweepInterval
	}
	if yamlConfig.ExpirySweepBatch == 0 && programmaticConfig.ExpirySweepBatch != 0 {
		yamlConfig.ExpirySweepBatch = programmaticConfig.ExpirySweepBatch
	}

	return e.mergeWithDefaults(yamlConfig)
}
