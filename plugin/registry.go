package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient
// dispatch. It uses type-cached discovery for O(1) dispatch
// performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                []OnInit
	onShutdown            []OnShutdown
	onAccountRegistered   []OnAccountRegistered
	onReferralPaid        []OnReferralPaid
	onDepositApproved     []OnDepositApproved
	onWithdrawalApproved  []OnWithdrawalApproved
	onPackageActivated    []OnPackageActivated
	onActivationExpired   []OnActivationExpired
	onTaskCompleted       []OnTaskCompleted
	onKYCSubmitted        []OnKYCSubmitted
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnAccountRegistered); ok {
		r.onAccountRegistered = append(r.onAccountRegistered, v)
	}
	if v, ok := p.(OnReferralPaid); ok {
		r.onReferralPaid = append(r.onReferralPaid, v)
	}
	if v, ok := p.(OnDepositApproved); ok {
		r.onDepositApproved = append(r.onDepositApproved, v)
	}
	if v, ok := p.(OnWithdrawalApproved); ok {
		r.onWithdrawalApproved = append(r.onWithdrawalApproved, v)
	}
	if v, ok := p.(OnPackageActivated); ok {
		r.onPackageActivated = append(r.onPackageActivated, v)
	}
	if v, ok := p.(OnActivationExpired); ok {
		r.onActivationExpired = append(r.onActivationExpired, v)
	}
	if v, ok := p.(OnTaskCompleted); ok {
		r.onTaskCompleted = append(r.onTaskCompleted, v)
	}
	if v, ok := p.(OnKYCSubmitted); ok {
		r.onKYCSubmitted = append(r.onKYCSubmitted, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnAccountRegistered)(nil)).Elem(), "OnAccountRegistered")
	checkInterface(reflect.TypeOf((*OnReferralPaid)(nil)).Elem(), "OnReferralPaid")
	checkInterface(reflect.TypeOf((*OnDepositApproved)(nil)).Elem(), "OnDepositApproved")
	checkInterface(reflect.TypeOf((*OnWithdrawalApproved)(nil)).Elem(), "OnWithdrawalApproved")
	checkInterface(reflect.TypeOf((*OnPackageActivated)(nil)).Elem(), "OnPackageActivated")
	checkInterface(reflect.TypeOf((*OnActivationExpired)(nil)).Elem(), "OnActivationExpired")
	checkInterface(reflect.TypeOf((*OnTaskCompleted)(nil)).Elem(), "OnTaskCompleted")
	checkInterface(reflect.TypeOf((*OnKYCSubmitted)(nil)).Elem(), "OnKYCSubmitted")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAccountRegistered emits an account registered event.
func (r *Registry) EmitAccountRegistered(ctx context.Context, acct interface{}) {
	r.mu.RLock()
	plugins := r.onAccountRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAccountRegistered(ctx, acct)
		}); err != nil {
			r.logger.Warn("plugin OnAccountRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReferralPaid emits a referral paid event.
func (r *Registry) EmitReferralPaid(ctx context.Context, sponsorID, referredID string, amount int64) {
	r.mu.RLock()
	plugins := r.onReferralPaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReferralPaid(ctx, sponsorID, referredID, amount)
		}); err != nil {
			r.logger.Warn("plugin OnReferralPaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDepositApproved emits a deposit approved event.
func (r *Registry) EmitDepositApproved(ctx context.Context, dep interface{}) {
	r.mu.RLock()
	plugins := r.onDepositApproved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDepositApproved(ctx, dep)
		}); err != nil {
			r.logger.Warn("plugin OnDepositApproved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitWithdrawalApproved emits a withdrawal approved event.
func (r *Registry) EmitWithdrawalApproved(ctx context.Context, wd interface{}) {
	r.mu.RLock()
	plugins := r.onWithdrawalApproved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnWithdrawalApproved(ctx, wd)
		}); err != nil {
			r.logger.Warn("plugin OnWithdrawalApproved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPackageActivated emits a package activated event.
func (r *Registry) EmitPackageActivated(ctx context.Context, rec interface{}) {
	r.mu.RLock()
	plugins := r.onPackageActivated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPackageActivated(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnPackageActivated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitActivationExpired emits an activation expired event.
func (r *Registry) EmitActivationExpired(ctx context.Context, rec interface{}) {
	r.mu.RLock()
	plugins := r.onActivationExpired
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnActivationExpired(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnActivationExpired failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTaskCompleted emits a task completed event.
func (r *Registry) EmitTaskCompleted(ctx context.Context, rec interface{}) {
	r.mu.RLock()
	plugins := r.onTaskCompleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTaskCompleted(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnTaskCompleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitKYCSubmitted emits a KYC submitted event.
func (r *Registry) EmitKYCSubmitted(ctx context.Context, app interface{}) {
	r.mu.RLock()
	plugins := r.onKYCSubmitted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnKYCSubmitted(ctx, app)
		}); err != nil {
			r.logger.Warn("plugin OnKYCSubmitted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
