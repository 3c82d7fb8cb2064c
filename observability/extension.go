// Package observability provides a metrics extension for Ledger that
// records lifecycle event counts through an injected MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/walletledger/plugin"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/task"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin               = (*MetricsExtension)(nil)
	_ plugin.OnInit               = (*MetricsExtension)(nil)
	_ plugin.OnAccountRegistered  = (*MetricsExtension)(nil)
	_ plugin.OnReferralPaid       = (*MetricsExtension)(nil)
	_ plugin.OnDepositApproved    = (*MetricsExtension)(nil)
	_ plugin.OnWithdrawalApproved = (*MetricsExtension)(nil)
	_ plugin.OnPackageActivated   = (*MetricsExtension)(nil)
	_ plugin.OnActivationExpired  = (*MetricsExtension)(nil)
	_ plugin.OnTaskCompleted      = (*MetricsExtension)(nil)
	_ plugin.OnKYCSubmitted       = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Ledger plugin to automatically track wallet metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Account metrics
	AccountsRegistered Counter
	ReferralsPaid      Counter
	ReferralAmount     Histogram

	// Request metrics
	DepositsApproved    Counter
	DepositAmount       Histogram
	WithdrawalsApproved Counter
	WithdrawalAmount    Histogram

	// Activation metrics
	PackagesActivated  Counter
	ActivationsExpired Counter

	// Task metrics
	TasksCompleted Counter
	TaskReward     Histogram

	// KYC metrics
	KYCSubmitted Counter

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Account metrics
		AccountsRegistered: factory.Counter("walletledger.account.registered"),
		ReferralsPaid:      factory.Counter("walletledger.referral.paid"),
		ReferralAmount:     factory.Histogram("walletledger.referral.amount"),

		// Request metrics
		DepositsApproved:    factory.Counter("walletledger.deposit.approved"),
		DepositAmount:       factory.Histogram("walletledger.deposit.amount"),
		WithdrawalsApproved: factory.Counter("walletledger.withdrawal.approved"),
		WithdrawalAmount:    factory.Histogram("walletledger.withdrawal.amount"),

		// Activation metrics
		PackagesActivated:  factory.Counter("walletledger.activation.created"),
		ActivationsExpired: factory.Counter("walletledger.activation.expired"),

		// Task metrics
		TasksCompleted: factory.Counter("walletledger.task.completed"),
		TaskReward:     factory.Histogram("walletledger.task.reward"),

		// KYC metrics
		KYCSubmitted: factory.Counter("walletledger.kyc.submitted"),

		// Error metrics
		StoreErrors:  factory.Counter("walletledger.store.errors"),
		PluginErrors: factory.Counter("walletledger.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	return nil
}

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountRegistered implements plugin.OnAccountRegistered.
func (m *MetricsExtension) OnAccountRegistered(_ context.Context, _ interface{}) error {
	m.AccountsRegistered.Inc()
	return nil
}

// OnReferralPaid implements plugin.OnReferralPaid.
func (m *MetricsExtension) OnReferralPaid(_ context.Context, _, _ string, amount int64) error {
	m.ReferralsPaid.Inc()
	m.ReferralAmount.Observe(float64(amount))
	return nil
}

// ──────────────────────────────────────────────────
// Request lifecycle hooks
// ──────────────────────────────────────────────────

// OnDepositApproved implements plugin.OnDepositApproved.
func (m *MetricsExtension) OnDepositApproved(_ context.Context, dep interface{}) error {
	m.DepositsApproved.Inc()
	if d, ok := dep.(*request.Deposit); ok {
		m.DepositAmount.Observe(float64(d.Amount.Int64()))
	}
	return nil
}

// OnWithdrawalApproved implements plugin.OnWithdrawalApproved.
func (m *MetricsExtension) OnWithdrawalApproved(_ context.Context, wd interface{}) error {
	m.WithdrawalsApproved.Inc()
	if w, ok := wd.(*request.Withdrawal); ok {
		m.WithdrawalAmount.Observe(float64(w.Amount.Int64()))
	}
	return nil
}

// ──────────────────────────────────────────────────
// Activation and task hooks
// ──────────────────────────────────────────────────

// OnPackageActivated implements plugin.OnPackageActivated.
func (m *MetricsExtension) OnPackageActivated(_ context.Context, _ interface{}) error {
	m.PackagesActivated.Inc()
	return nil
}

// OnActivationExpired implements plugin.OnActivationExpired.
func (m *MetricsExtension) OnActivationExpired(_ context.Context, _ interface{}) error {
	m.ActivationsExpired.Inc()
	return nil
}

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (m *MetricsExtension) OnTaskCompleted(_ context.Context, rec interface{}) error {
	m.TasksCompleted.Inc()
	if r, ok := rec.(*task.Record); ok {
		m.TaskReward.Observe(float64(r.Reward.Int64()))
	}
	return nil
}

// ──────────────────────────────────────────────────
// KYC hooks
// ──────────────────────────────────────────────────

// OnKYCSubmitted implements plugin.OnKYCSubmitted.
func (m *MetricsExtension) OnKYCSubmitted(_ context.Context, _ interface{}) error {
	m.KYCSubmitted.Inc()
	return nil
}
