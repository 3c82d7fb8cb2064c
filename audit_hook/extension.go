// Package audithook bridges Ledger lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not bind to
// any concrete audit store. Callers inject a RecorderFunc adapter that
// bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/plugin"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/task"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin               = (*Extension)(nil)
	_ plugin.OnAccountRegistered  = (*Extension)(nil)
	_ plugin.OnReferralPaid       = (*Extension)(nil)
	_ plugin.OnDepositApproved    = (*Extension)(nil)
	_ plugin.OnWithdrawalApproved = (*Extension)(nil)
	_ plugin.OnPackageActivated   = (*Extension)(nil)
	_ plugin.OnActivationExpired  = (*Extension)(nil)
	_ plugin.OnTaskCompleted      = (*Extension)(nil)
	_ plugin.OnKYCSubmitted       = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountRegistered implements plugin.OnAccountRegistered.
func (e *Extension) OnAccountRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionAccountRegistered, SeverityInfo, OutcomeSuccess,
		ResourceAccount, "", CategoryOnboarding, nil,
		"event", "account_registered",
	)
}

// OnReferralPaid implements plugin.OnReferralPaid.
func (e *Extension) OnReferralPaid(ctx context.Context, sponsorID, referredID string, amount int64) error {
	return e.record(ctx, ActionReferralPaid, SeverityInfo, OutcomeSuccess,
		ResourceReferral, sponsorID, CategoryIncome, nil,
		"sponsor_id", sponsorID,
		"referred_id", referredID,
		"amount", amount,
	)
}

// ──────────────────────────────────────────────────
// Request lifecycle hooks
// ──────────────────────────────────────────────────

// OnDepositApproved implements plugin.OnDepositApproved.
func (e *Extension) OnDepositApproved(ctx context.Context, dep interface{}) error {
	var id string
	var amount int64
	if d, ok := dep.(*request.Deposit); ok {
		id = d.ID
		amount = d.Amount.Int64()
	}
	return e.record(ctx, ActionDepositApproved, SeverityInfo, OutcomeSuccess,
		ResourceDeposit, id, CategoryWallet, nil,
		"deposit_id", id,
		"amount", amount,
	)
}

// OnWithdrawalApproved implements plugin.OnWithdrawalApproved.
func (e *Extension) OnWithdrawalApproved(ctx context.Context, wd interface{}) error {
	var id string
	var amount int64
	if w, ok := wd.(*request.Withdrawal); ok {
		id = w.ID
		amount = w.Amount.Int64()
	}
	return e.record(ctx, ActionWithdrawalApproved, SeverityWarning, OutcomeSuccess,
		ResourceWithdrawal, id, CategoryWallet, nil,
		"withdrawal_id", id,
		"amount", amount,
	)
}

// ──────────────────────────────────────────────────
// Activation and task hooks
// ──────────────────────────────────────────────────

// OnPackageActivated implements plugin.OnPackageActivated.
func (e *Extension) OnPackageActivated(ctx context.Context, rec interface{}) error {
	var id, pkg string
	if r, ok := rec.(*activation.Record); ok {
		id = r.ID
		pkg = r.Package
	}
	return e.record(ctx, ActionPackageActivated, SeverityInfo, OutcomeSuccess,
		ResourceActivation, id, CategoryWallet, nil,
		"activation_id", id,
		"package", pkg,
	)
}

// OnActivationExpired implements plugin.OnActivationExpired.
func (e *Extension) OnActivationExpired(ctx context.Context, rec interface{}) error {
	var id string
	if r, ok := rec.(*activation.Record); ok {
		id = r.ID
	}
	return e.record(ctx, ActionActivationExpired, SeverityInfo, OutcomeSuccess,
		ResourceActivation, id, CategoryWallet, nil,
		"activation_id", id,
	)
}

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (e *Extension) OnTaskCompleted(ctx context.Context, rec interface{}) error {
	var id string
	var reward int64
	if r, ok := rec.(*task.Record); ok {
		id = r.ID
		reward = r.Reward.Int64()
	}
	return e.record(ctx, ActionTaskCompleted, SeverityInfo, OutcomeSuccess,
		ResourceTask, id, CategoryIncome, nil,
		"task_id", id,
		"reward", reward,
	)
}

// ──────────────────────────────────────────────────
// KYC hooks
// ──────────────────────────────────────────────────

// OnKYCSubmitted implements plugin.OnKYCSubmitted.
func (e *Extension) OnKYCSubmitted(ctx context.Context, app interface{}) error {
	var id string
	if a, ok := app.(*kyc.Application); ok {
		id = a.ID
	}
	return e.record(ctx, ActionKYCSubmitted, SeverityInfo, OutcomeSuccess,
		ResourceKYC, id, CategoryCompliance, nil,
		"application_id", id,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
