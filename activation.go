package walletledger

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/types"
)

// ActivatePackageInput carries a package purchase.
type ActivatePackageInput struct {
	Package      string
	Amount       types.Credits
	DailyIncome  types.Credits
	ValidityDays int
}

// ActivatePackage moves the purchase amount from spendable balance into
// locked fund and commits the activation record with its journal entry.
func (l *Ledger) ActivatePackage(ctx context.Context, accountUID string, in ActivatePackageInput) (*activation.Record, error) {
	if in.Package == "" {
		return nil, ValidationError{Field: "package", Message: "required"}
	}
	if !in.Amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}
	if in.ValidityDays <= 0 {
		return nil, ValidationError{Field: "validity_days", Message: "must be positive"}
	}

	unlock := l.locks.Lock("acct:" + accountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		acct, err := l.store.GetAccount(ctx, accountUID)
		if err != nil {
			return nil, err
		}
		if acct.Balance.LessThan(in.Amount) {
			return nil, ErrInsufficientFunds
		}

		version := acct.Version
		acct.Balance = acct.Balance.Subtract(in.Amount)
		acct.Fund = acct.Fund.Add(in.Amount)
		acct.Package = in.Package
		acct.Touch()

		rec := &activation.Record{
			Entity:      types.NewEntity(),
			ID:          id.New(id.PrefixActivation),
			AccountUID:  acct.UID,
			AccountID:   acct.PublicID,
			AccountName: acct.Name,
			Package:     in.Package,
			Amount:      in.Amount,
			DailyIncome: in.DailyIncome,
			Status:      activation.StatusActive,
			ValidTill:   l.now().AddDate(0, 0, in.ValidityDays),
		}

		entry := l.newEntry(id.PrefixTransaction, acct, journal.CategoryPackageActivation, in.Amount.Negate(), acct.Balance)
		entry.Description = fmt.Sprintf("Activated %s package", in.Package)
		entry.Package = in.Package

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
			store.PutActivation{Record: rec},
			store.AppendEntry{Entry: entry},
		)
		if err == nil {
			l.plugins.EmitPackageActivated(ctx, rec)
			l.logger.Info("package activated",
				"account", acct.PublicID,
				"package", in.Package,
				"amount", in.Amount.Int64(),
				"valid_till", rec.ValidTill,
			)
			return rec, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}

// HasActivePackage reports whether the account holds at least one
// unexpired activation.
func (l *Ledger) HasActivePackage(ctx context.Context, accountUID string) (bool, error) {
	records, err := l.store.ListActivations(ctx, accountUID, activation.StatusActive)
	if err != nil {
		return false, err
	}
	now := l.now()
	for _, r := range records {
		if !r.ExpiredAt(now) {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────
// Expiry sweep
// ──────────────────────────────────────────────────

// expiryWorker periodically retires activations whose validity window
// has passed, releasing the locked fund back to zero.
func (l *Ledger) expiryWorker(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.expirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.sweepExpired(ctx)
		}
	}
}

// sweepExpired processes one batch of expired activations. Each
// retirement is its own commit so one bad record cannot stall the
// sweep.
func (l *Ledger) sweepExpired(ctx context.Context) {
	expired, err := l.store.ListExpiredActivations(ctx, l.now(), l.expirySweepBatch)
	if err != nil {
		l.logger.Error("expiry sweep failed", "error", err)
		return
	}

	for _, rec := range expired {
		if err := l.expireActivation(ctx, rec.ID); err != nil {
			l.logger.Warn("activation expiry failed",
				"activation", rec.ID,
				"account", rec.AccountID,
				"error", err,
			)
		}
	}

	if len(expired) > 0 {
		l.logger.Info("expiry sweep completed", "expired", len(expired))
	}
}

func (l *Ledger) expireActivation(ctx context.Context, activationID string) error {
	rec, err := l.store.GetActivation(ctx, activationID)
	if err != nil {
		return err
	}

	unlock := l.locks.Lock("acct:" + rec.AccountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		rec, err = l.store.GetActivation(ctx, activationID)
		if err != nil {
			return err
		}
		if rec.Status != activation.StatusActive {
			return nil
		}

		acct, err := l.store.GetAccount(ctx, rec.AccountUID)
		if err != nil {
			return err
		}

		version := acct.Version
		acct.Fund = acct.Fund.Subtract(rec.Amount)
		if acct.Fund.IsNegative() {
			acct.Fund = types.Credits(0)
		}
		if acct.Package == rec.Package {
			acct.Package = account.PackageNone
		}
		acct.Touch()

		rec.Status = activation.StatusExpired
		rec.Touch()

		err = l.store.Apply(ctx,
			store.UpdateActivation{Record: rec},
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
		)
		if err == nil {
			l.plugins.EmitActivationExpired(ctx, rec)
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
	}

	return ErrVersionConflict
}
