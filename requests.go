package walletledger

import (
	"context"
	"fmt"

	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/types"
)

// ──────────────────────────────────────────────────
// Deposits
// ──────────────────────────────────────────────────

// DepositInput carries a deposit request.
type DepositInput struct {
	Amount      types.Credits
	Method      string
	ReferenceID string
}

// RequestDeposit files a pending deposit. No balance changes until an
// admin approves it.
func (l *Ledger) RequestDeposit(ctx context.Context, accountUID string, in DepositInput) (*request.Deposit, error) {
	if !in.Amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}

	acct, err := l.store.GetAccount(ctx, accountUID)
	if err != nil {
		return nil, err
	}

	dep := &request.Deposit{
		Entity:      types.NewEntity(),
		ID:          id.New(id.PrefixDeposit),
		AccountUID:  acct.UID,
		AccountID:   acct.PublicID,
		AccountName: acct.Name,
		Amount:      in.Amount,
		Method:      in.Method,
		ReferenceID: in.ReferenceID,
		Status:      request.StatusPending,
	}

	if err := l.store.Apply(ctx, store.PutDeposit{Deposit: dep}); err != nil {
		return nil, err
	}

	l.logger.Info("deposit requested",
		"deposit", dep.ID,
		"account", acct.PublicID,
		"amount", in.Amount.Int64(),
	)
	return dep, nil
}

// ApproveDeposit credits the account and marks the request approved in
// one commit. Approving a non-pending request fails without touching
// the balance.
func (l *Ledger) ApproveDeposit(ctx context.Context, depositID, approvedBy string) (*request.Deposit, error) {
	dep, err := l.store.GetDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}

	unlock := l.locks.Lock("acct:" + dep.AccountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		dep, err = l.store.GetDeposit(ctx, depositID)
		if err != nil {
			return nil, err
		}
		if dep.Status != request.StatusPending {
			return nil, ErrRequestNotPending
		}

		acct, err := l.store.GetAccount(ctx, dep.AccountUID)
		if err != nil {
			return nil, err
		}

		version := acct.Version
		acct.Balance = acct.Balance.Add(dep.Amount)
		acct.Touch()

		now := l.now()
		dep.Status = request.StatusApproved
		dep.ApprovedBy = approvedBy
		dep.ApprovedAt = &now
		dep.Touch()

		entry := l.newEntry(id.PrefixTransaction, acct, journal.CategoryDeposit, dep.Amount, acct.Balance)
		entry.Description = fmt.Sprintf("Deposit via %s", dep.Method)
		entry.Method = dep.Method
		entry.DepositID = dep.ID
		entry.ReferenceID = dep.ReferenceID

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
			store.UpdateDeposit{Deposit: dep},
			store.AppendEntry{Entry: entry},
		)
		if err == nil {
			l.plugins.EmitDepositApproved(ctx, dep)
			l.logger.Info("deposit approved",
				"deposit", dep.ID,
				"account", acct.PublicID,
				"amount", dep.Amount.Int64(),
				"approved_by", approvedBy,
			)
			return dep, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}

// ──────────────────────────────────────────────────
// Withdrawals
// ──────────────────────────────────────────────────

// WithdrawalInput carries a withdrawal request. FeePercent is locked in
// at request time.
type WithdrawalInput struct {
	Amount         types.Credits
	FeePercent     int64
	Method         string
	AccountDetails string
}

// RequestWithdrawal files a pending withdrawal. The balance check here
// is advisory; the binding check happens on approval, which is when the
// debit lands.
func (l *Ledger) RequestWithdrawal(ctx context.Context, accountUID string, in WithdrawalInput) (*request.Withdrawal, error) {
	if !in.Amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}
	if in.FeePercent < 0 || in.FeePercent > 100 {
		return nil, ValidationError{Field: "fee_percent", Message: "must be between 0 and 100"}
	}

	acct, err := l.store.GetAccount(ctx, accountUID)
	if err != nil {
		return nil, err
	}
	if acct.Balance.LessThan(in.Amount) {
		return nil, ErrInsufficientFunds
	}

	wd := &request.Withdrawal{
		Entity:         types.NewEntity(),
		ID:             id.New(id.PrefixWithdrawal),
		AccountUID:     acct.UID,
		AccountID:      acct.PublicID,
		AccountName:    acct.Name,
		Amount:         in.Amount,
		FeePercent:     in.FeePercent,
		Method:         in.Method,
		AccountDetails: in.AccountDetails,
		Status:         request.StatusPending,
	}

	if err := l.store.Apply(ctx, store.PutWithdrawal{Withdrawal: wd}); err != nil {
		return nil, err
	}

	l.logger.Info("withdrawal requested",
		"withdrawal", wd.ID,
		"account", acct.PublicID,
		"amount", in.Amount.Int64(),
		"fee", wd.FeeAmount().Int64(),
	)
	return wd, nil
}

// ApproveWithdrawal debits the gross amount, records the fee and net
// settlement, and marks the request approved in one commit. The debit
// happens exactly once, here.
func (l *Ledger) ApproveWithdrawal(ctx context.Context, withdrawalID, approvedBy, settlementRef string) (*request.Withdrawal, error) {
	wd, err := l.store.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	unlock := l.locks.Lock("acct:" + wd.AccountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		wd, err = l.store.GetWithdrawal(ctx, withdrawalID)
		if err != nil {
			return nil, err
		}
		if wd.Status != request.StatusPending {
			return nil, ErrRequestNotPending
		}

		acct, err := l.store.GetAccount(ctx, wd.AccountUID)
		if err != nil {
			return nil, err
		}
		if acct.Balance.LessThan(wd.Amount) {
			return nil, ErrInsufficientFunds
		}

		version := acct.Version
		acct.Balance = acct.Balance.Subtract(wd.Amount)
		acct.Touch()

		now := l.now()
		wd.Status = request.StatusApproved
		wd.ApprovedBy = approvedBy
		wd.ApprovedAt = &now
		wd.SettlementRef = settlementRef
		wd.Touch()

		entry := l.newEntry(id.PrefixTransaction, acct, journal.CategoryWithdrawal, wd.Amount.Negate(), acct.Balance)
		entry.Description = fmt.Sprintf("Withdrawal via %s", wd.Method)
		entry.Fee = wd.FeeAmount()
		entry.NetAmount = wd.NetAmount()
		entry.Method = wd.Method
		entry.AccountDetails = wd.AccountDetails
		entry.WithdrawalID = wd.ID
		entry.SettlementRef = settlementRef

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
			store.UpdateWithdrawal{Withdrawal: wd},
			store.AppendEntry{Entry: entry},
		)
		if err == nil {
			l.plugins.EmitWithdrawalApproved(ctx, wd)
			l.logger.Info("withdrawal approved",
				"withdrawal", wd.ID,
				"account", acct.PublicID,
				"amount", wd.Amount.Int64(),
				"net", wd.NetAmount().Int64(),
				"approved_by", approvedBy,
			)
			return wd, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}
