package walletledger

import (
	"context"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/task"
	"github.com/xraph/walletledger/types"
)

// ──────────────────────────────────────────────────
// Reads
// ──────────────────────────────────────────────────

// GetAccount retrieves an account by internal uid.
func (l *Ledger) GetAccount(ctx context.Context, uid string) (*account.Account, error) {
	return l.store.GetAccount(ctx, uid)
}

// GetAccountByPublicID retrieves an account by its USER#### identifier.
func (l *Ledger) GetAccountByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	return l.store.GetAccountByPublicID(ctx, publicID)
}

// GetAccountByEmail retrieves an account by its registered email.
func (l *Ledger) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	return l.store.GetAccountByEmail(ctx, email)
}

// ListAccounts lists accounts with optional role and status filters.
func (l *Ledger) ListAccounts(ctx context.Context, opts account.ListOpts) ([]*account.Account, error) {
	return l.store.ListAccounts(ctx, opts)
}

// GetEntry retrieves a journal entry by id.
func (l *Ledger) GetEntry(ctx context.Context, entryID string) (*journal.Entry, error) {
	return l.store.GetEntry(ctx, entryID)
}

// ListEntries lists journal entries, newest first.
func (l *Ledger) ListEntries(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	return l.store.ListEntries(ctx, opts)
}

// GetDeposit retrieves a deposit request by id.
func (l *Ledger) GetDeposit(ctx context.Context, depositID string) (*request.Deposit, error) {
	return l.store.GetDeposit(ctx, depositID)
}

// ListDeposits lists deposit requests, newest first.
func (l *Ledger) ListDeposits(ctx context.Context, opts request.ListOpts) ([]*request.Deposit, error) {
	return l.store.ListDeposits(ctx, opts)
}

// GetWithdrawal retrieves a withdrawal request by id.
func (l *Ledger) GetWithdrawal(ctx context.Context, withdrawalID string) (*request.Withdrawal, error) {
	return l.store.GetWithdrawal(ctx, withdrawalID)
}

// ListWithdrawals lists withdrawal requests, newest first.
func (l *Ledger) ListWithdrawals(ctx context.Context, opts request.ListOpts) ([]*request.Withdrawal, error) {
	return l.store.ListWithdrawals(ctx, opts)
}

// ListActivations lists an account's package activations.
func (l *Ledger) ListActivations(ctx context.Context, accountUID string, status activation.Status) ([]*activation.Record, error) {
	return l.store.ListActivations(ctx, accountUID, status)
}

// ListReferralIncomes lists the commission records credited to a
// sponsor.
func (l *Ledger) ListReferralIncomes(ctx context.Context, sponsorID string) ([]*referral.IncomeRecord, error) {
	return l.store.ListReferralIncomes(ctx, sponsorID)
}

// ListKYCApplications lists verification applications, optionally
// filtered by status.
func (l *Ledger) ListKYCApplications(ctx context.Context, status kyc.Status) ([]*kyc.Application, error) {
	return l.store.ListKYCApplications(ctx, status)
}

// ListTasks lists an account's task records for one calendar day. An
// empty date means all days.
func (l *Ledger) ListTasks(ctx context.Context, accountUID, date string) ([]*task.Record, error) {
	return l.store.ListTasks(ctx, accountUID, date)
}

// ──────────────────────────────────────────────────
// Aggregates
// ──────────────────────────────────────────────────

// Stats is a point-in-time summary across all accounts and pending
// requests.
type Stats struct {
	Accounts           int           `json:"accounts"`
	TotalBalance       types.Credits `json:"total_balance"`
	TotalFund          types.Credits `json:"total_fund"`
	TotalIncome        types.Credits `json:"total_income"`
	TotalReferrals     int           `json:"total_referrals"`
	PendingDeposits    int           `json:"pending_deposits"`
	PendingWithdrawals int           `json:"pending_withdrawals"`
}

// Stats scans all accounts and sums their counters. Intended for admin
// dashboards, not hot paths.
func (l *Ledger) Stats(ctx context.Context) (*Stats, error) {
	accounts, err := l.store.ListAccounts(ctx, account.ListOpts{})
	if err != nil {
		return nil, err
	}

	s := &Stats{Accounts: len(accounts)}
	for _, a := range accounts {
		s.TotalBalance = s.TotalBalance.Add(a.Balance)
		s.TotalFund = s.TotalFund.Add(a.Fund)
		s.TotalIncome = s.TotalIncome.Add(a.TotalIncome)
		s.TotalReferrals += a.Referrals
	}

	deposits, err := l.store.ListDeposits(ctx, request.ListOpts{Status: request.StatusPending})
	if err != nil {
		return nil, err
	}
	s.PendingDeposits = len(deposits)

	withdrawals, err := l.store.ListWithdrawals(ctx, request.ListOpts{Status: request.StatusPending})
	if err != nil {
		return nil, err
	}
	s.PendingWithdrawals = len(withdrawals)

	return s, nil
}
