// Package store defines the unified storage interface for all wallet
// ledger entities, plus the write-batch types backends apply
// atomically.
package store

import (
	"context"
	"time"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/task"
)

// Store is the unified storage interface for all wallet ledger
// entities. Instead of embedding sub-interfaces, all methods are
// declared explicitly to avoid naming conflicts.
//
// All mutations flow through Apply so that every operation's record
// set commits atomically. The remaining methods are reads plus the
// atomic account-sequence counter.
type Store interface {
	// Account methods
	GetAccount(ctx context.Context, uid string) (*account.Account, error)
	GetAccountByPublicID(ctx context.Context, publicID string) (*account.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*account.Account, error)
	ListAccounts(ctx context.Context, opts account.ListOpts) ([]*account.Account, error)

	// Journal methods
	GetEntry(ctx context.Context, entryID string) (*journal.Entry, error)
	ListEntries(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error)

	// Deposit request methods
	GetDeposit(ctx context.Context, depositID string) (*request.Deposit, error)
	ListDeposits(ctx context.Context, opts request.ListOpts) ([]*request.Deposit, error)

	// Withdrawal request methods
	GetWithdrawal(ctx context.Context, withdrawalID string) (*request.Withdrawal, error)
	ListWithdrawals(ctx context.Context, opts request.ListOpts) ([]*request.Withdrawal, error)

	// Activation methods
	GetActivation(ctx context.Context, activationID string) (*activation.Record, error)
	ListActivations(ctx context.Context, accountUID string, status activation.Status) ([]*activation.Record, error)
	ListExpiredActivations(ctx context.Context, before time.Time, limit int) ([]*activation.Record, error)

	// Task methods
	ListTasks(ctx context.Context, accountUID string, date string) ([]*task.Record, error)

	// Referral methods
	ListReferralIncomes(ctx context.Context, sponsorID string) ([]*referral.IncomeRecord, error)

	// KYC methods
	GetKYCApplication(ctx context.Context, applicationID string) (*kyc.Application, error)
	ListKYCApplications(ctx context.Context, status kyc.Status) ([]*kyc.Application, error)

	// NextAccountSeq atomically increments and returns the account
	// sequence counter used for USER#### identifiers.
	NextAccountSeq(ctx context.Context) (int64, error)

	// Apply commits the given writes as a single atomic batch. Either
	// every write lands or none do. An UpdateAccount write whose
	// ExpectedVersion no longer matches the stored account fails the
	// whole batch.
	Apply(ctx context.Context, writes ...Write) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Write is one mutation inside an atomic batch. Exactly the variants
// below implement it.
type Write interface {
	isWrite()
}

// PutAccount inserts a new account.
type PutAccount struct {
	Account *account.Account
}

// UpdateAccount replaces an existing account. ExpectedVersion is the
// version the caller read; a mismatch at commit time fails the batch
// so the caller can re-read and retry.
type UpdateAccount struct {
	Account         *account.Account
	ExpectedVersion int64
}

// AppendEntry appends a journal entry. Entries are immutable once
// written.
type AppendEntry struct {
	Entry *journal.Entry
}

// PutDeposit inserts a new deposit request.
type PutDeposit struct {
	Deposit *request.Deposit
}

// UpdateDeposit replaces an existing deposit request.
type UpdateDeposit struct {
	Deposit *request.Deposit
}

// PutWithdrawal inserts a new withdrawal request.
type PutWithdrawal struct {
	Withdrawal *request.Withdrawal
}

// UpdateWithdrawal replaces an existing withdrawal request.
type UpdateWithdrawal struct {
	Withdrawal *request.Withdrawal
}

// PutActivation inserts a new package activation record.
type PutActivation struct {
	Record *activation.Record
}

// UpdateActivation replaces an existing activation record.
type UpdateActivation struct {
	Record *activation.Record
}

// PutTask inserts a completed task record.
type PutTask struct {
	Record *task.Record
}

// PutReferralIncome inserts a referral income record.
type PutReferralIncome struct {
	Record *referral.IncomeRecord
}

// PutKYCApplication inserts a KYC application.
type PutKYCApplication struct {
	Application *kyc.Application
}

// UpdateKYCApplication replaces an existing KYC application.
type UpdateKYCApplication struct {
	Application *kyc.Application
}

func (PutAccount) isWrite()           {}
func (UpdateAccount) isWrite()        {}
func (AppendEntry) isWrite()          {}
func (PutDeposit) isWrite()           {}
func (UpdateDeposit) isWrite()        {}
func (PutWithdrawal) isWrite()        {}
func (UpdateWithdrawal) isWrite()     {}
func (PutActivation) isWrite()        {}
func (UpdateActivation) isWrite()     {}
func (PutTask) isWrite()              {}
func (PutReferralIncome) isWrite()    {}
func (PutKYCApplication) isWrite()    {}
func (UpdateKYCApplication) isWrite() {}
