// Package memory provides an in-memory Store for tests and
// development. All data is lost when the process exits.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xraph/walletledger"
	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/task"
)

type Store struct {
	mu sync.RWMutex

	// Account storage, keyed by UID.
	accounts map[string]*account.Account

	// Journal storage. Entries are append-only; order is insertion
	// order, listed newest first.
	entries     []*journal.Entry
	entriesByID map[string]*journal.Entry

	// Request storage
	deposits    map[string]*request.Deposit
	withdrawals map[string]*request.Withdrawal

	// Activation storage
	activations map[string]*activation.Record

	// Task storage
	tasks []*task.Record

	// Referral income storage
	referralIncomes []*referral.IncomeRecord

	// KYC storage
	kycApps map[string]*kyc.Application

	// Account sequence counter
	accountSeq int64

	closed bool
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:        make(map[string]*account.Account),
		entries:         make([]*journal.Entry, 0),
		entriesByID:     make(map[string]*journal.Entry),
		deposits:        make(map[string]*request.Deposit),
		withdrawals:     make(map[string]*request.Withdrawal),
		activations:     make(map[string]*activation.Record),
		tasks:           make([]*task.Record, 0),
		referralIncomes: make([]*referral.IncomeRecord, 0),
		kycApps:         make(map[string]*kyc.Application),
	}
}

// Account reads

func (s *Store) GetAccount(_ context.Context, uid string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[uid]; ok {
		return cloneAccount(a), nil
	}
	return nil, walletledger.ErrAccountNotFound
}

func (s *Store) GetAccountByPublicID(_ context.Context, publicID string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.PublicID == publicID {
			return cloneAccount(a), nil
		}
	}
	return nil, walletledger.ErrAccountNotFound
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, a := range s.accounts {
		if strings.ToLower(a.Email) == email {
			return cloneAccount(a), nil
		}
	}
	return nil, walletledger.ErrAccountNotFound
}

func (s *Store) ListAccounts(_ context.Context, opts account.ListOpts) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*account.Account, 0)
	for _, a := range s.accounts {
		if opts.Role != "" && a.Role != opts.Role {
			continue
		}
		if opts.Status != "" && a.Status != opts.Status {
			continue
		}
		result = append(result, cloneAccount(a))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return page(result, opts.Offset, opts.Limit), nil
}

// Journal reads

func (s *Store) GetEntry(_ context.Context, entryID string) (*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entriesByID[entryID]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, walletledger.ErrEntryNotFound
}

func (s *Store) ListEntries(_ context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*journal.Entry, 0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if opts.AccountUID != "" && e.AccountUID != opts.AccountUID {
			continue
		}
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		clone := *e
		result = append(result, &clone)
	}

	return page(result, opts.Offset, opts.Limit), nil
}

// Deposit reads

func (s *Store) GetDeposit(_ context.Context, depositID string) (*request.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.deposits[depositID]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, walletledger.ErrDepositNotFound
}

func (s *Store) ListDeposits(_ context.Context, opts request.ListOpts) ([]*request.Deposit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*request.Deposit, 0)
	for _, d := range s.deposits {
		if opts.AccountUID != "" && d.AccountUID != opts.AccountUID {
			continue
		}
		if opts.Status != "" && d.Status != opts.Status {
			continue
		}
		clone := *d
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return page(result, opts.Offset, opts.Limit), nil
}

// Withdrawal reads

func (s *Store) GetWithdrawal(_ context.Context, withdrawalID string) (*request.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.withdrawals[withdrawalID]; ok {
		clone := *w
		return &clone, nil
	}
	return nil, walletledger.ErrWithdrawalNotFound
}

func (s *Store) ListWithdrawals(_ context.Context, opts request.ListOpts) ([]*request.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*request.Withdrawal, 0)
	for _, w := range s.withdrawals {
		if opts.AccountUID != "" && w.AccountUID != opts.AccountUID {
			continue
		}
		if opts.Status != "" && w.Status != opts.Status {
			continue
		}
		clone := *w
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return page(result, opts.Offset, opts.Limit), nil
}

// Activation reads

func (s *Store) GetActivation(_ context.Context, activationID string) (*activation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.activations[activationID]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, walletledger.ErrActivationNotFound
}

func (s *Store) ListActivations(_ context.Context, accountUID string, status activation.Status) ([]*activation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*activation.Record, 0)
	for _, r := range s.activations {
		if r.AccountUID != accountUID {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		clone := *r
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *Store) ListExpiredActivations(_ context.Context, before time.Time, limit int) ([]*activation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*activation.Record, 0)
	for _, r := range s.activations {
		if r.Status != activation.StatusActive {
			continue
		}
		if !r.ValidTill.Before(before) {
			continue
		}
		clone := *r
		result = append(result, &clone)
		if limit > 0 && len(result) >= limit {
			break
		}
	}

	return result, nil
}

// Task reads

func (s *Store) ListTasks(_ context.Context, accountUID string, date string) ([]*task.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*task.Record, 0)
	for _, r := range s.tasks {
		if r.AccountUID != accountUID {
			continue
		}
		if date != "" && r.Date != date {
			continue
		}
		clone := *r
		result = append(result, &clone)
	}

	return result, nil
}

// Referral reads

func (s *Store) ListReferralIncomes(_ context.Context, sponsorID string) ([]*referral.IncomeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*referral.IncomeRecord, 0)
	for _, r := range s.referralIncomes {
		if r.SponsorID != sponsorID {
			continue
		}
		clone := *r
		result = append(result, &clone)
	}

	return result, nil
}

// KYC reads

func (s *Store) GetKYCApplication(_ context.Context, applicationID string) (*kyc.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.kycApps[applicationID]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, walletledger.ErrKYCNotFound
}

func (s *Store) ListKYCApplications(_ context.Context, status kyc.Status) ([]*kyc.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*kyc.Application, 0)
	for _, a := range s.kycApps {
		if status != "" && a.Status != status {
			continue
		}
		clone := *a
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// NextAccountSeq atomically increments and returns the account counter.
func (s *Store) NextAccountSeq(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, walletledger.ErrStoreClosed
	}
	s.accountSeq++
	return s.accountSeq, nil
}

// Apply commits the given writes atomically. All writes are validated
// against the current state before any of them mutate it, so a failed
// validation leaves the store untouched.
func (s *Store) Apply(_ context.Context, writes ...store.Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return walletledger.ErrStoreClosed
	}

	for _, w := range writes {
		if err := s.validate(w); err != nil {
			return err
		}
	}

	for _, w := range writes {
		s.commit(w)
	}

	return nil
}

func (s *Store) validate(w store.Write) error {
	switch w := w.(type) {
	case store.PutAccount:
		if _, exists := s.accounts[w.Account.UID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.UpdateAccount:
		existing, ok := s.accounts[w.Account.UID]
		if !ok {
			return walletledger.ErrAccountNotFound
		}
		if existing.Version != w.ExpectedVersion {
			return walletledger.ErrVersionConflict
		}
	case store.AppendEntry:
		if _, exists := s.entriesByID[w.Entry.ID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.PutDeposit:
		if _, exists := s.deposits[w.Deposit.ID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.UpdateDeposit:
		if _, ok := s.deposits[w.Deposit.ID]; !ok {
			return walletledger.ErrDepositNotFound
		}
	case store.PutWithdrawal:
		if _, exists := s.withdrawals[w.Withdrawal.ID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.UpdateWithdrawal:
		if _, ok := s.withdrawals[w.Withdrawal.ID]; !ok {
			return walletledger.ErrWithdrawalNotFound
		}
	case store.PutActivation:
		if _, exists := s.activations[w.Record.ID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.UpdateActivation:
		if _, ok := s.activations[w.Record.ID]; !ok {
			return walletledger.ErrActivationNotFound
		}
	case store.PutTask:
	case store.PutReferralIncome:
	case store.PutKYCApplication:
		if _, exists := s.kycApps[w.Application.ID]; exists {
			return walletledger.ErrAlreadyExists
		}
	case store.UpdateKYCApplication:
		if _, ok := s.kycApps[w.Application.ID]; !ok {
			return walletledger.ErrKYCNotFound
		}
	default:
		return walletledger.ErrInvalidInput
	}
	return nil
}

func (s *Store) commit(w store.Write) {
	switch w := w.(type) {
	case store.PutAccount:
		s.accounts[w.Account.UID] = cloneAccount(w.Account)
	case store.UpdateAccount:
		clone := cloneAccount(w.Account)
		clone.Version = w.ExpectedVersion + 1
		s.accounts[clone.UID] = clone
	case store.AppendEntry:
		clone := *w.Entry
		s.entries = append(s.entries, &clone)
		s.entriesByID[clone.ID] = &clone
	case store.PutDeposit:
		clone := *w.Deposit
		s.deposits[clone.ID] = &clone
	case store.UpdateDeposit:
		clone := *w.Deposit
		s.deposits[clone.ID] = &clone
	case store.PutWithdrawal:
		clone := *w.Withdrawal
		s.withdrawals[clone.ID] = &clone
	case store.UpdateWithdrawal:
		clone := *w.Withdrawal
		s.withdrawals[clone.ID] = &clone
	case store.PutActivation:
		clone := *w.Record
		s.activations[clone.ID] = &clone
	case store.UpdateActivation:
		clone := *w.Record
		s.activations[clone.ID] = &clone
	case store.PutTask:
		clone := *w.Record
		s.tasks = append(s.tasks, &clone)
	case store.PutReferralIncome:
		clone := *w.Record
		s.referralIncomes = append(s.referralIncomes, &clone)
	case store.PutKYCApplication:
		clone := *w.Application
		s.kycApps[clone.ID] = &clone
	case store.UpdateKYCApplication:
		clone := *w.Application
		s.kycApps[clone.ID] = &clone
	}
}

// Core methods

func (s *Store) Migrate(_ context.Context) error {
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return walletledger.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func cloneAccount(a *account.Account) *account.Account {
	clone := *a
	if a.LastLogin != nil {
		t := *a.LastLogin
		clone.LastLogin = &t
	}
	return &clone
}

func page[T any](items []T, offset, limit int) []T {
	start := offset
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
