package walletledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/identity"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/plugin"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/types"
)

// Defaults applied by New. Registration credits the welcome bonus;
// each referred signup pays the sponsor a flat commission.
const (
	DefaultRegistrationBonus  = types.Credits(50)
	DefaultReferralCommission = types.Credits(10)
	DefaultSponsorID          = "CAPITAL01"
)

// applyAttempts bounds optimistic-concurrency retries. Operations hold
// the per-account lock, so conflicts only arise from cross-account
// interleavings and resolve within a re-read or two.
const applyAttempts = 3

// Ledger is the wallet ledger engine. All balance mutations flow
// through it: each operation reads the affected account, derives the
// full record set, and commits it through a single atomic store batch.
type Ledger struct {
	store    store.Store
	identity identity.Provider
	plugins  *plugin.Registry
	logger   *slog.Logger
	locks    *keyLocks

	// Background workers
	stopChan chan struct{}
	wg       sync.WaitGroup

	// Configuration
	registrationBonus   types.Credits
	referralCommission  types.Credits
	defaultSponsor      string
	expirySweepInterval time.Duration
	expirySweepBatch    int

	now func() time.Time
}

// New creates a new Ledger instance.
func New(s store.Store, idp identity.Provider, opts ...Option) *Ledger {
	l := &Ledger{
		store:               s,
		identity:            idp,
		plugins:             plugin.NewRegistry(),
		logger:              slog.Default(),
		locks:               newKeyLocks(),
		stopChan:            make(chan struct{}),
		registrationBonus:   DefaultRegistrationBonus,
		referralCommission:  DefaultReferralCommission,
		defaultSponsor:      DefaultSponsorID,
		expirySweepInterval: time.Hour,
		expirySweepBatch:    100,
		now:                 time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithRegistrationBonus overrides the welcome bonus credited on signup.
func WithRegistrationBonus(bonus types.Credits) Option {
	return func(l *Ledger) {
		l.registrationBonus = bonus
	}
}

// WithReferralCommission overrides the flat commission paid to a
// sponsor per referred signup.
func WithReferralCommission(commission types.Credits) Option {
	return func(l *Ledger) {
		l.referralCommission = commission
	}
}

// WithDefaultSponsor overrides the sponsor recorded on accounts that
// register without one.
func WithDefaultSponsor(sponsorID string) Option {
	return func(l *Ledger) {
		l.defaultSponsor = sponsorID
	}
}

// WithExpirySweep configures the activation expiry worker.
func WithExpirySweep(interval time.Duration, batch int) Option {
	return func(l *Ledger) {
		l.expirySweepInterval = interval
		l.expirySweepBatch = batch
	}
}

// WithClock overrides the time source. Tests use this to pin record
// dates and expiry windows.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Start migrates the store, initializes plugins, and begins background
// workers.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.wg.Add(1)
	go l.expiryWorker(ctx)

	l.logger.Info("wallet ledger started",
		"registration_bonus", l.registrationBonus.Int64(),
		"referral_commission", l.referralCommission.Int64(),
		"sweep_interval", l.expirySweepInterval,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	close(l.stopChan)
	l.wg.Wait()

	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Registration
// ──────────────────────────────────────────────────

// RegisterInput carries the signup form.
type RegisterInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string

	// SponsorID is the referring account's public identifier. When
	// empty the default sponsor is recorded and no commission is paid.
	SponsorID string
}

// RegisterResult is the outcome of a successful registration. Referral
// payment failures never fail registration; they surface here instead.
type RegisterResult struct {
	Account *account.Account
	Token   string

	// Referral is the commission record, when one was paid.
	Referral *referral.IncomeRecord

	// ReferralErr records why the referral payment was skipped, if it
	// was. The registration itself has already committed.
	ReferralErr error
}

// Register creates the identity, assigns the public account id, and
// commits the account together with its welcome-bonus journal entry.
// If a sponsor was named, the commission is paid in a second commit;
// its failure is logged and reported but never unwinds the signup.
func (l *Ledger) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.Name == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}
	if in.Email == "" {
		return nil, ValidationError{Field: "email", Message: "required"}
	}

	ident, err := l.identity.Create(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	sponsorID := in.SponsorID
	if sponsorID == "" {
		sponsorID = l.defaultSponsor
	}

	// The welcome bonus seeds the balance only. Income counters track
	// earnings (tasks, referrals), not the signup credit.
	acct := &account.Account{
		Entity:    types.NewEntity(),
		UID:       ident.UID,
		PublicID:  l.nextAccountID(ctx),
		Name:      in.Name,
		Email:     ident.Email,
		Mobile:    in.Mobile,
		Role:      account.RoleUser,
		Status:    account.StatusActive,
		Balance:   l.registrationBonus,
		Package:   account.PackageNone,
		KYC:       account.KYCPending,
		SponsorID: sponsorID,
		Rank:      account.RankBeginner,
	}

	entry := l.newEntry(id.PrefixTransaction, acct, journal.CategoryRegistrationBonus, l.registrationBonus, acct.Balance)
	entry.Description = "Welcome bonus"

	if err := l.store.Apply(ctx,
		store.PutAccount{Account: acct},
		store.AppendEntry{Entry: entry},
	); err != nil {
		return nil, err
	}

	token, err := l.identity.Token(ident)
	if err != nil {
		l.logger.Warn("session token issue failed", "uid", acct.UID, "error", err)
	}

	result := &RegisterResult{Account: acct, Token: token}

	// Commission is paid only for an explicitly named sponsor. The
	// default sponsor is bookkeeping, not a payee.
	if in.SponsorID != "" {
		rec, refErr := l.payReferral(ctx, in.SponsorID, acct)
		if refErr != nil {
			l.logger.Warn("referral commission skipped",
				"sponsor", in.SponsorID,
				"referred", acct.PublicID,
				"error", refErr,
			)
			result.ReferralErr = refErr
		} else {
			result.Referral = rec
		}
	}

	l.plugins.EmitAccountRegistered(ctx, acct)
	return result, nil
}

// payReferral credits the sponsor and commits the commission entry and
// income record in one batch.
func (l *Ledger) payReferral(ctx context.Context, sponsorPublicID string, referred *account.Account) (*referral.IncomeRecord, error) {
	unlock := l.locks.Lock("acct:" + sponsorPublicID)
	defer unlock()

	var rec *referral.IncomeRecord

	for attempt := 0; attempt < applyAttempts; attempt++ {
		sponsor, err := l.store.GetAccountByPublicID(ctx, sponsorPublicID)
		if err != nil {
			if IsNotFound(err) {
				return nil, ErrSponsorNotFound
			}
			return nil, err
		}

		version := sponsor.Version
		sponsor.Balance = sponsor.Balance.Add(l.referralCommission)
		sponsor.Referrals++
		sponsor.TotalIncome = sponsor.TotalIncome.Add(l.referralCommission)
		sponsor.ReferralIncome = sponsor.ReferralIncome.Add(l.referralCommission)
		sponsor.Touch()

		entry := l.newEntry(id.PrefixReferral, sponsor, journal.CategoryReferralCommission, l.referralCommission, sponsor.Balance)
		entry.Description = fmt.Sprintf("Referral commission for %s", referred.PublicID)
		entry.ReferredUser = referred.PublicID

		rec = &referral.IncomeRecord{
			Entity:       types.NewEntity(),
			ID:           id.New(id.PrefixReferralIncome),
			SponsorID:    sponsor.PublicID,
			ReferredID:   referred.PublicID,
			ReferredName: referred.Name,
			Package:      referred.Package,
			Commission:   l.referralCommission.String(),
			Amount:       l.referralCommission,
			Status:       referral.StatusPaid,
		}

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: sponsor, ExpectedVersion: version},
			store.AppendEntry{Entry: entry},
			store.PutReferralIncome{Record: rec},
		)
		if err == nil {
			l.plugins.EmitReferralPaid(ctx, sponsor.PublicID, referred.PublicID, l.referralCommission.Int64())
			return rec, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// nextAccountID formats the next sequential public identifier. If the
// counter is unreachable, a timestamp-derived fallback keeps
// registration available; the gap in the sequence is accepted.
func (l *Ledger) nextAccountID(ctx context.Context) string {
	seq, err := l.store.NextAccountSeq(ctx)
	if err != nil {
		fallback := id.FallbackAccountID(l.now())
		l.logger.Warn("account counter unavailable, using fallback id",
			"fallback", fallback,
			"error", err,
		)
		return fallback
	}
	return id.FormatAccountSeq(seq)
}

// newEntry builds a journal entry stamped with the account's current
// identity fields and resulting balance.
func (l *Ledger) newEntry(prefix id.Prefix, acct *account.Account, category journal.Category, amount, balanceAfter types.Credits) *journal.Entry {
	return &journal.Entry{
		Entity:       types.NewEntity(),
		ID:           id.New(prefix),
		AccountUID:   acct.UID,
		AccountID:    acct.PublicID,
		AccountName:  acct.Name,
		Category:     category,
		Amount:       amount,
		Status:       journal.StatusSuccess,
		BalanceAfter: balanceAfter,
	}
}
