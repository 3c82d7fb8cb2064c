package walletledger_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	walletledger "github.com/xraph/walletledger"
	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/identity"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/store/memory"
	"github.com/xraph/walletledger/task"
)

func newTestLedger(t *testing.T, opts ...walletledger.Option) *walletledger.Ledger {
	t.Helper()
	l := walletledger.New(memory.New(), identity.NewLocal([]byte("test-signing-key")), opts...)
	t.Cleanup(func() {
		_ = l.Stop()
	})
	return l
}

func register(t *testing.T, l *walletledger.Ledger, name, email, sponsorID string) *walletledger.RegisterResult {
	t.Helper()
	res, err := l.Register(context.Background(), walletledger.RegisterInput{
		Name:      name,
		Email:     email,
		Password:  "s3cret",
		SponsorID: sponsorID,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return res
}

// ──────────────────────────────────────────────────
// Registration
// ──────────────────────────────────────────────────

func TestRegisterCreditsWelcomeBonus(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	acct := res.Account
	if acct.Balance != 50 {
		t.Errorf("Balance = %d, want 50", acct.Balance)
	}
	// The bonus is not income; counters start at zero.
	if acct.TotalIncome != 0 || acct.TodayIncome != 0 {
		t.Errorf("income counters = %d/%d, want 0/0", acct.TotalIncome, acct.TodayIncome)
	}
	if acct.Rank != account.RankBeginner {
		t.Errorf("Rank = %q, want %q", acct.Rank, account.RankBeginner)
	}
	if acct.PublicID != "USER0001" {
		t.Errorf("PublicID = %q, want USER0001", acct.PublicID)
	}
	if acct.SponsorID != walletledger.DefaultSponsorID {
		t.Errorf("SponsorID = %q, want %q", acct.SponsorID, walletledger.DefaultSponsorID)
	}
	if acct.KYC != account.KYCPending {
		t.Errorf("KYC = %q, want %q", acct.KYC, account.KYCPending)
	}
	if res.Token == "" {
		t.Error("expected a session token")
	}
	if res.Referral != nil || res.ReferralErr != nil {
		t.Errorf("no sponsor named, referral = %v, err = %v", res.Referral, res.ReferralErr)
	}

	entries, err := l.ListEntries(ctx, journal.ListOpts{AccountUID: acct.UID})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Category != journal.CategoryRegistrationBonus {
		t.Errorf("Category = %q, want %q", e.Category, journal.CategoryRegistrationBonus)
	}
	if e.Amount != 50 || e.BalanceAfter != 50 {
		t.Errorf("entry amount/balance = %d/%d, want 50/50", e.Amount, e.BalanceAfter)
	}
	if !strings.HasPrefix(e.ID, "TXN") {
		t.Errorf("entry id = %q, want TXN prefix", e.ID)
	}
}

func TestRegisterSequentialPublicIDs(t *testing.T) {
	l := newTestLedger(t)

	first := register(t, l, "One", "one@example.com", "")
	second := register(t, l, "Two", "two@example.com", "")

	if first.Account.PublicID != "USER0001" || second.Account.PublicID != "USER0002" {
		t.Errorf("public ids = %q, %q", first.Account.PublicID, second.Account.PublicID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	l := newTestLedger(t)

	register(t, l, "Asha", "asha@example.com", "")
	_, err := l.Register(context.Background(), walletledger.RegisterInput{
		Name:     "Imposter",
		Email:    "ASHA@example.com",
		Password: "other",
	})
	if !errors.Is(err, identity.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Register(ctx, walletledger.RegisterInput{Email: "x@example.com", Password: "p"})
	if !errors.Is(err, walletledger.ErrInvalidInput) {
		t.Errorf("missing name: err = %v, want ErrInvalidInput", err)
	}
	_, err = l.Register(ctx, walletledger.RegisterInput{Name: "X", Password: "p"})
	if !errors.Is(err, walletledger.ErrInvalidInput) {
		t.Errorf("missing email: err = %v, want ErrInvalidInput", err)
	}
}

// ──────────────────────────────────────────────────
// Referrals
// ──────────────────────────────────────────────────

func TestRegisterPaysReferralCommission(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	sponsor := register(t, l, "Sponsor", "sponsor@example.com", "")
	res := register(t, l, "Referred", "referred@example.com", sponsor.Account.PublicID)

	if res.ReferralErr != nil {
		t.Fatalf("ReferralErr = %v", res.ReferralErr)
	}
	if res.Referral == nil {
		t.Fatal("expected a referral income record")
	}
	if res.Referral.Amount != 10 {
		t.Errorf("commission = %d, want 10", res.Referral.Amount)
	}

	got, err := l.GetAccount(ctx, sponsor.Account.UID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if got.Balance != 60 {
		t.Errorf("sponsor Balance = %d, want 60", got.Balance)
	}
	if got.TotalIncome != 10 {
		t.Errorf("sponsor TotalIncome = %d, want 10", got.TotalIncome)
	}
	if got.ReferralIncome != 10 {
		t.Errorf("sponsor ReferralIncome = %d, want 10", got.ReferralIncome)
	}
	// The commission touches balance, totalIncome, and referralIncome
	// only.
	if got.TodayIncome != 0 {
		t.Errorf("sponsor TodayIncome = %d, want 0", got.TodayIncome)
	}
	if got.Referrals != 1 {
		t.Errorf("sponsor Referrals = %d, want 1", got.Referrals)
	}

	incomes, err := l.ListReferralIncomes(ctx, sponsor.Account.PublicID)
	if err != nil {
		t.Fatalf("ListReferralIncomes: %v", err)
	}
	if len(incomes) != 1 || incomes[0].ReferredID != res.Account.PublicID {
		t.Errorf("incomes = %+v", incomes)
	}

	entries, err := l.ListEntries(ctx, journal.ListOpts{
		AccountUID: sponsor.Account.UID,
		Category:   journal.CategoryReferralCommission,
	})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("commission entries = %d, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].ID, "REF") {
		t.Errorf("entry id = %q, want REF prefix", entries[0].ID)
	}
	if entries[0].ReferredUser != res.Account.PublicID {
		t.Errorf("ReferredUser = %q, want %q", entries[0].ReferredUser, res.Account.PublicID)
	}
}

func TestRegisterUnknownSponsorStillSucceeds(t *testing.T) {
	l := newTestLedger(t)

	res := register(t, l, "Orphan", "orphan@example.com", "USER9999")

	if !errors.Is(res.ReferralErr, walletledger.ErrSponsorNotFound) {
		t.Errorf("ReferralErr = %v, want ErrSponsorNotFound", res.ReferralErr)
	}
	if res.Account.Balance != 50 {
		t.Errorf("Balance = %d, want 50", res.Account.Balance)
	}

	got, err := l.GetAccount(context.Background(), res.Account.UID)
	if err != nil {
		t.Fatalf("registration did not commit: %v", err)
	}
	if got.SponsorID != "USER9999" {
		t.Errorf("SponsorID = %q, want USER9999", got.SponsorID)
	}
}

// ──────────────────────────────────────────────────
// Deposits and withdrawals
// ──────────────────────────────────────────────────

func TestDepositApproval(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	dep, err := l.RequestDeposit(ctx, res.Account.UID, walletledger.DepositInput{
		Amount: 500,
		Method: "UPI",
	})
	if err != nil {
		t.Fatalf("RequestDeposit: %v", err)
	}
	if dep.Status != request.StatusPending {
		t.Errorf("Status = %q, want Pending", dep.Status)
	}
	if !strings.HasPrefix(dep.ID, "DEP") {
		t.Errorf("id = %q, want DEP prefix", dep.ID)
	}

	// Nothing moves until approval.
	got, _ := l.GetAccount(ctx, res.Account.UID)
	if got.Balance != 50 {
		t.Errorf("Balance before approval = %d, want 50", got.Balance)
	}

	approved, err := l.ApproveDeposit(ctx, dep.ID, "ADMIN01")
	if err != nil {
		t.Fatalf("ApproveDeposit: %v", err)
	}
	if approved.Status != request.StatusApproved || approved.ApprovedBy != "ADMIN01" {
		t.Errorf("approved = %+v", approved)
	}
	if approved.ApprovedAt == nil {
		t.Error("ApprovedAt not set")
	}

	got, _ = l.GetAccount(ctx, res.Account.UID)
	if got.Balance != 550 {
		t.Errorf("Balance = %d, want 550", got.Balance)
	}

	entries, _ := l.ListEntries(ctx, journal.ListOpts{
		AccountUID: res.Account.UID,
		Category:   journal.CategoryDeposit,
	})
	if len(entries) != 1 || entries[0].Amount != 500 {
		t.Errorf("deposit entries = %+v", entries)
	}
}

func TestDepositDoubleApproval(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")
	dep, err := l.RequestDeposit(ctx, res.Account.UID, walletledger.DepositInput{Amount: 100, Method: "UPI"})
	if err != nil {
		t.Fatalf("RequestDeposit: %v", err)
	}

	if _, err := l.ApproveDeposit(ctx, dep.ID, "ADMIN01"); err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if _, err := l.ApproveDeposit(ctx, dep.ID, "ADMIN02"); !errors.Is(err, walletledger.ErrRequestNotPending) {
		t.Errorf("second approval err = %v, want ErrRequestNotPending", err)
	}

	// The balance reflects exactly one credit.
	got, _ := l.GetAccount(ctx, res.Account.UID)
	if got.Balance != 150 {
		t.Errorf("Balance = %d, want 150", got.Balance)
	}
}

func TestWithdrawalInsufficientFunds(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	_, err := l.RequestWithdrawal(ctx, res.Account.UID, walletledger.WithdrawalInput{
		Amount: 100,
		Method: "bank",
	})
	if !errors.Is(err, walletledger.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestWithdrawalApproval(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")
	dep, _ := l.RequestDeposit(ctx, res.Account.UID, walletledger.DepositInput{Amount: 950, Method: "UPI"})
	if _, err := l.ApproveDeposit(ctx, dep.ID, "ADMIN01"); err != nil {
		t.Fatalf("fund account: %v", err)
	}

	wd, err := l.RequestWithdrawal(ctx, res.Account.UID, walletledger.WithdrawalInput{
		Amount:     200,
		FeePercent: 10,
		Method:     "bank",
	})
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}
	if wd.FeeAmount() != 20 || wd.NetAmount() != 180 {
		t.Errorf("fee/net = %d/%d, want 20/180", wd.FeeAmount(), wd.NetAmount())
	}

	approved, err := l.ApproveWithdrawal(ctx, wd.ID, "ADMIN01", "SETTLE-1")
	if err != nil {
		t.Fatalf("ApproveWithdrawal: %v", err)
	}
	if approved.SettlementRef != "SETTLE-1" {
		t.Errorf("SettlementRef = %q", approved.SettlementRef)
	}

	// Gross amount debited exactly once.
	got, _ := l.GetAccount(ctx, res.Account.UID)
	if got.Balance != 800 {
		t.Errorf("Balance = %d, want 800", got.Balance)
	}

	entries, _ := l.ListEntries(ctx, journal.ListOpts{
		AccountUID: res.Account.UID,
		Category:   journal.CategoryWithdrawal,
	})
	if len(entries) != 1 {
		t.Fatalf("withdrawal entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Amount != -200 || e.Fee != 20 || e.NetAmount != 180 {
		t.Errorf("entry amount/fee/net = %d/%d/%d", e.Amount, e.Fee, e.NetAmount)
	}

	if _, err := l.ApproveWithdrawal(ctx, wd.ID, "ADMIN02", ""); !errors.Is(err, walletledger.ErrRequestNotPending) {
		t.Errorf("second approval err = %v, want ErrRequestNotPending", err)
	}
}

// ──────────────────────────────────────────────────
// Activations and tasks
// ──────────────────────────────────────────────────

func TestActivationInsufficientFunds(t *testing.T) {
	l := newTestLedger(t)

	res := register(t, l, "Asha", "asha@example.com", "")
	_, err := l.ActivatePackage(context.Background(), res.Account.UID, walletledger.ActivatePackageInput{
		Package:      "Gold",
		Amount:       100,
		ValidityDays: 30,
	})
	if !errors.Is(err, walletledger.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestTaskRequiresActivePackage(t *testing.T) {
	l := newTestLedger(t)

	res := register(t, l, "Asha", "asha@example.com", "")
	_, err := l.CompleteTask(context.Background(), res.Account.UID, walletledger.CompleteTaskInput{Reward: 5})
	if !errors.Is(err, walletledger.ErrNoActivePackage) {
		t.Errorf("err = %v, want ErrNoActivePackage", err)
	}
}

func TestActivateThenEarn(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")
	uid := res.Account.UID

	rec, err := l.ActivatePackage(ctx, uid, walletledger.ActivatePackageInput{
		Package:      "Silver",
		Amount:       30,
		DailyIncome:  5,
		ValidityDays: 30,
	})
	if err != nil {
		t.Fatalf("ActivatePackage: %v", err)
	}
	if !strings.HasPrefix(rec.ID, "ACT") {
		t.Errorf("activation id = %q, want ACT prefix", rec.ID)
	}

	got, _ := l.GetAccount(ctx, uid)
	if got.Balance != 20 || got.Fund != 30 {
		t.Errorf("balance/fund = %d/%d, want 20/30", got.Balance, got.Fund)
	}
	if got.Package != "Silver" {
		t.Errorf("Package = %q, want Silver", got.Package)
	}

	taskRec, err := l.CompleteTask(ctx, uid, walletledger.CompleteTaskInput{
		Clicks:      10,
		TotalClicks: 10,
		Reward:      5,
	})
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if taskRec.Type != task.TypeDailyClick {
		t.Errorf("Type = %q, want %q", taskRec.Type, task.TypeDailyClick)
	}

	got, _ = l.GetAccount(ctx, uid)
	if got.Balance != 25 {
		t.Errorf("Balance = %d, want 25", got.Balance)
	}
	// Only the reward counts as income, never the signup bonus.
	if got.TotalIncome != 5 || got.TodayIncome != 5 {
		t.Errorf("income counters = %d/%d, want 5/5", got.TotalIncome, got.TodayIncome)
	}
	if got.TotalTasks != 1 {
		t.Errorf("TotalTasks = %d, want 1", got.TotalTasks)
	}

	status, err := l.DailyTaskStatus(ctx, uid, "")
	if err != nil {
		t.Fatalf("DailyTaskStatus: %v", err)
	}
	if status.TasksCompleted != 1 || status.ClicksCompleted != 10 || status.TotalReward != 5 {
		t.Errorf("daily status = %+v", status)
	}
}

func TestExpiredActivationStopsEarning(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	l := newTestLedger(t, walletledger.WithClock(clock))
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")
	if _, err := l.ActivatePackage(ctx, res.Account.UID, walletledger.ActivatePackageInput{
		Package:      "Silver",
		Amount:       30,
		ValidityDays: 7,
	}); err != nil {
		t.Fatalf("ActivatePackage: %v", err)
	}

	active, err := l.HasActivePackage(ctx, res.Account.UID)
	if err != nil || !active {
		t.Fatalf("HasActivePackage = %v, %v, want true", active, err)
	}

	mu.Lock()
	current = current.AddDate(0, 0, 8)
	mu.Unlock()

	active, err = l.HasActivePackage(ctx, res.Account.UID)
	if err != nil || active {
		t.Fatalf("HasActivePackage after expiry = %v, %v, want false", active, err)
	}

	_, err = l.CompleteTask(ctx, res.Account.UID, walletledger.CompleteTaskInput{Reward: 5})
	if !errors.Is(err, walletledger.ErrNoActivePackage) {
		t.Errorf("err = %v, want ErrNoActivePackage", err)
	}
}

// ──────────────────────────────────────────────────
// KYC
// ──────────────────────────────────────────────────

func TestKYCFlow(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	app, err := l.SubmitKYC(ctx, res.Account.UID, walletledger.SubmitKYCInput{
		DocumentType:   "passport",
		DocumentNumber: "P1234567",
	})
	if err != nil {
		t.Fatalf("SubmitKYC: %v", err)
	}
	if app.Status != kyc.StatusPending {
		t.Errorf("Status = %q, want Pending", app.Status)
	}

	got, _ := l.GetAccount(ctx, res.Account.UID)
	if got.KYC != account.KYCUnderReview {
		t.Errorf("account KYC = %q, want Under Review", got.KYC)
	}

	reviewed, err := l.ReviewKYC(ctx, app.ID, true)
	if err != nil {
		t.Fatalf("ReviewKYC: %v", err)
	}
	if reviewed.Status != kyc.StatusApproved {
		t.Errorf("Status = %q, want Approved", reviewed.Status)
	}

	got, _ = l.GetAccount(ctx, res.Account.UID)
	if got.KYC != account.KYCVerified {
		t.Errorf("account KYC = %q, want Verified", got.KYC)
	}

	if _, err := l.ReviewKYC(ctx, app.ID, false); !errors.Is(err, walletledger.ErrRequestNotPending) {
		t.Errorf("second review err = %v, want ErrRequestNotPending", err)
	}
}

// ──────────────────────────────────────────────────
// Authentication
// ──────────────────────────────────────────────────

func TestAuthenticate(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	auth, err := l.Authenticate(ctx, "asha@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if auth.Token == "" {
		t.Error("expected a session token")
	}
	if auth.Account.UID != res.Account.UID {
		t.Errorf("UID = %q, want %q", auth.Account.UID, res.Account.UID)
	}
	if auth.Account.LastLogin == nil {
		t.Error("LastLogin not stamped")
	}

	if _, err := l.Authenticate(ctx, "asha@example.com", "wrong"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCurrentAccount(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")

	got, err := l.CurrentAccount(identity.ContextWithToken(ctx, res.Token))
	if err != nil {
		t.Fatalf("CurrentAccount: %v", err)
	}
	if got.UID != res.Account.UID {
		t.Errorf("UID = %q, want %q", got.UID, res.Account.UID)
	}

	if _, err := l.CurrentAccount(ctx); !errors.Is(err, walletledger.ErrUnauthorized) {
		t.Errorf("no session err = %v, want ErrUnauthorized", err)
	}
}

// ──────────────────────────────────────────────────
// Concurrency and aggregates
// ──────────────────────────────────────────────────

func TestConcurrentTasksKeepBalanceConsistent(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	res := register(t, l, "Asha", "asha@example.com", "")
	if _, err := l.ActivatePackage(ctx, res.Account.UID, walletledger.ActivatePackageInput{
		Package:      "Silver",
		Amount:       30,
		ValidityDays: 30,
	}); err != nil {
		t.Fatalf("ActivatePackage: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := l.CompleteTask(ctx, res.Account.UID, walletledger.CompleteTaskInput{Reward: 1})
			if err != nil {
				t.Errorf("CompleteTask: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := l.GetAccount(ctx, res.Account.UID)
	// 50 bonus - 30 activation + 10 rewards.
	if got.Balance != 30 {
		t.Errorf("Balance = %d, want 30", got.Balance)
	}
	if got.TotalTasks != workers {
		t.Errorf("TotalTasks = %d, want %d", got.TotalTasks, workers)
	}
}

func TestStats(t *testing.T) {
	l := newTestLedger(t)

	register(t, l, "One", "one@example.com", "")
	two := register(t, l, "Two", "two@example.com", "")
	register(t, l, "Three", "three@example.com", two.Account.PublicID)

	stats, err := l.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Accounts != 3 {
		t.Errorf("Accounts = %d, want 3", stats.Accounts)
	}
	// Three bonuses plus one commission.
	if stats.TotalBalance != 160 {
		t.Errorf("TotalBalance = %d, want 160", stats.TotalBalance)
	}
	if stats.TotalReferrals != 1 {
		t.Errorf("TotalReferrals = %d, want 1", stats.TotalReferrals)
	}
}

// ──────────────────────────────────────────────────
// Identifier fallback
// ──────────────────────────────────────────────────

// brokenCounterStore fails every NextAccountSeq call.
type brokenCounterStore struct {
	*memory.Store
}

func (s *brokenCounterStore) NextAccountSeq(context.Context) (int64, error) {
	return 0, errors.New("counter backend down")
}

func TestRegisterFallsBackWhenCounterFails(t *testing.T) {
	st := &brokenCounterStore{Store: memory.New()}
	l := walletledger.New(st, identity.NewLocal([]byte("test-signing-key")))
	t.Cleanup(func() {
		_ = l.Stop()
	})

	res := register(t, l, "Asha", "asha@example.com", "")

	if !id.IsFallbackAccountID(res.Account.PublicID) {
		t.Errorf("PublicID = %q, want timestamp fallback form", res.Account.PublicID)
	}

	// The registration still committed in full.
	got, err := l.GetAccountByPublicID(context.Background(), res.Account.PublicID)
	if err != nil {
		t.Fatalf("GetAccountByPublicID: %v", err)
	}
	if got.Balance != 50 {
		t.Errorf("Balance = %d, want 50", got.Balance)
	}
}

func TestFallbackAccountIDFormat(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := id.FallbackAccountID(now)
	if !strings.HasPrefix(got, "USER") || len(got) != len("USER")+8 {
		t.Errorf("fallback id = %q", got)
	}
	if !id.IsFallbackAccountID(got) {
		t.Errorf("IsFallbackAccountID(%q) = false", got)
	}
	if id.IsFallbackAccountID(id.FormatAccountSeq(7)) {
		t.Error("sequential id classified as fallback")
	}
}
