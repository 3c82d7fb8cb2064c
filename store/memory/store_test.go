package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/walletledger"
	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/store/memory"
	"github.com/xraph/walletledger/types"
)

func newAccount(uid, publicID string) *account.Account {
	return &account.Account{
		Entity:   types.NewEntity(),
		UID:      uid,
		PublicID: publicID,
		Name:     "Test User",
		Email:    uid + "@example.com",
		Role:     account.RoleUser,
		Status:   account.StatusActive,
		Balance:  types.Credits(50),
	}
}

func TestApplyPutAndGetAccount(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	acct := newAccount("uid-1", "USER0001")
	if err := s.Apply(ctx, store.PutAccount{Account: acct}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	got, err := s.GetAccount(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got.PublicID != "USER0001" {
		t.Errorf("PublicID = %q, want USER0001", got.PublicID)
	}

	byPublic, err := s.GetAccountByPublicID(ctx, "USER0001")
	if err != nil {
		t.Fatalf("GetAccountByPublicID failed: %v", err)
	}
	if byPublic.UID != "uid-1" {
		t.Errorf("UID = %q, want uid-1", byPublic.UID)
	}

	byEmail, err := s.GetAccountByEmail(ctx, "UID-1@example.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if byEmail.UID != "uid-1" {
		t.Errorf("UID = %q, want uid-1", byEmail.UID)
	}
}

func TestApplyIsAtomic(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	acct := newAccount("uid-1", "USER0001")
	if err := s.Apply(ctx, store.PutAccount{Account: acct}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Second write in the batch collides, so the entry append must
	// roll back too.
	entry := &journal.Entry{
		Entity:     types.NewEntity(),
		ID:         "TXN0000000001",
		AccountUID: "uid-1",
		Category:   journal.CategoryDeposit,
		Amount:     types.Credits(100),
		Status:     journal.StatusSuccess,
	}
	err := s.Apply(ctx,
		store.AppendEntry{Entry: entry},
		store.PutAccount{Account: newAccount("uid-1", "USER0002")},
	)
	if !errors.Is(err, walletledger.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if _, err := s.GetEntry(ctx, "TXN0000000001"); !errors.Is(err, walletledger.ErrEntryNotFound) {
		t.Errorf("expected entry rolled back, got %v", err)
	}
}

func TestApplyVersionConflict(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	acct := newAccount("uid-1", "USER0001")
	if err := s.Apply(ctx, store.PutAccount{Account: acct}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	read, err := s.GetAccount(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}

	read.Balance = read.Balance.Add(types.Credits(10))
	if err := s.Apply(ctx, store.UpdateAccount{Account: read, ExpectedVersion: read.Version}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// Re-applying with the stale version must fail.
	err = s.Apply(ctx, store.UpdateAccount{Account: read, ExpectedVersion: read.Version})
	if !errors.Is(err, walletledger.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}

	fresh, err := s.GetAccount(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if fresh.Version != read.Version+1 {
		t.Errorf("Version = %d, want %d", fresh.Version, read.Version+1)
	}
	if fresh.Balance != types.Credits(60) {
		t.Errorf("Balance = %d, want 60", fresh.Balance)
	}
}

func TestNextAccountSeq(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextAccountSeq(ctx)
		if err != nil {
			t.Fatalf("NextAccountSeq failed: %v", err)
		}
		if got != want {
			t.Errorf("NextAccountSeq = %d, want %d", got, want)
		}
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"TXN0000000001", "TXN0000000002", "TXN0000000003"} {
		e := &journal.Entry{
			Entity:     types.Entity{CreatedAt: base.Add(time.Duration(i) * time.Second)},
			ID:         id,
			AccountUID: "uid-1",
			Category:   journal.CategoryTaskIncome,
			Status:     journal.StatusSuccess,
		}
		if err := s.Apply(ctx, store.AppendEntry{Entry: e}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	entries, err := s.ListEntries(ctx, journal.ListOpts{AccountUID: "uid-1"})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != "TXN0000000003" {
		t.Errorf("first entry = %q, want newest", entries[0].ID)
	}

	limited, err := s.ListEntries(ctx, journal.ListOpts{AccountUID: "uid-1", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "TXN0000000002" {
		t.Errorf("paged entry = %+v, want TXN0000000002", limited)
	}
}

func TestReadsReturnClones(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	if err := s.Apply(ctx, store.PutAccount{Account: newAccount("uid-1", "USER0001")}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	read, _ := s.GetAccount(ctx, "uid-1")
	read.Balance = types.Credits(999999)

	fresh, _ := s.GetAccount(ctx, "uid-1")
	if fresh.Balance != types.Credits(50) {
		t.Errorf("stored account mutated through read copy: balance = %d", fresh.Balance)
	}
}
