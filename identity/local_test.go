package identity_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xraph/walletledger/identity"
)

func newTestProvider() *identity.Local {
	return identity.NewLocal([]byte("test-signing-key"),
		identity.WithBcryptCost(4),
		identity.WithTokenTTL(time.Minute),
	)
}

func TestCreateAndVerify(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	ident, err := p.Create(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ident.UID == "" {
		t.Fatal("expected non-empty uid")
	}
	if !strings.HasPrefix(ident.UID, "acct_") {
		t.Errorf("expected acct_ uid prefix, got %q", ident.UID)
	}

	verified, err := p.Verify(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if verified.UID != ident.UID {
		t.Errorf("uid mismatch: %q != %q", verified.UID, ident.UID)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	if _, err := p.Create(ctx, "bob@example.com", "pw"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := p.Create(ctx, "Bob@Example.com", "pw2")
	if !errors.Is(err, identity.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	if _, err := p.Create(ctx, "carol@example.com", "right"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := p.Verify(ctx, "carol@example.com", "wrong")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = p.Verify(ctx, "nobody@example.com", "right")
	if !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	ident, err := p.Create(ctx, "dave@example.com", "pw")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	token, err := p.Token(ident)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	current, ok := p.Current(identity.ContextWithToken(ctx, token))
	if !ok {
		t.Fatal("expected session in context")
	}
	if current.UID != ident.UID || current.Email != ident.Email {
		t.Errorf("session identity mismatch: %+v != %+v", current, ident)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	p := newTestProvider()

	if _, ok := p.Current(context.Background()); ok {
		t.Error("expected no session on bare context")
	}
	if _, ok := p.Current(identity.ContextWithToken(context.Background(), "garbage")); ok {
		t.Error("expected no session for malformed token")
	}
}
