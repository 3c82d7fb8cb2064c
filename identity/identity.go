// Package identity defines the identity provider contract the ledger
// engine depends on, plus a local implementation for development and
// tests.
//
// The provider owns credential storage and session tokens. The ledger
// only ever sees the opaque Identity it returns; authenticated-identity
// context is carried explicitly on the request context, never in
// ambient state.
package identity

import (
	"context"
	"errors"
)

// Sentinel errors for identity failures.
var (
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrNoSession          = errors.New("identity: no session in context")
)

// Identity is the authenticated principal returned by a provider.
// UID is the stable internal key accounts are stored under.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Provider is the external authentication collaborator.
type Provider interface {
	// Create registers new credential material and returns the
	// assigned identity.
	Create(ctx context.Context, email, secret string) (*Identity, error)

	// Verify checks credential material and returns the matching
	// identity.
	Verify(ctx context.Context, email, secret string) (*Identity, error)

	// Token issues a session token for a verified identity.
	Token(ident *Identity) (string, error)

	// Current returns the identity carried on the request context,
	// if any.
	Current(ctx context.Context) (*Identity, bool)
}
