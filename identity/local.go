package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.jetify.com/typeid/v2"
	"golang.org/x/crypto/bcrypt"
)

// uidPrefix is the TypeID prefix for internal account identifiers.
const uidPrefix = "acct"

type tokenContextKey struct{}

// ContextWithToken returns a context carrying a session token. Callers
// (HTTP middleware, CLI session loaders) attach the token here;
// Current parses it back into an Identity.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

type credential struct {
	uid   string
	email string
	hash  []byte
}

// Local is an in-process Provider backed by bcrypt credential hashes
// and HMAC-signed JWT session tokens. It stands in for the hosted
// authentication service in development and tests.
type Local struct {
	mu         sync.RWMutex
	byEmail    map[string]*credential
	signingKey []byte
	tokenTTL   time.Duration
	cost       int
}

// compile-time interface check
var _ Provider = (*Local)(nil)

// LocalOption configures a Local provider.
type LocalOption func(*Local)

// WithTokenTTL sets the session token lifetime.
func WithTokenTTL(ttl time.Duration) LocalOption {
	return func(p *Local) {
		p.tokenTTL = ttl
	}
}

// WithBcryptCost sets the bcrypt hashing cost. Tests lower this to keep
// registration fast.
func WithBcryptCost(cost int) LocalOption {
	return func(p *Local) {
		p.cost = cost
	}
}

// NewLocal creates a local identity provider signing session tokens
// with the given key.
func NewLocal(signingKey []byte, opts ...LocalOption) *Local {
	p := &Local{
		byEmail:    make(map[string]*credential),
		signingKey: signingKey,
		tokenTTL:   24 * time.Hour,
		cost:       bcrypt.DefaultCost,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Create registers new credential material and mints an internal uid.
func (p *Local) Create(_ context.Context, email, secret string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash credential: %w", err)
	}

	tid, err := typeid.Generate(uidPrefix)
	if err != nil {
		return nil, fmt.Errorf("identity: generate uid: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	cred := &credential{uid: tid.String(), email: email, hash: hash}
	p.byEmail[email] = cred

	return &Identity{UID: cred.uid, Email: cred.email}, nil
}

// Verify checks credential material against the stored hash.
func (p *Local) Verify(_ context.Context, email, secret string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	p.mu.RLock()
	cred, ok := p.byEmail[email]
	p.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UID: cred.uid, Email: cred.email}, nil
}

// Token issues a signed session token for a verified identity.
func (p *Local) Token(ident *Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   ident.UID,
		"email": ident.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.signingKey)
	if err != nil {
		return "", fmt.Errorf("identity: sign token: %w", err)
	}
	return signed, nil
}

// Current parses the session token carried on the context.
func (p *Local) Current(ctx context.Context) (*Identity, bool) {
	raw, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || raw == "" {
		return nil, false
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return p.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	uid, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if uid == "" {
		return nil, false
	}

	return &Identity{UID: uid, Email: email}, true
}
