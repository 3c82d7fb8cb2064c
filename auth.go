package walletledger

import (
	"context"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/store"
)

// AuthResult is a successful authentication.
type AuthResult struct {
	Account *account.Account
	Token   string
}

// Authenticate verifies credentials and issues a session token. The
// last-login stamp is best effort; a conflict there never fails the
// login.
func (l *Ledger) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	ident, err := l.identity.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	acct, err := l.store.GetAccount(ctx, ident.UID)
	if err != nil {
		return nil, err
	}
	if acct.Status == account.StatusBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := l.identity.Token(ident)
	if err != nil {
		return nil, err
	}

	now := l.now()
	version := acct.Version
	acct.LastLogin = &now
	acct.Touch()
	if err := l.store.Apply(ctx, store.UpdateAccount{Account: acct, ExpectedVersion: version}); err != nil {
		l.logger.Warn("last login stamp failed", "account", acct.PublicID, "error", err)
	}

	return &AuthResult{Account: acct, Token: token}, nil
}

// CurrentAccount resolves the account for the session carried on the
// context.
func (l *Ledger) CurrentAccount(ctx context.Context) (*account.Account, error) {
	ident, ok := l.identity.Current(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return l.store.GetAccount(ctx, ident.UID)
}
