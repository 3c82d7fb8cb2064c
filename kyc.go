package walletledger

import (
	"context"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/types"
)

// SubmitKYCInput carries an identity-verification submission.
type SubmitKYCInput struct {
	DocumentType   string
	DocumentNumber string
}

// SubmitKYC files a verification application and moves the account's
// KYC state to under review in one commit.
func (l *Ledger) SubmitKYC(ctx context.Context, accountUID string, in SubmitKYCInput) (*kyc.Application, error) {
	if in.DocumentType == "" {
		return nil, ValidationError{Field: "document_type", Message: "required"}
	}
	if in.DocumentNumber == "" {
		return nil, ValidationError{Field: "document_number", Message: "required"}
	}

	unlock := l.locks.Lock("acct:" + accountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		acct, err := l.store.GetAccount(ctx, accountUID)
		if err != nil {
			return nil, err
		}

		version := acct.Version
		acct.KYC = account.KYCUnderReview
		acct.Touch()

		app := &kyc.Application{
			Entity:         types.NewEntity(),
			ID:             id.New(id.PrefixKYC),
			AccountUID:     acct.UID,
			AccountID:      acct.PublicID,
			DocumentType:   in.DocumentType,
			DocumentNumber: in.DocumentNumber,
			Status:         kyc.StatusPending,
		}

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
			store.PutKYCApplication{Application: app},
		)
		if err == nil {
			l.plugins.EmitKYCSubmitted(ctx, app)
			l.logger.Info("kyc submitted",
				"account", acct.PublicID,
				"application", app.ID,
			)
			return app, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}

// ReviewKYC resolves a pending application and reflects the outcome on
// the account.
func (l *Ledger) ReviewKYC(ctx context.Context, applicationID string, approve bool) (*kyc.Application, error) {
	app, err := l.store.GetKYCApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	unlock := l.locks.Lock("acct:" + app.AccountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		app, err = l.store.GetKYCApplication(ctx, applicationID)
		if err != nil {
			return nil, err
		}
		if app.Status != kyc.StatusPending {
			return nil, ErrRequestNotPending
		}

		acct, err := l.store.GetAccount(ctx, app.AccountUID)
		if err != nil {
			return nil, err
		}

		version := acct.Version
		if approve {
			app.Status = kyc.StatusApproved
			acct.KYC = account.KYCVerified
		} else {
			app.Status = kyc.StatusRejected
			acct.KYC = account.KYCRejected
		}
		app.Touch()
		acct.Touch()

		err = l.store.Apply(ctx,
			store.UpdateKYCApplication{Application: app},
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
		)
		if err == nil {
			l.logger.Info("kyc reviewed",
				"application", app.ID,
				"account", acct.PublicID,
				"approved", approve,
			)
			return app, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}
