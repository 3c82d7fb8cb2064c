// Package walletledger provides a wallet and income ledger engine for
// referral-driven membership programs.
//
// The engine is designed as a library, not a service. Import it directly
// into your Go application and expose it over whatever transport you
// already run. It provides:
//
//   - Account registration with a welcome bonus and sponsor tracking
//   - Flat referral commissions credited atomically with their records
//   - Admin-approved deposit and withdrawal requests
//   - Package activations with validity windows and automatic expiry
//   - Daily task income gated on an active package
//   - KYC applications with account state transitions
//   - An append-only journal entry for every balance change
//
// # Quick Start
//
// Create a ledger instance with your preferred store and identity
// provider:
//
//	import (
//	    "github.com/xraph/walletledger"
//	    "github.com/xraph/walletledger/identity"
//	    "github.com/xraph/walletledger/store/sqlite"
//	)
//
//	// Initialize store
//	store, err := sqlite.Open("wallet.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create ledger
//	l := walletledger.New(store, identity.NewLocal(signingKey))
//
//	// Start the ledger (migrates and begins background workers)
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Registration creates the account, credits the welcome bonus, and pays
// the sponsor when one was named:
//
//	res, err := l.Register(ctx, walletledger.RegisterInput{
//	    Name:      "Asha",
//	    Email:     "asha@example.com",
//	    Password:  "s3cret",
//	    SponsorID: "USER0042",
//	})
//
// Deposits and withdrawals are two-phase. Members file requests; funds
// only move when an admin approves:
//
//	dep, err := l.RequestDeposit(ctx, uid, walletledger.DepositInput{
//	    Amount: 500,
//	    Method: "UPI",
//	})
//	_, err = l.ApproveDeposit(ctx, dep.ID, adminID)
//
// Task income requires an unexpired package activation:
//
//	_, err = l.ActivatePackage(ctx, uid, walletledger.ActivatePackageInput{
//	    Package:      "Silver",
//	    Amount:       30,
//	    ValidityDays: 30,
//	})
//	_, err = l.CompleteTask(ctx, uid, walletledger.CompleteTaskInput{Reward: 5})
//
// # Consistency
//
// All balance arithmetic uses integer credits; there is no floating
// point anywhere in the money path. Every mutation commits through a
// single atomic store batch, so an account update never lands without
// its journal entry. Concurrent operations on one account serialize on
// a per-account lock, and cross-account races resolve through
// optimistic versioning with bounded retries.
//
// # Stores
//
// Four store backends ship with the engine: memory (tests and
// prototyping), sqlite, postgres, and mongo. All satisfy the same
// store.Store interface and the same atomicity contract.
package walletledger
