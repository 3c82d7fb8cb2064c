package walletledger_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	walletledger "github.com/xraph/walletledger"
	"github.com/xraph/walletledger/identity"
	"github.com/xraph/walletledger/store/memory"
	"github.com/xraph/walletledger/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use sqlite or postgres in production)
		store := memory.New()

		// Initialize the engine with options
		l := walletledger.New(store, identity.NewLocal([]byte("demo-signing-key")),
			walletledger.WithLogger(slog.Default()),
			walletledger.WithRegistrationBonus(50),
			walletledger.WithReferralCommission(10),
			walletledger.WithExpirySweep(time.Hour, 100),
		)

		// Start the engine
		ctx := context.Background()
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		// Register a sponsor, then a referred member
		sponsor, err := l.Register(ctx, walletledger.RegisterInput{
			Name:     "Sponsor",
			Email:    "sponsor@example.com",
			Password: "s3cret",
		})
		if err != nil {
			t.Fatal(err)
		}

		member, err := l.Register(ctx, walletledger.RegisterInput{
			Name:      "Member",
			Email:     "member@example.com",
			Password:  "s3cret",
			SponsorID: sponsor.Account.PublicID,
		})
		if err != nil {
			t.Fatal(err)
		}
		if member.ReferralErr != nil {
			t.Fatal(member.ReferralErr)
		}

		// Fund the wallet through an approved deposit
		dep, err := l.RequestDeposit(ctx, member.Account.UID, walletledger.DepositInput{
			Amount: 500,
			Method: "UPI",
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := l.ApproveDeposit(ctx, dep.ID, "ADMIN01"); err != nil {
			t.Fatal(err)
		}

		// Activate a package and start earning task income
		if _, err := l.ActivatePackage(ctx, member.Account.UID, walletledger.ActivatePackageInput{
			Package:      "Silver",
			Amount:       30,
			DailyIncome:  5,
			ValidityDays: 30,
		}); err != nil {
			t.Fatal(err)
		}

		rec, err := l.CompleteTask(ctx, member.Account.UID, walletledger.CompleteTaskInput{
			Clicks:      10,
			TotalClicks: 10,
			Reward:      5,
		})
		if err != nil {
			t.Fatal(err)
		}

		log.Printf("Task %s rewarded %d credits\n", rec.ID, rec.Reward.Int64())
	})

	// Test Credits type examples
	t.Run("CreditsExamples", func(t *testing.T) {
		// Arithmetic
		c1 := types.Credits(100)
		c2 := types.Credits(200)
		_ = c1.Add(c2)      // 300
		_ = c2.Subtract(c1) // 100
		_ = c1.Percent(10)  // 10
		_ = c1.Negate()     // -100

		// Comparison
		if c1.LessThan(c2) {
			// c1 is less than c2
		}

		// Formatting
		_ = c1.String() // "100"
		_ = types.Sum(c1, c2)
	})
}
