package id_test

import (
	"strings"
	"testing"
	"time"

	"github.com/xraph/walletledger/id"
)

func TestNewPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		prefix id.Prefix
	}{
		{"Transaction", id.PrefixTransaction},
		{"Deposit", id.PrefixDeposit},
		{"Withdrawal", id.PrefixWithdrawal},
		{"Activation", id.PrefixActivation},
		{"Task", id.PrefixTask},
		{"Referral", id.PrefixReferral},
		{"ReferralIncome", id.PrefixReferralIncome},
		{"KYC", id.PrefixKYC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := id.New(tt.prefix)
			if !strings.HasPrefix(got, string(tt.prefix)) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
			if len(got) != len(tt.prefix)+10 {
				t.Errorf("expected 10-digit suffix, got %q", got)
			}
			if !id.Matches(got, tt.prefix) {
				t.Errorf("Matches(%q, %q) = false", got, tt.prefix)
			}
		})
	}
}

func TestNewUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := id.New(id.PrefixTransaction)
		if seen[got] {
			t.Fatalf("duplicate identifier %q after %d generations", got, i)
		}
		seen[got] = true
	}
}

func TestMatchesRejectsWrongPrefix(t *testing.T) {
	got := id.New(id.PrefixDeposit)
	if id.Matches(got, id.PrefixWithdrawal) {
		t.Errorf("Matches(%q, WDR) should be false", got)
	}
	if id.Matches("TXNnotdigits", id.PrefixTransaction) {
		t.Error("non-digit suffix should not match")
	}
}

func TestFormatAccountSeq(t *testing.T) {
	tests := []struct {
		seq  int64
		want string
	}{
		{1, "USER0001"},
		{42, "USER0042"},
		{9999, "USER9999"},
		{10000, "USER10000"},
	}

	for _, tt := range tests {
		if got := id.FormatAccountSeq(tt.seq); got != tt.want {
			t.Errorf("FormatAccountSeq(%d): got %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestFallbackAccountID(t *testing.T) {
	got := id.FallbackAccountID(time.Now())
	if !strings.HasPrefix(got, "USER") {
		t.Fatalf("expected USER prefix, got %q", got)
	}
	if len(got) != len("USER")+8 {
		t.Errorf("expected 8-digit suffix, got %q", got)
	}
	if !id.IsFallbackAccountID(got) {
		t.Errorf("IsFallbackAccountID(%q) = false", got)
	}
	if id.IsFallbackAccountID("USER0001") {
		t.Error("sequential id misdetected as fallback")
	}
}

func TestIsAccountID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"USER0001", true},
		{"USER10000", true},
		{"USER12345678", true},
		{"USER01", false},
		{"CAPITAL01", false},
		{"USERabcd", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := id.IsAccountID(tt.in); got != tt.want {
			t.Errorf("IsAccountID(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
