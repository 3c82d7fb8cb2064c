package types

import "testing"

func TestCreditsArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Credits
		expected Credits
	}{
		{"Add", func() Credits { return Credits(100).Add(Credits(200)) }, 300},
		{"Subtract", func() Credits { return Credits(500).Subtract(Credits(200)) }, 300},
		{"Negate", func() Credits { return Credits(100).Negate() }, -100},
		{"Abs positive", func() Credits { return Credits(100).Abs() }, 100},
		{"Abs negative", func() Credits { return Credits(-100).Abs() }, 100},
		{"Percent", func() Credits { return Credits(200).Percent(10) }, 20},
		{"Percent rounds down", func() Credits { return Credits(99).Percent(10) }, 9},
		{"Complex", func() Credits {
			return Credits(1000).Add(Credits(500)).Subtract(Credits(250))
		}, 1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCreditsComparison(t *testing.T) {
	if !Credits(0).IsZero() {
		t.Error("0 should be zero")
	}
	if !Credits(1).IsPositive() {
		t.Error("1 should be positive")
	}
	if !Credits(-1).IsNegative() {
		t.Error("-1 should be negative")
	}
	if !Credits(10).LessThan(Credits(20)) {
		t.Error("10 < 20")
	}
	if !Credits(20).GreaterThan(Credits(10)) {
		t.Error("20 > 10")
	}
}

func TestCreditsString(t *testing.T) {
	tests := []struct {
		amount Credits
		want   string
	}{
		{50, "50 CR"},
		{0, "0 CR"},
		{-25, "-25 CR"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("String(%d): got %q, want %q", tt.amount.Int64(), got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum(Credits(10), Credits(20), Credits(30)); got != 60 {
		t.Errorf("got %v, want 60", got)
	}
	if got := Sum(); got != 0 {
		t.Errorf("empty sum: got %v, want 0", got)
	}
}
