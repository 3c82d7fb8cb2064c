// Package types provides common types used across the wallet ledger.
package types

import "strconv"

// Credits represents a platform credit amount. All arithmetic is
// integer-only — no floating point.
//
// Credits are the single money-like unit of the platform: account
// balances, locked funds, income counters, and journal amounts are all
// expressed in whole credits.
type Credits int64

// Zero is the zero credit amount.
const Zero Credits = 0

// Arithmetic operations

// Add adds two credit amounts.
func (c Credits) Add(other Credits) Credits { return c + other }

// Subtract subtracts another credit amount.
func (c Credits) Subtract(other Credits) Credits { return c - other }

// Percent returns p percent of the amount. Uses integer division.
func (c Credits) Percent(p int64) Credits {
	return Credits(int64(c) * p / 100)
}

// Negate returns the negative of the credit amount.
func (c Credits) Negate() Credits { return -c }

// Abs returns the absolute value.
func (c Credits) Abs() Credits {
	if c < 0 {
		return -c
	}
	return c
}

// Comparison methods

// IsZero returns true if the amount is zero.
func (c Credits) IsZero() bool { return c == 0 }

// IsPositive returns true if the amount is greater than zero.
func (c Credits) IsPositive() bool { return c > 0 }

// IsNegative returns true if the amount is less than zero.
func (c Credits) IsNegative() bool { return c < 0 }

// LessThan returns true if this amount is less than other.
func (c Credits) LessThan(other Credits) bool { return c < other }

// GreaterThan returns true if this amount is greater than other.
func (c Credits) GreaterThan(other Credits) bool { return c > other }

// Int64 returns the amount as a plain int64.
func (c Credits) Int64() int64 { return int64(c) }

// String returns the amount formatted with the credit suffix, e.g. "50 CR".
func (c Credits) String() string {
	return strconv.FormatInt(int64(c), 10) + " CR"
}

// Sum calculates the sum of multiple credit amounts.
func Sum(values ...Credits) Credits {
	var total Credits
	for _, v := range values {
		total += v
	}
	return total
}
