// Package task defines completed daily task records and their
// aggregated daily status.
package task

import (
	"time"

	"github.com/xraph/walletledger/types"
)

// DateLayout is the day-granularity stamp stored on task records, used
// for daily-limit queries.
const DateLayout = "2006-01-02"

// TypeDailyClick is the task type recorded for click batches.
const TypeDailyClick = "Daily Click"

// Day formats a time as the calendar-day stamp stored on task records.
func Day(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Record is one completed daily task batch.
type Record struct {
	types.Entity
	ID          string        `json:"id"`
	AccountUID  string        `json:"account_uid"`
	AccountID   string        `json:"account_id"`
	AccountName string        `json:"account_name"`
	Type        string        `json:"type"`
	Clicks      int           `json:"clicks"`
	TotalClicks int           `json:"total_clicks"`
	Reward      types.Credits `json:"reward"`
	Package     string        `json:"package,omitempty"`
	Fund        types.Credits `json:"fund"`
	Date        string        `json:"date"`
}

// DailyStatus is the pure aggregation of an account's task records for
// one calendar day. It is re-computable at any time from the record set.
type DailyStatus struct {
	TasksCompleted  int           `json:"tasks_completed"`
	ClicksCompleted int           `json:"clicks_completed"`
	TotalReward     types.Credits `json:"total_reward"`
	Tasks           []*Record     `json:"tasks"`
}
