package walletledger

import (
	"context"
	"fmt"

	"github.com/xraph/walletledger/id"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/task"
	"github.com/xraph/walletledger/types"
)

// CompleteTaskInput carries one finished task batch.
type CompleteTaskInput struct {
	Type        string
	Clicks      int
	TotalClicks int
	Reward      types.Credits
}

// CompleteTask credits the reward and commits the task record with its
// journal entry. The account must hold an unexpired activation; task
// income only accrues against an active package.
func (l *Ledger) CompleteTask(ctx context.Context, accountUID string, in CompleteTaskInput) (*task.Record, error) {
	if !in.Reward.IsPositive() {
		return nil, ValidationError{Field: "reward", Message: "must be positive"}
	}
	taskType := in.Type
	if taskType == "" {
		taskType = task.TypeDailyClick
	}

	active, err := l.HasActivePackage(ctx, accountUID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrNoActivePackage
	}

	unlock := l.locks.Lock("acct:" + accountUID)
	defer unlock()

	for attempt := 0; attempt < applyAttempts; attempt++ {
		acct, err := l.store.GetAccount(ctx, accountUID)
		if err != nil {
			return nil, err
		}

		version := acct.Version
		acct.Balance = acct.Balance.Add(in.Reward)
		acct.TotalIncome = acct.TotalIncome.Add(in.Reward)
		acct.TodayIncome = acct.TodayIncome.Add(in.Reward)
		acct.TotalTasks++
		acct.Touch()

		rec := &task.Record{
			Entity:      types.NewEntity(),
			ID:          id.New(id.PrefixTask),
			AccountUID:  acct.UID,
			AccountID:   acct.PublicID,
			AccountName: acct.Name,
			Type:        taskType,
			Clicks:      in.Clicks,
			TotalClicks: in.TotalClicks,
			Reward:      in.Reward,
			Package:     acct.Package,
			Fund:        acct.Fund,
			Date:        task.Day(l.now()),
		}

		entry := l.newEntry(id.PrefixTransaction, acct, journal.CategoryTaskIncome, in.Reward, acct.Balance)
		entry.Description = fmt.Sprintf("%s reward", taskType)
		entry.Package = acct.Package

		err = l.store.Apply(ctx,
			store.UpdateAccount{Account: acct, ExpectedVersion: version},
			store.PutTask{Record: rec},
			store.AppendEntry{Entry: entry},
		)
		if err == nil {
			l.plugins.EmitTaskCompleted(ctx, rec)
			l.logger.Info("task completed",
				"account", acct.PublicID,
				"type", taskType,
				"reward", in.Reward.Int64(),
			)
			return rec, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
	}

	return nil, ErrVersionConflict
}

// DailyTaskStatus aggregates the account's task records for one
// calendar day. An empty date means today.
func (l *Ledger) DailyTaskStatus(ctx context.Context, accountUID, date string) (*task.DailyStatus, error) {
	if date == "" {
		date = task.Day(l.now())
	}

	records, err := l.store.ListTasks(ctx, accountUID, date)
	if err != nil {
		return nil, err
	}

	status := &task.DailyStatus{Tasks: records}
	for _, r := range records {
		status.TasksCompleted++
		status.ClicksCompleted += r.Clicks
		status.TotalReward = status.TotalReward.Add(r.Reward)
	}
	return status, nil
}
