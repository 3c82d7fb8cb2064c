// Package postgres implements store.Store on PostgreSQL via pgx. It is
// the backend for multi-node deployments where SQLite's single-writer
// model does not hold.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xraph/walletledger"
	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	walletstore "github.com/xraph/walletledger/store"
	"github.com/xraph/walletledger/task"
	"github.com/xraph/walletledger/types"
)

// compile-time interface check
var _ walletstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-connected pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to the given PostgreSQL DSN.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("walletledger/postgres: connect: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Pool returns the underlying connection pool for direct access.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Migrate creates the required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", walletledger.ErrMigrationFailed, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ==================== Account reads ====================

const accountColumns = `uid, public_id, name, email, mobile, role, status, balance, fund,
    package, kyc, sponsor_id, referrals, total_income, today_income, referral_income,
    total_tasks, rank, last_login, version, created_at, updated_at`

func scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		a        account.Account
		role     string
		status   string
		kycState string
		balance  int64
		fund     int64
		totalInc int64
		todayInc int64
		refInc   int64
	)
	err := row.Scan(&a.UID, &a.PublicID, &a.Name, &a.Email, &a.Mobile, &role, &status,
		&balance, &fund, &a.Package, &kycState, &a.SponsorID, &a.Referrals,
		&totalInc, &todayInc, &refInc, &a.TotalTasks, &a.Rank, &a.LastLogin,
		&a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Role = account.Role(role)
	a.Status = account.Status(status)
	a.KYC = account.KYCState(kycState)
	a.Balance = types.Credits(balance)
	a.Fund = types.Credits(fund)
	a.TotalIncome = types.Credits(totalInc)
	a.TodayIncome = types.Credits(todayInc)
	a.ReferralIncome = types.Credits(refInc)
	return &a, nil
}

func (s *Store) GetAccount(ctx context.Context, uid string) (*account.Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE uid = $1`, uid))
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) GetAccountByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE public_id = $1`, publicID))
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE lower(email) = lower($1)`, email))
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) ListAccounts(ctx context.Context, opts account.ListOpts) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM wallet_accounts WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.Role != "" {
		args = append(args, string(opts.Role))
		query += fmt.Sprintf(` AND role = $%d`, len(args))
	}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*account.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// ==================== Journal reads ====================

const entryColumns = `id, account_uid, account_id, account_name, category, amount, status,
    balance_after, description, fee, net_amount, method, account_details, deposit_id,
    withdrawal_id, reference_id, settlement_ref, package, referred_user, created_at, updated_at`

func scanEntry(row pgx.Row) (*journal.Entry, error) {
	var (
		e            journal.Entry
		category     string
		amount       int64
		balanceAfter int64
		fee          int64
		netAmount    int64
	)
	err := row.Scan(&e.ID, &e.AccountUID, &e.AccountID, &e.AccountName, &category,
		&amount, &e.Status, &balanceAfter, &e.Description, &fee, &netAmount,
		&e.Method, &e.AccountDetails, &e.DepositID, &e.WithdrawalID,
		&e.ReferenceID, &e.SettlementRef, &e.Package, &e.ReferredUser,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = journal.Category(category)
	e.Amount = types.Credits(amount)
	e.BalanceAfter = types.Credits(balanceAfter)
	e.Fee = types.Credits(fee)
	e.NetAmount = types.Credits(netAmount)
	return &e, nil
}

func (s *Store) GetEntry(ctx context.Context, entryID string) (*journal.Entry, error) {
	e, err := scanEntry(s.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM wallet_entries WHERE id = $1`, entryID))
	if isNoRows(err) {
		return nil, walletledger.ErrEntryNotFound
	}
	return e, err
}

func (s *Store) ListEntries(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM wallet_entries WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		args = append(args, opts.AccountUID)
		query += fmt.Sprintf(` AND account_uid = $%d`, len(args))
	}
	if opts.Category != "" {
		args = append(args, string(opts.Category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	query += ` ORDER BY seq DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*journal.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ==================== Deposit reads ====================

const depositColumns = `id, account_uid, account_id, account_name, amount, method,
    reference_id, status, approved_by, approved_at, created_at, updated_at`

func scanDeposit(row pgx.Row) (*request.Deposit, error) {
	var (
		d      request.Deposit
		amount int64
		status string
	)
	err := row.Scan(&d.ID, &d.AccountUID, &d.AccountID, &d.AccountName, &amount,
		&d.Method, &d.ReferenceID, &status, &d.ApprovedBy, &d.ApprovedAt,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Amount = types.Credits(amount)
	d.Status = request.Status(status)
	return &d, nil
}

func (s *Store) GetDeposit(ctx context.Context, depositID string) (*request.Deposit, error) {
	d, err := scanDeposit(s.pool.QueryRow(ctx,
		`SELECT `+depositColumns+` FROM wallet_deposits WHERE id = $1`, depositID))
	if isNoRows(err) {
		return nil, walletledger.ErrDepositNotFound
	}
	return d, err
}

func (s *Store) ListDeposits(ctx context.Context, opts request.ListOpts) ([]*request.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM wallet_deposits WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		args = append(args, opts.AccountUID)
		query += fmt.Sprintf(` AND account_uid = $%d`, len(args))
	}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*request.Deposit, 0)
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// ==================== Withdrawal reads ====================

const withdrawalColumns = `id, account_uid, account_id, account_name, amount, fee_percent,
    method, account_details, status, approved_by, approved_at, settlement_ref, created_at, updated_at`

func scanWithdrawal(row pgx.Row) (*request.Withdrawal, error) {
	var (
		w      request.Withdrawal
		amount int64
		status string
	)
	err := row.Scan(&w.ID, &w.AccountUID, &w.AccountID, &w.AccountName, &amount,
		&w.FeePercent, &w.Method, &w.AccountDetails, &status, &w.ApprovedBy,
		&w.ApprovedAt, &w.SettlementRef, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	w.Amount = types.Credits(amount)
	w.Status = request.Status(status)
	return &w, nil
}

func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*request.Withdrawal, error) {
	w, err := scanWithdrawal(s.pool.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM wallet_withdrawals WHERE id = $1`, withdrawalID))
	if isNoRows(err) {
		return nil, walletledger.ErrWithdrawalNotFound
	}
	return w, err
}

func (s *Store) ListWithdrawals(ctx context.Context, opts request.ListOpts) ([]*request.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM wallet_withdrawals WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		args = append(args, opts.AccountUID)
		query += fmt.Sprintf(` AND account_uid = $%d`, len(args))
	}
	if opts.Status != "" {
		args = append(args, string(opts.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*request.Withdrawal, 0)
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// ==================== Activation reads ====================

const activationColumns = `id, account_uid, account_id, account_name, package, amount,
    daily_income, status, valid_till, created_at, updated_at`

func scanActivation(row pgx.Row) (*activation.Record, error) {
	var (
		r           activation.Record
		amount      int64
		dailyIncome int64
		status      string
	)
	err := row.Scan(&r.ID, &r.AccountUID, &r.AccountID, &r.AccountName, &r.Package,
		&amount, &dailyIncome, &status, &r.ValidTill, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Amount = types.Credits(amount)
	r.DailyIncome = types.Credits(dailyIncome)
	r.Status = activation.Status(status)
	return &r, nil
}

func (s *Store) GetActivation(ctx context.Context, activationID string) (*activation.Record, error) {
	r, err := scanActivation(s.pool.QueryRow(ctx,
		`SELECT `+activationColumns+` FROM wallet_activations WHERE id = $1`, activationID))
	if isNoRows(err) {
		return nil, walletledger.ErrActivationNotFound
	}
	return r, err
}

func (s *Store) ListActivations(ctx context.Context, accountUID string, status activation.Status) ([]*activation.Record, error) {
	query := `SELECT ` + activationColumns + ` FROM wallet_activations WHERE account_uid = $1`
	args := []any{accountUID}
	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*activation.Record, 0)
	for rows.Next() {
		r, err := scanActivation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) ListExpiredActivations(ctx context.Context, before time.Time, limit int) ([]*activation.Record, error) {
	query := `SELECT ` + activationColumns + ` FROM wallet_activations
        WHERE status = $1 AND valid_till < $2 ORDER BY valid_till ASC`
	args := []any{string(activation.StatusActive), before}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*activation.Record, 0)
	for rows.Next() {
		r, err := scanActivation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ==================== Task reads ====================

const taskColumns = `id, account_uid, account_id, account_name, type, clicks, total_clicks,
    reward, package, fund, date, created_at, updated_at`

func scanTask(row pgx.Row) (*task.Record, error) {
	var (
		r      task.Record
		reward int64
		fund   int64
	)
	err := row.Scan(&r.ID, &r.AccountUID, &r.AccountID, &r.AccountName, &r.Type,
		&r.Clicks, &r.TotalClicks, &reward, &r.Package, &fund, &r.Date,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Reward = types.Credits(reward)
	r.Fund = types.Credits(fund)
	return &r, nil
}

func (s *Store) ListTasks(ctx context.Context, accountUID string, date string) ([]*task.Record, error) {
	query := `SELECT ` + taskColumns + ` FROM wallet_tasks WHERE account_uid = $1`
	args := []any{accountUID}
	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(` AND date = $%d`, len(args))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*task.Record, 0)
	for rows.Next() {
		r, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ==================== Referral reads ====================

const referralColumns = `id, sponsor_id, referred_id, referred_name, package, commission,
    amount, status, created_at, updated_at`

func scanReferralIncome(row pgx.Row) (*referral.IncomeRecord, error) {
	var (
		r      referral.IncomeRecord
		amount int64
	)
	err := row.Scan(&r.ID, &r.SponsorID, &r.ReferredID, &r.ReferredName, &r.Package,
		&r.Commission, &amount, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Amount = types.Credits(amount)
	return &r, nil
}

func (s *Store) ListReferralIncomes(ctx context.Context, sponsorID string) ([]*referral.IncomeRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+referralColumns+` FROM wallet_referral_incomes
         WHERE sponsor_id = $1 ORDER BY created_at DESC`, sponsorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*referral.IncomeRecord, 0)
	for rows.Next() {
		r, err := scanReferralIncome(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ==================== KYC reads ====================

const kycColumns = `id, account_uid, account_id, document_type, document_number, status,
    created_at, updated_at`

func scanKYC(row pgx.Row) (*kyc.Application, error) {
	var (
		a      kyc.Application
		status string
	)
	err := row.Scan(&a.ID, &a.AccountUID, &a.AccountID, &a.DocumentType,
		&a.DocumentNumber, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = kyc.Status(status)
	return &a, nil
}

func (s *Store) GetKYCApplication(ctx context.Context, applicationID string) (*kyc.Application, error) {
	a, err := scanKYC(s.pool.QueryRow(ctx,
		`SELECT `+kycColumns+` FROM wallet_kyc_applications WHERE id = $1`, applicationID))
	if isNoRows(err) {
		return nil, walletledger.ErrKYCNotFound
	}
	return a, err
}

func (s *Store) ListKYCApplications(ctx context.Context, status kyc.Status) ([]*kyc.Application, error) {
	query := `SELECT ` + kycColumns + ` FROM wallet_kyc_applications WHERE 1=1`
	args := make([]any, 0, 1)
	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*kyc.Application, 0)
	for rows.Next() {
		a, err := scanKYC(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// ==================== Counter ====================

func (s *Store) NextAccountSeq(ctx context.Context) (int64, error) {
	var value int64
	err := s.pool.QueryRow(ctx, `
        INSERT INTO wallet_counters (name, value) VALUES ('account_seq', 1)
        ON CONFLICT (name) DO UPDATE SET value = wallet_counters.value + 1
        RETURNING value`).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", walletledger.ErrCounterUnavailable, err)
	}
	return value, nil
}

// ==================== Apply ====================

// Apply commits the given writes inside a single transaction.
func (s *Store) Apply(ctx context.Context, writes ...walletstore.Write) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", walletledger.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	for _, w := range writes {
		if err := applyWrite(ctx, tx, w); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", walletledger.ErrTransactionFailed, err)
	}
	return nil
}

func applyWrite(ctx context.Context, tx pgx.Tx, w walletstore.Write) error {
	switch w := w.(type) {
	case walletstore.PutAccount:
		a := w.Account
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_accounts (`+accountColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
			a.UID, a.PublicID, a.Name, a.Email, a.Mobile, string(a.Role), string(a.Status),
			a.Balance.Int64(), a.Fund.Int64(), a.Package, string(a.KYC), a.SponsorID,
			a.Referrals, a.TotalIncome.Int64(), a.TodayIncome.Int64(), a.ReferralIncome.Int64(),
			a.TotalTasks, a.Rank, a.LastLogin, a.Version, a.CreatedAt, a.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateAccount:
		a := w.Account
		res, err := tx.Exec(ctx, `
            UPDATE wallet_accounts SET
                public_id = $1, name = $2, email = $3, mobile = $4, role = $5, status = $6,
                balance = $7, fund = $8, package = $9, kyc = $10, sponsor_id = $11,
                referrals = $12, total_income = $13, today_income = $14, referral_income = $15,
                total_tasks = $16, rank = $17, last_login = $18, version = version + 1,
                updated_at = now()
            WHERE uid = $19 AND version = $20`,
			a.PublicID, a.Name, a.Email, a.Mobile, string(a.Role), string(a.Status),
			a.Balance.Int64(), a.Fund.Int64(), a.Package, string(a.KYC), a.SponsorID,
			a.Referrals, a.TotalIncome.Int64(), a.TodayIncome.Int64(), a.ReferralIncome.Int64(),
			a.TotalTasks, a.Rank, a.LastLogin,
			a.UID, w.ExpectedVersion)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			var exists int
			err := tx.QueryRow(ctx,
				`SELECT 1 FROM wallet_accounts WHERE uid = $1`, a.UID).Scan(&exists)
			if isNoRows(err) {
				return walletledger.ErrAccountNotFound
			}
			if err != nil {
				return err
			}
			return walletledger.ErrVersionConflict
		}
		return nil
	case walletstore.AppendEntry:
		e := w.Entry
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_entries (`+entryColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			e.ID, e.AccountUID, e.AccountID, e.AccountName, string(e.Category),
			e.Amount.Int64(), e.Status, e.BalanceAfter.Int64(), e.Description,
			e.Fee.Int64(), e.NetAmount.Int64(), e.Method, e.AccountDetails,
			e.DepositID, e.WithdrawalID, e.ReferenceID, e.SettlementRef,
			e.Package, e.ReferredUser, e.CreatedAt, e.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutDeposit:
		d := w.Deposit
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_deposits (`+depositColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			d.ID, d.AccountUID, d.AccountID, d.AccountName, d.Amount.Int64(),
			d.Method, d.ReferenceID, string(d.Status), d.ApprovedBy, d.ApprovedAt,
			d.CreatedAt, d.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateDeposit:
		d := w.Deposit
		res, err := tx.Exec(ctx, `
            UPDATE wallet_deposits SET
                amount = $1, method = $2, reference_id = $3, status = $4,
                approved_by = $5, approved_at = $6, updated_at = now()
            WHERE id = $7`,
			d.Amount.Int64(), d.Method, d.ReferenceID, string(d.Status),
			d.ApprovedBy, d.ApprovedAt, d.ID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return walletledger.ErrDepositNotFound
		}
		return nil
	case walletstore.PutWithdrawal:
		wd := w.Withdrawal
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_withdrawals (`+withdrawalColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			wd.ID, wd.AccountUID, wd.AccountID, wd.AccountName, wd.Amount.Int64(),
			wd.FeePercent, wd.Method, wd.AccountDetails, string(wd.Status), wd.ApprovedBy,
			wd.ApprovedAt, wd.SettlementRef, wd.CreatedAt, wd.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateWithdrawal:
		wd := w.Withdrawal
		res, err := tx.Exec(ctx, `
            UPDATE wallet_withdrawals SET
                amount = $1, fee_percent = $2, method = $3, account_details = $4,
                status = $5, approved_by = $6, approved_at = $7, settlement_ref = $8,
                updated_at = now()
            WHERE id = $9`,
			wd.Amount.Int64(), wd.FeePercent, wd.Method, wd.AccountDetails,
			string(wd.Status), wd.ApprovedBy, wd.ApprovedAt, wd.SettlementRef, wd.ID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return walletledger.ErrWithdrawalNotFound
		}
		return nil
	case walletstore.PutActivation:
		r := w.Record
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_activations (`+activationColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			r.ID, r.AccountUID, r.AccountID, r.AccountName, r.Package,
			r.Amount.Int64(), r.DailyIncome.Int64(), string(r.Status),
			r.ValidTill, r.CreatedAt, r.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateActivation:
		r := w.Record
		res, err := tx.Exec(ctx, `
            UPDATE wallet_activations SET
                package = $1, amount = $2, daily_income = $3, status = $4,
                valid_till = $5, updated_at = now()
            WHERE id = $6`,
			r.Package, r.Amount.Int64(), r.DailyIncome.Int64(), string(r.Status),
			r.ValidTill, r.ID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return walletledger.ErrActivationNotFound
		}
		return nil
	case walletstore.PutTask:
		r := w.Record
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_tasks (`+taskColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			r.ID, r.AccountUID, r.AccountID, r.AccountName, r.Type, r.Clicks,
			r.TotalClicks, r.Reward.Int64(), r.Package, r.Fund.Int64(), r.Date,
			r.CreatedAt, r.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutReferralIncome:
		r := w.Record
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_referral_incomes (`+referralColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, r.SponsorID, r.ReferredID, r.ReferredName, r.Package,
			r.Commission, r.Amount.Int64(), r.Status, r.CreatedAt, r.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.PutKYCApplication:
		a := w.Application
		_, err := tx.Exec(ctx, `
            INSERT INTO wallet_kyc_applications (`+kycColumns+`)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, a.AccountUID, a.AccountID, a.DocumentType, a.DocumentNumber,
			string(a.Status), a.CreatedAt, a.UpdatedAt)
		if isUniqueViolation(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	case walletstore.UpdateKYCApplication:
		a := w.Application
		res, err := tx.Exec(ctx, `
            UPDATE wallet_kyc_applications SET
                document_type = $1, document_number = $2, status = $3, updated_at = now()
            WHERE id = $4`,
			a.DocumentType, a.DocumentNumber, string(a.Status), a.ID)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return walletledger.ErrKYCNotFound
		}
		return nil
	default:
		return walletledger.ErrInvalidInput
	}
}

// ==================== helpers ====================

func appendPaging(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
		if offset > 0 {
			args = append(args, offset)
			query += fmt.Sprintf(` OFFSET $%d`, len(args))
		}
	}
	return query, args
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
