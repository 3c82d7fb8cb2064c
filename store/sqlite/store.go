// Package sqlite implements store.Store on an embedded SQLite
// database. It is the default durable backend for single-node
// deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

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

func credits(v int64) types.Credits { return types.Credits(v) }

// compile-time interface check
var _ walletstore.Store = (*Store)(nil)

const timeLayout = time.RFC3339Nano

// Store implements store.Store using SQLite via database/sql.
type Store struct {
	db *sql.DB
}

// New wraps an already-opened database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) a SQLite database at the given path. Writes
// are serialized onto a single connection, which SQLite requires
// anyway.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("walletledger/sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// DB returns the underlying database handle for direct access.
func (s *Store) DB() *sql.DB { return s.db }

// Migrate creates the required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", walletledger.ErrMigrationFailed, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Account reads ====================

const accountColumns = `uid, public_id, name, email, mobile, role, status, balance, fund,
    package, kyc, sponsor_id, referrals, total_income, today_income, referral_income,
    total_tasks, rank, last_login, version, created_at, updated_at`

func (s *Store) GetAccount(ctx context.Context, uid string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE uid = ?`, uid)
	a, err := scanAccount(row)
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) GetAccountByPublicID(ctx context.Context, publicID string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE public_id = ?`, publicID)
	a, err := scanAccount(row)
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM wallet_accounts WHERE email = ? COLLATE NOCASE`, email)
	a, err := scanAccount(row)
	if isNoRows(err) {
		return nil, walletledger.ErrAccountNotFound
	}
	return a, err
}

func (s *Store) ListAccounts(ctx context.Context, opts account.ListOpts) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM wallet_accounts WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.Role != "" {
		query += ` AND role = ?`
		args = append(args, string(opts.Role))
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) GetEntry(ctx context.Context, entryID string) (*journal.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM wallet_entries WHERE id = ?`, entryID)
	e, err := scanEntry(row)
	if isNoRows(err) {
		return nil, walletledger.ErrEntryNotFound
	}
	return e, err
}

func (s *Store) ListEntries(ctx context.Context, opts journal.ListOpts) ([]*journal.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM wallet_entries WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		query += ` AND account_uid = ?`
		args = append(args, opts.AccountUID)
	}
	if opts.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(opts.Category))
	}
	query += ` ORDER BY rowid DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) GetDeposit(ctx context.Context, depositID string) (*request.Deposit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+depositColumns+` FROM wallet_deposits WHERE id = ?`, depositID)
	d, err := scanDeposit(row)
	if isNoRows(err) {
		return nil, walletledger.ErrDepositNotFound
	}
	return d, err
}

func (s *Store) ListDeposits(ctx context.Context, opts request.ListOpts) ([]*request.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM wallet_deposits WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		query += ` AND account_uid = ?`
		args = append(args, opts.AccountUID)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*request.Withdrawal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+withdrawalColumns+` FROM wallet_withdrawals WHERE id = ?`, withdrawalID)
	w, err := scanWithdrawal(row)
	if isNoRows(err) {
		return nil, walletledger.ErrWithdrawalNotFound
	}
	return w, err
}

func (s *Store) ListWithdrawals(ctx context.Context, opts request.ListOpts) ([]*request.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM wallet_withdrawals WHERE 1=1`
	args := make([]any, 0, 4)
	if opts.AccountUID != "" {
		query += ` AND account_uid = ?`
		args = append(args, opts.AccountUID)
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY created_at DESC`
	query, args = appendPaging(query, args, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) GetActivation(ctx context.Context, activationID string) (*activation.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activationColumns+` FROM wallet_activations WHERE id = ?`, activationID)
	r, err := scanActivation(row)
	if isNoRows(err) {
		return nil, walletledger.ErrActivationNotFound
	}
	return r, err
}

func (s *Store) ListActivations(ctx context.Context, accountUID string, status activation.Status) ([]*activation.Record, error) {
	query := `SELECT ` + activationColumns + ` FROM wallet_activations WHERE account_uid = ?`
	args := []any{accountUID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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
        WHERE status = ? AND valid_till < ? ORDER BY valid_till ASC`
	args := []any{string(activation.StatusActive), before.UTC().Format(timeLayout)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) ListTasks(ctx context.Context, accountUID string, date string) ([]*task.Record, error) {
	query := `SELECT ` + taskColumns + ` FROM wallet_tasks WHERE account_uid = ?`
	args := []any{accountUID}
	if date != "" {
		query += ` AND date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Store) ListReferralIncomes(ctx context.Context, sponsorID string) ([]*referral.IncomeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+referralColumns+` FROM wallet_referral_incomes
         WHERE sponsor_id = ? ORDER BY created_at DESC`, sponsorID)
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

func (s *Store) GetKYCApplication(ctx context.Context, applicationID string) (*kyc.Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+kycColumns+` FROM wallet_kyc_applications WHERE id = ?`, applicationID)
	a, err := scanKYC(row)
	if isNoRows(err) {
		return nil, walletledger.ErrKYCNotFound
	}
	return a, err
}

func (s *Store) ListKYCApplications(ctx context.Context, status kyc.Status) ([]*kyc.Application, error) {
	query := `SELECT ` + kycColumns + ` FROM wallet_kyc_applications WHERE 1=1`
	args := make([]any, 0, 1)
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO wallet_counters (name, value) VALUES ('account_seq', 1)
        ON CONFLICT (name) DO UPDATE SET value = value + 1
        RETURNING value`).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", walletledger.ErrCounterUnavailable, err)
	}
	return value, nil
}

// ==================== Apply ====================

// Apply commits the given writes inside a single transaction.
func (s *Store) Apply(ctx context.Context, writes ...walletstore.Write) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", walletledger.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	for _, w := range writes {
		if err := applyWrite(ctx, tx, w); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", walletledger.ErrTransactionFailed, err)
	}
	return nil
}

func applyWrite(ctx context.Context, tx *sql.Tx, w walletstore.Write) error {
	switch w := w.(type) {
	case walletstore.PutAccount:
		return insertAccount(ctx, tx, w.Account)
	case walletstore.UpdateAccount:
		return updateAccount(ctx, tx, w.Account, w.ExpectedVersion)
	case walletstore.AppendEntry:
		return insertEntry(ctx, tx, w.Entry)
	case walletstore.PutDeposit:
		return upsertDeposit(ctx, tx, w.Deposit, true)
	case walletstore.UpdateDeposit:
		return upsertDeposit(ctx, tx, w.Deposit, false)
	case walletstore.PutWithdrawal:
		return upsertWithdrawal(ctx, tx, w.Withdrawal, true)
	case walletstore.UpdateWithdrawal:
		return upsertWithdrawal(ctx, tx, w.Withdrawal, false)
	case walletstore.PutActivation:
		return upsertActivation(ctx, tx, w.Record, true)
	case walletstore.UpdateActivation:
		return upsertActivation(ctx, tx, w.Record, false)
	case walletstore.PutTask:
		return insertTask(ctx, tx, w.Record)
	case walletstore.PutReferralIncome:
		return insertReferralIncome(ctx, tx, w.Record)
	case walletstore.PutKYCApplication:
		return upsertKYC(ctx, tx, w.Application, true)
	case walletstore.UpdateKYCApplication:
		return upsertKYC(ctx, tx, w.Application, false)
	default:
		return walletledger.ErrInvalidInput
	}
}

func insertAccount(ctx context.Context, tx *sql.Tx, a *account.Account) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO wallet_accounts (`+accountColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UID, a.PublicID, a.Name, a.Email, a.Mobile, string(a.Role), string(a.Status),
		a.Balance.Int64(), a.Fund.Int64(), a.Package, string(a.KYC), a.SponsorID,
		a.Referrals, a.TotalIncome.Int64(), a.TodayIncome.Int64(), a.ReferralIncome.Int64(),
		a.TotalTasks, a.Rank, fmtNullTime(a.LastLogin), a.Version,
		fmtTime(a.CreatedAt), fmtTime(a.UpdatedAt))
	if isConstraint(err) {
		return walletledger.ErrAlreadyExists
	}
	return err
}

func updateAccount(ctx context.Context, tx *sql.Tx, a *account.Account, expected int64) error {
	res, err := tx.ExecContext(ctx, `
        UPDATE wallet_accounts SET
            public_id = ?, name = ?, email = ?, mobile = ?, role = ?, status = ?,
            balance = ?, fund = ?, package = ?, kyc = ?, sponsor_id = ?, referrals = ?,
            total_income = ?, today_income = ?, referral_income = ?, total_tasks = ?,
            rank = ?, last_login = ?, version = version + 1, updated_at = ?
        WHERE uid = ? AND version = ?`,
		a.PublicID, a.Name, a.Email, a.Mobile, string(a.Role), string(a.Status),
		a.Balance.Int64(), a.Fund.Int64(), a.Package, string(a.KYC), a.SponsorID, a.Referrals,
		a.TotalIncome.Int64(), a.TodayIncome.Int64(), a.ReferralIncome.Int64(), a.TotalTasks,
		a.Rank, fmtNullTime(a.LastLogin), fmtTime(time.Now()),
		a.UID, expected)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM wallet_accounts WHERE uid = ?`, a.UID).Scan(&exists)
		if isNoRows(err) {
			return walletledger.ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		return walletledger.ErrVersionConflict
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, e *journal.Entry) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO wallet_entries (`+entryColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.AccountUID, e.AccountID, e.AccountName, string(e.Category),
		e.Amount.Int64(), e.Status, e.BalanceAfter.Int64(), e.Description,
		e.Fee.Int64(), e.NetAmount.Int64(), e.Method, e.AccountDetails,
		e.DepositID, e.WithdrawalID, e.ReferenceID, e.SettlementRef,
		e.Package, e.ReferredUser, fmtTime(e.CreatedAt), fmtTime(e.UpdatedAt))
	if isConstraint(err) {
		return walletledger.ErrAlreadyExists
	}
	return err
}

func upsertDeposit(ctx context.Context, tx *sql.Tx, d *request.Deposit, insert bool) error {
	if insert {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO wallet_deposits (`+depositColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.AccountUID, d.AccountID, d.AccountName, d.Amount.Int64(),
			d.Method, d.ReferenceID, string(d.Status), d.ApprovedBy,
			fmtNullTime(d.ApprovedAt), fmtTime(d.CreatedAt), fmtTime(d.UpdatedAt))
		if isConstraint(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE wallet_deposits SET
            amount = ?, method = ?, reference_id = ?, status = ?, approved_by = ?,
            approved_at = ?, updated_at = ?
        WHERE id = ?`,
		d.Amount.Int64(), d.Method, d.ReferenceID, string(d.Status), d.ApprovedBy,
		fmtNullTime(d.ApprovedAt), fmtTime(time.Now()), d.ID)
	if err != nil {
		return err
	}
	return requireRow(res, walletledger.ErrDepositNotFound)
}

func upsertWithdrawal(ctx context.Context, tx *sql.Tx, w *request.Withdrawal, insert bool) error {
	if insert {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO wallet_withdrawals (`+withdrawalColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.AccountUID, w.AccountID, w.AccountName, w.Amount.Int64(),
			w.FeePercent, w.Method, w.AccountDetails, string(w.Status), w.ApprovedBy,
			fmtNullTime(w.ApprovedAt), w.SettlementRef, fmtTime(w.CreatedAt), fmtTime(w.UpdatedAt))
		if isConstraint(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE wallet_withdrawals SET
            amount = ?, fee_percent = ?, method = ?, account_details = ?, status = ?,
            approved_by = ?, approved_at = ?, settlement_ref = ?, updated_at = ?
        WHERE id = ?`,
		w.Amount.Int64(), w.FeePercent, w.Method, w.AccountDetails, string(w.Status),
		w.ApprovedBy, fmtNullTime(w.ApprovedAt), w.SettlementRef, fmtTime(time.Now()), w.ID)
	if err != nil {
		return err
	}
	return requireRow(res, walletledger.ErrWithdrawalNotFound)
}

func upsertActivation(ctx context.Context, tx *sql.Tx, r *activation.Record, insert bool) error {
	if insert {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO wallet_activations (`+activationColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.AccountUID, r.AccountID, r.AccountName, r.Package,
			r.Amount.Int64(), r.DailyIncome.Int64(), string(r.Status),
			fmtTime(r.ValidTill), fmtTime(r.CreatedAt), fmtTime(r.UpdatedAt))
		if isConstraint(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE wallet_activations SET
            package = ?, amount = ?, daily_income = ?, status = ?, valid_till = ?, updated_at = ?
        WHERE id = ?`,
		r.Package, r.Amount.Int64(), r.DailyIncome.Int64(), string(r.Status),
		fmtTime(r.ValidTill), fmtTime(time.Now()), r.ID)
	if err != nil {
		return err
	}
	return requireRow(res, walletledger.ErrActivationNotFound)
}

func insertTask(ctx context.Context, tx *sql.Tx, r *task.Record) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO wallet_tasks (`+taskColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AccountUID, r.AccountID, r.AccountName, r.Type, r.Clicks,
		r.TotalClicks, r.Reward.Int64(), r.Package, r.Fund.Int64(), r.Date,
		fmtTime(r.CreatedAt), fmtTime(r.UpdatedAt))
	if isConstraint(err) {
		return walletledger.ErrAlreadyExists
	}
	return err
}

func insertReferralIncome(ctx context.Context, tx *sql.Tx, r *referral.IncomeRecord) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO wallet_referral_incomes (`+referralColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SponsorID, r.ReferredID, r.ReferredName, r.Package,
		r.Commission, r.Amount.Int64(), r.Status,
		fmtTime(r.CreatedAt), fmtTime(r.UpdatedAt))
	if isConstraint(err) {
		return walletledger.ErrAlreadyExists
	}
	return err
}

func upsertKYC(ctx context.Context, tx *sql.Tx, a *kyc.Application, insert bool) error {
	if insert {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO wallet_kyc_applications (`+kycColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.AccountUID, a.AccountID, a.DocumentType, a.DocumentNumber,
			string(a.Status), fmtTime(a.CreatedAt), fmtTime(a.UpdatedAt))
		if isConstraint(err) {
			return walletledger.ErrAlreadyExists
		}
		return err
	}
	res, err := tx.ExecContext(ctx, `
        UPDATE wallet_kyc_applications SET
            document_type = ?, document_number = ?, status = ?, updated_at = ?
        WHERE id = ?`,
		a.DocumentType, a.DocumentNumber, string(a.Status), fmtTime(time.Now()), a.ID)
	if err != nil {
		return err
	}
	return requireRow(res, walletledger.ErrKYCNotFound)
}

// ==================== helpers ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*account.Account, error) {
	var (
		a         account.Account
		role      string
		status    string
		kycState  string
		balance   int64
		fund      int64
		totalInc  int64
		todayInc  int64
		refInc    int64
		lastLogin sql.NullString
		createdAt string
		updatedAt string
	)
	err := row.Scan(&a.UID, &a.PublicID, &a.Name, &a.Email, &a.Mobile, &role, &status,
		&balance, &fund, &a.Package, &kycState, &a.SponsorID, &a.Referrals,
		&totalInc, &todayInc, &refInc, &a.TotalTasks, &a.Rank, &lastLogin,
		&a.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	a.Role = account.Role(role)
	a.Status = account.Status(status)
	a.KYC = account.KYCState(kycState)
	a.Balance = credits(balance)
	a.Fund = credits(fund)
	a.TotalIncome = credits(totalInc)
	a.TodayIncome = credits(todayInc)
	a.ReferralIncome = credits(refInc)
	a.LastLogin = parseNullTime(lastLogin)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return &a, nil
}

func scanEntry(row rowScanner) (*journal.Entry, error) {
	var (
		e            journal.Entry
		category     string
		amount       int64
		balanceAfter int64
		fee          int64
		netAmount    int64
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(&e.ID, &e.AccountUID, &e.AccountID, &e.AccountName, &category,
		&amount, &e.Status, &balanceAfter, &e.Description, &fee, &netAmount,
		&e.Method, &e.AccountDetails, &e.DepositID, &e.WithdrawalID,
		&e.ReferenceID, &e.SettlementRef, &e.Package, &e.ReferredUser,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = journal.Category(category)
	e.Amount = credits(amount)
	e.BalanceAfter = credits(balanceAfter)
	e.Fee = credits(fee)
	e.NetAmount = credits(netAmount)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func scanDeposit(row rowScanner) (*request.Deposit, error) {
	var (
		d          request.Deposit
		amount     int64
		status     string
		approvedAt sql.NullString
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(&d.ID, &d.AccountUID, &d.AccountID, &d.AccountName, &amount,
		&d.Method, &d.ReferenceID, &status, &d.ApprovedBy, &approvedAt,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	d.Amount = credits(amount)
	d.Status = request.Status(status)
	d.ApprovedAt = parseNullTime(approvedAt)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return &d, nil
}

func scanWithdrawal(row rowScanner) (*request.Withdrawal, error) {
	var (
		w          request.Withdrawal
		amount     int64
		status     string
		approvedAt sql.NullString
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(&w.ID, &w.AccountUID, &w.AccountID, &w.AccountName, &amount,
		&w.FeePercent, &w.Method, &w.AccountDetails, &status, &w.ApprovedBy,
		&approvedAt, &w.SettlementRef, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	w.Amount = credits(amount)
	w.Status = request.Status(status)
	w.ApprovedAt = parseNullTime(approvedAt)
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return &w, nil
}

func scanActivation(row rowScanner) (*activation.Record, error) {
	var (
		r           activation.Record
		amount      int64
		dailyIncome int64
		status      string
		validTill   string
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(&r.ID, &r.AccountUID, &r.AccountID, &r.AccountName, &r.Package,
		&amount, &dailyIncome, &status, &validTill, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.Amount = credits(amount)
	r.DailyIncome = credits(dailyIncome)
	r.Status = activation.Status(status)
	r.ValidTill = parseTime(validTill)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func scanTask(row rowScanner) (*task.Record, error) {
	var (
		r         task.Record
		reward    int64
		fund      int64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&r.ID, &r.AccountUID, &r.AccountID, &r.AccountName, &r.Type,
		&r.Clicks, &r.TotalClicks, &reward, &r.Package, &fund, &r.Date,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.Reward = credits(reward)
	r.Fund = credits(fund)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func scanReferralIncome(row rowScanner) (*referral.IncomeRecord, error) {
	var (
		r         referral.IncomeRecord
		amount    int64
		createdAt string
		updatedAt string
	)
	err := row.Scan(&r.ID, &r.SponsorID, &r.ReferredID, &r.ReferredName, &r.Package,
		&r.Commission, &amount, &r.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.Amount = credits(amount)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func scanKYC(row rowScanner) (*kyc.Application, error) {
	var (
		a         kyc.Application
		status    string
		createdAt string
		updatedAt string
	)
	err := row.Scan(&a.ID, &a.AccountUID, &a.AccountID, &a.DocumentType,
		&a.DocumentNumber, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = kyc.Status(status)
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return &a, nil
}

func appendPaging(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
		if offset > 0 {
			query += ` OFFSET ?`
			args = append(args, offset)
		}
	}
	return query, args
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func fmtNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Fall back to the layout datetime('now') defaults produce.
		t, _ = time.Parse("2006-01-02 15:04:05", s)
	}
	return t
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
