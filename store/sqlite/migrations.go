package sqlite

// migrations are applied in order by Migrate. Statements are idempotent
// so re-running against an existing database is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS wallet_accounts (
    uid             TEXT PRIMARY KEY,
    public_id       TEXT NOT NULL DEFAULT '',
    name            TEXT NOT NULL DEFAULT '',
    email           TEXT NOT NULL DEFAULT '',
    mobile          TEXT NOT NULL DEFAULT '',
    role            TEXT NOT NULL DEFAULT 'user',
    status          TEXT NOT NULL DEFAULT 'active',
    balance         INTEGER NOT NULL DEFAULT 0,
    fund            INTEGER NOT NULL DEFAULT 0,
    package         TEXT NOT NULL DEFAULT '',
    kyc             TEXT NOT NULL DEFAULT 'Pending',
    sponsor_id      TEXT NOT NULL DEFAULT '',
    referrals       INTEGER NOT NULL DEFAULT 0,
    total_income    INTEGER NOT NULL DEFAULT 0,
    today_income    INTEGER NOT NULL DEFAULT 0,
    referral_income INTEGER NOT NULL DEFAULT 0,
    total_tasks     INTEGER NOT NULL DEFAULT 0,
    rank            TEXT NOT NULL DEFAULT '',
    last_login      TEXT,
    version         INTEGER NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_accounts_public_id ON wallet_accounts (public_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_accounts_email ON wallet_accounts (email);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_accounts_role_status ON wallet_accounts (role, status);`,

	`CREATE TABLE IF NOT EXISTS wallet_entries (
    id              TEXT PRIMARY KEY,
    account_uid     TEXT NOT NULL DEFAULT '',
    account_id      TEXT NOT NULL DEFAULT '',
    account_name    TEXT NOT NULL DEFAULT '',
    category        TEXT NOT NULL DEFAULT '',
    amount          INTEGER NOT NULL DEFAULT 0,
    status          TEXT NOT NULL DEFAULT 'Success',
    balance_after   INTEGER NOT NULL DEFAULT 0,
    description     TEXT NOT NULL DEFAULT '',
    fee             INTEGER NOT NULL DEFAULT 0,
    net_amount      INTEGER NOT NULL DEFAULT 0,
    method          TEXT NOT NULL DEFAULT '',
    account_details TEXT NOT NULL DEFAULT '',
    deposit_id      TEXT NOT NULL DEFAULT '',
    withdrawal_id   TEXT NOT NULL DEFAULT '',
    reference_id    TEXT NOT NULL DEFAULT '',
    settlement_ref  TEXT NOT NULL DEFAULT '',
    package         TEXT NOT NULL DEFAULT '',
    referred_user   TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_entries_account ON wallet_entries (account_uid);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_entries_category ON wallet_entries (category);`,

	`CREATE TABLE IF NOT EXISTS wallet_deposits (
    id           TEXT PRIMARY KEY,
    account_uid  TEXT NOT NULL DEFAULT '',
    account_id   TEXT NOT NULL DEFAULT '',
    account_name TEXT NOT NULL DEFAULT '',
    amount       INTEGER NOT NULL DEFAULT 0,
    method       TEXT NOT NULL DEFAULT '',
    reference_id TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'Pending',
    approved_by  TEXT NOT NULL DEFAULT '',
    approved_at  TEXT,
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_deposits_account ON wallet_deposits (account_uid);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_deposits_status ON wallet_deposits (status);`,

	`CREATE TABLE IF NOT EXISTS wallet_withdrawals (
    id              TEXT PRIMARY KEY,
    account_uid     TEXT NOT NULL DEFAULT '',
    account_id      TEXT NOT NULL DEFAULT '',
    account_name    TEXT NOT NULL DEFAULT '',
    amount          INTEGER NOT NULL DEFAULT 0,
    fee_percent     INTEGER NOT NULL DEFAULT 0,
    method          TEXT NOT NULL DEFAULT '',
    account_details TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT 'Pending',
    approved_by     TEXT NOT NULL DEFAULT '',
    approved_at     TEXT,
    settlement_ref  TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_withdrawals_account ON wallet_withdrawals (account_uid);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_withdrawals_status ON wallet_withdrawals (status);`,

	`CREATE TABLE IF NOT EXISTS wallet_activations (
    id           TEXT PRIMARY KEY,
    account_uid  TEXT NOT NULL DEFAULT '',
    account_id   TEXT NOT NULL DEFAULT '',
    account_name TEXT NOT NULL DEFAULT '',
    package      TEXT NOT NULL DEFAULT '',
    amount       INTEGER NOT NULL DEFAULT 0,
    daily_income INTEGER NOT NULL DEFAULT 0,
    status       TEXT NOT NULL DEFAULT 'Active',
    valid_till   TEXT NOT NULL DEFAULT (datetime('now')),
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_activations_account ON wallet_activations (account_uid, status);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_activations_expiry ON wallet_activations (status, valid_till);`,

	`CREATE TABLE IF NOT EXISTS wallet_tasks (
    id           TEXT PRIMARY KEY,
    account_uid  TEXT NOT NULL DEFAULT '',
    account_id   TEXT NOT NULL DEFAULT '',
    account_name TEXT NOT NULL DEFAULT '',
    type         TEXT NOT NULL DEFAULT '',
    clicks       INTEGER NOT NULL DEFAULT 0,
    total_clicks INTEGER NOT NULL DEFAULT 0,
    reward       INTEGER NOT NULL DEFAULT 0,
    package      TEXT NOT NULL DEFAULT '',
    fund         INTEGER NOT NULL DEFAULT 0,
    date         TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_tasks_account_date ON wallet_tasks (account_uid, date);`,

	`CREATE TABLE IF NOT EXISTS wallet_referral_incomes (
    id            TEXT PRIMARY KEY,
    sponsor_id    TEXT NOT NULL DEFAULT '',
    referred_id   TEXT NOT NULL DEFAULT '',
    referred_name TEXT NOT NULL DEFAULT '',
    package       TEXT NOT NULL DEFAULT '',
    commission    TEXT NOT NULL DEFAULT '',
    amount        INTEGER NOT NULL DEFAULT 0,
    status        TEXT NOT NULL DEFAULT 'Paid',
    created_at    TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_referral_incomes_sponsor ON wallet_referral_incomes (sponsor_id);`,

	`CREATE TABLE IF NOT EXISTS wallet_kyc_applications (
    id              TEXT PRIMARY KEY,
    account_uid     TEXT NOT NULL DEFAULT '',
    account_id      TEXT NOT NULL DEFAULT '',
    document_type   TEXT NOT NULL DEFAULT '',
    document_number TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL DEFAULT 'Pending',
    created_at      TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at      TEXT NOT NULL DEFAULT (datetime('now'))
);`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_kyc_status ON wallet_kyc_applications (status);`,

	`CREATE TABLE IF NOT EXISTS wallet_counters (
    name  TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);`,
}
