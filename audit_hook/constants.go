package audithook

// Action constants for audit events.
const (
	// Account actions
	ActionAccountRegistered = "account.registered"
	ActionAccountBlocked    = "account.blocked"

	// Referral actions
	ActionReferralPaid = "referral.paid"

	// Request actions
	ActionDepositRequested    = "deposit.requested"
	ActionDepositApproved     = "deposit.approved"
	ActionWithdrawalRequested = "withdrawal.requested"
	ActionWithdrawalApproved  = "withdrawal.approved"

	// Activation actions
	ActionPackageActivated  = "package.activated"
	ActionActivationExpired = "activation.expired"

	// Task actions
	ActionTaskCompleted = "task.completed"

	// KYC actions
	ActionKYCSubmitted = "kyc.submitted"
	ActionKYCReviewed  = "kyc.reviewed"
)

// Resource constants for audit events.
const (
	ResourceAccount    = "account"
	ResourceReferral   = "referral"
	ResourceDeposit    = "deposit"
	ResourceWithdrawal = "withdrawal"
	ResourceActivation = "activation"
	ResourceTask       = "task"
	ResourceKYC        = "kyc"
)

// Category constants for audit events.
const (
	CategoryOnboarding = "onboarding"
	CategoryWallet     = "wallet"
	CategoryIncome     = "income"
	CategoryCompliance = "compliance"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
