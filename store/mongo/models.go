package mongo

import (
	"time"

	"github.com/xraph/walletledger/account"
	"github.com/xraph/walletledger/activation"
	"github.com/xraph/walletledger/journal"
	"github.com/xraph/walletledger/kyc"
	"github.com/xraph/walletledger/referral"
	"github.com/xraph/walletledger/request"
	"github.com/xraph/walletledger/task"
	"github.com/xraph/walletledger/types"
)

// ==================== Account model ====================

type accountModel struct {
	UID            string     `bson:"_id"`
	PublicID       string     `bson:"public_id"`
	Name           string     `bson:"name"`
	Email          string     `bson:"email"`
	Mobile         string     `bson:"mobile,omitempty"`
	Role           string     `bson:"role"`
	Status         string     `bson:"status"`
	Balance        int64      `bson:"balance"`
	Fund           int64      `bson:"fund"`
	Package        string     `bson:"package"`
	KYC            string     `bson:"kyc"`
	SponsorID      string     `bson:"sponsor_id,omitempty"`
	Referrals      int        `bson:"referrals"`
	TotalIncome    int64      `bson:"total_income"`
	TodayIncome    int64      `bson:"today_income"`
	ReferralIncome int64      `bson:"referral_income"`
	TotalTasks     int        `bson:"total_tasks"`
	Rank           string     `bson:"rank,omitempty"`
	LastLogin      *time.Time `bson:"last_login,omitempty"`
	Version        int64      `bson:"version"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func toAccountModel(a *account.Account) *accountModel {
	return &accountModel{
		UID:            a.UID,
		PublicID:       a.PublicID,
		Name:           a.Name,
		Email:          a.Email,
		Mobile:         a.Mobile,
		Role:           string(a.Role),
		Status:         string(a.Status),
		Balance:        a.Balance.Int64(),
		Fund:           a.Fund.Int64(),
		Package:        a.Package,
		KYC:            string(a.KYC),
		SponsorID:      a.SponsorID,
		Referrals:      a.Referrals,
		TotalIncome:    a.TotalIncome.Int64(),
		TodayIncome:    a.TodayIncome.Int64(),
		ReferralIncome: a.ReferralIncome.Int64(),
		TotalTasks:     a.TotalTasks,
		Rank:           a.Rank,
		LastLogin:      a.LastLogin,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func fromAccountModel(m *accountModel) *account.Account {
	return &account.Account{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		UID:            m.UID,
		PublicID:       m.PublicID,
		Name:           m.Name,
		Email:          m.Email,
		Mobile:         m.Mobile,
		Role:           account.Role(m.Role),
		Status:         account.Status(m.Status),
		Balance:        types.Credits(m.Balance),
		Fund:           types.Credits(m.Fund),
		Package:        m.Package,
		KYC:            account.KYCState(m.KYC),
		SponsorID:      m.SponsorID,
		Referrals:      m.Referrals,
		TotalIncome:    types.Credits(m.TotalIncome),
		TodayIncome:    types.Credits(m.TodayIncome),
		ReferralIncome: types.Credits(m.ReferralIncome),
		TotalTasks:     m.TotalTasks,
		Rank:           m.Rank,
		LastLogin:      m.LastLogin,
		Version:        m.Version,
	}
}

// ==================== Journal model ====================

type entryModel struct {
	ID             string    `bson:"_id"`
	AccountUID     string    `bson:"account_uid"`
	AccountID      string    `bson:"account_id"`
	AccountName    string    `bson:"account_name"`
	Category       string    `bson:"category"`
	Amount         int64     `bson:"amount"`
	Status         string    `bson:"status"`
	BalanceAfter   int64     `bson:"balance_after"`
	Description    string    `bson:"description,omitempty"`
	Fee            int64     `bson:"fee,omitempty"`
	NetAmount      int64     `bson:"net_amount,omitempty"`
	Method         string    `bson:"method,omitempty"`
	AccountDetails string    `bson:"account_details,omitempty"`
	DepositID      string    `bson:"deposit_id,omitempty"`
	WithdrawalID   string    `bson:"withdrawal_id,omitempty"`
	ReferenceID    string    `bson:"reference_id,omitempty"`
	SettlementRef  string    `bson:"settlement_ref,omitempty"`
	Package        string    `bson:"package,omitempty"`
	ReferredUser   string    `bson:"referred_user,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toEntryModel(e *journal.Entry) *entryModel {
	return &entryModel{
		ID:             e.ID,
		AccountUID:     e.AccountUID,
		AccountID:      e.AccountID,
		AccountName:    e.AccountName,
		Category:       string(e.Category),
		Amount:         e.Amount.Int64(),
		Status:         e.Status,
		BalanceAfter:   e.BalanceAfter.Int64(),
		Description:    e.Description,
		Fee:            e.Fee.Int64(),
		NetAmount:      e.NetAmount.Int64(),
		Method:         e.Method,
		AccountDetails: e.AccountDetails,
		DepositID:      e.DepositID,
		WithdrawalID:   e.WithdrawalID,
		ReferenceID:    e.ReferenceID,
		SettlementRef:  e.SettlementRef,
		Package:        e.Package,
		ReferredUser:   e.ReferredUser,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func fromEntryModel(m *entryModel) *journal.Entry {
	return &journal.Entry{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             m.ID,
		AccountUID:     m.AccountUID,
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		Category:       journal.Category(m.Category),
		Amount:         types.Credits(m.Amount),
		Status:         m.Status,
		BalanceAfter:   types.Credits(m.BalanceAfter),
		Description:    m.Description,
		Fee:            types.Credits(m.Fee),
		NetAmount:      types.Credits(m.NetAmount),
		Method:         m.Method,
		AccountDetails: m.AccountDetails,
		DepositID:      m.DepositID,
		WithdrawalID:   m.WithdrawalID,
		ReferenceID:    m.ReferenceID,
		SettlementRef:  m.SettlementRef,
		Package:        m.Package,
		ReferredUser:   m.ReferredUser,
	}
}

// ==================== Request models ====================

type depositModel struct {
	ID          string     `bson:"_id"`
	AccountUID  string     `bson:"account_uid"`
	AccountID   string     `bson:"account_id"`
	AccountName string     `bson:"account_name"`
	Amount      int64      `bson:"amount"`
	Method      string     `bson:"method"`
	ReferenceID string     `bson:"reference_id,omitempty"`
	Status      string     `bson:"status"`
	ApprovedBy  string     `bson:"approved_by,omitempty"`
	ApprovedAt  *time.Time `bson:"approved_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func toDepositModel(d *request.Deposit) *depositModel {
	return &depositModel{
		ID:          d.ID,
		AccountUID:  d.AccountUID,
		AccountID:   d.AccountID,
		AccountName: d.AccountName,
		Amount:      d.Amount.Int64(),
		Method:      d.Method,
		ReferenceID: d.ReferenceID,
		Status:      string(d.Status),
		ApprovedBy:  d.ApprovedBy,
		ApprovedAt:  d.ApprovedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromDepositModel(m *depositModel) *request.Deposit {
	return &request.Deposit{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          m.ID,
		AccountUID:  m.AccountUID,
		AccountID:   m.AccountID,
		AccountName: m.AccountName,
		Amount:      types.Credits(m.Amount),
		Method:      m.Method,
		ReferenceID: m.ReferenceID,
		Status:      request.Status(m.Status),
		ApprovedBy:  m.ApprovedBy,
		ApprovedAt:  m.ApprovedAt,
	}
}

type withdrawalModel struct {
	ID             string     `bson:"_id"`
	AccountUID     string     `bson:"account_uid"`
	AccountID      string     `bson:"account_id"`
	AccountName    string     `bson:"account_name"`
	Amount         int64      `bson:"amount"`
	FeePercent     int64      `bson:"fee_percent"`
	Method         string     `bson:"method"`
	AccountDetails string     `bson:"account_details,omitempty"`
	Status         string     `bson:"status"`
	ApprovedBy     string     `bson:"approved_by,omitempty"`
	ApprovedAt     *time.Time `bson:"approved_at,omitempty"`
	SettlementRef  string     `bson:"settlement_ref,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func toWithdrawalModel(w *request.Withdrawal) *withdrawalModel {
	return &withdrawalModel{
		ID:             w.ID,
		AccountUID:     w.AccountUID,
		AccountID:      w.AccountID,
		AccountName:    w.AccountName,
		Amount:         w.Amount.Int64(),
		FeePercent:     w.FeePercent,
		Method:         w.Method,
		AccountDetails: w.AccountDetails,
		Status:         string(w.Status),
		ApprovedBy:     w.ApprovedBy,
		ApprovedAt:     w.ApprovedAt,
		SettlementRef:  w.SettlementRef,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func fromWithdrawalModel(m *withdrawalModel) *request.Withdrawal {
	return &request.Withdrawal{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             m.ID,
		AccountUID:     m.AccountUID,
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		Amount:         types.Credits(m.Amount),
		FeePercent:     m.FeePercent,
		Method:         m.Method,
		AccountDetails: m.AccountDetails,
		Status:         request.Status(m.Status),
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
		SettlementRef:  m.SettlementRef,
	}
}

// ==================== Activation model ====================

type activationModel struct {
	ID          string    `bson:"_id"`
	AccountUID  string    `bson:"account_uid"`
	AccountID   string    `bson:"account_id"`
	AccountName string    `bson:"account_name"`
	Package     string    `bson:"package"`
	Amount      int64     `bson:"amount"`
	DailyIncome int64     `bson:"daily_income"`
	Status      string    `bson:"status"`
	ValidTill   time.Time `bson:"valid_till"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toActivationModel(r *activation.Record) *activationModel {
	return &activationModel{
		ID:          r.ID,
		AccountUID:  r.AccountUID,
		AccountID:   r.AccountID,
		AccountName: r.AccountName,
		Package:     r.Package,
		Amount:      r.Amount.Int64(),
		DailyIncome: r.DailyIncome.Int64(),
		Status:      string(r.Status),
		ValidTill:   r.ValidTill,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromActivationModel(m *activationModel) *activation.Record {
	return &activation.Record{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          m.ID,
		AccountUID:  m.AccountUID,
		AccountID:   m.AccountID,
		AccountName: m.AccountName,
		Package:     m.Package,
		Amount:      types.Credits(m.Amount),
		DailyIncome: types.Credits(m.DailyIncome),
		Status:      activation.Status(m.Status),
		ValidTill:   m.ValidTill,
	}
}

// ==================== Task model ====================

type taskModel struct {
	ID          string    `bson:"_id"`
	AccountUID  string    `bson:"account_uid"`
	AccountID   string    `bson:"account_id"`
	AccountName string    `bson:"account_name"`
	Type        string    `bson:"type"`
	Clicks      int       `bson:"clicks"`
	TotalClicks int       `bson:"total_clicks"`
	Reward      int64     `bson:"reward"`
	Package     string    `bson:"package,omitempty"`
	Fund        int64     `bson:"fund"`
	Date        string    `bson:"date"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toTaskModel(r *task.Record) *taskModel {
	return &taskModel{
		ID:          r.ID,
		AccountUID:  r.AccountUID,
		AccountID:   r.AccountID,
		AccountName: r.AccountName,
		Type:        r.Type,
		Clicks:      r.Clicks,
		TotalClicks: r.TotalClicks,
		Reward:      r.Reward.Int64(),
		Package:     r.Package,
		Fund:        r.Fund.Int64(),
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromTaskModel(m *taskModel) *task.Record {
	return &task.Record{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          m.ID,
		AccountUID:  m.AccountUID,
		AccountID:   m.AccountID,
		AccountName: m.AccountName,
		Type:        m.Type,
		Clicks:      m.Clicks,
		TotalClicks: m.TotalClicks,
		Reward:      types.Credits(m.Reward),
		Package:     m.Package,
		Fund:        types.Credits(m.Fund),
		Date:        m.Date,
	}
}

// ==================== Referral model ====================

type referralIncomeModel struct {
	ID           string    `bson:"_id"`
	SponsorID    string    `bson:"sponsor_id"`
	ReferredID   string    `bson:"referred_id"`
	ReferredName string    `bson:"referred_name"`
	Package      string    `bson:"package,omitempty"`
	Commission   string    `bson:"commission,omitempty"`
	Amount       int64     `bson:"amount"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toReferralIncomeModel(r *referral.IncomeRecord) *referralIncomeModel {
	return &referralIncomeModel{
		ID:           r.ID,
		SponsorID:    r.SponsorID,
		ReferredID:   r.ReferredID,
		ReferredName: r.ReferredName,
		Package:      r.Package,
		Commission:   r.Commission,
		Amount:       r.Amount.Int64(),
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func fromReferralIncomeModel(m *referralIncomeModel) *referral.IncomeRecord {
	return &referral.IncomeRecord{
		Entity:       types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:           m.ID,
		SponsorID:    m.SponsorID,
		ReferredID:   m.ReferredID,
		ReferredName: m.ReferredName,
		Package:      m.Package,
		Commission:   m.Commission,
		Amount:       types.Credits(m.Amount),
		Status:       m.Status,
	}
}

// ==================== KYC model ====================

type kycModel struct {
	ID             string    `bson:"_id"`
	AccountUID     string    `bson:"account_uid"`
	AccountID      string    `bson:"account_id"`
	DocumentType   string    `bson:"document_type"`
	DocumentNumber string    `bson:"document_number"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toKYCModel(a *kyc.Application) *kycModel {
	return &kycModel{
		ID:             a.ID,
		AccountUID:     a.AccountUID,
		AccountID:      a.AccountID,
		DocumentType:   a.DocumentType,
		DocumentNumber: a.DocumentNumber,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func fromKYCModel(m *kycModel) *kyc.Application {
	return &kyc.Application{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:             m.ID,
		AccountUID:     m.AccountUID,
		AccountID:      m.AccountID,
		DocumentType:   m.DocumentType,
		DocumentNumber: m.DocumentNumber,
		Status:         kyc.Status(m.Status),
	}
}
