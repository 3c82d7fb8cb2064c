// Package kyc defines identity-verification application records.
package kyc

import (
	"github.com/xraph/walletledger/types"
)

// Status is the application review state.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Application is one submitted identity-verification request.
type Application struct {
	types.Entity
	ID             string `json:"id"`
	AccountUID     string `json:"account_uid"`
	AccountID      string `json:"account_id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Status         Status `json:"status"`
}
