package dto

import (
	"time"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,min=1,max=255"`
	AccountType    domain.AccountType `json:"account_type" binding:"required,accounttype"`
	InitialBalance *decimal.Decimal   `json:"initial_balance" binding:"omitempty,money"` // defaults to 0, must not be negative
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The balance is deliberately absent: only the ledger changes it.
type UpdateAccountRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1,max=255"`
	AccountType *domain.AccountType `json:"account_type" binding:"omitempty,accounttype"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID          string             `json:"id"`
	TenantID    string             `json:"tenant_id"`
	UserID      string             `json:"user_id"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Balance     decimal.Decimal    `json:"balance"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ListAccountsResponse wraps a tenant's accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.AccountID,
		TenantID:    acc.TenantID,
		UserID:      acc.UserID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list payload.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res, Total: len(res)}
}
