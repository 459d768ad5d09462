package dto

import (
	"time"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// TransactionItem is the payload of one transaction, shared by single and batch creates.
type TransactionItem struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required,money"` // positive for income, negative for expense
	Date        string           `json:"date" binding:"required,datetime=2006-01-02"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Merchant    *string          `json:"merchant" binding:"omitempty,max=255"`
	Location    *string          `json:"location" binding:"omitempty,max=255"`
	Tags        []string         `json:"tags" binding:"omitempty,dive,min=1,max=100"`
}

// CreateTransactionRequest creates one transaction on an account.
type CreateTransactionRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	TransactionItem
}

// BatchCreateTransactionsRequest creates 1..100 transactions on one account atomically.
type BatchCreateTransactionsRequest struct {
	AccountID    string            `json:"account_id" binding:"required"`
	Transactions []TransactionItem `json:"transactions" binding:"required,min=1,max=100,dive"`
}

// UpdateTransactionRequest is a partial update; absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,money"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Merchant    *string          `json:"merchant" binding:"omitempty,max=255"`
	Location    *string          `json:"location" binding:"omitempty,max=255"`
	Tags        *[]string        `json:"tags"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID       string `form:"account_id"`
	StartDate       string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Category        string `form:"category"`
	Merchant        string `form:"merchant"`
	Tags            string `form:"tags"` // comma-separated, matches any
	DerivedCategory string `form:"der_category"`
	DerivedMerchant string `form:"der_merchant"`
	Limit           *int   `form:"limit"` // absent means the default page size
	Offset          int    `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Category        string          `json:"category"`
	Description     *string         `json:"description"`
	Merchant        *string         `json:"merchant"`
	Location        *string         `json:"location"`
	Tags            []string        `json:"tags"`
	DerivedCategory *string         `json:"der_category"`
	DerivedMerchant *string         `json:"der_merchant"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListTransactionsResponse is one page of a filtered listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// BatchCreateTransactionsResponse reports a committed batch.
type BatchCreateTransactionsResponse struct {
	Transactions   []TransactionResponse `json:"transactions"`
	AccountBalance decimal.Decimal       `json:"account_balance"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Count          int                   `json:"count"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		ID:              t.TransactionID,
		AccountID:       t.AccountID,
		Amount:          t.Amount,
		Date:            t.Date.Format(DateLayout),
		Category:        t.Category,
		Description:     t.Description,
		Merchant:        t.Merchant,
		Location:        t.Location,
		Tags:            tags,
		DerivedCategory: t.DerivedCategory,
		DerivedMerchant: t.DerivedMerchant,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ToBatchResponse converts a committed batch result.
func ToBatchResponse(r *domain.BatchResult) BatchCreateTransactionsResponse {
	return BatchCreateTransactionsResponse{
		Transactions:   ToTransactionResponses(r.Transactions),
		AccountBalance: r.AccountBalance,
		TotalAmount:    r.TotalAmount,
		Count:          r.Count,
	}
}
