package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account kinds.
type AccountType string

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	CreditCard AccountType = "credit_card"
	Investment AccountType = "investment"
	Loan       AccountType = "loan"
	Other      AccountType = "other"
)

// AccountTypes lists every valid AccountType.
func AccountTypes() []AccountType {
	return []AccountType{Checking, Savings, CreditCard, Investment, Loan, Other}
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, v := range AccountTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Account belongs to exactly one tenant. Balance is the cached sum of the
// initial balance and every persisted transaction; only the ledger changes it
// after creation.
type Account struct {
	AccountID   string          `json:"accountID"`
	TenantID    string          `json:"tenantID"`
	UserID      string          `json:"userID"` // creator, audit only
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
