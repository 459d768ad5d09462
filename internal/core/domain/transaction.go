package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept for amounts and balances.
const AmountScale = 2

// MaxBatchSize bounds the number of transactions in one batch create.
const MaxBatchSize = 100

// MaxAbsAmount is the exclusive bound on the magnitude of amounts and balances.
var MaxAbsAmount = decimal.New(1, 13)

// InAmountRange reports whether |d| < MaxAbsAmount.
func InAmountRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(MaxAbsAmount)
}

// HasValidScale reports whether d has no more than AmountScale fractional digits.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// Transaction is a signed movement on an account: positive is a credit,
// negative a debit. Tenant scope is reached only through the account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Category        string          `json:"category"`
	Description     *string         `json:"description,omitempty"`
	Merchant        *string         `json:"merchant,omitempty"`
	Location        *string         `json:"location,omitempty"`
	Tags            []string        `json:"tags"`
	DerivedCategory *string         `json:"derivedCategory,omitempty"`
	DerivedMerchant *string         `json:"derivedMerchant,omitempty"`
	AuditFields
}

// TransactionPatch holds the fields of a partial update. Nil means unchanged.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Category    *string
	Description *string
	Merchant    *string
	Location    *string
	Tags        []string
	TagsSet     bool
}

// Apply writes the patch onto t and returns the amount delta (new - old).
// The delta is zero when the amount is absent or unchanged.
func (p TransactionPatch) Apply(t *Transaction) decimal.Decimal {
	delta := decimal.Zero
	if p.Amount != nil {
		delta = p.Amount.Sub(t.Amount)
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Merchant != nil {
		t.Merchant = p.Merchant
	}
	if p.Location != nil {
		t.Location = p.Location
	}
	if p.TagsSet {
		t.Tags = p.Tags
	}
	return delta
}

// TransactionFilter narrows a transaction listing. All set fields are
// AND-combined; Tags matches transactions carrying any of the given tags.
type TransactionFilter struct {
	AccountID       *string
	StartDate       *time.Time
	EndDate         *time.Time
	Category        *string
	Merchant        *string
	Tags            []string
	DerivedCategory *string
	DerivedMerchant *string
	Limit           int
	Offset          int
}

// BatchResult is the outcome of a committed batch create.
type BatchResult struct {
	Transactions   []Transaction
	Count          int
	TotalAmount    decimal.Decimal
	AccountBalance decimal.Decimal
}
