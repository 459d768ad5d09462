package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Nullable text columns map to pointers.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Date          time.Time       `db:"date"`
	Category      string          `db:"category"`
	Description   *string         `db:"description"`
	Merchant      *string         `db:"merchant"`
	Location      *string         `db:"location"`
	Tags          []string        `db:"tags"`
	DerCategory   *string         `db:"der_category"`
	DerMerchant   *string         `db:"der_merchant"`
	AuditFields
}
