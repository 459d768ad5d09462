package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", apperrors.ErrValidation, field)
	}
	return d, nil
}

func checkAmount(amount *decimal.Decimal) error {
	if amount == nil {
		return fmt.Errorf("%w: amount is required", apperrors.ErrValidation)
	}
	if !domain.HasValidScale(*amount) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	if !domain.InAmountRange(*amount) {
		return fmt.Errorf("%w: amount must be less than %s in magnitude", apperrors.ErrValidation, domain.MaxAbsAmount)
	}
	return nil
}

// nextBalance applies delta and rejects a balance the ledger cannot store.
func nextBalance(balance, delta decimal.Decimal) (decimal.Decimal, error) {
	next := accounting.ApplyDelta(balance, delta)
	if !domain.InAmountRange(next) {
		return decimal.Decimal{}, fmt.Errorf("%w: resulting balance is out of range", apperrors.ErrValidation)
	}
	return next, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// newTransaction validates one item and builds the row to insert. The account
// id is filled in once the account is locked.
func newTransaction(item dto.TransactionItem, now time.Time) (domain.Transaction, error) {
	if err := checkAmount(item.Amount); err != nil {
		return domain.Transaction{}, err
	}
	date, err := parseDate("date", item.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	category := strings.TrimSpace(item.Category)
	if category == "" {
		return domain.Transaction{}, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}

	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        *item.Amount,
		Date:          date,
		Category:      category,
		Description:   item.Description,
		Merchant:      item.Merchant,
		Location:      item.Location,
		Tags:          cleanTags(item.Tags),
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}, nil
}

// newPatch validates a partial update.
func newPatch(req dto.UpdateTransactionRequest) (domain.TransactionPatch, error) {
	var p domain.TransactionPatch
	if req.Amount != nil {
		if err := checkAmount(req.Amount); err != nil {
			return p, err
		}
		p.Amount = req.Amount
	}
	if req.Date != nil {
		d, err := parseDate("date", *req.Date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if req.Category != nil {
		c := strings.TrimSpace(*req.Category)
		if c == "" {
			return p, fmt.Errorf("%w: category must not be empty", apperrors.ErrValidation)
		}
		p.Category = &c
	}
	p.Description = req.Description
	p.Merchant = req.Merchant
	p.Location = req.Location
	if req.Tags != nil {
		p.Tags = cleanTags(*req.Tags)
		p.TagsSet = true
	}
	return p, nil
}
