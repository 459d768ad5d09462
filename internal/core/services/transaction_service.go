package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_planner/internal/apperrors"
	"github.com/SscSPs/finance_planner/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/dto"
	"github.com/SscSPs/finance_planner/internal/utils/pagination"
)

type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	accountRepo portsrepo.AccountReader
	maxLimit    int
}

// NewTransactionService creates the read side of transactions. maxLimit caps
// the page size of a listing.
func NewTransactionService(txnRepo portsrepo.TransactionReader, accountRepo portsrepo.AccountReader, maxLimit int) portssvc.TransactionReaderSvc {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		maxLimit:    maxLimit,
	}
}

var _ portssvc.TransactionReaderSvc = (*transactionService)(nil)

func (s *transactionService) GetTransaction(ctx context.Context, authCtx *domain.AuthorizationContext, transactionID string) (*domain.Transaction, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, err
	}
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, authCtx.TenantID())
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, authCtx *domain.AuthorizationContext, params dto.ListTransactionsParams) ([]domain.Transaction, int, error) {
	if err := s.RequireRead(authCtx); err != nil {
		return nil, 0, err
	}

	filter, err := s.buildFilter(params)
	if err != nil {
		return nil, 0, err
	}

	if filter.AccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *filter.AccountID, authCtx.TenantID()); err != nil {
			s.logUnexpected(ctx, err, "Failed to check account filter", slog.String("account_id", *filter.AccountID))
			return nil, 0, err
		}
	}

	txns, total, err := s.txnRepo.ListTransactions(ctx, authCtx.TenantID(), filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, 0, err
	}
	return txns, total, nil
}

func (s *transactionService) buildFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	var f domain.TransactionFilter

	limit, offset, err := pagination.Normalize(params.Limit, params.Offset, s.maxLimit)
	if err != nil {
		return f, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	f.Limit, f.Offset = limit, offset

	if params.StartDate != "" {
		d, err := parseDate("start_date", params.StartDate)
		if err != nil {
			return f, err
		}
		f.StartDate = &d
	}
	if params.EndDate != "" {
		d, err := parseDate("end_date", params.EndDate)
		if err != nil {
			return f, err
		}
		f.EndDate = &d
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return f, fmt.Errorf("%w: start_date must not be after end_date", apperrors.ErrValidation)
	}

	f.AccountID = optional(params.AccountID)
	f.Category = optional(params.Category)
	f.Merchant = optional(params.Merchant)
	f.DerivedCategory = optional(params.DerivedCategory)
	f.DerivedMerchant = optional(params.DerivedMerchant)
	if params.Tags != "" {
		if tags := cleanTags(strings.Split(params.Tags, ",")); len(tags) > 0 {
			f.Tags = tags
		}
	}
	return f, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
