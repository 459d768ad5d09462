package mapping

import (
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		Date:          d.Date,
		Category:      d.Category,
		Description:   d.Description,
		Merchant:      d.Merchant,
		Location:      d.Location,
		Tags:          tags,
		DerCategory:   d.DerivedCategory,
		DerMerchant:   d.DerivedMerchant,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Date:            m.Date,
		Category:        m.Category,
		Description:     m.Description,
		Merchant:        m.Merchant,
		Location:        m.Location,
		Tags:            m.Tags,
		DerivedCategory: m.DerCategory,
		DerivedMerchant: m.DerMerchant,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
