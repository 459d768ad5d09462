package accounting_test

import (
	"testing"

	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/SscSPs/finance_planner/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotal(t *testing.T) {
	assert.True(t, accounting.Total(nil).IsZero())
	got := accounting.Total([]decimal.Decimal{d("-150.00"), d("-45.00"), d("2500.00"), d("-1200.00")})
	assert.True(t, got.Equal(d("1105.00")), "got %s", got)
}

func TestTotal_NoDriftOverManySmallAmounts(t *testing.T) {
	amounts := make([]decimal.Decimal, 100)
	for i := range amounts {
		amounts[i] = d("0.10")
	}
	assert.True(t, accounting.Total(amounts).Equal(d("10.00")))
}

func TestTransactionsTotal(t *testing.T) {
	txns := []domain.Transaction{{Amount: d("10.25")}, {Amount: d("-0.25")}}
	assert.True(t, accounting.TransactionsTotal(txns).Equal(d("10")))
}

func TestApplyDeltaAndReversal(t *testing.T) {
	balance := d("1000.00")
	after := accounting.ApplyDelta(balance, d("-50.00"))
	assert.True(t, after.Equal(d("950.00")))
	assert.True(t, accounting.ApplyDelta(after, accounting.Reversal(d("-50.00"))).Equal(balance))
}
