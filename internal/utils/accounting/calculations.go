package accounting

import (
	"github.com/SscSPs/finance_planner/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Total sums amounts in fixed point. An empty slice totals zero.
func Total(amounts []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// TransactionsTotal sums the amounts of txns.
func TransactionsTotal(txns []domain.Transaction) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(txns))
	for i, t := range txns {
		amounts[i] = t.Amount
	}
	return Total(amounts)
}

// ApplyDelta returns the new cached balance after delta, kept at the ledger scale.
func ApplyDelta(balance, delta decimal.Decimal) decimal.Decimal {
	return balance.Add(delta).Round(domain.AmountScale)
}

// Reversal is the delta that removes amount from a balance.
func Reversal(amount decimal.Decimal) decimal.Decimal {
	return amount.Neg()
}
