package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary is the derived, owner-scoped view of a transaction set.
// It is recomputed wholesale from the full transaction list and never
// patched incrementally; it carries no identity of its own.
type FinancialSummary struct {
	TotalBalance       decimal.Decimal
	MonthlyIncome      decimal.Decimal
	MonthlyExpenses    decimal.Decimal
	MonthlyNet         decimal.Decimal
	TotalTransactions  int
	RecentTransactions []*Transaction
	ComputedAt         time.Time
}

// EmptySummary returns an all-zero summary with an empty recent list.
func EmptySummary(computedAt time.Time) *FinancialSummary {
	return &FinancialSummary{
		TotalBalance:       decimal.Zero,
		MonthlyIncome:      decimal.Zero,
		MonthlyExpenses:    decimal.Zero,
		MonthlyNet:         decimal.Zero,
		TotalTransactions:  0,
		RecentTransactions: []*Transaction{},
		ComputedAt:         computedAt,
	}
}
