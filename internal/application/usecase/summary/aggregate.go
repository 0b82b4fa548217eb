// Package summary contains the financial summary aggregation logic.
package summary

import (
	"sort"
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// RecentLimit is the number of transactions kept in the recent view.
const RecentLimit = 10

// Aggregate reduces an owner's full transaction list into one
// FinancialSummary relative to the reference instant now.
//
// The reduction is a pure function of its inputs: same records and same
// instant always produce the same summary, regardless of input order.
// Individual malformed records degrade gracefully instead of failing the
// batch: a zero date is excluded from the monthly sums (but still counted
// in the balance and total), and an unrecognized type contributes nothing
// to any sum. Amounts are magnitudes; negative values flow through the
// arithmetic unchanged, validation belongs to the write path.
func Aggregate(records []*entity.Transaction, now time.Time) *entity.FinancialSummary {
	result := entity.EmptySummary(now)

	year, month := now.UTC().Year(), now.UTC().Month()

	kept := make([]*entity.Transaction, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		kept = append(kept, record)

		inCurrentMonth := isInMonth(record.Date, year, month)

		switch record.Type {
		case entity.TransactionTypeIncome:
			result.TotalBalance = result.TotalBalance.Add(record.Amount)
			if inCurrentMonth {
				result.MonthlyIncome = result.MonthlyIncome.Add(record.Amount)
			}
		case entity.TransactionTypeExpense:
			result.TotalBalance = result.TotalBalance.Sub(record.Amount)
			if inCurrentMonth {
				result.MonthlyExpenses = result.MonthlyExpenses.Add(record.Amount)
			}
		}
	}

	result.MonthlyNet = result.MonthlyIncome.Sub(result.MonthlyExpenses)
	result.TotalTransactions = len(kept)
	result.RecentTransactions = recentView(kept, RecentLimit)

	return result
}

// isInMonth reports whether the date falls in the given calendar year-month.
// A zero date counts as malformed and is never in the current month.
func isInMonth(date time.Time, year int, month time.Month) bool {
	if date.IsZero() {
		return false
	}
	d := date.UTC()
	return d.Year() == year && d.Month() == month
}

// recentView returns the records sorted by date descending, truncated to
// limit. Ties keep their input order so repeated aggregation is stable.
// Zero dates sort last.
func recentView(records []*entity.Transaction, limit int) []*entity.Transaction {
	recent := make([]*entity.Transaction, len(records))
	copy(recent, records)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}

	return recent
}
