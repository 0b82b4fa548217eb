package dto

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// SummaryResponse is the wire form of a financial summary. Monetary values
// are serialized as decimal strings to avoid float rounding on the client.
type SummaryResponse struct {
	TotalBalance       string                `json:"total_balance"`
	MonthlyIncome      string                `json:"monthly_income"`
	MonthlyExpenses    string                `json:"monthly_expenses"`
	MonthlyNet         string                `json:"monthly_net"`
	TotalTransactions  int                   `json:"total_transactions"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	ComputedAt         time.Time             `json:"computed_at"`
}

// SummaryResponseFromEntity converts a FinancialSummary to its wire form.
func SummaryResponseFromEntity(summary *entity.FinancialSummary) SummaryResponse {
	recent := make([]TransactionResponse, len(summary.RecentTransactions))
	for i, tx := range summary.RecentTransactions {
		recent[i] = TransactionResponseFromEntity(tx)
	}

	return SummaryResponse{
		TotalBalance:       summary.TotalBalance.StringFixed(2),
		MonthlyIncome:      summary.MonthlyIncome.StringFixed(2),
		MonthlyExpenses:    summary.MonthlyExpenses.StringFixed(2),
		MonthlyNet:         summary.MonthlyNet.StringFixed(2),
		TotalTransactions:  summary.TotalTransactions,
		RecentTransactions: recent,
		ComputedAt:         summary.ComputedAt,
	}
}
