package summary

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/domain/entity"
)

func record(txType entity.TransactionType, amount string, date string) *entity.Transaction {
	parsed, _ := time.Parse("2006-01-02", date)
	return &entity.Transaction{
		ID:      uuid.New(),
		OwnerID: uuid.Nil,
		Date:    parsed,
		Amount:  decimal.RequireFromString(amount),
		Type:    txType,
	}
}

func mustEqual(t *testing.T, field string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	got := Aggregate(nil, now)

	mustEqual(t, "total_balance", got.TotalBalance, decimal.Zero)
	mustEqual(t, "monthly_income", got.MonthlyIncome, decimal.Zero)
	mustEqual(t, "monthly_expenses", got.MonthlyExpenses, decimal.Zero)
	mustEqual(t, "monthly_net", got.MonthlyNet, decimal.Zero)
	if got.TotalTransactions != 0 {
		t.Errorf("total_transactions: expected 0, got %d", got.TotalTransactions)
	}
	if len(got.RecentTransactions) != 0 {
		t.Errorf("recent_transactions: expected empty, got %d", len(got.RecentTransactions))
	}
}

func TestAggregate_MixedMonths(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		record(entity.TransactionTypeIncome, "1000", "2024-01-15"),
		record(entity.TransactionTypeExpense, "300", "2024-01-20"),
		record(entity.TransactionTypeIncome, "500", "2023-12-01"),
	}

	got := Aggregate(records, now)

	mustEqual(t, "total_balance", got.TotalBalance, decimal.RequireFromString("1200"))
	mustEqual(t, "monthly_income", got.MonthlyIncome, decimal.RequireFromString("1000"))
	mustEqual(t, "monthly_expenses", got.MonthlyExpenses, decimal.RequireFromString("300"))
	mustEqual(t, "monthly_net", got.MonthlyNet, decimal.RequireFromString("700"))
	if got.TotalTransactions != 3 {
		t.Errorf("total_transactions: expected 3, got %d", got.TotalTransactions)
	}
}

func TestAggregate_MonthlyNetIdentity(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		record(entity.TransactionTypeIncome, "2500.50", "2024-06-01"),
		record(entity.TransactionTypeExpense, "120.25", "2024-06-03"),
		record(entity.TransactionTypeExpense, "999.99", "2024-06-10"),
		record(entity.TransactionTypeIncome, "10", "2024-05-31"),
		record(entity.TransactionTypeExpense, "0.01", "2024-06-15"),
	}

	got := Aggregate(records, now)

	mustEqual(t, "monthly_net", got.MonthlyNet, got.MonthlyIncome.Sub(got.MonthlyExpenses))
}

func TestAggregate_OrderInvariance(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		record(entity.TransactionTypeIncome, "100.10", "2024-03-01"),
		record(entity.TransactionTypeExpense, "42.42", "2024-03-02"),
		record(entity.TransactionTypeIncome, "7", "2024-02-28"),
		record(entity.TransactionTypeExpense, "0.99", "2024-03-19"),
		record(entity.TransactionTypeIncome, "12000", "2023-11-05"),
	}

	base := Aggregate(records, now)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]*entity.Transaction, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled, now)

		mustEqual(t, "total_balance", got.TotalBalance, base.TotalBalance)
		mustEqual(t, "monthly_income", got.MonthlyIncome, base.MonthlyIncome)
		mustEqual(t, "monthly_expenses", got.MonthlyExpenses, base.MonthlyExpenses)
		if got.TotalTransactions != base.TotalTransactions {
			t.Errorf("total_transactions changed with input order")
		}
	}
}

func TestAggregate_Idempotence(t *testing.T) {
	now := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		record(entity.TransactionTypeIncome, "55", "2024-07-01"),
		record(entity.TransactionTypeExpense, "5", "2024-07-02"),
	}

	first := Aggregate(records, now)
	second := Aggregate(records, now)

	mustEqual(t, "total_balance", second.TotalBalance, first.TotalBalance)
	mustEqual(t, "monthly_net", second.MonthlyNet, first.MonthlyNet)
	if len(first.RecentTransactions) != len(second.RecentTransactions) {
		t.Fatalf("recent view length differs between runs")
	}
	for i := range first.RecentTransactions {
		if first.RecentTransactions[i].ID != second.RecentTransactions[i].ID {
			t.Errorf("recent view order differs at index %d", i)
		}
	}
}

func TestAggregate_RecentViewSortedAndTruncated(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	records := make([]*entity.Transaction, 0, 15)
	for day := 1; day <= 15; day++ {
		records = append(records, record(entity.TransactionTypeExpense, "1", time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")))
	}

	got := Aggregate(records, now)

	if len(got.RecentTransactions) != RecentLimit {
		t.Fatalf("expected %d recent transactions, got %d", RecentLimit, len(got.RecentTransactions))
	}
	for i := 1; i < len(got.RecentTransactions); i++ {
		if got.RecentTransactions[i].Date.After(got.RecentTransactions[i-1].Date) {
			t.Errorf("recent view not sorted descending at index %d", i)
		}
	}
	if got.RecentTransactions[0].Date.Day() != 15 {
		t.Errorf("expected newest transaction first, got day %d", got.RecentTransactions[0].Date.Day())
	}
}

func TestAggregate_MalformedRecordsDegradeGracefully(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	zeroDate := &entity.Transaction{
		ID:     uuid.New(),
		Amount: decimal.RequireFromString("100"),
		Type:   entity.TransactionTypeIncome,
		// Date left zero: malformed, excluded from monthly sums.
	}
	unknownType := &entity.Transaction{
		ID:     uuid.New(),
		Date:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("50"),
		Type:   entity.TransactionType("transfer"),
	}
	records := []*entity.Transaction{
		zeroDate,
		unknownType,
		nil,
		record(entity.TransactionTypeExpense, "30", "2024-01-05"),
	}

	got := Aggregate(records, now)

	// Zero-date income still counts toward the all-time balance.
	mustEqual(t, "total_balance", got.TotalBalance, decimal.RequireFromString("70"))
	mustEqual(t, "monthly_income", got.MonthlyIncome, decimal.Zero)
	mustEqual(t, "monthly_expenses", got.MonthlyExpenses, decimal.RequireFromString("30"))
	if got.TotalTransactions != 3 {
		t.Errorf("total_transactions: expected 3 (nil skipped), got %d", got.TotalTransactions)
	}
}

func TestAggregate_NegativeAmountsFlowThrough(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	records := []*entity.Transaction{
		record(entity.TransactionTypeExpense, "-25", "2024-01-10"),
	}

	got := Aggregate(records, now)

	// No clamping: subtracting a negative expense raises the balance.
	mustEqual(t, "total_balance", got.TotalBalance, decimal.RequireFromString("25"))
	mustEqual(t, "monthly_expenses", got.MonthlyExpenses, decimal.RequireFromString("-25"))
}
