package aggregation

import (
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// RecentTransactionsLimit caps the recent transactions list of the dashboard.
	RecentTransactionsLimit = 10

	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#888888"
)

// Input is the raw data a dashboard is computed from.
type Input struct {
	Transactions []domain.Transaction
	Accounts     []domain.Account
	Categories   []domain.Category
	Filter       domain.TransactionFilter
}

// BuildDashboard computes the dashboard for the filtered transactions. Account figures are
// never filtered. It returns nil when there are neither matching transactions nor accounts,
// so callers can tell "no data yet" apart from zero values.
func BuildDashboard(in Input, now time.Time) *domain.DashboardData {
	filtered := FilterTransactions(in.Transactions, in.Filter, now)
	if len(filtered) == 0 && len(in.Accounts) == 0 {
		return nil
	}

	total := decimal.Zero
	balances := make([]domain.AccountBalance, 0, len(in.Accounts))
	for _, a := range in.Accounts {
		total = total.Add(a.Balance)
		balances = append(balances, domain.AccountBalance{
			AccountID: a.AccountID,
			Name:      a.Name,
			Balance:   a.Balance,
			Color:     a.Color,
		})
	}

	return &domain.DashboardData{
		TotalBalance:       total,
		AccountBalances:    balances,
		CategoryExpenses:   CategoryExpenses(filtered, in.Categories),
		IncomeVsExpense:    Totals(filtered),
		RecentTransactions: Recent(filtered, RecentTransactionsLimit),
	}
}

// CategoryExpenses groups expense transactions by category and sums them. Categories that
// can no longer be found are reported as Unknown. Rows are ordered by amount descending.
func CategoryExpenses(txns []domain.Transaction, categories []domain.Category) []domain.CategoryExpense {
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.CategoryID] = c
	}

	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Type != domain.Expense {
			continue
		}
		sums[t.CategoryID] = sums[t.CategoryID].Add(t.Amount)
	}

	rows := make([]domain.CategoryExpense, 0, len(sums))
	for id, amount := range sums {
		row := domain.CategoryExpense{
			CategoryID: id,
			Name:       UnknownCategoryName,
			Color:      UnknownCategoryColor,
			Amount:     amount,
		}
		if c, ok := byID[id]; ok {
			row.Name = c.Name
			row.Color = c.Color
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].CategoryID < rows[j].CategoryID
	})
	return rows
}

// Totals sums income and expense amounts separately.
func Totals(txns []domain.Transaction) domain.IncomeVsExpense {
	res := domain.IncomeVsExpense{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case domain.Income:
			res.Income = res.Income.Add(t.Amount)
		case domain.Expense:
			res.Expense = res.Expense.Add(t.Amount)
		}
	}
	return res
}

// Recent returns up to limit transactions, newest first. It sorts a copy.
func Recent(txns []domain.Transaction, limit int) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	SortByDateDesc(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// SortByDateDesc orders transactions by date, then creation time, newest first, with the
// ID as a final tie breaker.
func SortByDateDesc(txns []domain.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})
}

// MonthlySummary buckets the year's transactions per month.
func MonthlySummary(txns []domain.Transaction, year int) []domain.MonthlyTotals {
	months := make([]domain.MonthlyTotals, 12)
	for i := range months {
		months[i] = domain.MonthlyTotals{
			Month:   time.Month(i + 1),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Net:     decimal.Zero,
		}
	}
	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		m := &months[t.Date.Month()-1]
		switch t.Type {
		case domain.Income:
			m.Income = m.Income.Add(t.Amount)
		case domain.Expense:
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	for i := range months {
		months[i].Net = months[i].Income.Sub(months[i].Expense)
	}
	return months
}
