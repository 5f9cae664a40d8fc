package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodMode selects the date window applied to transactions.
type PeriodMode string

const (
	PeriodThisMonth PeriodMode = "thisMonth"
	PeriodLastMonth PeriodMode = "lastMonth"
	PeriodThisYear  PeriodMode = "thisYear"
	PeriodCustom    PeriodMode = "custom"
)

// PeriodFilter is the active period. Start and End are only read in custom mode.
type PeriodFilter struct {
	Mode  PeriodMode `json:"mode"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// TransactionFilter combines the period with optional exact-match filters.
// A nil pointer means "none selected".
type TransactionFilter struct {
	Period       PeriodFilter
	UserID       *string
	AccountID    *string
	CreditCardID *string
}

// AccountBalance is a passthrough snapshot row of an account.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color"`
}

// CategoryExpense is the total of expenses filed under one category.
type CategoryExpense struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Color      string          `json:"color"`
}

// IncomeVsExpense holds the totals of the filtered set by type.
type IncomeVsExpense struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DashboardData is derived on demand and never persisted.
type DashboardData struct {
	TotalBalance       decimal.Decimal   `json:"totalBalance"`
	AccountBalances    []AccountBalance  `json:"accountBalances"`
	CategoryExpenses   []CategoryExpense `json:"categoryExpenses"`
	IncomeVsExpense    IncomeVsExpense   `json:"incomeVsExpense"`
	RecentTransactions []Transaction     `json:"recentTransactions"`
}

// MonthlyTotals is one month of a yearly cash-flow summary.
type MonthlyTotals struct {
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
