package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// FilterParams are the query parameters shared by the dashboard and transaction listings.
type FilterParams struct {
	Period       string `form:"period" binding:"omitempty,oneof=thisMonth lastMonth thisYear custom"`
	Start        string `form:"start" binding:"omitempty,isodate"`
	End          string `form:"end" binding:"omitempty,isodate"`
	UserID       string `form:"userID"`
	AccountID    string `form:"accountID"`
	CreditCardID string `form:"creditCardID"`
}

// ToFilter converts query parameters into a domain filter. Empty values mean "none selected".
func (p FilterParams) ToFilter() (domain.TransactionFilter, error) {
	f := domain.TransactionFilter{Period: domain.PeriodFilter{Mode: domain.PeriodThisMonth}}
	if p.Period != "" {
		f.Period.Mode = domain.PeriodMode(p.Period)
	}
	if p.Start != "" {
		start, err := time.Parse(domain.DateLayout, p.Start)
		if err != nil {
			return f, apperrors.NewValidationError("start", "must be a date in YYYY-MM-DD format")
		}
		f.Period.Start = &start
	}
	if p.End != "" {
		end, err := time.Parse(domain.DateLayout, p.End)
		if err != nil {
			return f, apperrors.NewValidationError("end", "must be a date in YYYY-MM-DD format")
		}
		f.Period.End = &end
	}
	if f.Period.Start != nil && f.Period.End != nil && f.Period.End.Before(*f.Period.Start) {
		return f, apperrors.NewValidationError("end", "must not be before start")
	}
	if p.UserID != "" {
		f.UserID = &p.UserID
	}
	if p.AccountID != "" {
		f.AccountID = &p.AccountID
	}
	if p.CreditCardID != "" {
		f.CreditCardID = &p.CreditCardID
	}
	return f, nil
}

// ListTransactionsParams adds cursor pagination to the filter parameters.
type ListTransactionsParams struct {
	FilterParams
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// DashboardResponse is the API view of the dashboard. Empty is true when there is no data yet.
type DashboardResponse struct {
	Empty               bool                     `json:"empty"`
	TotalBalance        decimal.Decimal          `json:"totalBalance"`
	TotalBalanceDisplay string                   `json:"totalBalanceDisplay"`
	AccountBalances     []domain.AccountBalance  `json:"accountBalances"`
	CategoryExpenses    []domain.CategoryExpense `json:"categoryExpenses"`
	IncomeVsExpense     domain.IncomeVsExpense   `json:"incomeVsExpense"`
	RecentTransactions  []TransactionResponse    `json:"recentTransactions"`
}

// ToDashboardResponse converts dashboard data; nil data yields an empty response.
func ToDashboardResponse(d *domain.DashboardData) DashboardResponse {
	if d == nil {
		return DashboardResponse{
			Empty:              true,
			AccountBalances:    []domain.AccountBalance{},
			CategoryExpenses:   []domain.CategoryExpense{},
			RecentTransactions: []TransactionResponse{},
		}
	}
	return DashboardResponse{
		TotalBalance:        d.TotalBalance,
		TotalBalanceDisplay: utils.FormatCurrency(d.TotalBalance),
		AccountBalances:     d.AccountBalances,
		CategoryExpenses:    d.CategoryExpenses,
		IncomeVsExpense:     d.IncomeVsExpense,
		RecentTransactions:  ToListTransactionResponse(d.RecentTransactions),
	}
}

// MonthlySummaryResponse is the yearly cash-flow report.
type MonthlySummaryResponse struct {
	Year   int                    `json:"year"`
	Months []domain.MonthlyTotals `json:"months"`
}
