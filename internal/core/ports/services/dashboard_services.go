package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// DashboardSvc serves the derived views. A nil dashboard means there is no data yet.
type DashboardSvc interface {
	GetDashboard(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.DashboardData, error)
	ListFilteredTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	GetMonthlySummary(ctx context.Context, userID string, year int) ([]domain.MonthlyTotals, error)
}
