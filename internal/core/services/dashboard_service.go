package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/core/aggregation"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/state"
)

// SnapshotSource hands out the current state of a user.
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID string) (*state.Snapshot, error)
}

// dashboardService derives every view from the user's snapshot. Nothing it returns is
// persisted.
type dashboardService struct {
	BaseService
	state SnapshotSource
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(source SnapshotSource, options ...ServiceOption) portssvc.DashboardSvc {
	svc := &dashboardService{state: source}
	svc.apply(options)
	return svc
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) snapshot(ctx context.Context, userID string) (*state.Snapshot, error) {
	snap, err := s.state.Snapshot(ctx, userID)
	if err != nil {
		s.Report(ctx, "state.load", userID, err, nil)
		return nil, err
	}
	return snap, nil
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.DashboardData, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		s.LogDebug(ctx, "No data to build dashboard from", slog.String("user_id", userID))
		return nil, nil
	}
	return aggregation.BuildDashboard(aggregation.Input{
		Transactions: snap.Transactions,
		Accounts:     snap.Accounts,
		Categories:   snap.Categories,
		Filter:       filter,
	}, s.Now()), nil
}

func (s *dashboardService) ListFilteredTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	txns := aggregation.FilterTransactions(snap.Transactions, filter, s.Now())
	aggregation.SortByDateDesc(txns)
	return txns, nil
}

func (s *dashboardService) GetMonthlySummary(ctx context.Context, userID string, year int) ([]domain.MonthlyTotals, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregation.MonthlySummary(snap.Transactions, year), nil
}
