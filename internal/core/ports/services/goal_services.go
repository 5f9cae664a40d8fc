package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/shopspring/decimal"
)

// GoalSvcFacade defines the operations on savings goals.
type GoalSvcFacade interface {
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error
	// AddContribution moves the goal's current amount by amount.
	AddContribution(ctx context.Context, userID string, goalID string, amount decimal.Decimal) (*domain.Goal, error)
}
