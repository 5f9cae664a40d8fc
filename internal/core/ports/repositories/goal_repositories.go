package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// GoalReader defines read operations for goals
type GoalReader interface {
	FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error)
	// ListGoals returns the user's goals ordered by deadline.
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goals
type GoalWriter interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}

// GoalRepositoryFacade combines all goal repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
