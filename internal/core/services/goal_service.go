package services

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates the goal service.
func NewGoalService(repo portsrepo.GoalRepositoryFacade, options ...ServiceOption) portssvc.GoalSvcFacade {
	svc := &goalService{goalRepo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func validateGoalAmounts(target, current decimal.Decimal) error {
	if !target.IsPositive() {
		return apperrors.NewValidationError("targetAmount", "must be greater than zero")
	}
	if current.IsNegative() {
		return apperrors.NewValidationError("currentAmount", "must not be negative")
	}
	return nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list goals", err)
	}
	return goals, nil
}

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	current := req.CurrentAmount.Add(decimal.Zero)
	if err := validateGoalAmounts(req.TargetAmount, current); err != nil {
		return nil, err
	}
	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: current,
		Deadline:      deadline,
		Color:         req.Color,
		Icon:          req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		err = apperrors.Persistence("save goal", err)
		s.Report(ctx, "goal.create", userID, err, nil)
		return nil, err
	}
	s.Invalidate(userID)
	return &goal, nil
}

func (s *goalService) find(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, apperrors.Persistence("find goal", err)
	}
	return goal, nil
}

func (s *goalService) save(ctx context.Context, userID string, goal *domain.Goal, op string) (*domain.Goal, error) {
	goal.LastUpdatedAt = s.Now()
	goal.LastUpdatedBy = userID
	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		err = apperrors.Persistence("update goal", err)
		s.Report(ctx, op, userID, err, map[string]any{"goal_id": goal.GoalID})
		return nil, err
	}
	s.Invalidate(userID)
	return goal, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.find(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		goal.Name = name
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		goal.CurrentAmount = *req.CurrentAmount
	}
	if err := validateGoalAmounts(goal.TargetAmount, goal.CurrentAmount); err != nil {
		return nil, err
	}
	if req.Deadline != nil {
		deadline, err := parseDate("deadline", *req.Deadline)
		if err != nil {
			return nil, err
		}
		goal.Deadline = deadline
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	return s.save(ctx, userID, goal, "goal.update")
}

func (s *goalService) AddContribution(ctx context.Context, userID string, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.IsZero() {
		return nil, apperrors.NewValidationError("amount", "must not be zero")
	}
	goal, err := s.find(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	next := goal.CurrentAmount.Add(amount)
	if next.IsNegative() {
		return nil, apperrors.NewValidationError("amount", "withdrawal exceeds the goal's current amount")
	}
	goal.CurrentAmount = next
	return s.save(ctx, userID, goal, "goal.contribute")
}

func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if _, err := s.find(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		err = apperrors.Persistence("delete goal", err)
		s.Report(ctx, "goal.delete", userID, err, map[string]any{"goal_id": goalID})
		return err
	}
	s.Invalidate(userID)
	return nil
}
