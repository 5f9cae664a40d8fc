package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline" binding:"required,isodate"`
	Color         string          `json:"color" binding:"omitempty,hexcolor"`
	Icon          string          `json:"icon" binding:"omitempty,max=50"`
}

// UpdateGoalRequest defines the fields that may change on a goal.
type UpdateGoalRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount  *decimal.Decimal `json:"targetAmount"`
	CurrentAmount *decimal.Decimal `json:"currentAmount"`
	Deadline      *string          `json:"deadline" binding:"omitempty,isodate"`
	Color         *string          `json:"color" binding:"omitempty,hexcolor"`
	Icon          *string          `json:"icon" binding:"omitempty,max=50"`
}

// GoalContributionRequest adds (or, when negative, withdraws) an amount from a goal.
type GoalContributionRequest struct {
	Amount Amount `json:"amount" swaggertype:"string" example:"150,00"`
}

// GoalResponse is the API view of a goal, including its progress.
type GoalResponse struct {
	GoalID          string          `json:"goalID"`
	Name            string          `json:"name"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CurrentAmount   decimal.Decimal `json:"currentAmount"`
	Deadline        string          `json:"deadline"`
	Progress        decimal.Decimal `json:"progress"`
	ProgressDisplay string          `json:"progressDisplay"`
	Color           string          `json:"color"`
	Icon            string          `json:"icon"`
}

func ToGoalResponse(g *domain.Goal) GoalResponse {
	progress := utils.CalculateProgress(g.CurrentAmount, g.TargetAmount)
	return GoalResponse{
		GoalID:          g.GoalID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		Deadline:        g.Deadline.Format(domain.DateLayout),
		Progress:        progress.Round(2),
		ProgressDisplay: utils.FormatPercent(progress),
		Color:           g.Color,
		Icon:            g.Icon,
	}
}

func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i := range goals {
		res[i] = ToGoalResponse(&goals[i])
	}
	return res
}
