package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target tracked by current vs. target amount.
type Goal struct {
	GoalID        string          `json:"goalID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	AuditFields
}
