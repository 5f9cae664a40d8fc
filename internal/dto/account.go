package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name    string          `json:"name" binding:"required,max=100"`
	Type    string          `json:"type" binding:"required,max=50"`
	Balance decimal.Decimal `json:"balance"` // Opening balance
	Color   string          `json:"color" binding:"omitempty,hexcolor"`
	Icon    string          `json:"icon" binding:"omitempty,max=50"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// The balance is maintained by transactions and cannot be edited directly.
type UpdateAccountRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Type  *string `json:"type" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Type:          acc.Type,
		Balance:       acc.Balance,
		Color:         acc.Color,
		Icon:          acc.Icon,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
