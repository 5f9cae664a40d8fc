package dto

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditCardRequest defines the data needed to register a credit card.
type CreateCreditCardRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	DueDay      int             `json:"dueDay" binding:"required,min=1,max=31"`
	CloseDay    int             `json:"closeDay" binding:"required,min=1,max=31"`
	Color       string          `json:"color" binding:"omitempty,hexcolor"`
	Icon        string          `json:"icon" binding:"omitempty,max=50"`
}

// UpdateCreditCardRequest defines the fields that may change on a credit card.
type UpdateCreditCardRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	DueDay      *int             `json:"dueDay" binding:"omitempty,min=1,max=31"`
	CloseDay    *int             `json:"closeDay" binding:"omitempty,min=1,max=31"`
	Color       *string          `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string          `json:"icon" binding:"omitempty,max=50"`
}

// CreditCardResponse is the API view of a credit card.
type CreditCardResponse struct {
	CreditCardID string          `json:"creditCardID"`
	Name         string          `json:"name"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	DueDay       int             `json:"dueDay"`
	CloseDay     int             `json:"closeDay"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
}

// ToCreditCardResponse converts a domain.CreditCard to its response DTO.
func ToCreditCardResponse(c *domain.CreditCard) CreditCardResponse {
	return CreditCardResponse{
		CreditCardID: c.CreditCardID,
		Name:         c.Name,
		CreditLimit:  c.CreditLimit,
		DueDay:       c.DueDay,
		CloseDay:     c.CloseDay,
		Color:        c.Color,
		Icon:         c.Icon,
	}
}

func ToListCreditCardResponse(cards []domain.CreditCard) []CreditCardResponse {
	res := make([]CreditCardResponse, len(cards))
	for i := range cards {
		res[i] = ToCreditCardResponse(&cards[i])
	}
	return res
}
