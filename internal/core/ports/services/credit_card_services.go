package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// CreditCardSvcFacade defines the operations on credit cards.
type CreditCardSvcFacade interface {
	GetCreditCardByID(ctx context.Context, userID string, creditCardID string) (*domain.CreditCard, error)
	ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error)
	CreateCreditCard(ctx context.Context, userID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error)
	UpdateCreditCard(ctx context.Context, userID string, creditCardID string, req dto.UpdateCreditCardRequest) (*domain.CreditCard, error)
	DeleteCreditCard(ctx context.Context, userID string, creditCardID string) error
}
