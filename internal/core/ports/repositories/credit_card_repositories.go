package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreditCardReader defines read operations for credit cards
type CreditCardReader interface {
	FindCreditCardByID(ctx context.Context, userID string, creditCardID string) (*domain.CreditCard, error)
	ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error)
}

// CreditCardWriter defines write operations for credit cards
type CreditCardWriter interface {
	SaveCreditCard(ctx context.Context, card domain.CreditCard) error
	UpdateCreditCard(ctx context.Context, card domain.CreditCard) error
	DeleteCreditCard(ctx context.Context, userID string, creditCardID string) error
}

// CreditCardRepositoryFacade combines all credit card repository interfaces
type CreditCardRepositoryFacade interface {
	CreditCardReader
	CreditCardWriter
}
