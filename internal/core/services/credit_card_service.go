package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type creditCardService struct {
	BaseService
	cardRepo portsrepo.CreditCardRepositoryFacade
	txnRepo  portsrepo.TransactionReader
}

// NewCreditCardService creates the credit card service.
func NewCreditCardService(repo portsrepo.CreditCardRepositoryFacade, txnRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.CreditCardSvcFacade {
	svc := &creditCardService{cardRepo: repo, txnRepo: txnRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.CreditCardSvcFacade = (*creditCardService)(nil)

func validateCycleDay(field string, day int) error {
	if day < 1 || day > 31 {
		return apperrors.NewValidationError(field, "must be between 1 and 31")
	}
	return nil
}

func (s *creditCardService) CreateCreditCard(ctx context.Context, userID string, req dto.CreateCreditCardRequest) (*domain.CreditCard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if req.CreditLimit.IsNegative() {
		return nil, apperrors.NewValidationError("creditLimit", "must not be negative")
	}
	if err := validateCycleDay("dueDay", req.DueDay); err != nil {
		return nil, err
	}
	if err := validateCycleDay("closeDay", req.CloseDay); err != nil {
		return nil, err
	}

	now := s.Now()
	card := domain.CreditCard{
		CreditCardID: uuid.NewString(),
		UserID:       userID,
		Name:         name,
		CreditLimit:  req.CreditLimit.Add(decimal.Zero),
		DueDay:       req.DueDay,
		CloseDay:     req.CloseDay,
		Color:        req.Color,
		Icon:         req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.cardRepo.SaveCreditCard(ctx, card); err != nil {
		err = apperrors.Persistence("save credit card", err)
		s.Report(ctx, "credit_card.create", userID, err, nil)
		return nil, err
	}
	s.Invalidate(userID)
	s.LogInfo(ctx, "Credit card created", slog.String("credit_card_id", card.CreditCardID))
	return &card, nil
}

func (s *creditCardService) GetCreditCardByID(ctx context.Context, userID string, creditCardID string) (*domain.CreditCard, error) {
	card, err := s.cardRepo.FindCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return nil, apperrors.Persistence("find credit card", err)
	}
	return card, nil
}

func (s *creditCardService) ListCreditCards(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	cards, err := s.cardRepo.ListCreditCards(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list credit cards", err)
	}
	return cards, nil
}

func (s *creditCardService) UpdateCreditCard(ctx context.Context, userID string, creditCardID string, req dto.UpdateCreditCardRequest) (*domain.CreditCard, error) {
	card, err := s.GetCreditCardByID(ctx, userID, creditCardID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		card.Name = name
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, apperrors.NewValidationError("creditLimit", "must not be negative")
		}
		card.CreditLimit = *req.CreditLimit
	}
	if req.DueDay != nil {
		if err := validateCycleDay("dueDay", *req.DueDay); err != nil {
			return nil, err
		}
		card.DueDay = *req.DueDay
	}
	if req.CloseDay != nil {
		if err := validateCycleDay("closeDay", *req.CloseDay); err != nil {
			return nil, err
		}
		card.CloseDay = *req.CloseDay
	}
	if req.Color != nil {
		card.Color = *req.Color
	}
	if req.Icon != nil {
		card.Icon = *req.Icon
	}
	card.LastUpdatedAt = s.Now()
	card.LastUpdatedBy = userID

	if err := s.cardRepo.UpdateCreditCard(ctx, *card); err != nil {
		err = apperrors.Persistence("update credit card", err)
		s.Report(ctx, "credit_card.update", userID, err, map[string]any{"credit_card_id": creditCardID})
		return nil, err
	}
	s.Invalidate(userID)
	return card, nil
}

func (s *creditCardService) DeleteCreditCard(ctx context.Context, userID string, creditCardID string) error {
	if _, err := s.GetCreditCardByID(ctx, userID, creditCardID); err != nil {
		return err
	}
	if err := s.ensureUnreferenced(ctx, s.txnRepo, portsrepo.RefCreditCard, creditCardID, "credit card"); err != nil {
		s.Report(ctx, "credit_card.delete", userID, err, map[string]any{"credit_card_id": creditCardID})
		return err
	}
	if err := s.cardRepo.DeleteCreditCard(ctx, userID, creditCardID); err != nil {
		err = apperrors.Persistence("delete credit card", err)
		s.Report(ctx, "credit_card.delete", userID, err, map[string]any{"credit_card_id": creditCardID})
		return err
	}
	s.Invalidate(userID)
	return nil
}
