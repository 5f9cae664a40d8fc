package services

import (
	"context"
	"fmt"
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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionReader
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		txnRepo:     txnRepo,
	}
	svc.apply(options)
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, apperrors.NewValidationError("type", "is required")
	}

	now := s.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Type:      strings.TrimSpace(req.Type),
		Balance:   req.Balance.Add(decimal.Zero),
		Color:     req.Color,
		Icon:      req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_name", name))
		err = apperrors.Persistence("save account", err)
		s.Report(ctx, "account.create", userID, err, nil)
		return nil, err
	}
	s.Invalidate(userID)

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, apperrors.Persistence("find account", err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list accounts", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		account.Name = name
	}
	if req.Type != nil {
		t := strings.TrimSpace(*req.Type)
		if t == "" {
			return nil, apperrors.NewValidationError("type", "must not be empty")
		}
		account.Type = t
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	account.LastUpdatedAt = s.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		err = apperrors.Persistence("update account", err)
		s.Report(ctx, "account.update", userID, err, map[string]any{"account_id": accountID})
		return nil, err
	}
	s.Invalidate(userID)
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.ensureUnreferenced(ctx, s.txnRepo, portsrepo.RefAccount, accountID, "account"); err != nil {
		s.Report(ctx, "account.delete", userID, err, map[string]any{"account_id": accountID})
		return err
	}
	if err := s.accountRepo.DeleteAccount(ctx, userID, accountID); err != nil {
		err = apperrors.Persistence(fmt.Sprintf("delete account %s", accountID), err)
		s.Report(ctx, "account.delete", userID, err, map[string]any{"account_id": accountID})
		return err
	}
	s.Invalidate(userID)
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
