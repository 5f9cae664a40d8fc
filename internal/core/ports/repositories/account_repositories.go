package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts of a user ordered by name.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details. The balance column is not touched.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. It fails with ErrReferentialIntegrity while
	// transactions still reference it.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountBalanceAdjuster applies incremental balance changes.
type AccountBalanceAdjuster interface {
	// AdjustBalance adds delta (which may be negative) to the stored balance in a single
	// round trip. Returns ErrNotFound if the account does not exist.
	AdjustBalance(ctx context.Context, userID string, accountID string, delta decimal.Decimal, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceAdjuster
}
