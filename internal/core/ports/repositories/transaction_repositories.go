package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
)

// ReferenceField names the transaction column a referential check runs against.
type ReferenceField string

const (
	RefAccount    ReferenceField = "account_id"
	RefCreditCard ReferenceField = "credit_card_id"
	RefCategory   ReferenceField = "category_id"
)

// ListTransactionsParams filters a page of transactions. Nil fields are not applied.
type ListTransactionsParams struct {
	From         *time.Time
	To           *time.Time
	OwnerUserID  *string
	AccountID    *string
	CreditCardID *string
	Limit        int
	After        *pagination.Cursor
}

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns every transaction of the user, newest first.
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactionsPage returns one page of transactions in (date, created_at, id) descending order.
	ListTransactionsPage(ctx context.Context, userID string, params ListTransactionsParams) ([]domain.Transaction, error)

	// FindInstallmentGroup returns the parent and all children of a split purchase ordered by installment.
	FindInstallmentGroup(ctx context.Context, userID string, parentID string) ([]domain.Transaction, error)

	// CountTransactionsReferencing counts transactions whose field equals id.
	CountTransactionsReferencing(ctx context.Context, field ReferenceField, id string) (int, error)
}

// TransactionWriter defines write operations for transactions. Every call is a single
// independent round trip.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
