package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns a page of transactions and the token of the next page, if any.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// ListInstallmentGroup returns every record of the split purchase the transaction belongs to.
	ListInstallmentGroup(ctx context.Context, userID string, transactionID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the mutations that keep account balances reconciled.
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction, expanding installments when requested.
	// The returned slice holds the parent first.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) ([]domain.Transaction, error)

	// UpdateTransaction edits a single record. Sibling installments are not changed.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the record's balance effect and removes it.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// InstallmentRepairSvc finds and fixes split purchases that lost children to a partial failure.
type InstallmentRepairSvc interface {
	ListIncompleteInstallments(ctx context.Context, userID string) ([]domain.IncompleteInstallment, error)
	RepairInstallments(ctx context.Context, userID string, parentID string) ([]domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	InstallmentRepairSvc
}
