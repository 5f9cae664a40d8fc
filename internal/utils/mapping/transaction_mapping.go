package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		UserID:              d.UserID,
		Amount:              d.Amount,
		TransactionType:     string(d.Type),
		CategoryID:          d.CategoryID,
		TransactionDate:     domain.Date(d.Date),
		Description:         d.Description,
		AccountID:           ToNullString(d.AccountID),
		CreditCardID:        ToNullString(d.CreditCardID),
		Notes:               ToNullString(d.Notes),
		Installments:        d.Installments,
		CurrentInstallment:  d.CurrentInstallment,
		ParentTransactionID: ToNullString(d.ParentTransactionID),
		BalancePending:      d.BalancePending,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		UserID:              m.UserID,
		Amount:              m.Amount,
		Type:                domain.TransactionType(m.TransactionType),
		CategoryID:          m.CategoryID,
		Date:                domain.Date(m.TransactionDate),
		Description:         m.Description,
		AccountID:           FromNullString(m.AccountID),
		CreditCardID:        FromNullString(m.CreditCardID),
		Notes:               FromNullString(m.Notes),
		Installments:        m.Installments,
		CurrentInstallment:  m.CurrentInstallment,
		ParentTransactionID: FromNullString(m.ParentTransactionID),
		BalancePending:      m.BalancePending,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
