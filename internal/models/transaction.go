package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	UserID              string          `db:"user_id"`
	Amount              decimal.Decimal `db:"amount"` // Positive value
	TransactionType     string          `db:"transaction_type"`
	CategoryID          string          `db:"category_id"`
	TransactionDate     time.Time       `db:"transaction_date"`
	Description         string          `db:"description"`
	AccountID           sql.NullString  `db:"account_id"`
	CreditCardID        sql.NullString  `db:"credit_card_id"`
	Notes               sql.NullString  `db:"notes"`
	Installments        int             `db:"installments"`
	CurrentInstallment  int             `db:"current_installment"`
	ParentTransactionID sql.NullString  `db:"parent_transaction_id"`
	BalancePending      bool            `db:"balance_pending"`
	AuditFields
}
