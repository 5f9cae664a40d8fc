package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or takes from a balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is a single income or expense entry. Installment purchases are stored as
// a parent (CurrentInstallment == 1) plus linked children pointing at it through
// ParentTransactionID.
type Transaction struct {
	TransactionID       string          `json:"transactionID"`
	UserID              string          `json:"userID"`
	Amount              decimal.Decimal `json:"amount"` // Always positive
	Type                TransactionType `json:"type"`
	CategoryID          string          `json:"categoryID"`
	Date                time.Time       `json:"date"` // Calendar date, UTC midnight
	Description         string          `json:"description"`
	AccountID           *string         `json:"accountID,omitempty"`
	CreditCardID        *string         `json:"creditCardID,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
	Installments        int             `json:"installments"`
	CurrentInstallment  int             `json:"currentInstallment"`
	ParentTransactionID *string         `json:"parentTransactionID,omitempty"`
	// BalancePending is set while the record's account effect has not been applied yet.
	BalancePending      bool            `json:"balancePending"`
	AuditFields
}

// HasAccount reports whether the transaction references an account.
func (t Transaction) HasAccount() bool {
	return t.AccountID != nil && *t.AccountID != ""
}

// MovesBalance reports whether the transaction's account effect belongs in the balance once
// applied. Installment children are scheduled entries and never move it.
func (t Transaction) MovesBalance() bool {
	return t.HasAccount() && t.ParentTransactionID == nil
}

// AffectsBalance reports whether the transaction is currently reflected in its account
// balance. A record whose effect is still pending is not.
func (t Transaction) AffectsBalance() bool {
	return t.MovesBalance() && !t.BalancePending
}

// IsInstallmentParent reports whether t is the first record of a split purchase.
func (t Transaction) IsInstallmentParent() bool {
	return t.Installments > 1 && t.ParentTransactionID == nil
}

// References reports whether the transaction points at the given account, card or category ID.
func (t Transaction) References(id string) bool {
	if t.CategoryID == id {
		return true
	}
	if t.AccountID != nil && *t.AccountID == id {
		return true
	}
	return t.CreditCardID != nil && *t.CreditCardID == id
}

// IncompleteInstallment describes a parent that has fewer children than its installment
// count requires, or whose balance effect is still pending.
type IncompleteInstallment struct {
	Parent              Transaction `json:"parent"`
	ExistingChildren    int         `json:"existingChildren"`
	MissingInstallments []int       `json:"missingInstallments"`
	BalancePending      bool        `json:"balancePending"`
}
