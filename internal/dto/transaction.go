package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction. When
// Installments is greater than one the purchase is expanded into monthly records and
// AmountMode states whether Amount is the per-installment value or the total price.
type CreateTransactionRequest struct {
	Amount       Amount                 `json:"amount" swaggertype:"string" example:"1.234,56"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	CategoryID   string                 `json:"categoryID" binding:"required"`
	Date         string                 `json:"date" binding:"required,isodate"`
	Description  string                 `json:"description" binding:"required,max=255"`
	AccountID    *string                `json:"accountID"`
	CreditCardID *string                `json:"creditCardID"`
	Notes        *string                `json:"notes" binding:"omitempty,max=1000"`
	Installments int                    `json:"installments" binding:"omitempty,min=1,max=48"`
	AmountMode   string                 `json:"amountMode" binding:"omitempty,oneof=perInstallment total"`
}

// UpdateTransactionRequest replaces the editable fields of a single transaction record.
// Installment metadata is not editable.
type UpdateTransactionRequest struct {
	Amount       Amount                 `json:"amount" swaggertype:"string" example:"45,00"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	CategoryID   string                 `json:"categoryID" binding:"required"`
	Date         string                 `json:"date" binding:"required,isodate"`
	Description  string                 `json:"description" binding:"required,max=255"`
	AccountID    *string                `json:"accountID"`
	CreditCardID *string                `json:"creditCardID"`
	Notes        *string                `json:"notes" binding:"omitempty,max=1000"`
}

// TransactionResponse is the API view of a transaction.
type TransactionResponse struct {
	TransactionID       string                 `json:"transactionID"`
	UserID              string                 `json:"userID"`
	Amount              decimal.Decimal        `json:"amount"`
	AmountDisplay       string                 `json:"amountDisplay"`
	Type                domain.TransactionType `json:"type"`
	CategoryID          string                 `json:"categoryID"`
	Date                string                 `json:"date"`
	DateDisplay         string                 `json:"dateDisplay"`
	Description         string                 `json:"description"`
	AccountID           *string                `json:"accountID,omitempty"`
	CreditCardID        *string                `json:"creditCardID,omitempty"`
	Notes               *string                `json:"notes,omitempty"`
	Installments        int                    `json:"installments"`
	CurrentInstallment  int                    `json:"currentInstallment"`
	InstallmentLabel    string                 `json:"installmentLabel,omitempty"`
	ParentTransactionID *string                `json:"parentTransactionID,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdatedAt       time.Time              `json:"lastUpdatedAt"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID:       t.TransactionID,
		UserID:              t.UserID,
		Amount:              t.Amount,
		AmountDisplay:       utils.FormatCurrency(t.Amount),
		Type:                t.Type,
		CategoryID:          t.CategoryID,
		Date:                t.Date.Format(domain.DateLayout),
		DateDisplay:         utils.FormatDate(t.Date),
		Description:         t.Description,
		AccountID:           t.AccountID,
		CreditCardID:        t.CreditCardID,
		Notes:               t.Notes,
		Installments:        t.Installments,
		CurrentInstallment:  t.CurrentInstallment,
		ParentTransactionID: t.ParentTransactionID,
		CreatedAt:           t.CreatedAt,
		LastUpdatedAt:       t.LastUpdatedAt,
	}
	if t.Installments > 1 {
		res.InstallmentLabel = utils.FormatInstallment(t.CurrentInstallment, t.Installments)
	}
	return res
}

func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CreateTransactionResponse lists every record created for a purchase, parent first.
type CreateTransactionResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// PartialFailureResponse is returned when a mutation was only partly applied.
type PartialFailureResponse struct {
	Error      string   `json:"error"`
	Operation  string   `json:"operation"`
	ParentID   string   `json:"parentID"`
	CreatedIDs []string `json:"createdIDs"`
	Expected   int      `json:"expected"`
}

// IncompleteInstallmentResponse describes a purchase with missing children or a pending
// balance effect.
type IncompleteInstallmentResponse struct {
	Parent              TransactionResponse `json:"parent"`
	ExistingChildren    int                 `json:"existingChildren"`
	MissingInstallments []int               `json:"missingInstallments"`
	BalancePending      bool                `json:"balancePending"`
}

func ToIncompleteInstallmentResponses(items []domain.IncompleteInstallment) []IncompleteInstallmentResponse {
	res := make([]IncompleteInstallmentResponse, len(items))
	for i := range items {
		res[i] = IncompleteInstallmentResponse{
			Parent:              ToTransactionResponse(&items[i].Parent),
			ExistingChildren:    items[i].ExistingChildren,
			MissingInstallments: items[i].MissingInstallments,
			BalancePending:      items[i].BalancePending,
		}
	}
	return res
}
