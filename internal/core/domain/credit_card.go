package domain

import "github.com/shopspring/decimal"

// CreditCard is a billing instrument. It carries no running balance; spending is
// tracked only through the transactions that reference it.
type CreditCard struct {
	CreditCardID string          `json:"creditCardID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	CreditLimit  decimal.Decimal `json:"creditLimit"`
	DueDay       int             `json:"dueDay"`   // 1-31
	CloseDay     int             `json:"closeDay"` // 1-31, statement close
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
	AuditFields
}
