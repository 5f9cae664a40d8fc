package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a cash-holding bucket (checking, savings, wallet, investment...) with a
// persisted running balance. The balance is adjusted incrementally as transactions
// referencing the account are created, edited or removed.
type Account struct {
	AccountID string          `json:"accountID"`
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	Type      string          `json:"type"` // Open set: checking, savings, wallet, investment, ...
	Balance   decimal.Decimal `json:"balance"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	AuditFields
}
