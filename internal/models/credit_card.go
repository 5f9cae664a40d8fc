package models

import "github.com/shopspring/decimal"

// CreditCard is a row of the credit_cards table.
type CreditCard struct {
	CreditCardID string          `db:"credit_card_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	CreditLimit  decimal.Decimal `db:"credit_limit"`
	DueDay       int             `db:"due_day"`
	CloseDay     int             `db:"close_day"`
	Color        string          `db:"color"`
	Icon         string          `db:"icon"`
	AuditFields
}
