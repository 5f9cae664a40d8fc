package aggregation

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// FilterTransactions returns the transactions matching the period and every selected
// secondary filter. The input slice is not modified.
func FilterTransactions(txns []domain.Transaction, f domain.TransactionFilter, now time.Time) []domain.Transaction {
	start, end := Window(f.Period, now)
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if !InWindow(t.Date, start, end) {
			continue
		}
		if f.UserID != nil && t.UserID != *f.UserID {
			continue
		}
		if f.AccountID != nil && (t.AccountID == nil || *t.AccountID != *f.AccountID) {
			continue
		}
		if f.CreditCardID != nil && (t.CreditCardID == nil || *t.CreditCardID != *f.CreditCardID) {
			continue
		}
		out = append(out, t)
	}
	return out
}
