// Package installments expands a single purchase into monthly installment records.
package installments

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	MinInstallments = 1
	MaxInstallments = 48
)

// AmountMode says whether an entered amount is the value of each installment or the
// total price to be divided across them.
type AmountMode string

const (
	AmountPerInstallment AmountMode = "perInstallment"
	AmountTotal          AmountMode = "total"
)

// Validate checks the installment count is within the accepted range.
func Validate(n int) error {
	if n < MinInstallments || n > MaxInstallments {
		return apperrors.NewValidationError("installments", "must be between %d and %d, got %d", MinInstallments, MaxInstallments, n)
	}
	return nil
}

// PerInstallmentAmount returns the amount each record carries. In total mode the amount is
// divided by n and rounded half away from zero to cents.
func PerInstallmentAmount(amount decimal.Decimal, n int, mode AmountMode) (decimal.Decimal, error) {
	switch mode {
	case "", AmountPerInstallment:
		return amount, nil
	case AmountTotal:
		if n < 1 {
			return decimal.Zero, Validate(n)
		}
		return amount.DivRound(decimal.NewFromInt(int64(n)), 2), nil
	default:
		return decimal.Zero, apperrors.NewValidationError("amountMode", "unknown amount mode %q", mode)
	}
}

// AddMonths advances date by n calendar months. When the day does not exist in the target
// month it is clamped to that month's last day, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, date.Location()).AddDate(0, n, 0)
	last := daysIn(first.Year(), first.Month())
	if d > last {
		d = last
	}
	h, mi, s := date.Clock()
	return time.Date(first.Year(), first.Month(), d, h, mi, s, date.Nanosecond(), date.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Label is the " (i/N)" suffix appended to child descriptions.
func Label(i, n int) string {
	return fmt.Sprintf(" (%d/%d)", i, n)
}

// Parent prepares the first record of a split purchase.
func Parent(base domain.Transaction, n int) domain.Transaction {
	p := base
	p.Installments = n
	p.CurrentInstallment = 1
	p.ParentTransactionID = nil
	return p
}

// Child builds installment i (2..N) of parent.
func Child(parent domain.Transaction, i int) domain.Transaction {
	c := parent
	c.TransactionID = ""
	c.CurrentInstallment = i
	c.Date = AddMonths(parent.Date, i-1)
	c.Description = parent.Description + Label(i, parent.Installments)
	parentID := parent.TransactionID
	c.ParentTransactionID = &parentID
	return c
}

// Children builds installments 2..N of a persisted parent, in order.
func Children(parent domain.Transaction) []domain.Transaction {
	if parent.Installments <= 1 {
		return nil
	}
	out := make([]domain.Transaction, 0, parent.Installments-1)
	for i := 2; i <= parent.Installments; i++ {
		out = append(out, Child(parent, i))
	}
	return out
}

// Missing returns the installment numbers in 2..N not present among children.
func Missing(parent domain.Transaction, children []domain.Transaction) []int {
	seen := make(map[int]bool, len(children))
	for _, c := range children {
		seen[c.CurrentInstallment] = true
	}
	var missing []int
	for i := 2; i <= parent.Installments; i++ {
		if !seen[i] {
			missing = append(missing, i)
		}
	}
	return missing
}

// FindIncomplete scans a transaction collection for parents whose children are missing or
// whose balance effect is still pending.
func FindIncomplete(txns []domain.Transaction) []domain.IncompleteInstallment {
	children := make(map[string][]domain.Transaction)
	for _, t := range txns {
		if t.ParentTransactionID != nil {
			children[*t.ParentTransactionID] = append(children[*t.ParentTransactionID], t)
		}
	}

	var out []domain.IncompleteInstallment
	for _, t := range txns {
		if t.ParentTransactionID != nil || (!t.IsInstallmentParent() && !t.BalancePending) {
			continue
		}
		kids := children[t.TransactionID]
		missing := Missing(t, kids)
		if len(missing) == 0 && !t.BalancePending {
			continue
		}
		out = append(out, domain.IncompleteInstallment{
			Parent:              t,
			ExistingChildren:    len(kids),
			MissingInstallments: missing,
			BalancePending:      t.BalancePending,
		})
	}
	return out
}
