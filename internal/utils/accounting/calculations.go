package accounting

import (
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the balance sign of a transaction: income adds, expense subtracts.
// This is used by balance reconciliation and by the aggregation totals so that both agree.
func SignedAmount(txn domain.Transaction) (decimal.Decimal, error) {
	switch txn.Type {
	case domain.Income:
		return txn.Amount, nil
	case domain.Expense:
		return txn.Amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s' for transaction ID %s", txn.Type, txn.TransactionID)
	}
}
