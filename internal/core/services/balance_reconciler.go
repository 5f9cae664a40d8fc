package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// BalanceReconciler keeps stored account balances in step with the transactions that
// reference them. Every adjustment is one sequential round trip to the store and any
// failure is returned to the caller.
type BalanceReconciler struct {
	BaseService
	accounts portsrepo.AccountBalanceAdjuster
}

// NewBalanceReconciler creates a reconciler over the given balance adjuster.
func NewBalanceReconciler(accounts portsrepo.AccountBalanceAdjuster, options ...ServiceOption) *BalanceReconciler {
	r := &BalanceReconciler{accounts: accounts}
	r.apply(options)
	return r
}

// ApplyCreate adds the transaction's signed amount to its account.
func (r *BalanceReconciler) ApplyCreate(ctx context.Context, userID string, txn domain.Transaction) error {
	return r.adjust(ctx, userID, txn, false)
}

// ApplyUpdate reverses the original transaction on its original account, then applies the
// new one on its (possibly different) account.
func (r *BalanceReconciler) ApplyUpdate(ctx context.Context, userID string, original, updated domain.Transaction) error {
	if err := r.Reverse(ctx, userID, original); err != nil {
		return err
	}
	return r.ApplyCreate(ctx, userID, updated)
}

// ApplyDelete reverses the transaction's effect on its account.
func (r *BalanceReconciler) ApplyDelete(ctx context.Context, userID string, txn domain.Transaction) error {
	return r.Reverse(ctx, userID, txn)
}

// Reverse applies the inverse of the transaction's signed amount.
func (r *BalanceReconciler) Reverse(ctx context.Context, userID string, txn domain.Transaction) error {
	return r.adjust(ctx, userID, txn, true)
}

func (r *BalanceReconciler) adjust(ctx context.Context, userID string, txn domain.Transaction, reverse bool) error {
	if !txn.AffectsBalance() {
		// Card-only transactions and installment children never move an account balance.
		return nil
	}
	delta, err := accounting.SignedAmount(txn)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if reverse {
		delta = delta.Neg()
	}
	return r.adjustAccount(ctx, userID, *txn.AccountID, delta)
}

func (r *BalanceReconciler) adjustAccount(ctx context.Context, userID, accountID string, delta decimal.Decimal) error {
	if err := r.accounts.AdjustBalance(ctx, userID, accountID, delta, userID, r.Now()); err != nil {
		r.LogError(ctx, err, "Failed to adjust account balance",
			slog.String("account_id", accountID),
			slog.String("delta", delta.String()))
		return apperrors.Persistence("adjust account balance", err)
	}
	r.LogDebug(ctx, "Account balance adjusted",
		slog.String("account_id", accountID),
		slog.String("delta", delta.String()))
	return nil
}
