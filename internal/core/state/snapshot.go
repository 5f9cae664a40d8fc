// Package state holds the per-user application state: the loaded collections and the
// views derived from them.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// Snapshot is every collection of one user as loaded at LoadedAt. It is immutable once
// published; derived views are computed from it on demand.
type Snapshot struct {
	UserID       string
	Transactions []domain.Transaction
	Accounts     []domain.Account
	CreditCards  []domain.CreditCard
	Categories   []domain.Category
	Goals        []domain.Goal
	LoadedAt     time.Time
	Generation   uint64
}

// IsEmpty reports whether the user has neither transactions nor accounts.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Transactions) == 0 && len(s.Accounts) == 0
}

// Sources are the readers a snapshot is loaded from.
type Sources struct {
	Transactions portsrepo.TransactionReader
	Accounts     portsrepo.AccountReader
	CreditCards  portsrepo.CreditCardReader
	Categories   portsrepo.CategoryReader
	Goals        portsrepo.GoalReader
}

// Load fetches the five collections concurrently. The first failure cancels the rest and
// is returned; nothing is retried.
func Load(ctx context.Context, src Sources, userID string) (*Snapshot, error) {
	snap := &Snapshot{UserID: userID}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Transactions, err = src.Transactions.ListTransactions(gctx, userID)
		return wrapLoad("transactions", err)
	})
	g.Go(func() (err error) {
		snap.Accounts, err = src.Accounts.ListAccounts(gctx, userID)
		return wrapLoad("accounts", err)
	})
	g.Go(func() (err error) {
		snap.CreditCards, err = src.CreditCards.ListCreditCards(gctx, userID)
		return wrapLoad("credit cards", err)
	})
	g.Go(func() (err error) {
		snap.Categories, err = src.Categories.ListCategories(gctx, userID)
		return wrapLoad("categories", err)
	})
	g.Go(func() (err error) {
		snap.Goals, err = src.Goals.ListGoals(gctx, userID)
		return wrapLoad("goals", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func wrapLoad(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}
