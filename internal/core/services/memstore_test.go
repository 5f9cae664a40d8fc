package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory record store implementing every repository port. Hooks let a
// test fail a specific round trip.
type memStore struct {
	mu         sync.Mutex
	accounts   map[string]domain.Account
	cards      map[string]domain.CreditCard
	categories map[string]domain.Category
	goals      map[string]domain.Goal
	txns       map[string]domain.Transaction

	saveTxnCalls int
	// failSaveTxn fails the n-th SaveTransaction call (1-based) when it returns an error.
	failSaveTxn  func(call int, txn domain.Transaction) error
	failUpdate   error
	failDelete   error
	failAdjust   func(accountID string, delta decimal.Decimal) error
	adjustments  []decimal.Decimal
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   map[string]domain.Account{},
		cards:      map[string]domain.CreditCard{},
		categories: map[string]domain.Category{},
		goals:      map[string]domain.Goal{},
		txns:       map[string]domain.Transaction{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     m,
		CreditCardRepo:  m,
		CategoryRepo:    m,
		TransactionRepo: m,
		GoalRepo:        m,
	}
}

func (m *memStore) balance(accountID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts[accountID].Balance
}

func (m *memStore) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txns)
}

// --- accounts ---

func (m *memStore) FindAccountByID(_ context.Context, userID, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) ListAccounts(_ context.Context, userID string) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) SaveAccount(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.AccountID] = a
	return nil
}

func (m *memStore) UpdateAccount(_ context.Context, a domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.AccountID]; !ok {
		return apperrors.ErrNotFound
	}
	m.accounts[a.AccountID] = a
	return nil
}

func (m *memStore) DeleteAccount(_ context.Context, userID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, accountID)
	return nil
}

func (m *memStore) AdjustBalance(_ context.Context, userID, accountID string, delta decimal.Decimal, _ string, now time.Time) error {
	if m.failAdjust != nil {
		if err := m.failAdjust(accountID, delta); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[accountID]
	if !ok || a.UserID != userID {
		return apperrors.ErrNotFound
	}
	a.Balance = a.Balance.Add(delta)
	a.LastUpdatedAt = now
	m.accounts[accountID] = a
	m.adjustments = append(m.adjustments, delta)
	return nil
}

// --- credit cards ---

func (m *memStore) FindCreditCardByID(_ context.Context, userID, id string) (*domain.CreditCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok || c.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) ListCreditCards(_ context.Context, userID string) ([]domain.CreditCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CreditCard
	for _, c := range m.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SaveCreditCard(_ context.Context, c domain.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[c.CreditCardID] = c
	return nil
}

func (m *memStore) UpdateCreditCard(ctx context.Context, c domain.CreditCard) error {
	return m.SaveCreditCard(ctx, c)
}

func (m *memStore) DeleteCreditCard(_ context.Context, _ string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cards, id)
	return nil
}

// --- categories ---

func (m *memStore) FindCategoryByID(_ context.Context, userID, id string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok || (!c.IsDefault && c.UserID != userID) {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) ListCategories(_ context.Context, userID string) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Category
	for _, c := range m.categories {
		if c.IsDefault || c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) SaveCategory(_ context.Context, c domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.CategoryID] = c
	return nil
}

func (m *memStore) UpdateCategory(ctx context.Context, c domain.Category) error {
	return m.SaveCategory(ctx, c)
}

func (m *memStore) DeleteCategory(_ context.Context, _ string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

// --- goals ---

func (m *memStore) FindGoalByID(_ context.Context, userID, id string) (*domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok || g.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &g, nil
}

func (m *memStore) ListGoals(_ context.Context, userID string) ([]domain.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memStore) SaveGoal(_ context.Context, g domain.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.GoalID] = g
	return nil
}

func (m *memStore) UpdateGoal(ctx context.Context, g domain.Goal) error {
	return m.SaveGoal(ctx, g)
}

func (m *memStore) DeleteGoal(_ context.Context, _ string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.goals, id)
	return nil
}

// --- transactions ---

func (m *memStore) FindTransactionByID(_ context.Context, userID, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) sorted(userID string, keep func(domain.Transaction) bool) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range m.txns {
		if t.UserID == userID && keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].TransactionID > out[j].TransactionID
	})
	return out
}

func (m *memStore) ListTransactions(_ context.Context, userID string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(userID, func(domain.Transaction) bool { return true }), nil
}

func (m *memStore) ListTransactionsPage(_ context.Context, userID string, p portsrepo.ListTransactionsParams) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(userID, func(t domain.Transaction) bool {
		if p.From != nil && t.Date.Before(*p.From) {
			return false
		}
		if p.To != nil && t.Date.After(*p.To) {
			return false
		}
		if p.OwnerUserID != nil && t.UserID != *p.OwnerUserID {
			return false
		}
		if p.AccountID != nil && (t.AccountID == nil || *t.AccountID != *p.AccountID) {
			return false
		}
		if p.CreditCardID != nil && (t.CreditCardID == nil || *t.CreditCardID != *p.CreditCardID) {
			return false
		}
		if p.After != nil {
			c := p.After
			if t.Date.After(c.Date) {
				return false
			}
			if t.Date.Equal(c.Date) {
				if t.CreatedAt.After(c.CreatedAt) {
					return false
				}
				if t.CreatedAt.Equal(c.CreatedAt) && t.TransactionID >= c.TransactionID {
					return false
				}
			}
		}
		return true
	})
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func (m *memStore) FindInstallmentGroup(_ context.Context, userID, parentID string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.sorted(userID, func(t domain.Transaction) bool {
		return t.TransactionID == parentID || (t.ParentTransactionID != nil && *t.ParentTransactionID == parentID)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentInstallment < out[j].CurrentInstallment })
	return out, nil
}

func (m *memStore) CountTransactionsReferencing(_ context.Context, field portsrepo.ReferenceField, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.txns {
		switch field {
		case portsrepo.RefAccount:
			if t.AccountID != nil && *t.AccountID == id {
				n++
			}
		case portsrepo.RefCreditCard:
			if t.CreditCardID != nil && *t.CreditCardID == id {
				n++
			}
		case portsrepo.RefCategory:
			if t.CategoryID == id {
				n++
			}
		}
	}
	return n, nil
}

func (m *memStore) SaveTransaction(_ context.Context, t domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveTxnCalls++
	if m.failSaveTxn != nil {
		if err := m.failSaveTxn(m.saveTxnCalls, t); err != nil {
			return err
		}
	}
	m.txns[t.TransactionID] = t
	return nil
}

func (m *memStore) UpdateTransaction(_ context.Context, t domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return m.failUpdate
	}
	if _, ok := m.txns[t.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	m.txns[t.TransactionID] = t
	return nil
}

func (m *memStore) DeleteTransaction(_ context.Context, _ string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.txns[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.txns, id)
	return nil
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.CreditCardRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.CategoryRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.GoalRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*memStore)(nil)
)

// recordingSink collects reported events.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.ErrorEvent
}

func (r *recordingSink) Report(_ context.Context, e domain.ErrorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) all() []domain.ErrorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ErrorEvent(nil), r.events...)
}

// countingInvalidator counts invalidations per user.
type countingInvalidator struct {
	mu    sync.Mutex
	count map[string]int
}

func (c *countingInvalidator) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == nil {
		c.count = map[string]int{}
	}
	c.count[userID]++
}

func (c *countingInvalidator) get(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count[userID]
}
