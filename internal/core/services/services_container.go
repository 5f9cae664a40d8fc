package services

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/state"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Every service reports to sink and invalidates appState after a mutation.
func NewServiceContainer(repos portsrepo.RepositoryProvider, appState *state.AppState, sink portssvc.ErrorSink) *portssvc.ServiceContainer {
	opts := []ServiceOption{
		WithErrorSink(sink),
		WithStateInvalidator(appState),
	}

	reconciler := NewBalanceReconciler(repos.AccountRepo, opts...)

	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo, repos.TransactionRepo, opts...),
		CreditCard: NewCreditCardService(repos.CreditCardRepo, repos.TransactionRepo, opts...),
		Category:   NewCategoryService(repos.CategoryRepo, repos.TransactionRepo, opts...),
		Goal:       NewGoalService(repos.GoalRepo, opts...),
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.AccountRepo,
			repos.CreditCardRepo,
			repos.CategoryRepo,
			reconciler,
			opts...,
		),
		Dashboard: NewDashboardService(appState, opts...),
	}
}

// SourcesFrom adapts a repository provider into state sources.
func SourcesFrom(repos portsrepo.RepositoryProvider) state.Sources {
	return state.Sources{
		Transactions: repos.TransactionRepo,
		Accounts:     repos.AccountRepo,
		CreditCards:  repos.CreditCardRepo,
		Categories:   repos.CategoryRepo,
		Goals:        repos.GoalRepo,
	}
}
