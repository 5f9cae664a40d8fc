package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	CreditCard  CreditCardSvcFacade
	Category    CategorySvcFacade
	Goal        GoalSvcFacade
	Transaction TransactionSvcFacade
	Dashboard   DashboardSvc
}

// ErrorSink receives structured failure reports from the services. Implementations must be
// safe for concurrent use.
type ErrorSink interface {
	Report(ctx context.Context, event domain.ErrorEvent)
}

// StateInvalidator is notified after every mutation so derived views are recomputed.
type StateInvalidator interface {
	Invalidate(userID string)
}
