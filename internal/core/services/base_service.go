package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ErrorSink   portssvc.ErrorSink
	Invalidator portssvc.StateInvalidator
	Clock       func() time.Time
}

// ServiceOption is a functional option shared by all services.
type ServiceOption func(*BaseService)

// WithErrorSink sets where failures are reported.
func WithErrorSink(sink portssvc.ErrorSink) ServiceOption {
	return func(s *BaseService) {
		s.ErrorSink = sink
	}
}

// WithStateInvalidator sets the component notified after each mutation.
func WithStateInvalidator(inv portssvc.StateInvalidator) ServiceOption {
	return func(s *BaseService) {
		s.Invalidator = inv
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock's current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Report hands a failure to the error sink, if one is configured.
func (s *BaseService) Report(ctx context.Context, operation string, userID string, err error, details map[string]any) {
	if s.ErrorSink == nil || err == nil {
		return
	}
	s.ErrorSink.Report(ctx, domain.ErrorEvent{
		Kind:       string(apperrors.Classify(err)),
		Operation:  operation,
		UserID:     userID,
		Message:    err.Error(),
		Partial:    errors.Is(err, apperrors.ErrPartialFailure),
		Details:    details,
		OccurredAt: s.Now(),
	})
}

// Invalidate drops derived state of the user so the next read recomputes it.
func (s *BaseService) Invalidate(userID string) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(userID)
	}
}

// ensureUnreferenced refuses the operation when any transaction still points at id.
func (s *BaseService) ensureUnreferenced(ctx context.Context, refs portsrepo.TransactionReader, field portsrepo.ReferenceField, id string, what string) error {
	count, err := refs.CountTransactionsReferencing(ctx, field, id)
	if err != nil {
		return apperrors.Persistence("count referencing transactions", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s %s is referenced by %d transaction(s)", apperrors.ErrReferentialIntegrity, what, id, count)
	}
	return nil
}
