package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils"
)

// SlogErrorSink writes error events to the request-scoped structured logger.
type SlogErrorSink struct{}

func (SlogErrorSink) Report(ctx context.Context, event domain.ErrorEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)
	level := slog.LevelError
	if event.Kind == "validation" || event.Kind == "not_found" {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "Operation failed",
		slog.String("kind", event.Kind),
		slog.String("operation", event.Operation),
		slog.String("user_id", event.UserID),
		slog.Bool("partial", event.Partial),
		slog.String("error", event.Message),
		slog.Any("details", event.Details),
	)
}

// PosthogErrorSink forwards error events to PostHog. It is a no-op when the client is
// not configured.
type PosthogErrorSink struct {
	Client *utils.PosthogClientWrapper
}

func (p PosthogErrorSink) Report(_ context.Context, event domain.ErrorEvent) {
	if p.Client == nil || !p.Client.IsInitialized() {
		return
	}
	props := map[string]any{
		"kind":      event.Kind,
		"operation": event.Operation,
		"partial":   event.Partial,
		"message":   event.Message,
	}
	for k, v := range event.Details {
		props["detail_"+k] = v
	}
	distinctID := event.UserID
	if distinctID == "" {
		distinctID = "anonymous"
	}
	p.Client.Enqueue(distinctID, "error_reported", props)
}

// MultiErrorSink fans an event out to several sinks.
type MultiErrorSink []portssvc.ErrorSink

func (m MultiErrorSink) Report(ctx context.Context, event domain.ErrorEvent) {
	for _, sink := range m {
		if sink != nil {
			sink.Report(ctx, event)
		}
	}
}

var (
	_ portssvc.ErrorSink = SlogErrorSink{}
	_ portssvc.ErrorSink = PosthogErrorSink{}
	_ portssvc.ErrorSink = MultiErrorSink{}
)
