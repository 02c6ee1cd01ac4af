package question

import (
	"context"
	"log/slog"
)

// Provider kinds accepted by Fetch
const (
	KindTruth  = "truth"
	KindDare   = "dare"
	KindRandom = "random"
)

// Provider is an external source of question text
type Provider interface {
	// Fetch returns one question of the given kind. An empty result must
	// be reported as an error.
	Fetch(ctx context.Context, kind string) (string, error)
}

// Diagnostics observes provider failures the selector absorbs
type Diagnostics interface {
	ProviderFailed(ctx context.Context, code string, kind string, err error)
}

// LogDiagnostics reports absorbed provider failures as warnings
type LogDiagnostics struct {
	logger *slog.Logger
}

// NewLogDiagnostics creates a LogDiagnostics
func NewLogDiagnostics(logger *slog.Logger) *LogDiagnostics {
	return &LogDiagnostics{logger: logger}
}

var _ Diagnostics = (*LogDiagnostics)(nil)

func (d *LogDiagnostics) ProviderFailed(ctx context.Context, code string, kind string, err error) {
	d.logger.WarnContext(ctx, "question provider failed, using fallback pool",
		slog.String("room_code", code),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}
