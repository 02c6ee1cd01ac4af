package question

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/dependencies/random"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/ids"
)

// DefaultProviderTimeout bounds each external provider call
const DefaultProviderTimeout = 5 * time.Second

// ErrEmptyQuestion is reported when the provider returns blank text
var ErrEmptyQuestion = errors.New("provider returned an empty question")

// Tier identifies which stage of the pipeline produced a question
type Tier string

const (
	TierAdmin    Tier = "admin"
	TierExternal Tier = "external"
	TierFallback Tier = "fallback"
)

// Selector draws the next question for a room: admin queue first, then
// the external provider, then the local fallback pool.
type Selector struct {
	provider    Provider
	diagnostics Diagnostics
	random      random.Random
	ids         ids.Generator
	clock       clock.Clock
	timeout     time.Duration
	logger      *slog.Logger
}

// Option configures a Selector
type Option func(*Selector)

// WithTimeout overrides DefaultProviderTimeout
func WithTimeout(d time.Duration) Option {
	return func(s *Selector) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDiagnostics overrides the logging diagnostics observer
func WithDiagnostics(d Diagnostics) Option {
	return func(s *Selector) {
		s.diagnostics = d
	}
}

// NewSelector creates a Selector
func NewSelector(
	provider Provider,
	random random.Random,
	ids ids.Generator,
	clock clock.Clock,
	logger *slog.Logger,
	opts ...Option,
) *Selector {
	logger = logger.With(slog.String("component", "question-selector"))
	s := &Selector{
		provider:    provider,
		diagnostics: NewLogDiagnostics(logger),
		random:      random,
		ids:         ids,
		clock:       clock,
		timeout:     DefaultProviderTimeout,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select produces exactly one question for the room's current player. It
// takes the room lock itself and never holds it across the provider call.
// The result is not recorded on the room.
func (s *Selector) Select(ctx context.Context, room *model.Room, preferred model.QuestionType) (*model.Question, Tier, error) {
	room.Lock()
	if room.Closed() {
		room.Unlock()
		return nil, "", model.ErrRoomNotFound
	}
	code := room.Code
	mode := room.Mode
	var target model.PlayerID
	if current, ok := room.CurrentPlayer(); ok {
		target = current.ID
	}
	queued, ok := room.PollAdminQuestion()
	room.Unlock()

	if ok {
		q := *queued
		if q.TargetPlayerID == "" {
			q.TargetPlayerID = target
		}
		s.logger.DebugContext(ctx, "using admin question", slog.String("room_code", string(code)))
		return &q, TierAdmin, nil
	}

	if text, ok := s.fetchExternal(ctx, code, mode, preferred); ok {
		return s.newQuestion(text, s.externalType(mode, preferred, text), target), TierExternal, nil
	}

	t := s.fallbackType(mode, preferred)
	pool := FallbackPool(t)
	text := pool[s.random.Intn(len(pool))]
	return s.newQuestion(text, t, target), TierFallback, nil
}

// fetchExternal asks the provider with a bounded wait. Failures are
// reported to diagnostics and yield ok=false.
func (s *Selector) fetchExternal(ctx context.Context, code model.RoomCode, mode model.GameMode, preferred model.QuestionType) (string, bool) {
	if s.provider == nil {
		return "", false
	}
	kind := providerKind(mode, preferred)

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.Fetch(fetchCtx, kind)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyQuestion
	}
	if err != nil {
		s.diagnostics.ProviderFailed(ctx, string(code), kind, fmt.Errorf("fetch %s: %w", kind, err))
		return "", false
	}
	return strings.TrimSpace(text), true
}

// externalType assigns a type to provider text: forced by mode, else
// inferred from the text, else the preference, else a coin flip.
func (s *Selector) externalType(mode model.GameMode, preferred model.QuestionType, text string) model.QuestionType {
	if t, forced := mode.ForcedType(); forced {
		return t
	}
	if t, ok := InferType(text); ok {
		return t
	}
	if preferred.Valid() {
		return preferred
	}
	return s.coinFlip()
}

// fallbackType picks the pool to draw from. Fallback questions skip
// keyword inference and always take the pool's type.
func (s *Selector) fallbackType(mode model.GameMode, preferred model.QuestionType) model.QuestionType {
	if t, forced := mode.ForcedType(); forced {
		return t
	}
	if preferred.Valid() {
		return preferred
	}
	return s.coinFlip()
}

func (s *Selector) coinFlip() model.QuestionType {
	if s.random.Intn(2) == 0 {
		return model.QuestionTypeTruth
	}
	return model.QuestionTypeDare
}

func (s *Selector) newQuestion(text string, t model.QuestionType, target model.PlayerID) *model.Question {
	return &model.Question{
		ID:             s.ids.QuestionID(),
		Text:           text,
		Type:           t,
		TargetPlayerID: target,
		CreatedAt:      s.clock.Now(),
	}
}
