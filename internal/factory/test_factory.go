package factory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/truthdare-go/internal/dependencies/mocks"
	"github.com/mcoot/truthdare-go/internal/dependencies/random"
	"github.com/mcoot/truthdare-go/internal/services/ids"
	"github.com/mcoot/truthdare-go/internal/storage/memory"
	"github.com/mcoot/truthdare-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock       *mocks.MockClock
	MockRandom      *mocks.MockRandom
	MockBroadcaster *mocks.MockBroadcaster
	Provider        *StubProvider
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Unqueued random draws are real. The question provider is a StubProvider
// that fails until given questions.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockRandom.Fallback = random.New()
	mockBroadcaster := mocks.NewMockBroadcaster()
	provider := &StubProvider{}

	app := newWithDependencies(store, mockClock, mockRandom, ids.UUID{}, provider, testutil.NopLogger())
	app.Broadcaster = append(app.Broadcaster, mockBroadcaster)

	return &TestApp{
		App:             app,
		MockClock:       mockClock,
		MockRandom:      mockRandom,
		MockBroadcaster: mockBroadcaster,
		Provider:        provider,
	}
}

// StubProvider serves queued question texts and fails when empty
type StubProvider struct {
	mu    sync.Mutex
	texts []string
	kinds []string
}

// ErrStubEmpty is returned once the queue is drained
type ErrStubEmpty struct{}

func (ErrStubEmpty) Error() string { return "stub provider has no questions" }

// Queue adds question texts to serve in order
func (p *StubProvider) Queue(texts ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts = append(p.texts, texts...)
}

// Fetch implements question.Provider
func (p *StubProvider) Fetch(ctx context.Context, kind string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
	if len(p.texts) == 0 {
		return "", ErrStubEmpty{}
	}
	text := p.texts[0]
	p.texts = p.texts[1:]
	return text, nil
}

// Kinds returns the kinds requested so far
func (p *StubProvider) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.kinds...)
}
