package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/truthdare-go/internal/model"
)

// MockBroadcaster records everything it is asked to send
type MockBroadcaster struct {
	mu     sync.Mutex
	events []model.Event
	states []model.RoomSnapshot
	closed []model.RoomCode
}

// NewMockBroadcaster creates an empty MockBroadcaster
func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

func (b *MockBroadcaster) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *MockBroadcaster) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states = append(b.states, snapshot)
}

func (b *MockBroadcaster) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, snapshot.Code)
}

// Closed returns the rooms reported as torn down
func (b *MockBroadcaster) Closed() []model.RoomCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.RoomCode(nil), b.closed...)
}

// Events returns the recorded events in send order
func (b *MockBroadcaster) Events() []model.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Event(nil), b.events...)
}

// EventTypes returns the recorded event types in send order
func (b *MockBroadcaster) EventTypes() []model.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]model.EventType, len(b.events))
	for i, e := range b.events {
		types[i] = e.Type
	}
	return types
}

// States returns the recorded snapshots in send order
func (b *MockBroadcaster) States() []model.RoomSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.RoomSnapshot(nil), b.states...)
}

// LastState returns the most recent snapshot
func (b *MockBroadcaster) LastState() (model.RoomSnapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.states) == 0 {
		return model.RoomSnapshot{}, false
	}
	return b.states[len(b.states)-1], true
}

// Reset clears the recordings
func (b *MockBroadcaster) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
	b.states = nil
	b.closed = nil
}
