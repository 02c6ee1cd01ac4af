package mocks

import (
	"sync"

	"github.com/mcoot/truthdare-go/internal/dependencies/random"
)

// MockRandom replays queued values. When a queue runs dry it falls back
// to Fallback if set, otherwise Intn returns 0 and String returns a
// string of the alphabet's first character. Safe for concurrent use.
type MockRandom struct {
	mu sync.Mutex

	intn    []int
	strings []string

	// Fallback serves calls once the queues are exhausted
	Fallback random.Random
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates an empty MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued int, clamped into [0, n)
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	if len(r.intn) > 0 {
		v := r.intn[0]
		r.intn = r.intn[1:]
		r.mu.Unlock()
		if n <= 0 {
			return 0
		}
		return ((v % n) + n) % n
	}
	fallback := r.Fallback
	r.mu.Unlock()

	if fallback != nil {
		return fallback.Intn(n)
	}
	return 0
}

// String returns the next queued string
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	if len(r.strings) > 0 {
		v := r.strings[0]
		r.strings = r.strings[1:]
		r.mu.Unlock()
		return v
	}
	fallback := r.Fallback
	r.mu.Unlock()

	if fallback != nil {
		return fallback.String(length, alphabet)
	}
	if length <= 0 || alphabet == "" {
		return ""
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = alphabet[0]
	}
	return string(out)
}

// QueueIntn appends values to the Intn queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn = append(r.intn, values...)
}

// QueueString appends values to the String queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// Reset clears both queues
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn = nil
	r.strings = nil
}
