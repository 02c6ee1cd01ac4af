package model

import (
	"sync"
	"time"
)

// QuestionID uniquely identifies a question
type QuestionID string

// Question is a single truth or dare prompt. Immutable once a room has
// recorded it as current.
type Question struct {
	ID             QuestionID
	Text           string
	Type           QuestionType
	TargetPlayerID PlayerID // Empty means the current player
	AdminInjected  bool
	CreatedAt      time.Time
}

// QuestionQueue is the admin override FIFO. Safe for concurrent use; Poll
// never blocks.
type QuestionQueue struct {
	mu    sync.Mutex
	items []*Question
}

// Push appends q to the tail
func (q *QuestionQueue) Push(question *Question) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, question)
}

// Poll removes and returns the head, or false when empty
func (q *QuestionQueue) Poll() (*Question, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return head, true
}

// Len returns the number of pending questions
func (q *QuestionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
