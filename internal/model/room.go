package model

import (
	"crypto/subtle"
	"strings"
	"sync"
	"time"
)

// RoomID uniquely identifies a room
type RoomID string

// RoomCode is the short human-shareable join code
type RoomCode string

// RoomParams holds the values a Room is created with
type RoomParams struct {
	ID         RoomID
	Code       RoomCode
	AdminToken string
	Mode       GameMode
	Now        func() time.Time
}

// Room is one game session. All fields other than the admin queue are
// guarded by the room lock: callers take Lock/Unlock around any read or
// mutation, and never hold two rooms' locks at once.
type Room struct {
	mu sync.Mutex

	ID         RoomID
	Code       RoomCode
	adminToken string

	Mode      GameMode
	Status    RoomStatus
	Players   []Player // Insertion order is turn order
	TurnIndex int

	CurrentQuestion *Question
	adminQueue      QuestionQueue

	CreatedAt      time.Time
	LastActivityAt time.Time

	version uint64
	closed  bool
	now     func() time.Time

	// Delivery is ordered separately from the room lock so broadcasts
	// never run inside it
	deliverMu       sync.Mutex
	delivered       uint64
	deliveredClosed bool
}

// NewRoom creates a waiting room with no players
func NewRoom(p RoomParams) *Room {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	created := now()
	return &Room{
		ID:             p.ID,
		Code:           p.Code,
		adminToken:     p.AdminToken,
		Mode:           p.Mode,
		Status:         RoomStatusWaiting,
		Players:        []Player{},
		CreatedAt:      created,
		LastActivityAt: created,
		now:            now,
	}
}

// Lock acquires the room's exclusive section
func (r *Room) Lock() { r.mu.Lock() }

// Unlock releases the room's exclusive section
func (r *Room) Unlock() { r.mu.Unlock() }

func (r *Room) touch() {
	r.LastActivityAt = r.now()
	r.version++
}

// Version counts the room's mutations. Caller must hold the room lock.
func (r *Room) Version() uint64 {
	return r.version
}

// AdminToken returns the room secret. Only the room creation response
// should ever expose it.
func (r *Room) AdminToken() string {
	return r.adminToken
}

// IsAdminTokenValid compares candidate against the room secret in constant
// time. An unset secret never validates.
func (r *Room) IsAdminTokenValid(candidate string) bool {
	if r.adminToken == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.adminToken), []byte(candidate)) == 1
}

// AddPlayer appends a player to the turn order
func (r *Room) AddPlayer(p Player) {
	r.Players = append(r.Players, p)
	r.touch()
}

// RemovePlayer removes the player with the given ID. The turn cursor is
// reset to 0 if it would point past the end of a non-empty list.
func (r *Room) RemovePlayer(id PlayerID) bool {
	for i, p := range r.Players {
		if p.ID != id {
			continue
		}
		r.Players = append(r.Players[:i], r.Players[i+1:]...)
		if len(r.Players) == 0 || r.TurnIndex >= len(r.Players) {
			r.TurnIndex = 0
		}
		r.touch()
		return true
	}
	return false
}

// GetPlayer returns the player with the given ID
func (r *Room) GetPlayer(id PlayerID) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// HasPlayerNamed reports whether a player already uses name, ignoring case
func (r *Room) HasPlayerNamed(name string) bool {
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// IsEmpty returns true when no players remain
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// CurrentPlayer returns the player whose turn it is
func (r *Room) CurrentPlayer() (Player, bool) {
	if r.TurnIndex < 0 || r.TurnIndex >= len(r.Players) {
		return Player{}, false
	}
	return r.Players[r.TurnIndex], true
}

// NextTurn advances the cursor round-robin. No-op with no players.
func (r *Room) NextTurn() {
	if len(r.Players) == 0 {
		return
	}
	r.TurnIndex = (r.TurnIndex + 1) % len(r.Players)
	r.touch()
}

// Start moves the room to ACTIVE with the first player's turn. Returns
// false if the room was already active.
func (r *Room) Start() bool {
	if r.Status == RoomStatusActive {
		return false
	}
	r.Status = RoomStatusActive
	r.TurnIndex = 0
	r.touch()
	return true
}

// Close marks the room as torn down. A closed room must be treated as
// not found by anyone who acquired it before teardown.
func (r *Room) Close() {
	r.closed = true
	r.version++
}

// Closed reports whether the room has been torn down
func (r *Room) Closed() bool {
	return r.closed
}

// IsActive returns true once the game has started
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// SetMode changes the game mode for subsequent draws
func (r *Room) SetMode(mode GameMode) {
	r.Mode = mode
	r.touch()
}

// SetCurrentQuestion records the question shown to the room
func (r *Room) SetCurrentQuestion(q *Question) {
	r.CurrentQuestion = q
	r.touch()
}

// AddAdminQuestion enqueues an admin override question
func (r *Room) AddAdminQuestion(q *Question) {
	r.adminQueue.Push(q)
	r.touch()
}

// PollAdminQuestion dequeues the oldest admin override question, if any
func (r *Room) PollAdminQuestion() (*Question, bool) {
	q, ok := r.adminQueue.Poll()
	if ok {
		r.touch()
	}
	return q, ok
}

// PendingAdminQuestions returns the admin queue length
func (r *Room) PendingAdminQuestions() int {
	return r.adminQueue.Len()
}

// Deliver runs send for a snapshot taken at version. fresh is false when a
// newer version was already delivered, in which case the snapshot must not
// replace the published state. Nothing is sent once the closure has been
// delivered. Calls are serialised per room.
func (r *Room) Deliver(version uint64, send func(fresh bool)) {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	if r.deliveredClosed {
		return
	}
	fresh := version > r.delivered
	if fresh {
		r.delivered = version
	}
	send(fresh)
}

// DeliverClosed runs send once, after which Deliver drops everything
func (r *Room) DeliverClosed(send func()) {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	if r.deliveredClosed {
		return
	}
	r.deliveredClosed = true
	send()
}
