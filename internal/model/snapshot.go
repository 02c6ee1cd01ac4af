package model

import (
	"time"

	"github.com/samber/lo"
)

// PlayerSummary is the public view of a player
type PlayerSummary struct {
	ID   PlayerID
	Name string
	Role Role
}

// RoomSnapshot is an immutable copy of a room's public state, taken under
// the room lock and safe to use after it is released
type RoomSnapshot struct {
	ID              RoomID
	Code            RoomCode
	Mode            GameMode
	Status          RoomStatus
	Players         []PlayerSummary
	CurrentPlayer   *PlayerSummary
	CurrentQuestion *Question
	TurnIndex       int
	PendingAdmin    int
	CreatedAt       time.Time
	LastActivityAt  time.Time
	Version         uint64 // Increases with every mutation of the room
}

// Summary returns the public view of p
func (p Player) Summary() PlayerSummary {
	return PlayerSummary{ID: p.ID, Name: p.Name, Role: p.Role}
}

// Snapshot copies the room's public state. Caller must hold the room lock.
func (r *Room) Snapshot() RoomSnapshot {
	snap := RoomSnapshot{
		ID:     r.ID,
		Code:   r.Code,
		Mode:   r.Mode,
		Status: r.Status,
		Players: lo.Map(r.Players, func(p Player, _ int) PlayerSummary {
			return p.Summary()
		}),
		TurnIndex:      r.TurnIndex,
		PendingAdmin:   r.adminQueue.Len(),
		CreatedAt:      r.CreatedAt,
		LastActivityAt: r.LastActivityAt,
		Version:        r.version,
	}
	if current, ok := r.CurrentPlayer(); ok {
		snap.CurrentPlayer = lo.ToPtr(current.Summary())
	}
	if r.CurrentQuestion != nil {
		q := *r.CurrentQuestion
		snap.CurrentQuestion = &q
	}
	return snap
}
