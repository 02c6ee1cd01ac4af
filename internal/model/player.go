package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// Player is a participant in exactly one room
type Player struct {
	ID       PlayerID
	Name     string
	Role     Role
	JoinedAt time.Time
}

// IsAdmin returns true for the room creator
func (p Player) IsAdmin() bool {
	return p.Role == RoleAdmin
}
