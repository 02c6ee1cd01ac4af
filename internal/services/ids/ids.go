// Package ids mints opaque identifiers for rooms, players and questions.
package ids

import (
	"github.com/google/uuid"

	"github.com/mcoot/truthdare-go/internal/model"
)

// Generator mints identifiers
type Generator interface {
	RoomID() model.RoomID
	PlayerID() model.PlayerID
	QuestionID() model.QuestionID
}

// UUID mints random UUIDv4 identifiers
type UUID struct{}

var _ Generator = UUID{}

func (UUID) RoomID() model.RoomID         { return model.RoomID(uuid.NewString()) }
func (UUID) PlayerID() model.PlayerID     { return model.PlayerID(uuid.NewString()) }
func (UUID) QuestionID() model.QuestionID { return model.QuestionID(uuid.NewString()) }
