package codes

import (
	"github.com/mcoot/truthdare-go/internal/dependencies/random"
	"github.com/mcoot/truthdare-go/internal/model"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// AdminTokenLength is the length of generated admin tokens
	AdminTokenLength = 32
	// AdminTokenAlphabet is the characters used in admin tokens
	AdminTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator produces room codes and admin tokens. Codes are not checked
// for uniqueness here.
type Generator struct {
	random random.Random
}

// NewGenerator creates a Generator. Production wiring passes a
// random.CryptoRandom.
func NewGenerator(random random.Random) *Generator {
	return &Generator{random: random}
}

// GenerateRoomCode returns a fresh 6-character room code
func (g *Generator) GenerateRoomCode() model.RoomCode {
	return model.RoomCode(g.random.String(RoomCodeLength, RoomCodeAlphabet))
}

// GenerateAdminToken returns a fresh 32-character admin token
func (g *Generator) GenerateAdminToken() string {
	return g.random.String(AdminTokenLength, AdminTokenAlphabet)
}
