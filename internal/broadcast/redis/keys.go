package redis

import (
	"fmt"

	"github.com/mcoot/truthdare-go/internal/model"
)

// roomChannel returns the pub/sub channel for a room's events
func roomChannel(prefix string, code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", prefix, code)
}

// stateKey returns the key holding a room's last published state
func stateKey(prefix string, code model.RoomCode) string {
	return fmt.Sprintf("%s:state:%s", prefix, code)
}
