package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDIdentifiersParse(t *testing.T) {
	var g UUID

	for _, s := range []string{string(g.RoomID()), string(g.PlayerID()), string(g.QuestionID())} {
		parsed, err := uuid.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), parsed.Version())
	}
	assert.NotEqual(t, g.RoomID(), g.RoomID())
}
