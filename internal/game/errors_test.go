package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "ROOM_FULL", Kind(ErrRoomFull))
	assert.Equal(t, "NOT_YOUR_TURN", Kind(ErrNotYourTurn))

	// Wrapped rule violations keep their code.
	wrapped := fmt.Errorf("%w: maxPlayers must be at least 2", ErrInvalidValue)
	assert.Equal(t, "INVALID_VALUE", Kind(wrapped))

	// Anything outside the taxonomy is internal.
	assert.Equal(t, "INTERNAL_ERROR", Kind(errors.New("disk on fire")))
	assert.Equal(t, "INTERNAL_ERROR", Kind(ErrInternal))
}
