package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledRecorder(t *testing.T) {
	r := New("")
	// No Redis configured: recording and closing are safe no-ops.
	r.Record("room-1", "p1", "play", map[string]interface{}{"count": 2})
	require.NoError(t, r.Close())

	var nilRec *Recorder
	nilRec.Record("room-1", "p1", "play", nil)
}

func TestActionIndexMonotonic(t *testing.T) {
	r := &Recorder{}
	assert.Equal(t, int64(1), r.seq.Add(1))
	assert.Equal(t, int64(2), r.seq.Add(1))
}
