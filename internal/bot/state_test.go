package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_RememberError(t *testing.T) {
	s := newState(10)

	assert.True(t, s.rememberError("a"))
	assert.False(t, s.rememberError("a"))
	assert.True(t, s.rememberError("b"))
	assert.True(t, s.rememberError("a"))
	assert.Equal(t, "a", s.LastErrorMessage)
	assert.Equal(t, int64(10), s.CurrentTimestamp)
}
