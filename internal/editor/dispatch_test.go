package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchUnknownTargetReportsNotHandled(t *testing.T) {
	s := newSession(t, "text")
	handled, err := s.Dispatch("no-such-command", 1)
	assert.False(t, handled)
	assert.NoError(t, err)
}

func TestDispatchRoutesToTheBoundMethod(t *testing.T) {
	s := newSession(t, "abc")
	handled, err := s.Dispatch("forward-char", 1)
	require.True(t, handled)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Point().Offset)
}

func TestDispatchStampsLastCommandAfterTheHandlerRuns(t *testing.T) {
	s := newSession(t, "one\ntwo")

	_, err := s.Dispatch("kill-line", 1)
	require.NoError(t, err)
	assert.Equal(t, "kill-line", s.lastCommand)

	_, err = s.Dispatch("kill-line", 1)
	require.NoError(t, err)
	assert.Equal(t, "two", string(s.current.Bytes()))
}

func TestDispatchEveryTableEntryHasAWorkingHandler(t *testing.T) {
	for target := range dispatchTable {
		s := newSession(t, "abc")
		s.SetPendingArgs("abc", "abc")
		handled, _ := s.Dispatch(target, 1)
		assert.Truef(t, handled, "target %q should be handled", target)
	}
}
