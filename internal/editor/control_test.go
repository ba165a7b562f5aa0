package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/inputline"
)

func TestSessionQuitSetsQuitFlag(t *testing.T) {
	s := newSession(t, "")
	assert.False(t, s.Quit)
	require.NoError(t, s.SessionQuit(1))
	assert.True(t, s.Quit)
}

func TestUniversalArgumentIsANoOp(t *testing.T) {
	s := newSession(t, "text")
	before := s.point
	require.NoError(t, s.UniversalArgument(1))
	assert.Equal(t, before, s.point)
	assert.False(t, s.Quit)
}

func TestKeyboardQuitClearsPendingArgs(t *testing.T) {
	s := newSession(t, "")
	s.SetPendingArgs("a", "b")
	require.NoError(t, s.KeyboardQuit(1))
	_, err := s.takePendingArg("whatever", "", inputline.KindNone, nil)
	assert.Error(t, err)
}

func TestKeyboardQuitAbortsAnActiveReplace(t *testing.T) {
	s := newSession(t, "cat cat")
	s.SetPendingArgs("cat", "dog")
	require.NoError(t, s.QueryReplace(1))
	require.True(t, s.ReplaceInProgress())

	require.NoError(t, s.KeyboardQuit(1))
	assert.False(t, s.ReplaceInProgress())
}

func TestKeyboardQuitWithNothingPendingStillSucceeds(t *testing.T) {
	s := newSession(t, "")
	require.NoError(t, s.KeyboardQuit(1))
	assert.False(t, s.ReplaceInProgress())
}
