package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchForwardMovesPointPastMatch(t *testing.T) {
	s := newSession(t, "the quick brown fox")
	s.SetPendingArg("quick")
	require.NoError(t, s.SearchForward(1))
	assert.Equal(t, len("the quick"), s.Point().Offset)
	assert.Equal(t, "quick", s.lastSearchText)
}

func TestSearchBackwardMovesPointToMatchStart(t *testing.T) {
	s := newSession(t, "the quick brown fox")
	require.NoError(t, s.ForwardChar(len("the quick brown fox")))
	s.SetPendingArg("quick")
	require.NoError(t, s.SearchBackward(1))
	assert.Equal(t, len("the "), s.Point().Offset)
}

func TestSearchForwardWithoutPendingArgErrors(t *testing.T) {
	s := newSession(t, "hello")
	err := s.SearchForward(1)
	assert.Error(t, err)
}

func TestHuntForwardRepeatsLastPattern(t *testing.T) {
	s := newSession(t, "cat cat cat")
	s.SetPendingArg("cat")
	require.NoError(t, s.SearchForward(1))
	require.NoError(t, s.HuntForward(1))
	assert.Equal(t, len("cat cat"), s.Point().Offset)
}

func TestHuntForwardWithNoPriorSearchErrors(t *testing.T) {
	s := newSession(t, "hello")
	err := s.HuntForward(1)
	assert.Error(t, err)
}

func TestSearchForwardNoMatchReturnsError(t *testing.T) {
	s := newSession(t, "hello")
	s.SetPendingArg("zzz")
	err := s.SearchForward(1)
	assert.Error(t, err)
}
