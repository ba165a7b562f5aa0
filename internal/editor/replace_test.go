package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceStringSubstitutesAllNonInteractively(t *testing.T) {
	s := newSession(t, "cat cat cat")
	s.SetPendingArgs("cat", "dog")
	require.NoError(t, s.ReplaceString(1))
	assert.Equal(t, "dog dog dog", string(s.Current().Bytes()))
	assert.False(t, s.ReplaceInProgress())
}

func TestQueryReplaceLeavesAPendingPromptForRespondReplace(t *testing.T) {
	s := newSession(t, "cat cat")
	s.SetPendingArgs("cat", "dog")
	require.NoError(t, s.QueryReplace(1))
	assert.True(t, s.ReplaceInProgress())

	require.NoError(t, s.RespondReplace('y'))
	assert.True(t, s.ReplaceInProgress())

	require.NoError(t, s.RespondReplace('y'))
	assert.False(t, s.ReplaceInProgress())
	assert.Equal(t, "dog dog", string(s.Current().Bytes()))
}

func TestRespondReplaceWithNoSessionInProgressErrors(t *testing.T) {
	s := newSession(t, "cat")
	err := s.RespondReplace('y')
	assert.Error(t, err)
}

func TestQueryReplaceRecordsReplaceRingEntry(t *testing.T) {
	s := newSession(t, "cat")
	s.SetPendingArgs("cat", "dog")
	require.NoError(t, s.QueryReplace(1))
	assert.Equal(t, 1, s.ReplaceRing.Len())
}
