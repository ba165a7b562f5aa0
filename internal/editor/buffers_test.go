package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/buffer"
)

func TestSwitchBufferMakesNamedBufferCurrent(t *testing.T) {
	s := New(DefaultConfig())
	other := buffer.New("scratch")
	s.addBuffer(other)

	s.SetPendingArg("scratch")
	require.NoError(t, s.SwitchBuffer(1))
	assert.Same(t, other, s.Current())
}

func TestSwitchBufferUnknownNameErrors(t *testing.T) {
	s := New(DefaultConfig())
	s.SetPendingArg("nope")
	assert.Error(t, s.SwitchBuffer(1))
}

func TestKillBufferRemovesItFromTheCatalog(t *testing.T) {
	s := New(DefaultConfig())
	s.addBuffer(buffer.New("scratch"))

	s.SetPendingArg("scratch")
	require.NoError(t, s.KillBuffer(1))
	_, ok := s.BufferNamed("scratch")
	assert.False(t, ok)
}

func TestKillBufferOnCurrentBufferSwitchesToAnother(t *testing.T) {
	s := New(DefaultConfig())
	second := buffer.New("second")
	s.addBuffer(second)
	s.switchTo(second)

	s.SetPendingArg("second")
	require.NoError(t, s.KillBuffer(1))
	assert.Equal(t, "unnamed", s.Current().Name)
}

func TestKillBufferLastOneLeavesAFreshUnnamedBuffer(t *testing.T) {
	s := New(DefaultConfig())
	s.SetPendingArg("unnamed")
	require.NoError(t, s.KillBuffer(1))
	assert.Equal(t, "unnamed", s.Current().Name)
	assert.Equal(t, []string{"unnamed"}, s.ListBuffers())
}

func TestListBuffersReportsDisplayOrder(t *testing.T) {
	s := New(DefaultConfig())
	s.addBuffer(buffer.New("b"))
	s.addBuffer(buffer.New("c"))
	assert.Equal(t, []string{"unnamed", "b", "c"}, s.ListBuffers())
}
