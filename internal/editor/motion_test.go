package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/dispatch"
)

func TestForwardCharMovesPointByN(t *testing.T) {
	s := newSession(t, "hello")
	require.NoError(t, s.ForwardChar(3))
	assert.Equal(t, 3, s.Point().Offset)
}

func TestForwardCharAtEndOfBufferReportsBoundary(t *testing.T) {
	s := newSession(t, "hi")
	err := s.ForwardChar(10)
	assert.Error(t, err)
}

func TestBackwardCharMovesPointBack(t *testing.T) {
	s := newSession(t, "hello")
	require.NoError(t, s.ForwardChar(4))
	require.NoError(t, s.BackwardChar(2))
	assert.Equal(t, 2, s.Point().Offset)
}

func TestBeginningAndEndOfLine(t *testing.T) {
	s := newSession(t, "hello world")
	require.NoError(t, s.ForwardChar(5))
	require.NoError(t, s.EndOfLine())
	assert.Equal(t, len("hello world"), s.Point().Offset)
	require.NoError(t, s.BeginningOfLine())
	assert.Equal(t, 0, s.Point().Offset)
}

func TestGotoLineMovesToTargetLine(t *testing.T) {
	s := newSession(t, "one\ntwo\nthree")
	require.NoError(t, s.GotoLine(3))
	assert.Equal(t, "three", string(s.Point().Line.Text()))
}

func TestGotoLineBeyondBufferReportsErrorButStaysAtLastLine(t *testing.T) {
	s := newSession(t, "one\ntwo")
	err := s.GotoLine(5)
	assert.Error(t, err)
	assert.Equal(t, "two", string(s.Point().Line.Text()))
}

func TestSetMarkAndExchangePointAndMark(t *testing.T) {
	s := newSession(t, "hello world")
	require.NoError(t, s.SetMark())
	require.NoError(t, s.ForwardChar(6))
	before := s.Point()
	require.NoError(t, s.ExchangePointAndMark())
	assert.Equal(t, 0, s.Point().Offset)
	require.NoError(t, s.ExchangePointAndMark())
	assert.Equal(t, before, s.Point())
}

func TestExchangePointAndMarkWithNoMarkErrors(t *testing.T) {
	s := newSession(t, "hello")
	err := s.ExchangePointAndMark()
	assert.Error(t, err)
}

func TestNormNMapsNoArgAndZeroToOne(t *testing.T) {
	assert.Equal(t, 1, normN(dispatch.NoArg))
	assert.Equal(t, 1, normN(0))
	assert.Equal(t, 5, normN(5))
}
