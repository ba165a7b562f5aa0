package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/search"
)

func newBuf(t *testing.T, text string) *buffer.Buffer {
	t.Helper()
	b := buffer.New("scratch")
	_, err := b.InsertString(b.FirstPoint(), []byte(text))
	require.NoError(t, err)
	return b
}

func mustMatch(t *testing.T, pattern string) *search.Match {
	t.Helper()
	m, err := search.Compile(pattern, search.Options{}, "")
	require.NoError(t, err)
	return m
}

func mustPattern(t *testing.T, s string) *Pattern {
	t.Helper()
	p, err := Compile(s)
	require.NoError(t, err)
	return p
}

func TestBangReplacesAllRemaining(t *testing.T) {
	b := newBuf(t, "foo foo foo")
	sess := NewSession(b, mustMatch(t, "foo"), mustPattern(t, "bar"), b.FirstPoint(), Unlimited)

	_, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, ActionSubstituted, sess.Respond('!'))

	assert.True(t, sess.Done())
	assert.Equal(t, 3, sess.Substitutions())
	assert.Equal(t, "bar bar bar", string(b.Bytes()))
}

func TestYAndNFlow(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 0, res.StartOff)
	assert.Equal(t, ActionSubstituted, sess.Respond('y'))

	res, ok = sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 4, res.StartOff)
	assert.Equal(t, ActionSkipped, sess.Respond('n'))

	assert.True(t, sess.Done())
	assert.Equal(t, 1, sess.Substitutions())
	assert.Equal(t, "dog cat", string(b.Bytes()))
}

func TestQStopsWithoutSubstituting(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	assert.Equal(t, ActionStopped, sess.Respond('q'))
	assert.True(t, sess.Done())
	assert.Equal(t, 0, sess.Substitutions())
	assert.Equal(t, "cat cat", string(b.Bytes()))
}

func TestDotStopsWithoutSubstitutingAndReturnsToOrigin(t *testing.T) {
	b := newBuf(t, "cat cat")
	origin := b.FirstPoint()
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), origin, Unlimited)

	assert.Equal(t, ActionStopped, sess.Respond('.'))
	assert.True(t, sess.Done())
	assert.Equal(t, 0, sess.Substitutions())
	assert.Equal(t, origin, sess.Point())
	assert.Equal(t, "cat cat", string(b.Bytes()))
}

func TestUndoRestoresTextAndReprompts(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	assert.Equal(t, ActionSubstituted, sess.Respond('y'))
	require.False(t, sess.Done())

	assert.Equal(t, ActionUndone, sess.Respond('u'))
	assert.False(t, sess.Done())
	assert.Equal(t, 0, sess.Substitutions())
	assert.Equal(t, "cat cat", string(b.Bytes()))

	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 0, res.StartOff)
}

func TestUndoWithNothingToUndoBeeps(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)
	assert.Equal(t, ActionBeep, sess.Respond('u'))
}

func TestRestartRescansFromOrigin(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	assert.Equal(t, ActionSubstituted, sess.Respond('y')) // buffer becomes "dog cat", pending at offset 4
	assert.Equal(t, ActionRestarted, sess.Respond('r'))

	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 4, res.StartOff)
}

func TestPositiveCountLimitsSubstitutions(t *testing.T) {
	b := newBuf(t, "cat cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), 1)

	assert.Equal(t, ActionSubstituted, sess.Respond('y'))
	assert.True(t, sess.Done())
	assert.Equal(t, 1, sess.Substitutions())
	assert.Equal(t, "dog cat cat", string(b.Bytes()))
}

func TestZeroCountIsANoOp(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), 0)
	assert.True(t, sess.Done())
	_, ok := sess.Pending()
	assert.False(t, ok)
	assert.Equal(t, "cat cat", string(b.Bytes()))
}

func TestNegativeCountBoundsByLineBreaks(t *testing.T) {
	b := newBuf(t, "cat\ncat\ncat\n")
	origin := b.FirstPoint()
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), origin, -1)

	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 0, res.StartOff)
	assert.Equal(t, ActionSkipped, sess.Respond('n'))

	res, ok = sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 4, res.StartOff)
	assert.Equal(t, ActionSkipped, sess.Respond('n'))

	assert.True(t, sess.Done())
	assert.Equal(t, 0, sess.Substitutions())
}

func TestQuestionMarkShowsHelpWithoutAdvancing(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	assert.Equal(t, ActionHelp, sess.Respond('?'))
	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 0, res.StartOff)
}

func TestUnrecognizedKeyBeeps(t *testing.T) {
	b := newBuf(t, "cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)
	assert.Equal(t, ActionBeep, sess.Respond('z'))
}

func TestCapitalYSubstitutesOnceThenStops(t *testing.T) {
	b := newBuf(t, "cat cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), Unlimited)

	assert.Equal(t, ActionSubstituted, sess.Respond('Y'))

	assert.True(t, sess.Done())
	assert.Equal(t, 1, sess.Substitutions())
	assert.Equal(t, "dog cat cat", string(b.Bytes()))
}

func TestRestartResetsSubstitutionCount(t *testing.T) {
	b := newBuf(t, "cat cat cat")
	sess := NewSession(b, mustMatch(t, "cat"), mustPattern(t, "dog"), b.FirstPoint(), 2)

	assert.Equal(t, ActionSubstituted, sess.Respond('y'))
	assert.Equal(t, 1, sess.Substitutions())

	assert.Equal(t, ActionRestarted, sess.Respond('r'))
	assert.Equal(t, 0, sess.Substitutions())

	// restart rescans from the origin; the buffer already carries the
	// first substitution ("dog"), so the next match starts past it.
	res, ok := sess.Pending()
	require.True(t, ok)
	assert.Equal(t, 4, res.StartOff)

	assert.Equal(t, ActionSubstituted, sess.Respond('y'))
	assert.Equal(t, ActionSubstituted, sess.Respond('y'))
	assert.True(t, sess.Done())
	assert.Equal(t, 2, sess.Substitutions())
}
