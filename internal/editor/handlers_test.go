package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/eval"
)

func TestBuildHandlersPlainAdapterDispatchesWithNoArg(t *testing.T) {
	s := newSession(t, "abc")
	handlers := BuildHandlers(s)
	_, err := handlers["forward-char"](nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Point().Offset)
}

func TestBuildHandlersWithArgSetsPendingArgFromScriptArgument(t *testing.T) {
	s := newSession(t, "")
	s.addBuffer(buffer.New("scratch"))
	handlers := BuildHandlers(s)
	_, err := handlers["switch-buffer"](nil, []eval.Datum{eval.StringDatum("scratch")})
	require.NoError(t, err)
	assert.Equal(t, "scratch", s.Current().Name)
}

func TestBuildHandlersWithArgPairSetsBothPendingArgsInOrder(t *testing.T) {
	s := newSession(t, "cat cat")
	handlers := BuildHandlers(s)
	_, err := handlers["replace-string"](nil, []eval.Datum{eval.StringDatum("cat"), eval.StringDatum("dog")})
	require.NoError(t, err)
	assert.Equal(t, "dog dog", string(s.Current().Bytes()))
}

func TestBuildHandlersWithArgIntPassesTheIntegerArgumentAsN(t *testing.T) {
	s := newSession(t, "one\ntwo\nthree")
	handlers := BuildHandlers(s)
	_, err := handlers["goto-line"](nil, []eval.Datum{eval.IntDatum(3)})
	require.NoError(t, err)
	assert.Equal(t, "three", string(s.Point().Line.Text()))
}

func TestBuildHandlersListBuffersReturnsAnArrayDatum(t *testing.T) {
	s := newSession(t, "")
	handlers := BuildHandlers(s)
	result, err := handlers["list-buffers"](nil, nil)
	require.NoError(t, err)
	assert.Equal(t, eval.KindArray, result.Kind)
}
