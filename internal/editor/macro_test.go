package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/command"
	"github.com/mightemacs-go/memacs/internal/macro"
)

func newRuntimeFor(s *Session) *macro.Runtime {
	reg := command.NewRegistry()
	rt := macro.NewRuntime(64, 0, reg, BuildHandlers(s))
	s.Macro = rt
	return rt
}

func TestExecuteMacroRunsTheNamedMacro(t *testing.T) {
	s := newSession(t, "")
	rt := newRuntimeFor(s)
	require.NoError(t, rt.Define("greet", `return forwardChar()`, "", "", 0))

	s.SetPendingArg("greet")
	require.NoError(t, s.ExecuteMacro(1))
}

func TestExecuteMacroWithoutRuntimeAttachedErrors(t *testing.T) {
	s := newSession(t, "")
	s.SetPendingArg("greet")
	assert.Error(t, s.ExecuteMacro(1))
}

func TestExecuteMacroWithoutArgErrors(t *testing.T) {
	s := newSession(t, "")
	newRuntimeFor(s)
	assert.Error(t, s.ExecuteMacro(1))
}

type fakeKeyboardMacroCtrl struct {
	began, ended bool
	played       int64
	playErr      error
}

func (f *fakeKeyboardMacroCtrl) BeginKeyboardMacro() { f.began = true }
func (f *fakeKeyboardMacroCtrl) EndKeyboardMacro()   { f.ended = true }
func (f *fakeKeyboardMacroCtrl) PlayKeyboardMacro(n int64) error {
	f.played = n
	return f.playErr
}

func TestKeyboardMacroCommandsDelegateToController(t *testing.T) {
	s := newSession(t, "")
	ctrl := &fakeKeyboardMacroCtrl{}
	s.KeyboardMacroCtrl = ctrl

	require.NoError(t, s.BeginKeyboardMacro(1))
	assert.True(t, ctrl.began)

	require.NoError(t, s.EndKeyboardMacro(1))
	assert.True(t, ctrl.ended)

	require.NoError(t, s.CallLastKeyboardMacro(3))
	assert.Equal(t, int64(3), ctrl.played)
}

func TestKeyboardMacroCommandsWithoutControllerError(t *testing.T) {
	s := newSession(t, "")
	assert.Error(t, s.BeginKeyboardMacro(1))
	assert.Error(t, s.EndKeyboardMacro(1))
	assert.Error(t, s.CallLastKeyboardMacro(1))
}
