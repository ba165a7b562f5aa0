package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/keymap"
)

func TestDispatchHooksRunPreKeyReturnsSkipOnTruthyHook(t *testing.T) {
	rt := newRuntime(nil)
	require.NoError(t, rt.Define("guard", "return 1", "", "", 0))
	require.NoError(t, rt.BindHook("preKey", "guard"))

	hooks := DispatchHooks{Runtime: rt}
	skip, err := hooks.RunPreKey(keymap.CtrlKey('N'), 1)
	require.NoError(t, err)
	assert.True(t, skip)
}

func TestDispatchHooksRunPreKeyNoHookBoundNeverSkips(t *testing.T) {
	rt := newRuntime(nil)
	hooks := DispatchHooks{Runtime: rt}
	skip, err := hooks.RunPreKey(keymap.CtrlKey('N'), 1)
	require.NoError(t, err)
	assert.False(t, skip)
}

func TestDispatchHooksRunPostKeyInvokesBoundMacro(t *testing.T) {
	rt := newRuntime(nil)
	require.NoError(t, rt.Define("logKey", `return 0`, "", "", 0))
	require.NoError(t, rt.BindHook("postKey", "logKey"))

	hooks := DispatchHooks{Runtime: rt}
	require.NoError(t, hooks.RunPostKey(keymap.PlainKey('x'), 1))
}

func TestDispatchHooksRunPostKeyNoHookBoundIsNoop(t *testing.T) {
	rt := newRuntime(nil)
	hooks := DispatchHooks{Runtime: rt}
	assert.NoError(t, hooks.RunPostKey(keymap.PlainKey('x'), 1))
}
