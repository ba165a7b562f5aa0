package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/keymap"
)

type fakeTerm struct {
	codes []keymap.KeyCode
	pos   int
}

func (f *fakeTerm) ReadKey(wait bool) (keymap.KeyCode, bool, error) {
	if f.pos >= len(f.codes) {
		return 0, false, nil
	}
	c := f.codes[f.pos]
	f.pos++
	return c, true, nil
}

type fakeDispatcher struct {
	dispatched []string
	args       []int64
	inserted   []byte
	beeped     bool
}

func (f *fakeDispatcher) Dispatch(target string, n int64) (bool, error) {
	f.dispatched = append(f.dispatched, target)
	f.args = append(f.args, n)
	return true, nil
}

func (f *fakeDispatcher) SelfInsert(c byte, n int64) error {
	f.inserted = append(f.inserted, c)
	return nil
}

func (f *fakeDispatcher) Beep() { f.beeped = true }

func newTestLoop(codes []keymap.KeyCode, km *keymap.Keymap, d Dispatcher) *Loop {
	return NewLoop(&fakeTerm{codes: codes}, km, d, nil)
}

func TestStepDispatchesBoundCommand(t *testing.T) {
	km := keymap.New("t")
	require.NoError(t, km.BindSpec("C-f", "forward-char"))
	d := &fakeDispatcher{}
	l := newTestLoop([]keymap.KeyCode{keymap.CtrlKey('f')}, km, d)

	require.NoError(t, l.Step(nil))
	assert.Equal(t, []string{"forward-char"}, d.dispatched)
	assert.Equal(t, []int64{NoArg}, d.args)
}

func TestStepSelfInsertsUnboundPrintable(t *testing.T) {
	km := keymap.New("t")
	d := &fakeDispatcher{}
	l := newTestLoop([]keymap.KeyCode{keymap.PlainKey('x')}, km, d)

	require.NoError(t, l.Step(nil))
	assert.Equal(t, []byte{'x'}, d.inserted)
}

func TestStepBeepsOnUnboundNonPrintable(t *testing.T) {
	km := keymap.New("t")
	d := &fakeDispatcher{}
	l := newTestLoop([]keymap.KeyCode{keymap.CtrlKey('z')}, km, d)

	require.NoError(t, l.Step(nil))
	assert.True(t, d.beeped)
}

func TestStepUniversalArgFeedsNumericArgument(t *testing.T) {
	km := keymap.New("t")
	require.NoError(t, km.BindSpec("C-n", "forward-line"))
	d := &fakeDispatcher{}
	codes := []keymap.KeyCode{
		keymap.PlainKey(0x15), // ^U
		keymap.PlainKey('4'),
		keymap.PlainKey('2'),
		keymap.CtrlKey('n'),
	}
	l := newTestLoop(codes, km, d)

	require.NoError(t, l.Step(nil))
	assert.Equal(t, []string{"forward-line"}, d.dispatched)
	assert.Equal(t, []int64{42}, d.args)
}

func TestStepTwoCodeSequenceDispatch(t *testing.T) {
	km := keymap.New("t")
	require.NoError(t, km.BindSpec("C-x C-s", "save-buffer"))
	d := &fakeDispatcher{}
	l := newTestLoop([]keymap.KeyCode{keymap.CtrlKey('x'), keymap.CtrlKey('s')}, km, d)

	require.NoError(t, l.Step(nil))
	assert.Equal(t, []string{"save-buffer"}, d.dispatched)
}

func TestStepAbortKeyReturnsUserAbort(t *testing.T) {
	km := keymap.New("t")
	d := &fakeDispatcher{}
	l := newTestLoop([]keymap.KeyCode{AbortKey}, km, d)

	err := l.Step(nil)
	assert.ErrorIs(t, err, ErrUserAbort)
}

func TestKeyboardMacroRecordAndPlay(t *testing.T) {
	km := keymap.New("t")
	d := &fakeDispatcher{}
	l := newTestLoop(nil, km, d)

	l.BeginKeyboardMacro()
	l.kmacro.record(keymap.PlainKey('a'))
	l.kmacro.record(keymap.PlainKey('b'))
	l.EndKeyboardMacro()

	require.NoError(t, l.PlayKeyboardMacro(2))
	for i := 0; i < 4; i++ {
		require.NoError(t, l.Step(nil))
	}
	assert.Equal(t, []byte{'a', 'b', 'a', 'b'}, d.inserted)
}

func TestKeyboardMacroPlayRejectsRunawayLoopCount(t *testing.T) {
	var km KeyboardMacro
	km.maxLoop = 4
	km.BeginRecord()
	km.record(keymap.PlainKey('a'))
	km.record(keymap.PlainKey('b'))
	km.record(keymap.PlainKey('c'))
	km.EndRecord()

	assert.Error(t, km.Play(10))
}
