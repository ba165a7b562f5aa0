package term

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightemacs-go/memacs/internal/keymap"
)

func pipeTerminal(t *testing.T, input []byte) (*Terminal, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	_, err = w.Write(input)
	require.NoError(t, err)

	var out bytes.Buffer
	return New(r, &out), w
}

func TestGetKeyPlainChar(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{'a'})
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.PlainKey('a'), code)
}

func TestGetKeyControlChar(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x06}) // ^F
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.CtrlKey('F'), code)
}

func TestGetKeyControlCharMatchesKeymapNotation(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x0e}) // ^N, as a real terminal sends it
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	want, err := keymap.ParseKeyCode("C-n")
	require.NoError(t, err)
	assert.Equal(t, want, code)
}

func TestGetKeyTabAndReturnKeepNamedIdentity(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x09, 0x0d})
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.PlainKey(0x09), code)

	code, ok, err = tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.PlainKey(0x0d), code)
}

func TestGetKeyMetaPrefixedChar(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x1b, 'f'})
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.MetaKey('f'), code)
}

func TestGetKeyBareEscape(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x1b})
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.PlainKey(0x1b), code)
}

func TestGetKeyArrowSequence(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{0x1b, '[', 'A'})
	code, ok, err := tm.GetKey(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, keymap.FKeyCode(20), code)
}

func TestTypeAheadReportsBufferedInput(t *testing.T) {
	tm, _ := pipeTerminal(t, []byte{'x', 'y'})
	_, _, err := tm.GetKey(true) // consume 'x', leaving 'y' buffered
	require.NoError(t, err)
	avail, err := tm.TypeAhead()
	require.NoError(t, err)
	assert.True(t, avail)
}

func TestMoveAndEraseEmitExpectedEscapes(t *testing.T) {
	var out bytes.Buffer
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close(); _ = w.Close() })
	tm := New(r, &out)

	require.NoError(t, tm.Move(2, 4))
	require.NoError(t, tm.EraseEOL())
	require.NoError(t, tm.Beep())
	assert.Equal(t, "\x1b[3;5H\x1b[K\x07", out.String())
}
