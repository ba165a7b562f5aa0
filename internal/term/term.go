// Package term implements the terminal collaborator of spec §6/§10.3:
// raw-mode control, key-code decoding (including the escape-sequence
// prefix encoding used by Meta and function keys), and the small
// output primitives the display layer needs. Grounded on the
// teacher's internal/termio package (golang.org/x/term raw-mode
// wrapper, golang.org/x/sys/unix poll-based pending-input probe).
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/mightemacs-go/memacs/internal/keymap"
	"github.com/mightemacs-go/memacs/internal/termio"
)

// Terminal is the spec §4.2/§6 terminal collaborator: open/close,
// size, key reads with the prefix-escape encoding, and the small
// output primitives the display layer drives directly.
type Terminal struct {
	in     *os.File
	out    io.Writer
	fd     int
	state  *term.State
	raw    termio.Terminal
	reader *bufio.Reader
}

// New wraps in/out (normally os.Stdin/os.Stdout) for raw-mode control.
func New(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		fd:     int(in.Fd()),
		raw:    termio.DefaultTerminal{},
		reader: bufio.NewReader(in),
	}
}

// Open switches the terminal into raw mode (spec §6: "open").
func (t *Terminal) Open() error {
	state, err := t.raw.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("term: open: %w", err)
	}
	t.state = state
	return nil
}

// Close restores the terminal's original mode (spec §6: "close").
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	err := t.raw.Restore(t.fd, t.state)
	t.state = nil
	return err
}

// Size reports the terminal's columns and rows (spec §6: "size() ->
// (cols, rows)"). Callers enforce their own minimums.
func (t *Terminal) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("term: size: %w", err)
	}
	return cols, rows, nil
}

// TypeAhead reports whether input is already waiting to be read (spec
// §6: "typeAhead() -> bool", used to skip unnecessary redisplay).
func (t *Terminal) TypeAhead() (bool, error) {
	if t.reader.Buffered() > 0 {
		return true, nil
	}
	n, err := termio.PendingInput(t.in.Fd())
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetKey reads and decodes the next key (spec §6: "getKey(wait|
// timedWait) -> extendedKeyCode"). When wait is false and no input is
// available within a short poll window, ok is false.
func (t *Terminal) GetKey(wait bool) (code keymap.KeyCode, ok bool, err error) {
	if !wait {
		avail, terr := t.TypeAhead()
		if terr != nil {
			return 0, false, terr
		}
		if !avail {
			return 0, false, nil
		}
	}
	b, err := t.reader.ReadByte()
	if err != nil {
		return 0, false, fmt.Errorf("term: read key: %w", err)
	}
	code, err = t.decode(b)
	if err != nil {
		return 0, false, err
	}
	return code, true, nil
}

// decode turns the first raw byte (and, for ESC, whatever follows it
// within a short timeout) into a single resolved KeyCode, implementing
// spec §4.2's "prefix-escape encoding": an ESC immediately followed by
// another byte is Meta+that byte (Alt-key terminals send ESC as a
// prefix); an ESC followed by '[' or 'O' begins a CSI/SS3 sequence
// decoded into an arrow or function key; a bare ESC (nothing follows
// before the timeout) is the plain Escape key.
//
// keymap.CtrlKey encodes a Ctrl-chord symbolically (Ctrl | uppercase
// letter), not as the literal byte a terminal transmits (c & 0x1F), so
// a raw control byte in 0x00-0x1F must be translated back to its
// letter before it can match a Keymap entry bound via "C-n"-style
// notation. Tab (0x09), Return (0x0d), and Delete (0x7f) keep their own
// named-key identity (spec §3's "special chars") rather than being
// folded into Ctrl-I/Ctrl-M/Ctrl-? — ParseKeyCode treats those as two
// distinct bindable forms, and only the named form is what a real key
// press of Tab/Return/Delete produces.
func (t *Terminal) decode(b byte) (keymap.KeyCode, error) {
	switch {
	case b == 0x1b:
		return t.decodeEscape()
	case b == 0x09 || b == 0x0d || b == 0x7f:
		return keymap.PlainKey(b), nil
	case b < 0x20:
		return keymap.CtrlKey(b + 0x40), nil
	default:
		return keymap.PlainKey(b), nil
	}
}

const escTimeout = 200 * time.Millisecond

func (t *Terminal) decodeEscape() (keymap.KeyCode, error) {
	next, ok, err := t.peekWithTimeout()
	if err != nil {
		return 0, err
	}
	if !ok {
		return keymap.PlainKey(0x1b), nil // bare Escape
	}
	if next != '[' && next != 'O' {
		_, _ = t.reader.ReadByte()
		return keymap.MetaKey(next), nil
	}
	_, _ = t.reader.ReadByte() // consume '[' / 'O'
	return t.decodeCSI()
}

// decodeCSI decodes a minimal, commonly-supported subset of ANSI
// CSI/SS3 sequences (arrow keys and F1-F4) into FKey-flagged codes.
func (t *Terminal) decodeCSI() (keymap.KeyCode, error) {
	b, err := t.reader.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("term: read key: %w", err)
	}
	switch b {
	case 'A':
		return keymap.FKeyCode(20), nil // up
	case 'B':
		return keymap.FKeyCode(21), nil // down
	case 'C':
		return keymap.FKeyCode(22), nil // right
	case 'D':
		return keymap.FKeyCode(23), nil // left
	case 'H':
		return keymap.FKeyCode(24), nil // home
	case 'F':
		return keymap.FKeyCode(25), nil // end
	case 'P':
		return keymap.FKeyCode(1), nil
	case 'Q':
		return keymap.FKeyCode(2), nil
	case 'R':
		return keymap.FKeyCode(3), nil
	case 'S':
		return keymap.FKeyCode(4), nil
	}
	// Numeric CSI sequences (e.g. "5~" for PageUp) terminate in '~';
	// drain and ignore anything we don't specifically decode.
	for b >= '0' && b <= '9' {
		b, err = t.reader.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("term: read key: %w", err)
		}
	}
	return keymap.FKeyCode(0), nil
}

// peekWithTimeout waits up to escTimeout for the next byte without
// consuming it, distinguishing a genuine escape-sequence prefix from a
// standalone Escape keypress.
func (t *Terminal) peekWithTimeout() (byte, bool, error) {
	deadline := time.Now().Add(escTimeout)
	for time.Now().Before(deadline) {
		if t.reader.Buffered() > 0 {
			bs, err := t.reader.Peek(1)
			if err != nil {
				return 0, false, err
			}
			return bs[0], true, nil
		}
		avail, err := termio.PendingInput(t.in.Fd())
		if err != nil {
			return 0, false, err
		}
		if avail > 0 {
			bs, err := t.reader.Peek(1)
			if err != nil {
				return 0, false, err
			}
			return bs[0], true, nil
		}
		time.Sleep(time.Millisecond)
	}
	return 0, false, nil
}

// ReadKey adapts GetKey to internal/dispatch.Terminal's expected
// signature.
func (t *Terminal) ReadKey(wait bool) (keymap.KeyCode, bool, error) {
	return t.GetKey(wait)
}

// PutChar writes a single byte (spec §6: "putChar").
func (t *Terminal) PutChar(c byte) error {
	_, err := t.out.Write([]byte{c})
	return err
}

// PutString writes s verbatim (spec §6: "putString").
func (t *Terminal) PutString(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}

// Move positions the cursor at (row, col), both 0-based (spec §6:
// "move(row, col)").
func (t *Terminal) Move(row, col int) error {
	return t.PutString(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}

// EraseEOL clears from the cursor to the end of the current line
// (spec §6: "eraseEOL").
func (t *Terminal) EraseEOL() error { return t.PutString("\x1b[K") }

// EraseToEOD clears from the cursor to the end of the display (spec
// §6: "eraseToEOD").
func (t *Terminal) EraseToEOD() error { return t.PutString("\x1b[J") }

// Beep rings the terminal bell (spec §6: "beep").
func (t *Terminal) Beep() error { return t.PutChar(0x07) }

// ReverseVideo toggles reverse-video rendering (spec §6:
// "reverseVideo(on|off)").
func (t *Terminal) ReverseVideo(on bool) error {
	if on {
		return t.PutString("\x1b[7m")
	}
	return t.PutString("\x1b[27m")
}

// ColorPair sets a foreground/background ANSI color pair (spec §6's
// "optional color pair set").
func (t *Terminal) ColorPair(fg, bg int) error {
	return t.PutString(fmt.Sprintf("\x1b[%d;%dm", 30+fg, 40+bg))
}
