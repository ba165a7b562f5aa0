// Package dispatch implements the editor's main event loop (spec
// §4.2): reading and assembling key sequences, the numeric-argument
// sub-state machine, keyboard-macro record/playback, pre/post-key
// hooks, and dispatch to a bound command or self-insert. Grounded
// structurally on the teacher's internal/interactive event-loop
// pattern (a blocking read -> resolve -> execute cycle) and, for the
// numeric-argument table, on original_source/memacs-8.5.0/src/main.c's
// documented decision table.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/mightemacs-go/memacs/internal/keymap"
)

// ErrUserAbort is the status raised when Ctrl-G aborts a read at any
// point in the loop (spec §4.2 step 2, §5 "UserAbort unwinds
// immediately to the dispatcher").
var ErrUserAbort = errors.New("dispatch: user abort")

// ErrQuit signals the loop's caller to stop iterating when a
// Dispatcher.Dispatch call returns it. The editor's own "quit" command
// does not return it; it sets editor.Session.Quit instead.
var ErrQuit = errors.New("dispatch: quit")

// AbortKey is Ctrl-G's KeyCode (spec §4.2 step 2).
var AbortKey = keymap.CtrlKey('G')

// Terminal is the minimal keyboard-reading surface the loop needs
// (spec §6's terminal collaborator contract, narrowed to getKey).
type Terminal interface {
	// ReadKey blocks for the next key. wait selects between an
	// indefinite wait and the short timed wait used to poll for
	// keyboard-macro-playback pacing or idle auto-save checks.
	ReadKey(wait bool) (keymap.KeyCode, bool, error)
}

// Dispatcher executes a resolved target or performs self-insertion; it
// is the seam a top-level editor wiring package implements over
// internal/command + internal/macro.
type Dispatcher interface {
	// Dispatch invokes the command or macro bound to target with
	// numeric argument n. handled is false only if target is unknown
	// to the dispatcher (which the loop treats as a failed bind).
	Dispatch(target string, n int64) (handled bool, err error)
	// SelfInsert inserts c into the current buffer n times.
	SelfInsert(c byte, n int64) error
	// Beep signals an unbound, non-printable key (spec §4.2 step 6).
	Beep()
}

// Hooks is the subset of internal/macro.Runtime the loop drives: the
// pre-key and post-key hooks of spec §4.2 steps 5 and 7.
type Hooks interface {
	// RunPreKey runs the preKey hook, if bound, with the visible form
	// of the resolved key. skip reports whether its return value was
	// truthy (key execution is skipped).
	RunPreKey(code keymap.KeyCode, n int64) (skip bool, err error)
	RunPostKey(code keymap.KeyCode, n int64) error
}

// KeyboardMacro implements recording and playback of a keyboard macro
// (spec §4.2: "each key read while in Record is appended to a growable
// buffer; play-back substitutes the recorded buffer for the keyboard
// until exhausted and repeats n times").
type KeyboardMacro struct {
	recording bool
	playing   bool
	buf       []keymap.KeyCode
	playPos   int
	repeats   int64
	maxLoop   int64 // guards runaway replays; 0 means use defaultMaxLoop
}

const defaultMaxLoop = 1 << 20

// Recording reports whether keys are currently being appended.
func (k *KeyboardMacro) Recording() bool { return k.recording }

// BeginRecord starts (or restarts) recording; any previously recorded
// macro is discarded.
func (k *KeyboardMacro) BeginRecord() {
	k.recording = true
	k.buf = k.buf[:0]
}

// EndRecord stops recording.
func (k *KeyboardMacro) EndRecord() { k.recording = false }

// Play begins playback of the recorded macro, repeated n times (n <=
// 0 treated as 1). Returns an error if nothing has been recorded or n
// would exceed the max-loop-count guard.
func (k *KeyboardMacro) Play(n int64) error {
	if len(k.buf) == 0 {
		return fmt.Errorf("dispatch: no keyboard macro has been recorded")
	}
	if n <= 0 {
		n = 1
	}
	maxLoop := k.maxLoop
	if maxLoop == 0 {
		maxLoop = defaultMaxLoop
	}
	if n*int64(len(k.buf)) > maxLoop {
		return fmt.Errorf("dispatch: keyboard macro replay exceeds max loop count (%d)", maxLoop)
	}
	k.playing = true
	k.playPos = 0
	k.repeats = n
	return nil
}

// record appends code to the in-progress recording, a no-op when not
// recording.
func (k *KeyboardMacro) record(code keymap.KeyCode) {
	if k.recording {
		k.buf = append(k.buf, code)
	}
}

// next returns the next playback key, advancing repeats when the
// buffer is exhausted. ok is false once playback has fully completed.
func (k *KeyboardMacro) next() (keymap.KeyCode, bool) {
	if !k.playing {
		return 0, false
	}
	if k.playPos >= len(k.buf) {
		k.repeats--
		k.playPos = 0
		if k.repeats <= 0 {
			k.playing = false
			return 0, false
		}
	}
	code := k.buf[k.playPos]
	k.playPos++
	return code, true
}

// Loop owns the cross-key state of spec §4.2: the pending-unget slot,
// the keyboard-macro player, the sequence assembler, the
// numeric-argument machine, and the last/this-command flag bits.
type Loop struct {
	Term       Terminal
	Keymap     *keymap.Keymap
	Dispatcher Dispatcher
	Hooks      Hooks // nil disables pre/post-key hooks

	// UniversalArgKey/NegativeArgKey are the control bytes bound to
	// universalArg/negativeArg, default ^U and ^_. Step matches them
	// against an unflagged code's char or a Ctrl-flagged code's byte.
	UniversalArgKey byte
	NegativeArgKey  byte

	// AutoSaveEvery, if > 0, runs AutoSave every that many dispatched
	// keys (spec §4.2 step 8); autoSaveCounter tracks the countdown.
	AutoSaveEvery   int
	autoSaveCounter int
	AutoSave        func() error

	// LastFlag/ThisFlag communicate state between successive commands
	// (spec §4.2: "thisFlag is cleared before each command and
	// assigned to lastFlag after").
	LastFlag uint32
	ThisFlag uint32

	unget    keymap.KeyCode
	ungetHas bool
	assem    keymap.Assembler
	arg      ArgState
	kmacro   KeyboardMacro
}

// NewLoop builds a Loop with the spec's default universal/negative
// argument keys (^U, ^_). km's own Prefix table drives sequence
// assembly (spec §4.2 step 3).
func NewLoop(term Terminal, km *keymap.Keymap, d Dispatcher, hooks Hooks) *Loop {
	return &Loop{
		Term:            term,
		Keymap:          km,
		Dispatcher:      d,
		Hooks:           hooks,
		UniversalArgKey: 'U' - '@', // ^U = 0x15
		NegativeArgKey:  '_' - '@', // ^_ = 0x1F
	}
}

// Unget pushes code back to be the next key read (spec §4.2 step 2's
// "pending unget slot").
func (l *Loop) Unget(code keymap.KeyCode) {
	l.unget = code
	l.ungetHas = true
}

// BeginKeyboardMacro / EndKeyboardMacro / PlayKeyboardMacro expose
// KeyboardMacro's controls for binding to the corresponding commands.
func (l *Loop) BeginKeyboardMacro()             { l.kmacro.BeginRecord() }
func (l *Loop) EndKeyboardMacro()               { l.kmacro.EndRecord() }
func (l *Loop) PlayKeyboardMacro(n int64) error { return l.kmacro.Play(n) }
func (l *Loop) RecordingKeyboardMacro() bool    { return l.kmacro.Recording() }

// readRaw implements step 2: unget slot, then keyboard-macro playback,
// then the terminal.
func (l *Loop) readRaw() (keymap.KeyCode, error) {
	if l.ungetHas {
		l.ungetHas = false
		return l.unget, nil
	}
	if code, ok := l.kmacro.next(); ok {
		return code, nil
	}
	code, ok, err := l.Term.ReadKey(true)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("dispatch: terminal read returned no key")
	}
	if code == AbortKey {
		l.kmacro.playing = false
		l.assem.Reset()
		l.arg.Reset()
		return 0, ErrUserAbort
	}
	l.kmacro.record(code)
	return code, nil
}

// readResolved implements step 3: repeatedly reads raw codes until the
// Assembler merges them (via km's prefix table) into a single resolved
// KeyCode.
func (l *Loop) readResolved() (keymap.KeyCode, error) {
	for {
		raw, err := l.readRaw()
		if err != nil {
			return 0, err
		}
		if code, ready := l.assem.Feed(raw, l.Keymap.Prefix); ready {
			return code, nil
		}
	}
}

// Step runs one full iteration of steps 2-8 of the dispatcher loop.
// redisplay, if non-nil, implements step 1. Step returns ErrUserAbort
// or ErrQuit to signal the caller to stop, or any other error from a
// hook/dispatch/auto-save failure (non-fatal; the caller may continue
// the loop after reporting it, per spec §5's failure model).
func (l *Loop) Step(redisplay func()) error {
	if redisplay != nil {
		redisplay()
	}

	code, err := l.readResolved()
	if err != nil {
		return err
	}

	// Step 4: numeric-argument sub-state machine. The argument keys
	// and digits/sign are never prefix-merged (^U/^_ are not bound as
	// prefix roles), so each read here is a plain resolved code.
	n := NoArg
	for {
		b := code.Char()
		if code.Flags() == keymap.Ctrl && b >= '@' && b <= '_' {
			b -= '@' // CtrlKey('U') is the terminal's 0x15
		}
		if !l.arg.Active() {
			kind, _ := ClassifyArgInput(b, l.UniversalArgKey, l.NegativeArgKey)
			if kind != ArgUniversal && kind != ArgNegative {
				break // no prefix entered at all; dispatch code as-is
			}
			l.arg.Begin(kind)
			code, err = l.readResolved()
			if err != nil {
				l.arg.Reset()
				return err
			}
			continue
		}
		kind, digit := ClassifyArgInput(b, l.UniversalArgKey, l.NegativeArgKey)
		switch l.arg.Feed(kind, digit) {
		case ArgContinue:
			code, err = l.readResolved()
			if err != nil {
				l.arg.Reset()
				return err
			}
			continue
		case ArgInsert, ArgExecute:
			n = l.arg.Finish()
		}
		break
	}

	l.ThisFlag = 0

	// Step 5: pre-key hook.
	if l.Hooks != nil {
		skip, herr := l.Hooks.RunPreKey(code, n)
		if herr != nil {
			return herr
		}
		if skip {
			l.LastFlag = l.ThisFlag
			return nil
		}
	}

	// Step 6: dispatch.
	if target, ok := l.Keymap.Lookup(code); ok {
		if _, derr := l.Dispatcher.Dispatch(target.Name, n); derr != nil {
			return derr
		}
	} else if isSelfInsertable(code) {
		reps := n
		if reps == NoArg {
			reps = 1
		}
		if err := l.Dispatcher.SelfInsert(code.Char(), reps); err != nil {
			return err
		}
	} else {
		l.Dispatcher.Beep()
	}

	// Step 7: post-key hook.
	if l.Hooks != nil {
		if err := l.Hooks.RunPostKey(code, n); err != nil {
			return err
		}
	}

	l.LastFlag = l.ThisFlag

	// Step 8: auto-save countdown.
	if l.AutoSaveEvery > 0 && l.AutoSave != nil {
		l.autoSaveCounter--
		if l.autoSaveCounter <= 0 {
			l.autoSaveCounter = l.AutoSaveEvery
			if err := l.AutoSave(); err != nil {
				return err
			}
		}
	}

	return nil
}

// isSelfInsertable reports whether code is a plain printable character
// with no Ctrl/Meta/FKey/prefix flags (spec §4.2 step 6).
func isSelfInsertable(code keymap.KeyCode) bool {
	if code.Has(keymap.Ctrl) || code.Has(keymap.Meta) || code.Has(keymap.FKey) {
		return false
	}
	if code.Has(keymap.Pref1) || code.Has(keymap.Pref2) || code.Has(keymap.Pref3) {
		return false
	}
	c := code.Char()
	return c >= 0x20 && c < 0x7F
}

// Run drives Step in a loop until it returns ErrQuit, ErrUserAbort (if
// onAbort is nil), or another error onErr does not choose to swallow.
// onAbort/onErr may return nil to keep looping.
func (l *Loop) Run(redisplay func(), onAbort, onErr func(error) error) error {
	for {
		err := l.Step(redisplay)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrUserAbort):
			if onAbort == nil {
				return err
			}
			if herr := onAbort(err); herr != nil {
				return herr
			}
		default:
			if onErr == nil {
				return err
			}
			if herr := onErr(err); herr != nil {
				return herr
			}
		}
	}
}
