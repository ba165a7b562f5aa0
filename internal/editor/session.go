// Package editor wires the text store, keymap/dispatcher, search,
// replace, expression evaluator, macro runtime, terminal, and file I/O
// collaborators into a single running editor (spec §6/§10.4): the
// bookkeeping buffer.Buffer's own doc comment defers to "the editor
// package" (current buffer, point, marks-as-session-state) lives here.
package editor

import (
	"errors"
	"fmt"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/fileio"
	"github.com/mightemacs-go/memacs/internal/inputline"
	"github.com/mightemacs-go/memacs/internal/macro"
	"github.com/mightemacs-go/memacs/internal/modes"
	"github.com/mightemacs-go/memacs/internal/ring"
	"github.com/mightemacs-go/memacs/internal/search"
)

// ErrPromptCancelled is returned by a command that needed an
// interactive argument when the user dismissed the prompt (Escape).
// Ctrl-Space's explicit null value is not a cancellation: the command
// receives it as an empty argument.
var ErrPromptCancelled = errors.New("editor: prompt cancelled")

// Prompter reads one line of input through an internal/inputline.Reader
// for a command that needs an argument SetPendingArg(s) didn't supply.
// The wiring layer (cmd/memacs) implements this over a real
// internal/term.Terminal and an inputline.Source backed by the running
// session's buffers, command registry, mode table, and evaluator.
type Prompter interface {
	Prompt(prompt string, kind inputline.Kind, rng *ring.Ring) (text string, ok bool, err error)
}

// Config bounds the rings and search defaults a Session is built with
// (spec §10.1's ring-capacity and search-default settings).
type Config struct {
	KillRingSize    int
	DeleteRingSize  int
	SearchRingSize  int
	ReplaceRingSize int
	SearchOptions   search.Options
	BackupExt       string
	SafeSave        bool
}

// DefaultConfig returns the Session's own defaults, which differ from
// internal/config's: rings of 30 entries, case-insensitive search, and
// no backup extension.
func DefaultConfig() Config {
	return Config{
		KillRingSize:    30,
		DeleteRingSize:  30,
		SearchRingSize:  30,
		ReplaceRingSize: 30,
		SearchOptions:   search.Options{IgnoreCase: true},
		SafeSave:        true,
	}
}

// Session is the running editor: the buffer catalog, the current
// buffer and point, the kill/delete/search/replace rings, and the
// file-I/O and terminal collaborators every command handler reaches
// through. It implements internal/dispatch.Dispatcher.
type Session struct {
	cfg Config

	buffers []*buffer.Buffer // display order, oldest-first
	current *buffer.Buffer
	point   buffer.Point

	modesTable  *modes.Table
	globalModes *modes.Set
	bufferModes map[*buffer.Buffer]*modes.Set

	KillRing    *ring.Ring
	DeleteRing  *ring.Ring
	SearchRing  *ring.Ring
	ReplaceRing *ring.Ring

	FileIO   *fileio.IO
	Macro    *macro.Runtime // nil until the wiring layer attaches one; execute-macro errors until then
	Term     Beeper         // nil in headless tests; set to *internal/term.Terminal by the wiring layer
	Prompter Prompter       // nil in headless tests/scripts; set by the wiring layer for interactive reads

	lastCommand   string // HandlerID of the previously dispatched command
	yankEndOffset int    // flat-buffer offset just past the most recent yank, for yank-pop

	lastSearch      *search.Match
	lastSearchText  string
	lastSearchDir   search.Direction
	lastReplaceFrom string
	lastReplaceTo   string
	activeReplace   *replaceSession

	// pendingArgs queues the string arguments (filename, buffer name,
	// mode name, macro name, or a query-replace "from"/"to" pair) a
	// minibuffer read would otherwise have supplied for the next
	// Dispatch call; a script-call adapter or test pushes onto it via
	// SetPendingArg/SetPendingArgs to bypass the interactive prompt
	// entirely. takePendingArg pops the queue front-to-back, so a
	// command reading two arguments (query-replace's from/to) gets them
	// in call order; once the queue is empty it falls back to Prompter
	// for a real terminal-driven read (spec §4.7).
	pendingArgs []string

	// KeyboardMacroCtrl exposes begin/end/play so Dispatch can route
	// the three keyboard-macro commands without importing
	// internal/dispatch.Loop back into this package's Dispatch switch.
	KeyboardMacroCtrl KeyboardMacroController

	Quit bool
}

// KeyboardMacroController is the subset of internal/dispatch.Loop the
// editor's keyboard-macro commands drive.
type KeyboardMacroController interface {
	BeginKeyboardMacro()
	EndKeyboardMacro()
	PlayKeyboardMacro(n int64) error
}

// Beeper rings the terminal bell (internal/term.Terminal satisfies
// this already).
type Beeper interface {
	Beep() error
}

// New creates a Session with one empty "unnamed" buffer current.
func New(cfg Config) *Session {
	s := &Session{
		cfg:         cfg,
		modesTable:  modes.NewTable(),
		globalModes: modes.NewSet(),
		bufferModes: map[*buffer.Buffer]*modes.Set{},
		KillRing:    ring.New(cfg.KillRingSize),
		DeleteRing:  ring.New(cfg.DeleteRingSize),
		SearchRing:  ring.New(cfg.SearchRingSize),
		ReplaceRing: ring.New(cfg.ReplaceRingSize),
		FileIO:      fileio.New(),
	}
	buf := buffer.New("unnamed")
	s.addBuffer(buf)
	s.switchTo(buf)
	return s
}

// ModesTable returns the process-wide mode/group catalog, for a
// wiring layer to Define built-in modes into before the session runs.
func (s *Session) ModesTable() *modes.Table { return s.modesTable }

// Current returns the current buffer.
func (s *Session) Current() *buffer.Buffer { return s.current }

// Point returns the current point.
func (s *Session) Point() buffer.Point { return s.point }

// SetPoint moves point within the current buffer.
func (s *Session) SetPoint(p buffer.Point) { s.point = p }

func (s *Session) addBuffer(b *buffer.Buffer) {
	s.buffers = append(s.buffers, b)
	s.bufferModes[b] = modes.NewSet()
}

func (s *Session) switchTo(b *buffer.Buffer) {
	s.current = b
	s.point = b.FirstPoint()
}

// BufferNamed finds a buffer by exact name.
func (s *Session) BufferNamed(name string) (*buffer.Buffer, bool) {
	for _, b := range s.buffers {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// BufferNames lists every open buffer's name in display order, for
// completion in the terminal input line (spec §4.7's "buffer" kind).
func (s *Session) BufferNames() []string {
	names := make([]string, len(s.buffers))
	for i, b := range s.buffers {
		names[i] = b.Name
	}
	return names
}

// BufferModes returns b's buffer-scoped mode set, creating one if b
// was not added through this Session (macro buffers created directly
// by internal/macro.Runtime, for instance).
func (s *Session) BufferModes(b *buffer.Buffer) *modes.Set {
	set, ok := s.bufferModes[b]
	if !ok {
		set = modes.NewSet()
		s.bufferModes[b] = set
	}
	return set
}

// GlobalModes returns the process-wide enabled-mode set.
func (s *Session) GlobalModes() *modes.Set { return s.globalModes }

// SetPendingArg queues a single string argument for the next command
// dispatched (e.g. a filename for find-file).
func (s *Session) SetPendingArg(arg string) { s.pendingArgs = []string{arg} }

// SetPendingArgs queues multiple string arguments in call order (e.g.
// query-replace's "from" then "to").
func (s *Session) SetPendingArgs(args ...string) { s.pendingArgs = append([]string(nil), args...) }

// ClearPendingArgs discards any queued arguments, e.g. on abort
// (internal/dispatch's Ctrl-G / keyboard-quit).
func (s *Session) ClearPendingArgs() { s.pendingArgs = nil }

// takePendingArg pops the next queued argument. Once the queue is
// empty it falls back to an interactive read through Prompter (if one
// is attached), kind and rng selecting the completion and ring-history
// behavior the minibuffer offers for this argument (spec §4.7);
// otherwise it errors, since there is no argument and no way to ask
// for one.
func (s *Session) takePendingArg(command, prompt string, kind inputline.Kind, rng *ring.Ring) (string, error) {
	if len(s.pendingArgs) > 0 {
		arg := s.pendingArgs[0]
		s.pendingArgs = s.pendingArgs[1:]
		return arg, nil
	}
	if s.Prompter == nil {
		return "", fmt.Errorf("editor: %s requires an argument (none was supplied)", command)
	}
	text, ok, err := s.Prompter.Prompt(prompt, kind, rng)
	if err != nil {
		return "", fmt.Errorf("editor: %s: %w", command, err)
	}
	if !ok {
		return "", ErrPromptCancelled
	}
	return text, nil
}

// Beep is spec §4.2 step 6's terminal bell for an unbound key or a
// response the current command doesn't recognize.
func (s *Session) Beep() {
	s.lastCommand = "beep"
	if s.Term != nil {
		_ = s.Term.Beep()
	}
}
