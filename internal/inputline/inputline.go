// Package inputline implements the terminal input line (spec §4.7): a
// fixed-capacity, horizontally-scrolling prompt-and-edit buffer used for
// every minibuffer read (filenames, buffer names, command names, search
// and replace patterns, script variable names...). It is driven the same
// way internal/replace.Session is driven: callers feed it one resolved
// key at a time via Feed and read back an Action describing what
// happened, keeping the state machine itself free of any terminal I/O.
//
// Grounded on original_source/memacs-9.4.0/src/input.c's InpChar/InpState
// (raw character + visible width per cell, left-shift for horizontal
// scrolling, jump-on-overflow) and its cMatchBuf/cMatchCFAB/cMatchFile
// completion routines (longest-common-prefix extension, one character at
// a time, silent beep when no candidate matches at all).
package inputline

import "github.com/mightemacs-go/memacs/internal/ring"

// Kind selects what a Reader completes against (spec §4.7).
type Kind int

const (
	KindNone Kind = iota
	KindBuffer
	KindFilename
	KindCommand // built-in command, alias, or macro name
	KindMode
	KindGlobalMode
	KindVariable        // read-only: system variables + global user variables
	KindMutableVariable // writable: global user variables + settable system variables
)

// cell is one input character plus the number of screen columns its
// visible rendering occupies, mirroring InpChar{c, len}.
type cell struct {
	b     byte
	width int
}

// cellWidth renders byte c the way the message line does: control bytes
// (including tab, which is never columnar-aligned on the input line) take
// two columns ("^X"), high bytes take four ("<XX>"), everything else one.
func cellWidth(c byte) int {
	switch {
	case c < 0x20 || c == 0x7F:
		return 2
	case c >= 0x80:
		return 4
	default:
		return 1
	}
}

// Source supplies completion candidates and ring lookups to a Reader. A
// cmd/ package implements this over the running session's buffer list,
// command registry, mode table, evaluator, and filesystem.
type Source interface {
	// Candidates returns every completion candidate for kind. Filenames
	// are completed by directory listing instead (see CandidatesDir).
	Candidates(kind Kind) []string
	// CandidatesDir lists the entries of dir for filename completion
	// (spec §4.7); dir is the directory portion of the text typed so
	// far, "" if none was given.
	CandidatesDir(dir string) ([]string, error)
	// ExpandVar resolves a leading "~", "~user", or "$VAR" token (without
	// its own trailing slash) to its replacement, per spec §4.7's
	// filename-mode expansion; ok is false if the token does not expand.
	ExpandVar(token string) (value string, ok bool)
}

// Options configures a Reader for one prompt.
type Options struct {
	Prompt       string
	Default      string
	MaxLen       int  // 0 means unlimited
	Kind         Kind // KindNone disables completion entirely
	Ring         *ring.Ring
	PromptColumn int // screen column where input starts, just past the prompt
	ScreenWidth  int // total screen columns available on the message line
	JumpPercent  int // percent of the input area to shift on overflow (spec default 25)
}

// Action reports what the most recent Feed call did.
type Action int

const (
	ActionNone Action = iota
	ActionInserted
	ActionDeleted
	ActionMoved
	ActionErased
	ActionTruncated
	ActionRingCycled
	ActionCompleted
	ActionCompletedPartial // extended by the longest common prefix, not yet unique
	ActionCompletionFailed // no candidate matched at all
	ActionListRequested
	ActionQuotePending
	ActionAccepted // Return: read complete, Result holds the text
	ActionNull     // Ctrl-Space: explicit null value requested
	ActionCancelled
	ActionBeep
)

// Result is returned once a Reader finishes (ActionAccepted/ActionNull/
// ActionCancelled).
type Result struct {
	Text      string
	Null      bool
	Cancelled bool
}

// Reader drives one terminal-input-line read.
type Reader struct {
	opts   Options
	source Source

	cells  []cell
	cursor int // logical index into cells, 0..len(cells)

	lshift int // number of leading cells scrolled off the left edge

	quoteNext bool

	finished bool
	result   Result

	// lastList holds the candidate list built by the most recent '?'
	// (ActionListRequested), for a caller to render in a pop-up window.
	lastList []string
}

// NewReader starts a new input-line read, seeding the buffer with
// opts.Default if one was given.
func NewReader(opts Options, source Source) *Reader {
	r := &Reader{opts: opts, source: source}
	if opts.JumpPercent <= 0 {
		r.opts.JumpPercent = 25
	}
	for i := 0; i < len(opts.Default); i++ {
		r.cells = append(r.cells, cell{b: opts.Default[i], width: cellWidth(opts.Default[i])})
	}
	r.cursor = len(r.cells)
	return r
}

// Done reports whether the read has finished. Only Return, Ctrl-Space
// and Escape finish a read; there is no caller-configured delimiter.
func (r *Reader) Done() bool { return r.finished }

// Result returns the finished read's outcome; valid only once Done.
func (r *Reader) Result() Result { return r.result }

// Text returns the current (possibly in-progress) buffer contents.
func (r *Reader) Text() string {
	b := make([]byte, len(r.cells))
	for i, c := range r.cells {
		b[i] = c.b
	}
	return string(b)
}

// Cursor returns the logical cursor position (a cell index, not a screen
// column).
func (r *Reader) Cursor() int { return r.cursor }

// LastList returns the candidate list built by the most recent '?'
// response.
func (r *Reader) LastList() []string { return r.lastList }

func (r *Reader) insertByte(c byte) Action {
	if r.opts.MaxLen > 0 && len(r.cells) >= r.opts.MaxLen {
		return ActionBeep
	}
	nc := cell{b: c, width: cellWidth(c)}
	r.cells = append(r.cells, cell{})
	copy(r.cells[r.cursor+1:], r.cells[r.cursor:])
	r.cells[r.cursor] = nc
	r.cursor++
	return ActionInserted
}

func (r *Reader) deleteBefore() Action {
	if r.cursor == 0 {
		return ActionBeep
	}
	r.cells = append(r.cells[:r.cursor-1], r.cells[r.cursor:]...)
	r.cursor--
	return ActionDeleted
}

func (r *Reader) deleteAt() Action {
	if r.cursor >= len(r.cells) {
		return ActionBeep
	}
	r.cells = append(r.cells[:r.cursor], r.cells[r.cursor+1:]...)
	return ActionDeleted
}

func (r *Reader) moveTo(pos int) Action {
	if pos < 0 {
		pos = 0
	}
	if pos > len(r.cells) {
		pos = len(r.cells)
	}
	if pos == r.cursor {
		return ActionBeep
	}
	r.cursor = pos
	return ActionMoved
}

func (r *Reader) erase() Action {
	if len(r.cells) == 0 {
		return ActionBeep
	}
	r.cells = nil
	r.cursor = 0
	return ActionErased
}

func (r *Reader) truncate() Action {
	if r.cursor >= len(r.cells) {
		return ActionBeep
	}
	r.cells = r.cells[:r.cursor]
	return ActionTruncated
}

func (r *Reader) setText(s string) {
	r.cells = r.cells[:0]
	for i := 0; i < len(s); i++ {
		r.cells = append(r.cells, cell{b: s[i], width: cellWidth(s[i])})
	}
	r.cursor = len(r.cells)
}

func (r *Reader) stop(res Result) Action {
	r.finished = true
	r.result = res
	switch {
	case res.Cancelled:
		return ActionCancelled
	case res.Null:
		return ActionNull
	default:
		return ActionAccepted
	}
}

func (r *Reader) cycleRing(next bool) Action {
	if r.opts.Ring == nil || r.opts.Ring.Len() == 0 {
		return ActionBeep
	}
	var text string
	var ok bool
	if next {
		text, ok = r.opts.Ring.Next()
	} else {
		text, ok = r.opts.Ring.Prev()
	}
	if !ok {
		return ActionBeep
	}
	r.setText(text)
	return ActionRingCycled
}
