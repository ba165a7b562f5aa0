package replace

import (
	"math"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/search"
)

// Action reports what a Respond call actually did, for the dispatcher
// to reflect in the status line (spec §5).
type Action int

const (
	ActionNone Action = iota
	ActionSubstituted
	ActionSkipped
	ActionUndone
	ActionRestarted
	ActionStopped
	ActionHelp
	ActionBeep
)

// Unlimited is the sentinel count meaning "replace to the end of the
// buffer without a limit" (spec §4.4's INT_MIN).
const Unlimited = math.MinInt

type countMode int

const (
	modeUnlimited countMode = iota
	modeCount               // positive n: stop after n substitutions
	modeLineLimit           // negative n (not Unlimited): stop once the match has crossed -n line breaks from origin
)

type undoRecord struct {
	start       buffer.Point
	original    []byte
	replacedLen int
}

// Session drives one query-replace operation: searching, prompting, and
// applying or skipping matches one at a time (spec §4.4).
type Session struct {
	buf    *buffer.Buffer
	match  *search.Match
	repl   *Pattern
	origin buffer.Point

	mode           countMode
	remaining      int // modeCount: substitutions left; modeLineLimit: max line delta
	initRemaining  int // remaining's value as of NewSession, restored by 'r'
	nonInteractive bool

	fromOffset int // next scan position, in flat-byte-slice offsets
	pending    *search.Result
	undo       *undoRecord

	substitutions int
	finished      bool
	point         buffer.Point // where point ends up once finished
}

// NewSession starts a query-replace from start, with n carrying the
// special values documented in spec §4.4: Unlimited replaces to the end
// of the buffer, 0 is a no-op, a negative (non-Unlimited) value bounds
// the replace to within -n line breaks of start, and a positive value
// caps the number of substitutions performed.
func NewSession(buf *buffer.Buffer, m *search.Match, repl *Pattern, start buffer.Point, n int) *Session {
	s := &Session{
		buf:        buf,
		match:      m,
		repl:       repl,
		origin:     start,
		fromOffset: buf.Offset(start),
		point:      start,
	}
	switch {
	case n == Unlimited:
		s.mode = modeUnlimited
	case n == 0:
		s.finished = true
	case n < 0:
		s.mode = modeLineLimit
		s.remaining = -n
	default:
		s.mode = modeCount
		s.remaining = n
	}
	s.initRemaining = s.remaining
	if !s.finished {
		s.advance()
	}
	return s
}

// Done reports whether the session has stopped asking and applying.
func (s *Session) Done() bool { return s.finished }

// Point returns where point should rest: the current match's start
// while a prompt is pending, or the resting place once finished.
func (s *Session) Point() buffer.Point {
	if s.pending != nil {
		return s.pending.Start
	}
	return s.point
}

// Pending returns the match currently awaiting a response, if any.
func (s *Session) Pending() (search.Result, bool) {
	if s.pending == nil {
		return search.Result{}, false
	}
	return *s.pending, true
}

// Substitutions reports how many replacements have been made so far.
func (s *Session) Substitutions() int { return s.substitutions }

// advance searches forward for the next candidate match, honoring the
// count/line-limit mode, then either substitutes it automatically (in
// non-interactive mode) or leaves it in s.pending for a prompt.
func (s *Session) advance() {
	for {
		if s.finished {
			s.pending = nil
			return
		}
		if s.mode == modeCount && s.remaining <= 0 {
			s.stop(false)
			return
		}
		result, err := search.Search(s.buf, s.offsetPoint(s.fromOffset), s.match, search.Forward, 1)
		if err != nil {
			s.stop(false)
			return
		}
		if s.mode == modeLineLimit {
			delta := buffer.RegionBetween(s.origin, result.Start).LineCount
			if delta > s.remaining {
				s.stop(false)
				return
			}
		}
		if !s.nonInteractive {
			s.pending = &result
			return
		}
		s.substitute(result)
	}
}

func (s *Session) offsetPoint(off int) buffer.Point {
	return buffer.Advance(s.buf.FirstPoint(), off)
}

// substitute applies the replacement at result, records an undo
// record, and advances the scan cursor past the inserted text.
func (s *Session) substitute(result search.Result) {
	text := s.buf.Bytes()
	replText := s.repl.Apply(text, func(i int) ([]byte, bool) {
		return search.GroupText(text, result.Groups, i)
	})

	matched := append([]byte(nil), text[result.StartOff:result.EndOff]...)
	if _, err := s.buf.DeleteForward(result.Start, result.EndOff-result.StartOff); err != nil {
		s.stop(false)
		return
	}
	after, err := s.buf.InsertString(result.Start, replText)
	if err != nil {
		s.stop(false)
		return
	}

	s.undo = &undoRecord{start: result.Start, original: matched, replacedLen: len(replText)}
	s.substitutions++
	if s.mode == modeCount {
		s.remaining--
	}
	s.fromOffset = s.buf.Offset(after)
	s.point = after
	s.pending = nil
}

// skip advances the scan cursor past the pending match without
// substituting it.
func (s *Session) skip(result search.Result) {
	off := result.EndOff
	if off == result.StartOff {
		off++
	}
	s.fromOffset = off
	s.point = s.offsetPoint(off)
	s.pending = nil
}

// stop ends the session. When returnToOrigin is true (the "." response)
// point is restored to where the session began.
func (s *Session) stop(returnToOrigin bool) {
	s.finished = true
	s.pending = nil
	if returnToOrigin {
		s.point = s.origin
	} else if s.point != s.origin {
		// work mark set to origin on completion if point has moved (spec §4.4)
		s.buf.MarkSet('.', s.origin, 0)
	}
}

// Respond processes one interactive response key against the pending
// match and reports what happened. Calling Respond with no pending
// match is a no-op returning ActionNone.
func (s *Session) Respond(key byte) Action {
	if s.pending == nil {
		return ActionNone
	}
	result := *s.pending
	switch key {
	case 'y', ' ':
		s.substitute(result)
		s.advance()
		return ActionSubstituted
	case 'n':
		s.skip(result)
		s.advance()
		return ActionSkipped
	case 'Y':
		// Y substitutes this match and then stops — "yes, and that's
		// my last one" — unlike '!', which keeps going non-interactively
		// (spec §4.4).
		s.substitute(result)
		s.stop(false)
		return ActionSubstituted
	case '!':
		s.nonInteractive = true
		s.substitute(result)
		s.advance()
		return ActionSubstituted
	case 'u':
		if s.undoLast() {
			return ActionUndone
		}
		return ActionBeep
	case 'r':
		s.restart()
		return ActionRestarted
	case '.':
		s.stop(true)
		return ActionStopped
	case 'q', 0x1b:
		s.stop(false)
		return ActionStopped
	case '?':
		return ActionHelp
	default:
		return ActionBeep
	}
}

// undoLast reverts the most recent substitution and re-prompts at its
// location, per spec §4.4's "restore saved matched string, position,
// and length" response to 'u'.
func (s *Session) undoLast() bool {
	if s.undo == nil {
		return false
	}
	u := s.undo
	if _, err := s.buf.DeleteForward(u.start, u.replacedLen); err != nil {
		return false
	}
	if _, err := s.buf.InsertString(u.start, u.original); err != nil {
		return false
	}
	s.substitutions--
	if s.mode == modeCount {
		s.remaining++
	}
	s.fromOffset = s.buf.Offset(u.start)
	s.undo = nil
	s.finished = false
	s.advance()
	return true
}

// restart returns the scan cursor to the origin, resets the
// substitution count, and resumes prompting from there, per spec
// §4.4's 'r' response ("restart: return to original point, reset
// count").
func (s *Session) restart() {
	s.fromOffset = s.buf.Offset(s.origin)
	s.nonInteractive = false
	s.finished = false
	s.undo = nil
	s.substitutions = 0
	s.remaining = s.initRemaining
	s.advance()
}
