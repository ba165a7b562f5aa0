package search

import (
	"errors"

	"github.com/mightemacs-go/memacs/internal/buffer"
)

// ErrNoMatch reports that a search found nothing (status.NotFound in
// the caller's terms, not a status.Failure).
var ErrNoMatch = errors.New("search: no match")

// Direction selects which way a search scans from its starting point.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Result reports one match location translated back into buffer Points,
// alongside the flat-offset bounds used to drive query-replace.
type Result struct {
	Start, End         buffer.Point
	StartOff, EndOff   int
	Groups             [10]Group
}

// Search scans buf for m's pattern starting at from, in the given
// direction, returning the nth match (n >= 1) reachable by repeating
// the scan from just past (or before) each prior hit. Progress for a
// slow scan is left to the caller's dispatch loop (spec §5's
// "Searching…" note is a UI concern, not this package's).
func Search(buf *buffer.Buffer, from buffer.Point, m *Match, dir Direction, n int) (Result, error) {
	if n < 1 {
		n = 1
	}
	text := buf.Bytes()
	offset := buf.Offset(from)

	var groups [10]Group
	found := false
	switch dir {
	case Forward:
		pos := offset
		for i := 0; i < n; i++ {
			if !m.FindForward(text, pos) {
				found = false
				break
			}
			groups = m.Groups
			found = true
			pos = groups[0].End
			if groups[0].End == groups[0].Start {
				pos++ // zero-width match: force forward progress for the next iteration
			}
		}
	case Backward:
		pos := offset - 1
		for i := 0; i < n; i++ {
			if pos < 0 || !m.FindBackward(text, pos) {
				found = false
				break
			}
			groups = m.Groups
			found = true
			pos = groups[0].Start - 1
		}
	}
	if !found {
		return Result{}, ErrNoMatch
	}

	start := buffer.Advance(buf.FirstPoint(), groups[0].Start)
	end := buffer.Advance(buf.FirstPoint(), groups[0].End)
	return Result{Start: start, End: end, StartOff: groups[0].Start, EndOff: groups[0].End, Groups: groups}, nil
}

// GroupText returns the matched text for group i (0 is the whole
// match), or false if that group did not participate in the match.
func GroupText(text []byte, groups [10]Group, i int) ([]byte, bool) {
	if i < 0 || i > 9 || !groups[i].Valid {
		return nil, false
	}
	return text[groups[i].Start:groups[i].End], true
}
