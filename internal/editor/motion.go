package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/dispatch"
)

// normN maps a dispatcher numeric argument (dispatch.NoArg when no
// prefix was entered, or 0, both meaning "once") to a plain repeat
// count.
func normN(n int64) int {
	if n == dispatch.NoArg || n == 0 {
		return 1
	}
	return int(n)
}

// ForwardChar/BackwardChar move point by n characters (spec §4.1's
// character-motion commands), reporting the buffer boundary as an
// error the same way the rest of this package surfaces a NotFound
// condition.
func (s *Session) ForwardChar(n int64) error {
	p, ok := buffer.PointMove(s.point, normN(n))
	s.point = p
	if !ok {
		return fmt.Errorf("editor: forward-char: reached end of buffer")
	}
	return nil
}

func (s *Session) BackwardChar(n int64) error {
	p, ok := buffer.PointMove(s.point, -normN(n))
	s.point = p
	if !ok {
		return fmt.Errorf("editor: backward-char: reached start of buffer")
	}
	return nil
}

// ForwardLine/BackwardLine move point by n lines, preserving a target
// column across consecutive line moves (spec §4.1's "sameCommand"
// rule, implemented by comparing lastCommand to the HandlerID).
func (s *Session) ForwardLine(n int64) error {
	same := s.lastCommand == "forward-line" || s.lastCommand == "backward-line"
	p, ok := s.current.LineMove(s.point, normN(n), same)
	s.point = p
	s.lastCommand = "forward-line"
	if !ok {
		return fmt.Errorf("editor: forward-line: reached end of buffer")
	}
	return nil
}

func (s *Session) BackwardLine(n int64) error {
	same := s.lastCommand == "forward-line" || s.lastCommand == "backward-line"
	p, ok := s.current.LineMove(s.point, -normN(n), same)
	s.point = p
	s.lastCommand = "backward-line"
	if !ok {
		return fmt.Errorf("editor: backward-line: reached start of buffer")
	}
	return nil
}

// BeginningOfLine/EndOfLine move point within its current line.
func (s *Session) BeginningOfLine() error {
	s.point.Offset = 0
	return nil
}

func (s *Session) EndOfLine() error {
	s.point.Offset = s.point.Line.Len()
	return nil
}

// GotoLine moves point to the start of line n (1-based), or to the
// last line when n exceeds the buffer's line count.
func (s *Session) GotoLine(n int64) error {
	target := normN(n)
	p := s.current.FirstPoint()
	for i := 1; i < target; i++ {
		if p.Line.IsLast() {
			s.point = p
			return fmt.Errorf("editor: goto-line: buffer has fewer than %d lines", target)
		}
		p.Line = p.Line.next
	}
	s.point = p
	return nil
}

// SetMark records point under buffer.RMark, the default mark target
// (spec §3).
func (s *Session) SetMark() error {
	s.current.MarkSet(buffer.RMark, s.point, 0)
	return nil
}

// ExchangePointAndMark swaps point with the RMark's location.
func (s *Session) ExchangePointAndMark() error {
	mark, _, ok := s.current.MarkGoto(buffer.RMark)
	if !ok {
		return fmt.Errorf("editor: exchange-point-and-mark: no mark set in this buffer")
	}
	cur := s.point
	s.current.MarkSet(buffer.RMark, cur, 0)
	s.point = mark
	return nil
}
