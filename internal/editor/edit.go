package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/dispatch"
)

// SelfInsert implements internal/dispatch.Dispatcher.SelfInsert: insert
// c, n times, at point.
func (s *Session) SelfInsert(c byte, n int64) error {
	count := normN(n)
	for i := 0; i < count; i++ {
		p, err := s.current.InsertChar(s.point, c)
		if err != nil {
			return err
		}
		s.point = p
	}
	s.lastCommand = "self-insert"
	return nil
}

func (s *Session) DeleteForwardChar(n int64) error {
	count, err := s.current.DeleteForward(s.point, normN(n))
	s.lastCommand = "delete-forward-char"
	if err != nil {
		return err
	}
	if count < normN(n) {
		return fmt.Errorf("editor: delete-forward-char: reached end of buffer")
	}
	return nil
}

func (s *Session) DeleteBackwardChar(n int64) error {
	count := normN(n)
	deleted, err := s.current.DeleteBackward(s.point, count)
	if err != nil {
		return err
	}
	s.point, _ = buffer.PointMove(s.point, -deleted)
	s.lastCommand = "delete-backward-char"
	if deleted < count {
		return fmt.Errorf("editor: delete-backward-char: reached start of buffer")
	}
	return nil
}

// KillLine kills from point to the end of its line (or, at end of
// line, the newline itself), pushing the killed text onto the kill
// ring. Consecutive kill-line invocations coalesce into one ring entry
// (spec §4.9's "adjacent kill commands coalesce").
func (s *Session) KillLine(n int64) error {
	var region buffer.Region
	if n == dispatch.NoArg {
		region = s.lineKillRegion()
	} else {
		region = buffer.RegionLines(s.point, normN(n))
	}
	return s.killRegion(region, "kill-line")
}

// lineKillRegion is kill-line's no-prefix behavior: to end of line, or
// the line's trailing newline if point is already there.
func (s *Session) lineKillRegion() buffer.Region {
	if s.point.AtEOL() {
		return buffer.RegionLines(s.point, 1)
	}
	return buffer.Region{Point: s.point, Size: s.point.Line.Len() - s.point.Offset}
}

// KillRegion kills the text between point and the RMark (spec §3's
// "kill the region"), pushing it onto the kill ring.
func (s *Session) KillRegion() error {
	mark, _, ok := s.current.MarkGoto(buffer.RMark)
	if !ok {
		return fmt.Errorf("editor: kill-region: no mark set in this buffer")
	}
	region := buffer.RegionBetween(s.point, mark)
	return s.killRegion(region, "kill-region")
}

func (s *Session) killRegion(region buffer.Region, command string) error {
	start, length := region.Canon()
	text := s.current.DeletedText(start, length)
	if _, err := s.current.DeleteForward(start, length); err != nil {
		return err
	}
	s.point = start

	coalesce := s.lastCommand == "kill-line" || s.lastCommand == "kill-region"
	if coalesce && s.KillRing.Len() > 0 {
		s.KillRing.CoalesceTop(string(text), region.Size < 0)
	} else {
		s.KillRing.Push(string(text))
	}
	s.lastCommand = command
	return nil
}

// Yank inserts the kill ring's current entry at point (spec §4.9).
func (s *Session) Yank(n int64) error {
	text, ok := s.KillRing.Current()
	if !ok {
		return fmt.Errorf("editor: yank: kill ring is empty")
	}
	return s.yankText(text, "yank")
}

// YankPop, invoked immediately after a Yank/YankPop, replaces the just
// -yanked text with the kill ring's previous entry (spec §4.9's
// "yank-pop" rotation).
func (s *Session) YankPop(n int64) error {
	if s.lastCommand != "yank" && s.lastCommand != "yank-pop" {
		return fmt.Errorf("editor: yank-pop: previous command was not a yank")
	}
	text, ok := s.KillRing.Prev()
	if !ok {
		return fmt.Errorf("editor: yank-pop: kill ring is empty")
	}
	start, length := s.lastYankRegion()
	if _, err := s.current.DeleteForward(start, length); err != nil {
		return err
	}
	s.point = start
	return s.yankText(text, "yank-pop")
}

func (s *Session) yankText(text, command string) error {
	start := s.point
	p, err := s.current.InsertString(s.point, []byte(text))
	if err != nil {
		return err
	}
	s.point = p
	s.yankMark(start, p)
	s.lastCommand = command
	return nil
}

// yankMark/lastYankRegion track the span of the most recent yank using
// the work mark so yank-pop can find and replace it.
func (s *Session) yankMark(start, end buffer.Point) {
	s.current.MarkSet(buffer.WMark, start, 0)
	s.yankEndOffset = s.current.Offset(end)
}

func (s *Session) lastYankRegion() (buffer.Point, int) {
	start, _, ok := s.current.MarkGoto(buffer.WMark)
	if !ok {
		return s.point, 0
	}
	return start, s.yankEndOffset - s.current.Offset(start)
}
