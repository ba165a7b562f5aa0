package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/inputline"
	"github.com/mightemacs-go/memacs/internal/search"
)

// SearchForward/SearchBackward prompt for a pattern (via PendingArg,
// the minibuffer-read seam) and move point to the nth match.
func (s *Session) SearchForward(n int64) error {
	pattern, err := s.takePendingArg("search-forward", "Search: ", inputline.KindNone, s.SearchRing)
	if err != nil {
		return err
	}
	return s.runSearch(pattern, search.Forward, n)
}

func (s *Session) SearchBackward(n int64) error {
	pattern, err := s.takePendingArg("search-backward", "Search backward: ", inputline.KindNone, s.SearchRing)
	if err != nil {
		return err
	}
	return s.runSearch(pattern, search.Backward, n)
}

// HuntForward/HuntBackward repeat the most recent search pattern in
// the given direction (spec §4.3's "hunt" commands), independent of
// which direction the original search ran.
func (s *Session) HuntForward(n int64) error {
	if s.lastSearchText == "" {
		return fmt.Errorf("editor: hunt-forward: no previous search pattern")
	}
	return s.runSearch(s.lastSearchText, search.Forward, n)
}

func (s *Session) HuntBackward(n int64) error {
	if s.lastSearchText == "" {
		return fmt.Errorf("editor: hunt-backward: no previous search pattern")
	}
	return s.runSearch(s.lastSearchText, search.Backward, n)
}

func (s *Session) runSearch(pattern string, dir search.Direction, n int64) error {
	text, opts, err := search.ParsePattern(pattern, s.cfg.SearchOptions)
	if err != nil {
		return err
	}
	m, err := search.Compile(text, opts, "")
	if err != nil {
		return err
	}
	result, err := search.Search(s.current, s.point, m, dir, normN(n))
	if err != nil {
		return fmt.Errorf("editor: search: %w", err)
	}
	s.current.MarkSet(buffer.WMark, s.point, 0)
	s.point = result.End
	if dir == search.Backward {
		s.point = result.Start
	}
	s.SearchRing.Push(pattern)
	s.lastSearch = m
	s.lastSearchText = pattern
	s.lastSearchDir = dir
	return nil
}
