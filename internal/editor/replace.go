package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/inputline"
	"github.com/mightemacs-go/memacs/internal/replace"
	"github.com/mightemacs-go/memacs/internal/search"
)

// replaceSession is the in-flight query-replace, if any (spec §4.4):
// QueryReplace starts one and leaves it pending for RespondReplace to
// drive key by key; ReplaceString drives an internal/replace.Session
// to completion in one shot the same way the session itself supports
// non-interactive runs, by sending it a '!' the moment a match is
// pending (internal/replace.Session has no public non-interactive
// constructor, so this is the only seam that reaches it).
type replaceSession struct {
	s *replace.Session
}

// QueryReplace prompts for "from" and "to" patterns (via PendingArg,
// read twice) and starts an interactive replace session at point,
// unbounded. Use RespondReplace to drive it.
func (s *Session) QueryReplace(n int64) error {
	from, to, err := s.takeReplaceArgs()
	if err != nil {
		return err
	}
	return s.startReplace(from, to, replace.Unlimited, false)
}

// ReplaceString performs "from" -> "to" across the rest of the buffer
// from point without prompting (spec §4.4's non-interactive variant).
func (s *Session) ReplaceString(n int64) error {
	from, to, err := s.takeReplaceArgs()
	if err != nil {
		return err
	}
	return s.startReplace(from, to, replace.Unlimited, true)
}

func (s *Session) takeReplaceArgs() (from, to string, err error) {
	from, err = s.takePendingArg("replace-from", "Replace: ", inputline.KindNone, s.SearchRing)
	if err != nil {
		return "", "", err
	}
	to, err = s.takePendingArg("replace-to", "Replace with: ", inputline.KindNone, s.ReplaceRing)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func (s *Session) startReplace(from, to string, n int, nonInteractive bool) error {
	text, opts, err := search.ParsePattern(from, s.cfg.SearchOptions)
	if err != nil {
		return err
	}
	m, err := search.Compile(text, opts, to)
	if err != nil {
		return err
	}
	repl, err := replace.Compile(to)
	if err != nil {
		return err
	}

	sess := replace.NewSession(s.current, m, repl, s.point, n)
	s.activeReplace = &replaceSession{s: sess}
	s.lastReplaceFrom = from
	s.lastReplaceTo = to
	s.ReplaceRing.Push(from + " -> " + to)

	if nonInteractive {
		if _, pending := sess.Pending(); pending {
			sess.Respond('!')
		}
	}
	s.point = sess.Point()
	if sess.Done() {
		s.activeReplace = nil
	}
	return nil
}

// RespondReplace answers the currently pending query-replace prompt
// (spec §4.4's y/n/Y/!/u/r/./q responses). It errors if no
// query-replace is in progress.
func (s *Session) RespondReplace(key byte) error {
	if s.activeReplace == nil {
		return fmt.Errorf("editor: respond-replace: no query-replace in progress")
	}
	sess := s.activeReplace.s
	sess.Respond(key)
	s.point = sess.Point()
	if sess.Done() {
		s.activeReplace = nil
	}
	return nil
}

// ReplaceInProgress reports whether RespondReplace has a pending
// prompt to answer.
func (s *Session) ReplaceInProgress() bool { return s.activeReplace != nil }
