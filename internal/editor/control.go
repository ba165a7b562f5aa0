package editor

// SessionQuit sets the session's Quit flag (spec §4.2's "quit" command); the
// wiring layer's dispatch loop checks it after each step and exits.
func (s *Session) SessionQuit(n int64) error {
	s.Quit = true
	return nil
}

// UniversalArgument is a no-op at this layer: internal/dispatch.Loop's
// Step consumes ^U/^_ directly in its numeric-argument sub-state
// machine before a bound target ever reaches Dispatch (spec §4.2 step
// 4). The registry still names the command for help/completion, so
// Dispatch routes it here rather than treating it as unknown.
func (s *Session) UniversalArgument(n int64) error {
	return nil
}

// KeyboardQuit discards queued pending arguments, stops an in-progress
// query-replace, and beeps (spec §4.2's C-g). A numeric prefix or an
// unfinished key sequence is state of internal/dispatch.Loop and is not
// touched here.
func (s *Session) KeyboardQuit(n int64) error {
	s.ClearPendingArgs()
	if s.activeReplace != nil {
		s.activeReplace.s.Respond('q')
		s.activeReplace = nil
	}
	s.Beep()
	return nil
}
