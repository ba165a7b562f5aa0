package editor

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/inputline"
)

// ExecuteMacro runs PendingArg's macro name with numeric prefix n (spec
// §4.6's "xeq" command), via the attached internal/macro.Runtime.
func (s *Session) ExecuteMacro(n int64) error {
	if s.Macro == nil {
		return fmt.Errorf("editor: execute-macro: no macro runtime attached")
	}
	name, err := s.takePendingArg("execute-macro", "Execute macro: ", inputline.KindCommand, nil)
	if err != nil {
		return err
	}
	_, err = s.Macro.Execute(name, n, nil)
	return err
}

// BeginKeyboardMacro/EndKeyboardMacro/CallLastKeyboardMacro delegate
// to the dispatch loop's recorder (spec §4.6's keyboard-macro trio);
// internal/editor has no terminal-input loop of its own to record
// from, so KeyboardMacroCtrl is the wiring layer's internal/dispatch
// .Loop.
func (s *Session) BeginKeyboardMacro(n int64) error {
	if s.KeyboardMacroCtrl == nil {
		return fmt.Errorf("editor: begin-keyboard-macro: no keyboard-macro controller attached")
	}
	s.KeyboardMacroCtrl.BeginKeyboardMacro()
	return nil
}

func (s *Session) EndKeyboardMacro(n int64) error {
	if s.KeyboardMacroCtrl == nil {
		return fmt.Errorf("editor: end-keyboard-macro: no keyboard-macro controller attached")
	}
	s.KeyboardMacroCtrl.EndKeyboardMacro()
	return nil
}

func (s *Session) CallLastKeyboardMacro(n int64) error {
	if s.KeyboardMacroCtrl == nil {
		return fmt.Errorf("editor: call-last-keyboard-macro: no keyboard-macro controller attached")
	}
	return s.KeyboardMacroCtrl.PlayKeyboardMacro(n)
}
