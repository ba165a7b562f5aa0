package editor

import (
	"fmt"
	"strings"

	"github.com/mightemacs-go/memacs/internal/inputline"
	"github.com/mightemacs-go/memacs/internal/modes"
)

// ChangeMode implements the single "change-mode" command (spec §4.8,
// command.Registry's HandlerID "change-mode"): PendingArg names the
// mode, optionally prefixed "-" to clear it instead of setting it
// (matching the registry's documented usage, "change-mode overwrite"
// vs. "change-mode -overwrite"); n > 1 clears every other mode of that
// scope first, per internal/modes.Table.Apply's own documented rule.
// The target mode's own declared Scope picks global vs. the current
// buffer's set.
func (s *Session) ChangeMode(n int64) error {
	arg, err := s.takePendingArg("change-mode", "Mode: ", inputline.KindMode, nil)
	if err != nil {
		return err
	}
	action := modes.Set
	name := arg
	if strings.HasPrefix(arg, "-") {
		action = modes.Clear
		name = arg[1:]
	}

	m, ok := s.modesTable.Lookup(name)
	if !ok {
		return fmt.Errorf("editor: change-mode: undefined mode %q", name)
	}

	set := s.globalModes
	bufferName := ""
	if m.Scope == modes.ScopeBuffer {
		set = s.BufferModes(s.current)
		bufferName = s.current.Name
	}
	_, err = s.modesTable.Apply(set, name, action, normN(n), bufferName, nil)
	return err
}

// ToggleMode is not bound by the registry's single change-mode command
// but is exposed for a wiring layer or test that wants to drive a
// toggle directly (spec §4.8's third action verb).
func (s *Session) ToggleMode(name string, n int64) error {
	m, ok := s.modesTable.Lookup(name)
	if !ok {
		return fmt.Errorf("editor: toggle-mode: undefined mode %q", name)
	}
	set := s.globalModes
	bufferName := ""
	if m.Scope == modes.ScopeBuffer {
		set = s.BufferModes(s.current)
		bufferName = s.current.Name
	}
	_, err := s.modesTable.Apply(set, name, modes.Toggle, normN(n), bufferName, nil)
	return err
}
