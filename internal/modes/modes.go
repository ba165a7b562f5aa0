// Package modes implements the named-mode / mode-group system (spec
// §4.8): modes are feature toggles, optionally organized into groups
// where at most one member may be enabled per scope instance.
package modes

import "fmt"

// Scope distinguishes global modes (process-wide) from buffer-scoped ones.
type Scope int

// Recognized scopes.
const (
	ScopeGlobal Scope = iota
	ScopeBuffer
)

// Mode describes one named feature toggle.
type Mode struct {
	Name      string
	Group     string // empty if not grouped
	Scope     Scope
	Hidden    bool
	UserMode  bool // user-defined vs. built-in
}

// Group is a named set of mutually-exclusive mode names.
type Group struct {
	Name    string
	Members []string
}

// Table owns the process-wide mode and group catalog. Enabled state is
// not kept here: it lives in a Set per scope instance (one global Set,
// one per buffer), passed to Apply.
type Table struct {
	modes  map[string]*Mode
	groups map[string]*Group
}

// NewTable builds an empty mode/group table.
func NewTable() *Table {
	return &Table{modes: map[string]*Mode{}, groups: map[string]*Group{}}
}

// Define registers a mode. Returns an error if the name is already taken.
func (t *Table) Define(m Mode) error {
	if _, ok := t.modes[m.Name]; ok {
		return fmt.Errorf("mode %q already defined", m.Name)
	}
	mv := m
	t.modes[m.Name] = &mv
	if mv.Group != "" {
		g := t.groups[mv.Group]
		if g == nil {
			g = &Group{Name: mv.Group}
			t.groups[mv.Group] = g
		}
		g.Members = append(g.Members, mv.Name)
	}
	return nil
}

// Lookup finds a mode by name.
func (t *Table) Lookup(name string) (*Mode, bool) {
	m, ok := t.modes[name]
	return m, ok
}

// Names returns every defined mode name, for completion in the
// terminal input line (spec §4.7's "mode"/"global mode" kinds). Hidden
// modes are omitted, matching what a user would type at the prompt.
func (t *Table) Names() []string {
	var names []string
	for name, m := range t.modes {
		if !m.Hidden {
			names = append(names, name)
		}
	}
	return names
}

// Group returns the named group, if any.
func (t *Table) Group(name string) (*Group, bool) {
	g, ok := t.groups[name]
	return g, ok
}

// GroupOf returns the group a mode belongs to, if any.
func (t *Table) GroupOf(name string) (*Group, bool) {
	m, ok := t.modes[name]
	if !ok || m.Group == "" {
		return nil, false
	}
	return t.Group(m.Group)
}

// Action is one of the three mode-change verbs (spec §4.8).
type Action int

// Recognized actions.
const (
	Set Action = iota
	Clear
	Toggle
)

// Set enables, Clear disables, Toggle flips. With n>1, Apply itself
// clears every mode of the scope instance and then enables the named
// mode, whatever the action (spec §4.8).

// HookFunc is invoked whenever a mode changes, receiving the buffer name
// (or "" for a global-scope change) and the pre-change enabled set.
type HookFunc func(bufferName string, modesBefore map[string]bool)

// Set is a mutable per-scope-instance enabled set: global state lives in
// one Set on the Table's owner; each buffer owns its own Set for its
// buffer-scoped modes.
type Set struct {
	enabled map[string]bool
}

// NewSet creates an empty enabled-set.
func NewSet() *Set { return &Set{enabled: map[string]bool{}} }

// IsSet reports whether name is enabled in this set.
func (s *Set) IsSet(name string) bool { return s.enabled[name] }

// snapshot returns a copy of the current enabled map (for hook calls).
func (s *Set) snapshot() map[string]bool {
	cp := make(map[string]bool, len(s.enabled))
	for k, v := range s.enabled {
		cp[k] = v
	}
	return cp
}

// All returns the names currently enabled in this set.
func (s *Set) All() []string {
	out := make([]string, 0, len(s.enabled))
	for k, v := range s.enabled {
		if v {
			out = append(out, k)
		}
	}
	return out
}

// ClearAll disables every mode in the set.
func (s *Set) ClearAll() {
	for k := range s.enabled {
		delete(s.enabled, k)
	}
}

// Apply performs set/clear/toggle of name within this set, honoring
// group-exclusivity (enabling a grouped member disables every other
// enabled member of the same group in this scope instance). n is the
// numeric argument; per spec, n>1 means "clear all modes of this scope,
// then set". bufferName is "" for global-scope application. Returns
// false (no-op, no hook fired) when the requested state already holds,
// matching the idempotence property in spec §8.
func (t *Table) Apply(s *Set, name string, action Action, n int, bufferName string, hook HookFunc) (bool, error) {
	m, ok := t.modes[name]
	if !ok {
		return false, fmt.Errorf("undefined mode %q", name)
	}

	want := false
	switch action {
	case Set:
		want = true
	case Clear:
		want = false
	case Toggle:
		want = !s.IsSet(name)
	}

	if n > 1 {
		before := s.snapshot()
		s.ClearAll()
		s.enabled[name] = true
		if hook != nil {
			hook(bufferName, before)
		}
		return true, nil
	}

	if s.IsSet(name) == want {
		return false, nil
	}

	before := s.snapshot()
	if want && m.Group != "" {
		if g, ok := t.Group(m.Group); ok {
			for _, other := range g.Members {
				if other != name {
					delete(s.enabled, other)
				}
			}
		}
	}
	if want {
		s.enabled[name] = true
	} else {
		delete(s.enabled, name)
	}
	if hook != nil {
		hook(bufferName, before)
	}
	return true, nil
}

// ErrScopeMismatch is returned by ChangeScope when a grouped mode's
// members do not share a uniform scope.
var ErrScopeMismatch = fmt.Errorf("modes: group members must share a uniform scope")

// ChangeScope changes a mode's scope, refusing the change if the mode is
// a member of a group with other members (scope of group members must be
// uniform, per spec §4.8).
func (t *Table) ChangeScope(name string, newScope Scope) error {
	m, ok := t.modes[name]
	if !ok {
		return fmt.Errorf("undefined mode %q", name)
	}
	if m.Group != "" {
		if g, ok := t.Group(m.Group); ok && len(g.Members) > 1 {
			return ErrScopeMismatch
		}
	}
	m.Scope = newScope
	return nil
}
