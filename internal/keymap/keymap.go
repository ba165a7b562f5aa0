package keymap

import "fmt"

// Target is what a resolved key is bound to: a built-in command name, a
// macro name, or the pseudo-action "self-insert" (spec §4.2 step 6:
// "dispatch to bound command, self-insert, or beep").
type Target struct {
	Name string
}

// Keymap is a flat KeyCode -> Target mapping (spec §3: "Keymap is a
// flat mapping from KeyCode to bound target"). Two-key chords ("C-x
// C-s") are not stored as pairs: by the time a chord reaches the
// keymap it has already collapsed into one merged KeyCode (see
// Assembler/Chord), so Keymap itself needs no notion of sequences at
// all — unlike the teacher's KeyBindingProfile, which nests bindings
// under UI Context (global/input/results/search, ggc's fuzzy-finder
// states with no editor-modal analogue) instead of collapsing prefixes
// into the key itself.
type Keymap struct {
	Name   string
	Prefix *PrefixTable
	binds  map[KeyCode]Target
}

// New creates an empty, named keymap using DefaultPrefixTable.
func New(name string) *Keymap {
	return &Keymap{Name: name, Prefix: DefaultPrefixTable(), binds: map[KeyCode]Target{}}
}

// Bind binds the resolved code to target, overwriting any existing
// binding.
func (km *Keymap) Bind(code KeyCode, target string) {
	if km.binds == nil {
		km.binds = map[KeyCode]Target{}
	}
	km.binds[code] = Target{Name: target}
}

// BindSpec parses spec ("C-f" or "C-x C-s") against km.Prefix and
// binds it to target.
func (km *Keymap) BindSpec(spec, target string) error {
	code, err := ParseSequence(spec, km.Prefix)
	if err != nil {
		return err
	}
	km.Bind(code, target)
	return nil
}

// Unbind removes any binding for code.
func (km *Keymap) Unbind(code KeyCode) {
	delete(km.binds, code)
}

// Lookup returns the target bound to the resolved code, if any.
func (km *Keymap) Lookup(code KeyCode) (Target, bool) {
	t, ok := km.binds[code]
	return t, ok
}

// Clone deep-copies km (and its prefix table) under a new name.
func (km *Keymap) Clone(name string) *Keymap {
	out := New(name)
	out.Prefix = &PrefixTable{roles: map[KeyCode]KeyCode{}}
	for k, v := range km.Prefix.roles {
		out.Prefix.roles[k] = v
	}
	for k, v := range km.binds {
		out.binds[k] = v
	}
	return out
}

// Merge overlays other's bindings (and prefix roles) onto km (other
// wins on conflict), used to layer a user keymap over a built-in base.
func (km *Keymap) Merge(other *Keymap) {
	if km.binds == nil {
		km.binds = map[KeyCode]Target{}
	}
	for k, v := range other.binds {
		km.binds[k] = v
	}
	for k, v := range other.Prefix.roles {
		km.Prefix.Bind(k, v)
	}
}

// Bindings returns every (code, target name) pair, for help listings
// (spec §4.7's "show-bindings"-style introspection).
func (km *Keymap) Bindings() map[KeyCode]string {
	out := make(map[KeyCode]string, len(km.binds))
	for k, v := range km.binds {
		out[k] = v.Name
	}
	return out
}

// MustBindSpec is BindSpec that panics on a malformed built-in spec;
// used only while constructing the fixed default profile below, where
// a bad literal is a programming error, not user input.
func (km *Keymap) MustBindSpec(spec, target string) {
	if err := km.BindSpec(spec, target); err != nil {
		panic(fmt.Sprintf("keymap: bad built-in binding %q: %v", spec, err))
	}
}
