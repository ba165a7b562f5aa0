package keymap

// PrefixTable maps a raw KeyCode to the prefix-role flag it plays
// (spec §4.2 step 3: "a prefix key mapped to one of metaPrefix,
// prefix1, prefix2, prefix3"). A prefix key's own identity is
// discarded once read — only its role flag survives, merged into
// whatever code follows — so distinct prefix keys sharing a role are
// indistinguishable to the keymap (not a concern: a keymap normally
// assigns at most one raw key per role).
type PrefixTable struct {
	roles map[KeyCode]KeyCode
}

// NewPrefixTable builds an empty table.
func NewPrefixTable() *PrefixTable {
	return &PrefixTable{roles: map[KeyCode]KeyCode{}}
}

// DefaultPrefixTable binds Ctrl-X to Pref1, the editor's single
// general-purpose command-prefix key (spec-native choice — the
// original MightEMacs's own default prefix2/prefix3 bindings were not
// present in the retrieved source, so only the one prefix role the
// default keymap's "C-x ..." chords actually need is pre-registered).
func DefaultPrefixTable() *PrefixTable {
	pt := NewPrefixTable()
	pt.Bind(CtrlKey('X'), Pref1)
	return pt
}

// Bind registers raw as playing role (one of Pref1, Pref2, Pref3,
// Meta) when read as a sequence's first code.
func (pt *PrefixTable) Bind(raw, role KeyCode) {
	if pt.roles == nil {
		pt.roles = map[KeyCode]KeyCode{}
	}
	pt.roles[raw] = role
}

// RoleOf reports the prefix-role flag raw is bound to, if any.
func (pt *PrefixTable) RoleOf(raw KeyCode) (KeyCode, bool) {
	role, ok := pt.roles[raw]
	return role, ok
}

// Assembler implements spec §4.2 step 3: a sequence is at most two
// raw reads, collapsing to a single resolved KeyCode — when the first
// read is a registered prefix key, its role flag is merged into the
// second read; otherwise the first read is itself the resolved code.
type Assembler struct {
	pendingRole KeyCode
	have        bool
}

// Feed presents the next raw code read from the terminal against pt.
// ok is false only while still waiting on a prefix key's second code.
func (a *Assembler) Feed(raw KeyCode, pt *PrefixTable) (KeyCode, bool) {
	if a.have {
		role := a.pendingRole
		a.have = false
		a.pendingRole = 0
		return raw | role, true
	}
	if pt != nil {
		if role, ok := pt.RoleOf(raw); ok {
			a.pendingRole = role
			a.have = true
			return 0, false
		}
	}
	return raw, true
}

// Reset discards any pending prefix role (e.g. on UserAbort).
func (a *Assembler) Reset() {
	a.have = false
	a.pendingRole = 0
}

// Pending reports whether a prefix role is awaiting its second code.
func (a *Assembler) Pending() bool { return a.have }

// Chord resolves a two-token spec ("C-x", "C-s") against pt into the
// single merged KeyCode a Keymap binds/looks up, the offline
// equivalent of feeding both tokens through an Assembler.
func Chord(first, second KeyCode, pt *PrefixTable) (KeyCode, bool) {
	role, ok := pt.RoleOf(first)
	if !ok {
		return 0, false
	}
	return second | role, true
}
