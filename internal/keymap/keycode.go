// Package keymap implements the KeyCode model and keymap lookup of spec
// §3/§4.2: a 16-bit key code (low byte = character, high byte = flag
// bits), assembled into a one- or two-code sequence via a prefix table,
// and a flat KeyCode-sequence -> bound-name map. Grounded on the
// teacher's internal/keybindings package (KeyStroke parsing formats,
// KeyBindingProfile's global/context layering) generalized from ggc's
// fuzzy-finder UI contexts to the editor's modal dispatch needs.
package keymap

import "fmt"

// KeyCode is a 16-bit key code: low byte is the character (7-bit ASCII,
// or an F-key index when FKey is set), high byte is a bitset of flags
// (spec §3).
type KeyCode uint16

// Flag bits occupying KeyCode's high byte.
const (
	Ctrl  KeyCode = 0x0100
	Meta  KeyCode = 0x0200
	Shift KeyCode = 0x0400
	FKey  KeyCode = 0x0800
	Pref1 KeyCode = 0x1000
	Pref2 KeyCode = 0x2000
	Pref3 KeyCode = 0x4000
)

const charMask KeyCode = 0x00FF
const flagMask KeyCode = 0xFF00

// prefixFlags is every flag that can mark a KeyCode as a prefix key
// (spec §4.2: "first code, if a prefix, merges into the second via one
// of {Pref1, Pref2, Pref3, Meta}").
var prefixFlags = []KeyCode{Pref1, Pref2, Pref3, Meta}

// Char returns the low-byte character of kc.
func (kc KeyCode) Char() byte { return byte(kc & charMask) }

// Flags returns the high-byte flag bits of kc.
func (kc KeyCode) Flags() KeyCode { return kc & flagMask }

// Has reports whether kc carries every bit set in flag.
func (kc KeyCode) Has(flag KeyCode) bool { return kc&flag == flag }

// IsPrefix reports whether kc is usable as the first code of a
// two-code sequence (spec §4.2).
func (kc KeyCode) IsPrefix() bool {
	for _, f := range prefixFlags {
		if kc.Has(f) {
			return true
		}
	}
	return false
}

// CtrlKey builds the canonical KeyCode for Ctrl+c. Per spec §3, Ctrl
// canonicalizes a letter to uppercase before tagging it — "ctrl+a" and
// "ctrl+A" are the same KeyCode.
func CtrlKey(c byte) KeyCode {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return Ctrl | KeyCode(c)
}

// MetaKey builds the KeyCode for Meta/Alt+c.
func MetaKey(c byte) KeyCode {
	return Meta | KeyCode(c)
}

// PlainKey builds the KeyCode for an unmodified character.
func PlainKey(c byte) KeyCode {
	return KeyCode(c)
}

// FKeyCode builds the KeyCode for function key index n (F1 = 1, ...).
func FKeyCode(n byte) KeyCode {
	return FKey | KeyCode(n)
}

// String renders kc in the editor's own notation (e.g. "C-X", "M-w",
// "C-x C-S", "F5"), used for help listings and error messages. A
// Pref1/Pref2/Pref3 flag renders as its conventional leader-key label,
// since the merged code no longer carries the original prefix key's
// own identity (spec §4.2 step 3 merges it away).
func (kc KeyCode) String() string {
	var mods string
	if kc.Has(Pref1) {
		mods += "C-x "
	}
	if kc.Has(Pref2) {
		mods += "<prefix2> "
	}
	if kc.Has(Pref3) {
		mods += "<prefix3> "
	}
	if kc.Has(Ctrl) {
		mods += "C-"
	}
	if kc.Has(Meta) {
		mods += "M-"
	}
	if kc.Has(Shift) {
		mods += "S-"
	}
	if kc.Has(FKey) {
		return fmt.Sprintf("%sF%d", mods, kc.Char())
	}
	c := kc.Char()
	switch c {
	case 0:
		return mods + "<nul>"
	case 9:
		return mods + "<tab>"
	case 13:
		return mods + "<ret>"
	case 27:
		return mods + "<esc>"
	case 32:
		return mods + "<space>"
	case 127:
		return mods + "<del>"
	}
	return fmt.Sprintf("%s%c", mods, c)
}
