package keymap

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseKeyCode parses a single editor-notation token into a KeyCode.
// Grounded on internal/keybindings.ParseKeyStroke's format set (ctrl+x,
// ^x, c-x, alt+x, m-x, Fn) generalized to produce a KeyCode rather than
// a KeyStroke struct.
func ParseKeyCode(tok string) (KeyCode, error) { //nolint:revive // mirrors the teacher's multi-format parser
	s := strings.TrimSpace(tok)
	if s == "" {
		return 0, fmt.Errorf("keymap: empty key token")
	}
	low := strings.ToLower(s)

	switch low {
	case "ret", "enter", "return":
		return PlainKey(13), nil
	case "tab":
		return PlainKey(9), nil
	case "esc", "escape":
		return PlainKey(27), nil
	case "space", "spc":
		return PlainKey(' '), nil
	case "del", "delete", "backspace":
		return PlainKey(127), nil
	}

	if len(low) >= 2 && low[0] == 'f' {
		if n, err := strconv.Atoi(low[1:]); err == nil && n > 0 && n <= 63 {
			return FKeyCode(byte(n)), nil
		}
	}

	if strings.HasPrefix(s, "^") && len(s) == 2 {
		return ctrlRune(rune(s[1]))
	}

	if (strings.HasPrefix(low, "c-") || strings.HasPrefix(low, "ctrl+")) && len(s) > 0 {
		rest := stripMod(s, "c-", "ctrl+")
		return ctrlToken(rest)
	}

	if (strings.HasPrefix(low, "m-") || strings.HasPrefix(low, "meta+") || strings.HasPrefix(low, "alt+")) {
		rest := stripMod(s, "m-", "meta+", "alt+")
		base, err := ParseKeyCode(rest)
		if err != nil {
			return 0, err
		}
		return base | Meta, nil
	}

	if len(s) == 1 {
		return PlainKey(s[0]), nil
	}

	return 0, fmt.Errorf("keymap: unrecognized key token %q", tok)
}

func stripMod(s string, prefixes ...string) string {
	low := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(low, p) {
			return s[len(p):]
		}
	}
	return s
}

func ctrlToken(rest string) (KeyCode, error) {
	if len(rest) == 1 {
		return ctrlRune(rune(rest[0]))
	}
	base, err := ParseKeyCode(rest)
	if err != nil {
		return 0, err
	}
	return base | Ctrl, nil
}

func ctrlRune(r rune) (KeyCode, error) {
	c := byte(r)
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < '@' || c > '_' {
		return 0, fmt.Errorf("keymap: unsupported ctrl key %q", string(r))
	}
	return CtrlKey(c), nil
}

// ParseSequence parses a whitespace-separated sequence of at most two
// key tokens (e.g. "C-x C-s") against pt into the single merged
// KeyCode a Keymap binds/looks up (spec §4.2 step 3). pt defaults to
// DefaultPrefixTable when nil.
func ParseSequence(spec string, pt *PrefixTable) (KeyCode, error) {
	if pt == nil {
		pt = DefaultPrefixTable()
	}
	fields := strings.Fields(spec)
	switch len(fields) {
	case 1:
		return ParseKeyCode(fields[0])
	case 2:
		first, err := ParseKeyCode(fields[0])
		if err != nil {
			return 0, err
		}
		second, err := ParseKeyCode(fields[1])
		if err != nil {
			return 0, err
		}
		merged, ok := Chord(first, second, pt)
		if !ok {
			return 0, fmt.Errorf("keymap: %q is not a registered prefix key", fields[0])
		}
		return merged, nil
	default:
		return 0, fmt.Errorf("keymap: %q is not a 1- or 2-key sequence", spec)
	}
}
