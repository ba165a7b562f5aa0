package search

import "fmt"

// Group records one capturing group's span in the most recent match.
// Group 0 is always the whole match. Offsets are relative to the flat
// byte slice the match was performed against (spec §4.3).
type Group struct {
	Start, End int
	Valid      bool
}

// Match is a compiled pattern plus the state of its most recent scan
// (spec §3's Match object, driving both search and query-replace).
type Match struct {
	Pattern     string
	Replacement string
	Options     Options

	plain []byte        // non-nil when Options.Regex is false
	prog  *regexProgram // non-nil when Options.Regex is true

	Groups          [10]Group
	LastMatchString string
}

// Compile parses pattern's trailing ":flags" suffix against base options
// (spec §6), then builds the plain-text or regex matcher it names.
func Compile(pattern string, base Options, replacement string) (*Match, error) {
	text, opts, err := ParsePattern(pattern, base)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := &Match{Pattern: text, Replacement: replacement, Options: opts}
	if opts.Regex && !opts.Plain {
		prog, err := compileRegex(text, opts)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		m.prog = prog
	} else {
		m.plain = []byte(text)
	}
	return m, nil
}

// IsRegex reports whether m matches via the backtracking regex engine
// rather than the plain Boyer-Moore scanner.
func (m *Match) IsRegex() bool { return m.prog != nil }

// FindForward locates the first match in text at or after from, filling
// m.Groups and m.LastMatchString on success.
func (m *Match) FindForward(text []byte, from int) bool {
	if m.prog != nil {
		groups, ok := regexSearchForward(m.prog, text, from, m.Options)
		if !ok {
			return false
		}
		m.Groups = groups
		m.LastMatchString = string(text[groups[0].Start:groups[0].End])
		return true
	}
	start, ok := bmForward(text, m.plain, from, m.Options.foldCase())
	if !ok {
		return false
	}
	end := start + len(m.plain)
	m.Groups = [10]Group{}
	m.Groups[0] = Group{Start: start, End: end, Valid: true}
	m.LastMatchString = string(text[start:end])
	return true
}

// FindBackward locates the nearest match whose start is at or before
// upto, scanning backward from there.
func (m *Match) FindBackward(text []byte, upto int) bool {
	if m.prog != nil {
		groups, ok := regexSearchBackward(m.prog, text, upto, m.Options)
		if !ok {
			return false
		}
		m.Groups = groups
		m.LastMatchString = string(text[groups[0].Start:groups[0].End])
		return true
	}
	start, ok := bmBackward(text, m.plain, upto, m.Options.foldCase())
	if !ok {
		return false
	}
	end := start + len(m.plain)
	m.Groups = [10]Group{}
	m.Groups[0] = Group{Start: start, End: end, Valid: true}
	m.LastMatchString = string(text[start:end])
	return true
}
