// Package search implements the plain Boyer–Moore scanner and the
// backtracking regex engine (spec §4.3), wrapped in a Match object that
// also drives the query-replace engine (spec §4.4).
package search

import (
	"fmt"
	"strings"
)

// Options holds the parsed pattern flags (spec §4.3, §6 pattern suffix
// grammar): ignoreCase, exactCase, regex, plain, multiline.
type Options struct {
	IgnoreCase bool
	ExactCase  bool
	Regex      bool
	Plain      bool
	Multiline  bool
}

// ParsePattern splits an optional trailing ":flags" suffix off pattern,
// per spec §6: flags are one or more of [iermp], each appearing at most
// once, the colon must not be the first character, and the flag run
// must be letters only. A malformed or conflicting suffix leaves the
// pattern untouched (the trailing ":..." is treated as literal text).
func ParsePattern(pattern string, base Options) (string, Options, error) {
	idx := strings.LastIndexByte(pattern, ':')
	if idx <= 0 || idx == len(pattern)-1 {
		return pattern, base, nil
	}
	flagRun := pattern[idx+1:]
	opts := base
	seen := map[byte]bool{}
	for i := 0; i < len(flagRun); i++ {
		c := flagRun[i]
		if seen[c] {
			return pattern, base, nil // duplicate flag: leave pattern intact
		}
		seen[c] = true
		switch c {
		case 'i':
			opts.IgnoreCase = true
		case 'e':
			opts.ExactCase = true
		case 'r':
			opts.Regex = true
		case 'p':
			opts.Plain = true
		case 'm':
			opts.Multiline = true
		default:
			return pattern, base, nil // non-letter or unknown flag char
		}
	}
	if opts.ExactCase && opts.IgnoreCase {
		return pattern, base, nil
	}
	if opts.Regex && opts.Plain {
		return pattern, base, nil
	}
	return pattern[:idx], opts, nil
}

// Validate reports a conflicting-options error, used when options are
// constructed directly (not via ParsePattern, which silently ignores
// conflicts in the suffix instead).
func (o Options) Validate() error {
	if o.ExactCase && o.IgnoreCase {
		return fmt.Errorf("search: exact and ignore-case options conflict")
	}
	if o.Regex && o.Plain {
		return fmt.Errorf("search: regex and plain options conflict")
	}
	return nil
}

// foldCase reports whether matching should ignore case under o.
func (o Options) foldCase() bool { return o.IgnoreCase && !o.ExactCase }
