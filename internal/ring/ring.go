// Package ring implements the bounded circular string rings (spec §3, §4.9):
// kill, delete, search-pattern, and replace-pattern history.
package ring

// Ring is a bounded-capacity circular sequence with a "current" cursor
// that cycles through past entries (used for up/down ring navigation in
// the terminal input line, spec §4.7).
type Ring struct {
	entries  []string
	cap      int
	cursor   int // index into entries for ring-browsing; -1 when unset
	coalesce bool
}

// New creates a ring with the given bounded capacity.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{cap: capacity, cursor: -1}
}

// Push adds a new entry, dropping the oldest on overflow, and resets the
// browsing cursor to point at the newest entry.
func (r *Ring) Push(s string) {
	r.entries = append(r.entries, s)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
	r.cursor = len(r.entries) - 1
}

// CoalesceTop appends s to the most recent entry instead of pushing a new
// one; used when adjacent kill commands should merge into one entry
// (spec §4.9's "adjacent kill commands coalesce").
func (r *Ring) CoalesceTop(s string, prepend bool) {
	if len(r.entries) == 0 {
		r.Push(s)
		return
	}
	top := len(r.entries) - 1
	if prepend {
		r.entries[top] = s + r.entries[top]
	} else {
		r.entries[top] = r.entries[top] + s
	}
	r.cursor = top
}

// Current returns the entry the browsing cursor points at, if any.
func (r *Ring) Current() (string, bool) {
	if r.cursor < 0 || r.cursor >= len(r.entries) {
		return "", false
	}
	return r.entries[r.cursor], true
}

// Prev moves the cursor to the previous (older) entry and returns it.
func (r *Ring) Prev() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	if r.cursor <= 0 {
		r.cursor = len(r.entries) - 1
	} else {
		r.cursor--
	}
	return r.Current()
}

// Next moves the cursor to the next (newer) entry and returns it.
func (r *Ring) Next() (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	if r.cursor >= len(r.entries)-1 {
		r.cursor = 0
	} else {
		r.cursor++
	}
	return r.Current()
}

// Len reports the number of entries currently stored.
func (r *Ring) Len() int { return len(r.entries) }

// All returns the ring's entries oldest-first, for pop-up display.
func (r *Ring) All() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}
