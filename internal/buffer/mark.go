package buffer

// Mark is a named, persistent point plus a preferred on-screen row used
// to preserve visual framing when returning to an off-screen mark.
type Mark struct {
	Point      Point
	ReframeRow int
}

// MarkSet records (or overwrites) the mark named id at p.
func (b *Buffer) MarkSet(id byte, p Point, reframeRow int) {
	b.marks[id] = &Mark{Point: p, ReframeRow: reframeRow}
}

// MarkGoto returns the point recorded under id, or NotFound (ok=false) if
// no such mark exists.
func (b *Buffer) MarkGoto(id byte) (Point, int, bool) {
	m, ok := b.marks[id]
	if !ok {
		return Point{}, 0, false
	}
	return m.Point, m.ReframeRow, true
}

// MarkDelete removes the named mark. Returns false (NotFound) if absent.
func (b *Buffer) MarkDelete(id byte) bool {
	if _, ok := b.marks[id]; !ok {
		return false
	}
	delete(b.marks, id)
	return true
}

// MarkNames returns the set of currently-defined mark identifiers.
func (b *Buffer) MarkNames() []byte {
	out := make([]byte, 0, len(b.marks))
	for id := range b.marks {
		out = append(out, id)
	}
	return out
}
