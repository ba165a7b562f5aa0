package buffer

// InsertString inserts s at p, splitting lines on embedded newlines, and
// returns the point immediately after the inserted text. The header-line
// sentinel is always preserved: inserting never removes the last line.
func (b *Buffer) InsertString(p Point, s []byte) (Point, error) {
	if err := b.guardMutable(); err != nil {
		return p, err
	}
	b.markChanged()
	for _, c := range s {
		p = insertByte(p, c)
	}
	return p, nil
}

// InsertChar inserts a single byte at p.
func (b *Buffer) InsertChar(p Point, c byte) (Point, error) {
	if err := b.guardMutable(); err != nil {
		return p, err
	}
	b.markChanged()
	return insertByte(p, c), nil
}

// insertByte performs one byte's worth of insertion, splitting the line
// on '\n'. Returns the point after the inserted byte.
func insertByte(p Point, c byte) Point {
	if c != '\n' {
		l := p.Line
		l.text = append(l.text[:p.Offset], append([]byte{c}, l.text[p.Offset:]...)...)
		return Point{Line: l, Offset: p.Offset + 1}
	}
	l := p.Line
	tail := append([]byte(nil), l.text[p.Offset:]...)
	l.text = l.text[:p.Offset]
	newLine := insertLineAfter(l, tail)
	return Point{Line: newLine, Offset: 0}
}

// DeleteForward deletes up to n characters starting at p, merging lines
// across newlines. Returns the number of characters actually deleted,
// which is less than n only when the buffer's end is reached; that case
// is reported as NotFound rather than a partial-success error — callers
// compare the returned count against n to detect it.
func (b *Buffer) DeleteForward(p Point, n int) (int, error) {
	if err := b.guardMutable(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	b.markChanged()
	deleted := 0
	for deleted < n {
		l := p.Line
		if p.Offset < l.Len() {
			l.text = append(l.text[:p.Offset], l.text[p.Offset+1:]...)
			deleted++
			continue
		}
		if l.IsLast() {
			break
		}
		mergeWithNext(l)
		deleted++
	}
	return deleted, nil
}

// DeleteBackward deletes up to n characters ending at p (i.e. immediately
// before p), moving p backward as it goes. Returns the number deleted.
func (b *Buffer) DeleteBackward(p Point, n int) (int, error) {
	if err := b.guardMutable(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	b.markChanged()
	deleted := 0
	for deleted < n {
		if p.Offset > 0 {
			l := p.Line
			l.text = append(l.text[:p.Offset-1], l.text[p.Offset:]...)
			p.Offset--
			deleted++
			continue
		}
		if p.Line.IsFirst() {
			break
		}
		prev := p.Line.prev
		prevLen := prev.Len()
		mergeWithNext(prev)
		p = Point{Line: prev, Offset: prevLen}
		deleted++
	}
	return deleted, nil
}

// mergeWithNext appends l.next's text onto l and unlinks l.next, folding
// the newline between them into a single joined line.
func mergeWithNext(l *Line) {
	next := l.next
	l.text = append(l.text, next.text...)
	unlink(next)
}

// DeletedText extracts the bytes of the region [p, p+n) without mutating
// the buffer, for callers that need to push deleted text onto a ring
// before calling DeleteForward/DeleteBackward.
func (b *Buffer) DeletedText(p Point, n int) []byte {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		c, ok := CharAt(p)
		if !ok {
			break
		}
		out = append(out, c)
		p = Advance(p, 1)
	}
	return out
}

// RegionText extracts the canonical text of a region.
func (b *Buffer) RegionText(r Region) []byte {
	start, length := r.Canon()
	return b.DeletedText(start, length)
}

// Bytes returns the whole buffer contents as a flat byte slice, with a
// '\n' joining each line to the next. Search and replace operate on this
// flat view and map matched byte offsets back to Points via Advance.
func (b *Buffer) Bytes() []byte {
	var out []byte
	for l := b.header.next; !l.IsHeader(); l = l.next {
		out = append(out, l.text...)
		if !l.IsLast() {
			out = append(out, '\n')
		}
	}
	return out
}

// Offset returns the absolute byte offset of p from the start of the
// buffer, the inverse of Advance(b.FirstPoint(), n).
func (b *Buffer) Offset(p Point) int {
	return bytesBetween(b.FirstPoint(), p)
}
