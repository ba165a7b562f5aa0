package buffer

// PointMove moves p by n characters (n may be negative), counting a
// newline crossed between lines as one character. It returns the
// resulting point and true, or the furthest point reached and false
// (NotFound) if the buffer boundary was hit before n characters were
// traversed.
func PointMove(p Point, n int) (Point, bool) {
	for n > 0 {
		if p.Offset < p.Line.Len() {
			p.Offset++
			n--
			continue
		}
		if p.Line.IsLast() {
			return p, false
		}
		p.Line = p.Line.next
		p.Offset = 0
		n--
	}
	for n < 0 {
		if p.Offset > 0 {
			p.Offset--
			n++
			continue
		}
		if p.Line.IsFirst() {
			return p, false
		}
		p.Line = p.Line.prev
		p.Offset = p.Line.Len()
		n++
	}
	return p, true
}

// LineMove moves p by n lines (n may be negative), preserving a target
// column across consecutive line moves. sameCommand must be true when the
// previous dispatched command was also a line move; otherwise the target
// column resets to p's current column. Returns the resulting point and
// true, or false (NotFound) if the buffer boundary was hit first.
func (b *Buffer) LineMove(p Point, n int, sameCommand bool) (Point, bool) {
	tw := b.TabWidth()
	termAttrs := b.Attr(AttrTermAttrs)

	if !sameCommand || !b.hasTargetCol {
		b.targetCol = VisualColumn(p.Line, p.Offset, tw, termAttrs)
		b.hasTargetCol = true
	}

	l := p.Line
	ok := true
	for i := 0; i < abs(n); i++ {
		if n > 0 {
			if l.IsLast() {
				ok = false
				break
			}
			l = l.next
		} else {
			if l.IsFirst() {
				ok = false
				break
			}
			l = l.prev
		}
	}

	off := OffsetForColumn(l, b.targetCol, tw, termAttrs)
	return Point{Line: l, Offset: off}, ok
}
