package buffer

// Region is (point, size, lineCount): size may be negative, meaning the
// region extends backward from point. Always canonicalizable to a
// (start, length) pair via Canon.
type Region struct {
	Point     Point
	Size      int // signed byte count; negative = region extends before Point
	LineCount int
}

// Canon normalizes the region to its start point and non-negative byte
// length, regardless of the original direction.
func (r Region) Canon() (start Point, length int) {
	if r.Size >= 0 {
		return r.Point, r.Size
	}
	start = Advance(r.Point, r.Size)
	return start, -r.Size
}

// bytesBetween counts the bytes spanned walking forward from a to b
// (inclusive of newlines between lines), assuming a precedes or equals b.
func bytesBetween(a, b Point) int {
	if a.Line == b.Line {
		return b.Offset - a.Offset
	}
	n := a.Line.Len() - a.Offset + 1 // rest of a's line plus its newline
	for l := a.Line.next; l != b.Line; l = l.next {
		n += l.Len() + 1
	}
	n += b.Offset
	return n
}

// Advance walks n bytes from p (n may be negative) and returns the
// resulting point, clamped to buffer bounds.
func Advance(p Point, n int) Point {
	for n > 0 {
		remaining := p.Line.Len() - p.Offset
		if n <= remaining {
			p.Offset += n
			return p
		}
		n -= remaining + 1
		if p.Line.IsLast() {
			p.Offset = p.Line.Len()
			return p
		}
		p.Line = p.Line.next
		p.Offset = 0
	}
	for n < 0 {
		if -n <= p.Offset {
			p.Offset += n
			return p
		}
		n += p.Offset + 1
		if p.Line.IsFirst() {
			p.Offset = 0
			return p
		}
		p.Line = p.Line.prev
		p.Offset = p.Line.Len()
	}
	return p
}

// RegionBetween builds a canonical region spanning the two points,
// regardless of their relative order.
func RegionBetween(p1, p2 Point) Region {
	if Compare(p1, p2) <= 0 {
		return Region{Point: p1, Size: bytesBetween(p1, p2), LineCount: lineCountBetween(p1, p2)}
	}
	return Region{Point: p2, Size: bytesBetween(p2, p1), LineCount: lineCountBetween(p2, p1)}
}

// RegionLines builds a region spanning n lines forward (n>0) or backward
// (n<0) from p, anchored at p with a signed Size.
func RegionLines(p Point, n int) Region {
	if n == 0 {
		return Region{Point: p, Size: 0}
	}
	target := p
	for i := 0; i < abs(n); i++ {
		if n > 0 {
			if target.Line.IsLast() {
				target.Offset = target.Line.Len()
				break
			}
			target.Line = target.Line.next
			target.Offset = 0
		} else {
			if target.Line.IsFirst() {
				target.Offset = 0
				break
			}
			target.Line = target.Line.prev
			target.Offset = 0
		}
	}
	if n > 0 {
		size := bytesBetween(p, target)
		return Region{Point: p, Size: size, LineCount: lineCountBetween(p, target)}
	}
	size := bytesBetween(target, p)
	return Region{Point: p, Size: -size, LineCount: lineCountBetween(target, p)}
}

func lineCountBetween(a, b Point) int {
	n := 0
	for l := a.Line; l != b.Line; l = l.next {
		n++
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
