// Package replace implements the replacement-pattern compiler and the
// interactive query-replace state machine (spec §4.4).
package replace

import "fmt"

// partKind distinguishes a literal run from a group back-reference in a
// compiled replacement pattern.
type partKind int

const (
	partLiteral partKind = iota
	partGroup
)

type part struct {
	kind  partKind
	lit   []byte
	group int // 0-9, valid when kind == partGroup
}

// Pattern is a replacement string compiled once into a linked list of
// literal and group-reference parts (spec §4.4). A pattern with no
// back-references is a single literal part, letting Apply skip group
// substitution entirely.
type Pattern struct {
	parts      []part
	hasBackref bool
}

// Compile parses a replacement string: \0-\9 are group back-references,
// \c decodes c as a standard escape (n, t, r, e, s, f), any other \x is
// the literal byte x.
func Compile(s string) (*Pattern, error) {
	p := &Pattern{}
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			p.parts = append(p.parts, part{kind: partLiteral, lit: lit})
			lit = nil
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			lit = append(lit, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, fmt.Errorf("replace: trailing backslash in replacement pattern")
		}
		e := s[i]
		switch {
		case e >= '0' && e <= '9':
			flush()
			p.parts = append(p.parts, part{kind: partGroup, group: int(e - '0')})
			p.hasBackref = true
		case e == 'n':
			lit = append(lit, '\n')
		case e == 't':
			lit = append(lit, '\t')
		case e == 'r':
			lit = append(lit, '\r')
		case e == 'e':
			lit = append(lit, 0x1b)
		case e == 's':
			lit = append(lit, ' ')
		case e == 'f':
			lit = append(lit, '\f')
		default:
			lit = append(lit, e)
		}
	}
	flush()
	return p, nil
}

// Apply substitutes back-references against text using groups captured
// by a search.Match, returning the replacement bytes for one match.
func (p *Pattern) Apply(text []byte, groupText func(i int) ([]byte, bool)) []byte {
	if !p.hasBackref && len(p.parts) <= 1 {
		if len(p.parts) == 0 {
			return nil
		}
		return append([]byte(nil), p.parts[0].lit...)
	}
	var out []byte
	for _, pt := range p.parts {
		switch pt.kind {
		case partLiteral:
			out = append(out, pt.lit...)
		case partGroup:
			if g, ok := groupText(pt.group); ok {
				out = append(out, g...)
			}
		}
	}
	return out
}
