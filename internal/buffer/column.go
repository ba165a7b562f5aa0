package buffer

// DefaultTabWidth is used when a buffer has not been configured otherwise.
const DefaultTabWidth = 8

// Terminal-attribute escape bytes (spec §4.1, §12): when AttrTermAttrs is
// set on a buffer, a byte equal to AttrSpecBegin begins an invisible run
// that ends with (and includes) the next AttrSpecEnd byte; neither the
// run nor its bytes contribute to the visible column.
const (
	AttrSpecBegin byte = 0x01
	AttrSpecEnd   byte = 0x02
)

// TabWidth returns the buffer's configured tab stop width.
func (b *Buffer) TabWidth() int {
	if b.tabWidth <= 0 {
		return DefaultTabWidth
	}
	return b.tabWidth
}

// SetTabWidth configures the tab stop width used by column arithmetic.
func (b *Buffer) SetTabWidth(n int) { b.tabWidth = n }

// VisualColumn computes the screen column of byte offset off on line l,
// per spec §4.1: tab advances to the next multiple of tab width; control
// bytes (<0x20 or ==0x7F) render as two columns (e.g. "^A"); bytes >=0x80
// render as four columns (a "<XX>" hex escape); when termAttrs is true an
// AttrSpecBegin byte consumes an invisible run through the next
// AttrSpecEnd (or end of line) without advancing the column.
func VisualColumn(l *Line, off int, tabWidth int, termAttrs bool) int {
	col := 0
	text := l.text
	if off > len(text) {
		off = len(text)
	}
	for i := 0; i < off; i++ {
		c := text[i]
		if termAttrs && c == AttrSpecBegin {
			for i < len(text) && text[i] != AttrSpecEnd {
				i++
			}
			continue
		}
		col += columnWidth(c, col, tabWidth)
	}
	return col
}

// columnWidth returns how many screen columns byte c occupies when
// rendered starting at the given current column.
func columnWidth(c byte, col, tabWidth int) int {
	switch {
	case c == '\t':
		return tabWidth - (col % tabWidth)
	case c < 0x20 || c == 0x7F:
		return 2
	case c >= 0x80:
		return 4
	default:
		return 1
	}
}

// OffsetForColumn returns the largest byte offset on l whose visual
// column does not exceed target, per the §4.1 lineMove landing rule.
func OffsetForColumn(l *Line, target int, tabWidth int, termAttrs bool) int {
	col := 0
	text := l.text
	for i := 0; i < len(text); i++ {
		c := text[i]
		if termAttrs && c == AttrSpecBegin {
			for i < len(text) && text[i] != AttrSpecEnd {
				i++
			}
			continue
		}
		w := columnWidth(c, col, tabWidth)
		if col+w > target {
			return i
		}
		col += w
	}
	return len(text)
}
