package search

// matcher holds the state threaded through one regex match attempt:
// the text being scanned, folding/multiline options, and the capturing
// groups filled in as the backtracking walk succeeds.
type matcher struct {
	text      []byte
	fold      bool
	multiline bool
	groups    [10]Group
}

type seqNode struct{ items []node }

func (s *seqNode) match(m *matcher, pos int, cont func(int) bool) bool {
	return s.matchFrom(m, 0, pos, cont)
}

func (s *seqNode) matchFrom(m *matcher, idx, pos int, cont func(int) bool) bool {
	if idx == len(s.items) {
		return cont(pos)
	}
	return s.items[idx].match(m, pos, func(next int) bool {
		return s.matchFrom(m, idx+1, next, cont)
	})
}

type litNode struct{ b byte }

func (n *litNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos >= len(m.text) || !eqByte(m.text[pos], n.b, m.fold) {
		return false
	}
	return cont(pos + 1)
}

type anyNode struct{}

func (n *anyNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos >= len(m.text) {
		return false
	}
	return cont(pos + 1)
}

type classNode struct {
	set    [256]bool
	negate bool
}

func (n *classNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos >= len(m.text) {
		return false
	}
	in := n.set[m.text[pos]]
	if n.negate {
		in = !in
	}
	if !in {
		return false
	}
	return cont(pos + 1)
}

// bolNode is '^': matches at the start of text, or just after a '\n'
// when multiline mode is active.
type bolNode struct{}

func (n *bolNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos == 0 || (m.multiline && pos > 0 && m.text[pos-1] == '\n') {
		return cont(pos)
	}
	return false
}

// eolNode is '$': matches at the end of text, or just before a '\n'
// when multiline mode is active.
type eolNode struct{}

func (n *eolNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos == len(m.text) || (m.multiline && pos < len(m.text) && m.text[pos] == '\n') {
		return cont(pos)
	}
	return false
}

type textStartNode struct{}

func (n *textStartNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos == 0 {
		return cont(pos)
	}
	return false
}

type textEndNode struct{}

func (n *textEndNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos == len(m.text) {
		return cont(pos)
	}
	return false
}

// textEndNLNode is \Z: end of text, or immediately before a single
// trailing newline.
type textEndNLNode struct{}

func (n *textEndNLNode) match(m *matcher, pos int, cont func(int) bool) bool {
	if pos == len(m.text) {
		return cont(pos)
	}
	if pos == len(m.text)-1 && m.text[pos] == '\n' {
		return cont(pos)
	}
	return false
}

type boundaryNode struct{ negate bool }

func (n *boundaryNode) match(m *matcher, pos int, cont func(int) bool) bool {
	before := pos > 0 && isWordByte(m.text[pos-1])
	after := pos < len(m.text) && isWordByte(m.text[pos])
	b := before != after
	if n.negate {
		b = !b
	}
	if !b {
		return false
	}
	return cont(pos)
}

type groupNode struct {
	index int
	sub   node
}

func (g *groupNode) match(m *matcher, pos int, cont func(int) bool) bool {
	saved := m.groups[g.index]
	start := pos
	ok := g.sub.match(m, pos, func(end int) bool {
		m.groups[g.index] = Group{Start: start, End: end, Valid: true}
		return cont(end)
	})
	if !ok {
		m.groups[g.index] = saved
	}
	return ok
}

// repeatNode implements closures (spec §4.3): greedy quantifiers try
// the maximum count first and backtrack downward; lazy quantifiers try
// the minimum count first and expand on backtrack. A zero-width body
// match once min repetitions are satisfied stops the loop rather than
// spinning forever.
type repeatNode struct {
	sub      node
	min, max int // max == -1 means unbounded
	lazy     bool
}

func (n *repeatNode) match(m *matcher, pos int, cont func(int) bool) bool {
	return n.matchCount(m, 0, pos, cont)
}

func (n *repeatNode) matchCount(m *matcher, count, pos int, cont func(int) bool) bool {
	canStop := count >= n.min
	canMore := n.max < 0 || count < n.max

	tryMore := func() bool {
		if !canMore {
			return false
		}
		return n.sub.match(m, pos, func(next int) bool {
			if next == pos && count >= n.min {
				return false
			}
			return n.matchCount(m, count+1, next, cont)
		})
	}
	tryStop := func() bool {
		if !canStop {
			return false
		}
		return cont(pos)
	}

	if n.lazy {
		if tryStop() {
			return true
		}
		return tryMore()
	}
	if tryMore() {
		return true
	}
	return tryStop()
}

// regexSearchForward tries an anchored match at each position from from
// up to len(text), returning the first success (spec §4.3's forward
// driver: advance the scan position by one on failure).
func regexSearchForward(prog *regexProgram, text []byte, from int, opts Options) ([10]Group, bool) {
	m := &matcher{text: text, fold: opts.foldCase(), multiline: opts.Multiline}
	for pos := from; pos <= len(text); pos++ {
		m.groups = [10]Group{}
		end := -1
		ok := prog.root.match(m, pos, func(e int) bool {
			end = e
			return true
		})
		if ok {
			m.groups[0] = Group{Start: pos, End: end, Valid: true}
			return m.groups, true
		}
	}
	return [10]Group{}, false
}

// regexSearchBackward finds the rightmost anchored match whose start is
// at or before upto, scanning candidate start positions downward.
func regexSearchBackward(prog *regexProgram, text []byte, upto int, opts Options) ([10]Group, bool) {
	m := &matcher{text: text, fold: opts.foldCase(), multiline: opts.Multiline}
	if upto > len(text) {
		upto = len(text)
	}
	for pos := upto; pos >= 0; pos-- {
		m.groups = [10]Group{}
		end := -1
		ok := prog.root.match(m, pos, func(e int) bool {
			end = e
			return true
		})
		if ok {
			m.groups[0] = Group{Start: pos, End: end, Valid: true}
			return m.groups, true
		}
	}
	return [10]Group{}, false
}
