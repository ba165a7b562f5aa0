package eval

import "fmt"

// Node is one parsed expression or statement; Eval walks the tree
// directly against an Evaluator (spec §9: the parser's pull-based
// lexer feeds a tree-walking interpreter rather than a separate
// bytecode stage).
type Node interface {
	Eval(ev *Evaluator) (Datum, error)
}

// Lvalue is a Node that can also be assigned to: system variables,
// global/local user variables, macro arguments ($N), and array
// elements (spec §4.5).
type Lvalue interface {
	Node
	Assign(ev *Evaluator, v Datum) error
}

// --- control-flow signals -------------------------------------------------

// breakSignal/nextSignal/returnSignal are sentinel errors used to
// unwind structured control flow (spec §4.5: "control structures are
// structured, not jumps" — internally this project still needs *some*
// unwinding mechanism to cross Go's call stack, so these Error values
// play that role without introducing goto/labels).
type breakSignal struct{ n int }
type nextSignal struct{ n int }
type returnSignal struct{ val Datum }

func (breakSignal) Error() string  { return "break" }
func (nextSignal) Error() string   { return "next" }
func (returnSignal) Error() string { return "return" }

// AsReturn reports whether err is a `return` signal escaping a top-level
// block, yielding its value. Callers that run a macro/script body
// directly (rather than through invokeMacro) use this to convert a
// dangling return into its value instead of treating it as a failure —
// the same unwinding a bare script run, not a macro call, can still
// produce (spec §4.6: `return` is valid anywhere a statement is).
func AsReturn(err error) (Datum, bool) {
	rs, ok := err.(returnSignal)
	if !ok {
		return Nil, false
	}
	return rs.val, true
}

// --- literals and identifiers ---------------------------------------------

// Lit is a literal int, string, or nil value.
type Lit struct{ Val Datum }

func (n *Lit) Eval(*Evaluator) (Datum, error) { return n.Val, nil }

// InterpString concatenates literal runs with interpolated sub-expressions
// (the `#{expr}` syntax, spec §9), evaluated fresh every time.
type InterpString struct {
	Parts []interpPart
}
type interpPart struct {
	Lit  string
	Expr Node // nil for a pure literal part
}

func (n *InterpString) Eval(ev *Evaluator) (Datum, error) {
	var out []byte
	for _, p := range n.Parts {
		if p.Expr == nil {
			out = append(out, p.Lit...)
			continue
		}
		v, err := p.Expr.Eval(ev)
		if err != nil {
			return Nil, err
		}
		out = append(out, v.ToString()...)
	}
	return StringDatum(string(out)), nil
}

// Ident is a variable reference: `$0`/`$N` macro arguments, `$name`
// system variables, or a plain user variable name (spec §4.5 lvalues).
type Ident struct{ Name string }

func (n *Ident) Eval(ev *Evaluator) (Datum, error) { return ev.lookup(n.Name) }
func (n *Ident) Assign(ev *Evaluator, v Datum) error {
	return ev.assign(n.Name, v)
}

// ArrayLit builds a new array Datum from its element expressions.
type ArrayLit struct{ Items []Node }

func (n *ArrayLit) Eval(ev *Evaluator) (Datum, error) {
	items := make([]Datum, len(n.Items))
	for i, it := range n.Items {
		v, err := it.Eval(ev)
		if err != nil {
			return Nil, err
		}
		items[i] = v
	}
	return ArrayDatum(items), nil
}

// IndexExpr is array-subscript access/assignment; writing at an index
// equal to the array's current length appends (spec §4.5).
type IndexExpr struct {
	Arr Node
	Idx Node
}

func (n *IndexExpr) resolve(ev *Evaluator) (*Array, int64, error) {
	av, err := n.Arr.Eval(ev)
	if err != nil {
		return nil, 0, err
	}
	if av.Kind != KindArray {
		return nil, 0, fmt.Errorf("eval: subscript target is not an array")
	}
	iv, err := n.Idx.Eval(ev)
	if err != nil {
		return nil, 0, err
	}
	idx, err := iv.ToInt()
	if err != nil {
		return nil, 0, err
	}
	return av.Arr, idx, nil
}

func (n *IndexExpr) Eval(ev *Evaluator) (Datum, error) {
	arr, idx, err := n.resolve(ev)
	if err != nil {
		return Nil, err
	}
	if idx < 0 || idx >= int64(len(arr.Items)) {
		return Nil, fmt.Errorf("eval: array index %d out of range", idx)
	}
	return arr.Items[idx], nil
}

func (n *IndexExpr) Assign(ev *Evaluator, v Datum) error {
	arr, idx, err := n.resolve(ev)
	if err != nil {
		return err
	}
	switch {
	case idx == int64(len(arr.Items)):
		arr.Items = append(arr.Items, v)
	case idx >= 0 && idx < int64(len(arr.Items)):
		arr.Items[idx] = v
	default:
		return fmt.Errorf("eval: array index %d out of range", idx)
	}
	return nil
}

// --- operators -------------------------------------------------------------

// Unary is a prefix `+ - ~ ! not` operator.
type Unary struct {
	Op string
	X  Node
}

func (n *Unary) Eval(ev *Evaluator) (Datum, error) {
	v, err := n.X.Eval(ev)
	if err != nil {
		return Nil, err
	}
	if n.Op == "not" || n.Op == "!" {
		return BoolDatum(!v.Truthy()), nil
	}
	iv, err := v.ToInt()
	if err != nil {
		return Nil, err
	}
	switch n.Op {
	case "+":
		return IntDatum(iv), nil
	case "-":
		return IntDatum(-iv), nil
	case "~":
		return IntDatum(^iv), nil
	}
	return Nil, fmt.Errorf("eval: unknown unary operator %q", n.Op)
}

// PostIncDec is postfix `++`/`--` on an lvalue, returning the
// pre-increment value (spec §4.5 postfix precedence).
type PostIncDec struct {
	Target Lvalue
	Op     string
}

func (n *PostIncDec) Eval(ev *Evaluator) (Datum, error) {
	cur, err := n.Target.Eval(ev)
	if err != nil {
		return Nil, err
	}
	iv, err := cur.ToInt()
	if err != nil {
		return Nil, err
	}
	delta := int64(1)
	if n.Op == "--" {
		delta = -1
	}
	if err := n.Target.Assign(ev, IntDatum(iv+delta)); err != nil {
		return Nil, err
	}
	return IntDatum(iv), nil
}

// Logical implements short-circuit `and`/`or`.
type Logical struct {
	Op   string
	L, R Node
}

func (n *Logical) Eval(ev *Evaluator) (Datum, error) {
	l, err := n.L.Eval(ev)
	if err != nil {
		return Nil, err
	}
	if n.Op == "or" && l.Truthy() {
		return l, nil
	}
	if n.Op == "and" && !l.Truthy() {
		return l, nil
	}
	return n.R.Eval(ev)
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Cond, Then, Else Node
}

func (n *Ternary) Eval(ev *Evaluator) (Datum, error) {
	c, err := n.Cond.Eval(ev)
	if err != nil {
		return Nil, err
	}
	if c.Truthy() {
		return n.Then.Eval(ev)
	}
	return n.Else.Eval(ev)
}

// Binary implements equality, relational, bitwise, shift, additive,
// and multiplicative operators, plus the regex-match operators `=~`/`!~`.
type Binary struct {
	Op   string
	L, R Node
}

func (n *Binary) Eval(ev *Evaluator) (Datum, error) {
	l, err := n.L.Eval(ev)
	if err != nil {
		return Nil, err
	}
	r, err := n.R.Eval(ev)
	if err != nil {
		return Nil, err
	}

	switch n.Op {
	case "==", "!=":
		eq := compareAsStrings(l, r) == 0
		if n.Op == "!=" {
			eq = !eq
		}
		return BoolDatum(eq), nil
	case "<", ">", "<=", ">=":
		c := compareAsStrings(l, r)
		switch n.Op {
		case "<":
			return BoolDatum(c < 0), nil
		case ">":
			return BoolDatum(c > 0), nil
		case "<=":
			return BoolDatum(c <= 0), nil
		default:
			return BoolDatum(c >= 0), nil
		}
	case "=~", "!~":
		if ev.MatchFunc == nil {
			return Nil, fmt.Errorf("eval: =~ unsupported: no matcher configured")
		}
		ok, err := ev.MatchFunc(l.ToString(), r.ToString())
		if err != nil {
			return Nil, err
		}
		if n.Op == "!~" {
			ok = !ok
		}
		return BoolDatum(ok), nil
	}

	li, err := l.ToInt()
	if err != nil {
		return Nil, err
	}
	ri, err := r.ToInt()
	if err != nil {
		return Nil, err
	}
	switch n.Op {
	case "+":
		return IntDatum(li + ri), nil
	case "-":
		return IntDatum(li - ri), nil
	case "*":
		return IntDatum(li * ri), nil
	case "/":
		if ri == 0 {
			return Nil, fmt.Errorf("eval: division by zero")
		}
		return IntDatum(li / ri), nil
	case "%":
		if ri == 0 {
			return Nil, fmt.Errorf("eval: division by zero")
		}
		return IntDatum(li % ri), nil
	case "**":
		return IntDatum(ipow(li, ri)), nil
	case "&":
		return IntDatum(li & ri), nil
	case "|":
		return IntDatum(li | ri), nil
	case "^":
		return IntDatum(li ^ ri), nil
	case "<<":
		return IntDatum(li << uint(ri)), nil
	case ">>":
		return IntDatum(li >> uint(ri)), nil
	}
	return Nil, fmt.Errorf("eval: unknown binary operator %q", n.Op)
}

func ipow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	var result int64 = 1
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

// Assign implements `=` and the compound assignment forms.
type Assign struct {
	Op     string // "=", "+=", "-=", ...
	Target Lvalue
	Value  Node
}

func (n *Assign) Eval(ev *Evaluator) (Datum, error) {
	v, err := n.Value.Eval(ev)
	if err != nil {
		return Nil, err
	}
	if n.Op != "=" {
		cur, err := n.Target.Eval(ev)
		if err != nil {
			return Nil, err
		}
		op := n.Op[:len(n.Op)-1] // strip trailing '='
		v, err = (&Binary{Op: op, L: &Lit{Val: cur}, R: &Lit{Val: v}}).Eval(ev)
		if err != nil {
			return Nil, err
		}
	}
	if err := n.Target.Assign(ev, v); err != nil {
		return Nil, err
	}
	return v, nil
}

// Call invokes a built-in/library function or a user-defined macro by
// name (spec §4.6 macro invocation).
type Call struct {
	Name string
	Args []Node
}

func (n *Call) Eval(ev *Evaluator) (Datum, error) {
	args := make([]Datum, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Eval(ev)
		if err != nil {
			return Nil, err
		}
		args[i] = v
	}
	return ev.call(n.Name, args)
}
