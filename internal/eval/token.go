package eval

import "fmt"

// Kind of a lexical token.
type TokKind int

const (
	TokEOF TokKind = iota
	TokIdent
	TokPredicateIdent // identifier with a trailing '?'
	TokInt
	TokString
	TokKeyword
	TokPunct
)

// Token is one lexeme plus its decoded value and source position.
type Token struct {
	Kind   TokKind
	Text   string // raw spelling (keyword name, punctuator, identifier)
	IntVal int64
	StrVal string // decoded string literal content
	Pos    int    // byte offset into the source
}

// keywords are reserved words the lexer reports as TokKeyword instead
// of TokIdent (spec §4.5).
var keywords = map[string]bool{
	"if": true, "elsif": true, "else": true, "endif": true,
	"while": true, "until": true, "loop": true, "endloop": true,
	"for": true, "in": true,
	"break": true, "next": true, "return": true,
	"and": true, "or": true, "not": true,
	"defn": true, "force": true,
	"true": true, "false": true, "nil": true,
	"macro": true, "endmacro": true,
	"constrain": true,
}

func (t Token) String() string {
	switch t.Kind {
	case TokEOF:
		return "<eof>"
	case TokInt:
		return fmt.Sprintf("%d", t.IntVal)
	case TokString:
		return fmt.Sprintf("%q", t.StrVal)
	default:
		return t.Text
	}
}

// punctuators lists multi-character operators in longest-first order
// so the lexer's maximal-munch scan (conceptually a trie over the
// leading bytes) always prefers the longest match at a position.
var punctuators = []string{
	"**", "<<=", ">>=",
	"==", "!=", "<=", ">=", "<<", ">>", "=~", "!~", "=>",
	"++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "!",
	"<", ">", "=",
	"(", ")", "[", "]", ",", ";", ":", "?",
}
