package macro

import "github.com/mightemacs-go/memacs/internal/search"

// WireMatch wires rt.Eval.MatchFunc to internal/search so `=~`/`!~`
// (spec §4.5) test a string against a search pattern using the same
// engine and trailing ":flags" suffix grammar as search-forward (spec
// §4.3, §6). The pattern is always treated as a regex: a ":p" suffix
// conflicts with that and is left in the pattern as literal text.
func (rt *Runtime) WireMatch() {
	rt.Eval.MatchFunc = func(subject, pattern string) (bool, error) {
		m, err := search.Compile(pattern, search.Options{Regex: true}, "")
		if err != nil {
			return false, err
		}
		return m.FindForward([]byte(subject), 0), nil
	}
}
