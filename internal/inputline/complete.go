package inputline

import "strings"

// complete implements Tab: extend the input to the longest common prefix
// of every candidate starting with the text typed so far (spec §4.7),
// grounded on cMatchBuf/cMatchCFAB/cMatchFile's one-character-at-a-time
// extension in original_source/memacs-9.4.0/src/input.c. A unique match
// is accepted outright (ActionCompleted); a non-unique match is extended
// as far as possible (ActionCompletedPartial); no match at all leaves
// the text unchanged (ActionCompletionFailed).
func (r *Reader) complete() Action {
	if r.opts.Kind == KindNone || r.source == nil {
		return ActionBeep
	}
	typed := r.Text()

	if r.opts.Kind == KindFilename {
		return r.completeFilename(typed)
	}

	candidates := matchingPrefix(r.source.Candidates(r.opts.Kind), typed)
	return r.applyCompletion(typed, candidates)
}

// list implements '?': build the full list of candidates matching the
// text typed so far, for the caller to render in a pop-up window, and
// report it without otherwise touching the input line.
func (r *Reader) list() Action {
	if r.opts.Kind == KindNone || r.source == nil {
		return ActionBeep
	}
	typed := r.Text()
	if r.opts.Kind == KindFilename {
		dir, base := splitPath(typed)
		entries, err := r.source.CandidatesDir(dir)
		if err != nil {
			return ActionBeep
		}
		r.lastList = matchingPrefix(entries, base)
	} else {
		r.lastList = matchingPrefix(r.source.Candidates(r.opts.Kind), typed)
	}
	return ActionListRequested
}

func (r *Reader) completeFilename(typed string) Action {
	dir, base := splitPath(typed)
	entries, err := r.source.CandidatesDir(dir)
	if err != nil {
		return ActionBeep
	}
	full := make([]string, len(entries))
	for i, e := range entries {
		full[i] = dir + e
	}
	candidates := matchingPrefix(full, dir+base)
	return r.applyCompletion(typed, candidates)
}

// splitPath separates typed into a directory prefix (including any
// trailing slash, "" if none) and the partial basename being completed.
func splitPath(typed string) (dir, base string) {
	if i := strings.LastIndexByte(typed, '/'); i >= 0 {
		return typed[:i+1], typed[i+1:]
	}
	return "", typed
}

// matchingPrefix returns every candidate that starts with prefix.
func matchingPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// applyCompletion extends the buffer to the longest common prefix of
// candidates (which must all start with typed) and reports the outcome.
func (r *Reader) applyCompletion(typed string, candidates []string) Action {
	if len(candidates) == 0 {
		return ActionCompletionFailed
	}
	lcp := candidates[0]
	for _, c := range candidates[1:] {
		lcp = commonPrefix(lcp, c)
	}
	if len(lcp) > len(typed) {
		if r.opts.MaxLen > 0 && len(lcp) > r.opts.MaxLen {
			lcp = lcp[:r.opts.MaxLen]
		}
		r.setText(lcp)
	}
	if len(candidates) == 1 && lcp == candidates[0] {
		return ActionCompleted
	}
	return ActionCompletedPartial
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
