package main

import (
	"os"
	"os/user"
	"strings"

	"github.com/mightemacs-go/memacs/internal/command"
	"github.com/mightemacs-go/memacs/internal/editor"
	"github.com/mightemacs-go/memacs/internal/inputline"
	"github.com/mightemacs-go/memacs/internal/macro"
	"github.com/mightemacs-go/memacs/internal/ring"
	"github.com/mightemacs-go/memacs/internal/term"
)

// sessionSource implements internal/inputline.Source over the running
// session's buffer list, the built-in command registry, the attached
// macro runtime's evaluator (for script variable completion), the mode
// table, and the filesystem (spec §4.7's six completion kinds).
type sessionSource struct {
	session  *editor.Session
	registry *command.Registry
	runtime  *macro.Runtime
}

func (src *sessionSource) Candidates(kind inputline.Kind) []string {
	switch kind {
	case inputline.KindBuffer:
		return src.session.BufferNames()
	case inputline.KindMode, inputline.KindGlobalMode:
		return src.session.ModesTable().Names()
	case inputline.KindCommand:
		return src.commandAndMacroNames()
	case inputline.KindVariable:
		return src.variableNames(true)
	case inputline.KindMutableVariable:
		return src.variableNames(false)
	default:
		return nil
	}
}

func (src *sessionSource) commandAndMacroNames() []string {
	var names []string
	for _, c := range src.registry.All() {
		if c.Hidden {
			continue
		}
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
	}
	if src.runtime != nil {
		for name := range src.runtime.Eval.Macros {
			names = append(names, name)
		}
	}
	return names
}

// variableNames lists script variable names (spec §4.5's Lvalue kinds):
// global user variables always, plus every system variable when
// readOnly is true (read) or only the settable ones when false (write
// target for set-variable).
func (src *sessionSource) variableNames(readOnly bool) []string {
	if src.runtime == nil {
		return nil
	}
	var names []string
	for name := range src.runtime.Eval.Globals {
		names = append(names, name)
	}
	for name, sv := range src.runtime.Eval.SysVars {
		if readOnly || sv.Set != nil {
			names = append(names, name)
		}
	}
	return names
}

func (src *sessionSource) CandidatesDir(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names[i] = name
	}
	return names, nil
}

func (src *sessionSource) ExpandVar(token string) (string, bool) {
	if strings.HasPrefix(token, "~") {
		if token == "~" {
			home, err := os.UserHomeDir()
			return home, err == nil
		}
		u, err := user.Lookup(token[1:])
		if err != nil {
			return "", false
		}
		return u.HomeDir, true
	}
	if strings.HasPrefix(token, "$") {
		v, ok := os.LookupEnv(token[1:])
		return v, ok
	}
	return "", false
}

// termPrompter implements editor.Prompter over a real
// internal/term.Terminal, painting the input line on the message line
// (the terminal's last row) and feeding resolved keys to an
// internal/inputline.Reader until it finishes.
type termPrompter struct {
	t      *term.Terminal
	source inputline.Source
}

func newTermPrompter(t *term.Terminal, source inputline.Source) *termPrompter {
	return &termPrompter{t: t, source: source}
}

func (p *termPrompter) Prompt(prompt string, kind inputline.Kind, rng *ring.Ring) (string, bool, error) {
	cols, rows, err := p.t.Size()
	if err != nil {
		return "", false, err
	}
	msgRow := rows - 1

	reader := inputline.NewReader(inputline.Options{
		Prompt:       prompt,
		Kind:         kind,
		Ring:         rng,
		PromptColumn: len(prompt),
		ScreenWidth:  cols,
		JumpPercent:  25,
	}, p.source)

	for !reader.Done() {
		win := reader.Render()
		if err := p.t.Move(msgRow, 0); err != nil {
			return "", false, err
		}
		if err := p.t.EraseEOL(); err != nil {
			return "", false, err
		}
		if err := p.t.PutString(prompt); err != nil {
			return "", false, err
		}
		visible := win.Visible
		if win.Truncated {
			visible = string(inputline.TruncationMarker) + visible
		}
		if err := p.t.PutString(visible); err != nil {
			return "", false, err
		}
		cursorCol := len(prompt) + win.CursorColumn
		if win.Truncated {
			cursorCol++
		}
		if err := p.t.Move(msgRow, cursorCol); err != nil {
			return "", false, err
		}

		code, ok, err := p.t.GetKey(true)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		switch reader.Feed(code) {
		case inputline.ActionBeep, inputline.ActionCompletionFailed:
			_ = p.t.Beep()
		case inputline.ActionListRequested:
			p.showList(msgRow, reader.LastList())
		}
	}

	res := reader.Result()
	return res.Text, !res.Cancelled, nil
}

// showList paints the candidate list built by '?' just above the
// message line; the next redraw of the input line overwrites it. A
// real pop-up completion window (spec §4.7) is future work (see
// DESIGN.md); this keeps the information visible without one.
func (p *termPrompter) showList(msgRow int, candidates []string) {
	if msgRow == 0 {
		return
	}
	_ = p.t.Move(msgRow-1, 0)
	_ = p.t.EraseEOL()
	_ = p.t.PutString(strings.Join(candidates, "  "))
}
