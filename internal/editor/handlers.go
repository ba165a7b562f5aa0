package editor

import (
	"github.com/mightemacs-go/memacs/internal/dispatch"
	"github.com/mightemacs-go/memacs/internal/eval"
	"github.com/mightemacs-go/memacs/internal/macro"
)

// BuildHandlers returns the HandlerFunc table a macro.Runtime calls
// into when a script invokes a built-in command by name (spec §4.6's
// callBuiltin seam), so a key binding and a script line invoking the
// same command run the identical Session method. internal/eval's
// Evaluator keeps a macro frame's numeric prefix ($0) private to the
// package (readable only from script as "$0"), so a script-invoked
// command always runs with dispatch.NoArg (the "once" default)
// instead of threading $0 through; a script that wants a count passes
// it as an explicit argument (goto-line, for instance, reads its line
// number that way already).
func BuildHandlers(s *Session) map[string]macro.HandlerFunc {
	plain := func(fn func(n int64) error) macro.HandlerFunc {
		return func(rt *macro.Runtime, args []eval.Datum) (eval.Datum, error) {
			return eval.Nil, fn(dispatch.NoArg)
		}
	}
	withArg := func(fn func(n int64) error) macro.HandlerFunc {
		return func(rt *macro.Runtime, args []eval.Datum) (eval.Datum, error) {
			if len(args) > 0 {
				s.SetPendingArg(args[0].ToString())
			}
			return eval.Nil, fn(dispatch.NoArg)
		}
	}
	withArgPair := func(fn func(n int64) error) macro.HandlerFunc {
		return func(rt *macro.Runtime, args []eval.Datum) (eval.Datum, error) {
			from, to := "", ""
			if len(args) > 0 {
				from = args[0].ToString()
			}
			if len(args) > 1 {
				to = args[1].ToString()
			}
			s.SetPendingArgs(from, to)
			return eval.Nil, fn(dispatch.NoArg)
		}
	}
	withArgInt := func(fn func(n int64) error) macro.HandlerFunc {
		return func(rt *macro.Runtime, args []eval.Datum) (eval.Datum, error) {
			n := dispatch.NoArg
			if len(args) > 0 && args[0].Kind == eval.KindInt {
				n = args[0].Int
			}
			return eval.Nil, fn(n)
		}
	}

	return map[string]macro.HandlerFunc{
		"forward-char":            plain(s.ForwardChar),
		"backward-char":           plain(s.BackwardChar),
		"forward-line":            plain(s.ForwardLine),
		"backward-line":           plain(s.BackwardLine),
		"beginning-of-line":       plain(func(int64) error { return s.BeginningOfLine() }),
		"end-of-line":             plain(func(int64) error { return s.EndOfLine() }),
		"goto-line":               withArgInt(s.GotoLine),
		"delete-forward-char":     plain(s.DeleteForwardChar),
		"delete-backward-char":    plain(s.DeleteBackwardChar),
		"kill-line":               plain(s.KillLine),
		"kill-region":             plain(func(int64) error { return s.KillRegion() }),
		"yank":                    plain(s.Yank),
		"yank-pop":                plain(s.YankPop),
		"set-mark":                plain(func(int64) error { return s.SetMark() }),
		"exchange-point-and-mark": plain(func(int64) error { return s.ExchangePointAndMark() }),
		"search-forward":          withArg(s.SearchForward),
		"search-backward":         withArg(s.SearchBackward),
		"hunt-forward":            plain(s.HuntForward),
		"hunt-backward":           plain(s.HuntBackward),
		"query-replace":           withArgPair(s.QueryReplace),
		"replace-string":          withArgPair(s.ReplaceString),
		"find-file":               withArg(s.FindFile),
		"save-buffer":             withArg(s.SaveBuffer),
		"switch-buffer":           withArg(s.SwitchBuffer),
		"kill-buffer":             withArg(s.KillBuffer),
		"list-buffers": func(rt *macro.Runtime, args []eval.Datum) (eval.Datum, error) {
			names := s.ListBuffers()
			items := make([]eval.Datum, len(names))
			for i, name := range names {
				items[i] = eval.StringDatum(name)
			}
			return eval.ArrayDatum(items), nil
		},
		"change-mode":              withArg(s.ChangeMode),
		"execute-macro":            withArg(s.ExecuteMacro),
		"begin-keyboard-macro":     plain(s.BeginKeyboardMacro),
		"end-keyboard-macro":       plain(s.EndKeyboardMacro),
		"call-last-keyboard-macro": plain(s.CallLastKeyboardMacro),
		"universal-argument":       plain(s.UniversalArgument),
		"keyboard-quit":            plain(s.KeyboardQuit),
		"quit":                     plain(s.SessionQuit),
	}
}
