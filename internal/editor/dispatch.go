package editor

// Dispatch implements internal/dispatch.Dispatcher: target is a
// command.Info.HandlerID (the registry keeps Name == HandlerID for
// every built-in), n is the resolved numeric argument. handled is
// false only for a target this Session has no method for.
//
// lastCommand is stamped with target only after the handler returns,
// since KillLine, KillRegion, YankPop, ForwardLine, and
// BackwardLine read its pre-call value to detect "same command as
// last time" before this call updates it for the next one.
func (s *Session) Dispatch(target string, n int64) (bool, error) {
	handler, ok := dispatchTable[target]
	if !ok {
		return false, nil
	}
	err := handler(s, n)
	s.lastCommand = target
	return true, err
}

var dispatchTable = map[string]func(*Session, int64) error{
	"forward-char":             (*Session).ForwardChar,
	"backward-char":            (*Session).BackwardChar,
	"forward-line":             (*Session).ForwardLine,
	"backward-line":            (*Session).BackwardLine,
	"beginning-of-line":        func(s *Session, n int64) error { return s.BeginningOfLine() },
	"end-of-line":              func(s *Session, n int64) error { return s.EndOfLine() },
	"goto-line":                (*Session).GotoLine,
	"delete-forward-char":      (*Session).DeleteForwardChar,
	"delete-backward-char":     (*Session).DeleteBackwardChar,
	"kill-line":                (*Session).KillLine,
	"kill-region":              func(s *Session, n int64) error { return s.KillRegion() },
	"yank":                     (*Session).Yank,
	"yank-pop":                 (*Session).YankPop,
	"set-mark":                 func(s *Session, n int64) error { return s.SetMark() },
	"exchange-point-and-mark":  func(s *Session, n int64) error { return s.ExchangePointAndMark() },
	"search-forward":           (*Session).SearchForward,
	"search-backward":          (*Session).SearchBackward,
	"hunt-forward":             (*Session).HuntForward,
	"hunt-backward":            (*Session).HuntBackward,
	"query-replace":            (*Session).QueryReplace,
	"replace-string":           (*Session).ReplaceString,
	"find-file":                (*Session).FindFile,
	"save-buffer":              (*Session).SaveBuffer,
	"switch-buffer":            (*Session).SwitchBuffer,
	"kill-buffer":              (*Session).KillBuffer,
	"list-buffers":             func(s *Session, n int64) error { s.ListBuffers(); return nil },
	"change-mode":              (*Session).ChangeMode,
	"execute-macro":            (*Session).ExecuteMacro,
	"begin-keyboard-macro":     (*Session).BeginKeyboardMacro,
	"end-keyboard-macro":       (*Session).EndKeyboardMacro,
	"call-last-keyboard-macro": (*Session).CallLastKeyboardMacro,
	"universal-argument":       (*Session).UniversalArgument,
	"keyboard-quit":            (*Session).KeyboardQuit,
	"quit":                     (*Session).SessionQuit,
}
