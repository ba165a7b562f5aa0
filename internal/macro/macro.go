// Package macro implements the script runtime of spec §4.6: macro
// buffers (script source living in an ordinary text buffer flagged
// "macro"), invocation framing via internal/eval's Evaluator, named
// hooks, and xeqFile execution from disk.
package macro

import (
	"fmt"
	"strings"

	"github.com/mightemacs-go/memacs/internal/buffer"
	"github.com/mightemacs-go/memacs/internal/command"
	"github.com/mightemacs-go/memacs/internal/eval"
)

// SBMacro is the sigil byte a macro buffer's name begins with (spec
// §4.6). original_source/help.c's buffer-flag table (bftab) confirms
// the flag/sigil pairing convention (BFMacro/SBMacro) but the header
// defining the byte itself was not among the retrieved sources, so this
// follows MightEMacs's documented apostrophe-prefixed macro-name style.
const SBMacro = '\''

// HookNames lists the events a macro may be bound to (spec §4.6).
var HookNames = []string{
	"chDir", "enterBuf", "exitBuf", "help", "mode",
	"postKey", "preKey", "read", "wrap", "write",
}

// HandlerFunc implements one built-in command (command.Info.HandlerID)
// against the running editor/runtime state.
type HandlerFunc func(rt *Runtime, args []eval.Datum) (eval.Datum, error)

// Runtime owns the macro buffer catalog, the expression evaluator, the
// built-in command dispatch table, and the named-hook bindings.
type Runtime struct {
	Eval     *eval.Evaluator
	Commands *command.Registry
	Handlers map[string]HandlerFunc
	Hooks    map[string]string // hook event name -> bound macro name (bare, no sigil)

	buffers map[string]*buffer.Buffer // bare name -> macro buffer
	bodies  map[string]eval.Node      // bare name -> cached parse of the buffer's body
}

// NewRuntime wires an evaluator bounded by maxDepth/maxLoopIterations
// (spec §4.6 guards) to reg (the built-in command registry) and
// handlers (Go implementations keyed by HandlerID).
func NewRuntime(maxDepth, maxLoopIterations int, reg *command.Registry, handlers map[string]HandlerFunc) *Runtime {
	rt := &Runtime{
		Eval:     eval.New(maxDepth, maxLoopIterations),
		Commands: reg,
		Handlers: handlers,
		Hooks:    map[string]string{},
		buffers:  map[string]*buffer.Buffer{},
		bodies:   map[string]eval.Node{},
	}
	rt.Eval.CallFunc = rt.callBuiltin
	rt.WireMatch()
	return rt
}

func bare(name string) string {
	return strings.TrimPrefix(name, string(SBMacro))
}

func qualify(name string) string {
	if strings.HasPrefix(name, string(SBMacro)) {
		return name
	}
	return string(SBMacro) + name
}

// Define creates (or replaces) a macro buffer named name (the sigil is
// added automatically if missing) holding source as its executable
// body. usage/description/nargs populate the buffer's declared
// metadata (spec §4.6); nargs = -1 leaves the argument count
// unconstrained until a `constrain` statement inside the body runs.
func (rt *Runtime) Define(name, source, usage, description string, nargs int) error {
	qualified := qualify(name)
	b := bare(qualified)
	buf := buffer.New(qualified)
	buf.SetAttr(buffer.AttrMacro, true)
	buf.Macro = &buffer.MacroInfo{Usage: usage, Description: description, NArgs: nargs}
	if _, err := buf.InsertString(buf.FirstPoint(), []byte(source)); err != nil {
		return fmt.Errorf("macro: %s: %w", name, err)
	}
	rt.buffers[b] = buf
	delete(rt.bodies, b)
	return nil
}

// Lookup returns the macro buffer named name, if any.
func (rt *Runtime) Lookup(name string) (*buffer.Buffer, bool) {
	buf, ok := rt.buffers[bare(name)]
	return buf, ok
}

// Names returns all registered macro names (bare, no sigil), for
// command-line completion (spec §4.7's "command/macro name" kind).
func (rt *Runtime) Names() []string {
	out := make([]string, 0, len(rt.buffers))
	for name := range rt.buffers {
		out = append(out, name)
	}
	return out
}

func (rt *Runtime) body(name string) (eval.Node, error) {
	b := bare(name)
	if n, ok := rt.bodies[b]; ok {
		return n, nil
	}
	buf, ok := rt.buffers[b]
	if !ok {
		return nil, fmt.Errorf("macro: %q is not defined", name)
	}
	n, err := eval.NewParser(string(buf.Bytes())).ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("macro: %s: %w", name, err)
	}
	rt.bodies[b] = n
	return n, nil
}

// Execute runs the named macro buffer with numeric prefix n and
// positional arguments args (spec §4.6 invocation semantics): a new
// frame is pushed holding {n, args, locals}; on return the frame is
// popped and its locals are freed. The owning buffer is marked
// executing for the duration, guarding it against concurrent
// modification or deletion (buffer.Executing/EnterMacro/LeaveMacro).
func (rt *Runtime) Execute(name string, n int64, args []eval.Datum) (eval.Datum, error) {
	body, err := rt.body(name)
	if err != nil {
		return eval.Nil, err
	}
	buf := rt.buffers[bare(name)]
	if err := rt.Eval.PushFrame(args, n); err != nil {
		return eval.Nil, err
	}
	buf.EnterMacro()
	defer buf.LeaveMacro()
	defer rt.Eval.PopFrame()
	_, err = body.Eval(rt.Eval)
	if err != nil {
		if rv, ok := eval.AsReturn(err); ok {
			return rv, nil
		}
		return eval.Nil, err
	}
	return eval.Nil, nil // falling off the end returns nil (spec §4.6)
}

// callBuiltin is wired as eval.Evaluator.CallFunc: a name unresolved as
// an inline eval.MacroDef is tried as a macro buffer, then as a
// built-in command's handler.
func (rt *Runtime) callBuiltin(ev *eval.Evaluator, name string, args []eval.Datum) (eval.Datum, error) {
	if _, ok := rt.buffers[bare(name)]; ok {
		return rt.Execute(name, 1, args)
	}
	info, ok := rt.Commands.Find(name)
	if !ok {
		return eval.Nil, fmt.Errorf("macro: unknown command or macro %q", name)
	}
	handler, ok := rt.Handlers[info.HandlerID]
	if !ok {
		return eval.Nil, fmt.Errorf("macro: no handler registered for %q", info.HandlerID)
	}
	return handler(rt, args)
}
