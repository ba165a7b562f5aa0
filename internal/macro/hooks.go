package macro

import (
	"fmt"

	"github.com/mightemacs-go/memacs/internal/eval"
)

// BindHook binds the named hook event to a macro (spec §4.6's hook
// list: chDir, enterBuf, exitBuf, help, mode, postKey, preKey, read,
// wrap, write). An empty macroName unbinds the hook.
func (rt *Runtime) BindHook(event, macroName string) error {
	if !isHookName(event) {
		return fmt.Errorf("macro: %q is not a recognized hook", event)
	}
	if macroName == "" {
		delete(rt.Hooks, event)
		return nil
	}
	if _, ok := rt.buffers[bare(macroName)]; !ok {
		return fmt.Errorf("macro: hook %q: %q is not a defined macro", event, macroName)
	}
	rt.Hooks[event] = bare(macroName)
	return nil
}

func isHookName(event string) bool {
	for _, h := range HookNames {
		if h == event {
			return true
		}
	}
	return false
}

// RunHook invokes the macro bound to event, if any, passing args with
// numeric prefix 1. ok reports whether a macro was bound and ran.
// preKey's documented contract (a truthy return skips the pending
// key's own execution) is implemented by the caller inspecting the
// returned Datum.Truthy(), not by this function.
func (rt *Runtime) RunHook(event string, args ...eval.Datum) (eval.Datum, bool, error) {
	name, bound := rt.Hooks[event]
	if !bound {
		return eval.Nil, false, nil
	}
	v, err := rt.Execute(name, 1, args)
	return v, true, err
}
