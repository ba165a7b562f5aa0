package macro

import (
	"github.com/mightemacs-go/memacs/internal/eval"
	"github.com/mightemacs-go/memacs/internal/keymap"
)

// DispatchHooks adapts Runtime's preKey/postKey hook bindings to
// internal/dispatch.Loop's Hooks seam (spec §4.2 steps 5 and 7).
type DispatchHooks struct {
	Runtime *Runtime
}

// RunPreKey runs the "preKey" hook, if bound, passing the resolved key
// code and numeric argument as its two positional arguments. A truthy
// return tells the dispatcher to skip the pending key's own execution
// (spec §4.2 step 5).
func (h DispatchHooks) RunPreKey(code keymap.KeyCode, n int64) (bool, error) {
	v, ran, err := h.Runtime.RunHook("preKey", eval.IntDatum(int64(code)), eval.IntDatum(n))
	if err != nil {
		return false, err
	}
	if !ran {
		return false, nil
	}
	return v.Truthy(), nil
}

// RunPostKey runs the "postKey" hook, if bound, after the key's own
// execution (spec §4.2 step 7). Its return value is discarded.
func (h DispatchHooks) RunPostKey(code keymap.KeyCode, n int64) error {
	_, _, err := h.Runtime.RunHook("postKey", eval.IntDatum(int64(code)), eval.IntDatum(n))
	return err
}
