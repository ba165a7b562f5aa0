package macro

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mightemacs-go/memacs/internal/eval"
)

// XeqFile loads path as a macro buffer (name derived from the file's
// base name, extension stripped) and executes it once with numeric
// prefix n and positional arguments args (spec §4.6: macros may be
// invoked "from the command line via xeqFile"). The macro remains
// registered afterward so later key bindings or calls by name can
// reuse the parsed body without re-reading the file.
func (rt *Runtime) XeqFile(path string, n int64, args []eval.Datum) (eval.Datum, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return eval.Nil, fmt.Errorf("macro: xeqFile %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := rt.Define(name, string(src), "", "", -1); err != nil {
		return eval.Nil, err
	}
	return rt.Execute(name, n, args)
}
