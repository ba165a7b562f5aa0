// Command memacs is the editor's terminal front end: it parses the CLI
// surface of spec §6, wires internal/config, internal/editor,
// internal/command, internal/macro, internal/keymap, internal/term and
// internal/dispatch together, and drives the dispatcher loop until the
// "quit" command sets the session's Quit flag.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mightemacs-go/memacs/internal/command"
	"github.com/mightemacs-go/memacs/internal/config"
	"github.com/mightemacs-go/memacs/internal/dispatch"
	"github.com/mightemacs-go/memacs/internal/editor"
	"github.com/mightemacs-go/memacs/internal/keymap"
	"github.com/mightemacs-go/memacs/internal/macro"
	"github.com/mightemacs-go/memacs/internal/modes"
	"github.com/mightemacs-go/memacs/internal/search"
	"github.com/mightemacs-go/memacs/internal/status"
	"github.com/mightemacs-go/memacs/internal/term"
)

var (
	version string
	commit  string
)

// options collects the parsed CLI surface of spec §6 before any of it
// is applied to a live Session (so parse errors are reported before a
// terminal has been put into raw mode).
type options struct {
	skipStartup bool
	dir         string
	enableModes []string
	disableModes []string
	gotoLine    string
	exprs       []string
	readOnly    bool
	searchPat   string
	scripts     []string
	pathPrefix  string
	delim       string
	readStdin   bool
	startupMacros []string
	files       []string
	exitAfter   *int // set by -?, -h, -V, -C
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		a := args[i]
		next := func(flag string) (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("%s requires an argument", flag)
			}
			return args[i], nil
		}
		switch {
		case a == "-n":
			o.skipStartup = true
		case a == "-d":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.dir = v
		case a == "-D":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			addModeArg(&o, v)
		case a == "-G":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			addModeArg(&o, v)
		case a == "-g":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.gotoLine = v
		case strings.HasPrefix(a, "+") && len(a) > 1:
			o.gotoLine = a[1:]
		case a == "-e":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.exprs = append(o.exprs, v)
		case a == "-r":
			o.readOnly = true
		case a == "-R":
			o.readOnly = false
		case a == "-s":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.searchPat = v
		case a == "-S":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.scripts = append(o.scripts, v)
		case a == "-X":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.pathPrefix = v
		case a == "-i":
			v, err := next(a)
			if err != nil {
				return o, err
			}
			o.delim = v
		case a == "-":
			o.readStdin = true
		case strings.HasPrefix(a, "@") && len(a) > 1:
			o.startupMacros = append(o.startupMacros, a[1:])
		case a == "-?" || a == "-h":
			code := 0
			o.exitAfter = &code
			fmt.Fprintln(os.Stdout, usageText())
		case a == "-V":
			code := 0
			o.exitAfter = &code
			v, _ := versionInfo()
			fmt.Fprintln(os.Stdout, v)
		case a == "-C":
			code := 0
			o.exitAfter = &code
		default:
			o.files = append(o.files, resolvePath(o.pathPrefix, a))
		}
		if o.exitAfter != nil {
			break
		}
	}
	return o, nil
}

// addModeArg records a -D/-G argument as a single mode name in o's
// enable list, or in its disable list when it starts with "^". The
// argument is not split into several names.
func addModeArg(o *options, arg string) {
	if strings.HasPrefix(arg, "^") {
		o.disableModes = append(o.disableModes, arg[1:])
		return
	}
	o.enableModes = append(o.enableModes, arg)
}

func resolvePath(prefix, path string) string {
	if prefix == "" || strings.HasPrefix(path, "/") {
		return path
	}
	return prefix + path
}

func usageText() string {
	return `usage: memacs [-n] [-d dir] [-D modes] [-G modes] [-g line[:col]] [+line[:col]]
               [-e expr] [-r|-R] [-s pattern] [-S script] [-X prefix]
               [-i delim] [-] [@script] [-?|-h] [-V] [-C] [file...]`
}

// exitCode maps a top-level failure to a process exit status by the
// severity it would carry as a status.Code (spec §7): dispatch.ErrUserAbort
// is UserAbort, dispatch.ErrQuit is UserExit, anything else is Failure.
// OSError-or-worse would exit with 255 and everything milder with 1; no
// error classified here reaches OSError, so every failure exits with 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	code := status.Failure
	switch {
	case errors.Is(err, dispatch.ErrUserAbort):
		code = status.UserAbort
	case errors.Is(err, dispatch.ErrQuit):
		code = status.UserExit
	}
	if code >= status.OSError {
		return 255
	}
	return 1
}

func versionInfo() (string, string) {
	if version != "" || commit != "" {
		return version, commit
	}
	return "memacs (development build)", ""
}

// buildSession applies o to a fresh editor.Session: standard modes are
// defined, requested modes are set or cleared, files are opened, and the
// initial point/search position is set. It does not touch the
// terminal or the macro runtime.
func buildSession(o options, ecfg editor.Config, pc *config.Config) (*editor.Session, error) {
	s := editor.New(ecfg)

	if err := s.ModesTable().Define(modes.Mode{Name: "overwrite", Scope: modes.ScopeBuffer}); err != nil {
		return nil, err
	}
	if err := s.ModesTable().Define(modes.Mode{Name: "read-only", Scope: modes.ScopeBuffer}); err != nil {
		return nil, err
	}

	if !o.skipStartup {
		for _, name := range pc.Startup.Modes {
			s.SetPendingArg(name)
			if err := s.ChangeMode(1); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range o.enableModes {
		s.SetPendingArg(name)
		if err := s.ChangeMode(1); err != nil {
			return nil, err
		}
	}
	for _, name := range o.disableModes {
		s.SetPendingArg("-" + name)
		if err := s.ChangeMode(1); err != nil {
			return nil, err
		}
	}

	for _, path := range o.files {
		s.SetPendingArg(path)
		if err := s.FindFile(1); err != nil {
			return nil, fmt.Errorf("find-file %s: %w", path, err)
		}
		if o.delim != "" {
			s.Current().Delimiter = o.delim
		}
	}

	if o.readStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if err := s.ReadStdin(data); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}

	if o.readOnly {
		s.SetPendingArg("read-only")
		if err := s.ChangeMode(1); err != nil {
			return nil, err
		}
	}

	if o.gotoLine != "" {
		line, _ := splitLineCol(o.gotoLine)
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -g/+line argument %q: %w", o.gotoLine, err)
		}
		if err := s.GotoLine(n); err != nil {
			return nil, err
		}
	}

	if o.searchPat != "" {
		s.SetPendingArg(o.searchPat)
		if err := s.SearchForward(1); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// splitLineCol splits "line[:col]" into its two parts; col is "" if absent.
func splitLineCol(arg string) (line, col string) {
	if idx := strings.IndexByte(arg, ':'); idx >= 0 {
		return arg[:idx], arg[idx+1:]
	}
	return arg, ""
}

// runScripts executes -e expressions, @startup macros, and -S scripts,
// in the order spec §6 lists them, against rt.
func runScripts(rt *macro.Runtime, o options) error {
	for i, expr := range o.exprs {
		name := fmt.Sprintf("__cli_expr_%d__", i)
		if err := rt.Define(name, "return ("+expr+")", "", "", -1); err != nil {
			return err
		}
		if _, err := rt.Execute(name, dispatch.NoArg, nil); err != nil {
			return fmt.Errorf("-e %q: %w", expr, err)
		}
	}
	for _, name := range o.startupMacros {
		if _, err := rt.Execute(name, dispatch.NoArg, nil); err != nil {
			return fmt.Errorf("@%s: %w", name, err)
		}
	}
	for _, path := range o.scripts {
		if _, err := rt.XeqFile(path, dispatch.NoArg, nil); err != nil {
			return fmt.Errorf("-S %s: %w", path, err)
		}
	}
	return nil
}

// redisplay renders the current buffer to t: clears the screen, writes
// every line, and positions the cursor at point. Spec §4.7 specifies
// only the terminal *input line* (minibuffer) rendering in detail; a
// full windowing/scrolling display is not itself a named module, so
// this keeps to what the dispatcher loop actually needs between keys.
func redisplay(s *editor.Session, t *term.Terminal) {
	_ = t.Move(0, 0)
	_ = t.EraseToEOD()
	buf := s.Current()
	point := s.Point()
	cursorRow, cursorCol := 0, 0
	row := 0
	for line := buf.Header().Next(); !line.IsHeader(); line = line.Next() {
		if line == point.Line {
			cursorRow, cursorCol = row, point.Offset
		}
		_ = t.PutString(string(line.Text()))
		_ = t.PutString("\r\n")
		row++
	}
	_ = t.Move(cursorRow, cursorCol)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	o, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "memacs:", err)
		return exitCode(err)
	}
	if o.exitAfter != nil {
		return *o.exitAfter
	}

	if o.dir != "" {
		if err := os.Chdir(o.dir); err != nil {
			fmt.Fprintln(os.Stderr, "memacs:", err)
			return exitCode(err)
		}
	}

	cm := config.NewManager()
	_ = cm.Load() // a missing/invalid config file keeps the built-in defaults
	pc := cm.GetConfig()

	ecfg := editor.DefaultConfig()
	ecfg.KillRingSize = pc.Rings.KillCapacity
	ecfg.DeleteRingSize = pc.Rings.DeleteCapacity
	ecfg.SearchRingSize = pc.Rings.SearchCapacity
	ecfg.ReplaceRingSize = pc.Rings.ReplaceCapacity
	ecfg.SearchOptions = search.Options{IgnoreCase: pc.Search.IgnoreCase, Regex: pc.Search.Regex, Multiline: pc.Search.Multiline}
	ecfg.BackupExt = pc.FileIO.BackupExtension
	ecfg.SafeSave = pc.FileIO.SafeSave

	s, err := buildSession(o, ecfg, pc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "memacs:", err)
		return exitCode(err)
	}

	reg := command.NewRegistry()
	rt := macro.NewRuntime(pc.Macro.MaxDepth, pc.Macro.MaxLoopIterations, reg, editor.BuildHandlers(s))
	s.Macro = rt

	if err := runScripts(rt, o); err != nil {
		fmt.Fprintln(os.Stderr, "memacs:", err)
		return exitCode(err)
	}
	if o.scripts != nil && !o.readStdin {
		// A -S script run that does not read stdin behaves like a script
		// interpreter invocation: exit once done. -e expressions and
		// @startup macros alone do not end the run.
		return 0
	}

	t := term.New(os.Stdin, os.Stdout)
	if err := t.Open(); err != nil {
		fmt.Fprintln(os.Stderr, "memacs:", err)
		return exitCode(err)
	}
	defer t.Close()

	s.Term = t
	s.Prompter = newTermPrompter(t, &sessionSource{session: s, registry: reg, runtime: rt})
	km := keymap.DefaultKeymap()
	loop := dispatch.NewLoop(t, km, s, macro.DispatchHooks{Runtime: rt})
	s.KeyboardMacroCtrl = loop

	for !s.Quit {
		if err := loop.Step(func() { redisplay(s, t) }); err != nil {
			if err == dispatch.ErrUserAbort {
				s.Beep()
				continue
			}
			fmt.Fprintln(os.Stderr, "memacs:", err)
		}
	}
	return 0
}
