package command

import (
	"fmt"
	"strings"
)

// Registry manages built-in command metadata, looked up by name or
// alias when the keymap (internal/keymap) or macro runtime
// (internal/macro) needs to resolve a bound name to its handler.
type Registry struct {
	commands []Info
}

// NewRegistry creates a new Registry with the default built-in commands.
func NewRegistry() *Registry {
	return &Registry{commands: defaultCommands()}
}

// NewRegistryWith creates a Registry with custom commands (for testing).
func NewRegistryWith(commands []Info) *Registry {
	return &Registry{commands: commands}
}

// All returns a defensive copy of all commands.
func (r *Registry) All() []Info {
	out := make([]Info, len(r.commands))
	for i := range r.commands {
		out[i] = (&r.commands[i]).clone()
	}
	return out
}

// Find returns command metadata by name or alias.
func (r *Registry) Find(name string) (Info, bool) {
	for i := range r.commands {
		cmd := &r.commands[i]
		if strings.EqualFold(cmd.Name, name) {
			return cmd.clone(), true
		}
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, name) {
				return cmd.clone(), true
			}
		}
	}
	return Info{}, false
}

// VisibleCommands returns non-hidden commands.
func (r *Registry) VisibleCommands() []Info {
	var out []Info
	for i := range r.commands {
		if r.commands[i].Hidden {
			continue
		}
		out = append(out, (&r.commands[i]).clone())
	}
	return out
}

// Validate ensures registry consistency: unique names/aliases, every
// visible command documented and pointing at a handler.
func (r *Registry) Validate() error {
	return Validate(r.commands)
}

// camelAlias derives a script-callable alias from a hyphenated command
// name, e.g. "goto-line" -> "gotoLine". internal/eval's identifiers are
// `[A-Za-z0-9_]` only (spec §4.5/§9), so a hyphenated prompt-facing name
// cannot be called directly from a script; original_source's cf-table
// (main.c: "cd", "quit", "require", and usages like "gotoLine") shows
// the original already used camelCase names for the same commands when
// calling them from scripts, so this mirrors that convention rather
// than inventing a new one.
func camelAlias(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) == 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// withCamelAliases appends each hyphenated command's derived camelCase
// alias, so scripts can call it by identifier (command-line/keybinding
// contexts keep using the hyphenated form).
func withCamelAliases(cmds []Info) []Info {
	for i := range cmds {
		alias := camelAlias(cmds[i].Name)
		if alias == "" {
			continue
		}
		cmds[i].Aliases = append(cmds[i].Aliases, alias)
	}
	return cmds
}

// defaultCommands returns the built-in command set (spec §4.2 dispatch
// targets, §4.4 replace, §4.6 macro hooks).
func defaultCommands() []Info {
	return withCamelAliases([]Info{
		{
			Name:      "forward-char",
			Aliases:   []string{"forw-char"},
			Category:  CategoryMovement,
			Summary:   "Move point forward n characters",
			Usage:     []string{"forward-char", "2 forward-char"},
			HandlerID: "forward-char",
		},
		{
			Name:      "backward-char",
			Aliases:   []string{"back-char"},
			Category:  CategoryMovement,
			Summary:   "Move point backward n characters",
			Usage:     []string{"backward-char"},
			HandlerID: "backward-char",
		},
		{
			Name:      "forward-line",
			Aliases:   []string{"forw-line", "next-line"},
			Category:  CategoryMovement,
			Summary:   "Move point forward n lines, preserving the target column",
			Usage:     []string{"forward-line"},
			HandlerID: "forward-line",
		},
		{
			Name:      "backward-line",
			Aliases:   []string{"back-line", "previous-line"},
			Category:  CategoryMovement,
			Summary:   "Move point backward n lines, preserving the target column",
			Usage:     []string{"backward-line"},
			HandlerID: "backward-line",
		},
		{
			Name:      "beginning-of-line",
			Aliases:   []string{"bol"},
			Category:  CategoryMovement,
			Summary:   "Move point to the start of the current line",
			HandlerID: "beginning-of-line",
		},
		{
			Name:      "end-of-line",
			Aliases:   []string{"eol"},
			Category:  CategoryMovement,
			Summary:   "Move point to the end of the current line",
			HandlerID: "end-of-line",
		},
		{
			Name:      "goto-line",
			Category:  CategoryMovement,
			Summary:   "Move point to the start of a given line number",
			Usage:     []string{"goto-line 42"},
			HandlerID: "goto-line",
		},
		{
			Name:      "self-insert",
			Category:  CategoryEditing,
			Summary:   "Insert the triggering character n times",
			Hidden:    true,
			HandlerID: "self-insert",
		},
		{
			Name:      "delete-forward-char",
			Aliases:   []string{"delete-char"},
			Category:  CategoryEditing,
			Summary:   "Delete n characters starting at point",
			HandlerID: "delete-forward-char",
		},
		{
			Name:      "delete-backward-char",
			Aliases:   []string{"backward-delete-char"},
			Category:  CategoryEditing,
			Summary:   "Delete n characters ending at point",
			HandlerID: "delete-backward-char",
		},
		{
			Name:      "kill-line",
			Category:  CategoryRing,
			Summary:   "Delete to end of line, pushing the text onto the kill ring",
			HandlerID: "kill-line",
		},
		{
			Name:      "kill-region",
			Category:  CategoryRing,
			Summary:   "Delete the region between point and mark, pushing it onto the kill ring",
			HandlerID: "kill-region",
		},
		{
			Name:      "yank",
			Category:  CategoryRing,
			Summary:   "Insert the current kill-ring entry at point",
			HandlerID: "yank",
		},
		{
			Name:      "yank-pop",
			Category:  CategoryRing,
			Summary:   "Replace the just-yanked text with the previous kill-ring entry",
			HandlerID: "yank-pop",
		},
		{
			Name:      "set-mark",
			Aliases:   []string{"mark"},
			Category:  CategoryEditing,
			Summary:   "Set the mark at point",
			HandlerID: "set-mark",
		},
		{
			Name:      "exchange-point-and-mark",
			Category:  CategoryEditing,
			Summary:   "Swap point and the mark",
			HandlerID: "exchange-point-and-mark",
		},
		{
			Name:     "search-forward",
			Aliases:  []string{"search-forw"},
			Category: CategorySearch,
			Summary:  "Search forward for a pattern (spec §4.3 pattern suffix grammar)",
			Usage:    []string{"search-forward foo", "search-forward foo:ir"},
			Examples: []string{
				"search-forward error              # plain, case-sensitive",
				"search-forward error:i             # ignore case",
				"search-forward ^[0-9]+:r           # regex",
			},
			HandlerID: "search-forward",
		},
		{
			Name:      "search-backward",
			Aliases:   []string{"search-back"},
			Category:  CategorySearch,
			Summary:   "Search backward for a pattern",
			HandlerID: "search-backward",
		},
		{
			Name:      "hunt-forward",
			Category:  CategorySearch,
			Summary:   "Repeat the last search, forward",
			HandlerID: "hunt-forward",
		},
		{
			Name:      "hunt-backward",
			Category:  CategorySearch,
			Summary:   "Repeat the last search, backward",
			HandlerID: "hunt-backward",
		},
		{
			Name:     "query-replace",
			Category: CategoryReplace,
			Summary:  "Interactively replace occurrences of a pattern (spec §4.4)",
			Usage:    []string{"query-replace foo bar"},
			Subcommands: []SubcommandInfo{
				{Name: "y / SPC", Summary: "Substitute this match and move to the next"},
				{Name: "n", Summary: "Skip this match and move to the next"},
				{Name: "Y", Summary: "Substitute this match and stop"},
				{Name: "!", Summary: "Substitute all remaining matches without asking"},
				{Name: "u", Summary: "Undo the last substitution"},
				{Name: ".", Summary: "Stop without substituting and return to the origin"},
				{Name: "q / ESC", Summary: "Stop at the current match"},
				{Name: "?", Summary: "Show the response help"},
			},
			HandlerID: "query-replace",
		},
		{
			Name:      "replace-string",
			Category:  CategoryReplace,
			Summary:   "Unconditionally replace all occurrences of a pattern",
			HandlerID: "replace-string",
		},
		{
			Name:      "find-file",
			Aliases:   []string{"visit-file"},
			Category:  CategoryFile,
			Summary:   "Read a file into a new buffer",
			Usage:     []string{"find-file path/to/file"},
			HandlerID: "find-file",
		},
		{
			Name:      "save-buffer",
			Aliases:   []string{"write-file"},
			Category:  CategoryFile,
			Summary:   "Write the current buffer to its file",
			HandlerID: "save-buffer",
		},
		{
			Name:      "switch-buffer",
			Aliases:   []string{"select-buffer"},
			Category:  CategoryBuffer,
			Summary:   "Switch to another buffer by name",
			HandlerID: "switch-buffer",
		},
		{
			Name:      "kill-buffer",
			Category:  CategoryBuffer,
			Summary:   "Delete a buffer",
			HandlerID: "kill-buffer",
		},
		{
			Name:      "list-buffers",
			Category:  CategoryBuffer,
			Summary:   "List all buffers",
			HandlerID: "list-buffers",
		},
		{
			Name:      "change-mode",
			Aliases:   []string{"mode"},
			Category:  CategoryMode,
			Summary:   "Set, clear, or toggle a buffer or global mode",
			Usage:     []string{"change-mode overwrite", "change-mode -overwrite"},
			HandlerID: "change-mode",
		},
		{
			Name:      "execute-macro",
			Aliases:   []string{"run"},
			Category:  CategoryMacro,
			Summary:   "Execute a named macro buffer, optionally with arguments",
			Usage:     []string{"execute-macro myMacro arg1 arg2"},
			HandlerID: "execute-macro",
		},
		{
			Name:      "begin-keyboard-macro",
			Aliases:   []string{"kmacro-start"},
			Category:  CategoryMacro,
			Summary:   "Start recording a keyboard macro",
			HandlerID: "begin-keyboard-macro",
		},
		{
			Name:      "end-keyboard-macro",
			Aliases:   []string{"kmacro-end"},
			Category:  CategoryMacro,
			Summary:   "Stop recording the keyboard macro",
			HandlerID: "end-keyboard-macro",
		},
		{
			Name:      "call-last-keyboard-macro",
			Aliases:   []string{"kmacro-call"},
			Category:  CategoryMacro,
			Summary:   "Replay the last recorded keyboard macro n times",
			HandlerID: "call-last-keyboard-macro",
		},
		{
			Name:      "universal-argument",
			Aliases:   []string{"prefix-arg"},
			Category:  CategoryUtility,
			Summary:   "Begin or extend the numeric argument for the next command (spec §4.2)",
			HandlerID: "universal-argument",
		},
		{
			Name:      "keyboard-quit",
			Aliases:   []string{"abort"},
			Category:  CategoryUtility,
			Summary:   "Cancel the command in progress",
			HandlerID: "keyboard-quit",
		},
		{
			Name:      "quit",
			Aliases:   []string{"exit"},
			Category:  CategoryUtility,
			Summary:   "Exit the editor",
			HandlerID: "quit",
		},
	})
}

// DefaultRegistry is the singleton registry containing all built-in commands.
var DefaultRegistry = NewRegistry()

// Validate ensures the provided command metadata is internally consistent.
func Validate(commands []Info) error {
	seen := make(map[string]struct{})
	for i := range commands {
		cmd := &commands[i]
		if err := validateCommand(cmd, seen); err != nil {
			return err
		}
	}
	return nil
}

func validateCommand(cmd *Info, seen map[string]struct{}) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate command name or alias: %s", n)
		}
		seen[key] = struct{}{}
	}
	if strings.TrimSpace(cmd.Summary) == "" {
		return fmt.Errorf("command summary missing for %s", cmd.Name)
	}
	if !cmd.Hidden && strings.TrimSpace(cmd.HandlerID) == "" {
		return fmt.Errorf("handler ID missing for %s", cmd.Name)
	}
	return validateSubcommands(cmd)
}

func validateSubcommands(cmd *Info) error {
	subSeen := make(map[string]struct{})
	for _, sub := range cmd.Subcommands {
		if strings.TrimSpace(sub.Name) == "" {
			return fmt.Errorf("subcommand name cannot be empty for %s", cmd.Name)
		}
		subKey := strings.ToLower(sub.Name)
		if _, ok := subSeen[subKey]; ok {
			return fmt.Errorf("duplicate subcommand %s under %s", sub.Name, cmd.Name)
		}
		subSeen[subKey] = struct{}{}
		if strings.TrimSpace(sub.Summary) == "" {
			return fmt.Errorf("subcommand summary missing for %s -> %s", cmd.Name, sub.Name)
		}
	}
	return nil
}
