// Package command provides the built-in command catalog and its
// metadata: names, aliases, categories, and usage strings, independent
// of how a command is actually bound or dispatched (spec §4.2, §6).
package command

// Category groups related built-in commands for help listings.
type Category string

const (
	CategoryMovement Category = "movement"
	CategoryEditing  Category = "editing"
	CategorySearch   Category = "search"
	CategoryReplace  Category = "replace"
	CategoryBuffer   Category = "buffer"
	CategoryFile     Category = "file"
	CategoryMode     Category = "mode"
	CategoryMacro    Category = "macro"
	CategoryRing     Category = "ring"
	CategoryUtility  Category = "utility"
)

// Info captures metadata for one built-in command.
type Info struct {
	Name        string
	Aliases     []string
	Category    Category
	Summary     string
	Usage       []string
	Examples    []string
	Hidden      bool
	Subcommands []SubcommandInfo
	HandlerID   string
}

// SubcommandInfo describes a named variant of a built-in command (e.g.
// the query-replace prompt responses).
type SubcommandInfo struct {
	Name     string
	Summary  string
	Usage    []string
	Examples []string
	Hidden   bool
}

func (c *Info) clone() Info {
	clone := Info{
		Name:      c.Name,
		Aliases:   append([]string(nil), c.Aliases...),
		Category:  c.Category,
		Summary:   c.Summary,
		Usage:     append([]string(nil), c.Usage...),
		Examples:  append([]string(nil), c.Examples...),
		Hidden:    c.Hidden,
		HandlerID: c.HandlerID,
	}
	if len(c.Subcommands) > 0 {
		clone.Subcommands = make([]SubcommandInfo, len(c.Subcommands))
		for i, sc := range c.Subcommands {
			clone.Subcommands[i] = (&sc).clone()
		}
	}
	return clone
}

func (s *SubcommandInfo) clone() SubcommandInfo {
	return SubcommandInfo{
		Name:     s.Name,
		Summary:  s.Summary,
		Usage:    append([]string(nil), s.Usage...),
		Examples: append([]string(nil), s.Examples...),
		Hidden:   s.Hidden,
	}
}
