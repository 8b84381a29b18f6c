// Package cmdtree defines the canonical CLI command trees for vyconfsh.
//
// This is the single source of truth for tab completion and ? help: when
// adding a new shell command, add it here and it automatically appears in
// completion and help output.
package cmdtree

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node defines a completion tree node. PathArg marks commands whose
// remaining words form a configuration path, completed dynamically from
// the live tree.
type Node struct {
	Desc     string
	Children map[string]*Node
	PathArg  bool
}

// Candidate holds a command name and its description for display.
type Candidate struct {
	Name string
	Desc string
}

// PathFunc returns the child node names at a configuration path. The
// shell supplies one bound to its candidate or active tree.
type PathFunc func(path []string) []string

// OperationalTree defines completion for operational mode.
var OperationalTree = map[string]*Node{
	"configure": {Desc: "Enter configuration mode"},
	"show": {Desc: "Show the active configuration", Children: map[string]*Node{
		"commands": {Desc: "Show as flat set commands"},
	}},
	"exit": {Desc: "Leave the shell"},
	"quit": {Desc: "Leave the shell"},
	"help": {Desc: "Show available commands"},
}

// ConfigTree defines completion for configuration mode.
var ConfigTree = map[string]*Node{
	"set":    {Desc: "Set a configuration value", PathArg: true},
	"delete": {Desc: "Delete a configuration element", PathArg: true},
	"edit":   {Desc: "Descend to a configuration hierarchy level", PathArg: true},
	"top":    {Desc: "Return to the top of the hierarchy"},
	"up":     {Desc: "Go up one hierarchy level"},
	"show": {Desc: "Show the candidate configuration", Children: map[string]*Node{
		"commands": {Desc: "Show as flat set commands"},
	}},
	"compare": {Desc: "Show candidate changes as a command script"},
	"commit":  {Desc: "Apply the candidate configuration"},
	"rollback": {Desc: "Revert to a previous configuration", Children: map[string]*Node{
		"0": {Desc: "Discard uncommitted changes"},
		"1": {Desc: "Revert to the previous commit"},
	}},
	"discard": {Desc: "Drop uncommitted changes"},
	"run":     {Desc: "Run an operational command"},
	"exit":    {Desc: "Leave configuration mode"},
	"quit":    {Desc: "Leave configuration mode"},
	"help":    {Desc: "Show available commands"},
}

// HelpCandidates returns the candidates of a tree's top level for help
// display.
func HelpCandidates(tree map[string]*Node) []Candidate {
	candidates := make([]Candidate, 0, len(tree))
	for name, node := range tree {
		candidates = append(candidates, Candidate{Name: name, Desc: node.Desc})
	}
	return candidates
}

// Complete walks the tree to find completion candidates for the given
// words and partial. Once a PathArg command is entered, the remaining
// words are completed as a configuration path through pathFn.
func Complete(tree map[string]*Node, words []string, partial string, pathFn PathFunc) []Candidate {
	current := tree
	for i, w := range words {
		node, ok := current[w]
		if !ok {
			return nil
		}
		if node.PathArg {
			return completePath(words[i+1:], partial, pathFn)
		}
		if node.Children == nil {
			return nil
		}
		current = node.Children
	}

	var candidates []Candidate
	for name, node := range current {
		if strings.HasPrefix(name, partial) {
			candidates = append(candidates, Candidate{Name: name, Desc: node.Desc})
		}
	}
	return candidates
}

func completePath(path []string, partial string, pathFn PathFunc) []Candidate {
	if pathFn == nil {
		return nil
	}
	var candidates []Candidate
	for _, name := range pathFn(path) {
		if strings.HasPrefix(name, partial) {
			candidates = append(candidates, Candidate{Name: name, Desc: "(configured)"})
		}
	}
	return candidates
}

// WriteHelp prints aligned completion candidates to w. The output is
// built as a single string and written in one call so that readline's
// wrapWriter triggers only one refresh cycle.
func WriteHelp(w io.Writer, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	maxWidth := 20
	for _, c := range candidates {
		if len(c.Name)+2 > maxWidth {
			maxWidth = len(c.Name) + 2
		}
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, c := range candidates {
		if c.Desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
		} else {
			fmt.Fprintf(&sb, "  %s\n", c.Name)
		}
	}
	io.WriteString(w, sb.String())
}

// CommonPrefix returns the longest shared prefix among the given strings.
func CommonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

// Names returns the candidate names in order.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}
