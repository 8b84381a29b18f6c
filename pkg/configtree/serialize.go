package configtree

import (
	"fmt"
	"sort"
	"strings"
)

const indentUnit = "    "

// ToText renders the tree as indented curly-brace configuration text.
// orderedValues true keeps multi-value nodes in insertion order; false
// sorts them lexicographically, which callers use for deterministic diffs
// across reorderings. The version banner is appended after a single
// newline.
func (t *Tree) ToText(orderedValues bool) string {
	var b strings.Builder
	renderChildren(&b, t.root, 0, orderedValues)
	if t.version != "" {
		if out := b.String(); out != "" && !strings.HasSuffix(out, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(t.version)
	}
	return b.String()
}

func renderChildren(b *strings.Builder, parent *Node, indent int, orderedValues bool) {
	for _, child := range parent.Children {
		if parent.Tag && parent.Name != "" {
			renderTagInstance(b, parent.Name, child, indent, orderedValues)
		} else {
			renderNode(b, child, indent, orderedValues)
		}
	}
}

func renderNode(b *strings.Builder, n *Node, indent int, orderedValues bool) {
	prefix := strings.Repeat(indentUnit, indent)

	for _, v := range orderValues(n.Values, orderedValues) {
		fmt.Fprintf(b, "%s%s %s\n", prefix, n.Name, quoteValue(v))
	}

	switch {
	case len(n.Children) > 0:
		if n.Tag {
			renderChildren(b, n, indent, orderedValues)
		} else {
			fmt.Fprintf(b, "%s%s {\n", prefix, n.Name)
			renderChildren(b, n, indent+1, orderedValues)
			fmt.Fprintf(b, "%s}\n", prefix)
		}
	case len(n.Values) == 0:
		fmt.Fprintf(b, "%s%s\n", prefix, n.Name)
	}
}

// renderTagInstance renders one child of a tag parent in the inline form
// "parent instance { ... }". The inline form is what makes tag status
// round-trip through text. The instance's own values follow the block as
// "parent instance value" lines; the block comes first so a reparse sees
// the tag form before routing the value lines.
func renderTagInstance(b *strings.Builder, parentName string, inst *Node, indent int, orderedValues bool) {
	prefix := strings.Repeat(indentUnit, indent)
	fmt.Fprintf(b, "%s%s %s {\n", prefix, parentName, quoteValue(inst.Name))
	renderChildren(b, inst, indent+1, orderedValues)
	fmt.Fprintf(b, "%s}\n", prefix)
	for _, v := range orderValues(inst.Values, orderedValues) {
		fmt.Fprintf(b, "%s%s %s %s\n", prefix, parentName, quoteValue(inst.Name), quoteValue(v))
	}
}

func orderValues(values []string, ordered bool) []string {
	if ordered || len(values) < 2 {
		return values
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return sorted
}

// quoteValue returns the value ready for text output, double-quoting it
// when it contains characters that would not survive lexing as a bare word.
func quoteValue(v string) string {
	if !needsQuoting(v) {
		return v
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		switch ch := v[i]; ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			b.WriteByte(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		if !isIdentChar(v[i]) {
			return true
		}
	}
	// A bare "//" would lex as a comment.
	return strings.HasPrefix(v, "//")
}

// ToCommands renders the tree as a replayable command script, one line per
// leaf path: "<op> <path> ['<value>']". op is typically "set" or "delete".
func (t *Tree) ToCommands(op string) string {
	var b strings.Builder
	renderCommands(&b, t.root, op, nil)
	return b.String()
}

func renderCommands(b *strings.Builder, parent *Node, op string, prefix []string) {
	for _, child := range parent.Children {
		path := append(prefix, child.Name)
		for _, v := range child.Values {
			fmt.Fprintf(b, "%s %s %s\n", op, joinPath(path), shellQuote(v))
		}
		if len(child.Children) > 0 {
			renderCommands(b, child, op, path)
		} else if len(child.Values) == 0 {
			fmt.Fprintf(b, "%s %s\n", op, joinPath(path))
		}
	}
}

func joinPath(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		if needsQuoting(p) {
			parts[i] = shellQuote(p)
		} else {
			parts[i] = p
		}
	}
	return strings.Join(parts, " ")
}

// shellQuote wraps a value in single quotes the way the CLI expects,
// escaping embedded single quotes.
func shellQuote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}
