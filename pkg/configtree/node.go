// Package configtree implements the VyOS-style configuration tree: a parser
// for the curly-brace config format, path-addressed mutation, serialization
// to text/commands/JSON, and structural diff/union between trees.
package configtree

// Node is a single element of the configuration tree: a name, zero or more
// ordered values, and an ordered set of uniquely named children. Tag marks
// the node's children as instances of a repeatable construct (for example
// each interface name under "interfaces ethernet") rather than fixed keys.
type Node struct {
	Name     string
	Values   []string
	Children []*Node
	Tag      bool

	// braceDefined tracks, during parsing only, whether this node has been
	// defined by a brace block; a second block under the same name is a
	// duplicate, while value lines merge freely.
	braceDefined bool
}

// FindChild returns the child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildNames returns the names of all children in insertion order.
func (n *Node) ChildNames() []string {
	names := make([]string, len(n.Children))
	for i, child := range n.Children {
		names[i] = child.Name
	}
	return names
}

// attachChild appends child, keeping sibling names unique. It returns the
// existing child unchanged if one with the same name is already present.
func (n *Node) attachChild(child *Node) *Node {
	if existing := n.FindChild(child.Name); existing != nil {
		return existing
	}
	n.Children = append(n.Children, child)
	return child
}

// detachChild removes the child with the given name. It reports whether a
// child was removed.
func (n *Node) detachChild(name string) bool {
	for i, child := range n.Children {
		if child.Name == name {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the node and its entire subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Name:   n.Name,
		Values: append([]string(nil), n.Values...),
		Tag:    n.Tag,
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// isLeaf reports whether the node has no children.
func (n *Node) isLeaf() bool {
	return len(n.Children) == 0
}

// Equal reports whether two subtrees hold the same values, children, and tag
// flags. Child order is ignored: equality is decided on the name-keyed set,
// matching diff semantics, while value order is significant.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Tag != other.Tag {
		return false
	}
	if !stringsEqual(n.Values, other.Values) {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for _, child := range n.Children {
		peer := other.FindChild(child.Name)
		if peer == nil || !child.Equal(peer) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
