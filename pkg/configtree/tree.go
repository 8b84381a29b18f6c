package configtree

// Tree owns a configuration tree: a root node with an empty name plus the
// verbatim version banner carried outside the structural tree. A Tree
// exclusively owns its node graph; operations that hand out subtrees always
// deep-copy, so no node is ever shared between two trees. A Tree is not safe
// for concurrent mutation.
type Tree struct {
	root    *Node
	version string
	hooks   []MutationFunc
}

// MutationFunc observes successful mutations. It receives the operation
// name ("set", "delete", "delete-value", "rename", "copy", "set-tag"), the
// path, and any further string arguments of the operation.
type MutationFunc func(op string, path []string, args ...string)

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: &Node{}}
}

// FromNode wraps an already-built node graph as a new tree, taking
// ownership. The node becomes the root and its name is cleared. Callers
// must not retain references into the graph.
func FromNode(root *Node) *Tree {
	if root == nil {
		root = &Node{}
	}
	root.Name = ""
	return &Tree{root: root}
}

// Root returns the root node. The tree retains ownership.
func (t *Tree) Root() *Node {
	return t.root
}

// Version returns the verbatim version banner, if any.
func (t *Tree) Version() string {
	return t.version
}

// SetVersion replaces the version banner.
func (t *Tree) SetVersion(v string) {
	t.version = v
}

// Observe attaches a hook invoked after each successful mutation. Hooks run
// in attachment order.
func (t *Tree) Observe(hook MutationFunc) {
	t.hooks = append(t.hooks, hook)
}

func (t *Tree) notify(op string, path []string, args ...string) {
	for _, hook := range t.hooks {
		hook(op, path, args...)
	}
}

// resolve walks the path from the root, returning nil if any component is
// missing. An empty path resolves to the root itself.
func (t *Tree) resolve(path []string) *Node {
	node := t.root
	for _, name := range path {
		node = node.FindChild(name)
		if node == nil {
			return nil
		}
	}
	return node
}

// makePath walks the path from the root, creating missing nodes along the
// way, and returns the final node.
func (t *Tree) makePath(path []string) *Node {
	node := t.root
	for _, name := range path {
		child := node.FindChild(name)
		if child == nil {
			child = &Node{Name: name}
			node.Children = append(node.Children, child)
		}
		node = child
	}
	return node
}

// Exists reports whether the path resolves to a node, regardless of its
// value state. The empty path is the root and always exists.
func (t *Tree) Exists(path []string) bool {
	return t.resolve(path) != nil
}

// Set stores a value at the path, creating intermediate nodes as needed.
// With replace true the value supersedes any existing values; with replace
// false it is appended, building a multi-value node. Duplicate values are
// kept.
func (t *Tree) Set(path []string, value string, replace bool) error {
	if len(path) == 0 {
		return errEmptyPath("set")
	}
	node := t.makePath(path)
	if replace {
		node.Values = []string{value}
	} else {
		node.Values = append(node.Values, value)
	}
	t.notify("set", path, value)
	return nil
}

// SetValueless ensures a node exists at the path without touching its
// values, creating intermediate nodes as needed.
func (t *Tree) SetValueless(path []string) error {
	if len(path) == 0 {
		return errEmptyPath("set")
	}
	t.makePath(path)
	t.notify("set", path)
	return nil
}

// Delete removes the node at the path together with its subtree. Deleting a
// path that does not resolve is a no-op, making deletion idempotent.
func (t *Tree) Delete(path []string) error {
	if len(path) == 0 {
		return errEmptyPath("delete")
	}
	parent := t.resolve(path[:len(path)-1])
	if parent == nil {
		return nil
	}
	if parent.detachChild(path[len(path)-1]) {
		t.notify("delete", path)
	}
	return nil
}

// DeleteValue removes one matching value from the node at the path, leaving
// the node valueless if it was the last one. Removing a value that is not
// present is a no-op; a missing node is an error.
func (t *Tree) DeleteValue(path []string, value string) error {
	if len(path) == 0 {
		return errEmptyPath("delete-value")
	}
	node := t.resolve(path)
	if node == nil {
		return &NotFoundError{Path: path}
	}
	for i, v := range node.Values {
		if v == value {
			node.Values = append(node.Values[:i], node.Values[i+1:]...)
			break
		}
	}
	t.notify("delete-value", path, value)
	return nil
}

// Rename changes the final path component to newName, keeping the node's
// position among its siblings.
func (t *Tree) Rename(path []string, newName string) error {
	if len(path) == 0 {
		return errEmptyPath("rename")
	}
	parent := t.resolve(path[:len(path)-1])
	if parent == nil || parent.FindChild(path[len(path)-1]) == nil {
		return &NotFoundError{Path: path}
	}
	newPath := append(append([]string(nil), path[:len(path)-1]...), newName)
	if parent.FindChild(newName) != nil {
		return &ConflictError{Path: newPath}
	}
	parent.FindChild(path[len(path)-1]).Name = newName
	t.notify("rename", path, newName)
	return nil
}

// Copy deep-copies the subtree at oldPath to newPath, creating intermediate
// nodes of newPath as needed. The target must not already exist.
func (t *Tree) Copy(oldPath, newPath []string) error {
	if len(oldPath) == 0 || len(newPath) == 0 {
		return errEmptyPath("copy")
	}
	src := t.resolve(oldPath)
	if src == nil {
		return &NotFoundError{Path: oldPath}
	}
	if t.resolve(newPath) != nil {
		return &ConflictError{Path: newPath}
	}
	parent := t.makePath(newPath[:len(newPath)-1])
	clone := src.Clone()
	clone.Name = newPath[len(newPath)-1]
	parent.Children = append(parent.Children, clone)
	t.notify("copy", oldPath, newPath...)
	return nil
}

// ListNodes returns the names of the children at the path in insertion
// order.
func (t *Tree) ListNodes(path []string) ([]string, error) {
	node := t.resolve(path)
	if node == nil {
		return nil, &NotFoundError{Path: path}
	}
	return node.ChildNames(), nil
}

// ReturnValue returns the first value of the node at the path. A missing or
// valueless node is an error.
func (t *Tree) ReturnValue(path []string) (string, error) {
	if len(path) == 0 {
		return "", errEmptyPath("return-value")
	}
	node := t.resolve(path)
	if node == nil || len(node.Values) == 0 {
		return "", &NotFoundError{Path: path}
	}
	return node.Values[0], nil
}

// ReturnValues returns all values of the node at the path in insertion
// order. A missing or valueless node is an error.
func (t *Tree) ReturnValues(path []string) ([]string, error) {
	if len(path) == 0 {
		return nil, errEmptyPath("return-values")
	}
	node := t.resolve(path)
	if node == nil || len(node.Values) == 0 {
		return nil, &NotFoundError{Path: path}
	}
	return append([]string(nil), node.Values...), nil
}

// IsTag reports whether the node at the path sits under a tag parent, that
// is, whether the parent of the final path component addresses its children
// as tag instances. An unresolved path reports false.
func (t *Tree) IsTag(path []string) bool {
	if len(path) == 0 {
		return false
	}
	parent := t.resolve(path[:len(path)-1])
	if parent == nil || parent.FindChild(path[len(path)-1]) == nil {
		return false
	}
	return parent.Tag
}

// SetTag marks the node at the path as a tag parent: its children become
// named instances of a repeatable construct.
func (t *Tree) SetTag(path []string) error {
	if len(path) == 0 {
		return errEmptyPath("set-tag")
	}
	node := t.resolve(path)
	if node == nil {
		return &NotFoundError{Path: path}
	}
	node.Tag = true
	t.notify("set-tag", path)
	return nil
}

// GetSubtree returns an independently owned copy of the subtree at the
// path. With withNode true the final path component becomes the sole child
// of the new root, preserving its name and tag flag; with withNode false
// only its children are promoted to the root. The empty path copies the
// whole tree.
func (t *Tree) GetSubtree(path []string, withNode bool) (*Tree, error) {
	node := t.resolve(path)
	if node == nil {
		return nil, &NotFoundError{Path: path}
	}
	if len(path) == 0 || !withNode {
		root := &Node{Tag: node.Tag}
		for _, child := range node.Children {
			root.Children = append(root.Children, child.Clone())
		}
		return &Tree{root: root}, nil
	}
	parent := t.resolve(path[:len(path)-1])
	root := &Node{Tag: parent.Tag}
	root.Children = []*Node{node.Clone()}
	return &Tree{root: root}, nil
}

// Clone returns a deep copy of the whole tree, including the version
// banner. Hooks are not carried over.
func (t *Tree) Clone() *Tree {
	return &Tree{root: t.root.Clone(), version: t.version}
}

// Equal reports whether two trees are structurally identical: same values,
// children sets, and tag flags. Child order and the version banner are not
// part of equality.
func (t *Tree) Equal(other *Tree) bool {
	return t.root.Equal(other.root)
}
