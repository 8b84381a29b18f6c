package configtree

import (
	"strings"
)

// DiffResult holds the structural difference of two trees as three
// independently owned trees sharing the usual path addressing: Added holds
// what only the right tree has (or changed values, new side), Removed what
// only the left tree has (or changed values, old side), and Common the
// unchanged intersection. Full combines copies of the three branches under
// the top-level nodes "add", "sub", and "inter".
type DiffResult struct {
	Added   *Tree
	Removed *Tree
	Common  *Tree
	Full    *Tree
}

// Diff computes the structural difference of two trees, restricted to the
// subtree at path (the empty path compares whole trees). When path is not
// empty the result trees contain the final path component as their sole top
// node, mirroring GetSubtree with withNode true. A path that resolves in
// neither tree is an error. Nil inputs are treated as empty trees.
func Diff(path []string, left, right *Tree) (*DiffResult, error) {
	if left == nil {
		left = New()
	}
	if right == nil {
		right = New()
	}

	lroot, rroot := left.root, right.root
	if len(path) > 0 {
		lnode := left.resolve(path)
		rnode := right.resolve(path)
		if lnode == nil && rnode == nil {
			return nil, &NotFoundError{Path: path}
		}
		lroot = wrapForDiff(lnode)
		rroot = wrapForDiff(rnode)
	}

	added, removed, common := diffNodes(lroot, rroot)
	res := &DiffResult{
		Added:   FromNode(added),
		Removed: FromNode(removed),
		Common:  FromNode(common),
	}
	res.Full = FromNode(&Node{Children: []*Node{
		{Name: "add", Children: cloneChildren(res.Added.root)},
		{Name: "sub", Children: cloneChildren(res.Removed.root)},
		{Name: "inter", Children: cloneChildren(res.Common.root)},
	}})
	return res, nil
}

// wrapForDiff puts a node under a fresh anonymous root so both sides of the
// comparison start from matching roots. A nil node yields an empty root.
func wrapForDiff(n *Node) *Node {
	if n == nil {
		return &Node{}
	}
	return &Node{Children: []*Node{n}}
}

func cloneChildren(n *Node) []*Node {
	if n == nil {
		return nil
	}
	children := make([]*Node, len(n.Children))
	for i, child := range n.Children {
		children[i] = child.Clone()
	}
	return children
}

// diffNodes walks a pair of same-named nodes in lock-step and returns the
// added, removed, and common projections, each nil when empty. A subtree
// identical on both sides is copied whole into common; a changed node is
// recreated on the branches its differences belong to, with its tag flag
// preserved on every branch that contains it.
func diffNodes(l, r *Node) (added, removed, common *Node) {
	if l.Equal(r) {
		return nil, nil, l.Clone()
	}

	added = &Node{Name: r.Name, Tag: r.Tag}
	removed = &Node{Name: l.Name, Tag: l.Tag}
	common = &Node{Name: l.Name, Tag: l.Tag || r.Tag}

	// A node's own value diff is independent of its children's structural
	// diff: changed values split old/new across removed/added, unchanged
	// values stay in common.
	if stringsEqual(l.Values, r.Values) {
		common.Values = append([]string(nil), l.Values...)
	} else {
		removed.Values = append([]string(nil), l.Values...)
		added.Values = append([]string(nil), r.Values...)
	}

	for _, lc := range l.Children {
		rc := r.FindChild(lc.Name)
		if rc == nil {
			removed.Children = append(removed.Children, lc.Clone())
			continue
		}
		a, s, c := diffNodes(lc, rc)
		if a != nil {
			added.Children = append(added.Children, a)
		}
		if s != nil {
			removed.Children = append(removed.Children, s)
		}
		if c != nil {
			common.Children = append(common.Children, c)
		}
	}
	for _, rc := range r.Children {
		if l.FindChild(rc.Name) == nil {
			added.Children = append(added.Children, rc.Clone())
		}
	}

	return pruneEmpty(added), pruneEmpty(removed), pruneEmpty(common)
}

func pruneEmpty(n *Node) *Node {
	if len(n.Values) == 0 && len(n.Children) == 0 {
		return nil
	}
	return n
}

// Trim prunes a deletion candidate tree (the Removed branch of a diff)
// against a reference tree (the post-change state at the same path),
// producing the minimal tree of deletions consistent with the target state:
//   - a node absent from the reference collapses to a bare marker, so its
//     whole subtree is deleted with a single command;
//   - a node still present recurses into its children, which keeps a tag
//     parent alive while targeting only the instances that truly vanished;
//   - removed values of a surviving pure leaf collapse to a bare marker
//     (delete then re-set), while a surviving node with structure keeps
//     them for value-targeted deletion.
func Trim(sub, reference *Tree) *Tree {
	if sub == nil {
		return New()
	}
	if reference == nil {
		reference = New()
	}
	root := trimNode(sub.root, reference.root)
	if root == nil {
		root = &Node{}
	}
	return FromNode(root)
}

func trimNode(s, r *Node) *Node {
	out := &Node{Name: s.Name, Tag: s.Tag}

	for _, sc := range s.Children {
		rc := r.FindChild(sc.Name)
		if rc == nil {
			out.Children = append(out.Children, &Node{Name: sc.Name, Tag: sc.Tag})
			continue
		}
		if t := trimNode(sc, rc); t != nil {
			out.Children = append(out.Children, t)
		}
	}

	if len(s.Values) > 0 {
		if len(r.Children) == 0 && len(out.Children) == 0 {
			// The surviving node is a pure leaf: one bare delete removes
			// the whole old value set before the add branch re-sets it.
			return out
		}
		out.Values = append([]string(nil), s.Values...)
		return out
	}

	if len(out.Children) > 0 {
		return out
	}
	return nil
}

// Union deep-merges two trees into a new one. Nodes present on both sides
// have their value sequences concatenated (duplicates kept) and their
// children unioned recursively; a node present on one side only is copied
// whole. Tag flags combine with a logical OR. Nil inputs are treated as
// empty trees.
func Union(left, right *Tree) *Tree {
	if left == nil {
		left = New()
	}
	if right == nil {
		right = New()
	}
	root := left.root.Clone()
	mergeNode(root, right.root)
	return FromNode(root)
}

// mergeNode merges src into dst in place. dst is exclusively owned by the
// union result; src is only read.
func mergeNode(dst, src *Node) {
	dst.Tag = dst.Tag || src.Tag
	dst.Values = append(dst.Values, src.Values...)
	for _, sc := range src.Children {
		if dc := dst.FindChild(sc.Name); dc != nil {
			mergeNode(dc, sc)
		} else {
			dst.Children = append(dst.Children, sc.Clone())
		}
	}
}

// ShowDiff renders the difference between two trees. With commands false
// the full three-way structure (add/sub/inter) is returned as config text;
// with commands true the result is a delete-then-set command script that
// transforms left into right.
func ShowDiff(path []string, left, right *Tree, commands bool) (string, error) {
	if left == nil {
		left = New()
	}
	if right == nil {
		right = New()
	}
	if len(path) > 0 && !left.Exists(path) && !right.Exists(path) {
		return "", &NotFoundError{Path: path}
	}

	res, err := Diff(path, left, right)
	if err != nil {
		return "", err
	}
	if !commands {
		return res.Full.ToText(false), nil
	}

	ref := right
	if len(path) > 0 {
		if right.Exists(path) {
			ref, err = right.GetSubtree(path, true)
			if err != nil {
				return "", err
			}
		} else {
			ref = New()
		}
	}
	del := Trim(res.Removed, ref)
	var b strings.Builder
	b.WriteString(del.ToCommands("delete"))
	b.WriteString(res.Added.ToCommands("set"))
	return b.String(), nil
}
