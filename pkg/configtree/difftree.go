package configtree

import (
	"fmt"
	"strings"
)

// DiffTree is the composed diff workflow for turning one tree into another
// with a minimal command script. It exposes the added/removed/common
// branches as trees plus the Delete tree, which is the Removed branch
// trimmed against the post-change state so deletions never target tag
// instances that still exist.
type DiffTree struct {
	Left  *Tree
	Right *Tree

	Full   *Tree
	Add    *Tree
	Sub    *Tree
	Inter  *Tree
	Delete *Tree
}

// NewDiffTree computes the diff of left and right at path. Unlike Diff, a
// non-empty path must resolve in both trees. Nil inputs are treated as
// empty trees.
func NewDiffTree(path []string, left, right *Tree) (*DiffTree, error) {
	if left == nil {
		left = New()
	}
	if right == nil {
		right = New()
	}
	if len(path) > 0 {
		if !left.Exists(path) {
			return nil, &EngineError{Msg: fmt.Sprintf("path [%s] doesn't exist in lhs tree", strings.Join(path, " "))}
		}
		if !right.Exists(path) {
			return nil, &EngineError{Msg: fmt.Sprintf("path [%s] doesn't exist in rhs tree", strings.Join(path, " "))}
		}
	}

	res, err := Diff(path, left, right)
	if err != nil {
		return nil, err
	}

	ref := right
	if len(path) > 0 {
		ref, err = right.GetSubtree(path, true)
		if err != nil {
			return nil, err
		}
	}

	return &DiffTree{
		Left:   left,
		Right:  right,
		Full:   res.Full,
		Add:    res.Added,
		Sub:    res.Removed,
		Inter:  res.Common,
		Delete: Trim(res.Removed, ref),
	}, nil
}

// Commands returns the command script transforming Left into Right:
// delete commands for the trimmed removal tree followed by set commands for
// the added tree. Deletions come first so that replacing a value on the
// same path never transiently collides.
func (d *DiffTree) Commands() string {
	var b strings.Builder
	b.WriteString(d.Delete.ToCommands("delete"))
	b.WriteString(d.Add.ToCommands("set"))
	return b.String()
}
