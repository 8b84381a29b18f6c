package configtree

import (
	"encoding/json"
	"fmt"
)

// ToJSON renders the tree as compact JSON: scalar nodes become strings,
// multi-value nodes arrays, and container nodes objects. Tag parents are
// plain objects whose keys are the instance names; the tag flag and value
// arity are not representable in JSON, so this form is lossy. Use
// ToJSONAst for the lossless variant.
func (t *Tree) ToJSON() (string, error) {
	data, err := json.Marshal(nodeJSON(t.root))
	if err != nil {
		return "", fmt.Errorf("encode tree: %w", err)
	}
	return string(data), nil
}

func nodeJSON(n *Node) interface{} {
	if len(n.Children) > 0 {
		obj := make(map[string]interface{}, len(n.Children))
		for _, child := range n.Children {
			obj[child.Name] = nodeJSON(child)
		}
		return obj
	}
	switch len(n.Values) {
	case 0:
		return map[string]interface{}{}
	case 1:
		return n.Values[0]
	default:
		return n.Values
	}
}

// astNode is the JSON-AST shape: a structure-preserving dump that retains
// the tag flag and value arity per node.
type astNode struct {
	Name     string    `json:"name"`
	Values   []string  `json:"values,omitempty"`
	Tag      bool      `json:"tag,omitempty"`
	Children []astNode `json:"children,omitempty"`
}

// ToJSONAst renders the tree as a lossless structural JSON dump, for
// tooling that needs the tag/arity distinctions ToJSON discards.
func (t *Tree) ToJSONAst() (string, error) {
	data, err := json.Marshal(nodeAST(t.root))
	if err != nil {
		return "", fmt.Errorf("encode tree ast: %w", err)
	}
	return string(data), nil
}

func nodeAST(n *Node) astNode {
	a := astNode{
		Name:   n.Name,
		Values: n.Values,
		Tag:    n.Tag,
	}
	for _, child := range n.Children {
		a.Children = append(a.Children, nodeAST(child))
	}
	return a
}
