// Package nix provides a lossless, error-tolerant syntax tree for Nix
// source files. The tree is purely structural: no evaluation, no import
// resolution. Malformed regions are represented as error nodes so that
// the rest of a file remains walkable.
package nix

import "fmt"

// Kind identifies the syntactic category of a node.
type Kind int

const (
	KindRoot Kind = iota
	KindAttrSet
	KindAttrPathValue
	KindAttrPath
	KindIdent
	KindDynamic
	KindString
	KindIndentString
	KindInteger
	KindFloat
	KindPath
	KindList
	KindApply
	KindSelect
	KindLambda
	KindPattern
	KindLetIn
	KindWith
	KindAssert
	KindInherit
	KindIf
	KindParen
	KindBinaryOp
	KindUnaryOp
	KindError
)

var kindNames = map[Kind]string{
	KindRoot:          "root",
	KindAttrSet:       "attrset",
	KindAttrPathValue: "attrpath_value",
	KindAttrPath:      "attrpath",
	KindIdent:         "ident",
	KindDynamic:       "dynamic",
	KindString:        "string",
	KindIndentString:  "indent_string",
	KindInteger:       "integer",
	KindFloat:         "float",
	KindPath:          "path",
	KindList:          "list",
	KindApply:         "apply",
	KindSelect:        "select",
	KindLambda:        "lambda",
	KindPattern:       "pattern",
	KindLetIn:         "let_in",
	KindWith:          "with",
	KindAssert:        "assert",
	KindInherit:       "inherit",
	KindIf:            "if",
	KindParen:         "paren",
	KindBinaryOp:      "binary_op",
	KindUnaryOp:       "unary_op",
	KindError:         "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line   int
	Column int
}

// Node is one node of the syntax tree. Nodes carry their byte range in
// the original source so the raw text of any subtree can be recovered.
type Node struct {
	Kind      Kind
	Children  []*Node
	StartByte int
	EndByte   int
	Start     Position
}

// Text returns the raw source text covered by the node.
func (n *Node) Text(src []byte) string {
	if n == nil || n.StartByte < 0 || n.EndByte > len(src) || n.StartByte > n.EndByte {
		return ""
	}
	return string(src[n.StartByte:n.EndByte])
}

// ChildCount returns the number of child nodes.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FindChild returns the first direct child of the given kind.
func (n *Node) FindChild(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// FindChildren returns all direct children of the given kind.
func (n *Node) FindChildren(kind Kind) []*Node {
	var out []*Node
	if n == nil {
		return out
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Walk calls visitor for the node and, when visitor returns true,
// recurses into its children.
func Walk(n *Node, visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visitor)
	}
}

// ParseError describes a region the parser could not understand. The
// corresponding subtree is present in the tree as a KindError node.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e ParseError) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Tree is the result of parsing one file.
type Tree struct {
	Root   *Node
	Errors []ParseError
}
