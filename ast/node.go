// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast builds and navigates typed syntax trees over JSON5 text,
// grounded on the pointer-based *Object/*Member style of the teacher's
// ast/ast.go rather than the value-slice style seen elsewhere in the
// retrieval pack (see DESIGN.md).
package ast

// Kind is the closed set of syntax tree node variants, per spec.md §3: a
// JSON5 value collapses Integer and Number into a single NumberKind.
type Kind uint8

// Constants defining the valid Kind values.
const (
	ObjectKind Kind = iota
	ArrayKind
	PropertyKind
	StringKind
	NumberKind
	BooleanKind
	NullKind
)

var kindStr = [...]string{
	ObjectKind:   "object",
	ArrayKind:    "array",
	PropertyKind: "property",
	StringKind:   "string",
	NumberKind:   "number",
	BooleanKind:  "boolean",
	NullKind:     "null",
}

// String renders the human-readable name of k.
func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[ObjectKind]
}

// A Node is one construct of a parsed JSON5 document. Offset and Length
// locate it in the original source text, in bytes.
//
// An object node's Children are property nodes in source order. An array
// node's Children are value nodes in source order. A property node's first
// child is always a string node holding the decoded key; its second child,
// if present, is the property's value — absent when recovery salvaged the
// key but never found a value (see ColonOffset and spec.md §4.6).
//
// Parent is a weak back-reference: it is assigned once, by the builder,
// and never forms a cycle through Children.
type Node struct {
	Kind     Kind
	Offset   int
	Length   int
	Parent   *Node
	Children []*Node

	// Value holds the decoded scalar for String/Number/Boolean nodes: a
	// string, float64, or bool respectively. Unused by other kinds.
	Value any

	// ColonOffset is the byte offset of a property's ':' separator, or -1
	// if the parser never found one (a recovery outcome).
	ColonOffset int
}

// Key returns the decoded key of a property node, or "" if n is not a
// property.
func (n *Node) Key() string {
	if n.Kind != PropertyKind || len(n.Children) == 0 {
		return ""
	}
	return n.Children[0].Value.(string)
}

// PropertyValue returns a property node's value child, or nil if recovery
// left the property without one.
func (n *Node) PropertyValue() *Node {
	if n.Kind != PropertyKind || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1]
}
