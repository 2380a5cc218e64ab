// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/go-json5/json5parse"

// ParseTree builds a typed syntax tree from text, recovering from syntax
// defects instead of aborting. It always returns a non-nil root: when text
// has no value at all (an empty or entirely unparseable document), an
// empty array node is synthesized, per spec.md §4.6.
//
// ParseTree drives the same fault-tolerant Visitor protocol as json5.Parse,
// grounded on the stack discipline of the teacher's ast.parseHandler in
// ast/parser.go, but builds Node values instead of the teacher's seven
// concrete value types.
func ParseTree(text string, opts json5.Options) (*Node, []json5.Error) {
	b := new(treeBuilder)
	errs := json5.Visit(text, b, opts)
	if b.root == nil {
		b.root = &Node{Kind: ArrayKind, ColonOffset: -1}
	}
	return b.root, errs
}

// treeBuilder is a json5.Visitor that constructs a Node tree. It maintains
// a stack of nodes still open for children: objects and arrays pushed by
// their Begin callback and popped by their End callback, and property
// nodes pushed by OnObjectProperty and popped as soon as their value is
// known (or forced closed when their parent object ends first).
type treeBuilder struct {
	json5.NopVisitor

	stack []*Node
	root  *Node
}

func (b *treeBuilder) top() *Node {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// closeOpenProperty finalizes and attaches a property left on the stack
// without ever receiving a value: the parent object ended, or another
// property began, before this one's value arrived.
func (b *treeBuilder) closeOpenProperty() {
	if p := b.top(); p != nil && p.Kind == PropertyKind && len(p.Children) < 2 {
		b.stack = b.stack[:len(b.stack)-1]
		b.attach(p)
	}
}

// attach delivers a finished node v — a scalar, or a just-closed
// object/array — into whatever construct is now open: a property's value
// slot, an array's next element, or the document root if nothing is open.
func (b *treeBuilder) attach(v *Node) {
	p := b.top()
	if p == nil {
		b.root = v
		return
	}
	v.Parent = p
	switch p.Kind {
	case PropertyKind:
		p.Children = append(p.Children, v)
		p.Length = v.Offset + v.Length - p.Offset
		b.stack = b.stack[:len(b.stack)-1]
		b.attach(p)
	case ObjectKind, ArrayKind:
		p.Children = append(p.Children, v)
	}
}

func (b *treeBuilder) OnObjectBegin(offset, length, startLine, startCharacter int) {
	b.stack = append(b.stack, &Node{Kind: ObjectKind, Offset: offset, ColonOffset: -1})
}

func (b *treeBuilder) OnObjectEnd(offset, length, startLine, startCharacter int) {
	b.closeOpenProperty()
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n.Length = offset + length - n.Offset
	b.attach(n)
}

func (b *treeBuilder) OnArrayBegin(offset, length, startLine, startCharacter int) {
	b.stack = append(b.stack, &Node{Kind: ArrayKind, Offset: offset, ColonOffset: -1})
}

func (b *treeBuilder) OnArrayEnd(offset, length, startLine, startCharacter int) {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n.Length = offset + length - n.Offset
	b.attach(n)
}

func (b *treeBuilder) OnObjectProperty(key string, offset, length, startLine, startCharacter int) {
	b.closeOpenProperty()
	keyNode := &Node{Kind: StringKind, Offset: offset, Length: length, Value: key, ColonOffset: -1}
	prop := &Node{
		Kind:        PropertyKind,
		Offset:      offset,
		Length:      length,
		ColonOffset: -1,
		Children:    []*Node{keyNode},
	}
	keyNode.Parent = prop
	b.stack = append(b.stack, prop)
}

func (b *treeBuilder) OnSeparator(ch byte, offset, length, startLine, startCharacter int) {
	if ch != ':' {
		return
	}
	if p := b.top(); p != nil && p.Kind == PropertyKind {
		p.ColonOffset = offset
	}
}

func (b *treeBuilder) OnLiteralValue(value any, offset, length, startLine, startCharacter int) {
	var kind Kind
	switch value.(type) {
	case string:
		kind = StringKind
	case float64:
		kind = NumberKind
	case bool:
		kind = BooleanKind
	default:
		kind = NullKind
	}
	b.attach(&Node{Kind: kind, Offset: offset, Length: length, Value: value, ColonOffset: -1})
}

// GetNodeValue materializes n into a plain Go value by the same rules as
// json5.Parse: objects become map[string]any, arrays become []any, and
// scalars unwrap to their decoded Value.
func GetNodeValue(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ObjectKind:
		m := make(map[string]any, len(n.Children))
		for _, c := range n.Children {
			m[c.Key()] = GetNodeValue(c.PropertyValue())
		}
		return m
	case ArrayKind:
		a := make([]any, len(n.Children))
		for i, c := range n.Children {
			a[i] = GetNodeValue(c)
		}
		return a
	case PropertyKind:
		return GetNodeValue(n.PropertyValue())
	default:
		return n.Value
	}
}
