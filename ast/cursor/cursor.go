// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a parsed JSON5 syntax tree.
package cursor

import (
	"fmt"

	"github.com/go-json5/json5parse/ast"
)

// A Cursor is a pointer that navigates into the structure of an *ast.Node.
type Cursor struct {
	org *ast.Node
	stk []*ast.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *ast.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin node of c.
func (c *Cursor) Origin() *ast.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the node currently under the cursor.
func (c *Cursor) Value() *ast.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of nodes from the origin to the
// current location in c.
func (c *Cursor) Path() []*ast.Node {
	return append([]*ast.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from
// the current node, where path elements are either strings (object
// property keys), integers (positions among an array's or object's
// children, negative counting from the end), functions (see below), or
// nil. If the path cannot be completely consumed, traversal stops and an
// error is recorded; use Err to recover it.
//
// If a path element is a string, the current node must be an object, and
// the string resolves one of its properties by key. If this is the last
// element of the path, the property node itself is returned; otherwise
// traversal continues from the property's value. A nil path element
// consumes nothing but steps from a property to its value, so a path
// ending in nil stops on the value instead of the property.
//
// If a path element is an integer, the current node must be an array or
// object, and the integer resolves to a position among its children.
//
// If a path element is a function, it is called with the current node and
// its result becomes the next node. If it reports an error, traversal
// stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		// If the previous step ended on a property, interpret the next
		// path element relative to that property's value.
		if cur.Kind == ast.PropertyKind {
			cur = c.push(cur.PropertyValue())
		}

		switch t := elt.(type) {
		case string:
			if cur.Kind != ast.ObjectKind {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind, t)
			}
			var next *ast.Node
			for _, child := range cur.Children {
				if child.Key() == t {
					next = child
					break
				}
			}
			if next == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			switch cur.Kind {
			case ast.ArrayKind, ast.ObjectKind:
				i, ok := fixArrayBound(len(cur.Children), t)
				if !ok {
					return c.setErrorf("index %d out of bounds (n=%d)", t, len(cur.Children))
				}
				cur = c.push(cur.Children[i])
			default:
				return c.setErrorf("cannot traverse %v with %d", cur.Kind, t)
			}

		case func(*ast.Node) (*ast.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing. The indirection above has already moved from a
			// property to its value, so a trailing nil stops on the value.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *ast.Node) *ast.Node { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
