// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

// A path from a tree's root to one of its nodes is a []any of segments,
// each either a property name (string) or an array index (non-negative int).

// GetNodePath walks n's parent pointers and returns the sequence of
// property names and array indices from the root to n, generalizing the
// string/int path-element dispatch of the teacher's ast/cursor package's
// Cursor.Down to operate over *Node instead of ast.Value.
func GetNodePath(n *Node) []any {
	var rev []any
	for n != nil && n.Parent != nil {
		p := n.Parent
		switch {
		case n.Kind == PropertyKind:
			rev = append(rev, n.Key())
		case p.Kind == ArrayKind:
			for i, c := range p.Children {
				if c == n {
					rev = append(rev, i)
					break
				}
			}
		}
		n = p
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// FindNodeAtLocation walks root following path, matching string segments
// against an object's property keys and int segments against an array's
// indices, returning a property's value node rather than the property
// itself. It returns nil on any miss: a non-existent key, an out-of-range
// index, or a segment of the wrong shape for the node at that depth.
//
// FindNodeAtLocation panics if a path element is not a string or an int,
// matching the teacher's Cursor.Down reserving panic for an invalid path
// element type.
func FindNodeAtLocation(root *Node, path []any) *Node {
	n := root
	for _, seg := range path {
		if n == nil {
			return nil
		}
		switch s := seg.(type) {
		case string:
			if n.Kind != ObjectKind {
				return nil
			}
			var next *Node
			for _, c := range n.Children {
				if c.Kind == PropertyKind && c.Key() == s {
					next = c.PropertyValue()
					break
				}
			}
			n = next
		case int:
			if n.Kind != ArrayKind || s < 0 || s >= len(n.Children) {
				return nil
			}
			n = n.Children[s]
		default:
			panic("invalid path element type")
		}
	}
	return n
}

// FindNodeAtOffset descends, scanning each level's children in order, to
// the innermost node whose span contains offset. With includeRightBound, a node's span is treated as
// closed ([offset, offset+length]) rather than half-open, so a query
// landing exactly on a closing delimiter still resolves into the node
// rather than falling through to its parent.
func FindNodeAtOffset(root *Node, offset int, includeRightBound bool) *Node {
	if root == nil || !spanContains(root, offset, includeRightBound) {
		return nil
	}
	cur := root
	for {
		var next *Node
		for _, c := range cur.Children {
			if spanContains(c, offset, includeRightBound) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}

func spanContains(n *Node, offset int, includeRightBound bool) bool {
	end := n.Offset + n.Length
	if includeRightBound {
		return offset >= n.Offset && offset <= end
	}
	return offset >= n.Offset && offset < end
}
