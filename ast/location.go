// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/go-json5/json5parse"

// A Location describes where an offset in a JSON5 document sits relative
// to the document's structure, for editor-style "what's under the cursor"
// queries: completion, hover, and similar.
type Location struct {
	// Path is the sequence of property names and array indices leading to
	// the construct enclosing the queried offset. Its innermost segment is
	// "" when the offset sits in a property-key slot but no name has been
	// typed there yet.
	Path []any

	// IsAtPropertyKey reports whether the offset sits where a property
	// name is expected, rather than a value.
	IsAtPropertyKey bool

	// PreviousNode is the most recently completed key or value node
	// scanned strictly before the offset, or nil if there is none.
	PreviousNode *Node
}

// Matches reports whether l.Path matches pattern, where a "*" pattern
// segment matches exactly one path segment of either shape, and "**"
// matches zero or more contiguous segments.
func (l Location) Matches(pattern []any) bool {
	return matchSegments(l.Path, pattern)
}

func matchSegments(path, pattern []any) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if s, ok := pattern[0].(string); ok && s == "**" {
		if matchSegments(path, pattern[1:]) {
			return true
		}
		return len(path) > 0 && matchSegments(path[1:], pattern)
	}
	if len(path) == 0 {
		return false
	}
	if s, ok := pattern[0].(string); ok && s == "*" {
		return matchSegments(path[1:], pattern[1:])
	}
	if path[0] != pattern[0] {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}

// GetLocation replays text's token stream up to offset and reports where
// offset sits relative to the structure scanned so far. It has no direct
// counterpart in the retrieval pack's Go sources; it is new code against
// spec.md §4.7, reusing the already-grounded Visit/Scanner machinery (see
// DESIGN.md).
func GetLocation(text string, offset int) Location {
	l := &locator{position: offset}
	json5.Visit(text, l, json5.Options{AllowEmptyContent: true})
	path := append([]any(nil), l.segments...)
	return Location{Path: path, IsAtPropertyKey: l.isAtPropertyKey, PreviousNode: l.previousNode}
}

// locator is a json5.Visitor that stops updating its state once the
// scanned position reaches or passes the queried offset, so the recorded
// segments/previousNode/isAtPropertyKey reflect the document as it stood
// just before the cursor.
type locator struct {
	json5.NopVisitor

	position        int
	segments        []any
	isAtPropertyKey bool
	previousNode    *Node
	containers      []Kind
	done            bool
}

func (l *locator) pastOrAt(offset int) bool {
	if l.position <= offset {
		l.done = true
	}
	return l.done
}

func (l *locator) OnObjectBegin(offset, length, startLine, startCharacter int) {
	if l.done || l.pastOrAt(offset) {
		return
	}
	l.isAtPropertyKey = true
	l.previousNode = nil
	l.containers = append(l.containers, ObjectKind)
}

func (l *locator) OnObjectEnd(offset, length, startLine, startCharacter int) {
	if l.done {
		return
	}
	// Every enclosing container holds exactly one segment; this object
	// holds one of its own only once it has seen a property.
	n := len(l.segments)
	hasSlot := n > 0 && n == len(l.containers)
	if l.pastOrAt(offset) {
		if l.isAtPropertyKey && !hasSlot {
			l.segments = append(l.segments, "")
		}
		return
	}
	l.isAtPropertyKey = false
	l.previousNode = nil
	if hasSlot {
		l.segments = l.segments[:n-1]
	}
	l.containers = l.containers[:len(l.containers)-1]
}

func (l *locator) OnObjectProperty(key string, offset, length, startLine, startCharacter int) {
	if l.done {
		return
	}
	// The innermost object already holds a segment (an earlier key, or the
	// "" a comma left) when it has as many segments as open containers.
	n := len(l.segments)
	hasSlot := n > 0 && n == len(l.containers)
	if l.position < offset {
		if !hasSlot {
			l.segments = append(l.segments, "")
		}
		l.done = true
		return
	}
	l.previousNode = &Node{
		Kind: PropertyKind, Offset: offset, Length: length, ColonOffset: -1,
		Children: []*Node{{Kind: StringKind, Offset: offset, Length: length, Value: key, ColonOffset: -1}},
	}
	l.isAtPropertyKey = true
	if l.position <= offset+length {
		l.done = true
		return
	}
	if hasSlot {
		l.segments[n-1] = key
	} else {
		l.segments = append(l.segments, key)
	}
	l.isAtPropertyKey = false
}

func (l *locator) OnArrayBegin(offset, length, startLine, startCharacter int) {
	if l.done || l.pastOrAt(offset) {
		return
	}
	l.isAtPropertyKey = false
	l.previousNode = nil
	l.segments = append(l.segments, 0)
	l.containers = append(l.containers, ArrayKind)
}

func (l *locator) OnArrayEnd(offset, length, startLine, startCharacter int) {
	if l.done || l.pastOrAt(offset) {
		return
	}
	l.previousNode = nil
	if n := len(l.segments); n > 0 {
		l.segments = l.segments[:n-1]
	}
	l.containers = l.containers[:len(l.containers)-1]
}

func (l *locator) OnLiteralValue(value any, offset, length, startLine, startCharacter int) {
	if l.done {
		return
	}
	if l.position < offset {
		l.done = true
		return
	}
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
	l.previousNode = &Node{Kind: kind, Offset: offset, Length: length, Value: value, ColonOffset: -1}
	if l.position <= offset+length {
		l.done = true
	}
}

func (l *locator) OnSeparator(ch byte, offset, length, startLine, startCharacter int) {
	if l.done || l.pastOrAt(offset) {
		return
	}
	switch ch {
	case ':':
		l.isAtPropertyKey = false
	case ',':
		l.previousNode = nil
		if len(l.containers) > 0 && l.containers[len(l.containers)-1] == ArrayKind {
			if n := len(l.segments); n > 0 {
				if idx, ok := l.segments[n-1].(int); ok {
					l.segments[n-1] = idx + 1
				}
			}
			return
		}
		if n := len(l.segments); n > 0 {
			l.segments = l.segments[:n-1]
		}
		l.segments = append(l.segments, "")
		l.isAtPropertyKey = true
	}
}
