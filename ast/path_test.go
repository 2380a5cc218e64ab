// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/go-json5/json5parse"
	"github.com/go-json5/json5parse/ast"
	"github.com/google/go-cmp/cmp"
)

const pathTestJSON = `{
	"a": [1, 2, {"b": "c"}],
	"d": {"e": null}
}`

func TestGetNodePath(t *testing.T) {
	root, errs := ast.ParseTree(pathTestJSON, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}

	nested := ast.FindNodeAtLocation(root, []any{"a", 2, "b"})
	if nested == nil {
		t.Fatal("FindNodeAtLocation(a,2,b) = nil")
	}
	if diff := cmp.Diff([]any{"a", 2, "b"}, ast.GetNodePath(nested)); diff != "" {
		t.Errorf("GetNodePath mismatch (-want +got):\n%s", diff)
	}

	// Round-trip: finding the node at a node's own path returns that node.
	if got := ast.FindNodeAtLocation(root, ast.GetNodePath(nested)); got != nested {
		t.Errorf("round-trip FindNodeAtLocation(GetNodePath(n)) = %p, want %p", got, nested)
	}
}

func TestFindNodeAtLocationMisses(t *testing.T) {
	root, errs := ast.ParseTree(pathTestJSON, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}
	tests := []struct {
		name string
		path []any
	}{
		{"NoSuchKey", []any{"nope"}},
		{"IndexOutOfRange", []any{"a", 99}},
		{"StringIntoArray", []any{"a", "nope"}},
		{"IntIntoScalar", []any{"a", 0, 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ast.FindNodeAtLocation(root, test.path); got != nil {
				t.Errorf("FindNodeAtLocation(%v) = %v, want nil", test.path, got)
			}
		})
	}
}

func TestFindNodeAtLocationPanicsOnBadSegment(t *testing.T) {
	root, _ := ast.ParseTree(pathTestJSON, json5.Options{})
	mtest.MustPanic(t, func() {
		ast.FindNodeAtLocation(root, []any{3.14})
	})
}

func TestFindNodeAtOffset(t *testing.T) {
	const input = `{"x": [10, 20]}`
	root, errs := ast.ParseTree(input, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}
	// Offset of the "20" literal.
	offset := len(`{"x": [10, `)
	n := ast.FindNodeAtOffset(root, offset, false)
	if n == nil || n.Value != 20.0 {
		t.Errorf("FindNodeAtOffset(%d) = %v, want the 20 literal", offset, n)
	}
}
