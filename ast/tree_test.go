// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"testing"

	"github.com/go-json5/json5parse"
	"github.com/go-json5/json5parse/ast"
	"github.com/google/go-cmp/cmp"
)

func TestParseTreeEmptyDocument(t *testing.T) {
	root, errs := ast.ParseTree("", json5.Options{AllowEmptyContent: true})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}
	if root == nil || root.Kind != ast.ArrayKind || len(root.Children) != 0 {
		t.Errorf("ParseTree(\"\") = %+v, want an empty array node", root)
	}
}

// TestParseTreeNestedObjectsScalars covers scenario seed 2: two nested
// objects with a NaN-valued and a hex-valued property.
func TestParseTreeNestedObjectsScalars(t *testing.T) {
	const input = `{ 'foo': { 'bar': NaN, "car": +0x1 } }`
	root, errs := ast.ParseTree(input, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}
	if root.Kind != ast.ObjectKind || len(root.Children) != 1 {
		t.Fatalf("root = %+v, want a single-property object", root)
	}

	foo := root.Children[0]
	if foo.Kind != ast.PropertyKind || foo.Key() != "foo" {
		t.Fatalf("root property = %+v, want key %q", foo, "foo")
	}

	inner := foo.PropertyValue()
	if inner == nil || inner.Kind != ast.ObjectKind || len(inner.Children) != 2 {
		t.Fatalf("foo value = %+v, want a two-property object", inner)
	}

	bar, car := inner.Children[0], inner.Children[1]
	if bar.Key() != "bar" {
		t.Errorf("first inner property key = %q, want %q", bar.Key(), "bar")
	}
	if v, ok := bar.PropertyValue().Value.(float64); !ok || !math.IsNaN(v) {
		t.Errorf("bar value = %v, want NaN", bar.PropertyValue().Value)
	}
	if car.Key() != "car" {
		t.Errorf("second inner property key = %q, want %q", car.Key(), "car")
	}
	if diff := cmp.Diff(1.0, car.PropertyValue().Value); diff != "" {
		t.Errorf("car value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTreeInvariants(t *testing.T) {
	const input = `{
		"a": [1, 2, {"b": "c"}],
		"d": {"e": null}
	}`
	root, errs := ast.ParseTree(input, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}

	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n.Offset < 0 || n.Offset+n.Length > len(input) {
			t.Errorf("node %+v span exceeds text bounds %d", n, len(input))
		}
		if n.Kind == ast.ObjectKind {
			for _, c := range n.Children {
				if c.Kind != ast.PropertyKind {
					t.Errorf("object child %+v is not a property node", c)
				}
			}
		}
		if n.Kind == ast.PropertyKind && (len(n.Children) == 0 || n.Children[0].Kind != ast.StringKind) {
			t.Errorf("property %+v has no leading string key child", n)
		}
		for _, c := range n.Children {
			if c.Parent != n {
				t.Errorf("child %+v Parent = %p, want %p", c, c.Parent, n)
			}
			if c.Offset < n.Offset || c.Offset+c.Length > n.Offset+n.Length {
				t.Errorf("child %+v span not nested within parent %+v", c, n)
			}
			walk(c)
		}
	}
	walk(root)
}

func TestGetNodeValue(t *testing.T) {
	const input = `{"a": [1, 2, true], "b": null, "c": "s"}`
	root, errs := ast.ParseTree(input, json5.Options{})
	if len(errs) != 0 {
		t.Fatalf("ParseTree: %v", errs)
	}
	want := map[string]any{
		"a": []any{1.0, 2.0, true},
		"b": nil,
		"c": "s",
	}
	if diff := cmp.Diff(want, ast.GetNodeValue(root)); diff != "" {
		t.Errorf("GetNodeValue mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTreeRecoversUnclosedProperty(t *testing.T) {
	// A property left dangling when its object closes early still attaches
	// with no value child, rather than panicking the builder.
	const input = `{"a": }`
	root, _ := ast.ParseTree(input, json5.Options{})
	if root.Kind != ast.ObjectKind || len(root.Children) != 1 {
		t.Fatalf("root = %+v, want a single-property object", root)
	}
	prop := root.Children[0]
	if prop.PropertyValue() != nil {
		t.Errorf("PropertyValue() = %+v, want nil", prop.PropertyValue())
	}
}

func TestParseTreeRecoversMissingPropertyBeforeEOF(t *testing.T) {
	const input = `{"a": `
	root, errs := ast.ParseTree(input, json5.Options{})
	if len(errs) == 0 {
		t.Fatal("ParseTree: want errors for an unterminated object")
	}
	if root.Kind != ast.ObjectKind || len(root.Children) != 1 {
		t.Fatalf("root = %+v, want a single-property object", root)
	}
	if v := root.Children[0].PropertyValue(); v != nil {
		t.Errorf("PropertyValue() = %+v, want nil", v)
	}
}
