// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`null`, nil},
		{`true`, true},
		{`false`, false},
		{`0`, 0.0},
		{`-0`, math.Copysign(0, -1)},
		{`3.14`, 3.14},
		{`.5`, 0.5},
		{`5.`, 5.0},
		{`0x1F`, 31.0},
		{`Infinity`, math.Inf(1)},
		{`-Infinity`, math.Inf(-1)},
		{`"a b"`, "a b"},
		{`'single'`, "single"},
	}
	for _, test := range tests {
		got, errs := Parse(test.input, Options{})
		if len(errs) != 0 {
			t.Errorf("Parse(%q): unexpected errors %v", test.input, errs)
		}
		if f, ok := test.want.(float64); ok && math.IsNaN(f) {
			if g, ok := got.(float64); !ok || !math.IsNaN(g) {
				t.Errorf("Parse(%q) = %v, want NaN", test.input, got)
			}
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 0)); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseNaN(t *testing.T) {
	got, errs := Parse(`NaN`, Options{})
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	f, ok := got.(float64)
	if !ok || !math.IsNaN(f) {
		t.Errorf("Parse(NaN) = %v, want NaN", got)
	}
}

func TestParseNestedAndComments(t *testing.T) {
	const input = `{
		// a comment
		unquoted: 'and you can quote me',
		singleQuotes: 'I can use "double quotes" here',
		lineBreaks: "Look, Mom! \
No \\n's!",
		hexadecimal: 0xdecaf,
		leadingDecimalPoint: .8675309,
		andTrailing: 8675309.,
		positiveSign: +1,
		trailingComma: 'in objects', andIn: ['arrays',],
		"backwardsCompatible": "with JSON",
	}`
	want := map[string]any{
		"unquoted":             "and you can quote me",
		"singleQuotes":         `I can use "double quotes" here`,
		"lineBreaks":           "Look, Mom! No \\n's!",
		"hexadecimal":          float64(0xdecaf),
		"leadingDecimalPoint":  .8675309,
		"andTrailing":          8675309.0,
		"positiveSign":         1.0,
		"trailingComma":        "in objects",
		"andIn":                []any{"arrays"},
		"backwardsCompatible":  "with JSON",
	}
	got, errs := Parse(input, Options{})
	if len(errs) != 0 {
		t.Fatalf("Parse: unexpected errors %v", errs)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDuplicateKeyOverwrites(t *testing.T) {
	got, errs := Parse(`{"a":1,"a":2}`, Options{})
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if diff := cmp.Diff(map[string]any{"a": 2.0}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeterministic(t *testing.T) {
	const input = `{"a":[1,2,{"b":true}],"c":"d"}`
	first, errs1 := Parse(input, Options{})
	second, errs2 := Parse(input, Options{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Parse is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(errs1, errs2); diff != "" {
		t.Errorf("Parse errors are not deterministic (-first +second):\n%s", diff)
	}
}
