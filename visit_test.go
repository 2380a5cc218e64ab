// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder is a Visitor that prints one line per event, in the style of
// the teacher's testHandler in stream_test.go.
type recorder struct {
	NopVisitor
	buf      bytes.Buffer
	comments bool
}

func (r *recorder) pr(msg string, args ...any) { fmt.Fprintf(&r.buf, msg+"\n", args...) }

func (r *recorder) OnObjectBegin(offset, length, startLine, startCharacter int) { r.pr("ObjectBegin") }
func (r *recorder) OnObjectEnd(offset, length, startLine, startCharacter int)   { r.pr("ObjectEnd") }
func (r *recorder) OnArrayBegin(offset, length, startLine, startCharacter int)  { r.pr("ArrayBegin") }
func (r *recorder) OnArrayEnd(offset, length, startLine, startCharacter int)    { r.pr("ArrayEnd") }

func (r *recorder) OnObjectProperty(key string, offset, length, startLine, startCharacter int) {
	r.pr("Property %q", key)
}

func (r *recorder) OnLiteralValue(value any, offset, length, startLine, startCharacter int) {
	r.pr("Literal %v", value)
}

func (r *recorder) OnSeparator(ch byte, offset, length, startLine, startCharacter int) {
	r.pr("Separator %q", ch)
}

func (r *recorder) OnError(code ParseErrorCode, offset, length, startLine, startCharacter int) {
	r.pr("Error %s @%d", code, offset)
}

func (r *recorder) OnComment(offset, length, startLine, startCharacter int) {
	if r.comments {
		r.pr("Comment @%d", offset)
	}
}

type silentRecorder struct{ recorder }

func diffLines(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitStructural(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{}`, "ObjectBegin\nObjectEnd"},
		{`[]`, "ArrayBegin\nArrayEnd"},
		{`{"a":15}`, `
ObjectBegin
Property "a"
Separator ':'
Literal 15
ObjectEnd`},
		{`{"x":null,"y":[true]}`, `
ObjectBegin
Property "x"
Separator ':'
Literal <nil>
Separator ','
Property "y"
Separator ':'
ArrayBegin
Literal true
ArrayEnd
ObjectEnd`},
	}
	for _, test := range tests {
		r := new(silentRecorder)
		errs := Visit(test.input, r, Options{})
		if len(errs) != 0 {
			t.Errorf("Visit(%q): unexpected errors %v", test.input, errs)
		}
		diffLines(t, test.want, r.buf.String())
	}
}

// TestVisitColonExpectedSingleError covers scenario seed 3: an empty key
// immediately followed by the object's closing brace reports exactly one
// ColonExpected error and still reports the property.
func TestVisitColonExpectedSingleError(t *testing.T) {
	const input = `{"prop1":"foo","prop3":{"prp1":{""}}}`
	r := new(silentRecorder)
	errs := Visit(input, r, Options{})
	if len(errs) != 1 {
		t.Fatalf("Visit(%q): got %d errors, want 1: %v", input, len(errs), errs)
	}
	if errs[0].Code != ColonExpected {
		t.Errorf("error code = %v, want ColonExpected", errs[0].Code)
	}
	if got := strings.Count(r.buf.String(), `Property ""`); got != 1 {
		t.Errorf("expected exactly one empty-keyed Property event, got %d:\n%s", got, r.buf.String())
	}
}

// TestVisitCommaExpectedContinues covers scenario seed 4: a missing comma
// between two valid values resynchronizes by treating the comma as
// present, never dropping the element that follows.
func TestVisitCommaExpectedContinues(t *testing.T) {
	const input = `[ 1 2, 3 ]`
	value, errs := Parse(input, Options{})
	if len(errs) != 1 || errs[0].Code != CommaExpected {
		t.Fatalf("Parse(%q) errs = %v, want exactly one CommaExpected", input, errs)
	}
	want := []any{1.0, 2.0, 3.0}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Errorf("Parse(%q) value mismatch (-want +got):\n%s", input, diff)
	}
}

// TestVisitDisallowComments covers scenario seed 6: disallowed comments
// each report InvalidCommentToken, but the materialized value still
// salvages past them.
func TestVisitDisallowComments(t *testing.T) {
	const input = "/* g\n */ { \"foo\": //f\n\"bar\"\n}"
	value, errs := Parse(input, Options{DisallowComments: true})
	if len(errs) != 2 {
		t.Fatalf("Parse(%q) errs = %v, want 2 InvalidCommentToken errors", input, errs)
	}
	for _, e := range errs {
		if e.Code != InvalidCommentToken {
			t.Errorf("error code = %v, want InvalidCommentToken", e.Code)
		}
	}
	want := map[string]any{"foo": "bar"}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Errorf("Parse(%q) value mismatch (-want +got):\n%s", input, diff)
	}
}

func TestVisitCommentsDelivered(t *testing.T) {
	const input = "// lead\n{} /* trail */"
	r := &recorder{comments: true}
	errs := Visit(input, r, Options{})
	if len(errs) != 0 {
		t.Errorf("Visit(%q): unexpected errors %v", input, errs)
	}
	want := "Comment @0\nObjectBegin\nObjectEnd\nComment @11"
	diffLines(t, want, r.buf.String())
}

func TestVisitEmptyContent(t *testing.T) {
	if errs := Visit("", new(silentRecorder), Options{}); len(errs) != 1 || errs[0].Code != ValueExpected {
		t.Errorf("Visit(\"\") errs = %v, want one ValueExpected", errs)
	}
	if errs := Visit("", new(silentRecorder), Options{AllowEmptyContent: true}); len(errs) != 0 {
		t.Errorf("Visit(\"\") with AllowEmptyContent errs = %v, want none", errs)
	}
}

func TestVisitTrailingComma(t *testing.T) {
	value, errs := Parse(`[1, 2, 3,]`, Options{})
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if diff := cmp.Diff([]any{1.0, 2.0, 3.0}, value); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
