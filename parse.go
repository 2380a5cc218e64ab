// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

// Parse materializes text into a plain Go value: map[string]any for
// objects, []any for arrays, string, float64, bool, or nil for scalars.
// It never stops at a syntax defect; errs reports every defect found, and
// value is always the best-effort salvage of whatever could be recovered.
//
// Parse is a thin Visitor grounded on the teacher's ast.parseHandler stack
// discipline (push/pop/reduce) in ast/parser.go, targeting plain `any`
// containers instead of typed AST nodes.
func Parse(text string, opts Options) (value any, errs []Error) {
	h := new(materializer)
	errs = Visit(text, h, opts)
	return h.result, errs
}

// frame is one level of the in-progress container stack: either an object
// (obj != nil) or an array (arr != nil), never both.
type frame struct {
	obj map[string]any
	arr []any
	key string // pending key for the next value, when obj != nil
}

type materializer struct {
	NopVisitor

	stack  []*frame
	result any
	have   bool // whether result has been assigned yet
}

func (m *materializer) top() *frame {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// assign delivers v into the innermost open container, or records it as
// the top-level result if there is no open container.
func (m *materializer) assign(v any) {
	f := m.top()
	if f == nil {
		m.result = v
		m.have = true
		return
	}
	if f.obj != nil {
		f.obj[f.key] = v
	} else {
		f.arr = append(f.arr, v)
	}
}

func (m *materializer) OnObjectBegin(offset, length, startLine, startCharacter int) {
	m.stack = append(m.stack, &frame{obj: make(map[string]any)})
}

func (m *materializer) OnObjectProperty(key string, offset, length, startLine, startCharacter int) {
	if f := m.top(); f != nil {
		f.key = key
	}
}

func (m *materializer) OnObjectEnd(offset, length, startLine, startCharacter int) {
	f := m.pop()
	m.assign(f.obj)
}

func (m *materializer) OnArrayBegin(offset, length, startLine, startCharacter int) {
	m.stack = append(m.stack, &frame{arr: []any{}})
}

func (m *materializer) OnArrayEnd(offset, length, startLine, startCharacter int) {
	f := m.pop()
	m.assign(f.arr)
}

func (m *materializer) pop() *frame {
	f := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return f
}

func (m *materializer) OnLiteralValue(value any, offset, length, startLine, startCharacter int) {
	m.assign(value)
}
