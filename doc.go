// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package json5 implements a fault-tolerant scanner and parser for JSON5.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON5. Construct one
// with NewScanner and call its Scan method to iterate over the token
// stream:
//
//	s := json5.NewScanner(input, false)
//	for {
//	   tok := s.Scan()
//	   if tok == json5.EOF {
//	      break
//	   }
//	   log.Printf("token %v at %d", tok, s.TokenOffset())
//	}
//
// Scan never stops at a lexical defect: it reports the error on the
// offending token via TokenError and continues, so a caller can always
// drain the whole input.
//
// # Visiting
//
// The Visitor interface receives parser events in document order, in the
// style of a streaming SAX parser. Call Visit to drive one over a complete
// document:
//
//	errs := json5.Visit(text, visitor, json5.Options{})
//	if len(errs) != 0 {
//	   log.Printf("parse recovered from %d defects", len(errs))
//	}
//
// Visit never aborts at a syntax defect: it resynchronizes and keeps
// delivering events for the rest of the document, collecting every error
// it encountered along the way. Embed NopVisitor in a visitor struct to
// pick up only the callbacks it cares about.
//
// # Parsing
//
// Parse materializes a document directly into plain Go values — map[string]any,
// []any, string, float64, bool, and nil — using Visit under the hood:
//
//	v, errs := json5.Parse(text, json5.Options{})
//
// # Trees and navigation
//
// The ast subpackage builds a typed syntax tree instead of plain values,
// and a cursor subpackage underneath it walks such a tree by path. Both are
// built on the same Visit/Scanner machinery as this package.
package json5
