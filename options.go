// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

// Options configures Visit, Parse, and ast.ParseTree. The zero value is the
// strictest JSON5-conformant configuration: comments are accepted, and an
// empty document is a ValueExpected error.
//
// Trailing commas have no corresponding field: JSON5 always permits them, so
// there is nothing to toggle (unlike a parser that also has to support
// strict JSON).
type Options struct {
	// DisallowComments rejects comments: an encountered comment is reported
	// as an InvalidCommentToken error and is not delivered to a
	// CommentVisitor.
	DisallowComments bool

	// AllowEmptyContent treats an empty document as valid instead of
	// reporting ValueExpected.
	AllowEmptyContent bool
}
