// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

import "fmt"

// Error reports a single defect found while scanning or parsing JSON5 text.
// Offsets and lengths are measured in bytes of the UTF-8 source string.
//
// Error is data, not control flow: a parse never stops because of one, per
// spec.md §7. Callers collect a slice of them and still get back the best
// salvage of a value.
type Error struct {
	Code   ParseErrorCode
	Offset int
	Length int
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s at offset %d (length %d)", e.Code, e.Offset, e.Length)
}
