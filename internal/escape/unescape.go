// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes JSON5 string escape sequences. Only the decode
// direction is implemented: the library's scope excludes serialization, so
// there is no corresponding Quote/encode helper (see DESIGN.md).
package escape

import (
	"strconv"
	"unicode/utf8"

	"go4.org/mem"
)

const (
	lineSeparator      = ' '
	paragraphSeparator = ' '
)

// Unescape decodes the body of a JSON5 string literal (with the enclosing
// quote characters already stripped) into its represented text.
//
// The escape table matches spec.md §4.4: single-character escapes, \xHH,
// \uHHHH, \0 (a NUL byte), a backslash followed by a line terminator
// (elided, for multi-line strings, including the raw U+2028/U+2029
// separators), and any other escaped character taken literally. Unescape
// never fails: a trailing lone backslash is copied through unchanged, since
// the grammar guarantees a well-formed string body never ends on one (an
// incomplete escape is a scan error reported by the scanner before
// Unescape is ever called).
func Unescape(src mem.RO) []byte {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src)
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			putByte('\\')
			break
		}

		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		switch r {
		case '\'', '"', '\\', '/':
			putByte(byte(r))
			src = src.SliceFrom(n)
		case 'b':
			putByte('\b')
			src = src.SliceFrom(n)
		case 'f':
			putByte('\f')
			src = src.SliceFrom(n)
		case 'n':
			putByte('\n')
			src = src.SliceFrom(n)
		case 'r':
			putByte('\r')
			src = src.SliceFrom(n)
		case 't':
			putByte('\t')
			src = src.SliceFrom(n)
		case 'v':
			putByte('\v')
			src = src.SliceFrom(n)
		case '0':
			putByte(0)
			src = src.SliceFrom(n)
		case 'x':
			if v, ok := hexValue(src, n, 2); ok {
				putByte(byte(v))
				src = src.SliceFrom(n + 2)
			} else {
				putRune(utf8.RuneError)
				src = src.SliceFrom(n)
			}
		case 'u':
			if v, ok := hexValue(src, n, 4); ok {
				putRune(rune(v))
				src = src.SliceFrom(n + 4)
			} else {
				putRune(utf8.RuneError)
				src = src.SliceFrom(n)
			}
		case '\r':
			// Line continuation; elide the terminator. Collapse CRLF.
			if src.Len() > n {
				if r2, n2 := mem.DecodeRune(src.SliceFrom(n)); r2 == '\n' {
					src = src.SliceFrom(n + n2)
					break
				}
			}
			src = src.SliceFrom(n)
		case '\n', lineSeparator, paragraphSeparator:
			// Line continuation; elide the terminator.
			src = src.SliceFrom(n)
		default:
			putRune(r)
			src = src.SliceFrom(n)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			return dec
		}
	}
	return dec
}

// hexValue decodes n hexadecimal digits from src starting at byte offset
// start, reporting false if src is too short or any digit is invalid.
func hexValue(src mem.RO, start, n int) (int, bool) {
	if src.Len() < start+n {
		return 0, false
	}
	v, err := strconv.ParseUint(src.SliceFrom(start).SliceTo(n).StringCopy(), 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
