// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"unicode/utf8"

	"go4.org/mem"

	"github.com/go-json5/json5parse/internal/escape"
	"github.com/go-json5/json5parse/internal/grammar"
)

var lineCommentFn, blockCommentFn = grammar.Comment()

// Scanner is a restartable, error-tolerant lexer for JSON5 text. Unlike a
// conventional scanner that stops at the first malformed token, Scanner
// always reports a token: a defect is recorded as the token's ScanError
// rather than by returning an error value, so a caller can always make
// forward progress. See spec.md §4.3.
//
// A Scanner is cheap to construct and holds no resources; the zero value is
// not usable, construct one with NewScanner.
type Scanner struct {
	text         string
	ignoreTrivia bool

	pos int // offset at which the next raw scan begins

	kind    TokenKind
	offset  int
	length  int
	value   string
	scanErr ScanError

	startLine int
	startChar int

	line      int // 0-based line number in effect at pos
	lineStart int // byte offset of the start of that line
}

// NewScanner returns a Scanner over text. When ignoreTrivia is true, Scan
// skips whitespace, line breaks, and comments, returning only structural
// and value tokens; when false, every raw token is reported, including
// trivia.
func NewScanner(text string, ignoreTrivia bool) *Scanner {
	return &Scanner{text: text, ignoreTrivia: ignoreTrivia}
}

// SetPosition restarts the scanner at byte offset pos of its text; the next
// call to Scan reads the token beginning there. Line and column bookkeeping
// restarts from zero at the jump point: only TokenKind, TokenValue,
// TokenOffset, TokenLength, and TokenError are guaranteed accurate for a
// token scanned immediately after a jump.
func (s *Scanner) SetPosition(pos int) {
	s.pos = pos
	s.line = 0
	s.lineStart = pos
}

// Position reports the byte offset the next call to Scan will start from:
// the offset immediately following the most recently scanned token.
func (s *Scanner) Position() int { return s.pos }

// Scan reads and returns the kind of the next token. If the scanner was
// constructed with ignoreTrivia, trivia tokens are consumed internally and
// never returned. Once the text is exhausted, Scan returns EOF on every
// subsequent call.
func (s *Scanner) Scan() TokenKind {
	for {
		k := s.scanOne()
		if !s.ignoreTrivia || !k.IsTrivia() {
			return k
		}
	}
}

// Token returns the kind of the most recently scanned token.
func (s *Scanner) Token() TokenKind { return s.kind }

// TokenValue returns the token's decoded value: for String, the escape
// sequences in the lexeme are resolved; for every other kind, it is the raw
// source text of the token (including, for comments, the delimiters).
func (s *Scanner) TokenValue() string { return s.value }

// TokenOffset returns the byte offset of the start of the most recently
// scanned token.
func (s *Scanner) TokenOffset() int { return s.offset }

// TokenLength returns the length, in bytes, of the most recently scanned
// token.
func (s *Scanner) TokenLength() int { return s.length }

// TokenStartLine returns the zero-based line number the most recently
// scanned token starts on.
func (s *Scanner) TokenStartLine() int { return s.startLine }

// TokenStartCharacter returns the zero-based column, in bytes, the most
// recently scanned token starts at.
func (s *Scanner) TokenStartCharacter() int { return s.startChar }

// TokenError returns the scan-level defect associated with the most
// recently scanned token, or NoScanError if it was well-formed.
func (s *Scanner) TokenError() ScanError { return s.scanErr }

// scanOne performs exactly one raw lexical match starting at s.pos and
// records its result, regardless of ignoreTrivia.
func (s *Scanner) scanOne() TokenKind {
	rest := s.text[s.pos:]
	prevLineStart := s.lineStart
	startLine := s.line
	offset := s.pos

	var kind TokenKind
	var length int
	var value string
	var scanErr ScanError
	var lineBreaks, lastBreakEnd int

	if rest == "" {
		kind = EOF
	} else {
		kind, length, value, scanErr, lineBreaks, lastBreakEnd = lexRaw(rest)
	}

	s.pos = offset + length
	if lineBreaks > 0 {
		s.line += lineBreaks
		s.lineStart = offset + lastBreakEnd
	}

	s.kind = kind
	s.offset = offset
	s.length = length
	s.value = value
	s.scanErr = scanErr
	s.startLine = startLine
	s.startChar = offset - prevLineStart
	return kind
}

// lexRaw matches exactly one raw token at the start of text, which is
// guaranteed non-empty. It implements the json5InputElement alternation of
// spec.md §4.1: whitespace, a line break, a comment, or a json5Token
// (identifier/keyword, punctuator, string, or number), falling back to a
// single-rune Unknown token with InvalidCharacter when nothing matches.
func lexRaw(text string) (kind TokenKind, length int, value string, scanErr ScanError, lineBreaks, lastBreakEnd int) {
	switch text[0] {
	case '"', '\'':
		r := grammar.StringLiteral(text[0])(text)
		if r.OK {
			return String, r.Length, decodeString(text[1 : r.Length-1]), NoScanError, 0, 0
		}
		return String, r.Length, decodeString(text[1:r.Length]), UnexpectedEndOfString, 0, 0
	}

	if len(text) >= 2 && text[0] == '/' && text[1] == '*' {
		r := blockCommentFn(text)
		if r.OK {
			return BlockComment, r.Length, text[:r.Length], NoScanError, r.LineBreaks, r.LastBreakEnd
		}
		return BlockComment, r.Length, text[:r.Length], UnexpectedEndOfComment, r.LineBreaks, r.LastBreakEnd
	}
	if len(text) >= 2 && text[0] == '/' && text[1] == '/' {
		r := lineCommentFn(text)
		return LineComment, r.Length, text[:r.Length], NoScanError, 0, 0
	}

	if r := grammar.WhiteSpace(text); r.OK {
		return Whitespace, r.Length, text[:r.Length], NoScanError, 0, 0
	}
	if r := grammar.LineBreakRun(text); r.OK {
		return LineBreak, r.Length, text[:r.Length], NoScanError, r.LineBreaks, r.LastBreakEnd
	}
	if r := grammar.IdentifierOrKeyword(text); r.OK {
		lexeme := text[:r.Length]
		return identKind(lexeme), r.Length, lexeme, NoScanError, 0, 0
	}
	if r := grammar.Punctuator(text); r.OK {
		return punctKind(text[0]), r.Length, text[:r.Length], NoScanError, 0, 0
	}
	if r := grammar.NumberLiteral(text); r.OK {
		lexeme := text[:r.Length]
		return numberKind(lexeme), r.Length, lexeme, NoScanError, 0, 0
	}

	n := runeLen(text)
	return Unknown, n, text[:n], InvalidCharacter, 0, 0
}

// decodeString resolves the escape sequences in body, the text of a string
// literal with its delimiting quotes already stripped.
func decodeString(body string) string {
	return string(escape.Unescape(mem.S(body)))
}

// identKind classifies the lexeme matched by IdentifierOrKeyword: one of
// the five reserved words, or a generic Identifier.
func identKind(lexeme string) TokenKind {
	switch lexeme {
	case "null":
		return Null
	case "true":
		return True
	case "false":
		return False
	case "Infinity":
		return Infinity
	case "NaN":
		return NaN
	default:
		return Identifier
	}
}

// numberKind classifies the lexeme matched by NumberLiteral: the signed
// spellings of Infinity and NaN keep their keyword kind, matching the kind
// IdentifierOrKeyword assigns to their unsigned forms; everything else is a
// plain Number.
func numberKind(lexeme string) TokenKind {
	switch lexeme[1:] {
	case "Infinity":
		return Infinity
	case "NaN":
		return NaN
	default:
		return Number
	}
}

// punctKind classifies a single structural punctuation byte matched by
// grammar.Punctuator.
func punctKind(b byte) TokenKind {
	switch b {
	case '{':
		return OpenBrace
	case '}':
		return CloseBrace
	case '[':
		return OpenBracket
	case ']':
		return CloseBracket
	case ',':
		return Comma
	case ':':
		return Colon
	}
	return Unknown
}

// runeLen reports the byte length of the UTF-8 rune starting at text[0],
// used only for the one-code-unit resync step; text is never empty here.
func runeLen(text string) int {
	_, n := utf8.DecodeRuneInString(text)
	return n
}
