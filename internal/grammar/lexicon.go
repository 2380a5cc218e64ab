package grammar

import "regexp"

// This file expresses the JSON5 lexical grammar (json5.org) as compositions
// of the combinators in grammar.go. Each exported Func corresponds to one
// named production in the spec; the scanner invokes WhiteSpace,
// LineBreakRun, Comment, IdentifierOrKeyword, Punctuator, StringLiteral,
// and NumberLiteral at the top level, matching
// the json5InputElement production.

func ch(pattern string) Func { return Match(regexp.MustCompile(`^` + pattern)) }

var (
	decimalDigit = ch(`[0-9]`)
	nonZeroDigit = ch(`[1-9]`)
	hexDigit     = ch(`[0-9a-fA-F]`)

	decimalDigits    = OneOrMore(decimalDigit)
	decimalDigitsOpt = ZeroOrMore(decimalDigit)
	hexDigits        = OneOrMore(hexDigit)

	signedInteger = Or(
		And(ch(`[+-]`), decimalDigits),
		decimalDigits,
	)
	exponentPart = And(ch(`[eE]`), signedInteger)

	// decimalIntegerLiteral := 0 | NonZeroDigit DecimalDigits?
	decimalIntegerLiteral = Or(
		Literal("0"),
		And(nonZeroDigit, decimalDigitsOpt),
	)

	// decimalLiteral covers all four JSON5 decimal forms:
	//   DecimalIntegerLiteral . DecimalDigits? ExponentPart?
	//   . DecimalDigits ExponentPart?
	//   DecimalIntegerLiteral ExponentPart?
	decimalLiteral = Or(
		And(decimalIntegerLiteral, Literal("."), decimalDigitsOpt, Optional(exponentPart)),
		And(Literal("."), decimalDigits, Optional(exponentPart)),
		And(decimalIntegerLiteral, Optional(exponentPart)),
	)

	hexIntegerLiteral = And(Or(Literal("0x"), Literal("0X")), hexDigits)

	// Bare Infinity and NaN are reached through the keyword-identifier path
	// (IdentifierOrKeyword) since json5Token tries identifiers before
	// numbers. NumberLiteral therefore only needs the explicitly-signed
	// spellings of Infinity and NaN.
	signedInfinity = And(ch(`[+-]`), Literal("Infinity"))
	signedNaN      = And(ch(`[+-]`), Literal("NaN"))

	numberLiteralBody = Or(hexIntegerLiteral, decimalLiteral)
	signedNumber      = And(Optional(ch(`[+-]`)), numberLiteralBody)
)

// NumberLiteral recognizes a JSON5 number token: a signed or unsigned
// decimal or hexadecimal literal, or a signed Infinity/NaN. Unsigned
// Infinity/NaN are matched by IdentifierOrKeyword, not by this production.
var NumberLiteral = WithKind(NumberLit, Or(signedInfinity, signedNaN, signedNumber))

// Identifier character classes, per the Unicode categories the JSON5 spec
// borrows from ECMA-262 (ID_Start/ID_Continue), restricted to the subset
// expressible with Go's \p{} regexp classes.
var (
	idStartClass = ch(`[\p{Lu}\p{Ll}\p{Lt}\p{Lm}\p{Lo}\p{Nl}$_]`)
	idPartClass  = ch(`[\p{Lu}\p{Ll}\p{Lt}\p{Lm}\p{Lo}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$_\x{200C}\x{200D}]`)

	unicodeEscape = ch(`\\u[0-9a-fA-F]{4}`)

	idStart = Or(idStartClass, escapedClass(unicodeEscape, isIDStartRune))
	idPart  = Or(idPartClass, escapedClass(unicodeEscape, isIDPartRune))
)

// escapedClass matches a \uHHHH escape whose decoded rune satisfies ok.
func escapedClass(esc Func, ok func(rune) bool) Func {
	return func(s string) Result {
		r := esc(s)
		if !r.OK {
			return fail(0)
		}
		if !ok(rune(decodeHex4(s[2:6]))) {
			return fail(0)
		}
		return r
	}
}

func decodeHex4(s string) int {
	v := 0
	for i := 0; i < 4 && i < len(s); i++ {
		v = v<<4 | hexVal(s[i])
	}
	return v
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return 0
}

func isIDStartRune(r rune) bool { return idStartClass(string(r)).OK }
func isIDPartRune(r rune) bool  { return idPartClass(string(r)).OK }

// Identifier matches a JSON5Identifier: IdentifierStart IdentifierPart*.
var Identifier = WithKind(IdentKind, And(idStart, ZeroOrMore(idPart)))

// keyword matches lit as a whole word: it must not be followed by another
// identifier-part character, so "truex" does not match "true".
func keyword(lit string) Func {
	return LookaheadNot(Literal(lit), idPart)
}

var (
	keywordNull     = keyword("null")
	keywordTrue     = keyword("true")
	keywordFalse    = keyword("false")
	keywordInfinity = keyword("Infinity")
	keywordNaN      = keyword("NaN")
)

// IdentifierOrKeyword matches a JSON5 identifier, preferring a reserved
// keyword when the identifier text exactly spells one: keywords are listed
// first so Longest's tie-break favors them over the generic Identifier
// match of equal length, giving keywords priority over identifiers as
// spec.md's json5Identifier = longest(Identifier, null, true, ...) requires.
var IdentifierOrKeyword = Longest(
	keywordNull, keywordTrue, keywordFalse, keywordInfinity, keywordNaN,
	Identifier,
)

// Punctuator matches one of the JSON5 structural punctuation characters.
var Punctuator = WithKind(PunctKind, ch(`[{}\[\],:]`))

// WhiteSpace matches one or more JSON5 whitespace characters: tab, vertical
// tab, form feed, space, NBSP, BOM, and any Unicode Zs character.
var WhiteSpace = WithKind(Whitespace, OneOrMore(ch(`[\t\v\f \x{A0}\x{FEFF}\p{Zs}]`)))

var (
	crlf     = Literal("\r\n")
	lineTerm = Or(crlf, Literal("\n"), Literal("\r"), ch(`[\x{2028}\x{2029}]`))
)

// LineTerminatorSequence matches exactly one line terminator, treating CRLF
// as a single sequence. This is the only production that increments the
// LineBreaks counter directly; compound productions that embed it (such as
// block comments) propagate the count themselves.
var LineTerminatorSequence = func(s string) Result {
	r := lineTerm(s)
	if !r.OK {
		return r
	}
	return Result{OK: true, Length: r.Length, Kind: LineBreak, LineBreaks: 1, LastBreakEnd: r.Length}
}

// LineBreakRun matches one or more consecutive line terminator sequences,
// merging them into a single token the way WhiteSpace merges runs of blank
// characters.
var LineBreakRun = WithKind(LineBreak, OneOrMore(LineTerminatorSequence))

var notLF = ch(`[^\n]`)

// Comment returns the line-comment and block-comment matchers.
func Comment() (line, block Func) {
	line = WithKind(LineCommentKind, And(Literal("//"), ZeroOrMore(notLF)))
	block = WithKind(BlockCommentKind, blockComment)
	return line, block
}

// blockComment matches "/*" up to and including the first "*/", tallying
// any line terminators it swallows along the way so the scanner's line/col
// bookkeeping stays correct for multi-line comments. It fails (consuming
// everything seen so far) if "*/" is never found.
func blockComment(s string) Result {
	if len(s) < 2 || s[:2] != "/*" {
		return fail(0)
	}
	total := Result{OK: true, Length: 2}
	rest := s[2:]
	for {
		if len(rest) >= 2 && rest[:2] == "*/" {
			total.Length += 2
			return total
		}
		if rest == "" {
			total.OK = false
			return total
		}
		if lt := LineTerminatorSequence(rest); lt.OK {
			total.Length += lt.Length
			total.LineBreaks++
			total.LastBreakEnd = total.Length
			rest = rest[lt.Length:]
			continue
		}
		n := runeLen(rest)
		total.Length += n
		rest = rest[n:]
	}
}

// runeLen reports the byte length of the UTF-8 encoding starting at s[0].
func runeLen(s string) int {
	b := s[0]
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// StringLiteral matches a JSON5 single- or double-quoted string, including
// its delimiters, with all well-formed escapes consumed (but not decoded:
// decoding is the scanner's job). A malformed escape makes the match fail
// just before its backslash, so the scanner reports it as an unterminated
// string; which escape was malformed is not reported.
func StringLiteral(quote byte) Func {
	return func(s string) Result {
		if len(s) == 0 || s[0] != quote {
			return fail(0)
		}
		total := Result{OK: true, Length: 1, Kind: StringLit}
		rest := s[1:]
		for {
			if rest == "" {
				total.OK = false
				return total
			}
			if rest[0] == quote {
				total.Length++
				return total
			}
			if rest[0] == '\\' {
				n := scanEscape(rest)
				if n == 0 {
					total.OK = false
					return total
				}
				total.Length += n
				rest = rest[n:]
				continue
			}
			if rest[0] == '\n' {
				// An unescaped newline terminates the string abnormally.
				total.OK = false
				return total
			}
			n := runeLen(rest)
			total.Length += n
			rest = rest[n:]
		}
	}
}

// scanEscape returns the byte length of a single well-formed escape
// sequence starting at s[0]=='\\', or 0 if the escape is malformed (the
// caller treats 0 as "string ends here, incomplete").
func scanEscape(s string) int {
	if len(s) < 2 {
		return 0
	}
	switch s[1] {
	case '\'', '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'v':
		return 2
	case '0':
		// \0 is NUL only when not followed by a decimal digit; "\01" is not
		// an escape at all, per the JSON5/ECMA-262 grammar's lookahead-not.
		if len(s) >= 3 && s[2] >= '0' && s[2] <= '9' {
			return 0
		}
		return 2
	case 'x':
		if len(s) >= 4 && isHex(s[2]) && isHex(s[3]) {
			return 4
		}
		return 0
	case 'u':
		if len(s) >= 6 && isHex(s[2]) && isHex(s[3]) && isHex(s[4]) && isHex(s[5]) {
			return 6
		}
		return 0
	case '\r':
		if len(s) >= 3 && s[2] == '\n' {
			return 3
		}
		return 2
	case '\n':
		return 2
	default:
		// Any other escaped character is consumed whole, including a
		// multi-byte one such as raw U+2028/U+2029 (which the decoder
		// elides as a line continuation).
		if s[1] >= 0x80 {
			return 1 + runeLen(s[1:])
		}
		return 2
	}
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
