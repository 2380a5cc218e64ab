// Package grammar implements small composable matchers over a string
// prefix, used to express the JSON5 lexical grammar as a set of pure
// functions rather than a hand-rolled switch statement.
package grammar

import "regexp"

// A Lexeme tags the category a successful match belongs to. The scanner
// maps Lexeme values onto its own token kinds.
type Lexeme int

// Lexeme values produced by the JSON5 lexical productions. Unknown is the
// zero value, used for compound matches whose sub-results disagree.
const (
	Unknown Lexeme = iota
	Whitespace
	LineBreak
	LineCommentKind
	BlockCommentKind
	IdentKind
	PunctKind
	StringLit
	NumberLit
)

// A Result describes the outcome of applying a Func to a prefix of some
// input string.
type Result struct {
	OK bool // whether the match succeeded

	// Length is the number of bytes of the input consumed. On failure, this
	// is the number of bytes successfully matched before the failing
	// continuation, used to rank competing alternatives by how much input
	// they covered.
	Length int

	// LineBreaks is the number of line terminator sequences consumed by this
	// match. Only lineTerminatorSequence (and compositions that include it)
	// increment this.
	LineBreaks int

	// LastBreakEnd is the offset, relative to the start of this match, of the
	// byte immediately following the last line terminator sequence consumed.
	// It is meaningful only when LineBreaks > 0.
	LastBreakEnd int

	// Kind is the categorical tag of the match, stamped by WithKind.
	Kind Lexeme
}

func fail(length int) Result { return Result{OK: false, Length: length} }

func empty(kind Lexeme) Result { return Result{OK: true, Kind: kind} }

// A Func matches a prefix of s starting at offset 0 and reports the result.
// Implementations must not look behind the start of s.
type Func func(s string) Result

// Literal matches exactly the string lit.
func Literal(lit string) Func {
	return func(s string) Result {
		if len(s) >= len(lit) && s[:len(lit)] == lit {
			return Result{OK: true, Length: len(lit)}
		}
		n := commonPrefixLen(s, lit)
		return fail(n)
	}
}

func commonPrefixLen(s, lit string) int {
	n := 0
	for n < len(s) && n < len(lit) && s[n] == lit[n] {
		n++
	}
	return n
}

// Match matches a leading hit of re, anchored at the start of the input.
// The caller must supply a pattern already anchored with "^".
func Match(re *regexp.Regexp) Func {
	return func(s string) Result {
		loc := re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			return fail(0)
		}
		return Result{OK: true, Length: loc[1]}
	}
}

// And matches a sequence of Funcs, aggregating consumed length and line
// break counters. It fails as soon as a child fails, carrying the total
// length matched by the successful children plus whatever the failing
// child matched before giving up.
func And(fs ...Func) Func {
	return func(s string) Result {
		var total Result
		total.OK = true
		rest := s
		var lastKind Lexeme
		nonEmpty := 0
		for _, f := range fs {
			r := f(rest)
			if !r.OK {
				total.Length += r.Length
				total.OK = false
				return total
			}
			if r.Length > 0 {
				nonEmpty++
				lastKind = r.Kind
			}
			if r.LineBreaks > 0 {
				total.LineBreaks += r.LineBreaks
				total.LastBreakEnd = total.Length + r.LastBreakEnd
			}
			total.Length += r.Length
			rest = rest[r.Length:]
		}
		if nonEmpty == 1 {
			total.Kind = lastKind
		} else if nonEmpty > 1 {
			total.Kind = Unknown
		}
		return total
	}
}

// Or tries each Func in turn and returns the first success. If every
// alternative fails, Or returns the alternative that consumed the most
// input (ties favor the first such alternative).
func Or(fs ...Func) Func {
	return func(s string) Result {
		var best Result
		haveBest := false
		for _, f := range fs {
			r := f(s)
			if r.OK {
				return r
			}
			if !haveBest || r.Length > best.Length {
				best = r
				haveBest = true
			}
		}
		return best
	}
}

// Longest tries every alternative and, among the ones that succeed, returns
// the one that consumed the most input (ties favor the first). If none
// succeed, behaves like Or on failure.
func Longest(fs ...Func) Func {
	return func(s string) Result {
		var best Result
		haveBest := false
		bestFail := Result{}
		haveFail := false
		for _, f := range fs {
			r := f(s)
			if r.OK {
				if !haveBest || r.Length > best.Length {
					best = r
					haveBest = true
				}
				continue
			}
			if !haveFail || r.Length > bestFail.Length {
				bestFail = r
				haveFail = true
			}
		}
		if haveBest {
			return best
		}
		return bestFail
	}
}

// ZeroOrMore matches f as many times as possible, including zero.
func ZeroOrMore(f Func) Func {
	return func(s string) Result {
		var total Result
		total.OK = true
		rest := s
		for {
			r := f(rest)
			if !r.OK || r.Length == 0 {
				break
			}
			total.Length += r.Length
			if r.LineBreaks > 0 {
				total.LineBreaks += r.LineBreaks
				total.LastBreakEnd = total.Length - r.Length + r.LastBreakEnd
			}
			rest = rest[r.Length:]
		}
		return total
	}
}

// OneOrMore matches f one or more times.
func OneOrMore(f Func) Func {
	zm := ZeroOrMore(f)
	return func(s string) Result {
		r := zm(s)
		if r.Length == 0 {
			return fail(0)
		}
		return r
	}
}

// Optional matches f if it succeeds, or matches the empty string otherwise.
// Optional never fails.
func Optional(f Func) Func {
	return func(s string) Result {
		r := f(s)
		if r.OK {
			return r
		}
		return empty(Unknown)
	}
}

// ButNot succeeds with a's match iff b does not match the same prefix that a
// matched.
func ButNot(a, b Func) Func {
	return func(s string) Result {
		r := a(s)
		if !r.OK {
			return r
		}
		if br := b(s[:r.Length]); br.OK && br.Length == r.Length {
			return fail(0)
		}
		return r
	}
}

// LookaheadNot succeeds with a's match iff b does not match the input
// immediately following a's match.
func LookaheadNot(a, b Func) Func {
	return func(s string) Result {
		r := a(s)
		if !r.OK {
			return r
		}
		if br := b(s[r.Length:]); br.OK && br.Length > 0 {
			return fail(r.Length)
		}
		return r
	}
}

// WithKind returns a Func that behaves like f but stamps Kind on any
// successful result, overriding whatever kind f computed internally.
func WithKind(kind Lexeme, f Func) Func {
	return func(s string) Result {
		r := f(s)
		if r.OK {
			r.Kind = kind
		}
		return r
	}
}
