// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package json5

// Visitor receives structural events from Visit in document order. All
// eight methods must be implemented; embed NopVisitor to get no-op defaults
// and override only the callbacks a caller cares about.
//
// Every method's trailing four arguments locate the event: offset and
// length in bytes of the UTF-8 source, followed by the zero-based start
// line and start character (column, in bytes) of the same span.
type Visitor interface {
	// OnObjectBegin reports the offset and length of an object's opening
	// brace.
	OnObjectBegin(offset, length, startLine, startCharacter int)

	// OnObjectProperty reports a decoded property key and the span of its
	// key token.
	OnObjectProperty(key string, offset, length, startLine, startCharacter int)

	// OnObjectEnd reports the span of an object's closing brace, or of the
	// synthesized close when the brace was missing.
	OnObjectEnd(offset, length, startLine, startCharacter int)

	// OnArrayBegin reports the offset and length of an array's opening
	// bracket.
	OnArrayBegin(offset, length, startLine, startCharacter int)

	// OnArrayEnd reports the span of an array's closing bracket, or of the
	// synthesized close when the bracket was missing.
	OnArrayEnd(offset, length, startLine, startCharacter int)

	// OnLiteralValue reports a decoded scalar value: a string, float64,
	// bool, or nil (for null).
	OnLiteralValue(value any, offset, length, startLine, startCharacter int)

	// OnSeparator reports a ',' or ':' token.
	OnSeparator(ch byte, offset, length, startLine, startCharacter int)

	// OnError reports a parse-level defect at the given span.
	OnError(code ParseErrorCode, offset, length, startLine, startCharacter int)
}

// CommentVisitor is an optional interface a Visitor may additionally
// implement to receive comment tokens. Visit checks for it with a type
// assertion; if absent, comments are silently discarded (unless
// Options.DisallowComments is set, in which case they are reported as
// errors instead).
type CommentVisitor interface {
	OnComment(offset, length, startLine, startCharacter int)
}

// NopVisitor implements Visitor with no-op methods. Embed it in a visitor
// struct to pick up only the callbacks that struct defines itself,
// satisfying the "any subset of the callbacks" shape callers expect —
// Go has no notion of an optional interface method, so embedding a no-op
// base is the idiomatic stand-in.
type NopVisitor struct{}

func (NopVisitor) OnObjectBegin(offset, length, startLine, startCharacter int)    {}
func (NopVisitor) OnObjectProperty(key string, offset, length, startLine, startCharacter int) {}
func (NopVisitor) OnObjectEnd(offset, length, startLine, startCharacter int)      {}
func (NopVisitor) OnArrayBegin(offset, length, startLine, startCharacter int)     {}
func (NopVisitor) OnArrayEnd(offset, length, startLine, startCharacter int)       {}
func (NopVisitor) OnLiteralValue(value any, offset, length, startLine, startCharacter int) {}
func (NopVisitor) OnSeparator(ch byte, offset, length, startLine, startCharacter int)      {}
func (NopVisitor) OnError(code ParseErrorCode, offset, length, startLine, startCharacter int) {}

// parser drives a Scanner and delivers Visitor events, recovering from
// syntax defects instead of aborting. It is the fault-tolerant counterpart
// of the teacher's Stream: the same recursive-descent shape
// (parseValue/parseMembers/parseElements/advance), but "panic to abort"
// is replaced by "append an Error and resynchronize".
type parser struct {
	s        *Scanner
	visitor  Visitor
	comments CommentVisitor
	opts     Options
	errs     []Error
	tok      TokenKind
}

// Visit parses text and delivers structural events to visitor in document
// order, never stopping at a syntax defect. It returns every error
// encountered, in the order they were detected.
func Visit(text string, visitor Visitor, opts Options) []Error {
	p := &parser{
		s:       NewScanner(text, false),
		visitor: visitor,
		opts:    opts,
	}
	p.comments, _ = visitor.(CommentVisitor)

	p.advance()
	if p.tok == EOF {
		if !opts.AllowEmptyContent {
			p.emitError(ValueExpected)
		}
		return p.errs
	}
	p.parseValue()
	if p.tok != EOF {
		p.emitError(EndOfFileExpected)
	}
	return p.errs
}

// isValueStart reports whether tok can begin a value production.
func isValueStart(tok TokenKind) bool {
	switch tok {
	case OpenBrace, OpenBracket, String, Number, True, False, Null, Infinity, NaN:
		return true
	default:
		return false
	}
}

// isDelimiter reports whether tok terminates a value slot without being a
// value itself: the container closers, a comma, or end of input.
func isDelimiter(tok TokenKind) bool {
	switch tok {
	case Comma, CloseBrace, CloseBracket, EOF:
		return true
	default:
		return false
	}
}

func (p *parser) here() (offset, length, startLine, startCharacter int) {
	return p.s.TokenOffset(), p.s.TokenLength(), p.s.TokenStartLine(), p.s.TokenStartCharacter()
}

func (p *parser) emitError(code ParseErrorCode) {
	offset, length, startLine, startCharacter := p.here()
	p.errs = append(p.errs, Error{Code: code, Offset: offset, Length: length})
	p.visitor.OnError(code, offset, length, startLine, startCharacter)
}

// advance fetches the next significant token, transparently handling
// trivia: whitespace and line breaks are always skipped, comments are
// delivered to a CommentVisitor (or turned into InvalidCommentToken errors
// under Options.DisallowComments), and any scan error attached to a
// non-comment token is forwarded as a parse error.
func (p *parser) advance() TokenKind {
	for {
		k := p.s.Scan()
		switch k {
		case Whitespace, LineBreak:
			continue
		case LineComment, BlockComment:
			p.handleComment(k)
			continue
		}
		if err := p.s.TokenError(); err != NoScanError {
			p.emitError(scanErrorToParseCode(err))
		}
		p.tok = k
		return k
	}
}

func (p *parser) handleComment(k TokenKind) {
	scanErr := p.s.TokenError()
	if p.opts.DisallowComments {
		p.emitError(InvalidCommentToken)
		return
	}
	if scanErr != NoScanError {
		p.emitError(scanErrorToParseCode(scanErr))
	}
	if p.comments != nil {
		offset, length, startLine, startCharacter := p.here()
		p.comments.OnComment(offset, length, startLine, startCharacter)
	}
}

// parseValue consumes a single value of any type, starting at p.tok. If
// p.tok cannot start a value, it emits ValueExpected and returns without
// advancing, leaving recovery to the caller.
func (p *parser) parseValue() {
	switch p.tok {
	case OpenBrace:
		p.parseObject()
	case OpenBracket:
		p.parseArray()
	case String, Number, True, False, Null, Infinity, NaN:
		p.parseLiteral()
	default:
		p.emitError(ValueExpected)
	}
}

func (p *parser) parseLiteral() {
	offset, length, startLine, startCharacter := p.here()
	value := decodeLiteral(p.tok, p.s.TokenValue())
	p.visitor.OnLiteralValue(value, offset, length, startLine, startCharacter)
	p.advance()
}

// decodeLiteral converts a scalar token's raw or decoded text into its Go
// value, per spec.md §4.4's numeric/string decoding rules.
func decodeLiteral(kind TokenKind, text string) any {
	switch kind {
	case String:
		return text
	case Number, Infinity, NaN:
		return numberValue(text)
	case True:
		return true
	case False:
		return false
	default: // Null
		return nil
	}
}

func (p *parser) parseObject() {
	offset, length, startLine, startCharacter := p.here()
	p.visitor.OnObjectBegin(offset, length, startLine, startCharacter)
	p.advance()

	if p.tok != CloseBrace {
		p.parseMembers()
	}

	offset, length, startLine, startCharacter = p.here()
	if p.tok == CloseBrace {
		p.visitor.OnObjectEnd(offset, length, startLine, startCharacter)
		p.advance()
		return
	}
	p.emitError(CloseBraceExpected)
	p.visitor.OnObjectEnd(offset, length, startLine, startCharacter)
}

// parseMembers consumes zero or more key:value members up to the object's
// closing brace (or EOF, on unrecoverable input). Precondition: p.tok !=
// CloseBrace. Postcondition: p.tok == CloseBrace || p.tok == EOF.
func (p *parser) parseMembers() {
	for {
		if p.tok == String || p.tok == Identifier {
			offset, length, startLine, startCharacter := p.here()
			key := p.s.TokenValue()
			p.visitor.OnObjectProperty(key, offset, length, startLine, startCharacter)
			p.advance()
		} else {
			p.emitError(PropertyNameExpected)
			p.skipToFollowSet(Comma, CloseBrace)
			if p.tok == CloseBrace {
				return
			}
			if p.tok == Comma {
				p.advance()
				if p.tok == CloseBrace {
					return // trailing comma
				}
				continue
			}
			return // EOF
		}

		if p.tok == Colon {
			offset, length, startLine, startCharacter := p.here()
			p.visitor.OnSeparator(':', offset, length, startLine, startCharacter)
			p.advance()
		} else {
			p.emitError(ColonExpected)
		}

		if isValueStart(p.tok) {
			p.parseValue()
		} else if !isDelimiter(p.tok) {
			p.emitError(ValueExpected)
		}

		if p.tok == Comma {
			offset, length, startLine, startCharacter := p.here()
			p.visitor.OnSeparator(',', offset, length, startLine, startCharacter)
			p.advance()
			if p.tok == CloseBrace {
				return // trailing comma
			}
			continue
		}
		if p.tok == CloseBrace {
			return
		}

		p.emitError(CommaExpected)
		if p.tok == String || p.tok == Identifier {
			continue // treat as if the comma were present
		}
		p.skipToFollowSet(Comma, CloseBrace)
		if p.tok == CloseBrace {
			return
		}
		if p.tok == Comma {
			p.advance()
			if p.tok == CloseBrace {
				return
			}
			continue
		}
		return // EOF
	}
}

func (p *parser) parseArray() {
	offset, length, startLine, startCharacter := p.here()
	p.visitor.OnArrayBegin(offset, length, startLine, startCharacter)
	p.advance()

	if p.tok != CloseBracket {
		p.parseElements()
	}

	offset, length, startLine, startCharacter = p.here()
	if p.tok == CloseBracket {
		p.visitor.OnArrayEnd(offset, length, startLine, startCharacter)
		p.advance()
		return
	}
	p.emitError(CloseBracketExpected)
	p.visitor.OnArrayEnd(offset, length, startLine, startCharacter)
}

// parseElements consumes zero or more comma-separated values up to the
// array's closing bracket (or EOF). Precondition: p.tok != CloseBracket.
// Postcondition: p.tok == CloseBracket || p.tok == EOF.
func (p *parser) parseElements() {
	for {
		if isValueStart(p.tok) {
			p.parseValue()
		} else if !isDelimiter(p.tok) {
			p.emitError(ValueExpected)
		}

		if p.tok == Comma {
			offset, length, startLine, startCharacter := p.here()
			p.visitor.OnSeparator(',', offset, length, startLine, startCharacter)
			p.advance()
			if p.tok == CloseBracket {
				return // trailing comma
			}
			continue
		}
		if p.tok == CloseBracket {
			return
		}

		p.emitError(CommaExpected)
		if isValueStart(p.tok) {
			continue // treat as if the comma were present
		}
		p.skipToFollowSet(Comma, CloseBracket)
		if p.tok == CloseBracket {
			return
		}
		if p.tok == Comma {
			p.advance()
			if p.tok == CloseBracket {
				return
			}
			continue
		}
		return // EOF
	}
}

// skipToFollowSet advances past tokens until p.tok is EOF, or is one of
// stop, encountered at the same nesting depth the skip started at: a
// nested object/array opened during the skip is skipped over whole. This
// is the "recovery follow-set" resync spec.md §4.4 requires for an
// unexpected token inside an object or array.
func (p *parser) skipToFollowSet(stop ...TokenKind) {
	depth := 0
	for {
		if p.tok == EOF {
			return
		}
		if depth == 0 {
			for _, want := range stop {
				if p.tok == want {
					return
				}
			}
		}
		switch p.tok {
		case OpenBrace, OpenBracket:
			depth++
		case CloseBrace, CloseBracket:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
}
