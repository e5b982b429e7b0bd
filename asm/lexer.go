package asm

import (
	"strconv"
)

// Lexer consumes a source buffer via a byte cursor, tracking line/column
// coordinates for diagnostics. Whitespace and commas separate tokens; ';'
// starts a line comment.
type Lexer struct {
	src    []byte
	pos    int
	line   int
	column int

	// diagnostics raised while lexing (illegal characters, integer
	// overflow). The parser drains these after reading each statement's
	// first token.
	diags []Diagnostic
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, pos: 0, line: 1, column: 1}
}

type lexerState struct {
	pos    int
	line   int
	column int
}

func (l *Lexer) save() lexerState {
	return lexerState{pos: l.pos, line: l.line, column: l.column}
}

func (l *Lexer) restore(s lexerState) {
	l.pos, l.line, l.column = s.pos, s.line, s.column
}

// TakeDiagnostics drains and returns all diagnostics accumulated since the
// last call.
func (l *Lexer) TakeDiagnostics() []Diagnostic {
	d := l.diags
	l.diags = nil
	return d
}

func (l *Lexer) addDiag(pos Position, format string, args ...any) {
	l.diags = append(l.diags, newDiagnostic(pos, format, args...))
}

func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isLetter(b byte) bool   { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isIdentPart(b byte) bool { return isLetter(b) || isDigit(b) }

func (l *Lexer) peekByte(offset int) (byte, bool) {
	if l.pos+offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos+offset], true
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return b
}

func (l *Lexer) skipInterTokenSpace() {
	for {
		b, ok := l.peekByte(0)
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == ',':
			l.advance()
		case b == ';':
			for {
				b, ok := l.peekByte(0)
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// Next consumes and returns the next token, advancing the cursor.
func (l *Lexer) Next() Token {
	l.skipInterTokenSpace()

	startPos := Position{Line: l.line, Column: l.column}
	startOff := l.pos

	b, ok := l.peekByte(0)
	if !ok {
		return Token{Kind: TokEOF, Pos: startPos, Span: Span{Start: startOff, Length: 0}}
	}

	switch {
	case isDigit(b) || (b == '-' && func() bool { c, ok := l.peekByte(1); return ok && isDigit(c) }()):
		return l.lexInteger(startPos, startOff)
	case isLetter(b):
		return l.lexIdentOrRegisterOrLabel(startPos, startOff)
	default:
		l.advance()
		l.addDiag(startPos, "illegal character %q", b)
		return Token{
			Kind: TokIllegal,
			Pos:  startPos,
			Span: Span{Start: startOff, Length: l.pos - startOff},
			Text: string(b),
		}
	}
}

func (l *Lexer) lexInteger(startPos Position, startOff int) Token {
	if b, _ := l.peekByte(0); b == '-' {
		l.advance()
	}
	for {
		b, ok := l.peekByte(0)
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	text := string(l.src[startOff:l.pos])
	val, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.addDiag(startPos, "integer out of range: %s", text)
	}

	return Token{
		Kind:     TokInteger,
		Pos:      startPos,
		Span:     Span{Start: startOff, Length: l.pos - startOff},
		Text:     text,
		IntValue: val,
	}
}

func (l *Lexer) lexIdentOrRegisterOrLabel(startPos Position, startOff int) Token {
	for {
		b, ok := l.peekByte(0)
		if !ok || !isIdentPart(b) {
			break
		}
		l.advance()
	}

	text := string(l.src[startOff:l.pos])

	// Label definition: identifier immediately followed by ':'.
	if b, ok := l.peekByte(0); ok && b == ':' {
		l.advance()
		return Token{
			Kind: TokLabel,
			Pos:  startPos,
			Span: Span{Start: startOff, Length: l.pos - startOff},
			Text: text,
		}
	}

	// Register: starts with 'r' followed by one or more digits, and
	// nothing else in the run.
	if len(text) >= 2 && text[0] == 'r' && allDigits(text[1:]) {
		n, err := strconv.ParseUint(text[1:], 10, 8)
		if err == nil {
			return Token{
				Kind:     TokRegister,
				Pos:      startPos,
				Span:     Span{Start: startOff, Length: l.pos - startOff},
				Text:     text,
				RegValue: byte(n),
			}
		}
	}

	return Token{
		Kind: TokIdent,
		Pos:  startPos,
		Span: Span{Start: startOff, Length: l.pos - startOff},
		Text: text,
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// SkipToNextLine discards raw bytes up to and including the next newline,
// or to end-of-input if none remains. Used for "one line, one error"
// recovery: after a diagnostic is reported, the rest of the offending line
// is discarded and scanning resumes on the next one.
func (l *Lexer) SkipToNextLine() {
	for {
		b, ok := l.peekByte(0)
		if !ok {
			return
		}
		if b == '\n' {
			l.advance()
			return
		}
		l.advance()
	}
}

// Peek returns the token that would be produced after advancing n
// additional tokens beyond the current cursor, without mutating it.
// Peek(0) is what the next Next() call would return.
func (l *Lexer) Peek(n int) Token {
	saved := l.save()
	savedDiags := l.diags

	var tok Token
	for i := 0; i <= n; i++ {
		tok = l.Next()
	}

	l.restore(saved)
	l.diags = savedDiags
	return tok
}
