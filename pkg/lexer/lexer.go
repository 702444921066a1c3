package lexer

import (
	"math/bits"

	"github.com/movelang/moveir/pkg/source"
	"github.com/movelang/moveir/pkg/value"
)

// Lexer scans one source file incrementally: each call to Next consumes
// and returns exactly one token. It is deliberately pull-based, rather
// than tokenising the whole file up front, because a VerifierCondition
// (spec.md §4.5) is free-form text whose interior cannot be tokenised by
// the ordinary grammar at all — pkg/parser instead calls NextBracketed at
// exactly the grammar positions (after `verify`, `assume`, `requires`,
// `ensures`) where a bracketed condition, rather than an expression, is
// expected.
type Lexer struct {
	file  *source.File
	text  []byte
	pos   uint32
	codec value.Codec
}

// NewLexer constructs a Lexer over a source file using the default hex
// codec (pkg/value.DefaultCodec).
func NewLexer(file *source.File) *Lexer {
	return NewLexerWithCodec(file, value.DefaultCodec)
}

// NewLexerWithCodec is NewLexer with an explicit value.Codec, so callers
// (and tests) can substitute a non-default hex implementation.
func NewLexerWithCodec(file *source.File, codec value.Codec) *Lexer {
	return &Lexer{file: file, text: file.Text, codec: codec}
}

func (l *Lexer) eof() bool {
	return l.pos >= uint32(len(l.text))
}

func (l *Lexer) peekByteAt(offset uint32) byte {
	if l.pos+offset >= uint32(len(l.text)) {
		return 0
	}

	return l.text[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.text[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.pos++
		default:
			return
		}
	}
}

// Next scans and returns the single next token, advancing past it.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	start := l.pos

	if l.eof() {
		return Token{Kind: EOF, Span: source.NewSpan(start, start)}, nil
	}

	c := l.text[l.pos]

	switch {
	case c == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X'):
		return l.scanAddress(start)
	case c == 'b' && l.peekByteAt(1) == '"':
		return l.scanByteArray(start)
	case isDigit(c):
		return l.scanInt(start)
	case isIdentStart(c):
		return l.scanIdent(start)
	default:
		if !isASCII(c) {
			return Token{}, l.file.SyntaxErrorf(source.NewSpan(start, start+1), "non-ASCII byte %#x outside any literal", c)
		}

		return l.scanPunctuation(start, c)
	}
}

// NextBracketed scans a VerifierCondition body (spec.md §4.5): it expects
// the next non-whitespace byte to be '<', and returns everything up to
// the first subsequent '>' as a single Bracketed token with the outer
// brackets stripped. It must only be called when the grammar has just consumed a
// `verify`/`assume`/`requires`/`ensures` keyword and expects exactly this
// shape next; any other token shape there is a syntax error.
func (l *Lexer) NextBracketed() (Token, error) {
	l.skipWhitespace()

	openStart := l.pos

	if l.eof() || l.text[l.pos] != '<' {
		return Token{}, l.file.SyntaxErrorf(source.NewSpan(openStart, openStart), "expected '<' to start a verifier condition")
	}

	l.pos++

	bodyStart := l.pos

	// The body is closed by the first '>' encountered: a VerifierCondition
	// is a single flat bracketed token, not a nested structure (spec.md
	// §4.5 says only that the outer brackets are stripped).
	for {
		if l.eof() {
			return Token{}, l.file.SyntaxErrorf(source.NewSpan(openStart, l.pos), "unterminated verifier condition")
		}

		if l.text[l.pos] == '>' {
			body := string(l.text[bodyStart:l.pos])
			span := source.NewSpan(openStart, l.pos+1)
			l.pos++

			return Token{Kind: Bracketed, Span: span, Text: body}, nil
		}

		l.pos++
	}
}

func isASCII(c byte) bool {
	return c < 0x80
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isIdentStart matches the grammar's identifier-start class,
// [A-Za-z$_] (spec.md §4.1).
func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '$' || c == '_'
}

// isIdentMiddle matches the grammar's identifier-continuation class,
// [A-Za-z0-9$_] (spec.md §4.1).
func isIdentMiddle(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) scanIdent(start uint32) (Token, error) {
	l.pos++

	for !l.eof() && isIdentMiddle(l.text[l.pos]) {
		l.pos++
	}

	text := string(l.text[start:l.pos])

	// Keyword recognition is left to the parser, which compares Token.Text
	// against the authoritative keyword list of spec.md §6 — the lexer
	// only ever emits the generic Ident kind for identifier-shaped text.
	return Token{Kind: Ident, Span: source.NewSpan(start, l.pos), Text: text}, nil
}

func (l *Lexer) scanInt(start uint32) (Token, error) {
	l.pos++

	for !l.eof() && isDigit(l.text[l.pos]) {
		l.pos++
	}

	span := source.NewSpan(start, l.pos)
	digits := string(l.text[start:l.pos])

	val, overflowed := parseUint64(digits)
	if overflowed {
		return Token{}, l.file.SyntaxErrorf(span, "integer literal out of range: %s", digits)
	}

	return Token{Kind: Int, Span: span, Text: digits, IntVal: val}, nil
}

// parseUint64 parses a decimal string into a uint64, reporting overflow
// rather than silently wrapping (spec.md §4.1: "overflow is a parse
// failure").
func parseUint64(digits string) (val uint64, overflowed bool) {
	for i := 0; i < len(digits); i++ {
		d := uint64(digits[i] - '0')

		hi, lo := bits.Mul64(val, 10)
		if hi != 0 {
			return 0, true
		}

		sum := lo + d
		if sum < lo {
			return 0, true
		}

		val = sum
	}

	return val, false
}

func (l *Lexer) scanAddress(start uint32) (Token, error) {
	l.pos += 2 // consume "0x" / "0X"

	digitsStart := l.pos

	for !l.eof() && isHexDigit(l.text[l.pos]) {
		l.pos++
	}

	span := source.NewSpan(start, l.pos)
	digits := string(l.text[digitsStart:l.pos])

	addr, err := l.codec.DecodeAddress(digits)
	if err != nil {
		return Token{}, l.file.SyntaxErrorf(span, "%s", err.Error())
	}

	return Token{Kind: AddressLit, Span: span, Text: string(l.text[start:l.pos]), Addr: addr}, nil
}

func (l *Lexer) scanByteArray(start uint32) (Token, error) {
	l.pos += 2 // consume `b"`

	digitsStart := l.pos

	for !l.eof() && l.text[l.pos] != '"' {
		l.pos++
	}

	if l.eof() {
		return Token{}, l.file.SyntaxErrorf(source.NewSpan(start, l.pos), "unterminated byte array literal")
	}

	digits := string(l.text[digitsStart:l.pos])
	l.pos++ // consume closing '"'

	span := source.NewSpan(start, l.pos)

	raw, err := l.codec.DecodeByteArray(digits)
	if err != nil {
		return Token{}, l.file.SyntaxErrorf(span, "%s", err.Error())
	}

	return Token{Kind: ByteArrayLit, Span: span, Text: string(l.text[start:l.pos]), Bytes: raw}, nil
}

// scanPunctuation handles every sigil other than the literal forms above
// (spec.md §6). `&` is resolved between plain Amp, AmpAmp and the `&mut `
// compound lexeme purely by what follows it; the parser never needs to
// disambiguate borrow-vs-bitwise-and at the token level (spec.md §9's
// design note) because that disambiguation is syntactic, not lexical — it
// depends only on grammar position.
func (l *Lexer) scanPunctuation(start uint32, c byte) (Token, error) {
	two := func(k Kind) (Token, error) {
		l.pos += 2
		return Token{Kind: k, Span: source.NewSpan(start, l.pos), Text: string(l.text[start:l.pos])}, nil
	}
	one := func(k Kind) (Token, error) {
		l.pos++
		return Token{Kind: k, Span: source.NewSpan(start, l.pos), Text: string(l.text[start:l.pos])}, nil
	}

	switch c {
	case '&':
		if l.peekByteAt(1) == 'm' && l.peekByteAt(2) == 'u' && l.peekByteAt(3) == 't' &&
			!isIdentMiddle(l.peekByteAt(4)) {
			l.pos += 4
			return Token{Kind: AmpMut, Span: source.NewSpan(start, l.pos), Text: string(l.text[start:l.pos])}, nil
		}

		if l.peekByteAt(1) == '&' {
			return two(AmpAmp)
		}

		return one(Amp)
	case '|':
		if l.peekByteAt(1) == '|' {
			return two(PipePipe)
		}

		return one(Pipe)
	case '=':
		if l.peekByteAt(1) == '=' {
			return two(EqEq)
		}

		return one(Eq)
	case '!':
		if l.peekByteAt(1) == '=' {
			return two(Neq)
		}

		return one(Bang)
	case '<':
		if l.peekByteAt(1) == '=' {
			return two(Le)
		}

		return one(Lt)
	case '>':
		if l.peekByteAt(1) == '=' {
			return two(Ge)
		}

		return one(Gt)
	case '^':
		return one(Caret)
	case '*':
		return one(Star)
	case '/':
		return one(Slash)
	case '%':
		return one(Percent)
	case '+':
		return one(Plus)
	case '-':
		return one(Minus)
	case '.':
		return one(Dot)
	case ',':
		return one(Comma)
	case ';':
		return one(Semi)
	case ':':
		return one(Colon)
	case '(':
		return one(LParen)
	case ')':
		return one(RParen)
	case '{':
		return one(LBrace)
	case '}':
		return one(RBrace)
	case '#':
		return one(Hash)
	default:
		return Token{}, l.file.SyntaxErrorf(source.NewSpan(start, start+1), "unexpected character %q", c)
	}
}
