// Package lexer turns IR source bytes into tokens (spec.md §4.1). Lexer
// is pull-based: pkg/parser buffers only as much lookahead as a given
// grammar position needs, which matters because a VerifierCondition body
// (spec.md §4.5) is free-form text that the ordinary token grammar cannot
// tokenise at all.
package lexer

import (
	"github.com/movelang/moveir/pkg/source"
	"github.com/movelang/moveir/pkg/value"
)

// Kind enumerates every token shape the grammar can consume (spec.md §6).
type Kind uint8

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota
	// Ident covers both identifiers and every contextual keyword; the
	// parser distinguishes them by comparing Token.Text.
	Ident
	// Int is a decoded unsigned 64-bit integer literal.
	Int
	// ByteArrayLit is a decoded `b"<hex>"` literal.
	ByteArrayLit
	// AddressLit is a decoded `0x<hex>` / `0X<hex>` literal.
	AddressLit
	// Bracketed is a `<...>` verifier-condition body with its outer
	// brackets already stripped (spec.md §4.5).
	Bracketed

	// Punctuation and operator sigils (spec.md §6).
	Amp    // &
	AmpMut // &mut (the token covers the four bytes "&mut"; the next byte must not continue an identifier)
	AmpAmp // &&
	Pipe   // |
	PipePipe // ||
	Caret    // ^
	Star     // *
	Slash    // /
	Percent  // %
	Plus     // +
	Minus    // -
	Bang     // !
	EqEq     // ==
	Neq      // !=
	Lt       // <
	Gt       // >
	Le       // <=
	Ge       // >=
	Dot      // .
	Comma    // ,
	Semi     // ;
	Colon    // :
	Eq       // =
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	Hash     // #
)

// Token is a single lexeme: its kind, its source span, its raw text (for
// Ident, used by the parser to recognise keywords), and its decoded
// semantic value for the three literal kinds.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	IntVal   uint64
	Bytes    []byte
	Addr     value.Address
}

// String renders a token's raw lexeme, for use in error messages.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	default:
		return t.Text
	}
}
