package parser

import "github.com/movelang/moveir/pkg/lexer"

// expect consumes and returns the current token, failing if it is not of
// the given kind.
func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	tok, err := p.cur()
	if err != nil {
		return tok, err
	}

	if tok.Kind != kind {
		return tok, p.errorf(tok.Span, "expected %s, found %q", what, tok.String())
	}

	return p.advance()
}

// expectIdent consumes an Ident token whose text is exactly word, failing
// otherwise. Used for contextual keywords (spec.md §4.1).
func (p *Parser) expectIdent(word string) (lexer.Token, error) {
	tok, err := p.cur()
	if err != nil {
		return tok, err
	}

	if tok.Kind != lexer.Ident || tok.Text != word {
		return tok, p.errorf(tok.Span, "expected %q, found %q", word, tok.String())
	}

	return p.advance()
}

// atIdent reports whether the current token is an Ident with the given
// text, without consuming it.
func (p *Parser) atIdent(word string) (bool, error) {
	tok, err := p.cur()
	if err != nil {
		return false, err
	}

	return tok.Kind == lexer.Ident && tok.Text == word, nil
}

// atKind reports whether the current token has the given kind, without
// consuming it.
func (p *Parser) atKind(kind lexer.Kind) (bool, error) {
	tok, err := p.cur()
	if err != nil {
		return false, err
	}

	return tok.Kind == kind, nil
}

// tryConsumeIdent consumes and reports true if the current token is an
// Ident with the given text; otherwise it leaves the input untouched and
// reports false.
func (p *Parser) tryConsumeIdent(word string) (bool, error) {
	ok, err := p.atIdent(word)
	if err != nil || !ok {
		return false, err
	}

	_, err = p.advance()
	return true, err
}

// tryConsumeKind consumes and reports true if the current token has the
// given kind; otherwise it leaves the input untouched and reports false.
func (p *Parser) tryConsumeKind(kind lexer.Kind) (bool, error) {
	ok, err := p.atKind(kind)
	if err != nil || !ok {
		return false, err
	}

	_, err = p.advance()
	return true, err
}
