package parser

import "github.com/movelang/moveir/pkg/lexer"

// parseCommaList is the comma-separated list combinator named by spec.md
// §2/§9: it parses zero or more items separated by Comma, stopping at (but
// not consuming) closeKind, and tolerating a single trailing comma before
// the close token ("trailing commas permitted where noted", spec.md §1).
func parseCommaList[T any](p *Parser, closeKind lexer.Kind, parseItem func() (T, error)) ([]T, error) {
	var items []T

	for {
		tok, err := p.cur()
		if err != nil {
			return nil, err
		}

		if tok.Kind == closeKind {
			return items, nil
		}

		item, err := parseItem()
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		tok, err = p.cur()
		if err != nil {
			return nil, err
		}

		if tok.Kind != lexer.Comma {
			return items, nil
		}

		if _, err := p.advance(); err != nil {
			return nil, err
		}
		// A trailing comma is permitted: if the close token follows
		// immediately, stop rather than demanding one more item.
		tok, err = p.cur()
		if err != nil {
			return nil, err
		}

		if tok.Kind == closeKind {
			return items, nil
		}
	}
}
