package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
)

// parseExpr parses a full expression at the loosest (comparison) tier
// (spec.md §4.2).
func (p *Parser) parseExpr() (ast.Exp, error) {
	return p.parseComparisonExpr()
}

// binOpMatcher reports whether a token is one of a tier's operators, and
// which ast.BinOp it denotes.
type binOpMatcher func(lexer.Token) (ast.BinOp, bool)

// parseLeftAssoc implements one precedence tier: a single higher-tier
// expression, or a left-associative chain of "<higher> <op> <higher>"
// (spec.md §9). Every tier in §4.2 has exactly this shape, differing only
// in which operators it matches and which tier is "higher" — factoring it
// out once avoids repeating the loop eight times.
func (p *Parser) parseLeftAssoc(next func() (ast.Exp, error), match binOpMatcher) (ast.Exp, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	lhs, err := next()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.cur()
		if err != nil {
			return nil, err
		}

		op, ok := match(tok)
		if !ok {
			return lhs, nil
		}

		if _, err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := next()
		if err != nil {
			return nil, err
		}

		lhs = ast.BinopExp{Span: mark.close(p), Lhs: lhs, Op: op, Rhs: rhs}
	}
}

// parseComparisonExpr is the Comparison tier: == != < > <= >=, all sharing
// one tier (spec.md §4.2: "a < b == c parses as (a < b) == c").
func (p *Parser) parseComparisonExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseLogicalOrExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		switch tok.Kind {
		case lexer.EqEq:
			return ast.OpEq, true
		case lexer.Neq:
			return ast.OpNeq, true
		case lexer.Lt:
			return ast.OpLt, true
		case lexer.Gt:
			return ast.OpGt, true
		case lexer.Le:
			return ast.OpLe, true
		case lexer.Ge:
			return ast.OpGe, true
		default:
			return 0, false
		}
	})
}

func (p *Parser) parseLogicalOrExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseLogicalAndExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		if tok.Kind == lexer.PipePipe {
			return ast.OpOr, true
		}

		return 0, false
	})
}

func (p *Parser) parseLogicalAndExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseXorExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		if tok.Kind == lexer.AmpAmp {
			return ast.OpAnd, true
		}

		return 0, false
	})
}

func (p *Parser) parseXorExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseBitOrExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		if tok.Kind == lexer.Caret {
			return ast.OpXor, true
		}

		return 0, false
	})
}

func (p *Parser) parseBitOrExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseBitAndExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		if tok.Kind == lexer.Pipe {
			return ast.OpBitOr, true
		}

		return 0, false
	})
}

// parseBitAndExpr is the Bitwise AND tier. Only a plain Amp token matches
// here: AmpMut can never appear mid-expression (it is only ever a prefix
// of the Unary tier), so there is no ambiguity between this tier and the
// borrow forms (spec.md §4.2's "the & token is disambiguated by context").
func (p *Parser) parseBitAndExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseAdditiveExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		if tok.Kind == lexer.Amp {
			return ast.OpBitAnd, true
		}

		return 0, false
	})
}

func (p *Parser) parseAdditiveExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseMultiplicativeExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		switch tok.Kind {
		case lexer.Plus:
			return ast.OpAdd, true
		case lexer.Minus:
			return ast.OpSub, true
		default:
			return 0, false
		}
	})
}

func (p *Parser) parseMultiplicativeExpr() (ast.Exp, error) {
	return p.parseLeftAssoc(p.parseUnaryExpr, func(tok lexer.Token) (ast.BinOp, bool) {
		switch tok.Kind {
		case lexer.Star:
			return ast.OpMul, true
		case lexer.Slash:
			return ast.OpDiv, true
		case lexer.Percent:
			return ast.OpMod, true
		default:
			return 0, false
		}
	})
}

// parseUnaryExpr handles the four prefix forms of spec.md §4.2's Unary
// tier: `!e`, `*e`, `&mut e.f` / `&mut x`, `&e.f` / `&x`. Everything else
// falls through to parseTerm.
func (p *Parser) parseUnaryExpr() (ast.Exp, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.Bang:
		mark, err := p.open()
		if err != nil {
			return nil, err
		}

		p.advance()

		inner, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return ast.NotExp{Span: mark.close(p), Exp: inner}, nil
	case lexer.Star:
		mark, err := p.open()
		if err != nil {
			return nil, err
		}

		p.advance()

		inner, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return ast.DereferenceExp{Span: mark.close(p), Exp: inner}, nil
	case lexer.AmpMut:
		mark, err := p.open()
		if err != nil {
			return nil, err
		}

		p.advance()

		return p.parseBorrow(mark, true)
	case lexer.Amp:
		mark, err := p.open()
		if err != nil {
			return nil, err
		}

		p.advance()

		return p.parseBorrow(mark, false)
	default:
		return p.parseTerm()
	}
}

// parseBorrow parses what follows a consumed '&'/'&mut' prefix (spec.md
// §4.2): "without the field they produce BorrowLocal on a variable term
// only"; with a dotted field they produce Borrow{..., field} over either
// that same bare variable or an arbitrary parenthesized expression.
func (p *Parser) parseBorrow(mark spanMark, mutable bool) (ast.Exp, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.Ident:
		varTok, err := p.advance()
		if err != nil {
			return nil, err
		}

		hasDot, err := p.tryConsumeKind(lexer.Dot)
		if err != nil {
			return nil, err
		}

		if !hasDot {
			return ast.BorrowLocalExp{Span: mark.close(p), Mutable: mutable, Var: ast.Var(varTok.Text)}, nil
		}

		fieldTok, err := p.expect(lexer.Ident, "a field name")
		if err != nil {
			return nil, err
		}

		base := ast.BorrowBaseVar{Span: varTok.Span, Var: ast.Var(varTok.Text)}

		return ast.BorrowExp{Span: mark.close(p), Mutable: mutable, Base: base, Field: ast.Field(fieldTok.Text)}, nil
	case lexer.LParen:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
			return nil, err
		}

		fieldTok, err := p.expect(lexer.Ident, "a field name")
		if err != nil {
			return nil, err
		}

		base := ast.BorrowBaseExp{Exp: inner}

		return ast.BorrowExp{Span: mark.close(p), Mutable: mutable, Base: base, Field: ast.Field(fieldTok.Text)}, nil
	default:
		return nil, p.errorf(tok.Span, "expected a variable or '(' after '&', found %q", tok.String())
	}
}

// parseTerm parses the innermost tier: a literal, move/copy capture, pack
// literal, or a parenthesized expression (spec.md §4.2).
func (p *Parser) parseTerm() (ast.Exp, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.Int:
		p.advance()
		return ast.ValueExp{Span: tok.Span, Value: ast.U64Val{Value: tok.IntVal}}, nil
	case lexer.AddressLit:
		p.advance()
		return ast.ValueExp{Span: tok.Span, Value: ast.AddressVal{Value: ast.Address(tok.Addr)}}, nil
	case lexer.ByteArrayLit:
		p.advance()
		return ast.ValueExp{Span: tok.Span, Value: ast.ByteArrayVal{Value: tok.Bytes}}, nil
	case lexer.LParen:
		p.advance()

		// Grouping produces no AST node of its own; the inner span is
		// preserved rather than widened to include the parentheses
		// (spec.md §4.2).
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.RParen, "')'"); err != nil {
			return nil, err
		}

		return inner, nil
	case lexer.Ident:
		switch tok.Text {
		case kwTrue:
			p.advance()
			return ast.ValueExp{Span: tok.Span, Value: ast.BoolVal{Value: true}}, nil
		case kwFalse:
			p.advance()
			return ast.ValueExp{Span: tok.Span, Value: ast.BoolVal{Value: false}}, nil
		case kwMove, kwCopy:
			return p.parseMoveOrCopy()
		default:
			next, err := p.peek(1)
			if err != nil {
				return nil, err
			}

			if next.Kind == lexer.LBrace {
				return p.parsePackExp()
			}

			return nil, p.errorf(tok.Span, "unexpected identifier %q in expression position", tok.Text)
		}
	default:
		return nil, p.errorf(tok.Span, "unexpected token %q in expression position", tok.String())
	}
}

// parseMoveOrCopy parses `move(x)` / `copy(x)` (spec.md §6: the token
// spellings "move(" and "copy(" are written joined, but since the grammar
// has no other whitespace-significant construct, the parser simply
// requires the keyword to be followed directly by '(').
func (p *Parser) parseMoveOrCopy() (ast.Exp, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	kw, err := p.advance()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	varTok, err := p.expect(lexer.Ident, "a variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	span := mark.close(p)

	if kw.Text == kwMove {
		return ast.MoveExp{Span: span, Var: ast.Var(varTok.Text)}, nil
	}

	return ast.CopyExp{Span: span, Var: ast.Var(varTok.Text)}, nil
}

// parsePackExp parses `Name { f1: e1, f2: e2, ... }` (spec.md §4.2).
func (p *Parser) parsePackExp() (ast.Exp, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(lexer.Ident, "a struct name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}

	fields, err := parseCommaList(p, lexer.RBrace, p.parsePackField)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}

	span := mark.close(p)

	packExp, dup := ast.NewPackExp(span, ast.StructName(nameTok.Text), fields)
	if dup != nil {
		return nil, p.errorf(span, "duplicate field key %q in pack literal", string(*dup))
	}

	return packExp, nil
}

func (p *Parser) parsePackField() (ast.PackField, error) {
	fieldTok, err := p.expect(lexer.Ident, "a field name")
	if err != nil {
		return ast.PackField{}, err
	}

	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return ast.PackField{}, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return ast.PackField{}, err
	}

	return ast.PackField{Field: ast.Field(fieldTok.Text), Value: value}, nil
}
