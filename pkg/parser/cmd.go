package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
)

// parseCmd parses one of the six Cmd forms of spec.md §4.3. It does not
// consume a trailing ';' — that belongs to the enclosing CommandStatement
// (or is absent entirely for the bare parse_command entry point).
func (p *Parser) parseCmd() (ast.Cmd, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Star {
		return p.parseMutateCmd(mark)
	}

	if tok.Kind != lexer.Ident {
		return nil, p.errorf(tok.Span, "expected a command, found %q", tok.String())
	}

	switch tok.Text {
	case kwAssert:
		return p.parseAssertCmd(mark)
	case kwReturn:
		return p.parseReturnCmd(mark)
	case kwContinue:
		p.advance()
		return ast.ContinueCmd{Span: mark.close(p)}, nil
	case kwBreak:
		p.advance()
		return ast.BreakCmd{Span: mark.close(p)}, nil
	default:
		return p.parseIdentLedCmd(mark)
	}
}

// parseMutateCmd parses `*exp = exp` (spec.md §4.3, case 2). Reusing
// parseUnaryExpr for the left side means the '*' is parsed exactly as the
// Unary tier's Dereference form; the distinct Mutate command comes only
// from the fact that this is statement position, not expression position.
func (p *Parser) parseMutateCmd(mark spanMark) (ast.Cmd, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.Eq, "'='"); err != nil {
		return nil, err
	}

	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return ast.MutateCmd{Span: mark.close(p), Lhs: lhs, Rhs: rhs}, nil
}

// parseAssertCmd parses `assert(cond, err)`.
func (p *Parser) parseAssertCmd(mark spanMark) (ast.Cmd, error) {
	p.advance()

	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.Comma, "','"); err != nil {
		return nil, err
	}

	errCode, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	return ast.AssertCmd{Span: mark.close(p), Condition: cond, ErrorCode: errCode}, nil
}

// parseReturnCmd parses `return e1, e2, ...`; an empty list is permitted
// when `return` is followed directly by ';' or the end of input (spec.md
// §4.3).
func (p *Parser) parseReturnCmd(mark spanMark) (ast.Cmd, error) {
	p.advance()

	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Semi || tok.Kind == lexer.EOF {
		return ast.ReturnCmd{Span: mark.close(p), Values: nil}, nil
	}

	var values []ast.Exp

	for {
		exp, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		values = append(values, exp)

		more, err := p.tryConsumeKind(lexer.Comma)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	return ast.ReturnCmd{Span: mark.close(p), Values: values}, nil
}

// parseIdentLedCmd dispatches the remaining Cmd forms, all of which begin
// with a plain identifier: Unpack (cases 6), a bare statement-position
// call with no return bindings (case 5), or a var-list assignment/call
// with one or more return bindings (cases 1, 3, 4). The choice is made by
// looking one token past the leading identifier — no backtracking is
// needed because each shape is uniquely determined by it.
func (p *Parser) parseIdentLedCmd(mark spanMark) (ast.Cmd, error) {
	next, err := p.peek(1)
	if err != nil {
		return nil, err
	}

	switch next.Kind {
	case lexer.LBrace:
		return p.parseUnpackCmd(mark)
	case lexer.LParen, lexer.Lt, lexer.Dot:
		call, actuals, err := p.parseCallRHS()
		if err != nil {
			return nil, err
		}

		return ast.CallCmd{Span: mark.close(p), Returns: nil, Call: call, Actuals: actuals}, nil
	default:
		return p.parseAssignOrMultiCallCmd(mark)
	}
}

// parseAssignOrMultiCallCmd handles the `var(, var)* = ...` forms (spec.md
// §4.3, cases 1/3/4): it gathers the comma-separated binding list, then
// decides Assign from Call by inspecting the right-hand side — a call is
// either a builtin name or a dotted module-qualified name; no other
// expression form in this grammar starts with `Ident '.'`.
func (p *Parser) parseAssignOrMultiCallCmd(mark spanMark) (ast.Cmd, error) {
	var varToks []lexer.Token

	for {
		varTok, err := p.expect(lexer.Ident, "a variable name")
		if err != nil {
			return nil, err
		}

		varToks = append(varToks, varTok)

		more, err := p.tryConsumeKind(lexer.Comma)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	if _, err := p.expect(lexer.Eq, "'='"); err != nil {
		return nil, err
	}

	isCall, err := p.rhsStartsCall()
	if err != nil {
		return nil, err
	}

	if isCall {
		call, actuals, err := p.parseCallRHS()
		if err != nil {
			return nil, err
		}

		returns := make([]ast.Var, len(varToks))
		for i, t := range varToks {
			returns[i] = ast.Var(t.Text)
		}

		return ast.CallCmd{Span: mark.close(p), Returns: returns, Call: call, Actuals: actuals}, nil
	}

	if len(varToks) != 1 {
		return nil, p.errorf(mark.close(p), "multiple assignment targets require a call on the right-hand side")
	}

	exp, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return ast.AssignCmd{Span: mark.close(p), Var: ast.Var(varToks[0].Text), Exp: exp}, nil
}

// rhsStartsCall reports whether the upcoming tokens denote a FunctionCall
// rather than a plain expression: a builtin keyword, or `Module '.'`.
func (p *Parser) rhsStartsCall() (bool, error) {
	tok, err := p.cur()
	if err != nil {
		return false, err
	}

	if tok.Kind != lexer.Ident {
		return false, nil
	}

	if _, ok := builtinNames[tok.Text]; ok {
		return true, nil
	}

	next, err := p.peek(1)
	if err != nil {
		return false, err
	}

	return next.Kind == lexer.Dot, nil
}

// parseCallRHS parses a FunctionCall and its actual arguments, for either
// a builtin (with an optional `<StructTag>` type argument) or a
// module-qualified function.
func (p *Parser) parseCallRHS() (ast.FunctionCall, []ast.Exp, error) {
	callMark, err := p.open()
	if err != nil {
		return nil, nil, err
	}

	tok, err := p.cur()
	if err != nil {
		return nil, nil, err
	}

	if op, ok := builtinNames[tok.Text]; ok {
		p.advance()

		var typeArg *ast.StructTag

		if op.IsParametric() {
			if _, err := p.expect(lexer.Lt, "'<'"); err != nil {
				return nil, nil, err
			}

			tag, err := p.parseStructTag()
			if err != nil {
				return nil, nil, err
			}

			if _, err := p.expect(lexer.Gt, "'>'"); err != nil {
				return nil, nil, err
			}

			typeArg = &tag
		}

		actuals, err := p.parseActuals()
		if err != nil {
			return nil, nil, err
		}

		return ast.BuiltinCall{Span: callMark.close(p), Op: op, TypeArg: typeArg}, actuals, nil
	}

	modTok, err := p.expect(lexer.Ident, "a module name")
	if err != nil {
		return nil, nil, err
	}

	if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
		return nil, nil, err
	}

	nameTok, err := p.expect(lexer.Ident, "a function name")
	if err != nil {
		return nil, nil, err
	}

	actuals, err := p.parseActuals()
	if err != nil {
		return nil, nil, err
	}

	call := ast.ModuleFunctionCall{Span: callMark.close(p), Module: ast.ModuleName(modTok.Text), Name: ast.FunctionName(nameTok.Text)}

	return call, actuals, nil
}

func (p *Parser) parseActuals() ([]ast.Exp, error) {
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	actuals, err := parseCommaList(p, lexer.RParen, p.parseExpr)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	return actuals, nil
}

// parseUnpackCmd parses `StructName { bindings } = exp` (spec.md §4.3,
// case 6).
func (p *Parser) parseUnpackCmd(mark spanMark) (ast.Cmd, error) {
	nameTok, err := p.expect(lexer.Ident, "a struct name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}

	bindings, err := parseCommaList(p, lexer.RBrace, p.parseUnpackBinding)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.Eq, "'='"); err != nil {
		return nil, err
	}

	exp, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	span := mark.close(p)

	cmd, dup := ast.NewUnpackCmd(span, ast.StructName(nameTok.Text), bindings, exp)
	if dup != nil {
		return nil, p.errorf(span, "duplicate field key %q in unpack pattern", string(*dup))
	}

	return cmd, nil
}

// parseUnpackBinding parses one `field: var` entry, or the bare `field`
// shorthand which binds into a local of the same name with a span equal
// to the field's own span (spec.md §4.3, S5).
func (p *Parser) parseUnpackBinding() (ast.UnpackBinding, error) {
	fieldTok, err := p.expect(lexer.Ident, "a field name")
	if err != nil {
		return ast.UnpackBinding{}, err
	}

	hasColon, err := p.tryConsumeKind(lexer.Colon)
	if err != nil {
		return ast.UnpackBinding{}, err
	}

	if !hasColon {
		return ast.UnpackBinding{Span: fieldTok.Span, Field: ast.Field(fieldTok.Text), Var: ast.Var(fieldTok.Text)}, nil
	}

	varTok, err := p.expect(lexer.Ident, "a variable name")
	if err != nil {
		return ast.UnpackBinding{}, err
	}

	return ast.UnpackBinding{Span: fieldTok.Span.Join(varTok.Span), Field: ast.Field(fieldTok.Text), Var: ast.Var(varTok.Text)}, nil
}

// parseStatement parses one Statement (spec.md §3, §4.4, §4.5).
func (p *Parser) parseStatement() (ast.Statement, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	if tok.Kind == lexer.Semi {
		p.advance()
		return ast.EmptyStatement{Span: mark.close(p)}, nil
	}

	if tok.Kind == lexer.Ident {
		switch tok.Text {
		case kwIf:
			return p.parseIfElseStatement(mark)
		case kwWhile:
			return p.parseWhileStatement(mark)
		case kwLoop:
			return p.parseLoopStatement(mark)
		case kwVerify:
			return p.parseVerifyStatement(mark)
		case kwAssume:
			return p.parseAssumeStatement(mark)
		}
	}

	cmd, err := p.parseCmd()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.Semi, "';'"); err != nil {
		return nil, err
	}

	return ast.CommandStatement{Span: mark.close(p), Cmd: cmd}, nil
}

// parseIfElseStatement parses `if (cond) <block>` with an optional
// `else <block>` — no else-if sugar; a chained conditional is a plain
// nested IfElseStatement inside the else block (spec.md §4.4).
func (p *Parser) parseIfElseStatement(mark spanMark) (ast.Statement, error) {
	p.advance()

	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	hasElse, err := p.tryConsumeIdent(kwElse)
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block

	if hasElse {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		elseBlock = &b
	}

	return ast.IfElseStatement{Span: mark.close(p), Cond: cond, Then: then, Else: elseBlock}, nil
}

func (p *Parser) parseWhileStatement(mark spanMark) (ast.Statement, error) {
	p.advance()

	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.WhileStatement{Span: mark.close(p), Cond: cond, Body: body}, nil
}

func (p *Parser) parseLoopStatement(mark spanMark) (ast.Statement, error) {
	p.advance()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.LoopStatement{Span: mark.close(p), Body: body}, nil
}

// parseVerifyStatement and parseAssumeStatement each consume their
// keyword, then a single Bracketed token via the lexer's raw
// NextBracketed scan rather than the ordinary token grammar (spec.md
// §4.5). The keyword token just consumed is always the only buffered
// lookahead, so the buffer is guaranteed empty at this point (see
// pkg/lexer's Lexer doc comment).
func (p *Parser) parseVerifyStatement(mark spanMark) (ast.Statement, error) {
	p.advance()

	text, err := p.bracketedText()
	if err != nil {
		return nil, err
	}

	return ast.VerifyStatement{Span: mark.close(p), Text: text}, nil
}

func (p *Parser) parseAssumeStatement(mark spanMark) (ast.Statement, error) {
	p.advance()

	text, err := p.bracketedText()
	if err != nil {
		return nil, err
	}

	return ast.AssumeStatement{Span: mark.close(p), Text: text}, nil
}

// bracketedText pulls one Bracketed token directly from the lexer,
// bypassing the parser's own lookahead buffer.
func (p *Parser) bracketedText() (string, error) {
	tok, err := p.lx.NextBracketed()
	if err != nil {
		return "", err
	}

	p.lastEnd = tok.Span.End

	return tok.Text, nil
}

// parseBlock parses a braced sequence of statements.
func (p *Parser) parseBlock() (ast.Block, error) {
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}

	stmts, err := p.parseStatementList()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}

	return stmts, nil
}

// parseStatementList parses statements up to (but not consuming) the
// closing '}'. It is shared by parseBlock and the function-body parser in
// decl.go, which needs to parse a local-declaration prefix before the
// statement list (spec.md §4.7: "All locals appear at the head of a
// function body, before any statement").
func (p *Parser) parseStatementList() (ast.Block, error) {
	var stmts ast.Block

	for {
		tok, err := p.cur()
		if err != nil {
			return nil, err
		}

		if tok.Kind == lexer.RBrace {
			return stmts, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}
}
