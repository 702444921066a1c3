package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
)

// parseParams parses a parenthesized, comma-separated formal parameter
// list (spec.md §4.7: "var : RefAnnotation with an optional trailing
// comma between arguments").
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	params, err := parseCommaList(p, lexer.RParen, p.parseParam)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	varTok, err := p.expect(lexer.Ident, "a parameter name")
	if err != nil {
		return ast.Param{}, err
	}

	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return ast.Param{}, err
	}

	ty, err := p.parseRefAnnotation()
	if err != nil {
		return ast.Param{}, err
	}

	return ast.Param{Var: ast.Var(varTok.Text), Type: ty}, nil
}

// parseLocalDecls parses the run of `let var : RefAnnotation ;`
// declarations at the head of a function body (spec.md §4.7).
func (p *Parser) parseLocalDecls() ([]ast.Param, error) {
	var locals []ast.Param

	for {
		isLet, err := p.atIdent(kwLet)
		if err != nil {
			return nil, err
		}

		if !isLet {
			return locals, nil
		}

		p.advance()

		varTok, err := p.expect(lexer.Ident, "a local variable name")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}

		ty, err := p.parseRefAnnotation()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.Semi, "';'"); err != nil {
			return nil, err
		}

		locals = append(locals, ast.Param{Var: ast.Var(varTok.Text), Type: ty})
	}
}

// parseAnnotations parses the run of `requires <...>` / `ensures <...>`
// pragmas between a function signature and its body (spec.md §4.5).
func (p *Parser) parseAnnotations() ([]ast.Annotation, error) {
	var anns []ast.Annotation

	for {
		mark, err := p.open()
		if err != nil {
			return nil, err
		}

		isRequires, err := p.atIdent(kwRequires)
		if err != nil {
			return nil, err
		}

		if isRequires {
			p.advance()

			text, err := p.bracketedText()
			if err != nil {
				return nil, err
			}

			anns = append(anns, ast.RequiresAnnotation{Span: mark.close(p), Text: text})

			continue
		}

		isEnsures, err := p.atIdent(kwEnsures)
		if err != nil {
			return nil, err
		}

		if isEnsures {
			p.advance()

			text, err := p.bracketedText()
			if err != nil {
				return nil, err
			}

			anns = append(anns, ast.EnsuresAnnotation{Span: mark.close(p), Text: text})

			continue
		}

		return anns, nil
	}
}

// parseFunction parses a function declaration, either move-bodied or
// native (spec.md §4.7).
func (p *Parser) parseFunction() (ast.Function, error) {
	mark, err := p.open()
	if err != nil {
		return ast.Function{}, err
	}

	isNative, err := p.tryConsumeIdent(kwNative)
	if err != nil {
		return ast.Function{}, err
	}

	isPublic, err := p.tryConsumeIdent(kwPublic)
	if err != nil {
		return ast.Function{}, err
	}

	nameTok, err := p.expect(lexer.Ident, "a function name")
	if err != nil {
		return ast.Function{}, err
	}

	params, err := p.parseParams()
	if err != nil {
		return ast.Function{}, err
	}

	returns, err := p.parseReturnTypes()
	if err != nil {
		return ast.Function{}, err
	}

	visibility := ast.Internal
	if isPublic {
		visibility = ast.Public
	}

	if isNative {
		if _, err := p.expect(lexer.Semi, "';'"); err != nil {
			return ast.Function{}, err
		}

		return ast.Function{
			Span:       mark.close(p),
			Name:       ast.FunctionName(nameTok.Text),
			Visibility: visibility,
			Params:     params,
			Returns:    returns,
			Body:       ast.NativeBody{},
		}, nil
	}

	annotations, err := p.parseAnnotations()
	if err != nil {
		return ast.Function{}, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Function{}, err
	}

	locals, err := p.parseLocalDecls()
	if err != nil {
		return ast.Function{}, err
	}

	stmts, err := p.parseStatementList()
	if err != nil {
		return ast.Function{}, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return ast.Function{}, err
	}

	return ast.Function{
		Span:        mark.close(p),
		Name:        ast.FunctionName(nameTok.Text),
		Visibility:  visibility,
		Params:      params,
		Returns:     returns,
		Annotations: annotations,
		Body:        ast.MoveBody{Locals: locals, Code: stmts},
	}, nil
}

// parseStructDef parses `struct Name { fields }` or `resource Name
// { fields }` (spec.md §4.7).
func (p *Parser) parseStructDef() (ast.StructDefinition, error) {
	mark, err := p.open()
	if err != nil {
		return ast.StructDefinition{}, err
	}

	kw, err := p.advance()
	if err != nil {
		return ast.StructDefinition{}, err
	}

	isResource := kw.Text == kwResource

	nameTok, err := p.expect(lexer.Ident, "a struct name")
	if err != nil {
		return ast.StructDefinition{}, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.StructDefinition{}, err
	}

	fields, err := parseCommaList(p, lexer.RBrace, p.parseStructField)
	if err != nil {
		return ast.StructDefinition{}, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return ast.StructDefinition{}, err
	}

	return ast.StructDefinition{Span: mark.close(p), IsResource: isResource, Name: ast.StructName(nameTok.Text), Fields: fields}, nil
}

// parseStructField parses `field: Annotation`. Struct fields are always
// non-reference (spec.md §3's struct-field invariant), so this calls
// parseAnnotation rather than parseRefAnnotation.
func (p *Parser) parseStructField() (ast.StructField, error) {
	fieldTok, err := p.expect(lexer.Ident, "a field name")
	if err != nil {
		return ast.StructField{}, err
	}

	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return ast.StructField{}, err
	}

	ty, err := p.parseAnnotation()
	if err != nil {
		return ast.StructField{}, err
	}

	return ast.StructField{Field: ast.Field(fieldTok.Text), Type: ty}, nil
}
