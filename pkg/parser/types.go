package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
)

// parseAnnotation parses a non-reference type annotation (spec.md §4.6):
// Annotation ::= address | u64 | bool | bytearray | Kind "#" StructType.
// Struct field types, which must be non-reference (spec.md §3's
// struct-field invariant), call this directly rather than
// parseRefAnnotation; parseRefAnnotation also uses it for the type under a
// reference.
func (p *Parser) parseAnnotation() (ast.Type, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	if tok.Kind != lexer.Ident {
		return nil, p.errorf(tok.Span, "expected a type annotation, found %q", tok.String())
	}

	switch tok.Text {
	case kwAddress:
		p.advance()
		return ast.PrimitiveType{Prim: ast.PrimAddress}, nil
	case kwU64:
		p.advance()
		return ast.PrimitiveType{Prim: ast.PrimU64}, nil
	case kwBool:
		p.advance()
		return ast.PrimitiveType{Prim: ast.PrimBool}, nil
	case kwByteArray:
		p.advance()
		return ast.PrimitiveType{Prim: ast.PrimByteArray}, nil
	case kwKindResource, kwKindValue:
		return p.parseNormalType()
	default:
		return nil, p.errorf(tok.Span, "expected a type annotation, found %q", tok.String())
	}
}

// parseNormalType parses `Kind "#" StructType` (spec.md §4.6).
func (p *Parser) parseNormalType() (ast.Type, error) {
	tok, err := p.advance() // consume "R" or "V"
	if err != nil {
		return nil, err
	}

	kind := ast.KindValue
	if tok.Text == kwKindResource {
		kind = ast.KindResource
	}

	if _, err := p.expect(lexer.Hash, "'#'"); err != nil {
		return nil, err
	}

	tag, err := p.parseStructTag()
	if err != nil {
		return nil, err
	}

	return ast.NormalType{Kind: kind, Tag: tag}, nil
}

// parseStructTag parses `ModuleName "." StructName` (spec.md §4.6).
func (p *Parser) parseStructTag() (ast.StructTag, error) {
	modTok, err := p.expect(lexer.Ident, "a module name")
	if err != nil {
		return ast.StructTag{}, err
	}

	if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
		return ast.StructTag{}, err
	}

	nameTok, err := p.expect(lexer.Ident, "a struct name")
	if err != nil {
		return ast.StructTag{}, err
	}

	return ast.StructTag{Module: ast.ModuleName(modTok.Text), Name: ast.StructName(nameTok.Text)}, nil
}

// parseRefAnnotation parses `RefAnnotation ::= Annotation | "&" Annotation
// | "&mut " Annotation` (spec.md §4.6), used for parameter, local and
// return types. References appear only here — parseAnnotation, used for
// struct fields, never reaches this production, which keeps reference annotations
// unreachable from inside an expression tier (spec.md §9's design note).
func (p *Parser) parseRefAnnotation() (ast.Type, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.AmpMut:
		p.advance()

		inner, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}

		return ast.NewReferenceType(true, inner), nil
	case lexer.Amp:
		p.advance()

		inner, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}

		return ast.NewReferenceType(false, inner), nil
	default:
		return p.parseAnnotation()
	}
}

// parseReturnTypes parses an optional `: RefAnnotation ("*" RefAnnotation)*`
// clause (spec.md §4.6). Absence of the clause yields an empty list.
func (p *Parser) parseReturnTypes() ([]ast.Type, error) {
	hasColon, err := p.tryConsumeKind(lexer.Colon)
	if err != nil || !hasColon {
		return nil, err
	}

	var types []ast.Type

	for {
		ty, err := p.parseRefAnnotation()
		if err != nil {
			return nil, err
		}

		types = append(types, ty)

		more, err := p.tryConsumeKind(lexer.Star)
		if err != nil {
			return nil, err
		}

		if !more {
			return types, nil
		}
	}
}
