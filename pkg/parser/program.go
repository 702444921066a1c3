package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
)

// parseModuleIdent parses a ModuleIdent (spec.md §3): either the
// script-local `Transaction.<name>` form, or a globally qualified
// `<address>.<name>` form. The authoritative token list (spec.md §6)
// names no "Qualified" keyword, so the qualified form is written with its
// address literal directly, the same way Move IR itself writes a
// qualified module reference.
func (p *Parser) parseModuleIdent() (ast.ModuleIdent, error) {
	tok, err := p.cur()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.Ident:
		if tok.Text != kwTransaction {
			return nil, p.errorf(tok.Span, "expected a module identifier, found %q", tok.String())
		}

		p.advance()

		if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
			return nil, err
		}

		nameTok, err := p.expect(lexer.Ident, "a module name")
		if err != nil {
			return nil, err
		}

		return ast.TransactionModuleIdent{Name: ast.ModuleName(nameTok.Text)}, nil
	case lexer.AddressLit:
		addr := tok.Addr

		p.advance()

		if _, err := p.expect(lexer.Dot, "'.'"); err != nil {
			return nil, err
		}

		nameTok, err := p.expect(lexer.Ident, "a module name")
		if err != nil {
			return nil, err
		}

		ident := ast.QualifiedModuleIdent{Address: ast.Address(addr), Name: ast.ModuleName(nameTok.Text)}

		return ast.QualifiedModuleIdentRef{Ident: ident}, nil
	default:
		return nil, p.errorf(tok.Span, "expected a module identifier, found %q", tok.String())
	}
}

// parseImport parses `import <ModuleIdent> (as <ModuleName>)? ;` (spec.md
// §4.7), rejecting the reserved alias Self.
func (p *Parser) parseImport() (ast.Import, error) {
	mark, err := p.open()
	if err != nil {
		return ast.Import{}, err
	}

	p.advance() // "import"

	ident, err := p.parseModuleIdent()
	if err != nil {
		return ast.Import{}, err
	}

	var alias *ast.ModuleName

	hasAs, err := p.tryConsumeIdent(kwAs)
	if err != nil {
		return ast.Import{}, err
	}

	if hasAs {
		aliasTok, err := p.expect(lexer.Ident, "a module alias")
		if err != nil {
			return ast.Import{}, err
		}

		if ast.ModuleName(aliasTok.Text) == ast.SelfModuleAlias {
			return ast.Import{}, p.errorf(aliasTok.Span, "the alias %q is reserved for the enclosing module", ast.SelfModuleAlias)
		}

		name := ast.ModuleName(aliasTok.Text)
		alias = &name
	}

	if _, err := p.expect(lexer.Semi, "';'"); err != nil {
		return ast.Import{}, err
	}

	return ast.Import{Span: mark.close(p), Ident: ident, Alias: alias}, nil
}

func (p *Parser) parseImports() ([]ast.Import, error) {
	var imports []ast.Import

	for {
		isImport, err := p.atIdent(kwImport)
		if err != nil {
			return nil, err
		}

		if !isImport {
			return imports, nil
		}

		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}

		imports = append(imports, imp)
	}
}

// parseModule parses `module Name { imports* structs* functions* }`
// (spec.md §4.7: "order is fixed").
func (p *Parser) parseModule() (*ast.ModuleDefinition, error) {
	mark, err := p.open()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectIdent(kwModule); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(lexer.Ident, "a module name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return nil, err
	}

	imports, err := p.parseImports()
	if err != nil {
		return nil, err
	}

	var structs []ast.StructDefinition

	for {
		isStruct, err := p.atIdent(kwStruct)
		if err != nil {
			return nil, err
		}

		isResource, err := p.atIdent(kwResource)
		if err != nil {
			return nil, err
		}

		if !isStruct && !isResource {
			break
		}

		sd, err := p.parseStructDef()
		if err != nil {
			return nil, err
		}

		structs = append(structs, sd)
	}

	var functions []ast.Function

	for {
		tok, err := p.cur()
		if err != nil {
			return nil, err
		}

		if tok.Kind == lexer.RBrace {
			break
		}

		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}

		functions = append(functions, fn)
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return nil, err
	}

	return &ast.ModuleDefinition{
		Span:      mark.close(p),
		Name:      ast.ModuleName(nameTok.Text),
		Imports:   imports,
		Structs:   structs,
		Functions: functions,
	}, nil
}

// parseScript parses `imports* main ( args ) { locals* statements* }`
// (spec.md §4.7). main is always public, takes no return values, and is
// always move-bodied, so it skips the general parseFunction machinery
// entirely.
func (p *Parser) parseScript() (ast.Script, error) {
	scriptMark, err := p.open()
	if err != nil {
		return ast.Script{}, err
	}

	imports, err := p.parseImports()
	if err != nil {
		return ast.Script{}, err
	}

	mainMark, err := p.open()
	if err != nil {
		return ast.Script{}, err
	}

	if _, err := p.expectIdent(kwMain); err != nil {
		return ast.Script{}, err
	}

	params, err := p.parseParams()
	if err != nil {
		return ast.Script{}, err
	}

	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Script{}, err
	}

	locals, err := p.parseLocalDecls()
	if err != nil {
		return ast.Script{}, err
	}

	stmts, err := p.parseStatementList()
	if err != nil {
		return ast.Script{}, err
	}

	if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
		return ast.Script{}, err
	}

	main := ast.Function{
		Span:       mainMark.close(p),
		Name:       ast.FunctionName(kwMain),
		Visibility: ast.Public,
		Params:     params,
		Body:       ast.MoveBody{Locals: locals, Code: stmts},
	}

	return ast.Script{Span: scriptMark.close(p), Imports: imports, Main: main}, nil
}

// parseProgram parses the full top-level shape (spec.md §4.7): an
// optional `modules: <module>* script:` preamble followed by the script.
// When the preamble is absent the input is bare script text (spec.md §8,
// S1's `main() {}` carries neither marker).
func (p *Parser) parseProgram() (*ast.Program, error) {
	var modules []ast.ModuleDefinition

	hasModules, err := p.tryConsumeIdent(kwModules)
	if err != nil {
		return nil, err
	}

	if hasModules {
		if _, err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}

		for {
			isModule, err := p.atIdent(kwModule)
			if err != nil {
				return nil, err
			}

			if !isModule {
				break
			}

			mod, err := p.parseModule()
			if err != nil {
				return nil, err
			}

			modules = append(modules, *mod)
		}

		if _, err := p.expectIdent(kwScript); err != nil {
			return nil, err
		}

		if _, err := p.expect(lexer.Colon, "':'"); err != nil {
			return nil, err
		}
	}

	script, err := p.parseScript()
	if err != nil {
		return nil, err
	}

	return &ast.Program{Modules: modules, Script: script}, nil
}
