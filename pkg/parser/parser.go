// Package parser implements the front-end parser for the IR (spec.md
// §1–§9): it turns IR source text into the typed AST defined by
// pkg/ast. Parsing is a single pass with no recovery — the first syntax
// error aborts with a localized *source.SyntaxError (spec.md §7).
package parser

import (
	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/lexer"
	"github.com/movelang/moveir/pkg/source"
)

// Parser holds the state of a single parse over one source file. It is
// not safe for concurrent use, and is not reusable once a parse has been
// attempted (spec.md §5: "each invocation consumes an input buffer").
type Parser struct {
	file *source.File
	lx   *lexer.Lexer
	// buf holds tokens pulled from lx but not yet consumed, supporting
	// the handful of grammar positions that need more than one token of
	// lookahead (e.g. distinguishing Unpack from Assign/Call).
	buf []lexer.Token
	// lastEnd is the end offset of the most recently consumed token; span
	// markers close against it.
	lastEnd uint32
}

// newParser constructs a Parser over a named input buffer.
func newParser(filename string, input []byte) *Parser {
	file := source.NewFile(filename, input)
	return &Parser{file: file, lx: lexer.NewLexer(file)}
}

// ParseProgram parses a full "modules?: ... script: ..." program (spec.md
// §6, entry point 1).
func ParseProgram(filename string, input []byte) (*ast.Program, error) {
	p := newParser(filename, input)

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return prog, nil
}

// ParseModule parses a single module (spec.md §6, entry point 2).
func ParseModule(filename string, input []byte) (*ast.ModuleDefinition, error) {
	p := newParser(filename, input)

	mod, err := p.parseModule()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return mod, nil
}

// ParseCommand parses a single command with no trailing ';', for REPL and
// test fixtures (spec.md §6, entry point 3).
func ParseCommand(filename string, input []byte) (ast.Cmd, error) {
	p := newParser(filename, input)

	cmd, err := p.parseCmd()
	if err != nil {
		return nil, err
	}

	if err := p.expectEOF(); err != nil {
		return nil, err
	}

	return cmd, nil
}

// expectEOF requires that parsing has consumed the entire input, matching
// pkg/sexp.Parse's "sanity check everything was parsed" in the teacher.
func (p *Parser) expectEOF() error {
	tok, err := p.cur()
	if err != nil {
		return err
	}

	if tok.Kind != lexer.EOF {
		return p.errorf(tok.Span, "unexpected trailing input %q", tok.String())
	}

	return nil
}

// fill ensures at least n+1 tokens are buffered.
func (p *Parser) fill(n int) error {
	for len(p.buf) <= n {
		if len(p.buf) > 0 && p.buf[len(p.buf)-1].Kind == lexer.EOF {
			return nil
		}

		tok, err := p.lx.Next()
		if err != nil {
			return err
		}

		p.buf = append(p.buf, tok)
	}

	return nil
}

// peek returns the token n positions ahead of the current one (0 is the
// current, not-yet-consumed token), without consuming anything.
func (p *Parser) peek(n int) (lexer.Token, error) {
	if err := p.fill(n); err != nil {
		return lexer.Token{}, err
	}

	if n < len(p.buf) {
		return p.buf[n], nil
	}

	return p.buf[len(p.buf)-1], nil
}

// cur is peek(0).
func (p *Parser) cur() (lexer.Token, error) {
	return p.peek(0)
}

// advance consumes and returns the current token.
func (p *Parser) advance() (lexer.Token, error) {
	tok, err := p.peek(0)
	if err != nil {
		return tok, err
	}

	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}

	if tok.Kind != lexer.EOF {
		p.lastEnd = tok.Span.End
	}

	return tok, nil
}

// errorf constructs a *source.SyntaxError over the given span.
func (p *Parser) errorf(span source.Span, format string, args ...any) error {
	return p.file.SyntaxErrorf(span, format, args...)
}

// spanMark is the span decorator named by spec.md §2/§9: opened before a
// grammar rule runs and closed after, it attaches the rule's [start,end)
// byte span to whatever node the rule produces without every call site
// having to juggle raw offsets.
type spanMark struct {
	start uint32
}

// open captures the current position as the start of a new span.
func (p *Parser) open() (spanMark, error) {
	tok, err := p.cur()
	if err != nil {
		return spanMark{}, err
	}

	return spanMark{tok.Span.Start}, nil
}

// close returns the span from where m was opened to the end of the most
// recently consumed token.
func (m spanMark) close(p *Parser) source.Span {
	end := m.start
	if p.lastEnd > end {
		end = p.lastEnd
	}

	return source.NewSpan(m.start, end)
}
