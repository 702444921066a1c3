package ast

import "github.com/movelang/moveir/pkg/source"

// Block is an ordered sequence of statements (spec.md §3).
type Block []Statement

// Statement is the closed sum type of statement forms (spec.md §3):
// Command, IfElse, While, Loop, Verify, Assume or Empty.
type Statement interface {
	isStatement()
	// StmtSpan returns the byte span of this statement.
	StmtSpan() source.Span
}

// CommandStatement is `Command;`, a command punctuated by a trailing
// semicolon.
type CommandStatement struct {
	Span source.Span
	Cmd  Cmd
}

func (CommandStatement) isStatement()            {}
func (s CommandStatement) StmtSpan() source.Span { return s.Span }

// IfElseStatement is `if (cond) then else else?`. Else is nil when the
// statement has no else-branch; chained conditionals are plain nested
// IfElseStatements inside Else (spec.md §4.4: "no else-if sugar").
type IfElseStatement struct {
	Span source.Span
	Cond Exp
	Then Block
	Else *Block
}

func (IfElseStatement) isStatement()            {}
func (s IfElseStatement) StmtSpan() source.Span { return s.Span }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Span source.Span
	Cond Exp
	Body Block
}

func (WhileStatement) isStatement()            {}
func (s WhileStatement) StmtSpan() source.Span { return s.Span }

// LoopStatement is `loop body`, an unconditional loop exited only via
// `break`.
type LoopStatement struct {
	Span source.Span
	Body Block
}

func (LoopStatement) isStatement()            {}
func (s LoopStatement) StmtSpan() source.Span { return s.Span }

// VerifyStatement is `verify <text>`; Text is the bracketed body with its
// outer brackets stripped, preserved verbatim (spec.md §4.5).
type VerifyStatement struct {
	Span source.Span
	Text string
}

func (VerifyStatement) isStatement()            {}
func (s VerifyStatement) StmtSpan() source.Span { return s.Span }

// AssumeStatement is `assume <text>`, the dual of VerifyStatement.
type AssumeStatement struct {
	Span source.Span
	Text string
}

func (AssumeStatement) isStatement()            {}
func (s AssumeStatement) StmtSpan() source.Span { return s.Span }

// EmptyStatement is a lone `;`.
type EmptyStatement struct {
	Span source.Span
}

func (EmptyStatement) isStatement()            {}
func (s EmptyStatement) StmtSpan() source.Span { return s.Span }
