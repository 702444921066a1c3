package ast

import "github.com/movelang/moveir/pkg/source"

// BuiltinOp is the closed enumeration of builtin operators (spec.md §3).
// The four parametric operators carry a type argument via BuiltinCall.TypeArg;
// the rest are plain keywords.
type BuiltinOp uint8

const (
	BuiltinCreateAccount BuiltinOp = iota
	BuiltinRelease
	BuiltinExists
	BuiltinBorrowGlobal
	BuiltinGetHeight
	BuiltinGetTxnSender
	BuiltinGetTxnSequenceNumber
	BuiltinGetTxnGasUnitPrice
	BuiltinGetTxnMaxGasUnits
	BuiltinEmitEvent
	BuiltinMoveFrom
	BuiltinMoveToSender
	BuiltinGetGasRemaining
	BuiltinFreeze
)

// IsParametric reports whether this builtin carries a `<T>` type argument
// (spec.md §1's "two built-in parametric operators" plus the two
// global-storage parametric operators also named in §3).
func (op BuiltinOp) IsParametric() bool {
	switch op {
	case BuiltinExists, BuiltinBorrowGlobal, BuiltinMoveFrom, BuiltinMoveToSender:
		return true
	default:
		return false
	}
}

// FunctionCall is either a closed-set Builtin or a qualified
// ModuleFunctionCall (spec.md §3).
type FunctionCall interface {
	isFunctionCall()
}

// BuiltinCall invokes one of the closed set of builtin operators. TypeArg
// is set only when Op.IsParametric().
type BuiltinCall struct {
	Span    source.Span
	Op      BuiltinOp
	TypeArg *StructTag
}

func (BuiltinCall) isFunctionCall() {}

// ModuleFunctionCall invokes a function declared in another module (or the
// enclosing one, via the Self alias), `module.name(...)`.
type ModuleFunctionCall struct {
	Span   source.Span
	Module ModuleName
	Name   FunctionName
}

func (ModuleFunctionCall) isFunctionCall() {}

// Cmd is the closed sum type of imperative commands (spec.md §3).
type Cmd interface {
	isCmd()
	// CmdSpan returns the byte span of this command.
	CmdSpan() source.Span
}

// AssignCmd is `var = exp`.
type AssignCmd struct {
	Span source.Span
	Var  Var
	Exp  Exp
}

func (AssignCmd) isCmd()                 {}
func (c AssignCmd) CmdSpan() source.Span { return c.Span }

// MutateCmd is `*e1 = e2`, distinct from AssignCmd because the left side is
// an arbitrary dereferenced expression rather than a bare local (spec.md
// §4.3).
type MutateCmd struct {
	Span source.Span
	Lhs  Exp
	Rhs  Exp
}

func (MutateCmd) isCmd()                 {}
func (c MutateCmd) CmdSpan() source.Span { return c.Span }

// CallCmd is a (possibly multi-return) function call. An empty Returns
// list means the call appears in statement position (spec.md §3, §9's
// first Open Question: one production covers zero, one or many bindings).
type CallCmd struct {
	Span    source.Span
	Returns []Var
	Call    FunctionCall
	Actuals []Exp
}

func (CallCmd) isCmd()                 {}
func (c CallCmd) CmdSpan() source.Span { return c.Span }

// UnpackBinding is one `field: var` (or bare-`field` shorthand) entry of an
// Unpack command. Span covers the binding as written; for the shorthand
// form it equals the field's own span (spec.md §4.3).
type UnpackBinding struct {
	Span  source.Span
	Field Field
	Var   Var
}

// UnpackCmd is `StructName { bindings } = exp`, the destructuring dual of
// PackExp.
type UnpackCmd struct {
	Span     source.Span
	Name     StructName
	Bindings []UnpackBinding
	Exp      Exp
}

func (UnpackCmd) isCmd()                 {}
func (c UnpackCmd) CmdSpan() source.Span { return c.Span }

// NewUnpackCmd constructs an UnpackCmd, rejecting a repeated field key
// exactly as NewPackExp does for the packing direction.
func NewUnpackCmd(span source.Span, name StructName, bindings []UnpackBinding, exp Exp) (UnpackCmd, *Field) {
	seen := make(map[Field]bool, len(bindings))

	for _, b := range bindings {
		if seen[b.Field] {
			dup := b.Field
			return UnpackCmd{}, &dup
		}

		seen[b.Field] = true
	}

	return UnpackCmd{span, name, bindings, exp}, nil
}

// AssertCmd is `assert(cond, err)`.
type AssertCmd struct {
	Span      source.Span
	Condition Exp
	ErrorCode Exp
}

func (AssertCmd) isCmd()                 {}
func (c AssertCmd) CmdSpan() source.Span { return c.Span }

// ReturnCmd is `return e1, e2, ...`; Values may be empty.
type ReturnCmd struct {
	Span   source.Span
	Values []Exp
}

func (ReturnCmd) isCmd()                 {}
func (c ReturnCmd) CmdSpan() source.Span { return c.Span }

// ContinueCmd is the bare `continue` keyword.
type ContinueCmd struct {
	Span source.Span
}

func (ContinueCmd) isCmd()                 {}
func (c ContinueCmd) CmdSpan() source.Span { return c.Span }

// BreakCmd is the bare `break` keyword.
type BreakCmd struct {
	Span source.Span
}

func (BreakCmd) isCmd()                 {}
func (c BreakCmd) CmdSpan() source.Span { return c.Span }
