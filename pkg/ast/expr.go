package ast

import (
	"fmt"

	"github.com/movelang/moveir/pkg/source"
)

// BinOp is the closed set of binary operators recognised by the
// expression grammar (spec.md §4.2).
type BinOp uint8

const (
	OpEq BinOp = iota
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpOr
	OpAnd
	OpXor
	OpBitOr
	OpBitAnd
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// String renders a BinOp as its source spelling.
func (op BinOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpOr:
		return "||"
	case OpAnd:
		return "&&"
	case OpXor:
		return "^"
	case OpBitOr:
		return "|"
	case OpBitAnd:
		return "&"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return fmt.Sprintf("binop(%d)", op)
	}
}

// Exp is the closed sum type of expression variants (spec.md §3). Every
// non-leaf variant carries its own Span, captured by the parser's span
// decorator around the rule that produced it.
type Exp interface {
	isExp()
	// ExpSpan returns the byte span of this expression's sub-tree.
	ExpSpan() source.Span
}

// ValueExp is a literal copyable value.
type ValueExp struct {
	Span  source.Span
	Value CopyableVal
}

func (ValueExp) isExp() {}
func (e ValueExp) ExpSpan() source.Span  { return e.Span }

// MoveExp is a capturing move of a local (`move(x)`).
type MoveExp struct {
	Span source.Span
	Var  Var
}

func (MoveExp) isExp() {}
func (e MoveExp) ExpSpan() source.Span { return e.Span }

// CopyExp is a capturing copy of a local (`copy(x)`).
type CopyExp struct {
	Span source.Span
	Var  Var
}

func (CopyExp) isExp() {}
func (e CopyExp) ExpSpan() source.Span { return e.Span }

// BorrowLocalExp is `&x` / `&mut x` applied directly to a variable term
// (no field projection).
type BorrowLocalExp struct {
	Span    source.Span
	Mutable bool
	Var     Var
}

func (BorrowLocalExp) isExp() {}
func (e BorrowLocalExp) ExpSpan() source.Span { return e.Span }

// BorrowExp is `&e.f` / `&mut e.f`, a borrow of a field reached through
// either a bare variable or a parenthesized expression. The two source
// forms are kept distinct via BorrowBase rather than folded into a single
// Exp field, so the printer can tell a bare `&x.f` apart from a
// parenthesized `&(e).f` and render each back to the form that produced it.
type BorrowExp struct {
	Span    source.Span
	Mutable bool
	Base    BorrowBase
	Field   Field
}

func (BorrowExp) isExp() {}
func (e BorrowExp) ExpSpan() source.Span { return e.Span }

// BorrowBase is the base of a BorrowExp.
type BorrowBase interface {
	isBorrowBase()
}

// BorrowBaseVar is the bare-variable base of `&x.f`.
type BorrowBaseVar struct {
	Span source.Span
	Var  Var
}

func (BorrowBaseVar) isBorrowBase() {}

// BorrowBaseExp is the parenthesized-expression base of `&(e).f`. The
// parentheses are mandatory in the surface syntax (parseBorrow's LParen
// branch is the only way to reach this form), so the printer always
// restores them rather than only when precedence requires it.
type BorrowBaseExp struct {
	Exp Exp
}

func (BorrowBaseExp) isBorrowBase() {}

// DereferenceExp is `*e`.
type DereferenceExp struct {
	Span source.Span
	Exp  Exp
}

func (DereferenceExp) isExp() {}
func (e DereferenceExp) ExpSpan() source.Span { return e.Span }

// NotExp is the unary logical negation `!e`.
type NotExp struct {
	Span source.Span
	Exp  Exp
}

func (NotExp) isExp() {}
func (e NotExp) ExpSpan() source.Span { return e.Span }

// BinopExp is a binary operator application.
type BinopExp struct {
	Span source.Span
	Lhs  Exp
	Op   BinOp
	Rhs  Exp
}

func (BinopExp) isExp() {}
func (e BinopExp) ExpSpan() source.Span { return e.Span }

// PackField is one `field: value` entry of a Pack expression, in source
// order.
type PackField struct {
	Field Field
	Value Exp
}

// PackExp is a struct literal `Name { f1: e1, f2: e2, ... }`.
type PackExp struct {
	Span   source.Span
	Name   StructName
	Fields []PackField
}

func (PackExp) isExp() {}
func (e PackExp) ExpSpan() source.Span { return e.Span }

// NewPackExp constructs a PackExp, rejecting a repeated field key (spec.md
// §4.2: "duplicate field keys in the same pack are a parse-time error by
// invariant") rather than silently keeping the last write, as an
// unconditional map assignment would.
func NewPackExp(span source.Span, name StructName, fields []PackField) (PackExp, *Field) {
	seen := make(map[Field]bool, len(fields))

	for _, f := range fields {
		if seen[f.Field] {
			dup := f.Field
			return PackExp{}, &dup
		}

		seen[f.Field] = true
	}

	return PackExp{span, name, fields}, nil
}
