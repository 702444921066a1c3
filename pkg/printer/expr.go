package printer

import (
	"fmt"

	"github.com/movelang/moveir/pkg/ast"
)

func (p *Printer) printStatement(stmt ast.Statement) {
	p.writeIndent()

	switch s := stmt.(type) {
	case ast.CommandStatement:
		p.writef("%s;\n", p.cmdString(s.Cmd))
	case ast.IfElseStatement:
		p.writef("if (%s) {\n", p.expString(s.Cond))
		p.indent++

		for _, inner := range s.Then {
			p.printStatement(inner)
		}

		p.indent--
		p.writeIndent()
		p.writef("}")

		if s.Else != nil {
			p.writef(" else {\n")
			p.indent++

			for _, inner := range *s.Else {
				p.printStatement(inner)
			}

			p.indent--
			p.writeIndent()
			p.writef("}")
		}

		p.writef("\n")
	case ast.WhileStatement:
		p.writef("while (%s) {\n", p.expString(s.Cond))
		p.indent++

		for _, inner := range s.Body {
			p.printStatement(inner)
		}

		p.indent--
		p.writeIndent()
		p.writef("}\n")
	case ast.LoopStatement:
		p.writef("loop {\n")
		p.indent++

		for _, inner := range s.Body {
			p.printStatement(inner)
		}

		p.indent--
		p.writeIndent()
		p.writef("}\n")
	case ast.VerifyStatement:
		p.writef("verify <%s>\n", s.Text)
	case ast.AssumeStatement:
		p.writef("assume <%s>\n", s.Text)
	case ast.EmptyStatement:
		p.writef(";\n")
	default:
		p.writef("<unknown-statement>\n")
	}
}

func (p *Printer) cmdString(cmd ast.Cmd) string {
	switch c := cmd.(type) {
	case ast.AssignCmd:
		return fmt.Sprintf("%s = %s", c.Var, p.expString(c.Exp))
	case ast.MutateCmd:
		return fmt.Sprintf("%s = %s", p.expString(c.Lhs), p.expString(c.Rhs))
	case ast.CallCmd:
		call := p.callString(c.Call, c.Actuals)
		if len(c.Returns) == 0 {
			return call
		}

		names := make([]string, len(c.Returns))
		for i, v := range c.Returns {
			names[i] = string(v)
		}

		return fmt.Sprintf("%s = %s", joinStrings(names, ", "), call)
	case ast.UnpackCmd:
		bindings := make([]string, len(c.Bindings))
		for i, b := range c.Bindings {
			if string(b.Field) == string(b.Var) {
				bindings[i] = string(b.Field)
			} else {
				bindings[i] = fmt.Sprintf("%s: %s", b.Field, b.Var)
			}
		}

		return fmt.Sprintf("%s{%s} = %s", c.Name, joinStrings(bindings, ", "), p.expString(c.Exp))
	case ast.AssertCmd:
		return fmt.Sprintf("assert(%s, %s)", p.expString(c.Condition), p.expString(c.ErrorCode))
	case ast.ReturnCmd:
		if len(c.Values) == 0 {
			return "return"
		}

		vals := make([]string, len(c.Values))
		for i, v := range c.Values {
			vals[i] = p.expString(v)
		}

		return "return " + joinStrings(vals, ", ")
	case ast.ContinueCmd:
		return "continue"
	case ast.BreakCmd:
		return "break"
	default:
		return "<unknown-command>"
	}
}

func (p *Printer) callString(call ast.FunctionCall, actuals []ast.Exp) string {
	args := make([]string, len(actuals))
	for i, a := range actuals {
		args[i] = p.expString(a)
	}

	argList := joinStrings(args, ", ")

	switch c := call.(type) {
	case ast.BuiltinCall:
		name := builtinSpelling(c.Op)
		if c.TypeArg != nil {
			return fmt.Sprintf("%s<%s.%s>(%s)", name, c.TypeArg.Module, c.TypeArg.Name, argList)
		}

		return fmt.Sprintf("%s(%s)", name, argList)
	case ast.ModuleFunctionCall:
		return fmt.Sprintf("%s.%s(%s)", c.Module, c.Name, argList)
	default:
		return "<unknown-call>"
	}
}

// builtinSpelling is the inverse of keywords.builtinNames, kept here
// rather than imported from pkg/parser so the printer has no dependency
// on the parser's internal lookup table.
func builtinSpelling(op ast.BuiltinOp) string {
	switch op {
	case ast.BuiltinCreateAccount:
		return "create_account"
	case ast.BuiltinRelease:
		return "release"
	case ast.BuiltinExists:
		return "exists"
	case ast.BuiltinBorrowGlobal:
		return "borrow_global"
	case ast.BuiltinGetHeight:
		return "get_height"
	case ast.BuiltinGetTxnSender:
		return "get_txn_sender"
	case ast.BuiltinGetTxnSequenceNumber:
		return "get_txn_sequence_number"
	case ast.BuiltinGetTxnGasUnitPrice:
		return "get_txn_gas_unit_price"
	case ast.BuiltinGetTxnMaxGasUnits:
		return "get_txn_max_gas_units"
	case ast.BuiltinEmitEvent:
		return "emit_event"
	case ast.BuiltinMoveFrom:
		return "move_from"
	case ast.BuiltinMoveToSender:
		return "move_to_sender"
	case ast.BuiltinGetGasRemaining:
		return "get_gas_remaining"
	case ast.BuiltinFreeze:
		return "freeze"
	default:
		return "<unknown-builtin>"
	}
}

// expString renders an expression, parenthesizing operands wherever a
// child of tighter textual grouping is required for a reparse to recover
// the same tree (this grammar has no precedence climbing at print time:
// every BinopExp operand that is itself a BinopExp is parenthesized,
// which is always safe though occasionally more verbose than necessary).
func (p *Printer) expString(e ast.Exp) string {
	switch exp := e.(type) {
	case ast.ValueExp:
		return p.valueString(exp.Value)
	case ast.MoveExp:
		return fmt.Sprintf("move(%s)", exp.Var)
	case ast.CopyExp:
		return fmt.Sprintf("copy(%s)", exp.Var)
	case ast.BorrowLocalExp:
		if exp.Mutable {
			return fmt.Sprintf("&mut %s", exp.Var)
		}

		return fmt.Sprintf("&%s", exp.Var)
	case ast.BorrowExp:
		prefix := "&"
		if exp.Mutable {
			prefix = "&mut "
		}

		return fmt.Sprintf("%s%s.%s", prefix, p.borrowBaseString(exp.Base), exp.Field)
	case ast.DereferenceExp:
		return fmt.Sprintf("*%s", p.parenIfBinop(exp.Exp))
	case ast.NotExp:
		return fmt.Sprintf("!%s", p.parenIfBinop(exp.Exp))
	case ast.BinopExp:
		return fmt.Sprintf("%s %s %s", p.parenIfBinop(exp.Lhs), exp.Op, p.parenIfBinop(exp.Rhs))
	case ast.PackExp:
		fields := make([]string, len(exp.Fields))
		for i, f := range exp.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Field, p.expString(f.Value))
		}

		return fmt.Sprintf("%s{%s}", exp.Name, joinStrings(fields, ", "))
	default:
		return "<unknown-exp>"
	}
}

// borrowBaseString renders a BorrowExp's base: a bare variable name for the
// unparenthesized `&x.f` form, or the original expression wrapped back in
// parentheses for the `&(e).f` form — parseBorrow only reaches BorrowBaseExp
// through its LParen branch, so the parentheses must always be restored
// (e.g. dropping them around `move(x)` would re-parse as a bare-variable
// borrow of a local literally named "move").
func (p *Printer) borrowBaseString(b ast.BorrowBase) string {
	switch base := b.(type) {
	case ast.BorrowBaseVar:
		return string(base.Var)
	case ast.BorrowBaseExp:
		return "(" + p.expString(base.Exp) + ")"
	default:
		return "<unknown-borrow-base>"
	}
}

func (p *Printer) parenIfBinop(e ast.Exp) string {
	if _, ok := e.(ast.BinopExp); ok {
		return "(" + p.expString(e) + ")"
	}

	return p.expString(e)
}

func (p *Printer) valueString(v ast.CopyableVal) string {
	switch val := v.(type) {
	case ast.AddressVal:
		return fmt.Sprintf("0x%x", val.Value[:])
	case ast.BoolVal:
		if val.Value {
			return "true"
		}

		return "false"
	case ast.U64Val:
		return fmt.Sprintf("%d", val.Value)
	case ast.ByteArrayVal:
		return fmt.Sprintf("b\"%x\"", val.Value)
	default:
		return "<unknown-value>"
	}
}

func joinStrings(items []string, sep string) string {
	out := ""

	for i, s := range items {
		if i > 0 {
			out += sep
		}

		out += s
	}

	return out
}
