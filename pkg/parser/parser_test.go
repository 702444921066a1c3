package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movelang/moveir/pkg/ast"
)

func TestParseProgram_EmptyScript(t *testing.T) {
	t.Parallel()

	prog, err := ParseProgram("t.mvir", []byte("main() {}"))
	require.NoError(t, err)
	require.Empty(t, prog.Modules)
	require.Empty(t, prog.Script.Imports)
	require.Equal(t, ast.FunctionName("main"), prog.Script.Main.Name)
	require.Equal(t, ast.Public, prog.Script.Main.Visibility)
	require.Empty(t, prog.Script.Main.Params)
	require.Empty(t, prog.Script.Main.Returns)

	body, ok := prog.Script.Main.Body.(ast.MoveBody)
	require.True(t, ok)
	require.Empty(t, body.Locals)
	require.Empty(t, body.Code)
}

func TestParseCommand_ArithmeticPrecedence(t *testing.T) {
	t.Parallel()

	// x = 1 + 2 * 3 == 7
	cmd, err := ParseCommand("t.mvir", []byte("x = 1 + 2 * 3 == 7"))
	require.NoError(t, err)

	assign, ok := cmd.(ast.AssignCmd)
	require.True(t, ok)
	require.Equal(t, ast.Var("x"), assign.Var)

	top, ok := assign.Exp.(ast.BinopExp)
	require.True(t, ok)
	require.Equal(t, ast.OpEq, top.Op)

	lhs, ok := top.Lhs.(ast.BinopExp)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, lhs.Op)

	rhs, ok := lhs.Rhs.(ast.BinopExp)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, rhs.Op)

	seven, ok := top.Rhs.(ast.ValueExp)
	require.True(t, ok)
	require.Equal(t, ast.U64Val{Value: 7}, seven.Value)
}

func TestParseCommand_LeftAssociativeChain(t *testing.T) {
	t.Parallel()

	// a - b - c parses as (a - b) - c
	cmd, err := ParseCommand("t.mvir", []byte("x = move(a) - move(b) - move(c)"))
	require.NoError(t, err)

	assign := cmd.(ast.AssignCmd)
	top := assign.Exp.(ast.BinopExp)
	require.Equal(t, ast.OpSub, top.Op)

	_, rhsIsMove := top.Rhs.(ast.MoveExp)
	require.True(t, rhsIsMove)

	inner, ok := top.Lhs.(ast.BinopExp)
	require.True(t, ok)
	require.Equal(t, ast.OpSub, inner.Op)
}

func TestParseCommand_BorrowAndMutate(t *testing.T) {
	t.Parallel()

	cmd1, err := ParseCommand("t.mvir", []byte("p = &mut x"))
	require.NoError(t, err)

	assign := cmd1.(ast.AssignCmd)
	borrow, ok := assign.Exp.(ast.BorrowLocalExp)
	require.True(t, ok)
	require.True(t, borrow.Mutable)
	require.Equal(t, ast.Var("x"), borrow.Var)

	cmd2, err := ParseCommand("t.mvir", []byte("*move(p) = 0"))
	require.NoError(t, err)

	mutate, ok := cmd2.(ast.MutateCmd)
	require.True(t, ok)

	deref, ok := mutate.Lhs.(ast.DereferenceExp)
	require.True(t, ok)

	moveExp, ok := deref.Exp.(ast.MoveExp)
	require.True(t, ok)
	require.Equal(t, ast.Var("p"), moveExp.Var)

	val, ok := mutate.Rhs.(ast.ValueExp)
	require.True(t, ok)
	require.Equal(t, ast.U64Val{Value: 0}, val.Value)
}

func TestParseCommand_FieldBorrow(t *testing.T) {
	t.Parallel()

	cmd1, err := ParseCommand("t.mvir", []byte("r = &mut x.f"))
	require.NoError(t, err)

	assign1 := cmd1.(ast.AssignCmd)
	borrow1, ok := assign1.Exp.(ast.BorrowExp)
	require.True(t, ok)
	require.True(t, borrow1.Mutable)
	require.Equal(t, ast.Field("f"), borrow1.Field)

	base1, ok := borrow1.Base.(ast.BorrowBaseVar)
	require.True(t, ok)
	require.Equal(t, ast.Var("x"), base1.Var)

	cmd2, err := ParseCommand("t.mvir", []byte("r = &(copy(x)).f"))
	require.NoError(t, err)

	assign2 := cmd2.(ast.AssignCmd)
	borrow2, ok := assign2.Exp.(ast.BorrowExp)
	require.True(t, ok)
	require.False(t, borrow2.Mutable)

	base2, ok := borrow2.Base.(ast.BorrowBaseExp)
	require.True(t, ok)

	_, ok = base2.Exp.(ast.CopyExp)
	require.True(t, ok)
}

func TestParseCommand_MultiReturnCall(t *testing.T) {
	t.Parallel()

	cmd, err := ParseCommand("t.mvir", []byte("a, b = Mod.f(copy(c))"))
	require.NoError(t, err)

	call, ok := cmd.(ast.CallCmd)
	require.True(t, ok)
	require.Equal(t, []ast.Var{"a", "b"}, call.Returns)

	fn, ok := call.Call.(ast.ModuleFunctionCall)
	require.True(t, ok)
	require.Equal(t, ast.ModuleName("Mod"), fn.Module)
	require.Equal(t, ast.FunctionName("f"), fn.Name)
	require.Len(t, call.Actuals, 1)

	cmd2, err := ParseCommand("t.mvir", []byte("a = Mod.f()"))
	require.NoError(t, err)

	call2 := cmd2.(ast.CallCmd)
	require.Equal(t, []ast.Var{"a"}, call2.Returns)
}

func TestParseCommand_PackUnpackSymmetry(t *testing.T) {
	t.Parallel()

	cmd1, err := ParseCommand("t.mvir", []byte("v = T{x: 1, y: true}"))
	require.NoError(t, err)

	assign := cmd1.(ast.AssignCmd)
	pack, ok := assign.Exp.(ast.PackExp)
	require.True(t, ok)
	require.Equal(t, ast.StructName("T"), pack.Name)
	require.Len(t, pack.Fields, 2)
	require.Equal(t, ast.Field("x"), pack.Fields[0].Field)
	require.Equal(t, ast.Field("y"), pack.Fields[1].Field)

	cmd2, err := ParseCommand("t.mvir", []byte("T{x, y} = move(t)"))
	require.NoError(t, err)

	unpack, ok := cmd2.(ast.UnpackCmd)
	require.True(t, ok)
	require.Equal(t, ast.StructName("T"), unpack.Name)
	require.Len(t, unpack.Bindings, 2)
	require.Equal(t, ast.Field("x"), unpack.Bindings[0].Field)
	require.Equal(t, ast.Var("x"), unpack.Bindings[0].Var)
}

func TestParseCommand_PackDuplicateFieldRejected(t *testing.T) {
	t.Parallel()

	_, err := ParseCommand("t.mvir", []byte("v = T{x: 1, x: 2}"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate field key")
}

func TestParseCommand_Builtins(t *testing.T) {
	t.Parallel()

	cmd, err := ParseCommand("t.mvir", []byte("b = exists<Mod.T>(move(addr))"))
	require.NoError(t, err)

	call := cmd.(ast.CallCmd)
	builtin, ok := call.Call.(ast.BuiltinCall)
	require.True(t, ok)
	require.Equal(t, ast.BuiltinExists, builtin.Op)
	require.NotNil(t, builtin.TypeArg)
	require.Equal(t, ast.ModuleName("Mod"), builtin.TypeArg.Module)
	require.Equal(t, ast.StructName("T"), builtin.TypeArg.Name)

	_, err = ParseCommand("t.mvir", []byte("create_account(move(addr))"))
	require.NoError(t, err)
}

func TestParseCommand_AssertReturnContinueBreak(t *testing.T) {
	t.Parallel()

	cmd, err := ParseCommand("t.mvir", []byte("assert(move(c), 42)"))
	require.NoError(t, err)
	require.IsType(t, ast.AssertCmd{}, cmd)

	cmd, err = ParseCommand("t.mvir", []byte("return"))
	require.NoError(t, err)
	ret := cmd.(ast.ReturnCmd)
	require.Empty(t, ret.Values)

	cmd, err = ParseCommand("t.mvir", []byte("return move(a), move(b)"))
	require.NoError(t, err)
	ret = cmd.(ast.ReturnCmd)
	require.Len(t, ret.Values, 2)

	cmd, err = ParseCommand("t.mvir", []byte("continue"))
	require.NoError(t, err)
	require.IsType(t, ast.ContinueCmd{}, cmd)

	cmd, err = ParseCommand("t.mvir", []byte("break"))
	require.NoError(t, err)
	require.IsType(t, ast.BreakCmd{}, cmd)
}

func TestParseModule_ImportAliasSelfRejected(t *testing.T) {
	t.Parallel()

	src := `module M {
		import Transaction.Other as Self;
		main_fn() { return; }
	}`

	_, err := ParseModule("t.mvir", []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reserved")
}

func TestParseModule_ImportAliasOk(t *testing.T) {
	t.Parallel()

	src := `module M {
		import Transaction.Other as Renamed;
		struct Pair { x: u64, y: u64 }
		public f(a: u64): u64 {
			return move(a);
		}
	}`

	mod, err := ParseModule("t.mvir", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Imports, 1)
	require.NotNil(t, mod.Imports[0].Alias)
	require.Equal(t, ast.ModuleName("Renamed"), *mod.Imports[0].Alias)
	require.Len(t, mod.Structs, 1)
	require.Len(t, mod.Functions, 1)
}

func TestParseModule_AddressQualifiedImport(t *testing.T) {
	t.Parallel()

	src := `module M {
		import 0x1.LibraAccount;
		main_fn() { return; }
	}`

	mod, err := ParseModule("t.mvir", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Imports, 1)

	ref, ok := mod.Imports[0].Ident.(ast.QualifiedModuleIdentRef)
	require.True(t, ok)
	require.Equal(t, ast.ModuleName("LibraAccount"), ref.Ident.Name)
	require.Equal(t, byte(1), ref.Ident.Address[ast.AddressLength-1])
}

func TestParseModule_StructFieldRejectsReference(t *testing.T) {
	t.Parallel()

	src := `module M {
		struct S { x: &u64 }
		main_fn() {}
	}`

	_, err := ParseModule("t.mvir", []byte(src))
	require.Error(t, err)
}

func TestParseCommand_AddressPadding(t *testing.T) {
	t.Parallel()

	cmd, err := ParseCommand("t.mvir", []byte("a = 0x1"))
	require.NoError(t, err)

	val := cmd.(ast.AssignCmd).Exp.(ast.ValueExp).Value.(ast.AddressVal)
	for i := 0; i < ast.AddressLength-1; i++ {
		require.Equal(t, byte(0), val.Value[i])
	}
	require.Equal(t, byte(1), val.Value[ast.AddressLength-1])

	long := "0x" + stringsRepeat("f", 65)
	_, err = ParseCommand("t.mvir", []byte("a = "+long))
	require.Error(t, err)
}

func TestParseProgram_VerifyAssume(t *testing.T) {
	t.Parallel()

	src := `main() {
		verify <balance(x) == 0 && moved>
		assume <y != 0>
	}`

	prog, err := ParseProgram("t.mvir", []byte(src))
	require.NoError(t, err)

	body := prog.Script.Main.Body.(ast.MoveBody)
	require.Len(t, body.Code, 2)

	verify, ok := body.Code[0].(ast.VerifyStatement)
	require.True(t, ok)
	require.Equal(t, "balance(x) == 0 && moved", verify.Text)

	assume, ok := body.Code[1].(ast.AssumeStatement)
	require.True(t, ok)
	require.Equal(t, "y != 0", assume.Text)
}

func TestParseModule_RequiresEnsures(t *testing.T) {
	t.Parallel()

	src := `module M {
		public withdraw(amount: u64): u64
			requires <0 < amount>
			ensures <return == amount>
		{
			return move(amount);
		}
	}`

	mod, err := ParseModule("t.mvir", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	require.Len(t, mod.Functions[0].Annotations, 2)

	req, ok := mod.Functions[0].Annotations[0].(ast.RequiresAnnotation)
	require.True(t, ok)
	require.Equal(t, "0 < amount", req.Text)

	ens, ok := mod.Functions[0].Annotations[1].(ast.EnsuresAnnotation)
	require.True(t, ok)
	require.Equal(t, "return == amount", ens.Text)
}

func TestParseModule_NativeFunction(t *testing.T) {
	t.Parallel()

	src := `module M {
		native public hash(data: bytearray): bytearray;
	}`

	mod, err := ParseModule("t.mvir", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	require.IsType(t, ast.NativeBody{}, mod.Functions[0].Body)
	require.Equal(t, ast.Public, mod.Functions[0].Visibility)
}

func TestParseProgram_WithModulesPreamble(t *testing.T) {
	t.Parallel()

	src := `modules:
	module M {
		public f() {
			return;
		}
	}
	script:
	import Transaction.M;
	main() {
		return;
	}`

	prog, err := ParseProgram("t.mvir", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Modules, 1)
	require.Equal(t, ast.ModuleName("M"), prog.Modules[0].Name)
	require.Len(t, prog.Script.Imports, 1)
}

func TestParseProgram_ControlFlow(t *testing.T) {
	t.Parallel()

	src := `main() {
		let x: u64;
		x = 0;
		if (copy(x) == 0) {
			x = 1;
		} else {
			x = 2;
		}
		while (copy(x) == 1) {
			x = 0;
		}
		loop {
			break;
		}
	}`

	prog, err := ParseProgram("t.mvir", []byte(src))
	require.NoError(t, err)

	body := prog.Script.Main.Body.(ast.MoveBody)
	require.Len(t, body.Locals, 1)
	require.Len(t, body.Code, 4)

	ifElse, ok := body.Code[1].(ast.IfElseStatement)
	require.True(t, ok)
	require.NotNil(t, ifElse.Else)

	_, ok = body.Code[2].(ast.WhileStatement)
	require.True(t, ok)

	loop, ok := body.Code[3].(ast.LoopStatement)
	require.True(t, ok)
	require.Len(t, loop.Body, 1)
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}

	return string(out)
}
