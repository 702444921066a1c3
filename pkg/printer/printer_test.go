package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movelang/moveir/pkg/ast"
	"github.com/movelang/moveir/pkg/parser"
	"github.com/movelang/moveir/pkg/printer"
)

// roundTrip parses src, prints the resulting tree, reparses the printed
// text, and returns both trees so callers can assert they agree — the
// property spec.md §8 requires of any well-formed program.
func roundTrip(t *testing.T, src string) (*ast.Program, *ast.Program, string) {
	t.Helper()

	prog, err := parser.ParseProgram("t.mvir", []byte(src))
	require.NoError(t, err)

	var buf strings.Builder
	_, err = printer.PrintProgram(&buf, prog)
	require.NoError(t, err)

	reprog, err := parser.ParseProgram("t2.mvir", []byte(buf.String()))
	require.NoError(t, err)

	return prog, reprog, buf.String()
}

func TestPrintProgram_EmptyScriptRoundTrips(t *testing.T) {
	t.Parallel()

	_, reprog, out := roundTrip(t, "main() {}")
	require.Contains(t, out, "main(")
	require.Equal(t, ast.FunctionName("main"), reprog.Script.Main.Name)
	require.Empty(t, reprog.Modules)
}

func TestPrintProgram_ArithmeticRoundTrips(t *testing.T) {
	t.Parallel()

	src := "main() { x = 1 + 2 * 3 == 7; return; }"

	_, reprog, _ := roundTrip(t, src)

	body := reprog.Script.Main.Body.(ast.MoveBody)
	require.Len(t, body.Code, 2)

	cs, ok := body.Code[0].(ast.CommandStatement)
	require.True(t, ok)

	assign, ok := cs.Cmd.(ast.AssignCmd)
	require.True(t, ok)
	require.Equal(t, ast.Var("x"), assign.Var)

	top, ok := assign.Exp.(ast.BinopExp)
	require.True(t, ok)
	require.Equal(t, ast.OpEq, top.Op)
}

func TestPrintProgram_ModuleRoundTrips(t *testing.T) {
	t.Parallel()

	src := `
modules:
module M {
    resource T { v: u64 }

    public create(v: u64): R#Self.T {
        let t: R#Self.T;
        t = T{v: move(v)};
        return move(t);
    }
}
script:
import Transaction.M;
main() {
    return;
}
`

	prog, reprog, out := roundTrip(t, src)

	require.Len(t, prog.Modules, 1)
	require.Len(t, reprog.Modules, 1)
	require.Contains(t, out, "modules:")
	require.Contains(t, out, "script:")

	mod := reprog.Modules[0]
	require.Equal(t, ast.ModuleName("M"), mod.Name)
	require.Len(t, mod.Structs, 1)
	require.True(t, mod.Structs[0].IsResource)
	require.Len(t, mod.Functions, 1)
	require.Equal(t, ast.Public, mod.Functions[0].Visibility)
}

func TestPrintProgram_BorrowAndDereferenceRoundTrip(t *testing.T) {
	t.Parallel()

	src := "main() { let x: u64; let r: &mut u64; r = &mut x; *move(r) = 5; return; }"

	_, reprog, _ := roundTrip(t, src)

	body := reprog.Script.Main.Body.(ast.MoveBody)
	require.Len(t, body.Locals, 2)

	cs, ok := body.Code[1].(ast.CommandStatement)
	require.True(t, ok)

	mutate, ok := cs.Cmd.(ast.MutateCmd)
	require.True(t, ok)

	deref, ok := mutate.Lhs.(ast.DereferenceExp)
	require.True(t, ok)

	_, ok = deref.Exp.(ast.MoveExp)
	require.True(t, ok)
}

func TestPrintProgram_FieldBorrowOfBareVariableRoundTrips(t *testing.T) {
	t.Parallel()

	src := `
modules:
module M {
    resource T { v: u64 }
    public dummy() {
        return;
    }
}
script:
main() {
    let t: R#M.T;
    let r: &mut u64;
    t = T{v: 5};
    r = &mut t.v;
    return;
}
`

	_, reprog, out := roundTrip(t, src)
	require.Contains(t, out, "&mut t.v")

	body := reprog.Script.Main.Body.(ast.MoveBody)

	cs, ok := body.Code[1].(ast.CommandStatement)
	require.True(t, ok)

	assign, ok := cs.Cmd.(ast.AssignCmd)
	require.True(t, ok)

	borrow, ok := assign.Exp.(ast.BorrowExp)
	require.True(t, ok)
	require.True(t, borrow.Mutable)
	require.Equal(t, ast.Field("v"), borrow.Field)

	base, ok := borrow.Base.(ast.BorrowBaseVar)
	require.True(t, ok)
	require.Equal(t, ast.Var("t"), base.Var)
}

func TestPrintProgram_FieldBorrowOfParenthesizedExpRoundTrips(t *testing.T) {
	t.Parallel()

	src := `
modules:
module M {
    resource T { v: u64 }
    public dummy() {
        return;
    }
}
script:
main() {
    let t: R#M.T;
    let r: &u64;
    t = T{v: 5};
    r = &(copy(t)).v;
    return;
}
`

	_, reprog, out := roundTrip(t, src)
	require.Contains(t, out, "&(copy(t)).v")

	body := reprog.Script.Main.Body.(ast.MoveBody)

	cs, ok := body.Code[1].(ast.CommandStatement)
	require.True(t, ok)

	assign, ok := cs.Cmd.(ast.AssignCmd)
	require.True(t, ok)

	borrow, ok := assign.Exp.(ast.BorrowExp)
	require.True(t, ok)
	require.False(t, borrow.Mutable)

	base, ok := borrow.Base.(ast.BorrowBaseExp)
	require.True(t, ok)

	_, ok = base.Exp.(ast.CopyExp)
	require.True(t, ok)
}

func TestPrintProgram_IfElseRoundTrips(t *testing.T) {
	t.Parallel()

	src := "main() { let x: u64; x = 1; if (copy(x) == 1) { x = 2; } else { x = 3; } return; }"

	_, reprog, _ := roundTrip(t, src)

	body := reprog.Script.Main.Body.(ast.MoveBody)

	var ifStmt ast.IfElseStatement

	found := false

	for _, stmt := range body.Code {
		if ie, ok := stmt.(ast.IfElseStatement); ok {
			ifStmt = ie
			found = true
		}
	}

	require.True(t, found)
	require.NotNil(t, ifStmt.Else)
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, *ifStmt.Else, 1)
}

func TestPrintProgram_BuiltinCallRoundTrips(t *testing.T) {
	t.Parallel()

	src := "main() { let a: address; a = get_txn_sender(); exists<M.T>(copy(a)); return; }"

	_, reprog, out := roundTrip(t, src)
	require.Contains(t, out, "exists<")

	body := reprog.Script.Main.Body.(ast.MoveBody)
	require.Len(t, body.Code, 3)
}

func TestPrintProgram_PackUnpackRoundTrips(t *testing.T) {
	t.Parallel()

	src := `
modules:
module M {
    resource T { v: u64 }
    public dummy() {
        return;
    }
}
script:
main() {
    let t: R#M.T;
    let v: u64;
    t = T{v: 5};
    T{v: v} = move(t);
    return;
}
`

	_, reprog, out := roundTrip(t, src)
	require.Contains(t, out, "T{v: 5}")

	body := reprog.Script.Main.Body.(ast.MoveBody)

	cs, ok := body.Code[1].(ast.CommandStatement)
	require.True(t, ok)

	unpack, ok := cs.Cmd.(ast.UnpackCmd)
	require.True(t, ok)
	require.Equal(t, ast.StructName("T"), unpack.Name)
}
