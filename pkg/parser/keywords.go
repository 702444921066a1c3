package parser

import "github.com/movelang/moveir/pkg/ast"

// Keywords are contextual (spec.md §4.1: "must not be matched as
// identifiers where both apply — prefer the keyword"): the lexer emits
// every one of them as a plain Ident token, and the parser recognises a
// keyword only at the grammar positions where one may legally appear,
// comparing against this authoritative list (spec.md §6).
const (
	kwModule      = "module"
	kwScript      = "script"
	kwMain        = "main"
	kwImport      = "import"
	kwAs          = "as"
	kwPublic      = "public"
	kwNative      = "native"
	kwStruct      = "struct"
	kwResource    = "resource"
	kwLet         = "let"
	kwReturn      = "return"
	kwIf          = "if"
	kwElse        = "else"
	kwWhile       = "while"
	kwLoop        = "loop"
	kwContinue    = "continue"
	kwBreak       = "break"
	kwAssert      = "assert"
	kwVerify      = "verify"
	kwAssume      = "assume"
	kwRequires    = "requires"
	kwEnsures     = "ensures"
	kwTrue        = "true"
	kwFalse       = "false"
	kwMove        = "move"
	kwCopy        = "copy"
	kwAddress     = "address"
	kwU64         = "u64"
	kwBool        = "bool"
	kwByteArray   = "bytearray"
	kwTransaction = "Transaction"
	kwModules     = "modules"
	kwKindResource = "R"
	kwKindValue    = "V"
)

// builtinNames maps each builtin keyword's surface spelling to its closed
// enumeration member (spec.md §3).
var builtinNames = map[string]ast.BuiltinOp{
	"create_account":          ast.BuiltinCreateAccount,
	"release":                 ast.BuiltinRelease,
	"exists":                  ast.BuiltinExists,
	"borrow_global":           ast.BuiltinBorrowGlobal,
	"get_height":              ast.BuiltinGetHeight,
	"get_txn_sender":          ast.BuiltinGetTxnSender,
	"get_txn_sequence_number": ast.BuiltinGetTxnSequenceNumber,
	"get_txn_gas_unit_price":  ast.BuiltinGetTxnGasUnitPrice,
	"get_txn_max_gas_units":   ast.BuiltinGetTxnMaxGasUnits,
	"emit_event":              ast.BuiltinEmitEvent,
	"move_from":                ast.BuiltinMoveFrom,
	"move_to_sender":           ast.BuiltinMoveToSender,
	"get_gas_remaining":        ast.BuiltinGetGasRemaining,
	"freeze":                   ast.BuiltinFreeze,
}
