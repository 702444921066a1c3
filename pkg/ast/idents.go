package ast

// Var, Field, StructName, ModuleName and FunctionName are each a distinct
// newtyped string (spec.md §3), so the Go compiler catches the obvious
// mistake of passing one kind of identifier where another is expected.
type (
	// Var names a local variable or formal parameter.
	Var string
	// Field names a struct field.
	Field string
	// StructName names a struct or resource declaration.
	StructName string
	// ModuleName names a module, or aliases one in an import.
	ModuleName string
	// FunctionName names a function declaration.
	FunctionName string
)

// SelfModuleAlias is the reserved module-name alias referring to the
// enclosing module (spec.md §3: "ModuleName reserves the literal Self as an
// alias for the enclosing module").
const SelfModuleAlias ModuleName = "Self"

// QualifiedModuleIdent pairs a 32-byte account address with a module name,
// identifying a module globally (spec.md §3, GLOSSARY).
type QualifiedModuleIdent struct {
	Address Address
	Name    ModuleName
}

// ModuleIdent is either a script-local reference (Transaction.<name>) or a
// globally Qualified(address, name) reference (spec.md §3).
type ModuleIdent interface {
	isModuleIdent()
}

// TransactionModuleIdent is the script-local form "Transaction.<name>".
type TransactionModuleIdent struct {
	Name ModuleName
}

func (TransactionModuleIdent) isModuleIdent() {}

// QualifiedModuleIdentRef is the globally-qualified form
// "Qualified(address, name)".
type QualifiedModuleIdentRef struct {
	Ident QualifiedModuleIdent
}

func (QualifiedModuleIdentRef) isModuleIdent() {}
