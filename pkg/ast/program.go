package ast

import "github.com/movelang/moveir/pkg/source"

// Import is an `import <ModuleIdent> (as <ModuleName>)?;` declaration. Alias
// is nil when no `as` clause was given. Using the reserved alias Self is a
// parse-time failure (spec.md §4.7), enforced by the parser before an
// Import value is ever constructed.
type Import struct {
	Span  source.Span
	Ident ModuleIdent
	Alias *ModuleName
}

// ModuleDefinition is a module declaration (spec.md §3): name, imports,
// structs, functions, in that fixed order (spec.md §4.7).
type ModuleDefinition struct {
	Span      source.Span
	Name      ModuleName
	Imports   []Import
	Structs   []StructDefinition
	Functions []Function
}

// Script is a script's top-level shape (spec.md §3): imports followed by a
// single `main` function, which is always public, takes no return values,
// and is always move-bodied (spec.md §4.7).
type Script struct {
	Span    source.Span
	Imports []Import
	Main    Function
}

// Program is the full top-level shape (spec.md §3): an optional module
// list followed by exactly one script.
type Program struct {
	Modules []ModuleDefinition
	Script  Script
}
