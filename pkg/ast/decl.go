package ast

import "github.com/movelang/moveir/pkg/source"

// Visibility is a function's declared visibility (spec.md §3).
type Visibility uint8

const (
	// Internal is the default visibility: callable only from within the
	// enclosing module.
	Internal Visibility = iota
	// Public functions are callable from other modules and scripts.
	Public
)

// Param is one `(Var, Type)` entry of a formal parameter list or a local
// declaration list.
type Param struct {
	Var  Var
	Type Type
}

// Annotation is a `requires <...>` / `ensures <...>` verification pragma
// attached to a function signature (spec.md §4.5).
type Annotation interface {
	isAnnotation()
}

// RequiresAnnotation is `requires <text>`.
type RequiresAnnotation struct {
	Span source.Span
	Text string
}

func (RequiresAnnotation) isAnnotation() {}

// EnsuresAnnotation is `ensures <text>`.
type EnsuresAnnotation struct {
	Span source.Span
	Text string
}

func (EnsuresAnnotation) isAnnotation() {}

// FunctionBody is either Native (no code) or Move (locals + a block of
// statements) (spec.md §3).
type FunctionBody interface {
	isFunctionBody()
}

// NativeBody marks a `native` function, which has no IR body.
type NativeBody struct{}

func (NativeBody) isFunctionBody() {}

// MoveBody is the body of a move-bodied function: its local declarations,
// which all appear at the head of the body (spec.md §4.7), followed by its
// code.
type MoveBody struct {
	Locals []Param
	Code   Block
}

func (MoveBody) isFunctionBody() {}

// Function is a function declaration (spec.md §3, §4.7).
type Function struct {
	Span        source.Span
	Name        FunctionName
	Visibility  Visibility
	Params      []Param
	Returns     []Type
	Annotations []Annotation
	Body        FunctionBody
}

// StructField is one `field: Annotation` entry of a struct declaration.
// Field types are always non-reference (spec.md §3's struct-field
// invariant).
type StructField struct {
	Field Field
	Type  Type
}

// StructDefinition is a `struct`/`resource` declaration (spec.md §3,
// §4.7).
type StructDefinition struct {
	Span       source.Span
	IsResource bool
	Name       StructName
	Fields     []StructField
}

// Kind returns the struct's tag kind, derived from IsResource.
func (d StructDefinition) Kind() Kind {
	if d.IsResource {
		return KindResource
	}

	return KindValue
}
