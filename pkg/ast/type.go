package ast

// Kind distinguishes a Resource struct (which later passes forbid from
// being duplicated or dropped arbitrarily) from a freely-copyable Value
// struct (spec.md §3, GLOSSARY).
type Kind uint8

const (
	// KindResource tags a struct declared with the `resource` keyword.
	KindResource Kind = iota
	// KindValue tags a struct declared with the `struct` keyword.
	KindValue
)

// String renders a Kind as its single-letter source tag ("R#.../V#...").
func (k Kind) String() string {
	if k == KindResource {
		return "R"
	}

	return "V"
}

// Primitive enumerates the four built-in scalar types.
type Primitive uint8

const (
	// PrimAddress is the `address` primitive type.
	PrimAddress Primitive = iota
	// PrimU64 is the `u64` primitive type.
	PrimU64
	// PrimBool is the `bool` primitive type.
	PrimBool
	// PrimByteArray is the `bytearray` primitive type.
	PrimByteArray
)

// String renders a Primitive as its source keyword.
func (p Primitive) String() string {
	switch p {
	case PrimAddress:
		return "address"
	case PrimU64:
		return "u64"
	case PrimBool:
		return "bool"
	case PrimByteArray:
		return "bytearray"
	default:
		return "?"
	}
}

// StructTag names a struct declared in a specific module: "module.name" in
// source (spec.md §4.6).
type StructTag struct {
	Module ModuleName
	Name   StructName
}

// Type is one of: a primitive, a tagged normal (struct) type, or a
// reference wrapping a non-reference type (spec.md §3).
type Type interface {
	isType()
}

// PrimitiveType is one of address, u64, bool, bytearray.
type PrimitiveType struct {
	Prim Primitive
}

func (PrimitiveType) isType() {}

// NormalType is a tagged struct type, Normal(kind, tag) in spec.md §3.
type NormalType struct {
	Kind Kind
	Tag  StructTag
}

func (NormalType) isType() {}

// ReferenceType is &T or &mut T. Per spec.md §3 ("references-to-references
// are not expressible") Inner must never itself be a ReferenceType; this
// is enforced syntactically by the grammar (RefAnnotation cannot nest, per
// spec.md §4.6) rather than checked here, but NewReferenceType asserts it
// as a defensive check against a parser bug.
type ReferenceType struct {
	Mutable bool
	Inner   Type
}

func (ReferenceType) isType() {}

// NewReferenceType constructs a reference type, panicking if inner is
// itself a reference (which would indicate a grammar bug, not a malformed
// input — malformed references-to-references cannot be produced by the
// grammar in the first place).
func NewReferenceType(mutable bool, inner Type) ReferenceType {
	if _, ok := inner.(ReferenceType); ok {
		panic("reference-to-reference type")
	}

	return ReferenceType{mutable, inner}
}
