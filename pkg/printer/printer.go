// Package printer renders pkg/ast trees back to IR source text. It is the
// supplemented half of the round-trip property (spec.md §8):
// parse(print(parse(s))) == parse(s) for any well-formed s.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/movelang/moveir/pkg/ast"
)

// Printer accumulates rendered text and flushes it to an io.Writer,
// mirroring the teacher's WriteTo-over-a-formatter shape (pkg/ir/picus)
// without needing a general-purpose S-expression formatter — this
// grammar's surface syntax is simple enough to emit with a plain
// strings.Builder and explicit indentation tracking.
type Printer struct {
	buf    strings.Builder
	indent int
}

// New constructs an empty Printer.
func New() *Printer {
	return &Printer{}
}

// WriteTo implements io.WriterTo, flushing the accumulated text.
func (p *Printer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.buf.String())
	return int64(n), err
}

func (p *Printer) String() string {
	return p.buf.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *Printer) writef(format string, args ...any) {
	fmt.Fprintf(&p.buf, format, args...)
}

// PrintProgram renders a full Program (spec.md §4.7). The `modules:
// script:` preamble is emitted only when there is at least one module, to
// round-trip the bare-script form shown by spec.md §8's S1.
func PrintProgram(w io.Writer, prog *ast.Program) (int64, error) {
	p := New()
	p.printProgram(prog)

	return p.WriteTo(w)
}

// PrintModule renders a single ModuleDefinition (spec.md §4.6), the same
// rendering PrintProgram uses for each of a Program's Modules, exposed
// standalone for callers (e.g. `moveir parse module`) that parse a module in
// isolation rather than a full Program.
func PrintModule(w io.Writer, mod *ast.ModuleDefinition) (int64, error) {
	p := New()
	p.printModule(mod)

	return p.WriteTo(w)
}

func (p *Printer) printProgram(prog *ast.Program) {
	if len(prog.Modules) > 0 {
		p.writef("modules:\n")

		for _, mod := range prog.Modules {
			p.printModule(&mod)
			p.writef("\n")
		}

		p.writef("script:\n")
	}

	p.printScript(&prog.Script)
}

func (p *Printer) printModule(mod *ast.ModuleDefinition) {
	p.writeIndent()
	p.writef("module %s {\n", mod.Name)
	p.indent++

	for _, imp := range mod.Imports {
		p.printImport(&imp)
	}

	for _, sd := range mod.Structs {
		p.printStructDef(&sd)
	}

	for i := range mod.Functions {
		p.printFunction(&mod.Functions[i])
	}

	p.indent--
	p.writeIndent()
	p.writef("}\n")
}

func (p *Printer) printScript(s *ast.Script) {
	for _, imp := range s.Imports {
		p.printImport(&imp)
	}

	p.printFunctionHeaderAndBody(&s.Main, true)
}

func (p *Printer) printImport(imp *ast.Import) {
	p.writeIndent()
	p.writef("import %s", p.moduleIdent(imp.Ident))

	if imp.Alias != nil {
		p.writef(" as %s", *imp.Alias)
	}

	p.writef(";\n")
}

func (p *Printer) moduleIdent(ident ast.ModuleIdent) string {
	switch id := ident.(type) {
	case ast.TransactionModuleIdent:
		return fmt.Sprintf("Transaction.%s", id.Name)
	case ast.QualifiedModuleIdentRef:
		return fmt.Sprintf("0x%x.%s", id.Ident.Address[:], id.Ident.Name)
	default:
		return "<unknown-module-ident>"
	}
}

func (p *Printer) printStructDef(sd *ast.StructDefinition) {
	p.writeIndent()

	kw := "struct"
	if sd.IsResource {
		kw = "resource"
	}

	p.writef("%s %s {", kw, sd.Name)

	for i, f := range sd.Fields {
		if i > 0 {
			p.writef(", ")
		}

		p.writef("%s: %s", f.Field, p.typeString(f.Type))
	}

	p.writef("}\n")
}

func (p *Printer) printFunction(fn *ast.Function) {
	p.printFunctionHeaderAndBody(fn, false)
}

// printFunctionHeaderAndBody renders a function or script main. isMain
// skips the visibility/native decoration that main never carries (spec.md
// §4.7: main is always public, move-bodied, no return clause).
func (p *Printer) printFunctionHeaderAndBody(fn *ast.Function, isMain bool) {
	_, isNative := fn.Body.(ast.NativeBody)

	p.writeIndent()

	if isNative {
		p.writef("native ")
	}

	if !isMain && fn.Visibility == ast.Public {
		p.writef("public ")
	}

	p.writef("%s(", fn.Name)

	for i, param := range fn.Params {
		if i > 0 {
			p.writef(", ")
		}

		p.writef("%s: %s", param.Var, p.refTypeString(param.Type))
	}

	p.writef(")")

	if !isMain && len(fn.Returns) > 0 {
		p.writef(": ")

		for i, ty := range fn.Returns {
			if i > 0 {
				p.writef(" * ")
			}

			p.writef("%s", p.refTypeString(ty))
		}
	}

	if isNative {
		p.writef(";\n")
		return
	}

	p.writef("\n")

	for _, ann := range fn.Annotations {
		p.printAnnotation(ann)
	}

	body := fn.Body.(ast.MoveBody)

	p.writeIndent()
	p.writef("{\n")
	p.indent++

	for _, local := range body.Locals {
		p.writeIndent()
		p.writef("let %s: %s;\n", local.Var, p.refTypeString(local.Type))
	}

	for _, stmt := range body.Code {
		p.printStatement(stmt)
	}

	p.indent--
	p.writeIndent()
	p.writef("}\n")
}

func (p *Printer) printAnnotation(ann ast.Annotation) {
	p.writeIndent()

	switch a := ann.(type) {
	case ast.RequiresAnnotation:
		p.writef("requires <%s>\n", a.Text)
	case ast.EnsuresAnnotation:
		p.writef("ensures <%s>\n", a.Text)
	}
}

func (p *Printer) typeString(t ast.Type) string {
	switch ty := t.(type) {
	case ast.PrimitiveType:
		switch ty.Prim {
		case ast.PrimAddress:
			return "address"
		case ast.PrimU64:
			return "u64"
		case ast.PrimBool:
			return "bool"
		case ast.PrimByteArray:
			return "bytearray"
		default:
			return "<unknown-primitive>"
		}
	case ast.NormalType:
		return fmt.Sprintf("%s#%s.%s", ty.Kind, ty.Tag.Module, ty.Tag.Name)
	default:
		return "<unknown-type>"
	}
}

func (p *Printer) refTypeString(t ast.Type) string {
	if ref, ok := t.(ast.ReferenceType); ok {
		if ref.Mutable {
			return "&mut " + p.refTypeString(ref.Inner)
		}

		return "&" + p.refTypeString(ref.Inner)
	}

	return p.typeString(t)
}
