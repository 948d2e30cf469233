package codegen

import (
	"dyonc/internal/ast"
	"dyonc/internal/transerr"
)

// emitType lowers a source Type to its TL spelling (§4.6's signature
// bullet): Text -> str (borrowed), Array(T) -> a sequence of T with
// inner-Text rendered as a sequence of borrowed string slices,
// Secret<T> -> Secret<T, f64>, closures -> function-pointer types of
// matching arity/return.
func (e *emitter) emitType(t ast.Type) error {
	switch ty := t.(type) {
	case ast.F64Type:
		return e.write("f64")
	case ast.BoolType:
		return e.write("bool")
	case ast.Vec4Type:
		return e.write("[f32; 4]")
	case ast.TextType:
		return e.write("str")
	case ast.ArrayType:
		if err := e.write("Vec<"); err != nil {
			return err
		}
		if _, isText := ty.Elem.(ast.TextType); isText {
			if err := e.write("&"); err != nil {
				return err
			}
		}
		if err := e.emitType(ty.Elem); err != nil {
			return err
		}
		return e.write(">")
	case ast.SecretType:
		if err := e.write("Secret<"); err != nil {
			return err
		}
		if err := e.emitType(ty.Elem); err != nil {
			return err
		}
		return e.write(", f64>")
	case ast.ClosureType:
		if err := e.write("Fn("); err != nil {
			return err
		}
		n := len(ty.Args)
		for i, arg := range ty.Args {
			if err := e.emitType(arg); err != nil {
				return err
			}
			if i+1 < n {
				if err := e.write(", "); err != nil {
					return err
				}
			}
		}
		if err := e.write(")"); err != nil {
			return err
		}
		if _, void := ty.Ret.(ast.Void); void {
			return nil
		}
		if err := e.write(" -> "); err != nil {
			return err
		}
		return e.emitType(ty.Ret)
	case ast.Void:
		return nil
	default:
		return transerr.Unsupported(t, "unsupported type %T", t)
	}
}
