// Package typeinfer implements the array-literal type lattice of
// spec.md §4.3, used by the Array emitter to decide between
// a monomorphic target sequence and a sequence of boxed dynamic
// variables.
//
// Ported from original_source/src/lib.rs's generate_array ArrayType
// enum/refine_match, kept as a pure value type rather than Rust's
// mutable "refine into accumulator" style — idiomatic Go prefers
// folding with Join over mutating a running inference in place.
package typeinfer

import "dyonc/internal/ast"

// Kind is one lattice element.
type Kind int

const (
	Unknown Kind = iota
	KBool
	KF64
	KStr
	KVec4
	KLink
	KObject
	KArray
	KVariable
)

// Type is a lattice value: Kind plus, for KArray, the inferred element
// type (nil element means "no element ever contributed a type" —
// Array(None) in spec.md §4.3).
type Type struct {
	Kind Kind
	Elem *Type
}

func simple(k Kind) Type { return Type{Kind: k} }

// Variable is the top of the lattice: "must box as a dynamic variable".
var Variable = simple(KVariable)

// Infer computes the per-element contribution of a single expression
// (§4.3's per-element rule). Expressions outside the documented set
// contribute Unknown ("any other expression").
func Infer(e ast.Expr) Type {
	switch v := e.(type) {
	case *ast.Number, *ast.Sum, *ast.Prod:
		return simple(KF64)
	case *ast.Text:
		return simple(KStr)
	case *ast.Bool:
		return simple(KBool)
	case *ast.Vec4:
		return simple(KVec4)
	case *ast.Object:
		return simple(KObject)
	case *ast.Array:
		var elem *Type
		for _, it := range v.Items {
			t := Infer(it)
			if elem == nil {
				if t.Kind == Unknown {
					continue
				}
				cp := t
				elem = &cp
				continue
			}
			joined := Join(*elem, t)
			elem = &joined
		}
		return Type{Kind: KArray, Elem: elem}
	default:
		return Type{Kind: Unknown}
	}
}

// InferAll folds Infer/Join across every element of items, the
// sequence an Array or Vec4 literal's element list actually is.
func InferAll(items []ast.Expr) Type {
	var result Type
	have := false
	for _, it := range items {
		t := Infer(it)
		if t.Kind == Unknown {
			continue
		}
		if !have {
			result = t
			have = true
			continue
		}
		result = Join(result, t)
	}
	if !have {
		return Type{Kind: Unknown}
	}
	return result
}

// Join implements the §4.3 join table: equal types join to themselves;
// Array(None) joins with Array(Some(t)) to Array(Some(t)); Array(Some)
// joins element-wise and widens to Variable if either side already is;
// otherwise unequal types join to Variable.
func Join(a, b Type) Type {
	if a.Kind == KArray && b.Kind == KArray {
		return joinArrays(a, b)
	}
	if a.Kind == b.Kind {
		return a
	}
	return Variable
}

func joinArrays(a, b Type) Type {
	switch {
	case a.Elem == nil && b.Elem == nil:
		return Type{Kind: KArray}
	case a.Elem == nil:
		return b
	case b.Elem == nil:
		return a
	}
	if a.Elem.Kind == KVariable || b.Elem.Kind == KVariable {
		return Variable
	}
	res := Join(*a.Elem, *b.Elem)
	return Type{Kind: KArray, Elem: &res}
}

// ShouldBox reports whether the emission policy requires every
// element to go through the `variable(&...)` boxing coercion — true
// iff InferAll(items) is Variable.
func ShouldBox(items []ast.Expr) bool {
	return InferAll(items).Kind == KVariable
}
