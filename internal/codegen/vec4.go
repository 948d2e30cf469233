package codegen

import (
	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
	"dyonc/internal/scope"
	"dyonc/internal/transerr"
)

// vec4 emits a [f32; 4] literal from up to 4 lane sub-expressions
// (invariant 3: the total lane count, after widening every Swizzle
// child by its own Lanes(), is always exactly 4). Plain literals (no
// Swizzle child) emit a flat loop of bare expressions — Rust infers
// each lane's type from the array's own [f32; 4] element type, so no
// `as f32` cast (source/swizzle.rs, source/array2.rs). A literal with
// one or more Swizzle children (spec.md §4.5.1 "With swizzles", e.g.
// `[v.yx, 0, 0]`) is the combinator case, handled by vec4Combinator.
func (e *emitter) vec4(tabs, stackLen int, v *ast.Vec4) error {
	total := 0
	hasSwizzle := false
	for _, a := range v.Args {
		if s, ok := a.(*ast.Swizzle); ok {
			hasSwizzle = true
			total += s.Lanes()
		} else {
			total++
		}
	}
	if total != 4 {
		return transerr.StructuralViolation(v, "Vec4 literal has %d lanes, want 4", total)
	}
	if !hasSwizzle {
		return e.vec4Plain(tabs, stackLen, v)
	}
	return e.vec4Combinator(tabs, stackLen, v)
}

func (e *emitter) vec4Plain(tabs, stackLen int, v *ast.Vec4) error {
	if err := e.write("["); err != nil {
		return err
	}
	for i, arg := range v.Args {
		if err := e.expr(tabs, stackLen, arg); err != nil {
			return err
		}
		if i+1 != len(v.Args) {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	return e.write("]")
}

// swizzleAux is the aux binding(s) allocated for one Swizzle child of a
// Vec4 literal: one name for a 2- or 3-lane child, two for a full
// 4-lane child (see swizzle()'s doc comment for why a 4-lane swizzle
// needs the split).
type swizzleAux struct {
	first, second string
	fourLane      bool
}

// vec4Combinator merges one or more Swizzle children into the literal
// in place: each Swizzle source is bound once (or twice, for a 4-lane
// child) into a `let ref` aux ahead of a single flat 4-lane array, so
// a swizzled component mixed with plain scalars never re-evaluates its
// source per lane and never nests a block expression as one element of
// the outer array — generalizing source/swizzle.rs's own aux-binding
// shape to handle more than one swizzle contributing to the literal.
func (e *emitter) vec4Combinator(tabs, stackLen int, v *ast.Vec4) error {
	if err := e.write("{\n"); err != nil {
		return err
	}

	auxByArg := make([]swizzleAux, len(v.Args))
	next := stackLen
	for i, a := range v.Args {
		s, ok := a.(*ast.Swizzle)
		if !ok {
			continue
		}
		aux1 := scope.Name(next)
		next++
		if err := e.tabs(tabs + 1); err != nil {
			return err
		}
		if err := e.write("let ref %s = ", aux1); err != nil {
			return err
		}
		if err := e.expr(tabs+1, stackLen, s.Expr); err != nil {
			return err
		}
		if err := e.write(";\n"); err != nil {
			return err
		}

		ref := swizzleAux{first: aux1}
		if s.Lanes() == 4 {
			aux2 := scope.Name(next)
			next++
			if err := e.tabs(tabs + 1); err != nil {
				return err
			}
			if err := e.write("let ref %s = ", aux2); err != nil {
				return err
			}
			if err := e.expr(tabs+1, stackLen, s.Expr); err != nil {
				return err
			}
			if err := e.write(";\n"); err != nil {
				return err
			}
			ref.second = aux2
			ref.fourLane = true
		}
		auxByArg[i] = ref
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("["); err != nil {
		return err
	}
	first := true
	writeSep := func() error {
		if first {
			first = false
			return nil
		}
		return e.write(", ")
	}
	for i, a := range v.Args {
		s, ok := a.(*ast.Swizzle)
		if !ok {
			if err := writeSep(); err != nil {
				return err
			}
			if err := e.expr(tabs+1, stackLen, a); err != nil {
				return err
			}
			continue
		}
		lanes := []int{s.Sw0, s.Sw1}
		if s.Sw2 != nil {
			lanes = append(lanes, *s.Sw2)
		}
		if s.Sw3 != nil {
			lanes = append(lanes, *s.Sw3)
		}
		ref := auxByArg[i]
		for j, lane := range lanes {
			if err := writeSep(); err != nil {
				return err
			}
			aux := ref.first
			if ref.fourLane && j >= 2 {
				aux = ref.second
			}
			if err := e.write("%s(%s, %d)", runtimecontract.IndexVec4LookUp, aux, lane); err != nil {
				return err
			}
		}
	}
	if err := e.write("]\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}

// swizzle evaluates its source expression into one or more `let ref`
// aux bindings — so a swizzle on a call result doesn't re-invoke the
// call per lane — then reads back each requested lane through
// index::vec4_look_up(aux, lane) (no & on either operand: aux is
// already a reference, lane is a plain usize), padding with 0.0 out to
// 4 lanes (source/swizzle.rs: the result is always a full [f32; 4],
// never a shorter array). This is the standalone case — a Swizzle
// reached directly, not nested inside a Vec4 literal's Args (see
// vec4Combinator for that case).
//
// A 2- or 3-lane swizzle binds the source once (_1) and indexes it for
// every requested lane. A full 4-lane swizzle binds it TWICE (_1 for
// lanes 0-1, _2 for lanes 2-3) even though both aliase the same
// source expression — source/swizzle.rs's sixth case is the only
// 4-lane example in the fixture and shows this exact split, so it is
// reproduced here rather than collapsed to a single binding.
func (e *emitter) swizzle(tabs, stackLen int, s *ast.Swizzle) error {
	lanes := []int{s.Sw0, s.Sw1}
	if s.Sw2 != nil {
		lanes = append(lanes, *s.Sw2)
	}
	fourLane := s.Sw3 != nil
	if fourLane {
		lanes = append(lanes, *s.Sw3)
	}

	aux1 := scope.Name(stackLen)
	if err := e.write("{\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("let ref %s = ", aux1); err != nil {
		return err
	}
	if err := e.expr(tabs+1, stackLen, s.Expr); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
		return err
	}

	aux2 := aux1
	if fourLane {
		aux2 = scope.Name(stackLen + 1)
		if err := e.tabs(tabs + 1); err != nil {
			return err
		}
		if err := e.write("let ref %s = ", aux2); err != nil {
			return err
		}
		if err := e.expr(tabs+1, stackLen, s.Expr); err != nil {
			return err
		}
		if err := e.write(";\n"); err != nil {
			return err
		}
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("["); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		if i < len(lanes) {
			aux := aux1
			if fourLane && i >= 2 {
				aux = aux2
			}
			if err := e.write("%s(%s, %d)", runtimecontract.IndexVec4LookUp, aux, lanes[i]); err != nil {
				return err
			}
		} else if err := e.write("0.0"); err != nil {
			return err
		}
		if i != 3 {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	if err := e.write("]\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}
