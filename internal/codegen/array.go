package codegen

import (
	"encoding/json"

	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
	"dyonc/internal/scope"
	"dyonc/internal/transerr"
	"dyonc/internal/typeinfer"
)

// array emits a literal array as a monomorphic vec![...] when every
// element's inferred type joins to something concrete, or a vec![...]
// of boxed dynamic variables when the join lattice bottoms out at
// Variable (§4.3).
func (e *emitter) array(tabs, stackLen int, a *ast.Array) error {
	box := typeinfer.ShouldBox(a.Items)
	if err := e.write("vec!["); err != nil {
		return err
	}
	n := len(a.Items)
	for i, item := range a.Items {
		if box {
			if err := e.write("%s(&", runtimecontract.Variable); err != nil {
				return err
			}
			if err := e.expr(tabs, stackLen, item); err != nil {
				return err
			}
			if err := e.write(")"); err != nil {
				return err
			}
		} else {
			if err := e.expr(tabs, stackLen, item); err != nil {
				return err
			}
		}
		if i+1 != n {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	return e.write("]")
}

// object emits a literal key/value map as a scoped block that builds a
// HashMap, boxing every value as a dynamic variable (an Object's values
// are always heterogeneous across keys, so there is no monomorphic
// shortcut the way there is for Array).
func (e *emitter) object(tabs, stackLen int, o *ast.Object) error {
	if len(o.KeyValues) == 0 {
		return transerr.StructuralViolation(o, "Object literal must have at least one key")
	}
	temp := scope.Name(stackLen)
	if err := e.write("{\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("let mut %s: HashMap<Arc<String>, Variable> = HashMap::new();\n", temp); err != nil {
		return err
	}
	for _, kv := range o.KeyValues {
		if err := e.tabs(tabs + 1); err != nil {
			return err
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return transerr.WrapIO(err)
		}
		if err := e.write("%s.insert(Arc::new(%s.into()), %s(&", temp, key, runtimecontract.Variable); err != nil {
			return err
		}
		if err := e.expr(tabs+1, stackLen+1, kv.Value); err != nil {
			return err
		}
		if err := e.write("));\n"); err != nil {
			return err
		}
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("Object::new(%s)\n", temp); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}
