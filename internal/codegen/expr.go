package codegen

import (
	"encoding/json"
	"strconv"

	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
	"dyonc/internal/scope"
	"dyonc/internal/transerr"
)

// expr dispatches on the concrete node type and emits its TL text
// fragment — both a valid expression and parsimonious: exactly the
// operands actually needed (§4.4).
func (e *emitter) expr(tabs, stackLen int, node ast.Expr) error {
	switch v := node.(type) {
	case *ast.Call:
		return e.call(tabs, stackLen, v)
	case *ast.CallClosure:
		return e.callClosure(tabs, stackLen, v)
	case *ast.Closure:
		return e.closure(tabs, stackLen, v)
	case *ast.Item:
		return e.item(tabs, stackLen, v)
	case *ast.Number:
		return e.number(v)
	case *ast.Bool:
		return e.write("%t", v.Value)
	case *ast.Text:
		return e.text(v)
	case *ast.Vec4:
		return e.vec4(tabs, stackLen, v)
	case *ast.Swizzle:
		return e.swizzle(tabs, stackLen, v)
	case *ast.Array:
		return e.array(tabs, stackLen, v)
	case *ast.Object:
		return e.object(tabs, stackLen, v)
	case *ast.BinOpExpr:
		return e.binOp(tabs, stackLen, v)
	case *ast.Compare:
		return e.compare(tabs, stackLen, v)
	case *ast.UnOpExpr:
		return e.unOp(tabs, stackLen, v)
	case *ast.Assign:
		return e.assign(tabs, stackLen, v)
	case *ast.If:
		return e.ifExpr(tabs, stackLen, v)
	case *ast.For:
		return e.forExpr(tabs, stackLen, v)
	case *ast.ForN:
		return e.aggregate(tabs, stackLen, plain, v)
	case *ast.Sum:
		return e.aggregate(tabs, stackLen, sum, &v.ForN)
	case *ast.Prod:
		return e.aggregate(tabs, stackLen, prod, &v.ForN)
	case *ast.All:
		return e.aggregate(tabs, stackLen, all, &v.ForN)
	case *ast.Any:
		return e.aggregate(tabs, stackLen, any, &v.ForN)
	case *ast.Min:
		return e.aggregate(tabs, stackLen, min, &v.ForN)
	case *ast.Max:
		return e.aggregate(tabs, stackLen, max, &v.ForN)
	case *ast.Sift:
		return e.aggregate(tabs, stackLen, sift, &v.ForN)
	case *ast.BlockExpr:
		if err := e.write("{\n"); err != nil {
			return err
		}
		if err := e.block(tabs+1, stackLen, v.Block); err != nil {
			return err
		}
		if err := e.write("\n"); err != nil {
			return err
		}
		if err := e.tabs(tabs); err != nil {
			return err
		}
		return e.write("}")
	case *ast.Break:
		return e.breakExpr(v)
	case *ast.Continue:
		return e.continueExpr(v)
	case *ast.Return:
		if err := e.write("return "); err != nil {
			return err
		}
		return e.expr(tabs, stackLen, v.Expr)
	default:
		return transerr.Unsupported(node, "unsupported expression variant %T", node)
	}
}

func (e *emitter) number(n *ast.Number) error {
	if err := e.write(formatFloat(n.Value)); err != nil {
		return err
	}
	if n.Value == float64(int64(n.Value)) {
		return e.write(".0")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (e *emitter) text(t *ast.Text) error {
	b, err := json.Marshal(t.Value)
	if err != nil {
		return transerr.WrapIO(err)
	}
	return e.write("%s", b)
}

// call emits `name(` with the mutability tag stripped, then each
// argument prefixed &/&mut per the tag, recursing into the callee's
// own argument stack_len — which is bumped by one when the call
// resolves to a loaded function that itself returns a value, mirroring
// original_source/src/lib.rs's generate_call return_var offset
// (supplemented beyond spec.md's simplified Call bullet, see
// SPEC_FULL.md §8).
func (e *emitter) call(tabs, stackLen int, call *ast.Call) error {
	name := ast.StripMutabilityTag(call.Name)
	if name == "where" {
		name = "where_"
	}
	if err := e.write("%s(", name); err != nil {
		return err
	}

	returnVar := 0
	if call.FIndex != nil && *call.FIndex >= 0 && *call.FIndex < len(e.module.Functions) {
		if e.module.Functions[*call.FIndex].Returns() {
			returnVar = 1
		}
	}

	mutable := ast.MutableArgs(call.Name)
	n := len(call.Args)
	for i, arg := range call.Args {
		if i < len(mutable) && mutable[i] {
			if err := e.write("&mut "); err != nil {
				return err
			}
		} else {
			if err := e.write("&"); err != nil {
				return err
			}
		}
		if err := e.expr(tabs, stackLen+returnVar, arg); err != nil {
			return err
		}
		if i+1 != n {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	return e.write(")")
}

func (e *emitter) callClosure(tabs, stackLen int, cc *ast.CallClosure) error {
	if err := e.write("("); err != nil {
		return err
	}
	if err := e.item(tabs, stackLen, &cc.Item); err != nil {
		return err
	}
	if err := e.write(")("); err != nil {
		return err
	}
	n := len(cc.Args)
	for i, arg := range cc.Args {
		if err := e.expr(tabs, stackLen, arg); err != nil {
			return err
		}
		if i+1 < n {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	return e.write(")")
}

// closure emits a closure literal with positional parameter names
// _{stack_len+i} and a body evaluated at stack_len+arity (§4.4 Closure
// bullet).
func (e *emitter) closure(tabs, stackLen int, c *ast.Closure) error {
	if err := e.write("|"); err != nil {
		return err
	}
	n := len(c.Args)
	for i := range c.Args {
		if err := e.write(scope.Name(stackLen + i)); err != nil {
			return err
		}
		if i+1 < n {
			if err := e.write(", "); err != nil {
				return err
			}
		}
	}
	if err := e.write("| {\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.expr(tabs+1, stackLen+n, c.Expr); err != nil {
		return err
	}
	if err := e.write("\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}

// item emits a positional name (§4.2) followed by an `[...]` per id in
// the path: string ids become shared string keys, numeric ids become
// non-negative integers, expression ids are wrapped in index::ind(...).
func (e *emitter) item(tabs, stackLen int, it *ast.Item) error {
	if it.StaticStackID > stackLen {
		return transerr.StructuralViolation(it, "item static_stack_id %d exceeds stack_len %d", it.StaticStackID, stackLen)
	}
	if err := e.write(scope.ItemName(stackLen, it.StaticStackID)); err != nil {
		return err
	}
	for i, id := range it.Ids {
		if err := e.write("["); err != nil {
			return err
		}
		switch {
		case id.String != nil:
			b, err := json.Marshal(*id.String)
			if err != nil {
				return transerr.WrapIO(err)
			}
			if err := e.write("&Arc::new(%s.into())", b); err != nil {
				return err
			}
		case id.F64 != nil:
			if err := e.write("%d", int64(*id.F64)); err != nil {
				return err
			}
		case id.Expr != nil:
			if err := e.write("%s(", runtimecontract.IndexInd); err != nil {
				return err
			}
			if err := e.expr(tabs, stackLen+i, id.Expr); err != nil {
				return err
			}
			if err := e.write(")"); err != nil {
				return err
			}
		default:
			return transerr.StructuralViolation(it, "item id %d has neither string, f64 nor expression", i)
		}
		if err := e.write("]"); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) binOp(tabs, stackLen int, b *ast.BinOpExpr) error {
	switch b.Op {
	case ast.AndAlso:
		return e.infixLogical(tabs, stackLen, "&&", b.Left, b.Right)
	case ast.OrElse:
		return e.infixLogical(tabs, stackLen, "||", b.Left, b.Right)
	}
	name, ok := binOpName(b.Op)
	if !ok {
		return transerr.Unsupported(b, "unsupported BinOp operator %q", b.Op)
	}
	return e.dispatchTwoStr(tabs, stackLen, string(name), b.Left, b.Right)
}

func binOpName(op ast.BinOpKind) (runtimecontract.BinOp, bool) {
	switch op {
	case ast.Add:
		return runtimecontract.BinAdd, true
	case ast.Sub:
		return runtimecontract.BinSub, true
	case ast.Mul:
		return runtimecontract.BinMul, true
	case ast.Div:
		return runtimecontract.BinDiv, true
	case ast.Rem:
		return runtimecontract.BinRem, true
	case ast.Dot:
		return runtimecontract.BinDot, true
	case ast.Cross:
		return runtimecontract.BinCross, true
	case ast.Pow:
		return runtimecontract.BinPow, true
	default:
		return "", false
	}
}

func (e *emitter) infixLogical(tabs, stackLen int, op string, left, right ast.Expr) error {
	if err := e.write("("); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, left); err != nil {
		return err
	}
	if err := e.write(" %s ", op); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, right); err != nil {
		return err
	}
	return e.write(")")
}

func (e *emitter) compare(tabs, stackLen int, c *ast.Compare) error {
	name, ok := compareName(c.Op)
	if !ok {
		return transerr.Unsupported(c, "unsupported Compare operator %q", c.Op)
	}
	return e.dispatchTwoStr(tabs, stackLen, string(name), c.Left, c.Right)
}

func compareName(op ast.CompareKind) (runtimecontract.CompOp, bool) {
	switch op {
	case ast.Less:
		return runtimecontract.CmpLess, true
	case ast.LessOrEqual:
		return runtimecontract.CmpLessOrEqual, true
	case ast.Greater:
		return runtimecontract.CmpGreater, true
	case ast.GreaterOrEqual:
		return runtimecontract.CmpGreaterOrEqual, true
	case ast.Equal:
		return runtimecontract.CmpEqual, true
	case ast.NotEqual:
		return runtimecontract.CmpNotEqual, true
	default:
		return "", false
	}
}

func (e *emitter) dispatchTwoStr(tabs, stackLen int, name string, left, right ast.Expr) error {
	if err := e.write("%s(&", name); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, left); err != nil {
		return err
	}
	if err := e.write(", &"); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, right); err != nil {
		return err
	}
	return e.write(")")
}

func (e *emitter) unOp(tabs, stackLen int, u *ast.UnOpExpr) error {
	var name runtimecontract.UnOp
	switch u.Op {
	case ast.Not:
		name = runtimecontract.UnNot
	case ast.Neg:
		name = runtimecontract.UnNeg
	default:
		return transerr.Unsupported(u, "unsupported UnOp operator %q", u.Op)
	}
	if err := e.write("%s(&", name); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, u.Expr); err != nil {
		return err
	}
	return e.write(")")
}

func (e *emitter) breakExpr(b *ast.Break) error {
	if b.Label != nil {
		return e.write("break '%s", *b.Label)
	}
	return e.write("break")
}

func (e *emitter) continueExpr(c *ast.Continue) error {
	if c.Label != nil {
		return e.write("continue '%s", *c.Label)
	}
	return e.write("continue")
}
