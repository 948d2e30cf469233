package codegen

import (
	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
	"dyonc/internal/scope"
	"dyonc/internal/transerr"
)

// assign lowers the five Assign shapes (§4.4 Assign bullet): a fresh
// binding introduction, a Set of an existing location through the
// runtime's assign(&mut lhs, &rhs) helper, and three compound shapes (arithmetic compound, boolean compound via
// the bool-as-OR/AND overloads of binop::add/mul, and Pow — which
// original_source/src/lib.rs emitted as a literal `**=` Rust operator
// that does not exist; spec.md §9 calls for routing Pow through
// binop::pow like every other compound operator instead).
func (e *emitter) assign(tabs, stackLen int, a *ast.Assign) error {
	switch a.Op {
	case ast.AssignOp:
		item, ok := a.Left.(*ast.Item)
		if !ok || len(item.Ids) != 0 {
			return transerr.StructuralViolation(a, "binding Assign's left side must be a bare Item")
		}
		if err := e.write("let mut %s = ", scope.Name(stackLen)); err != nil {
			return err
		}
		return e.expr(tabs, stackLen, a.Right)
	case ast.SetOp:
		if err := e.write("%s(&mut ", runtimecontract.Assign); err != nil {
			return err
		}
		if err := e.expr(tabs, stackLen, a.Left); err != nil {
			return err
		}
		if err := e.write(", &"); err != nil {
			return err
		}
		if err := e.expr(tabs, stackLen, a.Right); err != nil {
			return err
		}
		return e.write(")")
	default:
		op, ok := compoundBinOp(a.Op)
		if !ok {
			return transerr.Unsupported(a, "unsupported Assign operator %q", a.Op)
		}
		if err := e.expr(tabs, stackLen, a.Left); err != nil {
			return err
		}
		if err := e.write(" = %s(&", op); err != nil {
			return err
		}
		if err := e.expr(tabs, stackLen, a.Left); err != nil {
			return err
		}
		if err := e.write(", &"); err != nil {
			return err
		}
		if err := e.expr(tabs, stackLen, a.Right); err != nil {
			return err
		}
		return e.write(")")
	}
}

func compoundBinOp(op ast.AssignKind) (runtimecontract.BinOp, bool) {
	switch op {
	case ast.AddAssign:
		return runtimecontract.BinAdd, true
	case ast.SubAssign:
		return runtimecontract.BinSub, true
	case ast.MulAssign:
		return runtimecontract.BinMul, true
	case ast.DivAssign:
		return runtimecontract.BinDiv, true
	case ast.RemAssign:
		return runtimecontract.BinRem, true
	case ast.PowAssign:
		return runtimecontract.BinPow, true
	default:
		return "", false
	}
}
