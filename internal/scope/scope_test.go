package scope

import (
	"testing"

	"dyonc/internal/ast"
)

func TestNameIsPositional(t *testing.T) {
	if got, want := Name(3), "_3"; got != want {
		t.Errorf("Name(3) = %q, want %q", got, want)
	}
}

func TestItemNameFlipsConvention(t *testing.T) {
	// stack_len=5 (bindings _0.._4 live), static_stack_id=2 -> the
	// second most recent binding.
	if got, want := ItemName(5, 2), "_3"; got != want {
		t.Errorf("ItemName(5, 2) = %q, want %q", got, want)
	}
}

func TestItemNameOfOldestBinding(t *testing.T) {
	if got, want := ItemName(5, 5), "_0"; got != want {
		t.Errorf("ItemName(5, 5) = %q, want %q", got, want)
	}
}

func bindingAssign() ast.Expr {
	return &ast.Assign{Op: ast.AssignOp, Left: &ast.Item{}, Right: &ast.Number{Value: 1}}
}

func TestBlockBindingCountCountsOnlyBareBindingAssigns(t *testing.T) {
	block := ast.Block{Exprs: []ast.Expr{
		bindingAssign(),
		&ast.Assign{Op: ast.SetOp, Left: &ast.Item{}, Right: &ast.Number{Value: 2}},
		bindingAssign(),
		&ast.Assign{Op: ast.AssignOp, Left: &ast.Item{Ids: []ast.Id{{F64: f64Ptr(0)}}}, Right: &ast.Number{Value: 3}},
	}}
	if got, want := BlockBindingCount(block), 2; got != want {
		t.Errorf("BlockBindingCount = %d, want %d", got, want)
	}
}

func f64Ptr(v float64) *float64 { return &v }
