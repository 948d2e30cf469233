package typeinfer

import (
	"testing"

	"dyonc/internal/ast"
)

func TestInferSimpleKinds(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want Kind
	}{
		{"number", &ast.Number{Value: 1}, KF64},
		{"text", &ast.Text{Value: "x"}, KStr},
		{"bool", &ast.Bool{Value: true}, KBool},
		{"vec4", &ast.Vec4{}, KVec4},
		{"object", &ast.Object{}, KObject},
		{"call", &ast.Call{Name: "f"}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.expr).Kind; got != tt.want {
				t.Errorf("Infer(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestJoinEqualKindsStaySame(t *testing.T) {
	if got := Join(simple(KF64), simple(KF64)); got.Kind != KF64 {
		t.Errorf("Join(F64, F64) = %v, want F64", got.Kind)
	}
}

func TestJoinDifferentKindsWidenToVariable(t *testing.T) {
	if got := Join(simple(KF64), simple(KStr)); got.Kind != KVariable {
		t.Errorf("Join(F64, Str) = %v, want Variable", got.Kind)
	}
}

func TestJoinArraysElementWise(t *testing.T) {
	f64Array := Type{Kind: KArray, Elem: &Type{Kind: KF64}}
	strArray := Type{Kind: KArray, Elem: &Type{Kind: KStr}}

	same := Join(f64Array, f64Array)
	if same.Kind != KArray || same.Elem.Kind != KF64 {
		t.Errorf("Join(Array(F64), Array(F64)) = %+v, want Array(F64)", same)
	}

	mixed := Join(f64Array, strArray)
	if mixed.Kind != KArray || mixed.Elem.Kind != KVariable {
		t.Errorf("Join(Array(F64), Array(Str)) = %+v, want Array(Variable)", mixed)
	}
}

func TestJoinEmptyArrayWithTypedArray(t *testing.T) {
	empty := Type{Kind: KArray}
	f64Array := Type{Kind: KArray, Elem: &Type{Kind: KF64}}
	got := Join(empty, f64Array)
	if got.Kind != KArray || got.Elem == nil || got.Elem.Kind != KF64 {
		t.Errorf("Join(Array(None), Array(F64)) = %+v, want Array(F64)", got)
	}
}

func TestShouldBoxHomogeneousArray(t *testing.T) {
	items := []ast.Expr{&ast.Number{Value: 1}, &ast.Number{Value: 2}}
	if ShouldBox(items) {
		t.Error("ShouldBox(homogeneous f64 array) = true, want false")
	}
}

func TestShouldBoxHeterogeneousArray(t *testing.T) {
	items := []ast.Expr{&ast.Number{Value: 1}, &ast.Text{Value: "x"}}
	if !ShouldBox(items) {
		t.Error("ShouldBox(heterogeneous array) = false, want true")
	}
}

func TestShouldBoxAllUnknownStaysUnboxedEmptyElem(t *testing.T) {
	items := []ast.Expr{&ast.Call{Name: "f"}}
	if ShouldBox(items) {
		t.Error("ShouldBox(all-unknown array) = true, want false")
	}
}
