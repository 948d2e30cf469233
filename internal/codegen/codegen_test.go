package codegen

import (
	"regexp"
	"strings"
	"testing"

	"dyonc/internal/ast"
)

func emitMain(t *testing.T, exprs ...ast.Expr) string {
	t.Helper()
	module := ast.Module{Functions: []ast.Function{
		{Name: "main", Return: ast.Void{}, Body: ast.Block{Exprs: exprs}},
	}}
	got, err := EmitModule(module)
	if err != nil {
		t.Fatalf("EmitModule: %v", err)
	}
	return got
}

func mainBody(t *testing.T, text string) string {
	t.Helper()
	start := strings.Index(text, "fn main() {\n")
	if start < 0 {
		t.Fatalf("no fn main() in emitted text:\n%s", text)
	}
	body := text[start+len("fn main() {\n"):]
	end := strings.LastIndex(body, "\n}\n")
	if end < 0 {
		t.Fatalf("unterminated fn main() in emitted text:\n%s", text)
	}
	return body[:end]
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		name string
		n    *ast.Number
		want string
	}{
		{"integral", &ast.Number{Value: 2}, "2.0"},
		{"zero", &ast.Number{Value: 0}, "0.0"},
		{"fractional", &ast.Number{Value: 1.5}, "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{tt.n}}))
			if !strings.Contains(got, tt.want) {
				t.Errorf("number %v emitted %q, want to contain %q", tt.n.Value, got, tt.want)
			}
		})
	}
}

func TestBindingIntroducesMutLet(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Assign{
		Op:    ast.AssignOp,
		Left:  &ast.Item{},
		Right: &ast.Number{Value: 1},
	}))
	want := "let mut _0 = 1.0;"
	if !strings.Contains(got, want) {
		t.Errorf("binding assign emitted %q, want to contain %q", got, want)
	}
}

func TestArrayHomogeneousStaysUnboxed(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.Array{Items: []ast.Expr{&ast.Number{Value: 1}, &ast.Number{Value: 2}}},
	}}))
	want := "vec![1.0, 2.0]"
	if !strings.Contains(got, want) {
		t.Errorf("homogeneous array emitted %q, want to contain %q", got, want)
	}
}

func TestArrayHeterogeneousBoxes(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.Array{Items: []ast.Expr{&ast.Number{Value: 1}, &ast.Text{Value: "x"}}},
	}}))
	want := `vec![variable(&1.0), variable(&"x")]`
	if !strings.Contains(got, want) {
		t.Errorf("heterogeneous array emitted %q, want to contain %q", got, want)
	}
}

func TestSwizzleTwoLanePadsToFour(t *testing.T) {
	got := mainBody(t, emitMain(t,
		&ast.Assign{Op: ast.AssignOp, Left: &ast.Item{}, Right: &ast.Vec4{Args: []ast.Expr{
			&ast.Number{Value: 1}, &ast.Number{Value: 2}, &ast.Number{Value: 0}, &ast.Number{Value: 0},
		}}},
		&ast.Call{Name: "println", Args: []ast.Expr{
			&ast.Swizzle{Expr: &ast.Item{StaticStackID: 1}, Sw0: 1, Sw1: 0},
		}},
	))
	for _, want := range []string{
		"let ref _1 = _0;",
		"[index::vec4_look_up(_1, 1), index::vec4_look_up(_1, 0), 0.0, 0.0]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("two-lane swizzle emitted %q, want to contain %q", got, want)
		}
	}
}

func TestSwizzleFourLaneUsesTwoAuxBindings(t *testing.T) {
	sw2, sw3 := 1, 0
	got := mainBody(t, emitMain(t,
		&ast.Assign{Op: ast.AssignOp, Left: &ast.Item{}, Right: &ast.Vec4{Args: []ast.Expr{
			&ast.Number{Value: 1}, &ast.Number{Value: 2}, &ast.Number{Value: 0}, &ast.Number{Value: 0},
		}}},
		&ast.Call{Name: "println", Args: []ast.Expr{
			&ast.Swizzle{Expr: &ast.Item{StaticStackID: 1}, Sw0: 0, Sw1: 1, Sw2: &sw2, Sw3: &sw3},
		}},
	))
	for _, want := range []string{
		"let ref _1 = _0;",
		"let ref _2 = _0;",
		"index::vec4_look_up(_1, 0), index::vec4_look_up(_1, 1), index::vec4_look_up(_2, 1), index::vec4_look_up(_2, 0)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("four-lane swizzle emitted %q, want to contain %q", got, want)
		}
	}
}

func TestVec4CombinatorMergesSwizzleWithPlainLanes(t *testing.T) {
	got := mainBody(t, emitMain(t,
		&ast.Assign{Op: ast.AssignOp, Left: &ast.Item{}, Right: &ast.Vec4{Args: []ast.Expr{
			&ast.Number{Value: 1}, &ast.Number{Value: 2}, &ast.Number{Value: 0}, &ast.Number{Value: 0},
		}}},
		&ast.Call{Name: "println", Args: []ast.Expr{
			// [v.yx, 0, 0]: the Swizzle contributes 2 lanes, the two
			// literal zeros fill the remaining 2 — spec.md §4.5.1's own
			// "With swizzles" scenario.
			&ast.Vec4{Args: []ast.Expr{
				&ast.Swizzle{Expr: &ast.Item{StaticStackID: 1}, Sw0: 1, Sw1: 0},
				&ast.Number{Value: 0},
				&ast.Number{Value: 0},
			}},
		}},
	))
	for _, want := range []string{
		"let ref _1 = _0;",
		"[index::vec4_look_up(_1, 1), index::vec4_look_up(_1, 0), 0.0, 0.0]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("combinator vec4 emitted %q, want to contain %q", got, want)
		}
	}
}

func TestAndAlsoOrElseStayParenthesizedInfix(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.BinOpExpr{Op: ast.AndAlso, Left: &ast.Bool{Value: true}, Right: &ast.Bool{Value: false}},
	}}))
	want := "(true && false)"
	if !strings.Contains(got, want) {
		t.Errorf("AndAlso emitted %q, want to contain %q", got, want)
	}
}

func TestAggregateSumUsesBinAdd(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.Sum{ForN: ast.ForN{End: &ast.Number{Value: 3}, Block: ast.Block{Exprs: []ast.Expr{&ast.Number{Value: 1}}}}},
	}}))
	for _, want := range []string{"let mut _2 = 0.0;", "binop::add(&_2, &cand)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Sum emitted %q, want to contain %q", got, want)
		}
	}
}

func TestAggregateMinUsesSecretWitness(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.Min{ForN: ast.ForN{End: &ast.Number{Value: 3}, Block: ast.Block{Exprs: []ast.Expr{&ast.Number{Value: 1}}}}},
	}}))
	for _, want := range []string{
		"let mut _2: Secret<f64, f64> = Secret::new_f64(::std::f64::NAN);",
		"let mut _3: Option<f64> = None;",
		"if _2.val.is_nan() || cand.value() < _2.value() {",
		"_2 = cand.into();",
		"_3 = Some(_0);",
		"if let Some(_0) = _3 {",
		"_2.secret.push(_0);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Min emitted %q, want to contain %q", got, want)
		}
	}
}

func TestAggregateAllUsesSecretWitnessAndBreaks(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.All{ForN: ast.ForN{End: &ast.Number{Value: 3}, Block: ast.Block{Exprs: []ast.Expr{&ast.Bool{Value: true}}}}},
	}}))
	for _, want := range []string{
		"let mut _2: Secret<bool, f64> = Secret::new_bool(true);",
		"_2 &= {",
		"if !cond(&_2) {",
		"_2.secret.push(_0);",
		"break;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("All emitted %q, want to contain %q", got, want)
		}
	}
}

func TestAggregateAnyUsesSecretWitnessAndBreaks(t *testing.T) {
	got := mainBody(t, emitMain(t, &ast.Call{Name: "println", Args: []ast.Expr{
		&ast.Any{ForN: ast.ForN{End: &ast.Number{Value: 3}, Block: ast.Block{Exprs: []ast.Expr{&ast.Bool{Value: true}}}}},
	}}))
	for _, want := range []string{
		"let mut _2: Secret<bool, f64> = Secret::new_bool(false);",
		"_2 |= {",
		"if cond(&_2) {",
		"_2.secret.push(_0);",
		"break;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Any emitted %q, want to contain %q", got, want)
		}
	}
}

// TestAggregateBodyReferencesOuterItemAtCorrectOffset locks in the
// bodyStackLen fix: the loop body is emitted at stackLen+1 (just past
// the loop index), so an Item referencing a binding introduced before
// the loop must resolve through that same +1 offset, not whatever
// internal slot count the accumulator scaffolding happens to use.
func TestAggregateBodyReferencesOuterItemAtCorrectOffset(t *testing.T) {
	got := mainBody(t, emitMain(t,
		&ast.Assign{Op: ast.AssignOp, Left: &ast.Item{}, Right: &ast.Number{Value: 7}},
		&ast.Call{Name: "println", Args: []ast.Expr{
			&ast.Sum{ForN: ast.ForN{
				End: &ast.Number{Value: 3},
				Block: ast.Block{Exprs: []ast.Expr{
					// main's body threads stackLen=1 into this println
					// call (one binding already introduced), so Sum's
					// idx/n/acc scaffolding starts at stackLen=1 and its
					// block is emitted at bodyStackLen=2. Referencing the
					// outer _0 binding from there needs
					// StaticStackID=2 (ItemName(2,2) = _0).
					&ast.Item{StaticStackID: 2},
				}},
			}},
		}},
	))
	if !strings.Contains(got, "let mut _0 = 7.0;") {
		t.Fatalf("outer binding emitted %q, want to contain the _0 binding", got)
	}
	if !regexp.MustCompile(`let cand = \{\s*\n\s*_0\s*\n`).MatchString(got) {
		t.Errorf("Sum body emitted %q, want its candidate block to reference the outer _0 binding", got)
	}
}
