package ast

import "testing"

func TestDecodeSimpleModule(t *testing.T) {
	data := []byte(`{
		"functions": [
			{
				"name": "main",
				"args": [],
				"return": {"kind": "Void"},
				"body": {"exprs": [
					{"kind": "Call", "name": "println", "args": [
						{"kind": "Number", "value": 1}
					]}
				]}
			}
		]
	}`)
	module, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(module.Functions) != 1 {
		t.Fatalf("len(module.Functions) = %d, want 1", len(module.Functions))
	}
	fn := module.Functions[0]
	if fn.Name != "main" || fn.Returns() {
		t.Errorf("fn = %+v, want void main", fn)
	}
	if len(fn.Body.Exprs) != 1 {
		t.Fatalf("len(fn.Body.Exprs) = %d, want 1", len(fn.Body.Exprs))
	}
	call, ok := fn.Body.Exprs[0].(*Call)
	if !ok {
		t.Fatalf("fn.Body.Exprs[0] is %T, want *Call", fn.Body.Exprs[0])
	}
	if call.Name != "println" || len(call.Args) != 1 {
		t.Errorf("call = %+v, want println(1 arg)", call)
	}
}

func TestDecodeRejectsUnknownExprKind(t *testing.T) {
	data := []byte(`{
		"functions": [
			{"name": "main", "args": [], "return": {"kind": "Void"}, "body": {"exprs": [
				{"kind": "NotARealKind"}
			]}}
		]
	}`)
	if _, err := Decode(data); err == nil {
		t.Error("Decode(unknown expr kind) = nil error, want non-nil")
	}
}

func TestDecodeForNVariantsShareShape(t *testing.T) {
	for _, kind := range []string{"ForN", "Sum", "Prod", "All", "Any", "Min", "Max", "Sift"} {
		data := []byte(`{"kind": "` + kind + `", "end": {"kind": "Number", "value": 3}, "block": {"exprs": []}}`)
		expr, err := decodeExpr(data)
		if err != nil {
			t.Fatalf("decodeExpr(%s): %v", kind, err)
		}
		if expr == nil {
			t.Fatalf("decodeExpr(%s) = nil", kind)
		}
	}
}

func TestDecodeMutabilityTag(t *testing.T) {
	data := []byte(`{
		"functions": [
			{"name": "foo(mut,_)", "args": [
				{"type": {"kind": "F64"}, "mutable": true},
				{"type": {"kind": "F64"}, "mutable": false}
			], "return": {"kind": "Void"}, "body": {"exprs": []}}
		]
	}`)
	module, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fn := module.Functions[0]
	if fn.BaseName() != "foo" {
		t.Errorf("BaseName() = %q, want %q", fn.BaseName(), "foo")
	}
	mutable := MutableArgs(fn.Name)
	if len(mutable) != 2 || !mutable[0] || mutable[1] {
		t.Errorf("MutableArgs(%q) = %v, want [true false]", fn.Name, mutable)
	}
}
