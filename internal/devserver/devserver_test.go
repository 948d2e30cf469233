package devserver

import (
	"encoding/json"
	"testing"
)

func TestHandleEmitsTextForValidModule(t *testing.T) {
	s := New(nil)
	req := Request{Module: json.RawMessage(`{"functions": [{"name": "main", "args": [], "return": {"kind": "Void"}, "body": {"exprs": [
		{"kind": "Call", "name": "println", "args": [{"kind": "Number", "value": 1}]}
	]}}]}`)}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp := s.handle(data)
	if resp.Error != "" {
		t.Fatalf("handle returned error: %s", resp.Error)
	}
	if resp.Text == "" {
		t.Fatal("handle returned empty text")
	}
}

func TestHandleReportsDecodeError(t *testing.T) {
	s := New(nil)
	req := Request{Module: json.RawMessage(`{"functions": [{"body": {"exprs": [{"kind": "NotReal"}]}}]}`)}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp := s.handle(data)
	if resp.Error == "" {
		t.Fatal("handle did not report the decode error")
	}
}

func TestConnectionCountStartsAtZero(t *testing.T) {
	s := New(nil)
	if got := s.ConnectionCount(); got != 0 {
		t.Errorf("ConnectionCount() = %d, want 0", got)
	}
}
