package transerr

import (
	"errors"
	"strings"
	"testing"
)

func TestUnsupportedCarriesKindAndNode(t *testing.T) {
	err := Unsupported(42, "unsupported %s", "thing")
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("Unsupported does not unwrap to *Error")
	}
	if te.Kind != UnsupportedExpr {
		t.Errorf("Kind = %v, want %v", te.Kind, UnsupportedExpr)
	}
	if !strings.Contains(err.Error(), "unsupported thing") {
		t.Errorf("Error() = %q, want to contain %q", err.Error(), "unsupported thing")
	}
	if !strings.Contains(err.Error(), "offending node") {
		t.Errorf("Error() = %q, want to mention the offending node", err.Error())
	}
}

func TestWrapIONilIsNil(t *testing.T) {
	if WrapIO(nil) != nil {
		t.Error("WrapIO(nil) != nil")
	}
}

func TestWrapIOWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapIO(cause)
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("WrapIO does not unwrap to *Error")
	}
	if te.Kind != IOFailure {
		t.Errorf("Kind = %v, want %v", te.Kind, IOFailure)
	}
	if !errors.Is(err, cause) && !strings.Contains(te.Unwrap().Error(), "disk full") {
		t.Errorf("wrapped error lost the cause: %v", te.Unwrap())
	}
}

func TestStructuralViolationHasNoNodeOmittedSection(t *testing.T) {
	err := StructuralViolation(nil, "stack_len exceeded")
	if !strings.Contains(err.Error(), "Structural") {
		t.Errorf("Error() = %q, want to mention Structural", err.Error())
	}
	if strings.Contains(err.Error(), "offending node") {
		t.Errorf("Error() = %q, want no node section when Node is nil", err.Error())
	}
}
