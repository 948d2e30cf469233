// Package transerr implements the three error kinds of spec.md §7.
//
// Modeled on the teacher's internal/errors package (a typed ErrorType
// plus a struct that renders a multi-section report), adapted down to
// the three kinds this spec actually names instead of a general
// source-language runtime error taxonomy.
package transerr

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// Kind identifies which of the three §7 error categories occurred.
type Kind string

const (
	// IOFailure is a failure writing to the output sink, surfaced
	// unchanged to the caller.
	IOFailure Kind = "IOFailure"
	// UnsupportedExpr means the source AST used a node variant this
	// core does not lower — deliberate: the transpiler advertises
	// coverage over a documented subset.
	UnsupportedExpr Kind = "UnsupportedExpr"
	// Structural means an assumption the emitter relies on was
	// violated (e.g. an Item whose resolved id exceeds stack_len) —
	// indicates upstream AST corruption, not a user-fixable SL bug.
	Structural Kind = "Structural"
)

// Error is the error type every dyonc package returns for emission
// failures. When the failure has an offending node, Node holds it, so
// it can be shown without a second pass over the tree.
type Error struct {
	Kind    Kind
	Message string
	Node    interface{} // the offending AST node, nil for IOFailure
	cause   error
}

func (e *Error) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\n  offending node: %# v", e.Kind, e.Message, pretty.Formatter(e.Node))
}

func (e *Error) Unwrap() error { return e.cause }

// WrapIO reports an I/O failure writing to the output sink. The
// wrapped error keeps pkg/errors' stack trace so a CLI failure report
// can show where in the emitter the write originated.
func WrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IOFailure, Message: "write to output sink failed", cause: errors.Wrap(err, "transerr")}
}

// Unsupported reports an AST node variant this core does not lower.
func Unsupported(node interface{}, format string, args ...interface{}) error {
	return &Error{Kind: UnsupportedExpr, Message: fmt.Sprintf(format, args...), Node: node}
}

// StructuralViolation reports a violated emitter assumption (spec.md
// §3 invariants), e.g. an Item resolving past the current stack_len.
func StructuralViolation(node interface{}, format string, args ...interface{}) error {
	return &Error{Kind: Structural, Message: fmt.Sprintf(format, args...), Node: node}
}
