// Package ast defines the AST Module shape the code generator consumes.
//
// The transpiler never builds this tree itself — it is produced by the
// source language's loader/parser, an external collaborator (spec.md
// §1). This package only declares the shapes so dyonc's own packages,
// golden fixtures and the devserver's wire format share one definition.
package ast

import "strings"

// Module is a complete, pre-parsed source-language program: an ordered
// list of functions. No constants table is carried.
type Module struct {
	Functions []Function `json:"functions"`
}

// FunctionByName returns the index of the function named name (with any
// mutability tag stripped for comparison), or -1 if none matches.
func (m Module) FunctionByName(name string) int {
	for i, f := range m.Functions {
		if f.BaseName() == name {
			return i
		}
	}
	return -1
}

// Arg is one function argument: its declared type and whether the
// source marked it as mutable via the function's mutability tag.
type Arg struct {
	Type    Type `json:"type"`
	Mutable bool `json:"mutable"`
}

// Function is a named, typed entry point with a Block body.
//
// Name may carry a parenthesized mutability tag, e.g. "foo(mut,_)",
// meaning argument 0 is declared mutable and argument 1 is not. Use
// BaseName/MutableArgs to work with the tag; the fields below are
// populated straight from the loader and are not re-derived from Name.
type Function struct {
	Name   string  `json:"name"`
	Args   []Arg   `json:"args"`
	Return Type    `json:"return"`
	Body   Block   `json:"body"`
}

// Returns reports whether the function yields a value (Return != Void).
func (f Function) Returns() bool {
	_, void := f.Return.(Void)
	return !void
}

// BaseName strips the parenthesized mutability tag from Name, if any.
func (f Function) BaseName() string {
	return StripMutabilityTag(f.Name)
}

// StripMutabilityTag returns name with any trailing "(...)" tag removed.
func StripMutabilityTag(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}

// MutableArgs parses name's mutability tag (invariant 5) and returns one
// entry per tag token, true where that position was marked "mut". A
// name with no tag yields nil; callers treat positions past the end of
// the result as not mutable.
func MutableArgs(name string) []bool {
	i := strings.IndexByte(name, '(')
	if i < 0 {
		return nil
	}
	j := strings.LastIndexByte(name, ')')
	if j < i {
		return nil
	}
	tokens := strings.Split(name[i+1:j], ",")
	out := make([]bool, len(tokens))
	for k, tok := range tokens {
		out[k] = tok == "mut"
	}
	return out
}

// Block is an ordered sequence of expressions; the last expression's
// value is the block's value.
type Block struct {
	Exprs []Expr `json:"exprs"`
}

// Expr is the tagged-variant expression node. dyonc dispatches over
// concrete node types with a type switch in internal/codegen rather
// than a Visitor interface — the node set is closed and spec-fixed, so
// a switch reads closer to spec.md's own per-variant bullet list.
type Expr interface {
	isExpr()
}
