// Package scope implements the positional stack-index naming
// discipline of spec.md §4.2: a monotonically assigned positional-id
// scheme mirroring the source runtime's stack-length tracking.
//
// There is no mutable allocator object — stack_len is threaded as a
// plain int argument through every emitter call, exactly as
// original_source/src/lib.rs threads it, so a "scope" here is just the
// handful of pure functions below plus the int itself.
package scope

import (
	"strconv"

	"dyonc/internal/ast"
)

// Name returns the positional name used at stackLen for a binding
// introduced stackLen levels deep — i.e. the name a fresh `Assign`
// with an empty id-path gets when emitted at this depth (§4.2 rule 1).
func Name(stackLen int) string {
	return positionalName(stackLen)
}

// ItemName resolves an Item reference: the source counts back from the
// top of the stack (staticStackID 1 is the most recent binding), the
// emitter's positional names count up from the bottom (_0 is the first
// binding) — subtracting from stackLen flips the convention
// (§4.2 rule 3, P2).
func ItemName(stackLen, staticStackID int) string {
	return positionalName(stackLen - staticStackID)
}

func positionalName(id int) string {
	return "_" + strconv.Itoa(id)
}

// BlockBindingCount returns the number of binding-introduction Assigns
// (Assign with op Assign and an empty id-path) that appear directly in
// block — the amount stack_len grows by after evaluating block
// (invariant 2). It does not recurse into nested blocks: those open
// their own sub-scope and must not leak names outward (§4.2 rule 4).
func BlockBindingCount(block ast.Block) int {
	n := 0
	for _, e := range block.Exprs {
		if isBindingIntroduction(e) {
			n++
		}
	}
	return n
}

func isBindingIntroduction(e ast.Expr) bool {
	a, ok := e.(*ast.Assign)
	if !ok || a.Op != ast.AssignOp {
		return false
	}
	item, ok := a.Left.(*ast.Item)
	return ok && len(item.Ids) == 0
}
