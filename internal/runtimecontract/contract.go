// Package runtimecontract declares the companion target-language
// library the emitted code links against (spec.md §4.1). It does not
// implement that library — the library is Rust, external to this Go
// module — it only gives the emitter (internal/codegen) a single,
// testable source of truth for the exact names it must spell.
//
// Grounded on original_source/src/{binop,compop,unop,cond,variable,
// assign,index,secret,intrinsics/print}.rs, which is the reference
// implementation of this exact contract.
package runtimecontract

// BinOp names the binop:: family. add/sub/mul/div/rem/pow are defined
// over scalar x scalar, vec4 x vec4, vec4 x scalar and scalar x vec4;
// add/mul are additionally defined over bool x bool (as OR/AND). dot
// and cross are vec4 x vec4 only; dot returns scalar, cross returns a
// 4-lane vector with lane 3 forced to zero.
type BinOp string

const (
	BinAdd   BinOp = "binop::add"
	BinSub   BinOp = "binop::sub"
	BinMul   BinOp = "binop::mul"
	BinDiv   BinOp = "binop::div"
	BinRem   BinOp = "binop::rem"
	BinDot   BinOp = "binop::dot"
	BinCross BinOp = "binop::cross"
	BinPow   BinOp = "binop::pow"
)

// CompOp names the compop:: family, every member scalar x scalar only
// in the source language's surface syntax (the runtime may widen this,
// but the emitter never needs to know — it always dispatches through
// the named function and lets the target compiler's overload
// resolution decide).
type CompOp string

const (
	CmpLess           CompOp = "compop::less"
	CmpLessOrEqual    CompOp = "compop::less_or_equal"
	CmpGreater        CompOp = "compop::greater"
	CmpGreaterOrEqual CompOp = "compop::greater_or_equal"
	CmpEqual          CompOp = "compop::equal"
	CmpNotEqual       CompOp = "compop::not_equal"
)

// UnOp names the unop:: family.
type UnOp string

const (
	UnNeg UnOp = "unop::neg"
	UnNot UnOp = "unop::not"
)

// Other fixed call sites the emitter generates.
const (
	// Cond accepts both plain bool and Secret<bool, _>.
	Cond = "cond"
	// Variable boxes any typed value into the dynamic variable type.
	Variable = "variable"
	// Assign is the cross-type scalar assignment helper used for the
	// Assign "Set" shape.
	Assign = "assign"
	// IndexInd coerces a numeric/string key to the index type.
	IndexInd = "index::ind"
	// IndexVec4LookUp returns lane i of a vec4 value.
	IndexVec4LookUp = "index::vec4_look_up"
	// SecretNewBool/SecretNewF64 construct a Secret<V, f64> witness.
	SecretNewBool = "Secret::new_bool"
	SecretNewF64  = "Secret::new_f64"
	// Print/Println are polymorphic over every value domain.
	Print   = "print"
	Println = "println"
)

var binOpTable = map[BinOp]struct{}{
	BinAdd: {}, BinSub: {}, BinMul: {}, BinDiv: {}, BinRem: {},
	BinDot: {}, BinCross: {}, BinPow: {},
}

// Supported reports whether op is a name this contract defines. The
// emitter never needs this on the hot path (its input is a closed Go
// enum, ast.BinOpKind, already validated by construction) — it exists
// for tests that want to assert the table and the emitter's switch
// statement stay in lock-step.
func (op BinOp) Supported() bool {
	_, ok := binOpTable[op]
	return ok
}
