package ast

// BinOpKind enumerates the §3 BinOp.op domain.
type BinOpKind string

const (
	Add     BinOpKind = "Add"
	Mul     BinOpKind = "Mul"
	Div     BinOpKind = "Div"
	Sub     BinOpKind = "Sub"
	Rem     BinOpKind = "Rem"
	Dot     BinOpKind = "Dot"
	Cross   BinOpKind = "Cross"
	Pow     BinOpKind = "Pow"
	AndAlso BinOpKind = "AndAlso"
	OrElse  BinOpKind = "OrElse"
)

// CompareKind enumerates the §3 Compare.op domain.
type CompareKind string

const (
	Less           CompareKind = "<"
	LessOrEqual    CompareKind = "<="
	Greater        CompareKind = ">"
	GreaterOrEqual CompareKind = ">="
	Equal          CompareKind = "="
	NotEqual       CompareKind = "!="
)

// UnOpKind enumerates the §3 UnOp.op domain.
type UnOpKind string

const (
	Not UnOpKind = "Not"
	Neg UnOpKind = "Neg"
)

// AssignKind enumerates the §3 Assign.op domain.
type AssignKind string

const (
	AssignOp    AssignKind = "Assign"
	SetOp       AssignKind = "Set"
	AddAssign   AssignKind = "Add"
	SubAssign   AssignKind = "Sub"
	MulAssign   AssignKind = "Mul"
	DivAssign   AssignKind = "Div"
	RemAssign   AssignKind = "Rem"
	PowAssign   AssignKind = "Pow"
)

// Call is `name(args...)`, optionally resolved to a loaded function by
// FIndex (mirrors Dyon's FnIndex::Loaded — see original_source/src/lib.rs
// generate_call, which bumps stack_len by one extra slot while lowering
// arguments when the callee is a loaded function that returns a value).
type Call struct {
	Name   string `json:"name"`
	Args   []Expr `json:"args"`
	FIndex *int   `json:"f_index,omitempty"`
}

func (*Call) isExpr() {}

// CallClosure is `(item)(args...)`.
type CallClosure struct {
	Item Item   `json:"item"`
	Args []Expr `json:"args"`
}

func (*CallClosure) isExpr() {}

// Closure is `\(args) => expr`, lowered to a Rust closure literal.
type Closure struct {
	Args []string `json:"args"`
	Expr Expr     `json:"expr"`
}

func (*Closure) isExpr() {}

// Id is one element of an Item's id-path: a string key, numeric key, or
// expression index.
type Id struct {
	String *string `json:"string,omitempty"`
	F64    *float64 `json:"f64,omitempty"`
	Expr   Expr     `json:"expr,omitempty"`
}

// Item is a positional-stack reference plus an optional id-path.
type Item struct {
	StaticStackID int  `json:"static_stack_id"`
	Ids           []Id `json:"ids,omitempty"`
}

func (*Item) isExpr() {}

// Number is a numeric literal.
type Number struct {
	Value float64 `json:"value"`
}

func (*Number) isExpr() {}

// Bool is a boolean literal.
type Bool struct {
	Value bool `json:"value"`
}

func (*Bool) isExpr() {}

// Text is a string literal.
type Text struct {
	Value string `json:"value"`
}

func (*Text) isExpr() {}

// Swizzle draws 2-4 lanes from expr by lane index (sw0..sw3, sw2/sw3
// optional — each widens the swizzle by one lane).
type Swizzle struct {
	Expr Expr `json:"expr"`
	Sw0  int  `json:"sw0"`
	Sw1  int  `json:"sw1"`
	Sw2  *int `json:"sw2,omitempty"`
	Sw3  *int `json:"sw3,omitempty"`
}

func (*Swizzle) isExpr() {}

// Lanes returns the number of lanes this swizzle contributes (2-4).
func (s *Swizzle) Lanes() int {
	n := 2
	if s.Sw2 != nil {
		n++
		if s.Sw3 != nil {
			n++
		}
	}
	return n
}

// Vec4 carries up to 4 component sub-expressions (after swizzle
// expansion the total lane count is always exactly 4 — invariant 3).
type Vec4 struct {
	Args []Expr `json:"args"`
}

func (*Vec4) isExpr() {}

// Array is a literal array; the element types decide, via
// internal/typeinfer, whether it emits as a monomorphic sequence or a
// sequence of boxed dynamic variables.
type Array struct {
	Items []Expr `json:"items"`
}

func (*Array) isExpr() {}

// KeyValue is one Object entry.
type KeyValue struct {
	Key   string `json:"key"`
	Value Expr   `json:"value"`
}

// Object is a literal key/value map.
type Object struct {
	KeyValues []KeyValue `json:"key_values"`
}

func (*Object) isExpr() {}

// BinOpExpr is an arithmetic/logical binary operation.
type BinOpExpr struct {
	Op    BinOpKind `json:"op"`
	Left  Expr      `json:"left"`
	Right Expr      `json:"right"`
}

func (*BinOpExpr) isExpr() {}

// Compare is a relational comparison.
type Compare struct {
	Op    CompareKind `json:"op"`
	Left  Expr        `json:"left"`
	Right Expr        `json:"right"`
}

func (*Compare) isExpr() {}

// UnOpExpr is a unary operation.
type UnOpExpr struct {
	Op   UnOpKind `json:"op"`
	Expr Expr     `json:"expr"`
}

func (*UnOpExpr) isExpr() {}

// Assign is one of five shapes selected by Op (§4.4 Assign bullet).
type Assign struct {
	Op    AssignKind `json:"op"`
	Left  Expr       `json:"left"`
	Right Expr       `json:"right"`
}

func (*Assign) isExpr() {}

// If is a chain of cond/then arms plus an optional final else.
type If struct {
	Cond          Expr   `json:"cond"`
	TrueBlock     Block  `json:"true_block"`
	ElseIfConds   []Expr `json:"else_if_conds,omitempty"`
	ElseIfBlocks  []Block `json:"else_if_blocks,omitempty"`
	ElseBlock     *Block `json:"else_block,omitempty"`
}

func (*If) isExpr() {}

// For is a C-style loop: init; while cond { block; step }.
type For struct {
	Init  Expr   `json:"init"`
	Cond  Expr   `json:"cond"`
	Step  Expr   `json:"step"`
	Block Block  `json:"block"`
	Label *string `json:"label,omitempty"`
}

func (*For) isExpr() {}

// ForN is the shared shape behind ForN/Sum/Prod/All/Any/Min/Max/Sift —
// which accumulator protocol applies is carried by the Expr variant
// wrapping it (see the codegen package's aggregate), not by a field on
// ForN itself.
type ForN struct {
	Start *Expr  `json:"start,omitempty"`
	End   Expr   `json:"end"`
	Block Block  `json:"block"`
	Label *string `json:"label,omitempty"`
}

func (*ForN) isExpr() {}

// Sum, Prod, All, Any, Min, Max, Sift all share ForN's shape; each gets
// its own Go type so the codegen type switch (and JSON "kind" tag)
// picks the right accumulator protocol without an extra field to get
// out of sync with the variant.
type Sum struct{ ForN }

func (*Sum) isExpr() {}

type Prod struct{ ForN }

func (*Prod) isExpr() {}

type All struct{ ForN }

func (*All) isExpr() {}

type Any struct{ ForN }

func (*Any) isExpr() {}

type Min struct{ ForN }

func (*Min) isExpr() {}

type Max struct{ ForN }

func (*Max) isExpr() {}

type Sift struct{ ForN }

func (*Sift) isExpr() {}

// BlockExpr wraps a Block used in expression position.
type BlockExpr struct {
	Block Block `json:"block"`
}

func (*BlockExpr) isExpr() {}

// Break exits a loop, optionally a labelled outer one.
type Break struct {
	Label *string `json:"label,omitempty"`
}

func (*Break) isExpr() {}

// Continue restarts a loop, optionally a labelled outer one.
type Continue struct {
	Label *string `json:"label,omitempty"`
}

func (*Continue) isExpr() {}

// Return yields expr from the enclosing function.
type Return struct {
	Expr Expr `json:"expr"`
}

func (*Return) isExpr() {}
