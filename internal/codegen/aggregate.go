package codegen

import (
	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
	"dyonc/internal/scope"
	"dyonc/internal/transerr"
)

// aggKind picks which of the eight ForN-shaped accumulator protocols
// applies — the node's own Go type (ast.Sum, ast.Min, ...) carries this
// information; internal/codegen.expr maps it to the right constant
// before calling aggregate.
type aggKind int

const (
	plain aggKind = iota
	sum
	prod
	all
	any
	min
	max
	sift
)

// aggregate lowers the shared ForN shape (§4.5.2). Every variant
// threads exactly one new SL-visible binding into the body it
// generates — the loop index — so the body is always emitted at
// stackLen+1, regardless of how many Rust-only scaffolding locals
// (n/acc/track) the surrounding loop introduces
// (original_source/src/lib.rs's generate_{for,all,any,sum,prod,min,
// max,sift}_n all call generate_block with stack_len+1). Those
// scaffolding locals reuse the same positional naming scheme the
// body's own first binding would use at that depth; that is not a
// naming bug, it is exactly what the ground truth relies on — Rust's
// per-block shadowing means the body's own item simply shadows the
// hidden accumulator within its own nested scope, and the body never
// needs to name the accumulator itself.
func (e *emitter) aggregate(tabs, stackLen int, kind aggKind, f *ast.ForN) error {
	idx := scope.Name(stackLen)
	n := scope.Name(stackLen + 1)
	acc := scope.Name(stackLen + 2)
	track := scope.Name(stackLen + 3)
	bodyStackLen := stackLen + 1

	if err := e.write("{\n"); err != nil {
		return err
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("let mut %s = ", idx); err != nil {
		return err
	}
	if f.Start != nil {
		if err := e.expr(tabs+1, stackLen, *f.Start); err != nil {
			return err
		}
	} else if err := e.write("0.0"); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
		return err
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("let %s = ", n); err != nil {
		return err
	}
	if err := e.expr(tabs+1, stackLen, f.End); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
		return err
	}

	if err := e.writeAccumulatorInit(tabs, kind, acc, track); err != nil {
		return err
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if f.Label != nil {
		if err := e.write("'%s: ", *f.Label); err != nil {
			return err
		}
	}
	if err := e.write("while %s(&%s, &%s) {\n", runtimecontract.CmpLess, idx, n); err != nil {
		return err
	}

	switch kind {
	case plain:
		if err := e.block(tabs+2, bodyStackLen, f.Block); err != nil {
			return err
		}
		if err := e.write(";\n"); err != nil {
			return err
		}
	case all, any:
		if err := e.writeAllAny(tabs+2, bodyStackLen, kind, acc, idx, f.Block); err != nil {
			return err
		}
	case min, max:
		if err := e.writeCandidateBlock(tabs+2, bodyStackLen, f.Block); err != nil {
			return err
		}
		if err := e.writeMinMaxCombine(tabs+2, kind, acc, track, idx); err != nil {
			return err
		}
	default:
		if err := e.writeCandidateBlock(tabs+2, bodyStackLen, f.Block); err != nil {
			return err
		}
		if err := e.writeCombine(tabs+2, kind, acc); err != nil {
			return err
		}
	}

	if err := e.tabs(tabs + 2); err != nil {
		return err
	}
	if err := e.write("%s = %s(&%s, &1.0);\n", idx, runtimecontract.BinAdd, idx); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("}\n"); err != nil {
		return err
	}

	if kind == min || kind == max {
		if err := e.tabs(tabs + 1); err != nil {
			return err
		}
		if err := e.write("if let Some(%s) = %s {\n", idx, track); err != nil {
			return err
		}
		if err := e.tabs(tabs + 2); err != nil {
			return err
		}
		if err := e.write("%s.secret.push(%s);\n", acc, idx); err != nil {
			return err
		}
		if err := e.tabs(tabs + 1); err != nil {
			return err
		}
		if err := e.write("}\n"); err != nil {
			return err
		}
	}

	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if kind == plain {
		if err := e.write("()"); err != nil {
			return err
		}
	} else if err := e.write("%s", acc); err != nil {
		return err
	}
	if err := e.write("\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}

// writeAccumulatorInit declares the accumulator (and, for Min/Max, the
// witness-index tracking slot) ahead of the loop. All/Any carry a
// Secret<bool, f64> rather than a plain bool, and Min/Max a
// Secret<f64, f64> rather than a plain f64, so each can accumulate an
// ordered witness sequence of the indices that justified the result
// (spec.md §9 "Secret as proof witness").
func (e *emitter) writeAccumulatorInit(tabs int, kind aggKind, acc, track string) error {
	switch kind {
	case plain:
		return nil
	case sum:
		return e.writeIndented(tabs+1, "let mut %s = 0.0;\n", acc)
	case prod:
		return e.writeIndented(tabs+1, "let mut %s = 1.0;\n", acc)
	case all:
		return e.writeIndented(tabs+1, "let mut %s: Secret<bool, f64> = %s(true);\n", acc, runtimecontract.SecretNewBool)
	case any:
		return e.writeIndented(tabs+1, "let mut %s: Secret<bool, f64> = %s(false);\n", acc, runtimecontract.SecretNewBool)
	case min, max:
		if err := e.writeIndented(tabs+1, "let mut %s: Secret<f64, f64> = %s(::std::f64::NAN);\n", acc, runtimecontract.SecretNewF64); err != nil {
			return err
		}
		return e.writeIndented(tabs+1, "let mut %s: Option<f64> = None;\n", track)
	case sift:
		return e.writeIndented(tabs+1, "let mut %s = Vec::new();\n", acc)
	default:
		return transerr.Unsupported(nil, "unsupported aggregation kind %d", kind)
	}
}

// writeCandidateBlock emits `let cand = { <body> };` at tabs, the
// shape shared by Sum/Prod/Sift/Min/Max (All/Any instead combine the
// body's result directly via &=/|=, see writeAllAny).
func (e *emitter) writeCandidateBlock(tabs, bodyStackLen int, block ast.Block) error {
	if err := e.tabs(tabs); err != nil {
		return err
	}
	if err := e.write("let cand = {\n"); err != nil {
		return err
	}
	if err := e.block(tabs+1, bodyStackLen, block); err != nil {
		return err
	}
	if err := e.write("\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("};\n")
}

// writeCombine applies one loop body's candidate value to the running
// accumulator for the three variants whose combine step never needs to
// examine the index or break early: Sum, Prod, Sift.
func (e *emitter) writeCombine(tabs int, kind aggKind, acc string) error {
	switch kind {
	case sum:
		return e.writeIndented(tabs, "%s = %s(&%s, &cand);\n", acc, runtimecontract.BinAdd, acc)
	case prod:
		return e.writeIndented(tabs, "%s = %s(&%s, &cand);\n", acc, runtimecontract.BinMul, acc)
	case sift:
		return e.writeIndented(tabs, "%s.push(cand);\n", acc)
	default:
		return transerr.Unsupported(nil, "unsupported aggregation kind %d", kind)
	}
}

// writeAllAny combines the loop body directly into the Secret<bool,_>
// accumulator with Rust's &=/|= (bool x bool AND/OR, per Secret's own
// BitAndAssign/BitOrAssign impls), then checks the accumulator's
// unwrapped value through cond(&acc): All breaks and records a witness
// the first time the running AND turns false, Any the first time the
// running OR turns true (spec.md §4.5.2's All/Any rows).
func (e *emitter) writeAllAny(tabs, bodyStackLen int, kind aggKind, acc, idx string, block ast.Block) error {
	op := "&="
	negate := "!"
	if kind == any {
		op = "|="
		negate = ""
	}

	if err := e.tabs(tabs); err != nil {
		return err
	}
	if err := e.write("%s %s {\n", acc, op); err != nil {
		return err
	}
	if err := e.block(tabs+1, bodyStackLen, block); err != nil {
		return err
	}
	if err := e.write("\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	if err := e.write("};\n"); err != nil {
		return err
	}

	if err := e.tabs(tabs); err != nil {
		return err
	}
	if err := e.write("if %s%s(&%s) {\n", negate, runtimecontract.Cond, acc); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("%s.secret.push(%s);\n", acc, idx); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("break;\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}\n")
}

// writeMinMaxCombine compares the loop's candidate against the running
// Secret<f64,_> accumulator (an unset accumulator always loses, via
// is_nan()) and, on improvement, replaces the accumulator and records
// which index produced it — the terminal push into the witness
// sequence happens once, after the loop, in aggregate itself (spec.md
// §4.5.2's Min/Max rows: "if track then push into witness").
func (e *emitter) writeMinMaxCombine(tabs int, kind aggKind, acc, track, idx string) error {
	better := "<"
	if kind == max {
		better = ">"
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	if err := e.write("if %s.val.is_nan() || cand.value() %s %s.value() {\n", acc, better, acc); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("%s = cand.into();\n", acc); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("%s = Some(%s);\n", track, idx); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}\n")
}

func (e *emitter) writeIndented(tabs int, format string, args ...interface{}) error {
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write(format, args...)
}
