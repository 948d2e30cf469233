package codegen

import (
	"dyonc/internal/ast"
	"dyonc/internal/runtimecontract"
)

// ifExpr emits a cond/else-if-chain/else, each arm wrapped through the
// runtime's cond() helper so both a plain bool and a Secret<bool, _>
// condition type-check (§4.1).
func (e *emitter) ifExpr(tabs, stackLen int, n *ast.If) error {
	if err := e.writeCondArm(tabs, stackLen, "if", n.Cond, n.TrueBlock); err != nil {
		return err
	}
	for i, cond := range n.ElseIfConds {
		if err := e.write(" else "); err != nil {
			return err
		}
		if err := e.writeCondArm(tabs, stackLen, "if", cond, n.ElseIfBlocks[i]); err != nil {
			return err
		}
	}
	if n.ElseBlock != nil {
		if err := e.write(" else {\n"); err != nil {
			return err
		}
		if err := e.block(tabs+1, stackLen, *n.ElseBlock); err != nil {
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
	return nil
}

func (e *emitter) writeCondArm(tabs, stackLen int, keyword string, cond ast.Expr, block ast.Block) error {
	if err := e.write("%s %s(&", keyword, runtimecontract.Cond); err != nil {
		return err
	}
	if err := e.expr(tabs, stackLen, cond); err != nil {
		return err
	}
	if err := e.write(") {\n"); err != nil {
		return err
	}
	if err := e.block(tabs+1, stackLen, block); err != nil {
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

// forExpr lowers the C-style For to a Rust while loop: there is no
// direct C-for construct in TL, so init/cond/step are spelled out as
// plain statements around a while (§4.4 For bullet).
func (e *emitter) forExpr(tabs, stackLen int, f *ast.For) error {
	if err := e.write("{\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.expr(tabs+1, stackLen, f.Init); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
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
	if err := e.write("while %s(&", runtimecontract.Cond); err != nil {
		return err
	}
	if err := e.expr(tabs+1, stackLen, f.Cond); err != nil {
		return err
	}
	if err := e.write(") {\n"); err != nil {
		return err
	}
	if err := e.block(tabs+2, stackLen+1, f.Block); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 2); err != nil {
		return err
	}
	if err := e.expr(tabs+2, stackLen, f.Step); err != nil {
		return err
	}
	if err := e.write(";\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs + 1); err != nil {
		return err
	}
	if err := e.write("}\n"); err != nil {
		return err
	}
	if err := e.tabs(tabs); err != nil {
		return err
	}
	return e.write("}")
}
