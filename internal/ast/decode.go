package ast

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Decode parses the JSON wire/fixture format into a Module.
//
// The real loader that produces an AST Module is an external
// collaborator (spec.md §1); this decoder exists only so dyonc's CLI,
// golden fixtures and devserver have a concrete, shared way to read
// one off disk or off a websocket connection. Every node is encoded as
// {"kind": "<Variant>", ...fields}; see testdata/golden for examples.
func Decode(data []byte) (Module, error) {
	var raw struct {
		Functions []json.RawMessage `json:"functions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Module{}, errors.Wrap(err, "decode module")
	}
	m := Module{Functions: make([]Function, 0, len(raw.Functions))}
	for i, fn := range raw.Functions {
		f, err := decodeFunction(fn)
		if err != nil {
			return Module{}, errors.Wrapf(err, "decode function %d", i)
		}
		m.Functions = append(m.Functions, f)
	}
	return m, nil
}

func decodeFunction(data json.RawMessage) (Function, error) {
	var raw struct {
		Name   string            `json:"name"`
		Args   []json.RawMessage `json:"args"`
		Return json.RawMessage   `json:"return"`
		Body   json.RawMessage   `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Function{}, err
	}
	f := Function{Name: raw.Name}
	for _, a := range raw.Args {
		var argRaw struct {
			Type    json.RawMessage `json:"type"`
			Mutable bool            `json:"mutable"`
		}
		if err := json.Unmarshal(a, &argRaw); err != nil {
			return Function{}, err
		}
		ty, err := decodeType(argRaw.Type)
		if err != nil {
			return Function{}, err
		}
		f.Args = append(f.Args, Arg{Type: ty, Mutable: argRaw.Mutable})
	}
	ret, err := decodeType(raw.Return)
	if err != nil {
		return Function{}, err
	}
	f.Return = ret
	body, err := decodeBlock(raw.Body)
	if err != nil {
		return Function{}, err
	}
	f.Body = body
	return f, nil
}

func decodeType(data json.RawMessage) (Type, error) {
	if len(data) == 0 {
		return Void{}, nil
	}
	var head struct {
		Kind string          `json:"kind"`
		Elem json.RawMessage `json:"elem"`
		Args []json.RawMessage `json:"args"`
		Ret  json.RawMessage `json:"ret"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case "F64":
		return F64Type{}, nil
	case "Bool":
		return BoolType{}, nil
	case "Vec4":
		return Vec4Type{}, nil
	case "Text":
		return TextType{}, nil
	case "Void", "":
		return Void{}, nil
	case "Array":
		elem, err := decodeType(head.Elem)
		if err != nil {
			return nil, err
		}
		return ArrayType{Elem: elem}, nil
	case "Secret":
		elem, err := decodeType(head.Elem)
		if err != nil {
			return nil, err
		}
		return SecretType{Elem: elem}, nil
	case "Closure":
		ct := ClosureType{}
		for _, a := range head.Args {
			ty, err := decodeType(a)
			if err != nil {
				return nil, err
			}
			ct.Args = append(ct.Args, ty)
		}
		ret, err := decodeType(head.Ret)
		if err != nil {
			return nil, err
		}
		ct.Ret = ret
		return ct, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", head.Kind)
	}
}

func decodeBlock(data json.RawMessage) (Block, error) {
	if len(data) == 0 {
		return Block{}, nil
	}
	var raw struct {
		Exprs []json.RawMessage `json:"exprs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Block{}, err
	}
	b := Block{Exprs: make([]Expr, 0, len(raw.Exprs))}
	for _, e := range raw.Exprs {
		expr, err := decodeExpr(e)
		if err != nil {
			return Block{}, err
		}
		b.Exprs = append(b.Exprs, expr)
	}
	return b, nil
}

func decodeExprPtr(data json.RawMessage) (*Expr, error) {
	if len(data) == 0 {
		return nil, nil
	}
	e, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func decodeBlockPtr(data json.RawMessage) (*Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	b, err := decodeBlock(data)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func decodeExprList(data json.RawMessage) ([]Expr, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]Expr, 0, len(raws))
	for _, r := range raws {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeBlockList(data json.RawMessage) ([]Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]Block, 0, len(raws))
	for _, r := range raws {
		b, err := decodeBlock(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeItem(data json.RawMessage) (Item, error) {
	var raw struct {
		StaticStackID int `json:"static_stack_id"`
		Ids           []struct {
			String *string         `json:"string"`
			F64    *float64        `json:"f64"`
			Expr   json.RawMessage `json:"expr"`
		} `json:"ids"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Item{}, err
	}
	item := Item{StaticStackID: raw.StaticStackID}
	for _, idRaw := range raw.Ids {
		id := Id{String: idRaw.String, F64: idRaw.F64}
		if len(idRaw.Expr) > 0 {
			e, err := decodeExpr(idRaw.Expr)
			if err != nil {
				return Item{}, err
			}
			id.Expr = e
		}
		item.Ids = append(item.Ids, id)
	}
	return item, nil
}

// decodeExpr is the heart of the fixture format: dispatch on "kind"
// and build the matching concrete node. Malformed JSON and an unknown
// "kind" are both rejected here with an error.
func decodeExpr(data json.RawMessage) (Expr, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case "Call":
		var raw struct {
			Name   string            `json:"name"`
			Args   json.RawMessage   `json:"args"`
			FIndex *int              `json:"f_index"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := decodeExprList(raw.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Name: raw.Name, Args: args, FIndex: raw.FIndex}, nil

	case "CallClosure":
		var raw struct {
			Item json.RawMessage `json:"item"`
			Args json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		item, err := decodeItem(raw.Item)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprList(raw.Args)
		if err != nil {
			return nil, err
		}
		return &CallClosure{Item: item, Args: args}, nil

	case "Closure":
		var raw struct {
			Args []string        `json:"args"`
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &Closure{Args: raw.Args, Expr: expr}, nil

	case "Item":
		item, err := decodeItem(data)
		if err != nil {
			return nil, err
		}
		return &item, nil

	case "Number":
		var raw struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Number{Value: raw.Value}, nil

	case "Bool":
		var raw struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Bool{Value: raw.Value}, nil

	case "Text":
		var raw struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Text{Value: raw.Value}, nil

	case "Swizzle":
		var raw struct {
			Expr json.RawMessage `json:"expr"`
			Sw0  int             `json:"sw0"`
			Sw1  int             `json:"sw1"`
			Sw2  *int            `json:"sw2"`
			Sw3  *int            `json:"sw3"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &Swizzle{Expr: expr, Sw0: raw.Sw0, Sw1: raw.Sw1, Sw2: raw.Sw2, Sw3: raw.Sw3}, nil

	case "Vec4":
		var raw struct {
			Args json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		args, err := decodeExprList(raw.Args)
		if err != nil {
			return nil, err
		}
		return &Vec4{Args: args}, nil

	case "Array":
		var raw struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		items, err := decodeExprList(raw.Items)
		if err != nil {
			return nil, err
		}
		return &Array{Items: items}, nil

	case "Object":
		var raw struct {
			KeyValues []struct {
				Key   string          `json:"key"`
				Value json.RawMessage `json:"value"`
			} `json:"key_values"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		obj := &Object{}
		for _, kv := range raw.KeyValues {
			v, err := decodeExpr(kv.Value)
			if err != nil {
				return nil, err
			}
			obj.KeyValues = append(obj.KeyValues, KeyValue{Key: kv.Key, Value: v})
		}
		return obj, nil

	case "BinOp":
		var raw struct {
			Op    BinOpKind       `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &BinOpExpr{Op: raw.Op, Left: left, Right: right}, nil

	case "Compare":
		var raw struct {
			Op    CompareKind     `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Compare{Op: raw.Op, Left: left, Right: right}, nil

	case "UnOp":
		var raw struct {
			Op   UnOpKind        `json:"op"`
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &UnOpExpr{Op: raw.Op, Expr: expr}, nil

	case "Assign":
		var raw struct {
			Op    AssignKind      `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		left, err := decodeExpr(raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(raw.Right)
		if err != nil {
			return nil, err
		}
		return &Assign{Op: raw.Op, Left: left, Right: right}, nil

	case "If":
		var raw struct {
			Cond         json.RawMessage   `json:"cond"`
			TrueBlock    json.RawMessage   `json:"true_block"`
			ElseIfConds  json.RawMessage   `json:"else_if_conds"`
			ElseIfBlocks json.RawMessage   `json:"else_if_blocks"`
			ElseBlock    json.RawMessage   `json:"else_block"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(raw.Cond)
		if err != nil {
			return nil, err
		}
		trueBlock, err := decodeBlock(raw.TrueBlock)
		if err != nil {
			return nil, err
		}
		elseIfConds, err := decodeExprList(raw.ElseIfConds)
		if err != nil {
			return nil, err
		}
		elseIfBlocks, err := decodeBlockList(raw.ElseIfBlocks)
		if err != nil {
			return nil, err
		}
		elseBlock, err := decodeBlockPtr(raw.ElseBlock)
		if err != nil {
			return nil, err
		}
		return &If{
			Cond:         cond,
			TrueBlock:    trueBlock,
			ElseIfConds:  elseIfConds,
			ElseIfBlocks: elseIfBlocks,
			ElseBlock:    elseBlock,
		}, nil

	case "For":
		var raw struct {
			Init  json.RawMessage `json:"init"`
			Cond  json.RawMessage `json:"cond"`
			Step  json.RawMessage `json:"step"`
			Block json.RawMessage `json:"block"`
			Label *string         `json:"label"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		initE, err := decodeExpr(raw.Init)
		if err != nil {
			return nil, err
		}
		condE, err := decodeExpr(raw.Cond)
		if err != nil {
			return nil, err
		}
		stepE, err := decodeExpr(raw.Step)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(raw.Block)
		if err != nil {
			return nil, err
		}
		return &For{Init: initE, Cond: condE, Step: stepE, Block: block, Label: raw.Label}, nil

	case "ForN", "Sum", "Prod", "All", "Any", "Min", "Max", "Sift":
		forN, err := decodeForN(data)
		if err != nil {
			return nil, err
		}
		switch head.Kind {
		case "ForN":
			return &forN, nil
		case "Sum":
			return &Sum{forN}, nil
		case "Prod":
			return &Prod{forN}, nil
		case "All":
			return &All{forN}, nil
		case "Any":
			return &Any{forN}, nil
		case "Min":
			return &Min{forN}, nil
		case "Max":
			return &Max{forN}, nil
		case "Sift":
			return &Sift{forN}, nil
		}

	case "Block":
		var raw struct {
			Block json.RawMessage `json:"block"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		block, err := decodeBlock(raw.Block)
		if err != nil {
			return nil, err
		}
		return &BlockExpr{Block: block}, nil

	case "Break":
		var raw struct {
			Label *string `json:"label"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Break{Label: raw.Label}, nil

	case "Continue":
		var raw struct {
			Label *string `json:"label"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return &Continue{Label: raw.Label}, nil

	case "Return":
		var raw struct {
			Expr json.RawMessage `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		expr, err := decodeExpr(raw.Expr)
		if err != nil {
			return nil, err
		}
		return &Return{Expr: expr}, nil
	}

	return nil, fmt.Errorf("unknown expression kind %q", head.Kind)
}

func decodeForN(data json.RawMessage) (ForN, error) {
	var raw struct {
		Start json.RawMessage `json:"start"`
		End   json.RawMessage `json:"end"`
		Block json.RawMessage `json:"block"`
		Label *string         `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ForN{}, err
	}
	start, err := decodeExprPtr(raw.Start)
	if err != nil {
		return ForN{}, err
	}
	end, err := decodeExpr(raw.End)
	if err != nil {
		return ForN{}, err
	}
	block, err := decodeBlock(raw.Block)
	if err != nil {
		return ForN{}, err
	}
	return ForN{Start: start, End: end, Block: block, Label: raw.Label}, nil
}
