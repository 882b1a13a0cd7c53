package cse

import (
	"strings"

	"github.com/facebook/redex-core/internal/fixpoint"
	"github.com/facebook/redex-core/internal/ir"
)

// Forward is one rewrite opportunity surfaced by the post-fixpoint pass:
// Later recomputes a value Earlier already produced.
type Forward struct {
	Earlier, Later *ir.Instruction
	Dest           ir.Reg
	Wide           bool
}

// Result is one method's completed CSE analysis.
type Result struct {
	Table    *Table
	Forwards []Forward
}

// AnalyzeMethod runs the forward fixpoint of spec.md §4.7 over m's CFG
// and returns the forwarding opportunities it found. It does not mutate
// m; call Apply with the result to perform the rewrite.
func AnalyzeMethod(m *ir.Method, ss *SharedState) *Result {
	cfg := m.Code().CFG()
	table := NewTable()

	it := &fixpoint.Iterator[*ir.CFG, *ir.Block, *ir.BlockEdge, *State]{
		GI:        cfg,
		G:         cfg,
		NewBottom: NewBottomState,
		Initial:   NewTopState(),
		AnalyzeNode: func(b *ir.Block, entryState *State) *State {
			return processBlock(b, entryState, table, ss, nil)
		},
		AnalyzeEdge: func(_ *ir.BlockEdge, exitStateAtSource *State) *State {
			return exitStateAtSource
		},
	}
	entryStates, _ := it.Run()

	var forwards []Forward
	for _, b := range cfg.Blocks {
		entry, ok := entryStates[b]
		if !ok || entry.IsBottom() {
			continue
		}
		processBlock(b, entry, table, ss, &forwards)
	}
	return &Result{Table: table, Forwards: forwards}
}

// processBlock threads state forward through block's instructions,
// value-numbering each dest-producing instruction and, when forwards is
// non-nil, recording every later instruction whose result a strictly
// earlier instruction in the same method already produced.
func processBlock(block *ir.Block, entryState *State, table *Table, ss *SharedState, forwards *[]Forward) *State {
	state := entryState.Copy()
	var pending ValueID
	havePending := false

	for _, insn := range block.Instructions {
		srcIDs := make([]ValueID, len(insn.Srcs))
		for i, r := range insn.Srcs {
			id, ok := state.RefGet(r)
			if !ok {
				id = table.Intern(Value{Payload: Payload{
					Kind:         PayloadPreState,
					PreStateReg:  r,
					PreStateInsn: insn,
				}}, false)
				state.RefSet(r, id)
			}
			srcIDs[i] = id
		}

		var resultID ValueID
		haveResult := false
		isNewValue := false
		barrierSensitive := false

		switch {
		case insn.HasMoveResult():
			if havePending {
				resultID, haveResult = pending, true
			}
		case insn.Op.IsMove():
			if len(srcIDs) > 0 {
				resultID, haveResult = srcIDs[0], true
			}
		case insn.HasDest() || insn.Op.IsInvoke():
			barrierSensitive = isHeapRead(insn.Op)
			sorted := sortIfCommutative(insn.Op, srcIDs)
			resultID = table.Intern(Value{Op: insn.Op, Sources: sorted, Payload: payloadFor(insn)}, barrierSensitive)
			haveResult, isNewValue = true, true
		}

		if insn.Op.IsInvoke() {
			pending, havePending = resultID, haveResult
		} else if !insn.Op.IsMove() {
			havePending = false
		}

		if isNewValue && insn.HasDest() && forwards != nil {
			if earlier, ok := state.DefGet(barrierSensitive, resultID); ok && earlier != insn {
				*forwards = append(*forwards, Forward{Earlier: earlier, Later: insn, Dest: insn.Dest, Wide: insn.DestIsWide()})
			}
		}
		if isNewValue {
			state.DefSetIfAbsent(barrierSensitive, resultID, insn)
		}
		if insn.HasDest() {
			state.RefSet(insn.Dest, resultID)
		}
		if ss.IsBarrier(insn) {
			state.ClearBarrierSensitive(table.BarrierSensitive)
		}
	}
	return state
}

// isHeapRead reports whether insn's value depends on a heap read, the
// condition under which its def-env binding must live in the
// barrier-sensitive component (spec.md §4.7).
func isHeapRead(op ir.Opcode) bool {
	return op.IsIget() || op.IsSget() || op.IsAget()
}

// payloadFor builds the Value payload for a dest-producing (or
// invoke) instruction, per spec.md §3.5's payload categories.
func payloadFor(insn *ir.Instruction) Payload {
	if insn.Op.IsPositional() {
		return Payload{Kind: PayloadPositional, Positional: insn}
	}
	switch insn.Operand.Kind {
	case ir.OperandLiteral:
		return Payload{Kind: PayloadLiteral, Literal: insn.Operand.Literal}
	case ir.OperandString:
		return Payload{Kind: PayloadString, Str: insn.Operand.Str}
	case ir.OperandType:
		return Payload{Kind: PayloadType, Type: insn.Operand.Type}
	case ir.OperandField:
		return Payload{Kind: PayloadField, Field: insn.Operand.Field}
	case ir.OperandMethod:
		return Payload{Kind: PayloadMethod, Method: insn.Operand.Method}
	case ir.OperandData:
		return Payload{Kind: PayloadData, Data: string(insn.Operand.Data)}
	default:
		return Payload{Kind: PayloadNone}
	}
}

// Apply performs the rewrite pass of spec.md §4.7 against m's own CFG:
// for each unique earlier definer, allocate one fresh temp, move the
// earlier definer's result into it immediately after that instruction,
// then move the temp into each later consumer's destination immediately
// after the later instruction. It never deletes an instruction or
// touches control flow, and returns the number of consumers rewritten.
func Apply(m *ir.Method, forwards []Forward) int {
	if len(forwards) == 0 {
		return 0
	}
	code := m.Code()
	cfg := code.CFG()

	blockOf := make(map[*ir.Instruction]*ir.Block)
	for _, b := range cfg.Blocks {
		for _, insn := range b.Instructions {
			blockOf[insn] = b
		}
	}

	tempOf := make(map[*ir.Instruction]ir.Reg)
	count := 0
	for _, f := range forwards {
		temp, ok := tempOf[f.Earlier]
		if !ok {
			if f.Wide {
				temp = code.AllocateWideTemp()
			} else {
				temp = code.AllocateTemp()
			}
			tempOf[f.Earlier] = temp
			op := pickMoveOp(f.Earlier, f.Wide)
			save := &ir.Instruction{Op: op, Dest: temp, DestWide: f.Wide, Srcs: []ir.Reg{f.Earlier.Dest}}
			if b, ok := blockOf[f.Earlier]; ok {
				b.InsertAfter(f.Earlier, save)
			}
		}

		op := pickMoveOp(f.Earlier, f.Wide)
		restore := &ir.Instruction{Op: op, Dest: f.Dest, DestWide: f.Wide, Srcs: []ir.Reg{temp}}
		if b, ok := blockOf[f.Later]; ok {
			b.InsertAfter(f.Later, restore)
		}
		count++
	}
	return count
}

// pickMoveOp picks the move variant matching the earlier definer's
// result shape: wide, object-typed, or plain.
func pickMoveOp(earlier *ir.Instruction, wide bool) ir.Opcode {
	if wide {
		return ir.OpMoveWide
	}
	if isObjectLike(earlier) {
		return ir.OpMoveObject
	}
	return ir.OpMove
}

func isObjectLike(insn *ir.Instruction) bool {
	switch insn.Operand.Kind {
	case ir.OperandField:
		return isRefType(insn.Operand.Field.FType)
	case ir.OperandMethod:
		return isRefType(insn.Operand.Method.Proto.Return)
	case ir.OperandType:
		return true
	}
	switch insn.Op {
	case ir.OpIgetObject, ir.OpSgetObject, ir.OpAgetObject, ir.OpMoveObject, ir.OpMoveException,
		ir.OpNewInstance, ir.OpNewArray, ir.OpFilledNewArray, ir.OpCheckCast, ir.OpConstString, ir.OpConstClass:
		return true
	}
	return false
}

func isRefType(t ir.Type) bool {
	s := string(t)
	return strings.HasPrefix(s, "L") || strings.HasPrefix(s, "[")
}
