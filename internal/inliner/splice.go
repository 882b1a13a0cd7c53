package inliner

import "github.com/facebook/redex-core/internal/ir"

// Splice performs spec.md §4.6's "Inlining mechanics (one callsite)"
// against a single callsite, in CFG-editing mode (the only splicer
// this implementation provides; step 1's linear-list alternative is
// out of scope, matching ir.Code's own doc comment). callee is never
// mutated; its body is cloned and register-shifted into caller.
//
// Simplification (recorded in DESIGN.md): callee must have exactly one
// reachable return instruction (MultipleReturns already refuses any
// other shape before Splice is ever called), and debug position
// re-parenting (step 5) is a no-op because ir.Instruction carries no
// position field.
func Splice(caller, callee *ir.Method, callsite *ir.Instruction) {
	callerCode := caller.Code()
	callerCFG := callerCode.CFG()

	site, siteIdx := findBlockAndIndex(callerCFG, callsite)
	moveResult, hasMoveResult := nextMoveResult(site, siteIdx)
	resultDest := ir.NoReg
	resultWide := false
	if hasMoveResult {
		resultDest = moveResult.Dest
		resultWide = moveResult.DestIsWide()
	}

	cutLen := 1
	if hasMoveResult {
		cutLen = 2
	}

	rest, _ := callerCFG.SplitBlock(site, siteIdx)
	continuation, entryEdge := callerCFG.SplitBlock(rest, cutLen)
	// rest now holds exactly [invoke] or [invoke, move-result], with a
	// fallthrough to continuation (which inherited site's original
	// successors). Discard rest: the invoke/move-result pair is erased
	// (spec.md §4.6 step 6) once site's fallthrough is retargeted below.
	callerCFG.RemoveEdge(entryEdge)
	callerCFG.RemoveBlock(rest)

	base := callerCode.ReserveRange(callee.Code().RegisterSize())
	clone := cloneCFG(callerCFG, callee.Code().CFG(), base)

	if site.InTry {
		for _, b := range clone.blocks {
			b.InTry = true
			b.CatchHandlers = site.CatchHandlers
		}
	}

	bindParams(site, callee.Code().Params(), callsite.Srcs, base)
	callerCFG.AddEdge(site, clone.entry, ir.EdgeFallthrough, "")

	rewriteReturn(callerCFG, clone, continuation, resultDest, resultWide)
}

func findBlockAndIndex(cfg *ir.CFG, insn *ir.Instruction) (*ir.Block, int) {
	for _, b := range cfg.Blocks {
		for i, x := range b.Instructions {
			if x == insn {
				return b, i
			}
		}
	}
	return nil, -1
}

func nextMoveResult(b *ir.Block, idx int) (*ir.Instruction, bool) {
	if idx+1 < len(b.Instructions) && b.Instructions[idx+1].HasMoveResult() {
		return b.Instructions[idx+1], true
	}
	return nil, false
}

// clonedCFG tracks one callee clone's entry block and every block it
// produced, so rewriteReturn can find the block(s) ending in return.
type clonedCFG struct {
	entry  *ir.Block
	blocks []*ir.Block
}

// cloneCFG deep-copies every block/instruction of src into dst
// (dst == the caller's CFG being spliced into), shifting every
// register reference up by shift. Edges are mirrored 1:1; the
// load-param prologue of src's entry block is dropped (it is consumed
// by bindParams instead of being copied).
func cloneCFG(dst *ir.CFG, src *ir.CFG, shift ir.Reg) clonedCFG {
	blockOf := make(map[*ir.Block]*ir.Block, len(src.Blocks))
	for _, b := range src.Blocks {
		blockOf[b] = dst.AddBlock()
	}
	for _, b := range src.Blocks {
		nb := blockOf[b]
		start := 0
		if b == src.EntryBlock {
			for start < len(b.Instructions) && b.Instructions[start].Op.IsLoadParam() {
				start++
			}
		}
		for _, insn := range b.Instructions[start:] {
			nb.Append(cloneInstruction(insn, shift))
		}
		nb.InTry = b.InTry
	}
	for _, b := range src.Blocks {
		from := blockOf[b]
		for _, e := range b.Succs {
			dst.AddEdge(from, blockOf[e.To], e.Kind, e.CatchType)
		}
	}

	out := clonedCFG{entry: blockOf[src.EntryBlock]}
	for _, b := range src.Blocks {
		out.blocks = append(out.blocks, blockOf[b])
	}
	return out
}

func cloneInstruction(insn *ir.Instruction, shift ir.Reg) *ir.Instruction {
	out := &ir.Instruction{Op: insn.Op, Dest: shiftReg(insn.Dest, shift), DestWide: insn.DestWide, Operand: insn.Operand}
	if len(insn.Srcs) > 0 {
		out.Srcs = make([]ir.Reg, len(insn.Srcs))
		for i, r := range insn.Srcs {
			out.Srcs[i] = shiftReg(r, shift)
		}
	}
	return out
}

func shiftReg(r, shift ir.Reg) ir.Reg {
	if r == ir.NoReg {
		return ir.NoReg
	}
	return r + shift
}

// bindParams inserts, at the end of site (the block now leading into
// the callee's clone), one move per callee formal binding the
// callsite's argument registers to the clone's (shifted) parameter
// registers.
func bindParams(site *ir.Block, params []*ir.Instruction, args []ir.Reg, shift ir.Reg) {
	for i, p := range params {
		if i >= len(args) {
			break
		}
		site.Append(&ir.Instruction{
			Op:       moveOpFor(p),
			Dest:     shiftReg(p.Dest, shift),
			DestWide: p.Op == ir.OpLoadParamWide,
			Srcs:     []ir.Reg{args[i]},
		})
	}
}

func moveOpFor(loadParam *ir.Instruction) ir.Opcode {
	switch loadParam.Op {
	case ir.OpLoadParamWide:
		return ir.OpMoveWide
	case ir.OpLoadParamObject:
		return ir.OpMoveObject
	default:
		return ir.OpMove
	}
}

// rewriteReturn finds the clone's single return-terminated block,
// replaces its return with a move of its return value into
// resultDest (if the callsite consumed one), and links it to
// continuation (spec.md §4.6 steps 4 and 7).
func rewriteReturn(cfg *ir.CFG, clone clonedCFG, continuation *ir.Block, resultDest ir.Reg, resultWide bool) {
	for _, b := range clone.blocks {
		last := b.Last()
		if last == nil || !last.Op.IsReturn() {
			continue
		}
		b.Instructions = b.Instructions[:len(b.Instructions)-1]
		if resultDest != ir.NoReg && last.Op != ir.OpReturnVoid {
			b.Append(&ir.Instruction{
				Op:       returnMoveOp(last.Op, resultWide),
				Dest:     resultDest,
				DestWide: resultWide,
				Srcs:     []ir.Reg{last.Srcs[0]},
			})
		}
		cfg.AddEdge(b, continuation, ir.EdgeFallthrough, "")
		return
	}
}

func returnMoveOp(ret ir.Opcode, wide bool) ir.Opcode {
	switch {
	case wide || ret == ir.OpReturnWide:
		return ir.OpMoveWide
	case ret == ir.OpReturnObject:
		return ir.OpMoveObject
	default:
		return ir.OpMove
	}
}
