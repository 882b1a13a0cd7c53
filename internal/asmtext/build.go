package asmtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/facebook/redex-core/internal/ir"
)

// loweredInsn is one parsed Instruction lowered to an *ir.Instruction,
// plus the branch-target label names it carries (if any) and whether
// it is a terminal (non-fallthrough, no-target) instruction.
type loweredInsn struct {
	insn     *ir.Instruction
	targets  []string
	terminal bool
}

// Build parses source and lowers it into an ir.CFG, splitting into
// blocks at label definitions and after any branch/return/throw
// instruction. registerSize seeds the resulting Code's register
// count (the toy notation has no register-declaration header).
func Build(source string, registerSize int) (*ir.Code, error) {
	prog, err := ParseProgram(source)
	if err != nil {
		return nil, err
	}

	type flatLine struct {
		label string
		insn  *Instruction
	}
	var flat []flatLine
	pending := ""
	for _, ln := range prog.Lines {
		if ln.Label != nil {
			pending = *ln.Label
			continue
		}
		flat = append(flat, flatLine{label: pending, insn: ln.Insn})
		pending = ""
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("asmtext: empty listing")
	}

	lowered := make([]*loweredInsn, len(flat))
	for i, f := range flat {
		lowered[i] = lowerInstruction(f.insn)
	}

	blockStart := make([]bool, len(flat))
	blockStart[0] = true
	for i := 1; i < len(flat); i++ {
		if flat[i].label != "" {
			blockStart[i] = true
		}
		if lowered[i-1].terminal || len(lowered[i-1].targets) > 0 {
			blockStart[i] = true
		}
	}

	cfg := ir.NewCFG()
	blockOf := make([]int, len(flat))
	labelToBlock := make(map[string]int)
	var cur *ir.Block
	for i, f := range flat {
		if blockStart[i] {
			cur = cfg.AddBlock()
		}
		if f.label != "" {
			labelToBlock[f.label] = cur.ID
		}
		blockOf[i] = cur.ID
		cur.Append(lowered[i].insn)
	}
	cfg.EntryBlock = cfg.Blocks[0]

	for i := range flat {
		if i+1 < len(flat) && blockOf[i] == blockOf[i+1] {
			continue // not the last instruction of its block
		}
		l := lowered[i]
		from := cfg.Blocks[blockOf[i]]
		switch {
		case l.terminal && len(l.targets) == 0:
			// return/throw: no outgoing edges.
		case len(l.targets) > 0:
			kind := ir.EdgeBranch
			if l.insn.Op == ir.OpSwitch {
				kind = ir.EdgeSwitch
			}
			for _, target := range l.targets {
				id, ok := labelToBlock[target]
				if !ok {
					return nil, fmt.Errorf("asmtext: undefined branch target %q", target)
				}
				cfg.AddEdge(from, cfg.Blocks[id], kind, "")
			}
			if l.insn.Op.IsConditionalBranch() && i+1 < len(flat) {
				cfg.AddEdge(from, cfg.Blocks[blockOf[i+1]], ir.EdgeFallthrough, "")
			}
		default:
			if i+1 < len(flat) {
				cfg.AddEdge(from, cfg.Blocks[blockOf[i+1]], ir.EdgeFallthrough, "")
			}
		}
	}

	return ir.NewCode(cfg, registerSize), nil
}

func lowerInstruction(in *Instruction) *loweredInsn {
	op := ir.Opcode(in.Op)
	insn := &ir.Instruction{Op: op, Dest: ir.NoReg}
	res := &loweredInsn{insn: insn}

	if in.Invoke != nil {
		regs := make([]ir.Reg, len(in.Invoke.Args))
		for i, a := range in.Invoke.Args {
			regs[i] = parseReg(a)
		}
		insn.Srcs = regs
		if op.IsInvoke() {
			insn.Operand = parseMethodOperand(in.Invoke.Method)
		} else {
			insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(in.Invoke.Method)}
		}
		return res
	}

	var regs []ir.Reg
	var words []string
	var lit *int64
	var str *string
	for _, o := range in.Operands {
		switch {
		case o.Reg != nil:
			regs = append(regs, parseReg(*o.Reg))
		case o.Int != nil:
			v := *o.Int
			lit = &v
		case o.Str != nil:
			v := *o.Str
			str = &v
		case o.Word != nil:
			words = append(words, *o.Word)
		}
	}
	reg := func(i int) ir.Reg {
		if i < len(regs) {
			return regs[i]
		}
		return ir.NoReg
	}
	word := func(i int) string {
		if i < len(words) {
			return words[i]
		}
		return ""
	}

	switch {
	case op == ir.OpGoto:
		res.targets = words
	case op.IsConditionalBranch():
		insn.Srcs = regs
		res.targets = words
	case op == ir.OpSwitch:
		insn.Srcs = []ir.Reg{reg(0)}
		res.targets = words
	case op.IsReturn():
		if op != ir.OpReturnVoid {
			insn.Srcs = []ir.Reg{reg(0)}
		}
		res.terminal = true
	case op == ir.OpThrow:
		insn.Srcs = []ir.Reg{reg(0)}
		res.terminal = true
	case op.IsMove():
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1)}
	case op == ir.OpMoveResult:
		insn.Dest = reg(0)
	case op == ir.OpMoveException:
		insn.Dest = reg(0)
		if word(0) != "" {
			insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
		}
	case op == ir.OpConst || op == ir.OpConstWide:
		insn.Dest = reg(0)
		insn.DestWide = op == ir.OpConstWide
		if lit != nil {
			insn.Operand = ir.Operand{Kind: ir.OperandLiteral, Literal: *lit}
		}
	case op == ir.OpConstString:
		insn.Dest = reg(0)
		if str != nil {
			insn.Operand = ir.Operand{Kind: ir.OperandString, Str: *str}
		}
	case op == ir.OpConstClass:
		insn.Dest = reg(0)
		insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
	case op.IsIget():
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1)}
		insn.Operand = parseFieldOperand(word(0), op)
	case op.IsIput():
		insn.Srcs = []ir.Reg{reg(0), reg(1)}
		insn.Operand = parseFieldOperand(word(0), op)
	case op.IsSget():
		insn.Dest = reg(0)
		insn.Operand = parseFieldOperand(word(0), op)
	case op.IsSput():
		insn.Srcs = []ir.Reg{reg(0)}
		insn.Operand = parseFieldOperand(word(0), op)
	case op.IsAget():
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1), reg(2)}
	case op.IsAput():
		insn.Srcs = []ir.Reg{reg(0), reg(1), reg(2)}
	case op == ir.OpNewInstance:
		insn.Dest = reg(0)
		insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
	case op == ir.OpNewArray:
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1)}
		insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
	case op == ir.OpCheckCast:
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(0)}
		insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
	case op == ir.OpInstanceOf:
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1)}
		insn.Operand = ir.Operand{Kind: ir.OperandType, Type: ir.Type(word(0))}
	case op == ir.OpMonitorEnter || op == ir.OpMonitorExit || op == ir.OpFillArrayData:
		insn.Srcs = []ir.Reg{reg(0)}
	case op == ir.OpAddInt || op == ir.OpMulInt || op == ir.OpAndInt || op == ir.OpOrInt || op == ir.OpXorInt:
		insn.Dest = reg(0)
		insn.Srcs = []ir.Reg{reg(1), reg(2)}
	case op == ir.OpNop:
		// no operands
	default:
		if len(regs) > 0 {
			insn.Dest = regs[0]
			insn.Srcs = regs[1:]
		}
	}
	return res
}

func parseReg(s string) ir.Reg {
	n, _ := strconv.Atoi(strings.TrimPrefix(s, "v"))
	return ir.Reg(n)
}

func splitLast(s string, sep byte) (head, tail string) {
	idx := strings.LastIndexByte(s, sep)
	if idx < 0 {
		return "", s
	}
	return s[:idx], s[idx+1:]
}

func parseFieldOperand(word string, op ir.Opcode) ir.Operand {
	cls, name := splitLast(word, '.')
	ftype := ir.Type("I")
	switch op {
	case ir.OpIgetObject, ir.OpIputObject, ir.OpSgetObject, ir.OpSputObject, ir.OpAgetObject, ir.OpAputObject:
		ftype = "Ljava/lang/Object;"
	case ir.OpIgetWide, ir.OpIputWide:
		ftype = "J"
	}
	return ir.Operand{Kind: ir.OperandField, Field: ir.FieldRef{Class: ir.Type(cls), Name: name, FType: ftype}}
}

func parseMethodOperand(desc string) ir.Operand {
	parenIdx := strings.IndexByte(desc, '(')
	if parenIdx < 0 {
		return ir.Operand{Kind: ir.OperandMethod, Method: ir.MethodRef{Class: ir.Type(desc)}}
	}
	head, rest := desc[:parenIdx], desc[parenIdx:]
	cls, name := splitLast(head, '.')
	closeIdx := strings.IndexByte(rest, ')')
	paramsStr := rest[1:closeIdx]
	retStr := rest[closeIdx+1:]
	var params []ir.Type
	if paramsStr != "" {
		for _, p := range strings.Split(paramsStr, ",") {
			params = append(params, ir.Type(strings.TrimSpace(p)))
		}
	}
	return ir.Operand{Kind: ir.OperandMethod, Method: ir.MethodRef{
		Class: ir.Type(cls),
		Name:  name,
		Proto: ir.Proto{Return: ir.Type(retStr), Params: params},
	}}
}
