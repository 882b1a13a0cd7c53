package ir

// Code is a method body: always CFG-backed internally (the
// "editable CFG" mode of spec.md §4.6 step 1 is the only splicer this
// implementation provides; the linear-instruction-list mode named in
// the config schema is accepted but treated as an alias for "use the
// CFG splicer", noted in DESIGN.md). RegisterSize is one past the
// highest register number currently live; AllocateTemp/
// AllocateWideTemp hand out fresh register numbers above it.
type Code struct {
	cfg          *CFG
	registerSize int
}

// NewCode wraps cfg as a method body. registerSize is the caller's
// register count before any inlining-time allocation.
func NewCode(cfg *CFG, registerSize int) *Code {
	return &Code{cfg: cfg, registerSize: registerSize}
}

// CFG returns the method's control-flow graph. Building it lazily from
// a linear list is out of scope here (every Code is constructed
// CFG-first, by internal/asmtext or by the inliner's splicer), so this
// never returns nil for a well-formed Code.
func (c *Code) CFG() *CFG { return c.cfg }

// ClearCFG is the collaborator hook named in spec.md §6
// ("code.cfg() ... disposed via clear_cfg"). It is a no-op here: there
// is no separate linear representation to fall back to, since this
// implementation is CFG-only.
func (c *Code) ClearCFG() {}

// Instructions returns every instruction across every block, in block
// order then in-block order, for collaborators (like the cost model)
// that want a flat linear view.
func (c *Code) Instructions() []*Instruction {
	var out []*Instruction
	for _, b := range c.cfg.Blocks {
		out = append(out, b.Instructions...)
	}
	return out
}

// RegisterSize returns the number of registers currently in use.
func (c *Code) RegisterSize() int { return c.registerSize }

// AllocateTemp reserves and returns a fresh single-width register.
func (c *Code) AllocateTemp() Reg {
	r := Reg(c.registerSize)
	c.registerSize++
	return r
}

// AllocateWideTemp reserves and returns the low register of a fresh
// register pair.
func (c *Code) AllocateWideTemp() Reg {
	r := Reg(c.registerSize)
	c.registerSize += 2
	return r
}

// ReserveRange reserves n contiguous fresh registers and returns the
// first, bumping RegisterSize by n. Used by the inliner (spec.md §4.6
// step 2) to shift a callee's whole register range above the caller's.
func (c *Code) ReserveRange(n int) Reg {
	r := Reg(c.registerSize)
	c.registerSize += n
	return r
}

// Params returns the method's leading load-param instructions (its
// formal parameters, including an implicit receiver for instance
// methods), in declaration order. Mirrors Redex's
// IRCode::get_param_instructions.
func (c *Code) Params() []*Instruction {
	var out []*Instruction
	for _, insn := range c.cfg.EntryBlock.Instructions {
		if !insn.Op.IsLoadParam() {
			break
		}
		out = append(out, insn)
	}
	return out
}
