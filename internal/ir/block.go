package ir

// EdgeKind classifies a CFG edge, per spec.md §3.4's "typed edges:
// fallthrough, branch, switch, exception".
type EdgeKind int

const (
	EdgeFallthrough EdgeKind = iota
	EdgeBranch
	EdgeSwitch
	EdgeException
)

// BlockEdge is one typed edge between two blocks of the same CFG.
// CatchType is only meaningful when Kind == EdgeException.
type BlockEdge struct {
	From, To  *Block
	Kind      EdgeKind
	CatchType Type
}

// Block is a maximal straight-line sequence of instructions (spec.md
// §3.4). ID is a stable, CFG-local, zero-based index assigned at
// construction.
type Block struct {
	ID           int
	Instructions []*Instruction
	Succs        []*BlockEdge
	Preds        []*BlockEdge

	// InTry/CatchHandlers describe the try/catch region this block
	// belongs to, needed by the inliner's try-range flattening (§4.6
	// step 3): InTry is true for blocks whose instructions may throw
	// into CatchHandlers.
	InTry         bool
	CatchHandlers []*Block
}

// Append adds insn to the end of the block, assigning it a block-local
// sequence number.
func (b *Block) Append(insn *Instruction) {
	insn.seq = len(b.Instructions)
	b.Instructions = append(b.Instructions, insn)
}

// Last returns the block's final instruction, or nil if empty.
func (b *Block) Last() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	return b.Instructions[len(b.Instructions)-1]
}

// InsertAfter splices insn into the block immediately following after,
// renumbering every instruction's sequence number to match its new
// position. Used by internal/cse's forwarding rewrite, which adds
// instructions without disturbing control flow. A no-op if after is not
// in this block.
func (b *Block) InsertAfter(after, insn *Instruction) {
	for i, x := range b.Instructions {
		if x == after {
			b.Instructions = append(b.Instructions[:i+1], append([]*Instruction{insn}, b.Instructions[i+1:]...)...)
			b.renumber()
			return
		}
	}
}

func (b *Block) renumber() {
	for i, insn := range b.Instructions {
		insn.seq = i
	}
}
