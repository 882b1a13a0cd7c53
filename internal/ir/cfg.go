package ir

// CFG is a method's control-flow graph: a set of Blocks reachable from
// Entry. It implements graph.Interface[*CFG, *Block, *BlockEdge]
// directly, so internal/wto, internal/fixpoint, and internal/cse can
// traverse a method body without an adapter layer.
type CFG struct {
	EntryBlock *Block
	Blocks     []*Block
}

// NewCFG returns an empty CFG; blocks are added via AddBlock.
func NewCFG() *CFG {
	return &CFG{}
}

// AddBlock appends a freshly-allocated block to the CFG and returns it.
func (c *CFG) AddBlock() *Block {
	b := &Block{ID: len(c.Blocks)}
	c.Blocks = append(c.Blocks, b)
	return b
}

// AddEdge records a typed edge from -> to, updating both endpoints'
// adjacency lists.
func (c *CFG) AddEdge(from, to *Block, kind EdgeKind, catchType Type) *BlockEdge {
	e := &BlockEdge{From: from, To: to, Kind: kind, CatchType: catchType}
	from.Succs = append(from.Succs, e)
	to.Preds = append(to.Preds, e)
	return e
}

// Entry, Successors, Predecessors, Source and Target satisfy
// graph.Interface[*CFG, *Block, *BlockEdge].

func (c *CFG) Entry(_ *CFG) *Block { return c.EntryBlock }

func (c *CFG) Successors(_ *CFG, n *Block) []*BlockEdge { return n.Succs }

func (c *CFG) Predecessors(_ *CFG, n *Block) []*BlockEdge { return n.Preds }

func (c *CFG) Source(_ *CFG, e *BlockEdge) *Block { return e.From }

func (c *CFG) Target(_ *CFG, e *BlockEdge) *Block { return e.To }

// SplitBlock splits b at index, moving b.Instructions[index:] (and all
// of b's outgoing edges) into a freshly-allocated block. b keeps
// Instructions[:index] and gets a single new fallthrough edge to the
// new block. Used by the inliner's splicer (spec.md §4.6 step 3) to
// carve a callsite out of its surrounding block. Returns the new block
// and the fallthrough edge joining them.
func (c *CFG) SplitBlock(b *Block, index int) (after *Block, edge *BlockEdge) {
	after = c.AddBlock()
	after.Instructions = append([]*Instruction(nil), b.Instructions[index:]...)
	after.renumber()
	after.Succs = b.Succs
	for _, e := range after.Succs {
		e.From = after
	}
	after.InTry = b.InTry
	after.CatchHandlers = b.CatchHandlers

	b.Instructions = b.Instructions[:index]
	b.Succs = nil
	edge = c.AddEdge(b, after, EdgeFallthrough, "")
	return after, edge
}

// RemoveEdge detaches e from both its endpoints' adjacency lists.
func (c *CFG) RemoveEdge(e *BlockEdge) {
	e.From.Succs = filterEdge(e.From.Succs, e)
	e.To.Preds = filterEdge(e.To.Preds, e)
}

func filterEdge(list []*BlockEdge, target *BlockEdge) []*BlockEdge {
	out := list[:0]
	for _, e := range list {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}

// RemoveBlock detaches b from every edge that touches it and drops it
// from the CFG's block list. Used to erase the original invoke/
// move-result carrier block once its contents have been spliced
// elsewhere (spec.md §4.6 step 6).
func (c *CFG) RemoveBlock(b *Block) {
	for _, e := range append([]*BlockEdge(nil), b.Preds...) {
		c.RemoveEdge(e)
	}
	for _, e := range append([]*BlockEdge(nil), b.Succs...) {
		c.RemoveEdge(e)
	}
	out := c.Blocks[:0]
	for _, x := range c.Blocks {
		if x != b {
			out = append(out, x)
		}
	}
	c.Blocks = out
}
