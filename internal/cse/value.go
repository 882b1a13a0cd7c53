// Package cse implements the CSE engine (spec.md §4.7, component C8): a
// per-method, forward monotonic fixpoint over a method's CFG — built
// on internal/fixpoint, which orders the blocks with internal/wto — that
// value-numbers every instruction's result modulo barriers and rewrites
// redundant recomputations into register copies.
package cse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/facebook/redex-core/internal/ir"
)

// ValueID is a stable identifier for one value-numbering class, minted
// by a Table. Distinct instructions that compute "the same" value
// (same opcode, sources, and payload, sources sorted first for
// commutative opcodes) share a ValueID; positional and pre-state
// values never share one with anything else.
type ValueID int64

// PayloadKind tags which field of Payload is meaningful, mirroring
// spec.md §3.5's "payload is one of {literal, string, type, field,
// method, data, positional_instruction_pointer, pre_state_source}".
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadLiteral
	PayloadString
	PayloadType
	PayloadField
	PayloadMethod
	PayloadData
	PayloadPositional
	PayloadPreState
)

// Payload is the non-register-source component of a Value.
type Payload struct {
	Kind PayloadKind

	Literal int64
	Str     string
	Type    ir.Type
	Field   ir.FieldRef
	Method  ir.MethodRef
	Data    string

	// Positional pins a PayloadPositional value to the instruction that
	// produced it, so two equivalent-looking non-reorderable operations
	// (new-instance, invokes, ...) never merge.
	Positional *ir.Instruction

	// PreStateReg/PreStateInsn identify a manufactured "value held in
	// register r on entry to instruction i" value (spec.md §4.7).
	PreStateReg  ir.Reg
	PreStateInsn *ir.Instruction
}

// Value is the (opcode, sources, payload) tuple of spec.md §3.5/§4.7.
type Value struct {
	Op      ir.Opcode
	Sources []ValueID
	Payload Payload
}

// key returns a string uniquely identifying v's equivalence class.
// Positional and pre-state payloads are never deduplicated by key (the
// caller must not consult the intern table for them), so their key is
// only used for debugging/logging, never for lookup.
func (v Value) key() string {
	var b strings.Builder
	b.WriteString(string(v.Op))
	for _, s := range v.Sources {
		fmt.Fprintf(&b, ",%d", s)
	}
	b.WriteByte('|')
	switch v.Payload.Kind {
	case PayloadLiteral:
		fmt.Fprintf(&b, "lit:%d", v.Payload.Literal)
	case PayloadString:
		fmt.Fprintf(&b, "str:%s", v.Payload.Str)
	case PayloadType:
		fmt.Fprintf(&b, "type:%s", v.Payload.Type)
	case PayloadField:
		fmt.Fprintf(&b, "field:%s.%s:%s", v.Payload.Field.Class, v.Payload.Field.Name, v.Payload.Field.FType)
	case PayloadMethod:
		fmt.Fprintf(&b, "method:%s.%s", v.Payload.Method.Class, v.Payload.Method.Name)
	case PayloadData:
		fmt.Fprintf(&b, "data:%s", v.Payload.Data)
	}
	return b.String()
}

// entry is a Table's bookkeeping for one minted ValueID.
type entry struct {
	value            Value
	barrierSensitive bool
	preState         bool
}

// preStateKey identifies a manufactured pre-state value: "the value
// held in register r on entry to instruction i".
type preStateKey struct {
	reg  ir.Reg
	insn *ir.Instruction
}

// Table interns Values into ValueIDs for a single method analysis.
// Non-positional, non-pre-state values are deduplicated by their
// (opcode, sources, payload) key; positional values are deduplicated
// by the producing instruction's identity (spec.md §4.7: "pins it to
// this instruction"), and pre-state values by (register, instruction)
// — in both cases re-analyzing the same instruction during fixpoint
// iteration must yield the same id every time, per the invariant that
// "once assigned, a value-id is stable for the lifetime of an
// analysis run".
type Table struct {
	byKey        map[string]ValueID
	byPositional map[*ir.Instruction]ValueID
	byPreState   map[preStateKey]ValueID
	entries      []entry
}

// NewTable returns an empty intern table, to be used for exactly one
// method's analysis.
func NewTable() *Table {
	return &Table{
		byKey:        make(map[string]ValueID),
		byPositional: make(map[*ir.Instruction]ValueID),
		byPreState:   make(map[preStateKey]ValueID),
	}
}

// Intern returns the ValueID for v, minting a fresh one if needed.
// barrierSensitive marks whether this value depends on a heap read
// (spec.md §4.7's "flagged barrier-sensitive").
func (t *Table) Intern(v Value, barrierSensitive bool) ValueID {
	switch v.Payload.Kind {
	case PayloadPositional:
		if id, ok := t.byPositional[v.Payload.Positional]; ok {
			return id
		}
		id := t.mint(entry{value: v, barrierSensitive: barrierSensitive})
		t.byPositional[v.Payload.Positional] = id
		return id
	case PayloadPreState:
		key := preStateKey{reg: v.Payload.PreStateReg, insn: v.Payload.PreStateInsn}
		if id, ok := t.byPreState[key]; ok {
			return id
		}
		id := t.mint(entry{value: v, barrierSensitive: barrierSensitive, preState: true})
		t.byPreState[key] = id
		return id
	default:
		k := v.key()
		if id, ok := t.byKey[k]; ok {
			return id
		}
		id := t.mint(entry{value: v, barrierSensitive: barrierSensitive})
		t.byKey[k] = id
		return id
	}
}

func (t *Table) mint(e entry) ValueID {
	id := ValueID(len(t.entries))
	t.entries = append(t.entries, e)
	return id
}

// BarrierSensitive reports whether id depends on a heap read.
func (t *Table) BarrierSensitive(id ValueID) bool { return t.entries[id].barrierSensitive }

// PreState reports whether id is a manufactured pre-state value.
func (t *Table) PreState(id ValueID) bool { return t.entries[id].preState }

// Value returns the Value behind id, for logging/debugging.
func (t *Table) Value(id ValueID) Value { return t.entries[id].value }

// sortIfCommutative returns a sorted copy of srcs when op is commutative
// (srcs itself is left as it was), and srcs unchanged otherwise, per
// spec.md §4.7's "on a commutative opcode, sort the source list".
func sortIfCommutative(op ir.Opcode, srcs []ValueID) []ValueID {
	if !op.IsCommutative() {
		return srcs
	}
	out := append([]ValueID(nil), srcs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
