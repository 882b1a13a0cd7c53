package asmtext

// Program is a full instruction listing: a sequence of label
// definitions and instructions, in textual order.
type Program struct {
	Lines []*Line `@@*`
}

// Line is either a label definition ("L0:") or an instruction.
type Line struct {
	Label *string      `( @Word ":"`
	Insn  *Instruction `| @@ )`
}

// Instruction is one opcode plus either an invoke-shaped argument list
// ("{v1,v2}, Class.method()V") or a plain comma-separated operand list.
type Instruction struct {
	Op       string      `@Word`
	Invoke   *InvokeCall `( @@`
	Operands []*Operand  `| ( @@ ( "," @@ )* )? )`
}

// InvokeCall is the "{regs...}, method-descriptor" shape used by every
// invoke-* opcode.
type InvokeCall struct {
	Args   []string `"{" ( @Reg ( "," @Reg )* )? "}" ","`
	Method string   `@Word`
}

// Operand is one comma-separated argument to a non-invoke instruction:
// a register, an integer literal, a quoted string, or a bare word
// (field ref, type descriptor, or branch-target label, disambiguated
// by the builder).
type Operand struct {
	Reg *string `@Reg`
	Int *int64  `| @Int`
	Str *string `| @String`
	Word *string `| @Word`
}
