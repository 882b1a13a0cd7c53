// Package asmtext is a tiny participle-based assembler for the
// pseudo-assembly notation spec.md §8 uses in its end-to-end scenarios
// (`const v0, 0` / `iget-object v1, v2, Foo.field`). It builds
// ir.Method/ir.CFG fixtures from that notation, standing in for the
// out-of-scope DEX reader: internal/cse and internal/inliner's tests
// use it instead of hand-assembling *ir.Instruction values field by
// field.
package asmtext

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes an instruction listing. Rule order matters: Reg and
// Int must be tried before Word so that "v2" and "0" aren't swallowed
// by the looser Word rule.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"Reg", `v[0-9]+`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"String", `"[^"]*"`, nil},
		// Word covers opcodes ("invoke-virtual"), labels ("L0"), type
		// descriptors ("Lcom/foo/Bar;"), field refs ("Foo.field"), and
		// method refs ("Foo.mutate()V") — the toy notation never needs
		// to distinguish these lexically, only by position in the
		// grammar and by the builder's shape-based dispatch.
		{"Word", `[A-Za-z_$][A-Za-z0-9_$./\[\];()-]*`, nil},
		{"Punct", `[(),:{}]`, nil},
	},
})
