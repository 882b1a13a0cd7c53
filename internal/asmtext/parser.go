package asmtext

import (
	"github.com/alecthomas/participle/v2"
)

var listingParser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
	participle.Unquote("String"),
)

// ParseProgram parses a listing into its raw AST, before it is lowered
// into an ir.CFG by Build.
func ParseProgram(source string) (*Program, error) {
	return listingParser.ParseString("", source)
}
