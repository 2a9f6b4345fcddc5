package almanac

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer rules are tried in order, so the keyword-shaped tokens must precede
// Word. EOL is kept as a token because a rule ends at its line break.
var almanacLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Seeds", Pattern: `seeds:`},
	{Name: "Header", Pattern: `[A-Za-z0-9_]+-to-[A-Za-z0-9_]+[ \t]+map:`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Word", Pattern: `[^\s]+`},
})

type fileNode struct {
	Pos lexer.Position

	Seeds *seedsNode `EOL* @@`
	Maps  []*mapNode `@@*`
}

type seedsNode struct {
	Pos lexer.Position

	Values []string `Seeds @Word* EOL*`
}

type mapNode struct {
	Pos lexer.Position

	Header string      `@Header EOL*`
	Rules  []*ruleNode `@@*`
}

type ruleNode struct {
	Pos lexer.Position

	Fields []string `@Word+ EOL*`
}

var parser = participle.MustBuild[fileNode](
	participle.Lexer(almanacLexer),
	participle.Elide("Whitespace"),
)
