package levelsource

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// sourceLexer tokenizes level source text. Comments run to end of line.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `//[^\n]*`},
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}\[\]=,]`},
})

// document is the raw syntax tree: nested named blocks of assignments.
//
// Grammar: block* where block = ident [ident] "{" (assignment | block)* "}"
type document struct {
	Pos    lexer.Position `parser:""`
	Blocks []*block       `parser:"@@*"`
}

type block struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"@Ident"`
	Kind  string         `parser:"@Ident?"`
	Items []*item        `parser:"'{' @@* '}'"`
}

type item struct {
	Pos    lexer.Position `parser:""`
	Assign *assignment    `parser:"  @@"`
	Block  *block         `parser:"| @@"`
}

type assignment struct {
	Pos   lexer.Position `parser:""`
	Key   string         `parser:"@Ident '='"`
	Value *literal       `parser:"@@"`
}

type literal struct {
	Pos    lexer.Position `parser:""`
	Number *string        `parser:"  @Number"`
	Bool   *boolean       `parser:"| @('true' | 'false')"`
	String *string        `parser:"| @String"`
	Ident  *string        `parser:"| @Ident"`
	List   *stringList    `parser:"| @@"`
}

type stringList struct {
	Pos   lexer.Position `parser:""`
	Open  string         `parser:"@'['"`
	Items []*listItem    `parser:"(@@ (',' @@)* ','?)? ']'"`
}

type listItem struct {
	Pos  lexer.Position `parser:""`
	Text string         `parser:"@String"`
}

type boolean bool

func (b *boolean) Capture(values []string) error {
	*b = boolean(strings.Join(values, "") == "true")
	return nil
}

var sourceParser = participle.MustBuild[document](
	participle.Lexer(sourceLexer),
	participle.Elide("comment", "whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(3),
)
