// Package levelsource parses the human-authored level text format into a
// Source tree. It knows nothing about the binary layout.
package levelsource

import "strings"

// Palette lists every tile character a layer row may contain.
const Palette = ".#^~=v<>"

// IsPaletteChar reports whether r is a valid tile character.
func IsPaletteChar(r rune) bool {
	return strings.ContainsRune(Palette, r)
}

// Section keywords.
const (
	SectionHeader   = "header"
	SectionLayers   = "layers"
	SectionEntities = "entities"
	SectionTriggers = "triggers"
)

// Entity block keywords.
const (
	BlockPlayerStart = "player_start"
	BlockEnemy       = "enemy"
	BlockPlatform    = "platform"
)

// Trigger block keywords.
const (
	BlockLevelExit = "level_exit"
	BlockMessage   = "message"
	BlockPickup    = "pickup"
)

// ValueKind is a bit set so key schemas can accept more than one kind.
type ValueKind uint8

const (
	KindNumber ValueKind = 1 << iota
	KindBool
	KindString
	KindIdent
	KindList

	// KindName accepts a quoted string or a bare identifier.
	KindName = KindString | KindIdent
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindIdent:
		return "identifier"
	case KindList:
		return "list"
	case KindName:
		return "name"
	default:
		return "value"
	}
}

// Value is one right-hand side of a key = value assignment.
type Value struct {
	Kind   ValueKind
	Text   string // literal number text, string contents or identifier
	Number float64
	Bool   bool
	List   []string
	Line   int
}

// Fields maps keys to their assigned values within one block.
type Fields map[string]Value

// Number returns the numeric value of key.
func (f Fields) Number(key string) (float64, bool) {
	v, ok := f[key]
	if !ok || v.Kind != KindNumber {
		return 0, false
	}
	return v.Number, true
}

// Name returns the string or identifier value of key.
func (f Fields) Name(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v.Kind&KindName == 0 {
		return "", false
	}
	return v.Text, true
}

// Line returns the line key was assigned on, or fallback when absent.
func (f Fields) Line(key string, fallback int) int {
	if v, ok := f[key]; ok && v.Line > 0 {
		return v.Line
	}
	return fallback
}

// Source is a parsed level description.
type Source struct {
	Header   Header
	Layers   []Layer
	Entities []Entity
	Triggers []Trigger
}

type Header struct {
	Line   int
	Fields Fields
}

type Layer struct {
	Line      int
	Collision bool
	Rows      []Row
}

// Row is one quoted tile row.
type Row struct {
	Line int
	Text string
}

// Entity is a player_start, enemy or platform block. Kind holds the word
// after enemy/platform and is empty for player_start.
type Entity struct {
	Line   int
	Block  string
	Kind   string
	Fields Fields
}

// Trigger is a level_exit, message or pickup block.
type Trigger struct {
	Line   int
	Block  string
	Fields Fields
}
