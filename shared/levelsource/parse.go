package levelsource

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"
)

// CodeParse is the oops code carried by every error Parse returns.
const CodeParse = "PARSE_ERROR"

// ParseError is a malformed-source error with its 1-based line, the
// offending source line and a message.
type ParseError struct {
	Line    int
	Column  int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
}

// keySet maps each allowed key of a block to the value kinds it accepts.
type keySet map[string]ValueKind

var headerKeys = keySet{
	"width":         KindNumber,
	"height":        KindNumber,
	"tile_width":    KindNumber,
	"tile_height":   KindNumber,
	"gravity":       KindNumber,
	"gravity_scale": KindNumber,
	"background":    KindName,
}

var requiredHeaderKeys = []string{"width", "height", "tile_width", "tile_height"}

var layerKeys = keySet{
	"collision": KindBool,
	"tiles":     KindList,
}

var entityKeys = map[string]keySet{
	BlockPlayerStart: {
		"top": KindNumber, "left": KindNumber, "hit_points": KindNumber,
		"gravity_multiplier": KindNumber, "jump_multiplier": KindNumber,
		"speed": KindNumber, "width": KindNumber, "height": KindNumber,
		"health_regen_rate": KindNumber, "invulnerability_time": KindNumber,
		"render_style": KindNumber,
	},
	BlockEnemy: {
		"top": KindNumber, "left": KindNumber, "range_min": KindNumber, "range_max": KindNumber,
		"speed": KindNumber, "gravity_multiplier": KindNumber, "jump_multiplier": KindNumber,
		"attack_power": KindNumber, "hit_points": KindNumber, "width": KindNumber,
		"height": KindNumber, "strength": KindNumber, "luck": KindNumber,
		"health_regen_rate": KindNumber, "invulnerability_time": KindNumber,
		"render_style": KindNumber,
	},
	BlockPlatform: {
		"top": KindNumber, "left": KindNumber, "range_min": KindNumber, "range_max": KindNumber,
		"speed": KindNumber, "size": KindNumber, "render_style": KindNumber,
	},
}

var triggerKeys = map[string]keySet{
	BlockLevelExit: withTriggerCommon(keySet{"target": KindName, "level": KindNumber}),
	BlockMessage:   withTriggerCommon(keySet{"text_id": KindName}),
	BlockPickup:    withTriggerCommon(keySet{"pickup": KindName, "amount": KindNumber}),
}

func withTriggerCommon(ks keySet) keySet {
	for k, v := range (keySet{
		"top": KindNumber, "left": KindNumber, "width": KindNumber, "height": KindNumber,
		"mode": KindName, "icon_id": KindNumber,
	}) {
		ks[k] = v
	}
	return ks
}

// parser carries the source lines so errors can quote them.
type parser struct {
	lines []string
	src   *Source
	seen  map[string]int
}

// Parse parses level source text. Every failure is a *ParseError wrapped
// with code PARSE_ERROR; use errors.As to recover it.
func Parse(text string) (*Source, error) {
	p := &parser{
		lines: strings.Split(text, "\n"),
		src:   &Source{},
		seen:  map[string]int{},
	}

	doc, err := sourceParser.ParseString("", text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, p.wrap(&ParseError{Line: pos.Line, Column: pos.Column, Text: p.line(pos.Line), Message: perr.Message()})
		}
		return nil, p.wrap(&ParseError{Line: 1, Message: err.Error()})
	}

	for _, b := range doc.Blocks {
		if err := p.section(b); err != nil {
			return nil, p.wrap(err)
		}
	}
	if err := p.checkHeader(); err != nil {
		return nil, p.wrap(err)
	}
	if err := p.checkGrid(); err != nil {
		return nil, p.wrap(err)
	}
	return p.src, nil
}

func (p *parser) wrap(pe *ParseError) error {
	return oops.Code(CodeParse).In("levelsource").With("line", pe.Line).Wrap(pe)
}

func (p *parser) line(n int) string {
	if n < 1 || n > len(p.lines) {
		return ""
	}
	return strings.TrimSpace(p.lines[n-1])
}

func (p *parser) errorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Text: p.line(line), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) section(b *block) *ParseError {
	line := b.Pos.Line
	switch b.Name {
	case SectionHeader, SectionLayers, SectionEntities, SectionTriggers:
	default:
		return p.errorf(line, "unknown section %q", b.Name)
	}
	if b.Kind != "" {
		return p.errorf(line, "section %s takes no kind, got %q", b.Name, b.Kind)
	}
	if prev, dup := p.seen[b.Name]; dup {
		return p.errorf(line, "duplicate %s section (first on line %d)", b.Name, prev)
	}
	p.seen[b.Name] = line

	switch b.Name {
	case SectionHeader:
		fields, err := p.fields(b, headerKeys)
		if err != nil {
			return err
		}
		p.src.Header = Header{Line: line, Fields: fields}
	case SectionLayers:
		return p.children(b, func(c *block) *ParseError { return p.layer(c) })
	case SectionEntities:
		return p.children(b, func(c *block) *ParseError { return p.entity(c) })
	case SectionTriggers:
		return p.children(b, func(c *block) *ParseError { return p.trigger(c) })
	}
	return nil
}

// children applies fn to every nested block of a section body; plain
// assignments are not allowed there.
func (p *parser) children(b *block, fn func(*block) *ParseError) *ParseError {
	for _, it := range b.Items {
		if it.Assign != nil {
			return p.errorf(it.Pos.Line, "unexpected assignment to %q in %s section", it.Assign.Key, b.Name)
		}
		if err := fn(it.Block); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) layer(b *block) *ParseError {
	if b.Name != "layer" || b.Kind != "" {
		return p.errorf(b.Pos.Line, "unknown block %q in layers section", strings.TrimSpace(b.Name+" "+b.Kind))
	}
	fields, err := p.fields(b, layerKeys)
	if err != nil {
		return err
	}
	if _, ok := fields["tiles"]; !ok {
		return p.errorf(b.Pos.Line, "layer is missing tiles")
	}
	layer := Layer{Line: b.Pos.Line, Collision: fields["collision"].Bool}
	for _, it := range p.listItems(b) {
		layer.Rows = append(layer.Rows, Row{Line: it.Pos.Line, Text: it.Text})
	}
	p.src.Layers = append(p.src.Layers, layer)
	return nil
}

// listItems returns the positioned row tokens of the tiles assignment.
func (p *parser) listItems(b *block) []*listItem {
	for _, it := range b.Items {
		if it.Assign != nil && it.Assign.Key == "tiles" && it.Assign.Value.List != nil {
			return it.Assign.Value.List.Items
		}
	}
	return nil
}

func (p *parser) entity(b *block) *ParseError {
	keys, ok := entityKeys[b.Name]
	if !ok {
		return p.errorf(b.Pos.Line, "unknown entity %q", b.Name)
	}
	switch {
	case b.Name == BlockPlayerStart && b.Kind != "":
		return p.errorf(b.Pos.Line, "player_start takes no kind, got %q", b.Kind)
	case b.Name != BlockPlayerStart && b.Kind == "":
		return p.errorf(b.Pos.Line, "%s needs a kind, e.g. %s <kind> { ... }", b.Name, b.Name)
	}
	fields, err := p.fields(b, keys)
	if err != nil {
		return err
	}
	p.src.Entities = append(p.src.Entities, Entity{Line: b.Pos.Line, Block: b.Name, Kind: b.Kind, Fields: fields})
	return nil
}

func (p *parser) trigger(b *block) *ParseError {
	keys, ok := triggerKeys[b.Name]
	if !ok {
		return p.errorf(b.Pos.Line, "unknown trigger %q", b.Name)
	}
	if b.Kind != "" {
		return p.errorf(b.Pos.Line, "%s takes no kind, got %q", b.Name, b.Kind)
	}
	fields, err := p.fields(b, keys)
	if err != nil {
		return err
	}
	p.src.Triggers = append(p.src.Triggers, Trigger{Line: b.Pos.Line, Block: b.Name, Fields: fields})
	return nil
}

// fields collects the assignments of a leaf block, checking every key and
// value kind against keys.
func (p *parser) fields(b *block, keys keySet) (Fields, *ParseError) {
	label := strings.TrimSpace(b.Name + " " + b.Kind)
	out := Fields{}
	for _, it := range b.Items {
		if it.Block != nil {
			return nil, p.errorf(it.Pos.Line, "unexpected block %q in %s", it.Block.Name, label)
		}
		a := it.Assign
		line := a.Pos.Line
		want, ok := keys[a.Key]
		if !ok {
			return nil, p.errorf(line, "unknown key %q for %s", a.Key, label)
		}
		if prev, dup := out[a.Key]; dup {
			return nil, p.errorf(line, "duplicate key %q (first on line %d)", a.Key, prev.Line)
		}
		v, err := p.value(a.Value, line)
		if err != nil {
			return nil, err
		}
		if v.Kind&want == 0 {
			return nil, p.errorf(line, "%s must be a %s, got %s", a.Key, want, v.Kind)
		}
		out[a.Key] = v
	}
	return out, nil
}

func (p *parser) value(l *literal, line int) (Value, *ParseError) {
	switch {
	case l.Number != nil:
		n, err := strconv.ParseFloat(*l.Number, 64)
		if err != nil || math.IsInf(n, 0) {
			return Value{}, p.errorf(line, "bad number %q", *l.Number)
		}
		return Value{Kind: KindNumber, Text: *l.Number, Number: n, Line: line}, nil
	case l.Bool != nil:
		return Value{Kind: KindBool, Text: strconv.FormatBool(bool(*l.Bool)), Bool: bool(*l.Bool), Line: line}, nil
	case l.String != nil:
		return Value{Kind: KindString, Text: *l.String, Line: line}, nil
	case l.Ident != nil:
		return Value{Kind: KindIdent, Text: *l.Ident, Line: line}, nil
	case l.List != nil:
		v := Value{Kind: KindList, List: []string{}, Line: line}
		for _, it := range l.List.Items {
			v.List = append(v.List, it.Text)
		}
		return v, nil
	}
	return Value{}, p.errorf(line, "missing value")
}

func (p *parser) checkHeader() *ParseError {
	if _, ok := p.seen[SectionHeader]; !ok {
		return p.errorf(1, "missing header section")
	}
	for _, key := range requiredHeaderKeys {
		if _, ok := p.src.Header.Fields[key]; !ok {
			return p.errorf(p.src.Header.Line, "header is missing required key %q", key)
		}
	}
	return nil
}

// checkGrid validates row counts, row lengths and the palette of every
// layer against the declared width and height. Non-integral or
// non-positive dimensions are left for the compiler to reject.
func (p *parser) checkGrid() *ParseError {
	width, wok := positiveInt(p.src.Header.Fields, "width")
	height, hok := positiveInt(p.src.Header.Fields, "height")

	for li, layer := range p.src.Layers {
		if hok && len(layer.Rows) != height {
			return p.errorf(layer.Line, "layer %d has %d rows, header height is %d", li, len(layer.Rows), height)
		}
		for ri, row := range layer.Rows {
			if n := utf8.RuneCountInString(row.Text); wok && n != width {
				return p.errorf(row.Line, "layer %d row %d has %d columns, header width is %d", li, ri, n, width)
			}
			col := 0
			for _, r := range row.Text {
				if !IsPaletteChar(r) {
					return p.errorf(row.Line, "layer %d row %d column %d: unknown tile %q", li, ri, col, r)
				}
				col++
			}
		}
	}
	return nil
}

func positiveInt(f Fields, key string) (int, bool) {
	v, ok := f.Number(key)
	if !ok || v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
