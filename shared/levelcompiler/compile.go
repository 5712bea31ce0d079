// Package levelcompiler turns a parsed level source into the binary record
// layout, enforcing every invariant the runtime loader relies on.
package levelcompiler

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/levelsource"
)

// Values used when an optional key is omitted.
const (
	DefaultGravity      = 0.75
	DefaultGravityScale = 100
	DefaultMultiplier   = 1.0
	DefaultAmount       = 1
	DefaultPlatformSize = 1
)

// CompileText parses and compiles level source text.
func CompileText(text string) (*levelformat.File, error) {
	src, err := levelsource.Parse(text)
	if err != nil {
		return nil, err
	}
	return Compile(src)
}

// CompileBytes parses, compiles and encodes level source text.
func CompileBytes(text string) ([]byte, error) {
	f, err := CompileText(text)
	if err != nil {
		return nil, err
	}
	return levelformat.Encode(f)
}

// Compile validates src and builds the record set the encoder writes.
func Compile(src *levelsource.Source) (*levelformat.File, error) {
	if src == nil {
		return nil, semantic(0, "", "nil level source")
	}
	c := &compiler{src: src}
	if err := c.header(); err != nil {
		return nil, err
	}
	if err := c.layers(); err != nil {
		return nil, err
	}
	if err := c.entities(); err != nil {
		return nil, err
	}
	if err := c.triggers(); err != nil {
		return nil, err
	}
	return &c.out, nil
}

type compiler struct {
	src    *levelsource.Source
	out    levelformat.File
	width  int
	height int
}

func (c *compiler) header() error {
	r := newFieldReader(c.src.Header.Fields, c.src.Header.Line, "header")
	c.out.Header.Width = uint16(r.integer("width", 1, math.MaxUint16, 0, true))
	c.out.Header.Height = uint16(r.integer("height", 1, math.MaxUint16, 0, true))
	c.out.Header.TileWidth = uint16(r.integer("tile_width", 1, math.MaxUint16, 0, true))
	c.out.Header.TileHeight = uint16(r.integer("tile_height", 1, math.MaxUint16, 0, true))
	c.out.Header.Gravity = uint8(r.integer("gravity_scale", 0, math.MaxUint8, DefaultGravityScale, false))
	gravity := r.number("gravity", DefaultGravity)
	bgName, bgLine := r.name("background", "none", false)
	if r.err != nil {
		return r.err
	}

	fixed, ok := levelformat.Q78Encode(gravity)
	if !ok {
		return semantic(c.src.Header.Fields.Line("gravity", c.src.Header.Line), "gravity",
			"%g does not fit Q7.8 fixed point", gravity)
	}
	c.out.Header.GravityFixed = fixed

	bg, ok := Backgrounds[bgName]
	if !ok {
		return semantic(bgLine, "background", "unknown background %q (known: %s)", bgName, strings.Join(names(Backgrounds), ", "))
	}
	c.out.Header.BackgroundID = bg

	c.width = int(c.out.Header.Width)
	c.height = int(c.out.Header.Height)
	return nil
}

func (c *compiler) layers() error {
	n := len(c.src.Layers)
	if n == 0 || n > levelformat.MaxLayers {
		return semantic(c.src.Header.Line, "layers", "level needs 1 to %d layers, got %d", levelformat.MaxLayers, n)
	}

	// Tiles grow row by row; the header alone never sizes an allocation.
	c.out.Layers = make([]levelformat.Layer, 0, n)
	for li, layer := range c.src.Layers {
		if len(layer.Rows) != c.height {
			return semantic(layer.Line, "tiles", "layer %d has %d rows, height is %d", li, len(layer.Rows), c.height)
		}
		for ri, row := range layer.Rows {
			if n := utf8.RuneCountInString(row.Text); n != c.width {
				return semantic(row.Line, "tiles", "layer %d row %d has %d columns, width is %d", li, ri, n, c.width)
			}
			col := 0
			for _, ch := range row.Text {
				kind, ok := TileChars[ch]
				if !ok {
					return semantic(row.Line, "tiles", "layer %d row %d column %d: unknown tile %q", li, ri, col, ch)
				}
				c.out.Tiles = append(c.out.Tiles, byte(kind))
				col++
			}
		}

		var l levelformat.Layer
		if layer.Collision {
			l.Flags |= levelformat.LayerCollision
		}
		c.out.Layers = append(c.out.Layers, l)
	}
	return nil
}

func (c *compiler) entities() error {
	players, playerLine := 0, 0
	for _, e := range c.src.Entities {
		var kind levelformat.EntityKind
		switch e.Block {
		case levelsource.BlockPlayerStart:
			if players > 0 {
				return semantic(e.Line, "player_start", "level has more than one player_start (first on line %d)", playerLine)
			}
			players, playerLine = 1, e.Line
			kind = levelformat.EntityPlayer
		case levelsource.BlockEnemy:
			k, ok := EnemyKinds[e.Kind]
			if !ok {
				return semantic(e.Line, "kind", "unknown enemy kind %q (known: %s)", e.Kind, strings.Join(names(EnemyKinds), ", "))
			}
			kind = k
		case levelsource.BlockPlatform:
			k, ok := PlatformKinds[e.Kind]
			if !ok {
				return semantic(e.Line, "kind", "unknown platform kind %q (known: %s)", e.Kind, strings.Join(names(PlatformKinds), ", "))
			}
			kind = k
		default:
			return semantic(e.Line, "", "unknown entity block %q", e.Block)
		}

		rec, err := c.entity(kind, e)
		if err != nil {
			return err
		}
		c.out.Entities = append(c.out.Entities, rec)
	}
	if players == 0 {
		return semantic(0, "player_start", "level has no player_start")
	}
	if len(c.out.Entities) > levelformat.MaxEntities {
		return semantic(0, "entities", "too many entities: %d", len(c.out.Entities))
	}
	return nil
}

func (c *compiler) entity(kind levelformat.EntityKind, e levelsource.Entity) (levelformat.Entity, error) {
	r := newFieldReader(e.Fields, e.Line, strings.TrimSpace(e.Block+" "+e.Kind))
	rec := levelformat.Entity{
		Kind:                kind,
		RenderStyle:         r.u8("render_style", 0),
		AttackPower:         r.u8("attack_power", 0),
		HitPoints:           r.u16("hit_points", 0),
		Top:                 uint16(r.integer("top", 0, int64(c.height-1), 0, true)),
		Left:                uint16(r.integer("left", 0, int64(c.width-1), 0, true)),
		HealthRegenRate:     r.i16("health_regen_rate", 0),
		InvulnerabilityTime: r.i16("invulnerability_time", 0),
		Width:               r.u8("width", 0),
		Height:              r.u8("height", 0),
		Speed:               r.u8("speed", 0),
		Strength:            r.u8("strength", 0),
		Luck:                r.u8("luck", 0),
		RangeMin:            r.u16("range_min", 0),
		RangeMax:            r.u16("range_max", 0),
	}

	if kind == levelformat.EntityMovingPlatform {
		size := r.integer("size", 1, math.MaxUint8, DefaultPlatformSize, false)
		if r.err == nil {
			w := size * int64(c.out.Header.TileWidth)
			if w > math.MaxUint8 {
				return rec, semantic(e.Fields.Line("size", e.Line), "size",
					"platform of %d tiles is %d pixels wide, max %d", size, w, math.MaxUint8)
			}
			if c.out.Header.TileHeight > math.MaxUint8 {
				return rec, semantic(e.Line, "tile_height", "platform height %d exceeds %d pixels", c.out.Header.TileHeight, math.MaxUint8)
			}
			rec.Width = uint8(w)
			rec.Height = uint8(c.out.Header.TileHeight)
		}
	} else {
		rec.GravityMult = r.q44("gravity_multiplier", DefaultMultiplier)
		rec.JumpMult = r.q44("jump_multiplier", DefaultMultiplier)
	}
	if r.err != nil {
		return rec, r.err
	}

	if rec.RangeMin > rec.RangeMax {
		return rec, semantic(e.Fields.Line("range_min", e.Line), "range_min",
			"range_min %d is greater than range_max %d", rec.RangeMin, rec.RangeMax)
	}
	return rec, nil
}

func (c *compiler) triggers() error {
	if len(c.src.Triggers) > levelformat.MaxTriggers {
		return semantic(0, "triggers", "too many triggers: %d", len(c.src.Triggers))
	}
	for i, t := range c.src.Triggers {
		r := newFieldReader(t.Fields, t.Line, t.Block)
		rec := levelformat.Trigger{
			ID:     uint16(i),
			Top:    uint16(r.integer("top", 0, int64(c.height-1), 0, true)),
			Left:   uint16(r.integer("left", 0, int64(c.width-1), 0, true)),
			Width:  uint16(r.integer("width", 1, math.MaxUint16, 1, false)),
			Height: uint16(r.integer("height", 1, math.MaxUint16, 1, false)),
			IconID: r.u16("icon_id", 0),
		}
		modeName, modeLine := r.name("mode", "auto", false)

		switch t.Block {
		case levelsource.BlockLevelExit:
			rec.Kind = levelformat.TriggerLevelExit
			target, line := r.name("target", "", true)
			rec.P1 = uint16(r.integer("level", 1, math.MaxUint16, 0, true))
			if r.err == nil {
				world, ok := ExitTargets[target]
				if !ok {
					return semantic(line, "target", "unknown exit target %q (known: %s)", target, strings.Join(names(ExitTargets), ", "))
				}
				rec.P0 = world
			}
		case levelsource.BlockMessage:
			rec.Kind = levelformat.TriggerMessage
			textID, line := r.name("text_id", "", true)
			if r.err == nil {
				id, ok := MessageIDs[textID]
				if !ok {
					return semantic(line, "text_id", "unknown message %q (known: %s)", textID, strings.Join(names(MessageIDs), ", "))
				}
				rec.P0 = id
			}
		case levelsource.BlockPickup:
			rec.Kind = levelformat.TriggerPickup
			pickup, line := r.name("pickup", "", true)
			rec.P1 = r.u16("amount", DefaultAmount)
			if r.err == nil {
				kind, ok := PickupKinds[pickup]
				if !ok {
					return semantic(line, "pickup", "unknown pickup %q (known: %s)", pickup, strings.Join(names(PickupKinds), ", "))
				}
				rec.P0 = uint16(kind)
			}
		default:
			return semantic(t.Line, "", "unknown trigger block %q", t.Block)
		}
		if r.err != nil {
			return r.err
		}

		mode, ok := TriggerModes[modeName]
		if !ok {
			return semantic(modeLine, "mode", "unknown trigger mode %q (known: %s)", modeName, strings.Join(names(TriggerModes), ", "))
		}
		rec.Mode = mode
		c.out.Triggers = append(c.out.Triggers, rec)
	}
	return nil
}

// fieldReader reads typed values out of a block's fields. The first
// failure is latched in err and later reads return their defaults.
type fieldReader struct {
	f     levelsource.Fields
	line  int
	block string
	err   error
}

func newFieldReader(f levelsource.Fields, line int, block string) *fieldReader {
	return &fieldReader{f: f, line: line, block: block}
}

func (r *fieldReader) integer(key string, lo, hi, def int64, required bool) int64 {
	if r.err != nil {
		return def
	}
	v, ok := r.f[key]
	if !ok {
		if required {
			r.err = semantic(r.line, key, "%s requires %s", r.block, key)
		}
		return def
	}
	if v.Kind != levelsource.KindNumber {
		r.err = semantic(v.Line, key, "must be a number")
		return def
	}
	n := v.Number
	if n != math.Trunc(n) {
		r.err = semantic(v.Line, key, "must be an integer, got %s", formatNumber(n))
		return def
	}
	if n < float64(lo) || n > float64(hi) {
		r.err = semantic(v.Line, key, "%s out of range [%d, %d]", formatNumber(n), lo, hi)
		return def
	}
	return int64(n)
}

func (r *fieldReader) u8(key string, def uint8) uint8 {
	return uint8(r.integer(key, 0, math.MaxUint8, int64(def), false))
}

func (r *fieldReader) u16(key string, def uint16) uint16 {
	return uint16(r.integer(key, 0, math.MaxUint16, int64(def), false))
}

func (r *fieldReader) i16(key string, def int16) int16 {
	return int16(r.integer(key, math.MinInt16, math.MaxInt16, int64(def), false))
}

func (r *fieldReader) number(key string, def float64) float64 {
	if r.err != nil {
		return def
	}
	v, ok := r.f[key]
	if !ok {
		return def
	}
	if v.Kind != levelsource.KindNumber {
		r.err = semantic(v.Line, key, "must be a number")
		return def
	}
	return v.Number
}

func (r *fieldReader) q44(key string, def float64) uint8 {
	v := r.number(key, def)
	if r.err != nil {
		return 0
	}
	q, ok := levelformat.Q44Encode(v)
	if !ok {
		r.err = semantic(r.f.Line(key, r.line), key, "%s must be finite and within [0, %g]", formatNumber(v), levelformat.Q44Max)
	}
	return q
}

func (r *fieldReader) name(key, def string, required bool) (string, int) {
	if r.err != nil {
		return def, r.line
	}
	v, ok := r.f[key]
	if !ok {
		if required {
			r.err = semantic(r.line, key, "%s requires %s", r.block, key)
		}
		return def, r.line
	}
	if v.Kind&levelsource.KindName == 0 {
		r.err = semantic(v.Line, key, "must be a name")
		return def, v.Line
	}
	return v.Text, v.Line
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
