package levelformat

import (
	"encoding/binary"

	"github.com/samber/oops"
)

// reader is a bounds-checked little-endian cursor. The first short read
// latches err and every later read returns zero.
type reader struct {
	b   []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.b)-r.off < n {
		r.err = oops.Code(CodeTruncated).In("levelformat").
			With("offset", r.off).
			With("want", n).
			With("have", len(r.b)-r.off).
			Errorf("truncated level: need %d bytes at offset %d, have %d", n, r.off, len(r.b)-r.off)
		return nil
	}
	s := r.b[r.off : r.off+n]
	r.off += n
	return s
}

func (r *reader) u8() uint8 {
	if s := r.take(1); s != nil {
		return s[0]
	}
	return 0
}

func (r *reader) u16() uint16 {
	if s := r.take(2); s != nil {
		return binary.LittleEndian.Uint16(s)
	}
	return 0
}

func (r *reader) i16() int16 {
	return int16(r.u16())
}

func (r *reader) u32() uint32 {
	if s := r.take(4); s != nil {
		return binary.LittleEndian.Uint32(s)
	}
	return 0
}

// Decode validates and decodes a level file. It never reads past len(b) and
// returns an error for every malformed input.
func Decode(b []byte) (*File, error) {
	r := &reader{b: b}

	magic := r.take(len(Magic))
	if r.err != nil {
		return nil, r.err
	}
	if string(magic) != Magic {
		return nil, oops.Code(CodeBadMagic).In("levelformat").
			With("magic", string(magic)).
			Errorf("bad magic %q, want %q", magic, Magic)
	}

	h := readHeader(r)
	if r.err != nil {
		return nil, r.err
	}
	if h.Version != Version {
		return nil, oops.Code(CodeVersion).In("levelformat").
			With("version", h.Version).
			Errorf("unsupported format version %d", h.Version)
	}
	if h.HeaderSize != HeaderSize {
		return nil, oops.Code(CodeHeaderSize).In("levelformat").
			With("header_size", h.HeaderSize).
			Errorf("header size %d, want %d", h.HeaderSize, HeaderSize)
	}
	if err := checkTileSize(&h); err != nil {
		return nil, err
	}
	if err := checkTileCounts(&h); err != nil {
		return nil, err
	}

	sections := []struct {
		name   string
		offset uint32
		length uint64
	}{
		{"layers", h.OffsetLayers, uint64(h.LayerCount) * LayerSize},
		{"entities", h.OffsetEntities, uint64(h.EntityCount) * EntitySize},
		{"triggers", h.OffsetTriggers, uint64(h.TriggerCount) * TriggerSize},
		{"tiles", h.OffsetTiles, uint64(h.TileCountTotal)},
	}
	for _, s := range sections {
		end := uint64(s.offset) + s.length
		if uint64(s.offset) < uint64(h.HeaderSize) || end > uint64(len(b)) {
			return nil, oops.Code(CodeSectionBounds).In("levelformat").
				With("section", s.name).
				With("offset", s.offset).
				With("length", s.length).
				With("file_size", len(b)).
				Errorf("%s section [%d, %d) outside file of %d bytes", s.name, s.offset, end, len(b))
		}
	}

	f := &File{Header: h}

	r = &reader{b: b, off: int(h.OffsetLayers)}
	f.Layers = make([]Layer, h.LayerCount)
	for i := range f.Layers {
		f.Layers[i] = Layer{Flags: r.u8(), Reserved: r.u8()}
	}

	r.off = int(h.OffsetEntities)
	f.Entities = make([]Entity, h.EntityCount)
	for i := range f.Entities {
		f.Entities[i] = readEntity(r)
	}

	r.off = int(h.OffsetTriggers)
	f.Triggers = make([]Trigger, h.TriggerCount)
	for i := range f.Triggers {
		f.Triggers[i] = readTrigger(r)
	}

	r.off = int(h.OffsetTiles)
	tiles := r.take(int(h.TileCountTotal))
	if r.err != nil {
		return nil, r.err
	}
	f.Tiles = append([]byte(nil), tiles...)
	return f, nil
}

func readHeader(r *reader) Header {
	var h Header
	h.Version = r.u16()
	h.HeaderSize = r.u16()
	h.Width = r.u16()
	h.Height = r.u16()
	h.TileWidth = r.u16()
	h.TileHeight = r.u16()
	h.LayerCount = r.u8()
	h.EntityCount = r.u16()
	h.TriggerCount = r.u16()
	h.GravityFixed = r.i16()
	h.BackgroundID = r.u8()
	h.Gravity = r.u8()
	h.Reserved0 = r.u8()
	h.Reserved1 = r.u8()
	h.TilesPerLayer = r.u32()
	h.TileCountTotal = r.u32()
	h.OffsetLayers = r.u32()
	h.OffsetEntities = r.u32()
	h.OffsetTriggers = r.u32()
	h.OffsetTiles = r.u32()
	return h
}

func checkTileSize(h *Header) error {
	if h.TileWidth == 0 || h.TileHeight == 0 {
		return oops.Code(CodeTileSize).In("levelformat").
			With("tile_width", h.TileWidth).
			With("tile_height", h.TileHeight).
			Errorf("tile size %dx%d must be nonzero", h.TileWidth, h.TileHeight)
	}
	return nil
}

func checkTileCounts(h *Header) error {
	perLayer := uint64(h.Width) * uint64(h.Height)
	if uint64(h.TilesPerLayer) != perLayer {
		return oops.Code(CodeTileCount).In("levelformat").
			With("tiles_per_layer", h.TilesPerLayer).
			With("expected", perLayer).
			Errorf("tiles_per_layer %d does not match %dx%d", h.TilesPerLayer, h.Width, h.Height)
	}
	total := perLayer * uint64(h.LayerCount)
	if uint64(h.TileCountTotal) != total {
		return oops.Code(CodeTileCount).In("levelformat").
			With("tile_count_total", h.TileCountTotal).
			With("expected", total).
			Errorf("tile_count_total %d does not match %dx%dx%d", h.TileCountTotal, h.Width, h.Height, h.LayerCount)
	}
	return nil
}

func readEntity(r *reader) Entity {
	var e Entity
	e.Kind = EntityKind(r.u8())
	e.RenderStyle = r.u8()
	e.GravityMult = r.u8()
	e.JumpMult = r.u8()
	e.AttackPower = r.u8()
	e.HitPoints = r.u16()
	e.Top = r.u16()
	e.Left = r.u16()
	e.HealthRegenRate = r.i16()
	e.InvulnerabilityTime = r.i16()
	e.Width = r.u8()
	e.Height = r.u8()
	e.Speed = r.u8()
	e.Strength = r.u8()
	e.Luck = r.u8()
	e.RangeMin = r.u16()
	e.RangeMax = r.u16()
	return e
}

func readTrigger(r *reader) Trigger {
	var t Trigger
	t.Kind = TriggerKind(r.u8())
	t.Mode = TriggerMode(r.u8())
	t.ID = r.u16()
	t.Left = r.u16()
	t.Top = r.u16()
	t.Width = r.u16()
	t.Height = r.u16()
	t.P0 = r.u16()
	t.P1 = r.u16()
	t.IconID = r.u16()
	return t
}
