package levelformat

import (
	"encoding/binary"
	"math"

	"github.com/samber/oops"
)

// Encode serializes f. Counts, tile totals and section offsets are always
// recomputed from the record slices; the corresponding Header fields of f
// are ignored and f is not modified.
func Encode(f *File) ([]byte, error) {
	if f == nil {
		return nil, oops.Code(CodeEncode).In("levelformat").Errorf("nil level file")
	}
	h, err := layout(f)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, int(h.OffsetTiles)+len(f.Tiles))
	buf = appendHeader(buf, h)
	for _, l := range f.Layers {
		buf = append(buf, l.Flags, l.Reserved)
	}
	for i := range f.Entities {
		buf = appendEntity(buf, &f.Entities[i])
	}
	for i := range f.Triggers {
		buf = appendTrigger(buf, &f.Triggers[i])
	}
	buf = append(buf, f.Tiles...)
	return buf, nil
}

// layout returns the header that Encode writes for f.
func layout(f *File) (Header, error) {
	h := f.Header
	errb := oops.Code(CodeEncode).In("levelformat")

	if len(f.Layers) > MaxLayers {
		return h, errb.With("layers", len(f.Layers)).Errorf("too many layers: %d > %d", len(f.Layers), MaxLayers)
	}
	if len(f.Entities) > MaxEntities {
		return h, errb.With("entities", len(f.Entities)).Errorf("too many entities: %d > %d", len(f.Entities), MaxEntities)
	}
	if len(f.Triggers) > MaxTriggers {
		return h, errb.With("triggers", len(f.Triggers)).Errorf("too many triggers: %d > %d", len(f.Triggers), MaxTriggers)
	}

	perLayer := uint64(h.Width) * uint64(h.Height)
	total := perLayer * uint64(len(f.Layers))
	if uint64(len(f.Tiles)) != total {
		return h, oops.Code(CodeTileCount).In("levelformat").
			With("tiles", len(f.Tiles)).
			With("expected", total).
			Errorf("tile count %d does not match %dx%dx%d", len(f.Tiles), h.Width, h.Height, len(f.Layers))
	}
	if err := checkTileSize(&h); err != nil {
		return h, err
	}

	offLayers := uint64(HeaderSize)
	offEntities := offLayers + uint64(len(f.Layers))*LayerSize
	offTriggers := offEntities + uint64(len(f.Entities))*EntitySize
	offTiles := offTriggers + uint64(len(f.Triggers))*TriggerSize
	if offTiles+total > math.MaxUint32 {
		return h, errb.Errorf("encoded level exceeds 4 GiB")
	}

	h.Version = Version
	h.HeaderSize = HeaderSize
	h.LayerCount = uint8(len(f.Layers))
	h.EntityCount = uint16(len(f.Entities))
	h.TriggerCount = uint16(len(f.Triggers))
	h.TilesPerLayer = uint32(perLayer)
	h.TileCountTotal = uint32(total)
	h.OffsetLayers = uint32(offLayers)
	h.OffsetEntities = uint32(offEntities)
	h.OffsetTriggers = uint32(offTriggers)
	h.OffsetTiles = uint32(offTiles)
	return h, nil
}

func appendHeader(b []byte, h Header) []byte {
	le := binary.LittleEndian
	b = append(b, Magic...)
	b = le.AppendUint16(b, h.Version)
	b = le.AppendUint16(b, h.HeaderSize)
	b = le.AppendUint16(b, h.Width)
	b = le.AppendUint16(b, h.Height)
	b = le.AppendUint16(b, h.TileWidth)
	b = le.AppendUint16(b, h.TileHeight)
	b = append(b, h.LayerCount)
	b = le.AppendUint16(b, h.EntityCount)
	b = le.AppendUint16(b, h.TriggerCount)
	b = le.AppendUint16(b, uint16(h.GravityFixed))
	b = append(b, h.BackgroundID, h.Gravity, h.Reserved0, h.Reserved1)
	b = le.AppendUint32(b, h.TilesPerLayer)
	b = le.AppendUint32(b, h.TileCountTotal)
	b = le.AppendUint32(b, h.OffsetLayers)
	b = le.AppendUint32(b, h.OffsetEntities)
	b = le.AppendUint32(b, h.OffsetTriggers)
	b = le.AppendUint32(b, h.OffsetTiles)
	return b
}

func appendEntity(b []byte, e *Entity) []byte {
	le := binary.LittleEndian
	b = append(b, uint8(e.Kind), e.RenderStyle, e.GravityMult, e.JumpMult, e.AttackPower)
	b = le.AppendUint16(b, e.HitPoints)
	b = le.AppendUint16(b, e.Top)
	b = le.AppendUint16(b, e.Left)
	b = le.AppendUint16(b, uint16(e.HealthRegenRate))
	b = le.AppendUint16(b, uint16(e.InvulnerabilityTime))
	b = append(b, e.Width, e.Height, e.Speed, e.Strength, e.Luck)
	b = le.AppendUint16(b, e.RangeMin)
	b = le.AppendUint16(b, e.RangeMax)
	return b
}

func appendTrigger(b []byte, t *Trigger) []byte {
	le := binary.LittleEndian
	b = append(b, uint8(t.Kind), uint8(t.Mode))
	b = le.AppendUint16(b, t.ID)
	b = le.AppendUint16(b, t.Left)
	b = le.AppendUint16(b, t.Top)
	b = le.AppendUint16(b, t.Width)
	b = le.AppendUint16(b, t.Height)
	b = le.AppendUint16(b, t.P0)
	b = le.AppendUint16(b, t.P1)
	b = le.AppendUint16(b, t.IconID)
	return b
}
