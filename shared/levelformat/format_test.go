package levelformat

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/jlvl/shared/errutil"
)

// Byte offsets of header fields patched by the corruption tests.
const (
	offVersion        = 4
	offHeaderSize     = 6
	offTileWidth      = 12
	offTileHeight     = 14
	offTilesPerLayer  = 27
	offTileCountTotal = 31
	offOffsetLayers   = 35
	offOffsetEntities = 39
	offOffsetTiles    = 47
)

func sampleFile() *File {
	tiles := make([]byte, 4*3*2)
	tiles[12+8] = byte(TileDirt)
	tiles[12+9] = byte(TileGrassTop)
	tiles[12+3] = byte(TileSpikeUp)
	return &File{
		Header: Header{
			Width:        4,
			Height:       3,
			TileWidth:    16,
			TileHeight:   16,
			GravityFixed: 128,
			BackgroundID: 2,
			Gravity:      100,
		},
		Layers: []Layer{{}, {Flags: LayerCollision}},
		Entities: []Entity{
			{Kind: EntityPlayer, GravityMult: 16, JumpMult: 24, HitPoints: 3, Top: 1, Left: 1, Height: 14},
			{
				Kind: EntitySlime, RenderStyle: 2, GravityMult: 8, AttackPower: 200, HitPoints: 500,
				Top: 1, Left: 3, HealthRegenRate: -4, InvulnerabilityTime: 30,
				Width: 12, Height: 10, Speed: 9, Strength: 5, Luck: 7, RangeMin: 1, RangeMax: 3,
			},
		},
		Triggers: []Trigger{
			{Kind: TriggerMessage, Mode: ModeAuto, ID: 0, Left: 0, Top: 1, Width: 1, Height: 1, P0: 1},
			{Kind: TriggerPickup, Mode: ModeAction, ID: 1, Left: 2, Top: 0, Width: 1, Height: 1, P0: uint16(PickupCoin), P1: 5, IconID: 9},
			{Kind: TriggerLevelExit, Mode: ModeUp, ID: 2, Left: 3, Top: 0, Width: 1, Height: 2, P0: 1, P1: 2},
		},
		Tiles: tiles,
	}
}

func mustEncode(t *testing.T, f *File) []byte {
	t.Helper()
	b, err := Encode(f)
	require.NoError(t, err)
	return b
}

func putU16(b []byte, off int, v uint16) []byte {
	out := append([]byte(nil), b...)
	binary.LittleEndian.PutUint16(out[off:], v)
	return out
}

func putU32(b []byte, off int, v uint32) []byte {
	out := append([]byte(nil), b...)
	binary.LittleEndian.PutUint32(out[off:], v)
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := sampleFile()
	b := mustEncode(t, src)

	got, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, src.Layers, got.Layers)
	assert.Equal(t, src.Entities, got.Entities)
	assert.Equal(t, src.Triggers, got.Triggers)
	assert.Equal(t, src.Tiles, got.Tiles)
	assert.Equal(t, uint16(4), got.Header.Width)
	assert.Equal(t, uint16(3), got.Header.Height)
	assert.Equal(t, int16(128), got.Header.GravityFixed)
	assert.Equal(t, uint8(2), got.Header.BackgroundID)
	assert.Equal(t, uint8(100), got.Header.Gravity)
	assert.True(t, got.Layers[1].Collision())
	assert.False(t, got.Layers[0].Collision())

	again := mustEncode(t, got)
	assert.Equal(t, b, again, "re-encoding a decoded file must be byte-identical")
}

func TestEncodeRecomputesLayout(t *testing.T) {
	src := sampleFile()
	src.Header.EntityCount = 99
	src.Header.OffsetTiles = 7
	src.Header.TileCountTotal = 1

	b := mustEncode(t, src)
	got, err := Decode(b)
	require.NoError(t, err)

	h := got.Header
	assert.Equal(t, Version, h.Version)
	assert.Equal(t, uint16(HeaderSize), h.HeaderSize)
	assert.Equal(t, uint8(2), h.LayerCount)
	assert.Equal(t, uint16(2), h.EntityCount)
	assert.Equal(t, uint16(3), h.TriggerCount)
	assert.Equal(t, uint32(12), h.TilesPerLayer)
	assert.Equal(t, uint32(24), h.TileCountTotal)
	assert.Equal(t, uint32(HeaderSize), h.OffsetLayers)
	assert.Equal(t, uint32(HeaderSize+2*LayerSize), h.OffsetEntities)
	assert.Equal(t, h.OffsetEntities+2*EntitySize, h.OffsetTriggers)
	assert.Equal(t, h.OffsetTriggers+3*TriggerSize, h.OffsetTiles)
	assert.Len(t, b, int(h.OffsetTiles)+24)

	assert.Equal(t, uint16(99), src.Header.EntityCount, "Encode must not modify its input")
}

func TestEncodeRejectsTileMismatch(t *testing.T) {
	src := sampleFile()
	src.Tiles = src.Tiles[:5]
	_, err := Encode(src)
	errutil.AssertErrorCode(t, err, CodeTileCount)
}

func TestEncodeRejectsTooManyLayers(t *testing.T) {
	src := &File{Header: Header{Width: 1, Height: 1}}
	src.Layers = make([]Layer, MaxLayers+1)
	src.Tiles = make([]byte, MaxLayers+1)
	_, err := Encode(src)
	errutil.AssertErrorCode(t, err, CodeEncode)
}

func TestEncodeRejectsZeroTileSize(t *testing.T) {
	src := sampleFile()
	src.Header.TileHeight = 0
	_, err := Encode(src)
	errutil.AssertErrorCode(t, err, CodeTileSize)
}

func TestDecodeEveryTruncationFails(t *testing.T) {
	b := mustEncode(t, sampleFile())
	for n := 0; n < len(b); n++ {
		assert.NotPanics(t, func() {
			_, err := Decode(b[:n])
			assert.Error(t, err, "prefix of %d bytes", n)
		})
	}
}

func TestDecodeCorruptionNeverPanics(t *testing.T) {
	b := mustEncode(t, sampleFile())
	for i := range b {
		for _, v := range []byte{0x00, 0x7F, 0xFF} {
			corrupt := append([]byte(nil), b...)
			corrupt[i] = v
			assert.NotPanics(t, func() {
				_, _ = Decode(corrupt)
			}, "byte %d = %#x", i, v)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := mustEncode(t, sampleFile())

	badMagic := append([]byte(nil), valid...)
	copy(badMagic, "JLVX")

	badVersion := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(badVersion[offVersion:], 2)

	badHeaderSize := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint16(badHeaderSize[offHeaderSize:], 40)

	tests := []struct {
		name string
		data []byte
		code string
	}{
		{"empty", nil, CodeTruncated},
		{"short magic", []byte("JL"), CodeTruncated},
		{"header cut", valid[:20], CodeTruncated},
		{"bad magic", badMagic, CodeBadMagic},
		{"bad version", badVersion, CodeVersion},
		{"bad header size", badHeaderSize, CodeHeaderSize},
		{"zero tile width", putU16(valid, offTileWidth, 0), CodeTileSize},
		{"zero tile height", putU16(valid, offTileHeight, 0), CodeTileSize},
		{"tiles per layer mismatch", putU32(valid, offTilesPerLayer, 13), CodeTileCount},
		{"tile total mismatch", putU32(valid, offTileCountTotal, 25), CodeTileCount},
		{"entities past end", putU32(valid, offOffsetEntities, uint32(len(valid))), CodeSectionBounds},
		{"layers inside header", putU32(valid, offOffsetLayers, 10), CodeSectionBounds},
		{"tiles offset overflow", putU32(valid, offOffsetTiles, math.MaxUint32), CodeSectionBounds},
		{"tiles cut", valid[:len(valid)-1], CodeSectionBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(tt.data)
			assert.Nil(t, f)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}

func TestDecodeRejectsDeclaredTileCountMismatch(t *testing.T) {
	// 8x8 single layer: 64 tiles actually present, header claims 100.
	src := &File{
		Header: Header{Width: 8, Height: 8, TileWidth: 16, TileHeight: 16},
		Layers: []Layer{{Flags: LayerCollision}},
		Tiles:  make([]byte, 64),
	}
	b := mustEncode(t, src)
	b = putU32(b, offTileCountTotal, 100)

	f, err := Decode(b)
	assert.Nil(t, f)
	errutil.AssertErrorCode(t, err, CodeTileCount)
	errutil.AssertErrorContext(t, err, "expected", uint64(64))
}

func TestFixedPoint(t *testing.T) {
	t.Run("q4.4", func(t *testing.T) {
		tests := []struct {
			in   float64
			want uint8
			ok   bool
		}{
			{0, 0, true},
			{1, 16, true},
			{1.5, 24, true},
			{0.03, 0, true},
			{0.04, 1, true},
			{Q44Max, 255, true},
			{16, 0, false},
			{-0.1, 0, false},
			{math.NaN(), 0, false},
			{math.Inf(1), 0, false},
		}
		for _, tt := range tests {
			got, ok := Q44Encode(tt.in)
			assert.Equal(t, tt.ok, ok, "Q44Encode(%v)", tt.in)
			assert.Equal(t, tt.want, got, "Q44Encode(%v)", tt.in)
		}
		assert.InDelta(t, 1.5, Q44Decode(24), 1e-9)
	})

	t.Run("q7.8", func(t *testing.T) {
		v, ok := Q78Encode(0.5)
		require.True(t, ok)
		assert.Equal(t, int16(128), v)
		assert.InDelta(t, 0.5, Q78Decode(v), 1e-9)

		v, ok = Q78Encode(-1.25)
		require.True(t, ok)
		assert.Equal(t, int16(-320), v)

		_, ok = Q78Encode(128)
		assert.False(t, ok)
		_, ok = Q78Encode(math.Inf(-1))
		assert.False(t, ok)
	})
}

func TestTileKindClassification(t *testing.T) {
	assert.True(t, TileDirt.Solid())
	assert.True(t, TileGrassTop.Solid())
	assert.False(t, TileWater.Solid())
	assert.True(t, TileSpikeLeft.Hazard())
	assert.False(t, TileDirt.Hazard())
	assert.True(t, TileWater.Liquid())
	assert.False(t, TileKind(200).Valid())
	assert.False(t, TileKind(200).Solid())
}
