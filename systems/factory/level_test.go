package factory

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/levelcompiler"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/session"
	"github.com/automoto/jlvl/tags"
)

const yard = `header { width = 6 height = 4 tile_width = 16 tile_height = 16 background = sky }
layers {
  layer { tiles = [ "......", "......", "......", "......" ] }
  layer {
    collision = true
    tiles = [ "......", "....^.", "......", "######" ]
  }
}
entities {
  player_start { top = 2 left = 1 }
  enemy slime { top = 1 left = 3 range_min = 2 range_max = 5 speed = 4 }
  platform moving { top = 1 left = 0 range_min = 0 range_max = 2 size = 2 }
}
triggers {
  message    { top = 2 left = 0 text_id = "welcome" }
  pickup     { top = 2 left = 2 pickup = coin amount = 2 }
  level_exit { top = 2 left = 5 target = "meadow" level = 2 }
}
`

func spawn(level *leveldata.Level) donburi.World {
	w := donburi.NewWorld()
	SpawnLevel(w, level, "levels/world1/level1.lvlb", session.New(1), nil)
	return w
}

func TestSpawnLevelFromCorruptBytesNeverPanics(t *testing.T) {
	b, err := levelcompiler.CompileBytes(yard)
	require.NoError(t, err)

	for i := range b {
		for _, v := range []byte{0x00, 0x7F, 0xFF} {
			corrupt := append([]byte(nil), b...)
			corrupt[i] = v
			assert.NotPanics(t, func() {
				level, err := leveldata.LoadBytes(corrupt)
				if err != nil {
					return
				}
				spawn(level)
			}, "byte %d = %#x", i, v)
		}
	}
}

func TestSpawnLevelRejectsZeroTileSizeAtLoad(t *testing.T) {
	b, err := levelcompiler.CompileBytes(yard)
	require.NoError(t, err)

	// tile_width and tile_height sit at bytes 12 and 14 of the header.
	for _, off := range []int{12, 14} {
		corrupt := append([]byte(nil), b...)
		binary.LittleEndian.PutUint16(corrupt[off:], 0)
		_, err := leveldata.LoadBytes(corrupt)
		errutil.AssertErrorCode(t, err, levelformat.CodeTileSize)
	}
}

func TestCreateEnemyAtFarEdgeOfRecord(t *testing.T) {
	f := &levelformat.File{
		Header: levelformat.Header{Width: 3, Height: 2, TileWidth: 16, TileHeight: 16},
		Layers: []levelformat.Layer{{Flags: levelformat.LayerCollision}},
		Entities: []levelformat.Entity{
			{Kind: levelformat.EntityPlayer},
			{Kind: levelformat.EntitySlime, Top: math.MaxUint16, Left: 1, RangeMax: math.MaxUint16},
		},
		Tiles: make([]byte, 6),
	}
	b, err := levelformat.Encode(f)
	require.NoError(t, err)
	level, err := leveldata.LoadBytes(b)
	require.NoError(t, err)

	w := spawn(level)
	enemy, ok := tags.Enemy.First(w)
	require.True(t, ok)

	obj := components.Object.Get(enemy)
	bottom := float64(math.MaxUint16+1) * 16
	assert.InDelta(t, bottom-float64(cfg.Enemy.DefaultHeight), obj.Y, 1e-9)
	assert.InDelta(t, bottom, components.Enemy.Get(enemy).PatrolRight, 1e-9)
}
