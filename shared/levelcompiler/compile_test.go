package levelcompiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/levelsource"
)

const caveLevel = `header {
  width = 8 height = 4 tile_width = 16 tile_height = 16
  gravity = 0.5 gravity_scale = 80 background = cave
}
layers {
  layer { tiles = [ "........", "........", "........", "........" ] }
  layer {
    collision = true
    tiles = [
      "........",
      "......~~",
      "..^.....",
      "########",
    ]
  }
}
entities {
  player_start { top = 2 left = 1 height = 14 jump_multiplier = 1.5 }
  enemy imp { top = 2 left = 4 range_min = 3 range_max = 6 speed = 8 attack_power = 200 hit_points = 300 health_regen_rate = -2 }
  platform moving { top = 1 left = 2 range_min = 2 range_max = 5 speed = 20 size = 3 }
}
triggers {
  message { top = 2 left = 0 text_id = "welcome" }
  level_exit { top = 1 left = 7 height = 2 target = meadow level = 2 mode = up }
  pickup { top = 1 left = 3 pickup = coin amount = 5 mode = action icon_id = 4 }
}
`

func requireSemanticError(t *testing.T, err error) *SemanticError {
	t.Helper()
	errutil.AssertErrorCode(t, err, CodeSemantic)
	var se *SemanticError
	require.True(t, errors.As(err, &se), "expected *SemanticError, got %T", err)
	return se
}

func TestCompileCaveLevel(t *testing.T) {
	f, err := CompileText(caveLevel)
	require.NoError(t, err)

	h := f.Header
	assert.Equal(t, uint16(8), h.Width)
	assert.Equal(t, uint16(4), h.Height)
	assert.Equal(t, int16(128), h.GravityFixed)
	assert.Equal(t, uint8(80), h.Gravity)
	assert.Equal(t, uint8(2), h.BackgroundID)

	require.Len(t, f.Layers, 2)
	assert.False(t, f.Layers[0].Collision())
	assert.True(t, f.Layers[1].Collision())
	require.Len(t, f.Tiles, 64)
	assert.Equal(t, byte(levelformat.TileWater), f.Tiles[f.TileIndex(1, 6, 1)])
	assert.Equal(t, byte(levelformat.TileSpikeUp), f.Tiles[f.TileIndex(1, 2, 2)])
	assert.Equal(t, byte(levelformat.TileDirt), f.Tiles[f.TileIndex(1, 0, 3)])
	assert.Equal(t, byte(levelformat.TileEmpty), f.Tiles[f.TileIndex(0, 0, 3)])

	require.Len(t, f.Entities, 3)
	player := f.Entities[0]
	assert.Equal(t, levelformat.EntityPlayer, player.Kind)
	assert.Equal(t, uint8(16), player.GravityMult)
	assert.Equal(t, uint8(24), player.JumpMult)
	assert.Equal(t, uint8(14), player.Height)
	assert.Equal(t, uint16(2), player.Top)
	assert.Equal(t, uint16(1), player.Left)

	imp := f.Entities[1]
	assert.Equal(t, levelformat.EntityImp, imp.Kind)
	assert.Equal(t, uint8(200), imp.AttackPower)
	assert.Equal(t, uint16(300), imp.HitPoints)
	assert.Equal(t, int16(-2), imp.HealthRegenRate)
	assert.Equal(t, uint16(3), imp.RangeMin)
	assert.Equal(t, uint16(6), imp.RangeMax)

	platform := f.Entities[2]
	assert.Equal(t, levelformat.EntityMovingPlatform, platform.Kind)
	assert.Equal(t, uint8(48), platform.Width)
	assert.Equal(t, uint8(16), platform.Height)
	assert.Equal(t, uint8(0), platform.GravityMult)
	assert.Equal(t, uint8(20), platform.Speed)

	require.Len(t, f.Triggers, 3)
	msg, exit, pickup := f.Triggers[0], f.Triggers[1], f.Triggers[2]
	assert.Equal(t, levelformat.Trigger{
		Kind: levelformat.TriggerMessage, Mode: levelformat.ModeAuto, ID: 0,
		Left: 0, Top: 2, Width: 1, Height: 1, P0: MessageIDs["welcome"],
	}, msg)
	assert.Equal(t, levelformat.Trigger{
		Kind: levelformat.TriggerLevelExit, Mode: levelformat.ModeUp, ID: 1,
		Left: 7, Top: 1, Width: 1, Height: 2, P0: ExitTargets["meadow"], P1: 2,
	}, exit)
	assert.Equal(t, levelformat.Trigger{
		Kind: levelformat.TriggerPickup, Mode: levelformat.ModeAction, ID: 2,
		Left: 3, Top: 1, Width: 1, Height: 1, P0: uint16(levelformat.PickupCoin), P1: 5, IconID: 4,
	}, pickup)
}

func TestCompileEncodeDecodeRoundTrip(t *testing.T) {
	compiled, err := CompileText(caveLevel)
	require.NoError(t, err)

	b, err := CompileBytes(caveLevel)
	require.NoError(t, err)
	decoded, err := levelformat.Decode(b)
	require.NoError(t, err)

	assert.Equal(t, compiled.Header.Width, decoded.Header.Width)
	assert.Equal(t, compiled.Header.Height, decoded.Header.Height)
	assert.Equal(t, uint8(len(compiled.Layers)), decoded.Header.LayerCount)
	assert.Equal(t, compiled.Layers, decoded.Layers)
	assert.Equal(t, compiled.Entities, decoded.Entities)
	assert.Equal(t, compiled.Triggers, decoded.Triggers)
	assert.Equal(t, compiled.Tiles, decoded.Tiles)
}

func TestCompileDefaults(t *testing.T) {
	f, err := CompileText(`header { width = 2 height = 1 tile_width = 8 tile_height = 8 }
layers { layer { tiles = ["##"] } }
entities { player_start { top = 0 left = 0 } }
triggers { pickup { top = 0 left = 1 pickup = key } }`)
	require.NoError(t, err)

	assert.Equal(t, int16(192), f.Header.GravityFixed, "default gravity 0.75")
	assert.Equal(t, uint8(DefaultGravityScale), f.Header.Gravity)
	assert.Equal(t, uint8(0), f.Header.BackgroundID)
	assert.Equal(t, uint8(16), f.Entities[0].GravityMult)
	assert.Equal(t, uint8(16), f.Entities[0].JumpMult)
	assert.Equal(t, uint16(DefaultAmount), f.Triggers[0].P1)
	assert.Equal(t, uint16(levelformat.PickupKey), f.Triggers[0].P0)
	assert.Equal(t, levelformat.ModeAuto, f.Triggers[0].Mode)
}

func TestCompileSemanticErrors(t *testing.T) {
	const playerLine = "  player_start { top = 2 left = 1 height = 14 jump_multiplier = 1.5 }\n"

	tests := []struct {
		name  string
		text  string
		line  int
		field string
		msg   string
	}{
		{
			name:  "no player",
			text:  strings.Replace(caveLevel, playerLine, "", 1),
			field: "player_start",
			msg:   "no player_start",
		},
		{
			name:  "two players",
			text:  strings.Replace(caveLevel, playerLine, playerLine+"  player_start { top = 1 left = 1 }\n", 1),
			line:  19,
			field: "player_start",
			msg:   "more than one player_start (first on line 18)",
		},
		{
			name:  "unknown enemy kind",
			text:  strings.Replace(caveLevel, "enemy imp", "enemy ogre", 1),
			line:  19,
			field: "kind",
			msg:   `unknown enemy kind "ogre"`,
		},
		{
			name:  "unknown platform kind",
			text:  strings.Replace(caveLevel, "platform moving", "platform falling", 1),
			line:  20,
			field: "kind",
			msg:   `unknown platform kind "falling"`,
		},
		{
			name:  "attack power overflows u8",
			text:  strings.Replace(caveLevel, "attack_power = 200", "attack_power = 300", 1),
			line:  19,
			field: "attack_power",
			msg:   "300 out of range [0, 255]",
		},
		{
			name:  "hit points overflow u16",
			text:  strings.Replace(caveLevel, "hit_points = 300", "hit_points = 70000", 1),
			line:  19,
			field: "hit_points",
			msg:   "out of range",
		},
		{
			name:  "gravity multiplier too large",
			text:  strings.Replace(caveLevel, "jump_multiplier = 1.5", "gravity_multiplier = 16", 1),
			line:  18,
			field: "gravity_multiplier",
			msg:   "within [0, 15.9375]",
		},
		{
			name:  "negative jump multiplier",
			text:  strings.Replace(caveLevel, "jump_multiplier = 1.5", "jump_multiplier = -1", 1),
			line:  18,
			field: "jump_multiplier",
			msg:   "must be finite",
		},
		{
			name:  "fractional tile position",
			text:  strings.Replace(caveLevel, "top = 2 left = 1", "top = 2.5 left = 1", 1),
			line:  18,
			field: "top",
			msg:   "must be an integer, got 2.5",
		},
		{
			name:  "position outside grid",
			text:  strings.Replace(caveLevel, "top = 2 left = 4", "top = 4 left = 4", 1),
			line:  19,
			field: "top",
			msg:   "4 out of range [0, 3]",
		},
		{
			name:  "unknown background",
			text:  strings.Replace(caveLevel, "background = cave", `background = "mars"`, 1),
			line:  3,
			field: "background",
			msg:   `unknown background "mars"`,
		},
		{
			name:  "gravity out of Q7.8",
			text:  strings.Replace(caveLevel, "gravity = 0.5", "gravity = 200", 1),
			line:  3,
			field: "gravity",
			msg:   "Q7.8",
		},
		{
			name:  "unknown exit target",
			text:  strings.Replace(caveLevel, "target = meadow", "target = moon", 1),
			line:  24,
			field: "target",
			msg:   `unknown exit target "moon"`,
		},
		{
			name:  "exit without level",
			text:  strings.Replace(caveLevel, " level = 2", "", 1),
			line:  24,
			field: "level",
			msg:   "level_exit requires level",
		},
		{
			name:  "unknown message",
			text:  strings.Replace(caveLevel, `text_id = "welcome"`, `text_id = "farewell"`, 1),
			line:  23,
			field: "text_id",
			msg:   `unknown message "farewell"`,
		},
		{
			name:  "unknown pickup",
			text:  strings.Replace(caveLevel, "pickup = coin", "pickup = gem", 1),
			line:  25,
			field: "pickup",
			msg:   `unknown pickup "gem"`,
		},
		{
			name:  "unknown mode",
			text:  strings.Replace(caveLevel, "mode = up", "mode = sideways", 1),
			line:  24,
			field: "mode",
			msg:   `unknown trigger mode "sideways"`,
		},
		{
			name:  "platform wider than a byte",
			text:  strings.Replace(caveLevel, "size = 3", "size = 16", 1),
			line:  20,
			field: "size",
			msg:   "256 pixels wide",
		},
		{
			name:  "inverted patrol range",
			text:  strings.Replace(caveLevel, "range_min = 3 range_max = 6", "range_min = 6 range_max = 3", 1),
			line:  19,
			field: "range_min",
			msg:   "greater than range_max",
		},
		{
			name:  "zero width",
			text:  strings.Replace(caveLevel, "width = 8", "width = 0", 1),
			line:  2,
			field: "width",
			msg:   "out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileText(tt.text)
			assert.Nil(t, f)
			se := requireSemanticError(t, err)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.field, se.Field)
			assert.Contains(t, se.Message, tt.msg)
		})
	}
}

func TestCompileRevalidatesGrid(t *testing.T) {
	src := &levelsource.Source{
		Header: levelsource.Header{Line: 1, Fields: levelsource.Fields{
			"width":       {Kind: levelsource.KindNumber, Number: 2},
			"height":      {Kind: levelsource.KindNumber, Number: 1},
			"tile_width":  {Kind: levelsource.KindNumber, Number: 8},
			"tile_height": {Kind: levelsource.KindNumber, Number: 8},
		}},
		Layers: []levelsource.Layer{{Line: 2, Rows: []levelsource.Row{{Line: 3, Text: "#x"}}}},
	}
	_, err := Compile(src)
	se := requireSemanticError(t, err)
	assert.Equal(t, 3, se.Line)
	assert.Contains(t, se.Message, "column 1: unknown tile 'x'")

	src.Layers = nil
	_, err = Compile(src)
	se = requireSemanticError(t, err)
	assert.Contains(t, se.Message, "1 to 255 layers, got 0")
}

func TestCompileTextSurfacesParseErrors(t *testing.T) {
	_, err := CompileText("header {")
	errutil.AssertErrorCode(t, err, levelsource.CodeParse)
	var pe *levelsource.ParseError
	assert.True(t, errors.As(err, &pe))
}

func builtSource(players int) *levelsource.Source {
	num := func(n float64) levelsource.Value {
		return levelsource.Value{Kind: levelsource.KindNumber, Number: n}
	}
	src := &levelsource.Source{
		Header: levelsource.Header{Fields: levelsource.Fields{
			"width":       num(3),
			"height":      num(2),
			"tile_width":  num(16),
			"tile_height": num(16),
		}},
		Layers: []levelsource.Layer{{Collision: true, Rows: []levelsource.Row{{Text: "..."}, {Text: "###"}}}},
	}
	for i := 0; i < players; i++ {
		src.Entities = append(src.Entities, levelsource.Entity{
			Block:  levelsource.BlockPlayerStart,
			Fields: levelsource.Fields{"top": num(0), "left": num(float64(i))},
		})
	}
	return src
}

func TestCompileCountsPlayersWithoutLines(t *testing.T) {
	f, err := Compile(builtSource(1))
	require.NoError(t, err)
	require.Len(t, f.Entities, 1)
	assert.Equal(t, levelformat.EntityPlayer, f.Entities[0].Kind)

	_, err = Compile(builtSource(2))
	se := requireSemanticError(t, err)
	assert.Contains(t, se.Message, "more than one player_start")

	_, err = Compile(builtSource(0))
	se = requireSemanticError(t, err)
	assert.Contains(t, se.Message, "no player_start")
}

func TestCompileChecksRowsBeforeSizingTiles(t *testing.T) {
	src := builtSource(1)
	src.Header.Fields["width"] = levelsource.Value{Kind: levelsource.KindNumber, Number: 65535}
	src.Header.Fields["height"] = levelsource.Value{Kind: levelsource.KindNumber, Number: 65535}
	src.Layers = append(src.Layers, src.Layers[0])

	_, err := Compile(src)
	se := requireSemanticError(t, err)
	assert.Contains(t, se.Message, "layer 0 has 2 rows, height is 65535")
}
