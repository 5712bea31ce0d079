package levelsource

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/jlvl/shared/errutil"
)

const sampleLevel = `// tutorial meadow
header {
  width = 6
  height = 4
  tile_width = 16
  tile_height = 16
  gravity = 0.5
  background = "sky"
}
layers {
  layer {
    collision = false
    tiles = [
      "......",
      "......",
      "......",
      "......",
    ]
  }
  layer {
    collision = true
    tiles = [
      "......",
      "......",
      "..^...",
      "######",
    ]
  }
}
entities {
  player_start { top = 2 left = 1 }
  enemy slime { top = 2 left = 4 range_min = 3 range_max = 5 speed = 8 }
}
triggers {
  message { top = 2 left = 0 text_id = "welcome" }
  pickup { top = 1 left = 3 pickup = coin amount = 5 mode = action }
}
`

func requireParseError(t *testing.T, text string) *ParseError {
	t.Helper()
	src, err := Parse(text)
	require.Error(t, err)
	assert.Nil(t, src)
	errutil.AssertErrorCode(t, err, CodeParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

func TestParseSample(t *testing.T) {
	src, err := Parse(sampleLevel)
	require.NoError(t, err)

	w, ok := src.Header.Fields.Number("width")
	require.True(t, ok)
	assert.Equal(t, 6.0, w)
	g, _ := src.Header.Fields.Number("gravity")
	assert.Equal(t, 0.5, g)
	bg, ok := src.Header.Fields.Name("background")
	require.True(t, ok)
	assert.Equal(t, "sky", bg)
	assert.Equal(t, 2, src.Header.Line)

	require.Len(t, src.Layers, 2)
	assert.False(t, src.Layers[0].Collision)
	assert.True(t, src.Layers[1].Collision)
	require.Len(t, src.Layers[1].Rows, 4)
	assert.Equal(t, "..^...", src.Layers[1].Rows[2].Text)
	assert.Equal(t, 25, src.Layers[1].Rows[2].Line)

	require.Len(t, src.Entities, 2)
	assert.Equal(t, BlockPlayerStart, src.Entities[0].Block)
	assert.Equal(t, "", src.Entities[0].Kind)
	assert.Equal(t, 31, src.Entities[0].Line)
	assert.Equal(t, BlockEnemy, src.Entities[1].Block)
	assert.Equal(t, "slime", src.Entities[1].Kind)
	speed, _ := src.Entities[1].Fields.Number("speed")
	assert.Equal(t, 8.0, speed)

	require.Len(t, src.Triggers, 2)
	assert.Equal(t, BlockMessage, src.Triggers[0].Block)
	textID, _ := src.Triggers[0].Fields.Name("text_id")
	assert.Equal(t, "welcome", textID)
	mode := src.Triggers[1].Fields["mode"]
	assert.Equal(t, KindIdent, mode.Kind)
	assert.Equal(t, "action", mode.Text)
	assert.Equal(t, 36, mode.Line)
}

func TestParseCommentsAndNegativeNumbers(t *testing.T) {
	text := `header { width = 1 height = 1 tile_width = 8 tile_height = 8 } // tiny
layers { layer { tiles = ["#"] } }
entities {
  // regenerates slowly
  player_start { top = 0 left = 0 health_regen_rate = -3 }
}`
	src, err := Parse(text)
	require.NoError(t, err)
	regen, ok := src.Entities[0].Fields.Number("health_regen_rate")
	require.True(t, ok)
	assert.Equal(t, -3.0, regen)
	assert.False(t, src.Layers[0].Collision)
	assert.Equal(t, 5, src.Entities[0].Line)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		line    int
		message string
	}{
		{
			name:    "unknown tile character",
			text:    strings.Replace(sampleLevel, `"..^..."`, `"..X..."`, 1),
			line:    25,
			message: "layer 1 row 2 column 2: unknown tile 'X'",
		},
		{
			name:    "row too short",
			text:    strings.Replace(sampleLevel, `"######"`, `"#####"`, 1),
			line:    26,
			message: "layer 1 row 3 has 5 columns",
		},
		{
			name:    "row count mismatch",
			text:    strings.Replace(sampleLevel, "      \"......\",\n", "", 1),
			line:    11,
			message: "layer 0 has 3 rows, header height is 4",
		},
		{
			name:    "key not valid for player_start",
			text:    strings.Replace(sampleLevel, "left = 1 }", "left = 1 range_min = 3 }", 1),
			line:    31,
			message: `unknown key "range_min" for player_start`,
		},
		{
			name:    "unknown section",
			text:    "bogus { }\n" + sampleLevel,
			line:    1,
			message: `unknown section "bogus"`,
		},
		{
			name:    "missing required header key",
			text:    strings.Replace(sampleLevel, "  tile_height = 16\n", "", 1),
			line:    2,
			message: `missing required key "tile_height"`,
		},
		{
			name:    "duplicate header",
			text:    "header { width = 1 height = 1 tile_width = 1 tile_height = 1 }\n" + sampleLevel,
			line:    3,
			message: "duplicate header section",
		},
		{
			name:    "wrong value type",
			text:    strings.Replace(sampleLevel, "gravity = 0.5", `gravity = "heavy"`, 1),
			line:    7,
			message: "gravity must be a number, got string",
		},
		{
			name:    "duplicate key",
			text:    strings.Replace(sampleLevel, "top = 2 left = 1", "top = 2 top = 3 left = 1", 1),
			line:    31,
			message: `duplicate key "top"`,
		},
		{
			name:    "unknown entity block",
			text:    strings.Replace(sampleLevel, "player_start {", "boss {", 1),
			line:    31,
			message: `unknown entity "boss"`,
		},
		{
			name:    "enemy without kind",
			text:    strings.Replace(sampleLevel, "enemy slime {", "enemy {", 1),
			line:    32,
			message: "enemy needs a kind",
		},
		{
			name:    "unknown trigger",
			text:    strings.Replace(sampleLevel, "message {", "teleport {", 1),
			line:    35,
			message: `unknown trigger "teleport"`,
		},
		{
			name:    "assignment directly inside layers",
			text:    strings.Replace(sampleLevel, "layers {\n", "layers {\n  count = 2\n", 1),
			line:    11,
			message: `unexpected assignment to "count"`,
		},
		{
			name:    "missing header",
			text:    `layers { layer { tiles = ["."] } }`,
			line:    1,
			message: "missing header section",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := requireParseError(t, tt.text)
			assert.Equal(t, tt.line, pe.Line)
			assert.Contains(t, pe.Message, tt.message)
		})
	}
}

func TestParseSyntaxErrorCarriesLine(t *testing.T) {
	pe := requireParseError(t, strings.Replace(sampleLevel, "width = 6", "width 6", 1))
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "width 6", pe.Text)
}

func TestParseUnterminatedBlock(t *testing.T) {
	pe := requireParseError(t, "header {\n  width = 6\n")
	assert.GreaterOrEqual(t, pe.Line, 2)
}

func TestIsPaletteChar(t *testing.T) {
	for _, r := range Palette {
		assert.True(t, IsPaletteChar(r), "%q", r)
	}
	for _, r := range "xX0 @" {
		assert.False(t, IsPaletteChar(r), "%q", r)
	}
}
