package levelcompiler

import (
	"sort"

	"github.com/automoto/jlvl/shared/levelformat"
)

// Hand-maintained id registries. Names are what level authors write; ids
// are what the binary stores. Never renumber an existing entry.

var Backgrounds = map[string]uint8{
	"none":   0,
	"sky":    1,
	"cave":   2,
	"castle": 3,
	"night":  4,
}

// ExitTargets maps level_exit target names to world ids.
var ExitTargets = map[string]uint16{
	"meadow":  1,
	"caverns": 2,
	"castle":  3,
}

// MessageIDs maps message text_id names to the ids message catalogs use.
var MessageIDs = map[string]uint16{
	"welcome":        1,
	"jump_hint":      2,
	"spikes_warning": 3,
	"water_hint":     4,
	"key_hint":       5,
	"exit_hint":      6,
}

var EnemyKinds = map[string]levelformat.EntityKind{
	"slime": levelformat.EntitySlime,
	"imp":   levelformat.EntityImp,
}

var PlatformKinds = map[string]levelformat.EntityKind{
	"moving": levelformat.EntityMovingPlatform,
}

var PickupKinds = map[string]levelformat.PickupKind{
	"coin":   levelformat.PickupCoin,
	"key":    levelformat.PickupKey,
	"book":   levelformat.PickupBook,
	"random": levelformat.PickupRandom,
}

var TriggerModes = map[string]levelformat.TriggerMode{
	"auto":   levelformat.ModeAuto,
	"action": levelformat.ModeAction,
	"up":     levelformat.ModeUp,
	"down":   levelformat.ModeDown,
	"left":   levelformat.ModeLeft,
	"right":  levelformat.ModeRight,
}

// TileChars maps each palette character to its tile kind.
var TileChars = map[rune]levelformat.TileKind{
	'.': levelformat.TileEmpty,
	'#': levelformat.TileDirt,
	'=': levelformat.TileGrassTop,
	'^': levelformat.TileSpikeUp,
	'v': levelformat.TileSpikeDown,
	'<': levelformat.TileSpikeLeft,
	'>': levelformat.TileSpikeRight,
	'~': levelformat.TileWater,
}

// MessageName returns the registry name for a message id.
func MessageName(id uint16) (string, bool) {
	for name, v := range MessageIDs {
		if v == id {
			return name, true
		}
	}
	return "", false
}

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
