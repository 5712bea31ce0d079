package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/triggers"
)

// LevelData is the singleton for the running level. It is rebuilt from
// scratch on every level transition.
type LevelData struct {
	Level    *leveldata.Level
	Path     string
	Armed    triggers.Armed
	Messages triggers.MessageLookup
	// Set by the trigger system; consumed by the scene
	Pending *triggers.Transition
}

var Level = donburi.NewComponentType[LevelData]()
