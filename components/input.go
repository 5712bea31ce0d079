package components

import (
	cfg "github.com/automoto/jlvl/config"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous tick's pressed state for all
// actions. JustPressed is computed by comparing the two.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
	// A trigger used this tick's press; the jump is suppressed
	ActionConsumed bool
}

func (d *InputData) Pressed(a cfg.ActionID) bool {
	return d.Current[a]
}

func (d *InputData) JustPressed(a cfg.ActionID) bool {
	return d.Current[a] && !d.Previous[a]
}

var Input = donburi.NewComponentType[InputData]()
