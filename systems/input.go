package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
)

// UpdateInput polls the backend and updates the Input singleton.
// Must run BEFORE UpdateTriggers and UpdatePlayer in the system order.
func UpdateInput(src backend.InputSource) System {
	return func(w donburi.World) {
		entry, ok := levelEntry(w)
		if !ok {
			return
		}
		input := components.Input.Get(entry)
		state := src.Poll()

		// Swap buffers: current becomes previous
		input.Previous = input.Current
		for a := cfg.ActionMoveLeft; a < cfg.ActionCount; a++ {
			input.Current[a] = state.Pressed(a)
		}
		input.ActionConsumed = false
	}
}
