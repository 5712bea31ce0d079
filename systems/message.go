package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
)

// UpdateMessage counts down the active message and clears it when its
// time is up.
func UpdateMessage(w donburi.World) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	state := components.MessageState.Get(entry)
	if state.DisplayTimer > 0 {
		state.DisplayTimer--
		if state.DisplayTimer == 0 {
			state.Text = ""
			state.TextID = 0
		}
	}
}

// DrawMessage renders the active message at the top center of the screen
func DrawMessage(w donburi.World, r backend.Renderer) {
	tr, ok := r.(backend.TextRenderer)
	if !ok {
		return
	}
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	state := components.MessageState.Get(entry)
	if state.Text == "" {
		return
	}

	textWidth, textHeight := tr.MeasureText(state.Text)
	padding := cfg.Message.BoxPadding
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2

	screenWidth, _ := r.ScreenSize()
	boxX := (float64(screenWidth) - boxWidth) / 2
	boxY := cfg.Message.TopMargin

	tr.DrawPanel(boxX, boxY, boxWidth, boxHeight, cfg.Message.BoxColor)
	tr.DrawText(state.Text, boxX+padding, boxY+padding, cfg.Message.TextColor)
}
