package systems

import (
	"image/color"

	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/levelformat"
)

var (
	triggerColors = map[levelformat.TriggerKind]color.RGBA{
		levelformat.TriggerLevelExit: cfg.Green,
		levelformat.TriggerMessage:   cfg.Blue,
		levelformat.TriggerPickup:    cfg.Yellow,
	}
	armedColor = cfg.Red
)

// DrawDebug outlines every trigger when config.Debug.DrawTriggers is on.
// Armed triggers are drawn red.
func DrawDebug(w donburi.World, r backend.Renderer) {
	if !cfg.Debug.DrawTriggers {
		return
	}
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(entry)
	for _, t := range lvl.Level.Triggers {
		clr, ok := triggerColors[t.Kind]
		if !ok {
			continue
		}
		if lvl.Armed.Get(t.ID) {
			clr = armedColor
		}
		rect := lvl.Level.TriggerRect(t)
		r.DrawRect(rect.X, rect.Y, rect.W, rect.H, clr)
	}
}
