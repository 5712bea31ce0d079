package systems

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
)

const hudMargin = 4

// DrawHUD shows the wallet, keys and books in the top-left corner.
func DrawHUD(w donburi.World, r backend.Renderer) {
	tr, ok := r.(backend.TextRenderer)
	if !ok {
		return
	}
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	sess := components.Session.Get(entry)
	tr.DrawText(hudText(sess), hudMargin, hudMargin, cfg.White)
}

func hudText(sess *components.SessionData) string {
	return fmt.Sprintf("Coins %d  Keys %d  Books %d", sess.Coins, len(sess.Keys), len(sess.Books))
}
