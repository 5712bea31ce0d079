package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/shared/session"
)

// SessionData carries progression across levels. The pointer is shared
// with the scene so a transition keeps it.
type SessionData struct {
	*session.Session
	Dirty bool // Changed since the last save
}

var Session = donburi.NewComponentType[SessionData]()
