package triggers

import (
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/session"
)

// Armed is the per-level armed flag of every trigger, indexed by trigger id.
type Armed []bool

// NewArmed returns an all-false armed array sized for the level's highest
// trigger id.
func NewArmed(level *leveldata.Level) Armed {
	return make(Armed, level.MaxTriggerID()+1)
}

func (a Armed) Get(id uint16) bool {
	return int(id) < len(a) && a[id]
}

func (a Armed) Set(id uint16, v bool) {
	if int(id) < len(a) {
		a[id] = v
	}
}

// Preload arms the pickups the session already collected in this level so
// they stay gone after a reload.
func Preload(level *leveldata.Level, armed Armed, sess *session.Session, levelPath string) {
	for _, t := range level.Triggers {
		if t.Kind == levelformat.TriggerPickup && sess.IsCollected(levelPath, t.ID) {
			armed.Set(t.ID, true)
		}
	}
}
