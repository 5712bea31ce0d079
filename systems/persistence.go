package systems

import (
	"log/slog"

	"github.com/quasilyte/gdata"
	"github.com/samber/oops"
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/session"
)

// OpenStore opens the gdata store the session is saved in.
func OpenStore() (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Persistence.AppName,
	})
	if err != nil {
		return nil, oops.Code(session.CodeStore).In("persistence").With("app", cfg.Persistence.AppName).Wrapf(err, "open save data")
	}
	return m, nil
}

// LoadSession returns the saved session, or a fresh one when nothing was
// saved or the save cannot be read.
func LoadSession(store session.Store) *session.Session {
	if store != nil && cfg.Persistence.Enabled {
		s, err := session.Load(store, cfg.Persistence.SaveKey)
		if err != nil {
			errutil.LogWarn(slog.Default(), "could not load saved session", err)
		} else if s != nil {
			return s
		}
	}
	return session.New(cfg.Pickup.RandomSeed)
}

// SaveSession writes the session now. Failures are logged and survived.
func SaveSession(store session.Store, s *session.Session) {
	if store == nil || !cfg.Persistence.Enabled {
		return
	}
	if err := session.Save(store, cfg.Persistence.SaveKey, s); err != nil {
		errutil.LogWarn(slog.Default(), "could not save session", err)
	}
}

// Persist saves the session on the tick after it changed.
func Persist(store session.Store) System {
	return func(w donburi.World) {
		entry, ok := levelEntry(w)
		if !ok {
			return
		}
		sess := components.Session.Get(entry)
		if !sess.Dirty {
			return
		}
		sess.Dirty = false
		SaveSession(store, sess.Session)
	}
}
