package factory

import (
	"github.com/automoto/jlvl/archetypes"
	"github.com/automoto/jlvl/components"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/session"
	"github.com/automoto/jlvl/shared/triggers"
	"github.com/yohamta/donburi"
)

// SpawnLevel fills an empty world with a loaded level: the level
// singleton, the collision space and one entity per entity record.
func SpawnLevel(w donburi.World, level *leveldata.Level, path string, sess *session.Session, messages triggers.MessageLookup) *donburi.Entry {
	entry := archetypes.Level.Spawn(w)

	armed := triggers.NewArmed(level)
	triggers.Preload(level, armed, sess, path)
	sess.Level = path

	components.Level.SetValue(entry, components.LevelData{
		Level:    level,
		Path:     path,
		Armed:    armed,
		Messages: messages,
	})
	components.Session.SetValue(entry, components.SessionData{Session: sess})
	components.Audio.SetValue(entry, components.AudioData{Music: level.Header.BackgroundID})

	spaceEntry := CreateSpace(w,
		int(level.PixelWidth()),
		int(level.PixelHeight()),
		int(level.TileWidth()),
		int(level.TileHeight()),
	)
	space := components.Space.Get(spaceEntry).Space

	for i, rec := range level.Entities {
		switch {
		case rec.Kind == levelformat.EntityPlayer:
			CreatePlayer(w, space, level)
		case rec.Kind.IsEnemy():
			CreateEnemy(w, space, level, i)
		case rec.Kind == levelformat.EntityMovingPlatform:
			CreatePlatform(w, space, level, i)
		}
	}

	return entry
}
