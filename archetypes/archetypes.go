package archetypes

import (
	"github.com/automoto/jlvl/components"
	"github.com/automoto/jlvl/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Record,
		components.Object,
		components.Physics,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Record,
		components.Object,
		components.Physics,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Platform,
		components.Record,
		components.Object,
	)
	Level = newArchetype(
		components.Level,
		components.Session,
		components.Input,
		components.MessageState,
		components.Audio,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
