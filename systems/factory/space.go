package factory

import (
	"github.com/automoto/jlvl/archetypes"
	"github.com/automoto/jlvl/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

func CreateSpace(w donburi.World, width, height, cellWidth, cellHeight int) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	components.Space.SetValue(space, components.SpaceData{Space: resolv.NewSpace(width, height, cellWidth, cellHeight)})
	return space
}
