// Package systems advances and draws the level simulation. Systems run
// over a donburi.World in a fixed order, one tick at a time.
package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/shared/session"
)

// System advances one part of the simulation by one tick.
type System func(w donburi.World)

// Drawer renders one part of the world.
type Drawer func(w donburi.World, r backend.Renderer)

// Pipeline runs systems and drawers in the order they were added.
type Pipeline struct {
	systems []System
	drawers []Drawer
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

func (p *Pipeline) AddSystem(s System) *Pipeline {
	p.systems = append(p.systems, s)
	return p
}

func (p *Pipeline) AddRenderer(d Drawer) *Pipeline {
	p.drawers = append(p.drawers, d)
	return p
}

func (p *Pipeline) Update(w donburi.World) {
	for _, s := range p.systems {
		s(w)
	}
}

func (p *Pipeline) Draw(w donburi.World, r backend.Renderer) {
	for _, d := range p.drawers {
		d(w, r)
	}
}

// NewLevelPipeline wires the standard tick order. Triggers run before the
// player so a consumed press can cancel that tick's jump.
func NewLevelPipeline(in backend.InputSource, audio backend.Audio, store session.Store) *Pipeline {
	return NewPipeline().
		AddSystem(UpdateInput(in)).
		AddSystem(UpdateTriggers).
		AddSystem(UpdatePlayer).
		AddSystem(UpdateEnemies).
		AddSystem(UpdatePlatforms).
		AddSystem(UpdatePhysics).
		AddSystem(UpdateHazards).
		AddSystem(UpdateMessage).
		AddSystem(UpdateAudio(audio)).
		AddSystem(Persist(store)).
		AddRenderer(DrawLevel).
		AddRenderer(DrawEntities).
		AddRenderer(DrawDebug).
		AddRenderer(DrawHUD).
		AddRenderer(DrawMessage)
}
