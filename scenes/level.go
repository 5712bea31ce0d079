// Package scenes drives a running level and swaps levels when an exit
// fires.
package scenes

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/session"
	"github.com/automoto/jlvl/shared/triggers"
	"github.com/automoto/jlvl/systems"
	"github.com/automoto/jlvl/systems/factory"
	"github.com/automoto/jlvl/tags"
)

// LevelSceneConfig holds what a LevelScene is built from.
type LevelSceneConfig struct {
	Start    string
	Load     LevelLoader
	Session  *session.Session
	Store    session.Store
	Messages triggers.MessageLookup
	Input    backend.InputSource
	Audio    backend.Audio
}

// LevelScene runs one level at a time. A level change replaces the whole
// world; only the session carries over.
type LevelScene struct {
	world    donburi.World
	pipeline *systems.Pipeline
	load     LevelLoader
	sess     *session.Session
	store    session.Store
	messages triggers.MessageLookup
	path     string
}

// NewLevelScene loads the start level. Failing to load it is fatal to the
// scene.
func NewLevelScene(c LevelSceneConfig) (*LevelScene, error) {
	audio := c.Audio
	if audio == nil {
		audio = backend.NopAudio{}
	}
	s := &LevelScene{
		pipeline: systems.NewLevelPipeline(c.Input, audio, c.Store),
		load:     c.Load,
		sess:     c.Session,
		store:    c.Store,
		messages: c.Messages,
	}
	if err := s.enter(c.Start); err != nil {
		return nil, oops.In("scenes").With("level", c.Start).Wrapf(err, "start level")
	}
	return s, nil
}

func (s *LevelScene) Update() error {
	s.pipeline.Update(s.world)

	entry, ok := components.Level.First(s.world)
	if !ok {
		return nil
	}
	lvl := components.Level.Get(entry)
	if lvl.Pending == nil {
		return nil
	}

	next := *lvl.Pending
	lvl.Pending = nil
	if err := s.enter(next.Path); err != nil {
		errutil.LogError(slog.Default(), "level change failed", err)
		return nil
	}
	slog.Info("entered level", "path", next.Path, "world", next.World, "level", next.Level)
	systems.SaveSession(s.store, s.sess)
	return nil
}

func (s *LevelScene) Draw(r backend.Renderer) {
	s.pipeline.Draw(s.world, r)
}

// View centres on the player within the current level.
func (s *LevelScene) View() backend.View {
	var v backend.View
	entry, ok := components.Level.First(s.world)
	if !ok {
		return v
	}
	level := components.Level.Get(entry).Level
	v.Width, v.Height = level.PixelWidth(), level.PixelHeight()
	if player, ok := tags.Player.First(s.world); ok {
		obj := components.Object.Get(player)
		v.FocusX, v.FocusY = obj.X+obj.W/2, obj.Y+obj.H/2
	}
	return v
}

// World is the current level's world.
func (s *LevelScene) World() donburi.World { return s.world }

// Path is the current level's path.
func (s *LevelScene) Path() string { return s.path }

func (s *LevelScene) Session() *session.Session { return s.sess }

// enter builds a fresh world for the level at name. The current world is
// kept when loading fails.
func (s *LevelScene) enter(name string) error {
	level, err := s.load(name)
	if err != nil {
		return err
	}
	w := donburi.NewWorld()
	factory.SpawnLevel(w, level, name, s.sess, s.messages)
	s.world = w
	s.path = name
	return nil
}
