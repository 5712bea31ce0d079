package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/automoto/jlvl/backend/ebitenbackend"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/scenes"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

// Game adapts a LevelScene to ebiten's game loop.
type Game struct {
	scene    *scenes.LevelScene
	renderer *ebitenbackend.Renderer
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen, g.scene.View())
	g.scene.Draw(g.renderer)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return cfg.Window.Width, cfg.Window.Height
}

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
