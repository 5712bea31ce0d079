// Package backend declares what the simulation needs from a platform:
// drawing, text, audio and input. Implementations live in subpackages.
package backend

import (
	"image/color"

	"github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/levelformat"
)

// InputState is the held state of every action for one tick.
type InputState struct {
	Left, Right, Up, Down bool
	Jump                  bool
	Action                bool
}

// Pressed reports whether a logical action is held.
func (s InputState) Pressed(a config.ActionID) bool {
	switch a {
	case config.ActionMoveLeft:
		return s.Left
	case config.ActionMoveRight:
		return s.Right
	case config.ActionMoveUp:
		return s.Up
	case config.ActionMoveDown:
		return s.Down
	case config.ActionJump:
		return s.Jump
	case config.ActionInteract:
		return s.Action
	}
	return false
}

type InputSource interface {
	Poll() InputState
}

// Renderer draws in world coordinates.
type Renderer interface {
	ScreenSize() (int, int)
	Clear(background uint8)
	DrawTile(x, y, w, h float64, kind levelformat.TileKind)
	DrawEntity(x, y, w, h float64, kind levelformat.EntityKind)
	DrawRect(x, y, w, h float64, clr color.Color)
}

// TextRenderer is implemented by renderers that can draw text. It draws
// in screen coordinates, with (x, y) the top-left corner.
type TextRenderer interface {
	MeasureText(s string) (w, h float64)
	DrawText(s string, x, y float64, clr color.Color)
	DrawPanel(x, y, w, h float64, clr color.Color)
}

// View tells a renderer what to keep on screen: the point to centre on and
// the size of the world it may scroll over.
type View struct {
	FocusX, FocusY float64
	Width, Height  float64
}

type Audio interface {
	PlayMusic(background uint8)
	PlaySFX(id config.SoundID)
	Stop()
}

// NopAudio discards every sound.
type NopAudio struct{}

func (NopAudio) PlayMusic(uint8)        {}
func (NopAudio) PlaySFX(config.SoundID) {}
func (NopAudio) Stop()                  {}

// InputFunc adapts a function to InputSource.
type InputFunc func() InputState

func (f InputFunc) Poll() InputState { return f() }
