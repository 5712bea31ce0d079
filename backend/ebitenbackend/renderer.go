// Package ebitenbackend runs the level on Ebitengine: drawing, text,
// keyboard input and synthesized audio.
package ebitenbackend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/shared/levelformat"
)

// Renderer draws onto the frame's screen image, scrolled by the view set
// in Begin.
type Renderer struct {
	screen     *ebiten.Image
	face       font.Face
	offX, offY float64
}

var _ backend.Renderer = (*Renderer)(nil)
var _ backend.TextRenderer = (*Renderer)(nil)

func NewRenderer(face font.Face) *Renderer {
	return &Renderer{face: face}
}

// Begin targets screen for this frame and scrolls so the view's focus is
// centred without showing past the world's edges.
func (r *Renderer) Begin(screen *ebiten.Image, v backend.View) {
	r.screen = screen
	w, h := r.ScreenSize()
	r.offX = scroll(v.FocusX, float64(w), v.Width)
	r.offY = scroll(v.FocusY, float64(h), v.Height)
}

func scroll(focus, screen, world float64) float64 {
	if world <= screen {
		return 0
	}
	off := focus - screen/2
	if off < 0 {
		return 0
	}
	if off > world-screen {
		return world - screen
	}
	return off
}

func (r *Renderer) ScreenSize() (int, int) {
	b := r.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Renderer) Clear(background uint8) {
	r.screen.Fill(lookupColor(backgroundColors, background))
}

func (r *Renderer) DrawTile(x, y, w, h float64, kind levelformat.TileKind) {
	r.fill(x-r.offX, y-r.offY, w, h, lookupColor(tileColors, kind))
}

func (r *Renderer) DrawEntity(x, y, w, h float64, kind levelformat.EntityKind) {
	r.fill(x-r.offX, y-r.offY, w, h, lookupColor(entityColors, kind))
}

// DrawRect outlines a world-space rectangle.
func (r *Renderer) DrawRect(x, y, w, h float64, clr color.Color) {
	x, y = x-r.offX, y-r.offY
	r.fill(x, y, w, 1, clr)     // Top
	r.fill(x, y+h-1, w, 1, clr) // Bottom
	r.fill(x, y, 1, h, clr)     // Left
	r.fill(x+w-1, y, 1, h, clr) // Right
}

func (r *Renderer) MeasureText(s string) (float64, float64) {
	bounds := text.BoundString(r.face, s) //nolint:staticcheck // TODO: migrate to text/v2
	return float64(bounds.Dx()), float64(r.face.Metrics().Height.Ceil())
}

func (r *Renderer) DrawText(s string, x, y float64, clr color.Color) {
	baseline := int(y) + r.face.Metrics().Ascent.Ceil()
	text.Draw(r.screen, s, r.face, int(x), baseline, clr) //nolint:staticcheck // TODO: migrate to text/v2
}

func (r *Renderer) DrawPanel(x, y, w, h float64, clr color.Color) {
	r.fill(x, y, w, h, clr)
}

func (r *Renderer) fill(x, y, w, h float64, clr color.Color) {
	vector.FillRect(r.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}
