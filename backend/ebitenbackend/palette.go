package ebitenbackend

import (
	"image/color"

	"github.com/automoto/jlvl/shared/levelformat"
)

var backgroundColors = map[uint8]color.RGBA{
	0: {R: 16, G: 16, B: 24, A: 255},
	1: {R: 110, G: 170, B: 230, A: 255},
	2: {R: 36, G: 28, B: 40, A: 255},
	3: {R: 60, G: 56, B: 70, A: 255},
	4: {R: 14, G: 18, B: 48, A: 255},
}

var tileColors = map[levelformat.TileKind]color.RGBA{
	levelformat.TileDirt:       {R: 120, G: 80, B: 44, A: 255},
	levelformat.TileGrassTop:   {R: 70, G: 160, B: 60, A: 255},
	levelformat.TileSpikeUp:    {R: 200, G: 200, B: 210, A: 255},
	levelformat.TileSpikeDown:  {R: 200, G: 200, B: 210, A: 255},
	levelformat.TileSpikeLeft:  {R: 200, G: 200, B: 210, A: 255},
	levelformat.TileSpikeRight: {R: 200, G: 200, B: 210, A: 255},
	levelformat.TileWater:      {R: 40, G: 90, B: 200, A: 160},
}

var entityColors = map[levelformat.EntityKind]color.RGBA{
	levelformat.EntityPlayer:         {R: 240, G: 220, B: 80, A: 255},
	levelformat.EntitySlime:          {R: 90, G: 210, B: 120, A: 255},
	levelformat.EntityImp:            {R: 210, G: 70, B: 60, A: 255},
	levelformat.EntityMovingPlatform: {R: 150, G: 120, B: 90, A: 255},
}

func lookupColor[K comparable](m map[K]color.RGBA, k K) color.RGBA {
	if c, ok := m[k]; ok {
		return c
	}
	return color.RGBA{R: 255, B: 255, A: 255}
}
