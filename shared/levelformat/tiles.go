package levelformat

// TileKind is the closed set of tile ids stored in the tile section.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileDirt
	TileGrassTop
	TileSpikeUp
	TileSpikeDown
	TileSpikeLeft
	TileSpikeRight
	TileWater
	tileKindCount
)

// Valid reports whether k is inside the enumeration.
func (k TileKind) Valid() bool {
	return k < tileKindCount
}

// Solid tiles block movement.
func (k TileKind) Solid() bool {
	return k == TileDirt || k == TileGrassTop
}

// Hazard tiles hurt the player on contact.
func (k TileKind) Hazard() bool {
	switch k {
	case TileSpikeUp, TileSpikeDown, TileSpikeLeft, TileSpikeRight:
		return true
	}
	return false
}

// Liquid tiles slow falling bodies.
func (k TileKind) Liquid() bool {
	return k == TileWater
}

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileDirt:
		return "dirt"
	case TileGrassTop:
		return "grass_top"
	case TileSpikeUp:
		return "spike_up"
	case TileSpikeDown:
		return "spike_down"
	case TileSpikeLeft:
		return "spike_left"
	case TileSpikeRight:
		return "spike_right"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}
