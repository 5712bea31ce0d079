// Package levelformat encodes and decodes JLVL binary level files.
// It has no dependencies on ebitengine, donburi, or resolv. Pure data only.
package levelformat

// Magic is the 4-byte tag every level file starts with.
const Magic = "JLVL"

// Version is the only format version this package reads and writes.
const Version uint16 = 1

// Fixed record sizes in bytes.
const (
	HeaderSize  = 51
	LayerSize   = 2
	EntitySize  = 24
	TriggerSize = 18
)

// Maximum record counts that fit the header fields.
const (
	MaxLayers   = 0xFF
	MaxEntities = 0xFFFF
	MaxTriggers = 0xFFFF
)

// Error codes carried by every error this package returns.
const (
	CodeTruncated     = "FORMAT_TRUNCATED"
	CodeBadMagic      = "FORMAT_BAD_MAGIC"
	CodeVersion       = "FORMAT_VERSION"
	CodeHeaderSize    = "FORMAT_HEADER_SIZE"
	CodeSectionBounds = "FORMAT_SECTION_BOUNDS"
	CodeTileCount     = "FORMAT_TILE_COUNT"
	CodeTileSize      = "FORMAT_TILE_SIZE"
	CodeEncode        = "FORMAT_ENCODE"
)

// Header mirrors the on-disk header field for field.
type Header struct {
	Version        uint16
	HeaderSize     uint16
	Width          uint16
	Height         uint16
	TileWidth      uint16
	TileHeight     uint16
	LayerCount     uint8
	EntityCount    uint16
	TriggerCount   uint16
	GravityFixed   int16 // Q7.8
	BackgroundID   uint8
	Gravity        uint8 // percent, 100 = unscaled
	Reserved0      uint8
	Reserved1      uint8
	TilesPerLayer  uint32
	TileCountTotal uint32
	OffsetLayers   uint32
	OffsetEntities uint32
	OffsetTriggers uint32
	OffsetTiles    uint32
}

// LayerCollision marks a layer as collision-bearing in Layer.Flags.
const LayerCollision uint8 = 1 << 0

// Layer is the per-layer metadata record.
type Layer struct {
	Flags    uint8
	Reserved uint8
}

// Collision reports whether the collision flag is set.
func (l Layer) Collision() bool {
	return l.Flags&LayerCollision != 0
}

type EntityKind uint8

const (
	EntityPlayer         EntityKind = 1
	EntitySlime          EntityKind = 2
	EntityImp            EntityKind = 3
	EntityMovingPlatform EntityKind = 4
)

func (k EntityKind) String() string {
	switch k {
	case EntityPlayer:
		return "player"
	case EntitySlime:
		return "slime"
	case EntityImp:
		return "imp"
	case EntityMovingPlatform:
		return "moving_platform"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether the kind is a patrolling enemy.
func (k EntityKind) IsEnemy() bool {
	return k == EntitySlime || k == EntityImp
}

// Entity is the fixed 24-byte entity record. Top, Left, RangeMin and
// RangeMax are in tile units; Width and Height are in pixels.
type Entity struct {
	Kind                EntityKind
	RenderStyle         uint8
	GravityMult         uint8 // Q4.4
	JumpMult            uint8 // Q4.4
	AttackPower         uint8
	HitPoints           uint16
	Top                 uint16
	Left                uint16
	HealthRegenRate     int16
	InvulnerabilityTime int16
	Width               uint8
	Height              uint8
	Speed               uint8
	Strength            uint8
	Luck                uint8
	RangeMin            uint16
	RangeMax            uint16
}

type TriggerKind uint8

const (
	TriggerEmpty     TriggerKind = 0
	TriggerLevelExit TriggerKind = 1
	TriggerMessage   TriggerKind = 2
	TriggerPickup    TriggerKind = 3
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerEmpty:
		return "empty"
	case TriggerLevelExit:
		return "level_exit"
	case TriggerMessage:
		return "message"
	case TriggerPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// TriggerMode selects what activates a trigger while the player overlaps it.
type TriggerMode uint8

const (
	ModeAuto   TriggerMode = 0
	ModeAction TriggerMode = 1
	ModeUp     TriggerMode = 2
	ModeDown   TriggerMode = 3
	ModeLeft   TriggerMode = 4
	ModeRight  TriggerMode = 5
)

// PickupKind is stored in Trigger.P0 for pickup triggers.
type PickupKind uint16

const (
	PickupCoin   PickupKind = 1
	PickupKey    PickupKind = 2
	PickupBook   PickupKind = 3
	PickupRandom PickupKind = 4
)

// Trigger is the fixed 18-byte trigger record. Position and size are in
// tile units. P0 and P1 depend on Kind:
//
//	LevelExit: P0 world id, P1 level number
//	Message:   P0 text id
//	Pickup:    P0 PickupKind, P1 amount / key id / book id
type Trigger struct {
	Kind   TriggerKind
	Mode   TriggerMode
	ID     uint16
	Left   uint16
	Top    uint16
	Width  uint16
	Height uint16
	P0     uint16
	P1     uint16
	IconID uint16
}

// File is a complete decoded level file.
type File struct {
	Header   Header
	Layers   []Layer
	Entities []Entity
	Triggers []Trigger
	Tiles    []byte
}

// TileIndex returns the flat index of (layer, col, row). The caller checks bounds.
func (f *File) TileIndex(layer, col, row int) int {
	w := int(f.Header.Width)
	return layer*w*int(f.Header.Height) + row*w + col
}
