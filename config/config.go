package config

import "image/color"

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	// Used when a level declares zero gravity
	Gravity      float64 `koanf:"gravity"`
	MaxFallSpeed float64 `koanf:"max_fall_speed"`
	MaxRiseSpeed float64 `koanf:"max_rise_speed"`

	// Liquid tiles
	LiquidGravityScale float64 `koanf:"liquid_gravity_scale"`
	LiquidDrag         float64 `koanf:"liquid_drag"`
	LiquidMaxFallSpeed float64 `koanf:"liquid_max_fall_speed"`

	// Max tiles a spawning entity is dropped to find a floor
	GroundScanTiles int `koanf:"ground_scan_tiles"`
}

// CollisionConfig contains collision resolution options
type CollisionConfig struct {
	// Resolve the ceiling on every tick instead of only while jumping
	CeilingEveryTick bool `koanf:"ceiling_every_tick"`
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement
	Acceleration float64 `koanf:"acceleration"`
	MaxSpeed     float64 `koanf:"max_speed"`
	Friction     float64 `koanf:"friction"`
	JumpSpeed    float64 `koanf:"jump_speed"`

	// Used when the player record leaves width/height at 0
	DefaultWidth  int `koanf:"default_width"`
	DefaultHeight int `koanf:"default_height"`

	// Frames of hazard immunity after a respawn
	RespawnInvulnFrames int `koanf:"respawn_invuln_frames"`
}

// EnemyConfig contains enemy patrol configuration
type EnemyConfig struct {
	DefaultWidth  int     `koanf:"default_width"`
	DefaultHeight int     `koanf:"default_height"`
	DefaultSpeed  float64 `koanf:"default_speed"` // pixels per tick when the record speed is 0
	SpeedScale    float64 `koanf:"speed_scale"`   // record speed units to pixels per tick
}

// PlatformConfig contains moving platform configuration
type PlatformConfig struct {
	DefaultSpeed float64 `koanf:"default_speed"` // pixels per second when the record speed is 0
	TPS          int     `koanf:"tps"`
}

// TriggerConfig contains trigger evaluation options
type TriggerConfig struct {
	// A trigger that consumed the action press also suppresses that tick's jump
	ActionConsumesJump bool `koanf:"action_consumes_jump"`
}

// PickupConfig contains pickup effect values
type PickupConfig struct {
	BookPages     int    `koanf:"book_pages"`
	RandomCoinMin uint32 `koanf:"random_coin_min"`
	RandomCoinMax uint32 `koanf:"random_coin_max"`
	RandomSeed    uint32 `koanf:"random_seed"`
}

// LevelsConfig locates compiled levels.
type LevelsConfig struct {
	Dir        string `koanf:"dir"`
	PathFormat string `koanf:"path_format"` // fmt verbs: world, level
	Start      string `koanf:"start"`
	SourceExt  string `koanf:"source_ext"`
	BinaryExt  string `koanf:"binary_ext"`
}

// MessageConfig contains message popup configuration
type MessageConfig struct {
	Language        string     `koanf:"language"`
	FallbackLang    string     `koanf:"fallback_language"`
	Dir             string     `koanf:"dir"`
	DisplayDuration int        `koanf:"display_duration"` // frames
	BoxPadding      float64    `koanf:"box_padding"`
	TopMargin       float64    `koanf:"top_margin"`
	FontSize        float64    `koanf:"font_size"`
	BoxColor        color.RGBA `koanf:"-"`
	TextColor       color.RGBA `koanf:"-"`
}

// WindowConfig contains desktop window settings
type WindowConfig struct {
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
	Scale  int    `koanf:"scale"`
	Title  string `koanf:"title"`
}

// PersistenceConfig controls where the session is saved.
type PersistenceConfig struct {
	Enabled bool   `koanf:"enabled"`
	AppName string `koanf:"app_name"`
	SaveKey string `koanf:"save_key"`
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	DrawTriggers bool `koanf:"draw_triggers"`
}

// Global configuration instances
var Physics PhysicsConfig
var Collision CollisionConfig
var Player PlayerConfig
var Enemy EnemyConfig
var Platform PlatformConfig
var Trigger TriggerConfig
var Pickup PickupConfig
var Levels LevelsConfig
var Message MessageConfig
var Window WindowConfig
var Persistence PersistenceConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

// Direction constants for facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	Reset()
}

// Reset restores every global to its built-in default.
func Reset() {
	Physics = PhysicsConfig{
		Gravity:      0.75,
		MaxFallSpeed: 10.0,
		MaxRiseSpeed: -10.0,

		LiquidGravityScale: 0.35,
		LiquidDrag:         0.85,
		LiquidMaxFallSpeed: 2.0,

		GroundScanTiles: 32,
	}

	Collision = CollisionConfig{
		CeilingEveryTick: true,
	}

	Player = PlayerConfig{
		Acceleration: 0.6,
		MaxSpeed:     3.0,
		Friction:     0.4,
		JumpSpeed:    8.0,

		DefaultWidth:  12,
		DefaultHeight: 16,

		RespawnInvulnFrames: 60,
	}

	Enemy = EnemyConfig{
		DefaultWidth:  14,
		DefaultHeight: 12,
		DefaultSpeed:  0.5,
		SpeedScale:    0.125,
	}

	Platform = PlatformConfig{
		DefaultSpeed: 30,
		TPS:          60,
	}

	Trigger = TriggerConfig{
		ActionConsumesJump: true,
	}

	Pickup = PickupConfig{
		BookPages:     8,
		RandomCoinMin: 1,
		RandomCoinMax: 10,
		RandomSeed:    0x2545F491,
	}

	Levels = LevelsConfig{
		Dir:        "levels",
		PathFormat: "levels/world%d/level%d.lvlb",
		Start:      "levels/world1/level1.lvlb",
		SourceExt:  ".level",
		BinaryExt:  ".lvlb",
	}

	Message = MessageConfig{
		Language:        "en",
		FallbackLang:    "en",
		Dir:             "messages",
		DisplayDuration: 180,
		BoxPadding:      8,
		TopMargin:       24,
		FontSize:        14,
		BoxColor:        BlackOverlay,
		TextColor:       White,
	}

	Window = WindowConfig{
		Width:  640,
		Height: 360,
		Scale:  2,
		Title:  "jlvl",
	}

	Persistence = PersistenceConfig{
		Enabled: true,
		AppName: "jlvl",
		SaveKey: "session",
	}

	Debug = DebugConfig{}

	Input = defaultInput()
	Audio = defaultAudio()
	Sound = defaultSound()
}
