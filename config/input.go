package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionInteract
	ActionCount // Must be last - used for array sizing
)

var actionNames = map[ActionID]string{
	ActionMoveLeft:  "left",
	ActionMoveRight: "right",
	ActionMoveUp:    "up",
	ActionMoveDown:  "down",
	ActionJump:      "jump",
	ActionInteract:  "action",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// InputConfig holds key bindings by action name. Key names are resolved by
// the active backend, e.g. "ArrowLeft" or "A" for the desktop keyboard.
type InputConfig struct {
	Bindings map[string][]string `koanf:"bindings"`
}

// Keys returns the key names bound to an action.
func (c InputConfig) Keys(a ActionID) []string {
	return c.Bindings[a.String()]
}

// Input is the global input configuration
var Input InputConfig

func defaultInput() InputConfig {
	return InputConfig{
		Bindings: map[string][]string{
			"left":   {"ArrowLeft", "A"},
			"right":  {"ArrowRight", "D"},
			"up":     {"ArrowUp", "W"},
			"down":   {"ArrowDown", "S"},
			"jump":   {"X", "Space"},
			"action": {"Z", "Enter"},
		},
	}
}
