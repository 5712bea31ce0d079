package ebitenbackend

import (
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/samber/oops"

	"github.com/automoto/jlvl/backend"
	cfg "github.com/automoto/jlvl/config"
)

// CodeBinding is the oops code for key bindings that name no key.
const CodeBinding = "INPUT_BINDING"

// Keyboard polls the keys bound to each action.
type Keyboard struct {
	keys [cfg.ActionCount][]ebiten.Key
}

// NewKeyboard resolves the configured key names, ignoring case.
func NewKeyboard(bindings cfg.InputConfig) (*Keyboard, error) {
	byName := map[string]ebiten.Key{}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		byName[strings.ToLower(k.String())] = k
	}

	kb := &Keyboard{}
	var unknown []string
	for a := cfg.ActionNone + 1; a < cfg.ActionCount; a++ {
		for _, name := range bindings.Keys(a) {
			key, ok := byName[strings.ToLower(name)]
			if !ok {
				unknown = append(unknown, a.String()+"="+name)
				continue
			}
			kb.keys[a] = append(kb.keys[a], key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, oops.Code(CodeBinding).In("input").With("bindings", unknown).Errorf("unknown keys: %s", strings.Join(unknown, ", "))
	}
	return kb, nil
}

func (kb *Keyboard) Poll() backend.InputState {
	held := func(a cfg.ActionID) bool {
		for _, k := range kb.keys[a] {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return backend.InputState{
		Left:   held(cfg.ActionMoveLeft),
		Right:  held(cfg.ActionMoveRight),
		Up:     held(cfg.ActionMoveUp),
		Down:   held(cfg.ActionMoveDown),
		Jump:   held(cfg.ActionJump),
		Action: held(cfg.ActionInteract),
	}
}
