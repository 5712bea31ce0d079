package systems

import (
	"log/slog"

	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/triggers"
	"github.com/automoto/jlvl/tags"
)

// UpdateTriggers evaluates the level's triggers against the player box and
// applies what they raise: messages, pickups and the pending level exit.
func UpdateTriggers(w donburi.World) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(entry)
	if lvl.Pending != nil {
		return
	}
	player, ok := tags.Player.First(w)
	if !ok {
		return
	}

	input := components.Input.Get(entry)
	sess := components.Session.Get(entry)
	res := triggers.Evaluate(triggers.Context{
		Level: lvl.Level,
		Armed: lvl.Armed,
		Box:   components.Object.Get(player).Box(),
		Input: triggers.Input{
			Up:     input.Pressed(cfg.ActionMoveUp),
			Down:   input.Pressed(cfg.ActionMoveDown),
			Left:   input.Pressed(cfg.ActionMoveLeft),
			Right:  input.Pressed(cfg.ActionMoveRight),
			Action: input.Pressed(cfg.ActionInteract),
		},
		Session:   sess.Session,
		LevelPath: lvl.Path,
		Messages:  lvl.Messages,
	})

	if res.ActionConsumed && cfg.Trigger.ActionConsumesJump {
		input.ActionConsumed = true
	}

	for _, msg := range res.Messages {
		if !msg.Found {
			slog.Warn("message text missing", "text_id", msg.TextID, "trigger", msg.TriggerID, "language", sess.Language)
			continue
		}
		state := components.MessageState.Get(entry)
		state.TextID = msg.TextID
		state.Text = msg.Text
		state.DisplayTimer = cfg.Message.DisplayDuration
		PlaySFX(w, cfg.SoundMessage)
	}

	for _, p := range res.Pickups {
		slog.Debug("pickup", "trigger", p.TriggerID, "kind", p.Kind, "applied", p.Applied, "value", p.Value)
		sess.Dirty = true
		PlaySFX(w, pickupSound(p.Applied))
	}

	if res.Transition != nil {
		slog.Info("level exit", "from", lvl.Path, "to", res.Transition.Path)
		lvl.Pending = res.Transition
		PlaySFX(w, cfg.SoundExit)
	}
}

func pickupSound(kind levelformat.PickupKind) cfg.SoundID {
	switch kind {
	case levelformat.PickupKey:
		return cfg.SoundKey
	case levelformat.PickupBook:
		return cfg.SoundBook
	}
	return cfg.SoundCoin
}
