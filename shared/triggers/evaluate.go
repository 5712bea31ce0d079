// Package triggers evaluates a level's trigger records against the
// player's bounding box once per tick.
package triggers

import (
	"fmt"

	"github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/session"
)

// MessageLookup resolves message text ids for the active language.
type MessageLookup interface {
	Message(id uint16) (string, bool)
}

// Input is the subset of the tick's input that activates triggers.
type Input struct {
	Up, Down, Left, Right bool
	Action                bool
}

// Context is everything one evaluation reads and mutates.
type Context struct {
	Level     *leveldata.Level
	Armed     Armed
	Box       gamemath.Rect
	Input     Input
	Session   *session.Session
	LevelPath string
	Messages  MessageLookup
}

// Message is a message trigger that fired this tick.
type Message struct {
	TriggerID uint16
	TextID    uint16
	Text      string
	Found     bool
}

// Transition is a pending level change raised by a level exit.
type Transition struct {
	World uint16
	Level uint16
	Path  string
}

// PickupEvent describes one applied pickup. Kind is what the record asked
// for; Applied is what was granted, which differs for random pickups.
type PickupEvent struct {
	TriggerID uint16
	Kind      levelformat.PickupKind
	Applied   levelformat.PickupKind
	Value     uint32
	IconID    uint16
}

// Result collects the effects raised by one evaluation.
type Result struct {
	Messages       []Message
	ActionConsumed bool
	Transition     *Transition
	Pickups        []PickupEvent
}

// Evaluate walks the triggers in file order. The first level exit that
// fires ends the walk.
func Evaluate(ctx Context) Result {
	var res Result
	for _, t := range ctx.Level.Triggers {
		overlapping := ctx.Level.TriggerRect(t).Overlaps(ctx.Box)
		switch t.Kind {
		case levelformat.TriggerMessage:
			evalMessage(&ctx, t, overlapping, &res)
		case levelformat.TriggerLevelExit:
			if evalExit(&ctx, t, overlapping, &res) {
				return res
			}
		case levelformat.TriggerPickup:
			evalPickup(&ctx, t, overlapping, &res)
		}
	}
	return res
}

func evalMessage(ctx *Context, t levelformat.Trigger, overlapping bool, res *Result) {
	if !overlapping {
		ctx.Armed.Set(t.ID, false)
		return
	}
	if ctx.Armed.Get(t.ID) || !modeActive(t.Mode, ctx.Input) {
		return
	}
	ctx.Armed.Set(t.ID, true)

	msg := Message{TriggerID: t.ID, TextID: t.P0}
	if ctx.Messages != nil {
		msg.Text, msg.Found = ctx.Messages.Message(t.P0)
	}
	res.Messages = append(res.Messages, msg)
	if t.Mode != levelformat.ModeAuto {
		res.ActionConsumed = true
	}
}

func evalExit(ctx *Context, t levelformat.Trigger, overlapping bool, res *Result) bool {
	if !overlapping {
		ctx.Armed.Set(t.ID, false)
		return false
	}
	if ctx.Armed.Get(t.ID) || !modeActive(t.Mode, ctx.Input) {
		return false
	}
	ctx.Armed.Set(t.ID, true)
	res.Transition = &Transition{
		World: t.P0,
		Level: t.P1,
		Path:  leveldata.LevelPath(t.P0, t.P1),
	}
	return true
}

func evalPickup(ctx *Context, t levelformat.Trigger, overlapping bool, res *Result) {
	if !overlapping || ctx.Armed.Get(t.ID) || !modeActive(t.Mode, ctx.Input) {
		return
	}
	ctx.Armed.Set(t.ID, true)
	ctx.Session.MarkCollected(ctx.LevelPath, t.ID)
	ev := applyPickup(ctx.Session, t)
	res.Pickups = append(res.Pickups, ev)
}

func applyPickup(s *session.Session, t levelformat.Trigger) PickupEvent {
	kind := levelformat.PickupKind(t.P0)
	ev := PickupEvent{TriggerID: t.ID, Kind: kind, Applied: kind, Value: uint32(t.P1), IconID: t.IconID}

	switch kind {
	case levelformat.PickupCoin:
		s.AddCoins(ev.Value)
	case levelformat.PickupKey:
		s.AddKey(t.P1)
	case levelformat.PickupBook:
		s.AddBook(t.P1, config.Pickup.BookPages)
	case levelformat.PickupRandom:
		// Only coins are drawn for now.
		ev.Applied = levelformat.PickupCoin
		ev.Value = s.RNG.Range(config.Pickup.RandomCoinMin, config.Pickup.RandomCoinMax)
		s.AddCoins(ev.Value)
	default:
		panic(fmt.Sprintf("triggers: pickup kind %d on trigger %d", kind, t.ID))
	}
	return ev
}

func modeActive(mode levelformat.TriggerMode, in Input) bool {
	switch mode {
	case levelformat.ModeAuto:
		return true
	case levelformat.ModeAction:
		return in.Action
	case levelformat.ModeUp:
		return in.Up
	case levelformat.ModeDown:
		return in.Down
	case levelformat.ModeLeft:
		return in.Left
	case levelformat.ModeRight:
		return in.Right
	}
	return false
}
