package systems

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/levelcompiler"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/session"
	"github.com/automoto/jlvl/systems/factory"
	"github.com/automoto/jlvl/tags"
)

const meadow = `header { width = 12 height = 6 tile_width = 16 tile_height = 16 gravity = 0.5 }
layers {
  layer {
    collision = true
    tiles = [
      "............",
      "............",
      "............",
      "#...........",
      "#.....^.....",
      "############",
    ]
  }
}
entities {
  player_start { top = 3 left = 2 }
  enemy slime { top = 4 left = 9 range_min = 8 range_max = 10 speed = 8 }
}
triggers {
  message    { top = 4 left = 2 text_id = "welcome" }
  message    { top = 4 left = 3 text_id = "jump_hint" mode = action }
  pickup     { top = 4 left = 4 pickup = coin amount = 3 }
  level_exit { top = 4 left = 11 target = "meadow" level = 2 }
}
`

const lift = `header { width = 10 height = 6 tile_width = 16 tile_height = 16 }
layers {
  layer {
    collision = true
    tiles = [ "..........", "..........", "..........", "..........", "..........", "##########" ]
  }
}
entities {
  player_start { top = 1 left = 3 }
  platform moving { top = 3 left = 2 range_min = 2 range_max = 6 size = 2 speed = 60 }
}
`

const levelPath = "levels/world1/level1.lvlb"

type fakeInput struct {
	state backend.InputState
}

func (f *fakeInput) Poll() backend.InputState { return f.state }

type fakeAudio struct {
	music []uint8
	sfx   []cfg.SoundID
	stops int
}

func (a *fakeAudio) PlayMusic(bg uint8)        { a.music = append(a.music, bg) }
func (a *fakeAudio) PlaySFX(id cfg.SoundID)    { a.sfx = append(a.sfx, id) }
func (a *fakeAudio) Stop()                     { a.stops++ }
func (a *fakeAudio) played(id cfg.SoundID) int { return count(a.sfx, id) }

type fakeRenderer struct {
	cleared  []uint8
	tiles    int
	entities []levelformat.EntityKind
	rects    int
	panels   int
	texts    []string
}

func (r *fakeRenderer) ScreenSize() (int, int) { return 320, 180 }
func (r *fakeRenderer) Clear(bg uint8)         { r.cleared = append(r.cleared, bg) }
func (r *fakeRenderer) DrawTile(_, _, _, _ float64, _ levelformat.TileKind) {
	r.tiles++
}
func (r *fakeRenderer) DrawEntity(_, _, _, _ float64, kind levelformat.EntityKind) {
	r.entities = append(r.entities, kind)
}
func (r *fakeRenderer) DrawRect(_, _, _, _ float64, _ color.Color) { r.rects++ }
func (r *fakeRenderer) MeasureText(s string) (float64, float64) {
	return float64(len(s) * 7), 12
}
func (r *fakeRenderer) DrawText(s string, _, _ float64, _ color.Color) {
	r.texts = append(r.texts, s)
}
func (r *fakeRenderer) DrawPanel(_, _, _, _ float64, _ color.Color) { r.panels++ }

type memStore struct {
	items map[string][]byte
}

func (m *memStore) LoadItem(key string) ([]byte, error) { return m.items[key], nil }
func (m *memStore) SaveItem(key string, data []byte) error {
	m.items[key] = data
	return nil
}

type lookup map[uint16]string

func (l lookup) Message(id uint16) (string, bool) {
	s, ok := l[id]
	return s, ok
}

type game struct {
	world    donburi.World
	pipeline *Pipeline
	input    *fakeInput
	audio    *fakeAudio
	store    *memStore
	sess     *session.Session
}

func newGame(t *testing.T, text string) *game {
	t.Helper()
	t.Cleanup(cfg.Reset)

	b, err := levelcompiler.CompileBytes(text)
	require.NoError(t, err)
	level, err := leveldata.LoadBytes(b)
	require.NoError(t, err)

	g := &game{
		world: donburi.NewWorld(),
		input: &fakeInput{},
		audio: &fakeAudio{},
		store: &memStore{items: map[string][]byte{}},
		sess:  session.New(1),
	}
	factory.SpawnLevel(g.world, level, levelPath, g.sess, lookup{1: "Welcome!", 2: "Press jump."})
	g.pipeline = NewLevelPipeline(g.input, g.audio, g.store)
	return g
}

func (g *game) tick(n int) {
	for i := 0; i < n; i++ {
		g.pipeline.Update(g.world)
	}
}

func (g *game) level() *components.LevelData {
	entry, _ := components.Level.First(g.world)
	return components.Level.Get(entry)
}

func (g *game) message() *components.MessageStateData {
	entry, _ := components.Level.First(g.world)
	return components.MessageState.Get(entry)
}

func (g *game) player() (*components.ObjectData, *components.PhysicsData, *components.PlayerData) {
	e, _ := tags.Player.First(g.world)
	return components.Object.Get(e), components.Physics.Get(e), components.Player.Get(e)
}

// place moves the player so its feet rest on the floor in column col.
func (g *game) place(col int) {
	obj, _, _ := g.player()
	obj.MoveTo(gamemath.Body{X: float64(col)*16 + 8, Y: 80 - obj.H/2, HalfW: obj.W / 2, HalfH: obj.H / 2})
}

func count[T comparable](s []T, v T) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}

func TestSpawnLevel(t *testing.T) {
	g := newGame(t, meadow)

	obj, physics, player := g.player()
	assert.Equal(t, 34.0, obj.X)
	assert.Equal(t, 48.0, obj.Y)
	assert.Equal(t, 1.0, physics.GravityMult)
	assert.Equal(t, cfg.DirectionRight, player.Direction)

	e, ok := tags.Enemy.First(g.world)
	require.True(t, ok)
	enemy := components.Enemy.Get(e)
	assert.Equal(t, 128.0, enemy.PatrolLeft)
	assert.Equal(t, 176.0, enemy.PatrolRight)
	assert.Equal(t, 1.0, enemy.PatrolSpeed)
	eobj := components.Object.Get(e)
	assert.Equal(t, 80.0, eobj.Y+eobj.H, "dropped onto the floor")

	assert.Len(t, g.level().Armed, 4)
	assert.Equal(t, levelPath, g.sess.Level)
}

func TestPlayerLandsAndSeesMessage(t *testing.T) {
	g := newGame(t, meadow)
	g.tick(30)

	obj, physics, _ := g.player()
	assert.True(t, physics.OnGround)
	assert.Equal(t, 80.0, obj.Y+obj.H)
	assert.Equal(t, []uint8{0}, g.audio.music)
	assert.Equal(t, 1, g.audio.played(cfg.SoundLand))

	msg := g.message()
	assert.Equal(t, "Welcome!", msg.Text)
	assert.Equal(t, 1, g.audio.played(cfg.SoundMessage))

	r := &fakeRenderer{}
	DrawMessage(g.world, r)
	assert.Equal(t, 1, r.panels)
	assert.Equal(t, []string{"Welcome!"}, r.texts)

	g.tick(cfg.Message.DisplayDuration)
	assert.Empty(t, g.message().Text)
	assert.Equal(t, 1, g.audio.played(cfg.SoundMessage), "auto message fires once per visit")
}

func TestPickupThenSpikes(t *testing.T) {
	g := newGame(t, meadow)
	g.tick(30)

	g.input.state.Right = true
	for i := 0; i < 60 && g.sess.Coins == 0; i++ {
		g.tick(1)
	}
	assert.Equal(t, uint32(3), g.sess.Coins)
	assert.True(t, g.sess.IsCollected(levelPath, 2))

	g.tick(1)
	saved, err := session.Load(g.store, cfg.Persistence.SaveKey)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint32(3), saved.Coins)

	_, _, player := g.player()
	for i := 0; i < 60 && player.Respawns == 0; i++ {
		g.tick(1)
	}
	require.Equal(t, 1, player.Respawns)
	assert.Equal(t, 1, g.audio.played(cfg.SoundHurt))
	assert.Equal(t, cfg.Player.RespawnInvulnFrames, player.InvulnFrames)

	obj, _, _ := g.player()
	assert.InDelta(t, 40.0, obj.X+obj.W/2, 1e-9, "back at the spawn point")
	assert.Equal(t, uint32(3), g.sess.Coins, "pickups stay collected")
}

func TestEnemyPatrolsItsRange(t *testing.T) {
	g := newGame(t, meadow)
	e, _ := tags.Enemy.First(g.world)
	obj := components.Object.Get(e)

	minX, maxRight := obj.X, obj.X+obj.W
	for i := 0; i < 80; i++ {
		g.tick(1)
		minX = min(minX, obj.X)
		maxRight = max(maxRight, obj.X+obj.W)
		assert.Equal(t, 80.0, obj.Y+obj.H)
	}
	assert.InDelta(t, 128.0, minX, 1.0)
	assert.InDelta(t, 176.0, maxRight, 1.0)
}

func TestLevelExitSetsPending(t *testing.T) {
	g := newGame(t, meadow)
	g.place(11)
	g.tick(1)

	pending := g.level().Pending
	require.NotNil(t, pending)
	assert.Equal(t, "levels/world1/level2.lvlb", pending.Path)
	assert.Equal(t, 1, g.audio.played(cfg.SoundExit))

	g.tick(5)
	assert.Equal(t, 1, g.audio.played(cfg.SoundExit))
}

func TestActionMessageCancelsJump(t *testing.T) {
	g := newGame(t, meadow)
	g.tick(30)
	g.place(3)
	g.tick(1)

	g.input.state = backend.InputState{Jump: true, Action: true}
	g.tick(1)
	_, physics, _ := g.player()
	assert.True(t, physics.OnGround, "jump suppressed by the message")
	assert.Equal(t, "Press jump.", g.message().Text)

	g.input.state = backend.InputState{}
	g.tick(1)
	g.input.state = backend.InputState{Jump: true}
	g.tick(1)
	assert.False(t, physics.OnGround)
	assert.Less(t, physics.SpeedY, 0.0)
	assert.Equal(t, 1, g.audio.played(cfg.SoundJump))
}

func TestPlatformCarriesRider(t *testing.T) {
	g := newGame(t, lift)
	g.tick(20)

	obj, physics, _ := g.player()
	pe, _ := tags.Platform.First(g.world)
	platform := components.Object.Get(pe)

	require.True(t, physics.OnGround)
	require.NotNil(t, physics.Riding)
	assert.Equal(t, pe.Entity(), physics.Riding.Entity())
	assert.InDelta(t, platform.Y, obj.Y+obj.H, 1e-9)

	offset := obj.X - platform.X
	startX := platform.X
	g.tick(30)
	assert.Greater(t, platform.X, startX)
	assert.InDelta(t, offset, obj.X-platform.X, 1e-6)
	assert.InDelta(t, platform.Y, obj.Y+obj.H, 1e-9)
}

func TestMutedAudio(t *testing.T) {
	g := newGame(t, meadow)
	g.tick(1)
	require.Len(t, g.audio.music, 1)

	cfg.Audio.Muted = true
	g.tick(30)
	assert.Equal(t, 1, g.audio.stops)
	assert.Empty(t, g.audio.sfx)
}

func TestDraw(t *testing.T) {
	g := newGame(t, meadow)
	cfg.Debug.DrawTriggers = true

	r := &fakeRenderer{}
	g.pipeline.Draw(g.world, r)

	assert.Equal(t, []uint8{0}, r.cleared)
	assert.Equal(t, 15, r.tiles)
	assert.ElementsMatch(t, []levelformat.EntityKind{levelformat.EntityPlayer, levelformat.EntitySlime}, r.entities)
	assert.Equal(t, 4, r.rects)
	assert.Equal(t, []string{"Coins 0  Keys 0  Books 0"}, r.texts)
}

func TestLoadSession(t *testing.T) {
	t.Cleanup(cfg.Reset)
	store := &memStore{items: map[string][]byte{}}

	fresh := LoadSession(store)
	assert.Equal(t, session.NewXorshift32(cfg.Pickup.RandomSeed), fresh.RNG)

	fresh.AddCoins(4)
	SaveSession(store, fresh)
	assert.Equal(t, uint32(4), LoadSession(store).Coins)

	store.items[cfg.Persistence.SaveKey] = []byte("{broken")
	assert.Zero(t, LoadSession(store).Coins)

	cfg.Persistence.Enabled = false
	SaveSession(store, fresh)
	assert.Equal(t, []byte("{broken"), store.items[cfg.Persistence.SaveKey])
	assert.Zero(t, LoadSession(nil).Coins)
}
