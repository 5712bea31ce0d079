package leveldata

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/samber/oops"

	"github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/levelformat"
)

// LoadBytes decodes and validates a compiled level. Structural problems
// come back with the levelformat codes; a level without exactly one player
// fails with LEVEL_NO_PLAYER or LEVEL_MULTIPLE_PLAYERS.
func LoadBytes(b []byte) (*Level, error) {
	f, err := levelformat.Decode(b)
	if err != nil {
		return nil, err
	}

	playerIndex := -1
	for i, e := range f.Entities {
		if e.Kind != levelformat.EntityPlayer {
			continue
		}
		if playerIndex >= 0 {
			return nil, oops.Code(CodeMultiplePlayers).
				In("leveldata").
				With("first", playerIndex).
				With("second", i).
				Errorf("level has more than one player entity")
		}
		playerIndex = i
	}
	if playerIndex < 0 {
		return nil, oops.Code(CodeNoPlayer).
			In("leveldata").
			With("entities", len(f.Entities)).
			Errorf("level has no player entity")
	}

	l := &Level{
		Header:      f.Header,
		Layers:      f.Layers,
		Entities:    f.Entities,
		Triggers:    f.Triggers,
		PlayerIndex: playerIndex,
		tiles:       f.Tiles,
		actionLayer: actionLayer(int(f.Header.LayerCount)),
	}
	l.Gravity = float64(f.Header.GravityFixed) / 256 * float64(f.Header.Gravity) / 100
	l.Spawn = spawnPoint(l)
	l.FloorY = floorY(l)
	return l, nil
}

// LoadFile reads and loads a compiled level from disk.
func LoadFile(name string) (*Level, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, oops.Code(CodeRead).In("leveldata").With("path", name).Wrapf(err, "read level %s", name)
	}
	return loadNamed(b, name)
}

// LoadFS reads and loads a compiled level from fsys, so callers can pass
// embed.FS or os.DirFS.
func LoadFS(fsys fs.FS, name string) (*Level, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, oops.Code(CodeRead).In("leveldata").With("path", name).Wrapf(err, "read level %s", name)
	}
	return loadNamed(b, name)
}

func loadNamed(b []byte, name string) (*Level, error) {
	l, err := LoadBytes(b)
	if err != nil {
		return nil, oops.In("leveldata").With("path", name).Wrapf(err, "load level %s", name)
	}
	return l, nil
}

// LoadAllLevels finds every compiled level under dir within fsys and
// returns them keyed by their path relative to dir without the extension
// (e.g. "world1/level2"), plus the sorted list of keys.
func LoadAllLevels(fsys fs.FS, dir string) (map[string]*Level, []string, error) {
	ext := config.Levels.BinaryExt
	var paths []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ext) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, oops.Code(CodeRead).In("leveldata").With("dir", dir).Wrapf(err, "walk %s", dir)
	}
	if len(paths) == 0 {
		return nil, nil, oops.Code(CodeRead).In("leveldata").With("dir", dir).Errorf("no %s files found in %s", ext, dir)
	}

	levels := make(map[string]*Level, len(paths))
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		l, err := LoadFS(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, strings.TrimSuffix(dir, "/")+"/"), ext)
		levels[name] = l
		names = append(names, name)
	}

	sort.Strings(names)
	return levels, names, nil
}

// LevelPath builds the file path of a level-exit destination.
func LevelPath(world, level uint16) string {
	return path.Clean(fmt.Sprintf(config.Levels.PathFormat, world, level))
}

// actionLayer is the only layer consulted for collision and hazards.
func actionLayer(layers int) int {
	switch {
	case layers == 0:
		return -1
	case layers == 1:
		return 0
	default:
		return 1
	}
}

// spawnPoint centres the player on its tile horizontally and rests its
// feet on the bottom of the tile.
func spawnPoint(l *Level) Point {
	p := l.Player()
	halfH := float64(p.Height) / 2
	if p.Height == 0 {
		halfH = float64(config.Player.DefaultHeight) / 2
	}
	return Point{
		X: (float64(p.Left) + 0.5) * l.TileWidth(),
		Y: (float64(p.Top)+1)*l.TileHeight() - halfH,
	}
}

func floorY(l *Level) float64 {
	w, h := int(l.Header.Width), int(l.Header.Height)
	if l.actionLayer < 0 || w == 0 || h == 0 || len(l.tiles) != w*h*len(l.Layers) {
		return 0
	}
	for row := h - 1; row >= 0; row-- {
		for col := 0; col < w; col++ {
			if l.TileIDAtLayer(l.actionLayer, col, row) != 0 {
				return float64(row) * l.TileHeight()
			}
		}
	}
	return 0
}
