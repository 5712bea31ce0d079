package levelcompiler

import (
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/samber/oops"

	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/levelsource"
)

// CodeTMX is the oops code carried by ImportTMX failures.
const CodeTMX = "TMX_IMPORT"

// Object group names read by ImportTMX.
const (
	GroupPlayerStart = "PlayerStart"
	GroupEnemies     = "Enemies"
	GroupPlatforms   = "Platforms"
	GroupTriggers    = "Triggers"
)

// ImportTMX converts a Tiled map into a level source so it can go through
// the same compiler as hand-written levels. Tile layers become layers in
// file order; a tileset tile's "char" property picks its palette character,
// otherwise local id n maps to tile kind n+1. Object positions are floored
// to the tile grid.
func ImportTMX(fsys fs.FS, path string) (*levelsource.Source, error) {
	errb := oops.Code(CodeTMX).In("levelcompiler").With("path", path)

	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, errb.Wrapf(err, "load TMX %s", path)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, errb.Errorf("map has no tile size")
	}

	im := &tmxImporter{m: levelMap, src: &levelsource.Source{}}
	im.header()
	for _, layer := range levelMap.Layers {
		l, err := im.layer(layer)
		if err != nil {
			return nil, errb.With("layer", layer.Name).Wrap(err)
		}
		im.src.Layers = append(im.src.Layers, l)
	}
	for _, og := range levelMap.ObjectGroups {
		if err := im.objects(og); err != nil {
			return nil, errb.With("group", og.Name).Wrap(err)
		}
	}
	return im.src, nil
}

type tmxImporter struct {
	m   *tiled.Map
	src *levelsource.Source
}

func (im *tmxImporter) header() {
	f := levelsource.Fields{
		"width":       number(float64(im.m.Width)),
		"height":      number(float64(im.m.Height)),
		"tile_width":  number(float64(im.m.TileWidth)),
		"tile_height": number(float64(im.m.TileHeight)),
	}
	for _, p := range mapProperties(im.m) {
		switch p.Name {
		case "gravity", "gravity_scale", "background":
			f[p.Name] = propertyValue(p)
		}
	}
	im.src.Header = levelsource.Header{Fields: f}
}

// mapProperties hides whether the loaded map stores its properties by
// value or by pointer.
func mapProperties(m *tiled.Map) tiled.Properties {
	switch p := any(m.Properties).(type) {
	case tiled.Properties:
		return p
	case *tiled.Properties:
		if p != nil {
			return *p
		}
	}
	return nil
}

func (im *tmxImporter) layer(layer *tiled.Layer) (levelsource.Layer, error) {
	w, h := im.m.Width, im.m.Height
	if len(layer.Tiles) != w*h {
		return levelsource.Layer{}, oops.Errorf("layer has %d tiles, map is %dx%d (infinite maps are not supported)", len(layer.Tiles), w, h)
	}

	out := levelsource.Layer{Collision: layer.Properties.GetBool("collision")}
	var row strings.Builder
	for y := 0; y < h; y++ {
		row.Reset()
		for x := 0; x < w; x++ {
			ch, err := tileChar(layer.Tiles[y*w+x])
			if err != nil {
				return out, oops.With("col", x).With("row", y).Wrap(err)
			}
			row.WriteRune(ch)
		}
		out.Rows = append(out.Rows, levelsource.Row{Text: row.String()})
	}
	return out, nil
}

func tileChar(tile *tiled.LayerTile) (rune, error) {
	if tile.IsNil() {
		return '.', nil
	}
	if tsTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
		if s := tsTile.Properties.GetString("char"); s != "" {
			r := []rune(s)
			if len(r) != 1 || !levelsource.IsPaletteChar(r[0]) {
				return 0, oops.Errorf("tile %d has char %q, want one of %q", tile.ID, s, levelsource.Palette)
			}
			return r[0], nil
		}
	}
	kind := levelformat.TileKind(tile.ID + 1)
	if tile.ID >= math.MaxUint8 || !kind.Valid() {
		return 0, oops.Errorf("tile %d has no char property and no default tile kind", tile.ID)
	}
	for ch, k := range TileChars {
		if k == kind {
			return ch, nil
		}
	}
	panic("levelcompiler: tile kind " + kind.String() + " has no palette char")
}

func (im *tmxImporter) objects(og *tiled.ObjectGroup) error {
	for _, o := range og.Objects {
		switch og.Name {
		case GroupPlayerStart:
			im.src.Entities = append(im.src.Entities, levelsource.Entity{
				Block: levelsource.BlockPlayerStart, Fields: im.objectFields(o),
			})
		case GroupEnemies:
			kind := objectClass(o)
			if kind == "" {
				return oops.With("object", o.ID).Errorf("enemy object has no class")
			}
			im.src.Entities = append(im.src.Entities, levelsource.Entity{
				Block: levelsource.BlockEnemy, Kind: kind, Fields: im.objectFields(o),
			})
		case GroupPlatforms:
			kind := objectClass(o)
			if kind == "" {
				kind = "moving"
			}
			f := im.objectFields(o)
			if _, ok := f["size"]; !ok && o.Width > 0 {
				f["size"] = number(math.Max(1, math.Round(o.Width/float64(im.m.TileWidth))))
			}
			im.src.Entities = append(im.src.Entities, levelsource.Entity{
				Block: levelsource.BlockPlatform, Kind: kind, Fields: f,
			})
		case GroupTriggers:
			block := objectClass(o)
			switch block {
			case levelsource.BlockLevelExit, levelsource.BlockMessage, levelsource.BlockPickup:
			default:
				return oops.With("object", o.ID).Errorf("trigger object has class %q, want level_exit, message or pickup", block)
			}
			f := im.objectFields(o)
			if o.Width > 0 {
				f["width"] = number(math.Max(1, math.Ceil(o.Width/float64(im.m.TileWidth))))
			}
			if o.Height > 0 {
				f["height"] = number(math.Max(1, math.Ceil(o.Height/float64(im.m.TileHeight))))
			}
			im.src.Triggers = append(im.src.Triggers, levelsource.Trigger{Block: block, Fields: f})
		}
	}
	return nil
}

// objectFields copies custom properties and sets top/left from the
// object's pixel position.
func (im *tmxImporter) objectFields(o *tiled.Object) levelsource.Fields {
	f := levelsource.Fields{}
	for _, p := range o.Properties {
		f[p.Name] = propertyValue(p)
	}
	f["left"] = number(math.Floor(o.X / float64(im.m.TileWidth)))
	f["top"] = number(math.Floor(o.Y / float64(im.m.TileHeight)))
	return f
}

func objectClass(o *tiled.Object) string {
	if o.Class != "" {
		return o.Class
	}
	return o.Type //nolint:staticcheck // older TMX files use type=
}

func propertyValue(p *tiled.Property) levelsource.Value {
	switch p.Type {
	case "int", "float":
		if n, err := strconv.ParseFloat(p.Value, 64); err == nil {
			return number(n)
		}
	case "bool":
		return levelsource.Value{Kind: levelsource.KindBool, Bool: p.Value == "true"}
	}
	return levelsource.Value{Kind: levelsource.KindString, Text: p.Value}
}

func number(n float64) levelsource.Value {
	return levelsource.Value{Kind: levelsource.KindNumber, Number: n}
}
