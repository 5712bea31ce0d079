package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/samber/oops"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Mono    FontName = "mono"
)

func (f FontName) Get() font.Face {
	return getFont(f)
}

var (
	fonts = map[FontName]font.Face{}
)

func LoadFont(name FontName, ttf []byte) error {
	return LoadFontWithSize(name, ttf, 10)
}

func LoadFontWithSize(name FontName, ttf []byte, size float64) error {
	fontData, err := truetype.Parse(ttf)
	if err != nil {
		return oops.In("fonts").With("font", name).Wrapf(err, "parse font %s", name)
	}
	fonts[name] = truetype.NewFace(fontData, &truetype.Options{Size: size})
	return nil
}

// LoadDefaults loads the bundled Go fonts: Regular for messages and Mono for
// the HUD.
func LoadDefaults(size float64) error {
	if err := LoadFontWithSize(Regular, goregular.TTF, size); err != nil {
		return err
	}
	return LoadFontWithSize(Mono, gomono.TTF, size*0.75)
}

func getFont(name FontName) font.Face {
	f, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	return f
}
