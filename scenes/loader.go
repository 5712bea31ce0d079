package scenes

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/oops"

	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/levelcompiler"
	"github.com/automoto/jlvl/shared/leveldata"
)

// LevelLoader loads the level stored at a slash-separated path.
type LevelLoader func(name string) (*leveldata.Level, error)

// NewLevelLoader tries each filesystem in order until one has the level.
// When a compiled level is missing, the level source with the same base
// name is compiled instead. A level that exists but fails to load stops
// the search.
func NewLevelLoader(fss ...fs.FS) LevelLoader {
	return func(name string) (*leveldata.Level, error) {
		err := oops.Code(leveldata.CodeRead).In("scenes").With("path", name).Wrapf(fs.ErrNotExist, "level %s", name)
		for _, fsys := range fss {
			var l *leveldata.Level
			l, err = loadFrom(fsys, name)
			if err == nil || !errors.Is(err, fs.ErrNotExist) {
				return l, err
			}
		}
		return nil, err
	}
}

func loadFrom(fsys fs.FS, name string) (*leveldata.Level, error) {
	if strings.HasSuffix(name, cfg.Levels.SourceExt) {
		return compileFrom(fsys, name)
	}

	l, err := leveldata.LoadFS(fsys, name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return l, err
	}

	src := strings.TrimSuffix(name, path.Ext(name)) + cfg.Levels.SourceExt
	if _, statErr := fs.Stat(fsys, src); statErr != nil {
		return nil, err
	}
	return compileFrom(fsys, src)
}

func compileFrom(fsys fs.FS, name string) (*leveldata.Level, error) {
	text, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, oops.Code(leveldata.CodeRead).In("scenes").With("path", name).Wrapf(err, "read level source %s", name)
	}
	b, err := levelcompiler.CompileBytes(string(text))
	if err != nil {
		return nil, oops.In("scenes").With("path", name).Wrapf(err, "compile %s", name)
	}
	l, err := leveldata.LoadBytes(b)
	if err != nil {
		return nil, oops.In("scenes").With("path", name).Wrapf(err, "load compiled %s", name)
	}
	return l, nil
}
