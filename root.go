package main

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/automoto/jlvl/assets"
	"github.com/automoto/jlvl/backend/ebitenbackend"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/fonts"
	"github.com/automoto/jlvl/scenes"
	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/logging"
	"github.com/automoto/jlvl/shared/messages"
	"github.com/automoto/jlvl/shared/session"
	"github.com/automoto/jlvl/systems"
)

var (
	configFile string
	logFormat  string
)

// runGame is swapped out in tests.
var runGame = ebiten.RunGame

// NewRootCmd creates the jlvl command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jlvl [level]",
		Short: "Play jlvl levels",
		Long: `jlvl plays compiled .lvlb levels, or compiles .level sources on the fly.
Without a level it resumes the saved session, or starts the first level.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.SetDefault("jlvl", version, logFormat)
			if err := cfg.Load(configFile, cmd.Flags()); err != nil {
				return err
			}

			game, err := newGame(args, logger)
			if err != nil {
				errutil.LogError(logger, "could not start", err)
				return err
			}

			ebiten.SetWindowSize(cfg.Window.Width*cfg.Window.Scale, cfg.Window.Height*cfg.Window.Scale)
			ebiten.SetWindowTitle(cfg.Window.Title)
			return runGame(game)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	cmd.Flags().String("lang", cfg.Message.Language, "message language")
	cmd.Flags().Bool("mute", false, "start with audio muted")
	cmd.Flags().Int("scale", cfg.Window.Scale, "window scale")
	cmd.Flags().Bool("no-save", false, "do not load or save the session")
	cmd.Flags().Bool("draw-triggers", false, "outline trigger areas")

	cmd.AddCommand(NewLevelsCmd())
	return cmd
}

func newGame(args []string, logger *slog.Logger) (*Game, error) {
	var store session.Store
	if cfg.Persistence.Enabled {
		m, err := systems.OpenStore()
		if err != nil {
			errutil.LogWarn(logger, "playing without saves", err)
		} else {
			store = m
		}
	}
	sess := systems.LoadSession(store)

	start, err := startLevel(args, sess)
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(os.DirFS("."), assets.FS())
	if err != nil {
		return nil, err
	}
	if err := fonts.LoadDefaults(cfg.Message.FontSize); err != nil {
		return nil, err
	}
	keyboard, err := ebitenbackend.NewKeyboard(cfg.Input)
	if err != nil {
		return nil, err
	}

	scene, err := scenes.NewLevelScene(scenes.LevelSceneConfig{
		Start:    start,
		Load:     scenes.NewLevelLoader(os.DirFS("."), assets.FS()),
		Session:  sess,
		Store:    store,
		Messages: catalog.Lookup(cfg.Message.Language),
		Input:    keyboard,
		Audio:    ebitenbackend.NewAudio(),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("level loaded", "path", start, "lang", cfg.Message.Language)

	return &Game{
		scene:    scene,
		renderer: ebitenbackend.NewRenderer(fonts.Regular.Get()),
	}, nil
}

// startLevel picks the level named on the command line, then the saved
// session's level, then the configured first level. Level paths are
// slash-separated and relative to the working directory.
func startLevel(args []string, sess *session.Session) (string, error) {
	if len(args) == 0 {
		if sess.Level != "" {
			return sess.Level, nil
		}
		return cfg.Levels.Start, nil
	}

	p := args[0]
	if filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return "", oops.In("main").Wrapf(err, "working directory")
		}
		rel, err := filepath.Rel(wd, p)
		if err != nil {
			return "", oops.In("main").With("level", p).Wrapf(err, "level path")
		}
		p = rel
	}
	p = filepath.ToSlash(filepath.Clean(p))
	if !fs.ValidPath(p) {
		return "", oops.In("main").With("level", args[0]).Errorf("level %s must be inside the working directory", args[0])
	}
	return p, nil
}

// loadCatalog reads message catalogs from the first filesystem that has
// any.
func loadCatalog(fss ...fs.FS) (*messages.Catalog, error) {
	var err error
	for _, fsys := range fss {
		var c *messages.Catalog
		c, err = messages.LoadCatalog(fsys, cfg.Message.Dir, cfg.Message.FallbackLang)
		if err == nil {
			return c, nil
		}
	}
	return nil, err
}
