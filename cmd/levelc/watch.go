package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/automoto/jlvl/shared/errutil"
	"github.com/automoto/jlvl/shared/logging"
)

// watchFile recompiles in to out on every write until ctx is done. The
// directory is watched so editors that replace the file on save still
// trigger a rebuild.
func watchFile(ctx context.Context, cmd *cobra.Command, in, out string) error {
	logger := logging.Setup("levelc", version, "text", cmd.ErrOrStderr())

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return oops.In("levelc").Wrapf(err, "start watcher")
	}
	defer w.Close()

	target := filepath.Clean(in)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return oops.In("levelc").With("path", in).Wrapf(err, "watch %s", in)
	}
	logger.Info("watching", "input", in, "output", out)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := compileFile(in, out); err != nil {
				report(cmd.ErrOrStderr(), err)
				continue
			}
			logger.Info("recompiled", "output", out)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errutil.LogWarn(logger, "watcher error", err)
		}
	}
}
