package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

type options struct {
	watch bool
}

// NewRootCmd creates the levelc command.
func NewRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "levelc <input.level|input.tmx> [output.lvlb]",
		Short: "Compile a level source into a binary level",
		Long: `levelc compiles a text level source, or a Tiled .tmx map, into the
binary level format the game loads. The output defaults to the input
path with a .lvlb extension.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(errors.New("missing input file"))
			}
			in := args[0]
			out := outputPath(in)
			if len(args) == 2 {
				out = args[1]
			}
			if samePath(in, out) {
				return usageError(errors.New("input and output are the same file"))
			}

			err := compileFile(in, out)
			if err != nil && !opts.watch {
				return err
			}
			if err != nil {
				report(cmd.ErrOrStderr(), err)
			} else {
				cmd.Printf("wrote %s\n", out)
			}
			if opts.watch {
				return watchFile(cmd.Context(), cmd, in, out)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "recompile whenever the input changes")
	return cmd
}

// outputPath swaps the input's extension for .lvlb.
func outputPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".lvlb"
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
