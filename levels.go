package main

import (
	"os"

	"github.com/spf13/cobra"

	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/leveldata"
)

// NewLevelsCmd lists the compiled levels under the configured level
// directory.
func NewLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List compiled levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Load(configFile, nil); err != nil {
				return err
			}
			levels, names, err := leveldata.LoadAllLevels(os.DirFS("."), cfg.Levels.Dir)
			if err != nil {
				return err
			}
			for _, name := range names {
				l := levels[name]
				cmd.Printf("%-16s %3dx%-3d %2d entities %2d triggers\n",
					name, l.Cols(), l.Rows(), len(l.Entities), len(l.Triggers))
			}
			return nil
		},
	}
}
