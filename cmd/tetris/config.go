package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var flagConfigEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the built-in default configuration, ready to be saved as
~/.tetris/configs/tetris.yaml or ./configs/tetris.yaml and edited.

With --effective, print the configuration a new game would use after the
search order and --difficulty are applied.

Examples:
  tetris config > ~/.tetris/configs/tetris.yaml
  tetris config --effective --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigEffective, "effective", false, "Print the resolved configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagConfigEffective {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	if flagConfig != "" {
		// Surface a broken custom file instead of silently falling back.
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}
	out, err := yaml.Marshal(tetris.LoadConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
