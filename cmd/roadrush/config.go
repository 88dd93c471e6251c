package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/road-rush/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the search
order (--config, ~/.arcade/configs/roadrush.yaml, ./configs/roadrush.yaml,
built-in defaults) and the --difficulty preset are applied.

The output is valid YAML and can be saved as a starting point:
  roadrush config > ~/.arcade/configs/roadrush.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# difficulty: %s\n", preset)
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
