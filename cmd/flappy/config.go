package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagConfigSchema bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the game configuration that 'flappy play' would use, as YAML.
The output can be saved to ~/.flappy/flappy.yaml and edited.

With --schema, prints the JSON Schema of the configuration file instead.

Examples:
  flappy config > ~/.flappy/flappy.yaml
  flappy config --config ./my-flappy.yaml
  flappy config --schema`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigSchema, "schema", false, "Print the JSON Schema of the config file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigSchema {
		schema, err := config.Schema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}
