package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/config"
)

var (
	flagConfigDefault bool
	flagConfigSave    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, PARTY_* environment
variables and command-line flags are applied.

Examples:
  party config
  party config --default
  party config --save ~/.party/configs/party.yaml
  PARTY_TIMING__FLASH_CHANCE=0.5 party config`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default configuration")
	configCmd.Flags().StringVar(&flagConfigSave, "save", "", "Write the effective configuration to a file")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if flagConfigDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source := loadConfig(cmd)
	validate(cfg)

	if flagConfigSave != "" {
		path, err := config.ExpandHome(flagConfigSave)
		if err != nil {
			fatalf("%v", err)
		}
		if err := cfg.Save(path); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Configuration saved to %s\n", path)
		return
	}

	data, err := cfg.Marshal()
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
