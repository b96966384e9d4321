package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"caselist/internal/cli"
	"caselist/internal/cli/commands"
	"caselist/internal/config"
	"caselist/internal/logging"
)

var version = "dev"

func main() {
	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	rootCmd := &cobra.Command{
		Use:   "caselist",
		Short: "Test case list parser, selection filter and shard runner",
		Long: `Select conformance test cases with trie or flat case lists and wildcard patterns,
split the selection into CI shards and run it in parallel against a test binary.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetVerbose(flags.Verbose)
			return loadConfig(cfg, &flags)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default <project>/"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory")

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, &flags, os.Stdin, os.Stdout)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies the config file and environment on top of the defaults.
// A missing default config file is not an error.
func loadConfig(cfg *config.Config, flags *cli.Flags) error {
	cfg.ProjectPath = flags.ProjectPath

	path := flags.ConfigFile
	explicit := path != ""
	if !explicit {
		path = cfg.GetConfigFilePath()
	}
	if err := cfg.LoadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	} else {
		logging.Debug("loaded config", "file", path)
	}

	return cfg.LoadEnv()
}
