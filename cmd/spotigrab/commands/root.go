package commands

import (
	"os"

	"github.com/spf13/cobra"

	"spotigrab/internal/config"
	"spotigrab/internal/services"
	"spotigrab/internal/shared"
)

const defaultConfigFile = "config.json"

// NewRootCommand builds the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spotigrab",
		Short: "Download Spotify library exports and tag the audio files",
		Long: `spotigrab downloads the tracks of a Spotify library export through
yt-dlp and embeds metadata from the export, optionally enriched with
MusicBrainz lookups.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("output", "", "Output directory (overrides config)")

	rootCmd.AddCommand(NewDownloadCommand())
	rootCmd.AddCommand(NewTagCommand())
	rootCmd.AddCommand(NewEnrichCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the CLI.
func Execute() {
	shared.InitializeColors()
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfigAndServices loads configuration, applies flag overrides and
// builds the service container. Used by every subcommand.
func initConfigAndServices(cmd *cobra.Command) (*config.Config, *services.ServiceContainer, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if err := config.EnsureConfigExists(configFile); err != nil {
		return nil, nil, err
	}

	cfg := config.DefaultConfig()
	if err := config.LoadConfig(configFile, cfg); err != nil {
		return nil, nil, err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	container := services.NewServiceContainer(cfg)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		container.Logger.SetDebugMode(true)
		container.MusicBrainz.SetDebug(true)
	}
	return cfg, container, nil
}
