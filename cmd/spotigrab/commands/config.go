package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"spotigrab/internal/config"
	"spotigrab/internal/shared"
)

// NewConfigCommand creates the config command and its init subcommand
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := initConfigAndServices(cmd)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			if shared.FileExists(configFile) {
				return fmt.Errorf("%s already exists", configFile)
			}
			if err := config.SaveConfig(configFile, config.DefaultConfig()); err != nil {
				return err
			}
			shared.ColorSuccess.Printf("✅ Wrote default configuration to %s\n", configFile)
			return nil
		},
	})

	return cmd
}
