package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spotigrab/internal/loaders"
	"spotigrab/internal/services"
	"spotigrab/internal/shared"
)

// NewEnrichCommand creates the enrich command
func NewEnrichCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich [tracks-file]",
		Short: "Fill missing album and date fields from MusicBrainz.",
		Long: `Enrich loads a track listing, resolves records that are missing album
or release date against MusicBrainz and writes the completed listing as
a JSON tracks file.`,
		Args: cobra.ExactArgs(1),
		RunE: runEnrichCommand,
	}

	cmd.Flags().String("out", "", "Output file (default: input with .json extension)")
	cmd.Flags().Bool("merge-dir", false, "Treat the argument as a directory of Exportify CSVs and merge them")

	return cmd
}

func runEnrichCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}
	if !cfg.EnableLookup {
		return fmt.Errorf("musicbrainz lookups are disabled in the configuration")
	}

	source := args[0]
	var tracks []shared.RawTrack
	if mergeDir, _ := cmd.Flags().GetBool("merge-dir"); mergeDir {
		tracks, err = loaders.MergeExportifyDir(source)
	} else {
		tracks, err = loaders.LoadTracks(source)
	}
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		container.Logger.Warning("No tracks found in %s", source)
		return nil
	}

	container.Logger.Info("🔍 Resolving %d tracks against MusicBrainz", len(tracks))
	lookup := services.NewLookupAdapter(container.MusicBrainz)
	enriched := loaders.EnrichTracks(context.Background(), tracks, lookup, shared.IsTTY())
	container.Logger.Success("Enriched %d tracks", enriched)

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		ext := filepath.Ext(source)
		outPath = strings.TrimSuffix(source, ext) + ".json"
	}
	if err := writeTracksFile(outPath, tracks); err != nil {
		return err
	}
	container.Logger.Success("Wrote %s", outPath)

	container.WarningCollector.PrintSummary()
	return nil
}

func writeTracksFile(path string, tracks []shared.RawTrack) error {
	doc := struct {
		Tracks []shared.RawTrack `json:"tracks"`
	}{Tracks: tracks}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tracks: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tracks file: %w", err)
	}
	return nil
}
