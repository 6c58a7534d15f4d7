package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spotigrab/internal/loaders"
	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

// NewTagCommand creates the tag command and its batch subcommand
func NewTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [audio-file]",
		Short: "Embed metadata into a single audio file.",
		Long: `Tag embeds metadata into one audio file. Field values come from flags;
missing album and date can be filled from MusicBrainz unless lookups are
disabled. With --tracks-file the record matching the filename is used
instead of flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runTagCommand,
	}

	cmd.Flags().String("artist", "", "Artist name")
	cmd.Flags().String("title", "", "Track title")
	cmd.Flags().String("album", "", "Album name")
	cmd.Flags().String("date", "", "Release date")
	cmd.Flags().String("genre", "", "Genre list, semicolon separated")
	cmd.Flags().String("bpm", "", "Tempo in beats per minute")
	cmd.Flags().String("template", "", "Metadata template ("+strings.Join(metadata.TemplateNames(), ", ")+")")
	cmd.Flags().Bool("no-lookup", false, "Disable MusicBrainz lookups")
	cmd.Flags().String("tracks-file", "", "Track listing to pull the record from")

	cmd.AddCommand(newTagBatchCommand())
	return cmd
}

func runTagCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if template, _ := cmd.Flags().GetString("template"); template != "" {
		cfg.MetadataTemplate = template
	}
	allowLookup := cfg.EnableLookup
	if noLookup, _ := cmd.Flags().GetBool("no-lookup"); noLookup {
		allowLookup = false
	}

	raw, err := tagRecordFor(cmd, path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !container.Embedder.EmbedTrackMetadata(ctx, path, raw, cfg.MetadataTemplate, allowLookup) {
		container.WarningCollector.PrintSummary()
		return fmt.Errorf("failed to tag %s", path)
	}

	container.Logger.Success("Tagged %s", path)
	container.WarningCollector.PrintSummary()
	return nil
}

// tagRecordFor builds the raw track record for a file, either from the
// matching row of a tracks file or from the command flags. When neither
// provides artist and title, the filename is parsed as a fallback.
func tagRecordFor(cmd *cobra.Command, path string) (shared.RawTrack, error) {
	if tracksFile, _ := cmd.Flags().GetString("tracks-file"); tracksFile != "" {
		tracks, err := loaders.LoadTracks(tracksFile)
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, track := range tracks {
			artist := track.First("artist", "Artist Name(s)")
			title := track.First("track", "title", "Track Name")
			key := shared.SanitizeFileName(fmt.Sprintf("%s - %s", artist, title))
			if strings.EqualFold(key, base) {
				return track, nil
			}
		}
		return nil, fmt.Errorf("no record in %s matches %s", tracksFile, base)
	}

	raw := shared.RawTrack{}
	for flag, key := range map[string]string{
		"artist": "artist",
		"title":  "track",
		"album":  "album",
		"date":   "release_date",
		"genre":  "genres",
		"bpm":    "tempo",
	} {
		if value, _ := cmd.Flags().GetString(flag); value != "" {
			raw[key] = value
		}
	}

	if raw["artist"] == "" || raw["track"] == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if idx := strings.Index(base, " - "); idx > 0 {
			if raw["artist"] == "" {
				raw["artist"] = strings.TrimSpace(base[:idx])
			}
			if raw["track"] == "" {
				raw["track"] = strings.TrimSpace(base[idx+len(" - "):])
			}
		}
	}
	return raw, nil
}

// newTagBatchCommand creates the batch retagging subcommand
func newTagBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [directory]",
		Short: "Retag every audio file in a directory from its filename.",
		Long: `Batch walks a directory and tags every supported audio file whose name
follows the "Artist - Title" pattern. Only the filename is used: no
network lookups, basic template.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, container, err := initConfigAndServices(cmd)
			if err != nil {
				return err
			}

			stats := container.Embedder.EmbedDirectory(context.Background(), args[0])
			container.WarningCollector.PrintSummary()

			shared.ColorInfo.Printf("📊 Tagged %d, skipped %d, failed %d\n",
				stats.TaggedCount, stats.SkippedCount, stats.FailedCount)
			if stats.FailedCount > 0 {
				return fmt.Errorf("%d files failed to tag", stats.FailedCount)
			}
			return nil
		},
	}
}
