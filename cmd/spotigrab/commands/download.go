package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spotigrab/internal/loaders"
	"spotigrab/internal/services"
	"spotigrab/internal/shared"
	"spotigrab/internal/tracker"
)

// NewDownloadCommand creates the download command
func NewDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [tracks-file-or-spotify-url]",
		Short: "Download the tracks of a listing and tag the audio files.",
		Long: `Download reads a track listing (Exportify CSV, JSON tracks file, or a
Spotify playlist/album URL), skips tracks already present in the output
directory and downloads the rest through yt-dlp.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDownloadCommand,
	}

	cmd.Flags().String("template", "", "Metadata template (basic, comprehensive, dj-mix)")
	cmd.Flags().Bool("no-lookup", false, "Disable MusicBrainz lookups")
	cmd.Flags().Bool("no-embed", false, "Download only, skip metadata embedding")
	cmd.Flags().String("format", "", "Audio format to extract (e.g. mp3, opus, m4a)")
	cmd.Flags().Int("parallelism", 0, "Number of parallel downloads")

	return cmd
}

func runDownloadCommand(cmd *cobra.Command, args []string) error {
	cfg, container, err := initConfigAndServices(cmd)
	if err != nil {
		return err
	}

	if !shared.CheckYtDlp() {
		container.Logger.Error("yt-dlp not found in PATH. Install it from https://github.com/yt-dlp/yt-dlp")
		return fmt.Errorf("yt-dlp is not installed")
	}

	if template, _ := cmd.Flags().GetString("template"); template != "" {
		cfg.MetadataTemplate = template
	}
	if noLookup, _ := cmd.Flags().GetBool("no-lookup"); noLookup {
		cfg.EnableLookup = false
	}
	if noEmbed, _ := cmd.Flags().GetBool("no-embed"); noEmbed {
		cfg.EnableEmbedding = false
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.AudioFormat = format
	}
	if parallelism, _ := cmd.Flags().GetInt("parallelism"); parallelism > 0 {
		cfg.Parallelism = parallelism
	}

	source := cfg.TracksFile
	if len(args) == 1 {
		source = args[0]
	}

	ctx := context.Background()
	tracks, name, err := loadTrackListing(ctx, container, source)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		container.Logger.Warning("Listing %s contains no tracks", name)
		return nil
	}
	container.Logger.Info("🎵 Loaded %d tracks from %s", len(tracks), name)

	missing, existing := tracker.CheckDownloadedTracks(tracks, cfg.OutputDir)
	if existing > 0 {
		container.Logger.Info("⏭️  %d tracks already in %s", existing, cfg.OutputDir)
	}
	if len(missing) == 0 {
		container.Logger.Success("Nothing to download.")
		return nil
	}

	stats := container.Downloader.DownloadAll(ctx, missing)

	container.WarningCollector.PrintSummary()
	printDownloadSummary(stats, existing, cfg.OutputDir)

	if stats.FailedCount > 0 {
		return fmt.Errorf("%d downloads failed", stats.FailedCount)
	}
	return nil
}

// loadTrackListing resolves a source argument into raw track records.
// Spotify URLs go through the API; anything else is a local file.
func loadTrackListing(ctx context.Context, container *services.ServiceContainer, source string) ([]shared.RawTrack, string, error) {
	if !strings.Contains(source, "open.spotify.com/") {
		tracks, err := loaders.LoadTracks(source)
		return tracks, source, err
	}

	if err := container.Spotify.Authenticate(ctx); err != nil {
		return nil, "", err
	}
	switch {
	case strings.Contains(source, "/playlist/"):
		return container.Spotify.GetPlaylistTracks(ctx, source)
	case strings.Contains(source, "/album/"):
		return container.Spotify.GetAlbumTracks(ctx, source)
	case strings.Contains(source, "/track/"):
		track, err := container.Spotify.GetTrack(ctx, source)
		if err != nil {
			return nil, "", err
		}
		return []shared.RawTrack{track}, source, nil
	default:
		return nil, "", fmt.Errorf("unsupported spotify URL: %s", source)
	}
}

func printDownloadSummary(stats shared.DownloadStats, existing int, outputDir string) {
	fmt.Printf("\n")
	shared.ColorInfo.Printf("📊 Download Summary:\n")
	if stats.SuccessCount > 0 {
		shared.ColorSuccess.Printf("✅ Successfully downloaded: %d tracks\n", stats.SuccessCount)
	}
	if stats.SkippedCount+existing > 0 {
		shared.ColorWarning.Printf("⏭️  Skipped (already exists): %d tracks\n", stats.SkippedCount+existing)
	}
	if stats.FailedCount > 0 {
		shared.ColorError.Printf("❌ Failed downloads: %d tracks\n", stats.FailedCount)
		if len(stats.FailedItems) > 0 {
			shared.ColorError.Printf("   Failed tracks: %s\n", strings.Join(stats.FailedItems, ", "))
		}
	}
	shared.ColorSuccess.Printf("📁 Tracks downloaded to: %s\n", outputDir)
}
