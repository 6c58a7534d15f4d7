// Package downloader fetches audio for track listings through yt-dlp
// and hands every finished file to the metadata embedder.
package downloader

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"spotigrab/internal/config"
	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

// Downloader drives yt-dlp downloads for raw track records.
type Downloader struct {
	cfg      *config.Config
	embedder *metadata.Embedder
	warnings *shared.WarningCollector
	limiter  *rate.Limiter

	// runCommand is swapped out in tests so nothing actually shells out.
	runCommand func(ctx context.Context, name string, args ...string) error
}

// NewDownloader creates a downloader. A non-positive sleep_between
// disables pacing between yt-dlp launches.
func NewDownloader(cfg *config.Config, embedder *metadata.Embedder, warnings *shared.WarningCollector) *Downloader {
	limit := rate.Inf
	if cfg.SleepBetween > 0 {
		limit = rate.Every(time.Duration(cfg.SleepBetween * float64(time.Second)))
	}
	return &Downloader{
		cfg:      cfg,
		embedder: embedder,
		warnings: warnings,
		limiter:  rate.NewLimiter(limit, 1),
		runCommand: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// DownloadTrack downloads one track and embeds its metadata. Returns
// the path of the audio file, or "" with a skip marker error of nil
// when the track already exists on disk.
func (d *Downloader) DownloadTrack(ctx context.Context, raw shared.RawTrack) (string, bool, error) {
	artist := raw.First("artist", "Artist Name(s)")
	title := raw.First("track", "title", "Track Name")
	if artist == "" || title == "" {
		return "", false, fmt.Errorf("track record is missing artist or title")
	}

	base := shared.SanitizeFileName(fmt.Sprintf("%s - %s", artist, title))
	if existing := metadata.FindDownloadedAudioPath(d.cfg.OutputDir, base); existing != "" {
		return existing, true, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	outputPattern := filepath.Join(d.cfg.OutputDir, base+".%(ext)s")
	args := []string{
		"--format", "bestaudio",
		"--extract-audio",
		"--audio-format", d.cfg.AudioFormat,
		"--audio-quality", "0",
		"--output", outputPattern,
		"--no-overwrites",
		"--no-playlist",
		"--quiet",
		fmt.Sprintf("ytsearch1:%s %s", artist, title),
	}
	if err := d.runCommand(ctx, "yt-dlp", args...); err != nil {
		return "", false, fmt.Errorf("yt-dlp failed for %s - %s: %w", artist, title, err)
	}

	path := metadata.FindDownloadedAudioPath(d.cfg.OutputDir, base)
	if path == "" {
		return "", false, fmt.Errorf("yt-dlp produced no audio file for %s - %s", artist, title)
	}

	if d.cfg.EnableEmbedding {
		d.embedder.EmbedTrackMetadata(ctx, path, raw, d.cfg.MetadataTemplate, d.cfg.EnableLookup)
	}
	return path, false, nil
}

// DownloadAll downloads a listing with bounded parallelism and reports
// aggregate stats. Individual failures are collected, not fatal.
func (d *Downloader) DownloadAll(ctx context.Context, tracks []shared.RawTrack) shared.DownloadStats {
	var stats shared.DownloadStats
	if len(tracks) == 0 {
		return stats
	}

	if err := shared.CreateDirIfNotExists(d.cfg.OutputDir); err != nil {
		shared.ColorError.Printf("❌ Cannot create output directory: %v\n", err)
		stats.FailedCount = len(tracks)
		return stats
	}

	bar := pb.StartNew(len(tracks))
	defer bar.Finish()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Parallelism)

	for _, track := range tracks {
		track := track
		g.Go(func() error {
			_, skipped, err := d.DownloadTrack(gctx, track)
			mu.Lock()
			defer mu.Unlock()
			bar.Increment()
			switch {
			case err != nil:
				stats.FailedCount++
				item := fmt.Sprintf("%s - %s", track.First("artist", "Artist Name(s)"), track.First("track", "title", "Track Name"))
				stats.FailedItems = append(stats.FailedItems, item)
				shared.ColorWarning.Printf("⚠️ %v\n", err)
			case skipped:
				stats.SkippedCount++
			default:
				stats.SuccessCount++
			}
			return nil
		})
	}
	g.Wait()
	return stats
}
