package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"spotigrab/internal/config"
	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.AudioFormat = "mp3"
	cfg.SleepBetween = 0
	cfg.EnableLookup = false
	return cfg
}

func newTestDownloader(cfg *config.Config) *Downloader {
	warnings := shared.NewWarningCollector(true)
	embedder := metadata.NewEmbedder(nil, warnings)
	return NewDownloader(cfg, embedder, warnings)
}

func TestDownloadTrackProducesTaggedFile(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDownloader(cfg)

	var commands int32
	d.runCommand = func(ctx context.Context, name string, args ...string) error {
		atomic.AddInt32(&commands, 1)
		if name != "yt-dlp" {
			t.Errorf("command = %q", name)
		}
		// Simulate yt-dlp writing the requested file.
		out := filepath.Join(cfg.OutputDir, "Burial - Archangel.mp3")
		return os.WriteFile(out, []byte{0xFF, 0xFB, 0x90, 0x00}, 0644)
	}

	raw := shared.RawTrack{"artist": "Burial", "track": "Archangel"}
	path, skipped, err := d.DownloadTrack(context.Background(), raw)
	if err != nil {
		t.Fatalf("DownloadTrack failed: %v", err)
	}
	if skipped {
		t.Error("fresh track should not be skipped")
	}
	if filepath.Base(path) != "Burial - Archangel.mp3" {
		t.Errorf("path = %q", path)
	}
	if commands != 1 {
		t.Errorf("commands = %d, want 1", commands)
	}
}

func TestDownloadTrackSkipsExisting(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDownloader(cfg)
	d.runCommand = func(ctx context.Context, name string, args ...string) error {
		t.Error("yt-dlp must not run for an existing track")
		return nil
	}

	existing := filepath.Join(cfg.OutputDir, "Burial - Archangel.opus")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	raw := shared.RawTrack{"artist": "Burial", "track": "Archangel"}
	path, skipped, err := d.DownloadTrack(context.Background(), raw)
	if err != nil {
		t.Fatalf("DownloadTrack failed: %v", err)
	}
	if !skipped || path != existing {
		t.Errorf("skipped=%v path=%q", skipped, path)
	}
}

func TestDownloadTrackMissingFields(t *testing.T) {
	d := newTestDownloader(testConfig(t))
	if _, _, err := d.DownloadTrack(context.Background(), shared.RawTrack{"track": "Orphan"}); err == nil {
		t.Error("expected error for record without artist")
	}
}

func TestDownloadTrackCommandFailure(t *testing.T) {
	d := newTestDownloader(testConfig(t))
	d.runCommand = func(ctx context.Context, name string, args ...string) error {
		return fmt.Errorf("exit status 1")
	}
	if _, _, err := d.DownloadTrack(context.Background(), shared.RawTrack{"artist": "a", "track": "t"}); err == nil {
		t.Error("expected error when yt-dlp fails")
	}
}

func TestDownloadTrackNoOutputFile(t *testing.T) {
	d := newTestDownloader(testConfig(t))
	d.runCommand = func(ctx context.Context, name string, args ...string) error {
		return nil // claims success but writes nothing
	}
	if _, _, err := d.DownloadTrack(context.Background(), shared.RawTrack{"artist": "a", "track": "t"}); err == nil {
		t.Error("expected error when no file appears")
	}
}

func TestDownloadAllAggregatesStats(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parallelism = 2
	d := newTestDownloader(cfg)

	d.runCommand = func(ctx context.Context, name string, args ...string) error {
		// args[len-1] is "ytsearch1:artist title"
		query := args[len(args)-1]
		if query == "ytsearch1:Fail Me fail" {
			return fmt.Errorf("exit status 1")
		}
		out := filepath.Join(cfg.OutputDir, "Aphex Twin - Xtal.mp3")
		return os.WriteFile(out, []byte{0xFF, 0xFB}, 0644)
	}

	existing := filepath.Join(cfg.OutputDir, "Burial - Archangel.mp3")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tracks := []shared.RawTrack{
		{"artist": "Aphex Twin", "track": "Xtal"},
		{"artist": "Burial", "track": "Archangel"},
		{"artist": "Fail Me", "track": "fail"},
	}
	stats := d.DownloadAll(context.Background(), tracks)

	if stats.SuccessCount != 1 {
		t.Errorf("success = %d, want 1", stats.SuccessCount)
	}
	if stats.SkippedCount != 1 {
		t.Errorf("skipped = %d, want 1", stats.SkippedCount)
	}
	if stats.FailedCount != 1 {
		t.Errorf("failed = %d, want 1", stats.FailedCount)
	}
	if len(stats.FailedItems) != 1 || stats.FailedItems[0] != "Fail Me - fail" {
		t.Errorf("failed items = %v", stats.FailedItems)
	}
}

func TestDownloadAllEmptyListing(t *testing.T) {
	d := newTestDownloader(testConfig(t))
	stats := d.DownloadAll(context.Background(), nil)
	if stats.SuccessCount+stats.SkippedCount+stats.FailedCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
}
