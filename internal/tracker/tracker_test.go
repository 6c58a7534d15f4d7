package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"spotigrab/internal/shared"
)

func TestParseTrackFilename(t *testing.T) {
	cases := []struct {
		name          string
		artist, title string
		ok            bool
	}{
		{"Daft Punk - One More Time.mp3", "Daft Punk", "One More Time", true},
		{"Kruder - Dorfmeister - High Noon.flac", "Kruder", "Dorfmeister - High Noon", true},
		{"NoSeparator.mp3", "", "", false},
		{"Artist - Title.txt", "", "", false},
		{"Artist - .mp3", "", "", false},
	}
	for _, tc := range cases {
		artist, title, ok := ParseTrackFilename(tc.name)
		if artist != tc.artist || title != tc.title || ok != tc.ok {
			t.Errorf("ParseTrackFilename(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.name, artist, title, ok, tc.artist, tc.title, tc.ok)
		}
	}
}

func TestExistingTrackKeysMissingDir(t *testing.T) {
	keys := ExistingTrackKeys(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(keys) != 0 {
		t.Errorf("expected empty set, got %v", keys)
	}
}

func TestCheckDownloadedTracks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Daft Punk - One More Time.mp3",
		"Aphex Twin - Xtal.opus",
		"random-notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tracks := []shared.RawTrack{
		{"artist": "daft punk", "track": "ONE MORE TIME"}, // case-insensitive hit
		{"artist": "Aphex Twin", "track": "Xtal"},
		{"artist": "Burial", "track": "Archangel"},
	}
	missing, existing := CheckDownloadedTracks(tracks, dir)
	if existing != 2 {
		t.Errorf("existing = %d, want 2", existing)
	}
	if len(missing) != 1 || missing[0]["artist"] != "Burial" {
		t.Errorf("missing = %v", missing)
	}
}

func TestCheckDownloadedTracksExportifyHeaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Moderat - A New Error.m4a"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	tracks := []shared.RawTrack{
		{"Artist Name(s)": "Moderat", "Track Name": "A New Error"},
	}
	missing, existing := CheckDownloadedTracks(tracks, dir)
	if existing != 1 || len(missing) != 0 {
		t.Errorf("existing=%d missing=%v", existing, missing)
	}
}
