// Package tracker checks which tracks of a listing already exist in the
// output directory, keyed by the artist and title the filenames encode.
package tracker

import (
	"os"
	"path/filepath"
	"strings"

	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
	"spotigrab/internal/tags"
)

// ParseTrackFilename extracts artist and title from a filename of the
// form "Artist - Title.ext". Only supported audio extensions qualify.
func ParseTrackFilename(name string) (artist, title string, ok bool) {
	if !tags.SupportedExtension(name) {
		return "", "", false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.Index(base, " - ")
	if idx < 0 {
		return "", "", false
	}
	artist = strings.TrimSpace(base[:idx])
	title = strings.TrimSpace(base[idx+len(" - "):])
	if artist == "" || title == "" {
		return "", "", false
	}
	return artist, title, true
}

// ExistingTrackKeys scans a directory and returns the canonical keys of
// every audio file whose name parses. A missing directory yields an
// empty set, not an error, since a fresh output dir has nothing in it.
func ExistingTrackKeys(dir string) map[string]bool {
	keys := map[string]bool{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return keys
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		artist, title, ok := ParseTrackFilename(entry.Name())
		if !ok {
			continue
		}
		keys[metadata.CanonicalTrackKey(artist, title)] = true
	}
	return keys
}

// CheckDownloadedTracks splits a listing into tracks still missing from
// the directory and the count of tracks already present.
func CheckDownloadedTracks(tracks []shared.RawTrack, dir string) (missing []shared.RawTrack, existing int) {
	keys := ExistingTrackKeys(dir)
	for _, track := range tracks {
		artist := track.First("artist", "Artist Name(s)")
		title := track.First("track", "title", "Track Name")
		if keys[metadata.CanonicalTrackKey(artist, title)] {
			existing++
			continue
		}
		missing = append(missing, track)
	}
	return missing, existing
}
