// Package loaders reads track and playlist listings from the supported
// input formats: Exportify CSV exports and plain JSON files.
package loaders

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

// Playlist is a named Spotify playlist reference.
type Playlist struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Exportify column headers mapped to canonical record keys. Columns
// not listed fall back to a generic snake_case conversion.
var exportifyColumns = map[string]string{
	"Track URI":        "uri",
	"Track Name":       "track",
	"Artist Name(s)":   "artist",
	"Album Name":       "album",
	"Release Date":     "release_date",
	"Duration (ms)":    "duration_ms",
	"Explicit":         "explicit",
	"Popularity":       "popularity",
	"Genres":           "genres",
	"Record Label":     "record_label",
	"Danceability":     "danceability",
	"Energy":           "energy",
	"Key":              "key",
	"Tempo":            "tempo",
	"Time Signature":   "time_signature",
	"Acousticness":     "acousticness",
	"Instrumentalness": "instrumentalness",
	"Liveness":         "liveness",
	"Valence":          "valence",
}

// LoadExportifyTracks reads an Exportify CSV export. The first row is
// the header; every following row becomes a raw track record keyed by
// canonical names.
func LoadExportifyTracks(path string) ([]shared.RawTrack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	// Exportify files frequently start with a UTF-8 BOM.
	content := strings.TrimPrefix(string(data), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv file %s has no header row", path)
	}

	keys := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		keys[i] = columnKey(header)
	}

	var tracks []shared.RawTrack
	for _, row := range rows[1:] {
		track := shared.RawTrack{}
		for i, value := range row {
			if i >= len(keys) {
				break
			}
			track[keys[i]] = strings.TrimSpace(value)
		}
		if artist, ok := track["artist"]; ok {
			track["artist"] = normalizeArtistList(artist)
		}
		if len(track) > 0 {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}

// LoadTracks reads a tracks file, choosing the parser by extension:
// .csv goes through the Exportify loader, everything else is JSON of
// the form {"tracks": [{...}, ...]}.
func LoadTracks(path string) ([]shared.RawTrack, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadExportifyTracks(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}

	var doc struct {
		Tracks []map[string]interface{} `json:"tracks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tracks file: %w", err)
	}

	tracks := make([]shared.RawTrack, 0, len(doc.Tracks))
	for _, entry := range doc.Tracks {
		track := shared.RawTrack{}
		for key, value := range entry {
			track[key] = shared.AsString(value)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// LoadPlaylists reads a JSON playlists file of the form
// {"playlists": [{"name": ..., "url": ...}, ...]}.
func LoadPlaylists(path string) ([]Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlists file: %w", err)
	}

	var doc struct {
		Playlists []Playlist `json:"playlists"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse playlists file: %w", err)
	}
	return doc.Playlists, nil
}

// MergeExportifyDir loads every CSV in a directory and merges the rows,
// dropping duplicate tracks by their canonical artist and title key.
// Files are processed in name order so the merge is deterministic.
func MergeExportifyDir(dir string) ([]shared.RawTrack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exportify directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	seen := map[string]bool{}
	var merged []shared.RawTrack
	for _, name := range names {
		tracks, err := LoadExportifyTracks(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		for _, track := range tracks {
			key := metadata.CanonicalTrackKey(track["artist"], track["track"])
			if key == "|" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, track)
		}
	}
	return merged, nil
}

// columnKey maps a CSV header to its record key.
func columnKey(header string) string {
	header = strings.TrimSpace(header)
	if key, ok := exportifyColumns[header]; ok {
		return key
	}
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// normalizeArtistList converts Exportify's comma-joined artist lists to
// the semicolon form used everywhere else. Lists that already contain
// semicolons are left alone.
func normalizeArtistList(artist string) string {
	if strings.Contains(artist, ";") || !strings.Contains(artist, ",") {
		return artist
	}
	parts := strings.Split(artist, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "; ")
}
