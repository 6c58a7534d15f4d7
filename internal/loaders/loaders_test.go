package loaders

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

const exportifyCSV = "\uFEFF" + `Track URI,Track Name,Artist Name(s),Album Name,Release Date,Tempo,Energy
spotify:track:aaa,One More Time,"Daft Punk, Romanthony",Discovery,2001-03-12,122.746,0.697
spotify:track:bbb,Windowlicker,Aphex Twin,Windowlicker,1999-03-22,109.974,0.837
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExportifyTracks(t *testing.T) {
	path := writeFile(t, t.TempDir(), "playlist.csv", exportifyCSV)

	tracks, err := LoadExportifyTracks(path)
	if err != nil {
		t.Fatalf("LoadExportifyTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first["uri"] != "spotify:track:aaa" {
		t.Errorf("uri = %q (BOM not stripped?)", first["uri"])
	}
	if first["track"] != "One More Time" {
		t.Errorf("track = %q", first["track"])
	}
	if first["artist"] != "Daft Punk; Romanthony" {
		t.Errorf("artist list not normalized: %q", first["artist"])
	}
	if first["tempo"] != "122.746" || first["energy"] != "0.697" {
		t.Errorf("audio features missing: %v", first)
	}

	if tracks[1]["artist"] != "Aphex Twin" {
		t.Errorf("single artist mangled: %q", tracks[1]["artist"])
	}
}

func TestLoadTracksJSON(t *testing.T) {
	content := `{"tracks": [
		{"artist": "Burial", "track": "Archangel", "tempo": 134.2, "explicit": false},
		{"artist": "Moderat", "track": "A New Error"}
	]}`
	path := writeFile(t, t.TempDir(), "tracks.json", content)

	tracks, err := LoadTracks(path)
	if err != nil {
		t.Fatalf("LoadTracks failed: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0]["tempo"] != "134.2" {
		t.Errorf("numeric value not stringified: %q", tracks[0]["tempo"])
	}
	if tracks[0]["explicit"] != "false" {
		t.Errorf("boolean value not stringified: %q", tracks[0]["explicit"])
	}
}

func TestLoadTracksDispatchesOnExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "playlist.csv", exportifyCSV)
	tracks, err := LoadTracks(path)
	if err != nil {
		t.Fatalf("LoadTracks failed on csv: %v", err)
	}
	if len(tracks) != 2 {
		t.Errorf("got %d tracks, want 2", len(tracks))
	}
}

func TestLoadPlaylists(t *testing.T) {
	content := `{"playlists": [{"name": "Focus", "url": "https://open.spotify.com/playlist/abc"}]}`
	path := writeFile(t, t.TempDir(), "playlists.json", content)

	playlists, err := LoadPlaylists(path)
	if err != nil {
		t.Fatalf("LoadPlaylists failed: %v", err)
	}
	if len(playlists) != 1 || playlists[0].Name != "Focus" {
		t.Errorf("playlists = %+v", playlists)
	}
}

func TestMergeExportifyDirDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", `Track Name,Artist Name(s)
One More Time,Daft Punk
Windowlicker,Aphex Twin
`)
	writeFile(t, dir, "b.csv", `Track Name,Artist Name(s)
one more time,DAFT PUNK
Xtal,Aphex Twin
`)
	writeFile(t, dir, "notes.txt", "ignored")

	merged, err := MergeExportifyDir(dir)
	if err != nil {
		t.Fatalf("MergeExportifyDir failed: %v", err)
	}
	if len(merged) != 3 {
		t.Fatalf("got %d tracks, want 3 (case-insensitive dedupe)", len(merged))
	}
	// First occurrence wins.
	if merged[0]["artist"] != "Daft Punk" {
		t.Errorf("first occurrence should win: %q", merged[0]["artist"])
	}
}

func TestColumnKeyFallback(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Track Name", "track"},
		{"Added By", "added_by"},
		{"Loudness (dB)", "loudness_db"},
	}
	for _, tc := range cases {
		if got := columnKey(tc.in); got != tc.want {
			t.Errorf("columnKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type stubLookup struct {
	result *metadata.LookupResult
	calls  int
}

func (s *stubLookup) Lookup(ctx context.Context, artist, title string) *metadata.LookupResult {
	s.calls++
	return s.result
}

func TestEnrichTracksFillsMissingFields(t *testing.T) {
	tracks := []shared.RawTrack{
		{"artist": "Orbital", "track": "Halcyon"},
		{"artist": "Orbital", "track": "Belfast", "album": "Orbital", "release_date": "1991"},
		{"track": "No Artist"},
	}
	lookup := &stubLookup{result: &metadata.LookupResult{Album: "Orbital 2", Date: "1993-01-25"}}

	enriched := EnrichTracks(context.Background(), tracks, lookup, false)
	if enriched != 1 {
		t.Errorf("enriched = %d, want 1", enriched)
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d, want 1 (complete and invalid records skip lookup)", lookup.calls)
	}
	if tracks[0]["album"] != "Orbital 2" || tracks[0]["release_date"] != "1993-01-25" {
		t.Errorf("gap not filled: %v", tracks[0])
	}
	if tracks[1]["album"] != "Orbital" {
		t.Errorf("existing value clobbered: %v", tracks[1])
	}
}

func TestEnrichTracksHandlesMisses(t *testing.T) {
	tracks := []shared.RawTrack{{"artist": "a", "track": "t"}}
	lookup := &stubLookup{result: nil}
	if enriched := EnrichTracks(context.Background(), tracks, lookup, false); enriched != 0 {
		t.Errorf("enriched = %d, want 0", enriched)
	}
	if tracks[0]["album"] != "" {
		t.Error("miss should leave record untouched")
	}
}
