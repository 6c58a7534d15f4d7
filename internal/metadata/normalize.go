package metadata

import (
	"strconv"
	"strings"

	"spotigrab/internal/shared"
)

// TrackMetadata is the canonical tag set produced from a raw track record.
// All fields are plain strings ready for embedding; Extra holds auxiliary
// values that tag writers ignore but other consumers may use.
type TrackMetadata struct {
	Artist  string
	Title   string
	Album   string
	Date    string
	Genre   string
	BPM     string
	Comment string
	URI     string
	Extra   map[string]string
}

// Key aliases accepted from the various export formats (Exportify CSV
// headers, Spotify API payloads, hand-written JSON). First match wins.
var (
	artistKeys = []string{"artist", "Artist Name(s)", "Artist"}
	titleKeys  = []string{"track", "title", "Track Name", "Track"}
	albumKeys  = []string{"album", "Album Name"}
	uriKeys    = []string{"uri", "Track URI"}
	dateKeys   = []string{"release_date", "Release Date"}
	genreKeys  = []string{"genres", "Genres"}
	bpmKeys    = []string{"tempo", "Tempo"}
	labelKeys  = []string{"record_label", "Record Label"}
	keyKeys    = []string{"key", "Key"}
	energyKeys = []string{"energy", "Energy"}
)

// extraFields are passed through verbatim into TrackMetadata.Extra when
// present and non-empty. Anything not listed is dropped.
var extraFields = []string{
	"duration_ms", "explicit", "popularity",
	"danceability", "acousticness", "instrumentalness",
	"liveness", "valence", "time_signature",
}

// Normalize maps a raw track record onto the canonical tag set. It never
// fails; absent fields come back as empty strings.
func Normalize(raw shared.RawTrack) TrackMetadata {
	meta := TrackMetadata{
		Artist: normalizeArtists(raw.First(artistKeys...)),
		Title:  strings.TrimSpace(raw.First(titleKeys...)),
		Album:  strings.TrimSpace(raw.First(albumKeys...)),
		URI:    strings.TrimSpace(raw.First(uriKeys...)),
		Date:   strings.TrimSpace(raw.First(dateKeys...)),
		Extra:  map[string]string{},
	}

	meta.Genre = normalizeGenres(raw.First(genreKeys...))
	meta.BPM = normalizeBPM(raw.First(bpmKeys...))
	meta.Comment = buildComment(
		meta.URI,
		strings.TrimSpace(raw.First(labelKeys...)),
		strings.TrimSpace(raw.First(keyKeys...)),
		strings.TrimSpace(raw.First(energyKeys...)),
	)

	for _, field := range extraFields {
		if v := strings.TrimSpace(raw[field]); v != "" {
			meta.Extra[field] = v
		}
	}
	return meta
}

// normalizeArtists splits a semicolon-delimited artist list, trims each
// name, removes case-insensitive duplicates and rejoins with ", ". A
// single-artist value comes back trimmed unchanged.
func normalizeArtists(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	seen := map[string]bool{}
	var artists []string
	for _, part := range strings.Split(value, ";") {
		artist := strings.TrimSpace(part)
		if artist == "" {
			continue
		}
		lower := strings.ToLower(artist)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		artists = append(artists, artist)
	}
	return strings.Join(artists, ", ")
}

// normalizeGenres splits a semicolon list, trims each entry and removes
// case-insensitive duplicates while keeping first-seen order.
func normalizeGenres(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	seen := map[string]bool{}
	var genres []string
	for _, part := range strings.Split(value, ";") {
		genre := strings.TrimSpace(part)
		if genre == "" {
			continue
		}
		lower := strings.ToLower(genre)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		genres = append(genres, genre)
	}
	return strings.Join(genres, ", ")
}

// normalizeBPM rounds a numeric tempo half-up to the nearest integer.
// Unparseable values are kept verbatim so nothing is silently lost.
func normalizeBPM(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return trimmed
	}
	return strconv.Itoa(int(f + 0.5))
}

// buildComment assembles the comment tag from the auxiliary fields in a
// fixed order so the output is stable across runs.
func buildComment(uri, label, key, energy string) string {
	var segments []string
	if uri != "" {
		segments = append(segments, "spotify_uri="+uri)
	}
	if label != "" {
		segments = append(segments, "label="+label)
	}
	if key != "" {
		segments = append(segments, "key="+key)
	}
	if energy != "" {
		segments = append(segments, "energy="+energy)
	}
	return strings.Join(segments, "; ")
}

// CanonicalTrackKey produces the case-folded identity key used for
// deduplication and download tracking.
func CanonicalTrackKey(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + "|" + strings.ToLower(strings.TrimSpace(title))
}
