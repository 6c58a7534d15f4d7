package loaders

import (
	"context"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"spotigrab/internal/metadata"
	"spotigrab/internal/shared"
)

// EnrichTracks fills missing album and release date fields in place
// using the lookup client. Records that already carry both fields, or
// that lack artist or title, are left untouched. Returns the number of
// records that gained at least one field.
func EnrichTracks(ctx context.Context, tracks []shared.RawTrack, lookup metadata.LookupClient, showProgress bool) int {
	if lookup == nil {
		return 0
	}

	var bar *pb.ProgressBar
	if showProgress && len(tracks) > 0 {
		bar = pb.StartNew(len(tracks))
		defer bar.Finish()
	}

	enriched := 0
	for _, track := range tracks {
		if bar != nil {
			bar.Increment()
		}
		artist := strings.TrimSpace(track.First("artist", "Artist Name(s)"))
		title := strings.TrimSpace(track.First("track", "title", "Track Name"))
		if artist == "" || title == "" {
			continue
		}
		if track["album"] != "" && track["release_date"] != "" {
			continue
		}

		match := lookup.Lookup(ctx, artist, title)
		if match == nil {
			continue
		}
		changed := false
		if track["album"] == "" && match.Album != "" {
			track["album"] = match.Album
			changed = true
		}
		if track["release_date"] == "" && match.Date != "" {
			track["release_date"] = match.Date
			changed = true
		}
		if changed {
			enriched++
		}
	}
	return enriched
}
