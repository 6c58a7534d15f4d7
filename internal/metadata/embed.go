package metadata

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"spotigrab/internal/shared"
	"spotigrab/internal/tags"
)

// LookupResult carries the fields an external lookup can contribute.
type LookupResult struct {
	Album     string
	Date      string
	ReleaseID string
}

// LookupClient resolves album and date for a track from an external
// source. Implementations return nil on any miss or failure; a lookup
// must never abort an embedding run.
type LookupClient interface {
	Lookup(ctx context.Context, artist, title string) *LookupResult
}

// Embedder drives the tagging pipeline for downloaded audio files.
type Embedder struct {
	lookup   LookupClient
	warnings *shared.WarningCollector
}

func NewEmbedder(lookup LookupClient, warnings *shared.WarningCollector) *Embedder {
	return &Embedder{lookup: lookup, warnings: warnings}
}

// EmbedTrackMetadata runs the full pipeline for one file: normalize the
// raw record, correct it, optionally fill gaps from the lookup client,
// apply the template, validate, resolve cover art and write the tags.
// Returns true when tags were written. Failures are collected as
// warnings; this never returns an error because a bad tag write must
// not fail the download that produced the file.
func (e *Embedder) EmbedTrackMetadata(ctx context.Context, path string, raw shared.RawTrack, templateName string, allowLookup bool) bool {
	if path == "" || !shared.FileExists(path) {
		e.warnings.AddFileSkippedWarning(path, "audio file not found")
		return false
	}
	if !tags.SupportedExtension(path) {
		e.warnings.AddFileSkippedWarning(path, fmt.Sprintf("unsupported audio format %s", filepath.Ext(path)))
		return false
	}

	meta := Normalize(raw)
	if issues := Validate(meta); len(issues) > 0 {
		e.warnings.AddMetadataValidationWarning(path, issues)
	}
	meta = Correct(meta)

	if allowLookup && e.lookup != nil && (meta.Album == "" || meta.Date == "") &&
		meta.Artist != "" && meta.Title != "" {
		if res := e.lookup.Lookup(ctx, meta.Artist, meta.Title); res != nil {
			if meta.Album == "" {
				meta.Album = res.Album
			}
			if meta.Date == "" {
				meta.Date = res.Date
			}
		}
	}

	tpl := GetTemplate(templateName)
	meta = ApplyTemplate(meta, tpl)

	// The advisory pass above covers pre-correction state; re-validate the
	// final tag set and keep only the surviving issues in the summary.
	e.warnings.RemoveWarningsByTypeAndContext(shared.MetadataValidationWarning, path)
	if issues := Validate(meta); len(issues) > 0 {
		e.warnings.AddMetadataValidationWarning(path, issues)
	}

	var cover *tags.Cover
	if tpl.EmbedCoverArt {
		if data, mime := FindLocalAlbumArt(path); data != nil {
			cover = &tags.Cover{Data: data, MIME: mime}
		} else {
			e.warnings.AddCoverArtWarning(path, "no cover image found next to audio file")
		}
	}

	fields := tags.Fields{
		Artist:  meta.Artist,
		Title:   meta.Title,
		Album:   meta.Album,
		Date:    meta.Date,
		Genre:   meta.Genre,
		BPM:     meta.BPM,
		Comment: meta.Comment,
	}
	if err := tags.Write(path, fields, cover); err != nil {
		e.warnings.AddTagWriteWarning(path, err.Error())
		return false
	}
	return true
}

// FindDownloadedAudioPath locates the audio file a downloader produced
// for the given base name. It tries the exact base with each supported
// extension first, then falls back to a prefix scan for cases where the
// downloader appended something to the name. Returns "" when nothing
// matches.
func FindDownloadedAudioPath(dir, base string) string {
	for _, ext := range tags.Extensions() {
		candidate := filepath.Join(dir, base+ext)
		if shared.FileExists(candidate) {
			return candidate
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	lowerBase := strings.ToLower(base)
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lowerBase) && tags.SupportedExtension(name) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// EmbedDirectory retags every supported audio file under a directory,
// walking nested album folders, using only what the filename encodes.
// Files named "Artist - Title.ext" get artist and title tags; anything
// else is skipped. Lookup stays off and the basic template is used, so
// this never touches the network.
func (e *Embedder) EmbedDirectory(ctx context.Context, dir string) shared.EmbedStats {
	var stats shared.EmbedStats

	filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			shared.ColorError.Printf("❌ Cannot read %s: %v\n", path, err)
			stats.FailedCount++
			return nil
		}
		if entry.IsDir() || !tags.SupportedExtension(entry.Name()) {
			return nil
		}
		name := entry.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		artist, title, ok := splitArtistTitle(base)
		if !ok {
			e.warnings.AddFileSkippedWarning(name, "filename does not match \"Artist - Title\" pattern")
			stats.SkippedCount++
			return nil
		}

		raw := shared.RawTrack{"artist": artist, "track": title}
		if e.EmbedTrackMetadata(ctx, path, raw, "basic", false) {
			shared.ColorSuccess.Printf("✅ Tagged %s\n", name)
			stats.TaggedCount++
		} else {
			stats.FailedCount++
		}
		return nil
	})
	return stats
}

// splitArtistTitle splits on the first " - " separator.
func splitArtistTitle(base string) (artist, title string, ok bool) {
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
