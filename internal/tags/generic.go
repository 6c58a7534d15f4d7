package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeGeneric covers the formats without a dedicated writer through
// taglib: Vorbis/Opus streams, ADTS AAC and RIFF WAV. Cover is nil for
// the Vorbis-based formats; the dispatcher drops it before calling.
func writeGeneric(path string, fields Fields, cover *Cover) error {
	tagMap := map[string][]string{}
	put := func(key, value string) {
		if value != "" {
			tagMap[key] = []string{value}
		}
	}
	put(taglib.Artist, fields.Artist)
	put(taglib.Title, fields.Title)
	put(taglib.Album, fields.Album)
	put(taglib.Date, fields.Date)
	put(taglib.Genre, fields.Genre)
	put(taglib.BPM, fields.BPM)
	put(taglib.Comment, fields.Comment)

	if err := taglib.WriteTags(path, tagMap, 0); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}

	if cover != nil && len(cover.Data) > 0 {
		if err := taglib.WriteImage(path, cover.Data); err != nil {
			return fmt.Errorf("failed to write cover image: %w", err)
		}
	}
	return nil
}
