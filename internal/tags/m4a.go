package tags

import (
	"fmt"

	"github.com/Sorrow446/go-mp4tag"
)

// writeM4A writes iTunes-style atoms with go-mp4tag.
func writeM4A(path string, fields Fields, cover *Cover) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open m4a for tagging: %w", err)
	}
	defer mp4.Close()

	mp4Tags := &mp4tag.MP4Tags{
		Title:       fields.Title,
		Artist:      fields.Artist,
		Album:       fields.Album,
		Date:        fields.Date,
		CustomGenre: fields.Genre,
		Comment:     fields.Comment,
	}
	// BPM is a numeric atom; an unparseable value is dropped rather
	// than written as zero.
	if bpm := bpmInt(fields.BPM); bpm > 0 {
		mp4Tags.BPM = safeInt16(bpm)
	}
	if cover != nil && len(cover.Data) > 0 {
		mp4Tags.Pictures = []*mp4tag.MP4Picture{
			{Data: cover.Data},
		}
	}

	if err := mp4.Write(mp4Tags, nil); err != nil {
		return fmt.Errorf("failed to write m4a tags: %w", err)
	}
	return nil
}

// safeInt16 converts int to int16 with bounds checking.
func safeInt16(n int) int16 {
	if n > 32767 {
		return 32767
	}
	return int16(n)
}
