package tags

import (
	"fmt"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLAC replaces the Vorbis comment and picture blocks of a FLAC
// file with freshly built ones.
func writeFLAC(path string, fields Fields, cover *Cover) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	// Strip existing VORBIS_COMMENT and PICTURE blocks so retagging
	// starts clean.
	var kept []*flac.MetaDataBlock
	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment && block.Type != flac.Picture {
			kept = append(kept, block)
		}
	}
	f.Meta = kept

	comment := flacvorbis.New()
	addField(comment, flacvorbis.FIELD_ARTIST, fields.Artist)
	addField(comment, flacvorbis.FIELD_TITLE, fields.Title)
	addField(comment, flacvorbis.FIELD_ALBUM, fields.Album)
	addField(comment, flacvorbis.FIELD_DATE, fields.Date)
	addField(comment, "GENRE", fields.Genre)
	addField(comment, "BPM", fields.BPM)
	addField(comment, "COMMENT", fields.Comment)

	vorbisBlock := comment.Marshal()
	f.Meta = append(f.Meta, &vorbisBlock)

	if cover != nil && len(cover.Data) > 0 {
		picture, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			cover.Data,
			cover.MIME,
		)
		if err != nil {
			return fmt.Errorf("failed to build picture block: %w", err)
		}
		pictureBlock := picture.Marshal()
		f.Meta = append(f.Meta, &pictureBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}

// addField adds a vorbis comment field only if the value is not empty.
func addField(comment *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	if value != "" {
		comment.Add(field, value)
	}
}
