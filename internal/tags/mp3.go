package tags

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
)

// writeMP3 writes an ID3v2.4 tag. Opening with Parse keeps any frames
// we do not set, so retagging does not destroy unrelated metadata.
func writeMP3(path string, fields Fields, cover *Cover) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open mp3 for tagging: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if fields.Artist != "" {
		tag.SetArtist(fields.Artist)
	}
	if fields.Title != "" {
		tag.SetTitle(fields.Title)
	}
	if fields.Album != "" {
		tag.SetAlbum(fields.Album)
	}
	if fields.Genre != "" {
		tag.SetGenre(fields.Genre)
	}
	if fields.Date != "" {
		tag.AddTextFrame(tag.CommonID("Recording time"), tag.DefaultEncoding(), fields.Date)
	}
	if fields.BPM != "" {
		tag.AddTextFrame(tag.CommonID("BPM"), tag.DefaultEncoding(), fields.BPM)
	}
	if fields.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     fields.Comment,
		})
	}
	if cover != nil {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    cover.MIME,
			PictureType: id3v2.PTFrontCover,
			Description: "Front cover",
			Picture:     cover.Data,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save mp3 tag: %w", err)
	}
	return nil
}
