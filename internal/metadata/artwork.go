package metadata

import (
	"bytes"
	"os"
	"path/filepath"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// GuessImageMIME sniffs the image type from its leading bytes. Anything
// that is not a PNG is treated as JPEG, which matches what album art
// sources actually deliver.
func GuessImageMIME(data []byte) string {
	if bytes.HasPrefix(data, pngMagic) {
		return "image/png"
	}
	return "image/jpeg"
}

// FindLocalAlbumArt looks for a cover image next to the audio file: the
// same base name with a .jpg, .jpeg or .png extension. Returns the image
// bytes and MIME type, or nil when no sibling image exists.
func FindLocalAlbumArt(audioPath string) ([]byte, string) {
	base := audioPath[:len(audioPath)-len(filepath.Ext(audioPath))]
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		candidate := base + ext
		data, err := os.ReadFile(candidate)
		if err != nil || len(data) == 0 {
			continue
		}
		return data, GuessImageMIME(data)
	}
	return nil, ""
}
