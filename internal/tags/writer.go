// Package tags writes metadata into audio files. Each supported
// container gets a dedicated writer; everything else goes through the
// taglib fallback.
package tags

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Fields is the tag set a writer embeds. Empty fields are left out of
// the file rather than written as empty values.
type Fields struct {
	Artist  string
	Title   string
	Album   string
	Date    string
	Genre   string
	BPM     string
	Comment string
}

// Cover is an image to attach as front cover art.
type Cover struct {
	Data []byte
	MIME string
}

var validExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".aac":  true,
	".wav":  true,
}

// SupportedExtension reports whether the path has an extension a writer
// can handle.
func SupportedExtension(path string) bool {
	return validExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the supported extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(validExtensions))
	for ext := range validExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Write embeds the fields into the file, dispatching on extension.
// Vorbis-based containers never get cover art; their writers drop it.
func Write(path string, fields Fields, cover *Cover) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return writeMP3(path, fields, cover)
	case ".flac":
		return writeFLAC(path, fields, cover)
	case ".m4a":
		return writeM4A(path, fields, cover)
	case ".ogg", ".opus", ".aac":
		return writeGeneric(path, fields, nil)
	case ".wav":
		return writeGeneric(path, fields, cover)
	default:
		return fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
}

// bpmInt parses an already-normalized BPM string. Returns 0 when the
// value cannot be represented as a positive integer.
func bpmInt(bpm string) int {
	n, err := strconv.Atoi(strings.TrimSpace(bpm))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
