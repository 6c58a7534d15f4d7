package metadata

import (
	"strconv"
	"strings"
)

// Validation issue codes, reported in a stable order.
const (
	IssueMissingArtist = "missing_artist"
	IssueMissingTitle  = "missing_title"
	IssueBPMNotNumeric = "bpm_not_numeric"
	IssueBPMOutOfRange = "bpm_out_of_range"
	IssueDateTooShort  = "date_too_short"
)

// Validate inspects normalized metadata and returns the list of issue
// codes found. An empty slice means the record is clean. Validation is
// advisory; callers decide whether an issue blocks anything.
func Validate(meta TrackMetadata) []string {
	var issues []string
	if strings.TrimSpace(meta.Artist) == "" {
		issues = append(issues, IssueMissingArtist)
	}
	if strings.TrimSpace(meta.Title) == "" {
		issues = append(issues, IssueMissingTitle)
	}
	if bpm := strings.TrimSpace(meta.BPM); bpm != "" {
		f, err := strconv.ParseFloat(bpm, 64)
		if err != nil {
			issues = append(issues, IssueBPMNotNumeric)
		} else if f <= 0 || f > 300 {
			issues = append(issues, IssueBPMOutOfRange)
		}
	}
	if date := strings.TrimSpace(meta.Date); date != "" && len(date) < 4 {
		issues = append(issues, IssueDateTooShort)
	}
	return issues
}

// Correct applies the safe automatic fixes: whitespace trimming on every
// tag field, plus re-rounding BPM to a plain integer string when it
// parses. An unparseable or out-of-range BPM is kept verbatim so nothing
// is silently lost. It returns the corrected copy; the input is not
// modified.
func Correct(meta TrackMetadata) TrackMetadata {
	out := meta
	out.Artist = strings.TrimSpace(meta.Artist)
	out.Title = strings.TrimSpace(meta.Title)
	out.Album = strings.TrimSpace(meta.Album)
	out.Date = strings.TrimSpace(meta.Date)
	out.Genre = strings.TrimSpace(meta.Genre)
	out.BPM = strings.TrimSpace(meta.BPM)
	out.Comment = strings.TrimSpace(meta.Comment)
	out.URI = strings.TrimSpace(meta.URI)

	if out.BPM != "" {
		if f, err := strconv.ParseFloat(out.BPM, 64); err == nil {
			out.BPM = strconv.Itoa(int(f + 0.5))
		}
	}
	return out
}
