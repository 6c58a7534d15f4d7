package shared

import (
	"fmt"
	"strconv"
)

// RawTrack is a loosely-structured track record as produced by the loaders,
// the Spotify API client, or legacy filename parsing. Keys vary by source
// (JSON snake_case, Exportify CSV headers, Spotify API fields); the metadata
// normalizer resolves them into a canonical shape.
type RawTrack map[string]string

// First returns the first non-empty value among the candidate keys.
func (t RawTrack) First(keys ...string) string {
	for _, k := range keys {
		if v, ok := t[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
}

// DownloadStats summarizes a batch download pass.
type DownloadStats struct {
	SuccessCount int
	SkippedCount int
	FailedCount  int
	FailedItems  []string
}

// EmbedStats summarizes a batch tagging pass.
type EmbedStats struct {
	TaggedCount  int
	SkippedCount int
	FailedCount  int
}

// AsString renders a loosely-typed JSON value as a trimmed string.
func AsString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
