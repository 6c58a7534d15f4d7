package shared

import (
	"fmt"
	"sort"
	"strings"
)

// WarningType represents different types of warnings
type WarningType int

const (
	MusicBrainzLookupWarning WarningType = iota
	MetadataValidationWarning
	CoverArtWarning
	TagWriteWarning
	FileSkippedWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string // Track/file context
	Details string // Additional details like error message
}

// WarningCollector collects warnings during download and tagging operations
type WarningCollector struct {
	warnings []Warning
	enabled  bool
}

// NewWarningCollector creates a new warning collector
func NewWarningCollector(enabled bool) *WarningCollector {
	return &WarningCollector{
		warnings: make([]Warning, 0),
		enabled:  enabled,
	}
}

// AddWarning adds a warning to the collector
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if !wc.enabled {
		return
	}

	wc.warnings = append(wc.warnings, Warning{
		Type:    warningType,
		Message: message,
		Context: context,
		Details: details,
	})
}

// AddMusicBrainzLookupWarning adds a MusicBrainz recording lookup warning
func (wc *WarningCollector) AddMusicBrainzLookupWarning(artist, title, details string) {
	context := fmt.Sprintf("%s - %s", artist, title)
	wc.AddWarning(MusicBrainzLookupWarning, context, "MusicBrainz lookup returned no match", details)
}

// AddMetadataValidationWarning adds an advisory metadata validation warning
func (wc *WarningCollector) AddMetadataValidationWarning(path string, issues []string) {
	wc.AddWarning(MetadataValidationWarning, path, "Metadata validation issues", strings.Join(issues, ", "))
}

// AddCoverArtWarning adds a cover art embedding warning
func (wc *WarningCollector) AddCoverArtWarning(context, details string) {
	wc.AddWarning(CoverArtWarning, context, "Failed to embed cover art", details)
}

// AddTagWriteWarning adds a tag write failure warning
func (wc *WarningCollector) AddTagWriteWarning(path, details string) {
	wc.AddWarning(TagWriteWarning, path, "Failed to write tags", details)
}

// AddFileSkippedWarning adds a skipped file warning
func (wc *WarningCollector) AddFileSkippedWarning(path, details string) {
	wc.AddWarning(FileSkippedWarning, path, "File skipped", details)
}

// RemoveWarningsByTypeAndContext removes warnings of a specific type and context
func (wc *WarningCollector) RemoveWarningsByTypeAndContext(warningType WarningType, context string) {
	if !wc.enabled {
		return
	}

	var filtered []Warning
	for _, warning := range wc.warnings {
		if warning.Type != warningType || warning.Context != context {
			filtered = append(filtered, warning)
		}
	}
	wc.warnings = filtered
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return len(wc.warnings) > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	return len(wc.warnings)
}

// GetWarningsByType returns warnings grouped by type
func (wc *WarningCollector) GetWarningsByType() map[WarningType][]Warning {
	grouped := make(map[WarningType][]Warning)
	for _, warning := range wc.warnings {
		grouped[warning.Type] = append(grouped[warning.Type], warning)
	}
	return grouped
}

// PrintSummary prints a formatted summary of all warnings
func (wc *WarningCollector) PrintSummary() {
	if !wc.HasWarnings() {
		return
	}

	ColorWarning.Printf("\n⚠️  Warning Summary (%d warnings):\n", len(wc.warnings))
	ColorWarning.Println(strings.Repeat("─", 50))

	grouped := wc.GetWarningsByType()

	// Sort warning types for consistent output
	var types []WarningType
	for warningType := range grouped {
		types = append(types, warningType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, warningType := range types {
		wc.printWarningTypeSection(warningType, grouped[warningType])
	}
}

// printWarningTypeSection prints warnings for a specific type
func (wc *WarningCollector) printWarningTypeSection(warningType WarningType, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	sectionTitle := wc.getWarningTypeTitle(warningType)
	ColorWarning.Printf("\n%s (%d):\n", sectionTitle, len(warnings))

	// Group similar warnings to avoid repetition
	contextCounts := make(map[string]int)
	for _, warning := range warnings {
		contextCounts[warning.Context]++
	}

	var contexts []string
	for context := range contextCounts {
		contexts = append(contexts, context)
	}
	sort.Strings(contexts)

	for _, context := range contexts {
		count := contextCounts[context]
		if count > 1 {
			ColorWarning.Printf("  • %s (×%d)\n", context, count)
		} else {
			ColorWarning.Printf("  • %s\n", context)
		}
	}
}

// getWarningTypeTitle returns a human-readable title for a warning type
func (wc *WarningCollector) getWarningTypeTitle(warningType WarningType) string {
	switch warningType {
	case MusicBrainzLookupWarning:
		return "MusicBrainz Lookup Failures"
	case MetadataValidationWarning:
		return "Metadata Validation Issues"
	case CoverArtWarning:
		return "Cover Art Failures"
	case TagWriteWarning:
		return "Tag Write Failures"
	case FileSkippedWarning:
		return "Files Skipped"
	default:
		return "Other Warnings"
	}
}
