package metadata

// Template controls which optional tags a profile embeds. Artist, title,
// the URI comment segment and Extra are always kept.
type Template struct {
	Name          string
	Album         bool
	Date          bool
	Genre         bool
	BPM           bool
	Comment       bool
	EmbedCoverArt bool
}

var templates = map[string]Template{
	"basic": {
		Name:  "basic",
		Album: true,
	},
	"comprehensive": {
		Name:          "comprehensive",
		Album:         true,
		Date:          true,
		Genre:         true,
		BPM:           true,
		Comment:       true,
		EmbedCoverArt: true,
	},
	"dj-mix": {
		Name:    "dj-mix",
		Album:   true,
		Date:    true,
		Genre:   true,
		BPM:     true,
		Comment: true,
	},
}

// GetTemplate resolves a template by name, falling back to basic for
// unknown names so a typo in config degrades instead of failing.
func GetTemplate(name string) Template {
	if tpl, ok := templates[name]; ok {
		return tpl
	}
	return templates["basic"]
}

// TemplateNames lists the available profile names.
func TemplateNames() []string {
	return []string{"basic", "comprehensive", "dj-mix"}
}

// ApplyTemplate blanks the fields a profile disables. Artist, title, URI
// and Extra pass through untouched.
func ApplyTemplate(meta TrackMetadata, tpl Template) TrackMetadata {
	out := meta
	if !tpl.Album {
		out.Album = ""
	}
	if !tpl.Date {
		out.Date = ""
	}
	if !tpl.Genre {
		out.Genre = ""
	}
	if !tpl.BPM {
		out.BPM = ""
	}
	if !tpl.Comment {
		out.Comment = ""
	}
	return out
}
