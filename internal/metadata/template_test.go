package metadata

import "testing"

func fullMeta() TrackMetadata {
	return TrackMetadata{
		Artist:  "Artist",
		Title:   "Title",
		Album:   "Album",
		Date:    "2020-01-01",
		Genre:   "techno",
		BPM:     "130",
		Comment: "spotify_uri=spotify:track:x",
		URI:     "spotify:track:x",
		Extra:   map[string]string{"popularity": "50"},
	}
}

func TestBasicTemplateStripsOptionalFields(t *testing.T) {
	out := ApplyTemplate(fullMeta(), GetTemplate("basic"))
	if out.Artist != "Artist" || out.Title != "Title" || out.Album != "Album" {
		t.Errorf("basic should keep artist, title and album: %+v", out)
	}
	if out.Date != "" || out.Genre != "" || out.BPM != "" || out.Comment != "" {
		t.Errorf("basic should blank optional fields: %+v", out)
	}
	if out.URI != "spotify:track:x" || out.Extra["popularity"] != "50" {
		t.Error("uri and extra must always pass through")
	}
}

func TestComprehensiveTemplateKeepsEverything(t *testing.T) {
	in := fullMeta()
	out := ApplyTemplate(in, GetTemplate("comprehensive"))
	if out.Album != in.Album || out.Date != in.Date || out.Genre != in.Genre ||
		out.BPM != in.BPM || out.Comment != in.Comment {
		t.Errorf("comprehensive should not change anything: %+v", out)
	}
	if !GetTemplate("comprehensive").EmbedCoverArt {
		t.Error("comprehensive should embed cover art")
	}
}

func TestDJMixTemplateSkipsCoverOnly(t *testing.T) {
	tpl := GetTemplate("dj-mix")
	if tpl.EmbedCoverArt {
		t.Error("dj-mix should not embed cover art")
	}
	out := ApplyTemplate(fullMeta(), tpl)
	if out.BPM != "130" || out.Comment == "" || out.Date == "" {
		t.Errorf("dj-mix should keep tag fields: %+v", out)
	}
}

func TestUnknownTemplateFallsBackToBasic(t *testing.T) {
	tpl := GetTemplate("does-not-exist")
	if tpl.Name != "basic" {
		t.Errorf("expected basic fallback, got %s", tpl.Name)
	}
}
