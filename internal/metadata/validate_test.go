package metadata

import (
	"reflect"
	"testing"
)

func TestValidateCleanRecord(t *testing.T) {
	meta := TrackMetadata{
		Artist: "Bicep",
		Title:  "Glue",
		Date:   "2017-09-01",
		BPM:    "120",
	}
	if issues := Validate(meta); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestValidateIssueOrder(t *testing.T) {
	meta := TrackMetadata{
		BPM:  "fast",
		Date: "199",
	}
	want := []string{IssueMissingArtist, IssueMissingTitle, IssueBPMNotNumeric, IssueDateTooShort}
	if got := Validate(meta); !reflect.DeepEqual(got, want) {
		t.Errorf("issues = %v, want %v", got, want)
	}
}

func TestValidateBPMRange(t *testing.T) {
	cases := []struct {
		bpm  string
		want bool
	}{
		{"0", true},
		{"-5", true},
		{"301", true},
		{"300", false},
		{"1", false},
		{"", false},
	}
	for _, tc := range cases {
		meta := TrackMetadata{Artist: "a", Title: "t", BPM: tc.bpm}
		issues := Validate(meta)
		flagged := false
		for _, issue := range issues {
			if issue == IssueBPMOutOfRange {
				flagged = true
			}
		}
		if flagged != tc.want {
			t.Errorf("bpm %q flagged=%v, want %v", tc.bpm, flagged, tc.want)
		}
	}
}

func TestCorrectTrimsFields(t *testing.T) {
	meta := TrackMetadata{
		Artist: "  Moderat  ",
		Title:  " A New Error ",
	}
	fixed := Correct(meta)
	if fixed.Artist != "Moderat" || fixed.Title != "A New Error" {
		t.Errorf("trim failed: %+v", fixed)
	}
	// Input must not be mutated.
	if meta.Artist != "  Moderat  " {
		t.Error("Correct mutated its input")
	}
}

func TestCorrectBPM(t *testing.T) {
	cases := []struct {
		bpm  string
		want string
	}{
		{" 174 ", "174"},
		{"127.5", "128"},
		{"abc", "abc"},
		{"400", "400"},
		{"", ""},
	}
	for _, tc := range cases {
		fixed := Correct(TrackMetadata{Artist: "a", Title: "t", BPM: tc.bpm})
		if fixed.BPM != tc.want {
			t.Errorf("Correct bpm %q = %q, want %q", tc.bpm, fixed.BPM, tc.want)
		}
	}
}
