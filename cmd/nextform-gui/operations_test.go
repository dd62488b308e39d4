package main

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"

	"github.com/vasquezjesus2710/next-form-project/internal/manifest"
	"github.com/vasquezjesus2710/next-form-project/internal/schema"
)

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays", "report.csv", 36, "report.csv"},
		{"exact stays", "abcde", 5, "abcde"},
		{"long is cut", "abcdefgh", 5, "abcd…"},
		{"zero max stays", "abc", 0, "abc"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLabel(tt.in, tt.max); got != tt.want {
				t.Fatalf("truncateLabel(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateLabelKeepsGraphemesIntact(t *testing.T) {
	// Family emoji is one grapheme built from several runes.
	emoji := "\U0001F468‍\U0001F469‍\U0001F467"
	name := strings.Repeat("a", 4) + emoji + "bcdef.csv"

	got := truncateLabel(name, 6)
	if want := "aaaa" + emoji + "…"; got != want {
		t.Fatalf("truncateLabel = %q, want %q", got, want)
	}
	if n := uniseg.GraphemeClusterCount(got); n != 6 {
		t.Fatalf("truncated label has %d graphemes, want 6", n)
	}
}

func TestSubmissionAttrs(t *testing.T) {
	values := map[string]any{
		schema.FieldImportName:      "Import ABC",
		schema.FieldManifestFile:    &manifest.Descriptor{Name: "roster.csv", Size: 1536},
		schema.FieldSplitSchedule:   "No",
		schema.FieldClient:          "Corporate",
		schema.FieldTestingCenter1:  "Center North",
		schema.FieldTestingCenter2:  "",
		schema.FieldToleranceWindow: true,
	}

	attrs := submissionAttrs("abc-123", values)
	got := make(map[string]any)
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			t.Fatalf("attr key at %d is not a string: %v", i, attrs[i])
		}
		got[key] = attrs[i+1]
	}

	if got["session_id"] != "abc-123" {
		t.Fatalf("session_id = %v, want abc-123", got["session_id"])
	}
	if got["import_name"] != "Import ABC" {
		t.Fatalf("import_name = %v", got["import_name"])
	}
	if got["manifest"] != "roster.csv" {
		t.Fatalf("manifest = %v, want roster.csv", got["manifest"])
	}
	if got["manifest_kb"] != int64(2) {
		t.Fatalf("manifest_kb = %v, want 2", got["manifest_kb"])
	}
	if got["testing_centers"] != 1 {
		t.Fatalf("testing_centers = %v, want 1", got["testing_centers"])
	}
	if got["tolerance_window"] != true {
		t.Fatalf("tolerance_window = %v, want true", got["tolerance_window"])
	}
}

func TestSubmissionAttrsNilManifest(t *testing.T) {
	values := map[string]any{
		schema.FieldImportName:   "Import DEF",
		schema.FieldManifestFile: (*manifest.Descriptor)(nil),
	}
	attrs := submissionAttrs("s-1", values)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i] == "manifest" {
			t.Fatalf("nil manifest should not be logged")
		}
	}
}

func TestCentersFilled(t *testing.T) {
	values := map[string]any{
		schema.FieldTestingCenter1: "North",
		schema.FieldTestingCenter2: "   ",
		schema.FieldTestingCenter3: "",
		schema.FieldTestingCenter4: "South",
	}
	if got := centersFilled(values); got != 2 {
		t.Fatalf("centersFilled = %d, want 2", got)
	}
	if got := centersFilled(map[string]any{}); got != 0 {
		t.Fatalf("centersFilled on empty values = %d, want 0", got)
	}
}
