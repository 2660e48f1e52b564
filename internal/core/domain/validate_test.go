package domain_test

import (
	"strings"
	"testing"

	"github.com/data-tales/tree-locator/internal/core/domain"
)

func TestValidateQuery_Normalizes(t *testing.T) {
	q, err := domain.ValidateQuery("  Darmstadt,   Hessen  ")
	if err != nil {
		t.Fatal(err)
	}
	if q != "Darmstadt, Hessen" {
		t.Errorf("expected collapsed whitespace, got %q", q)
	}
}

func TestValidateQuery_Length(t *testing.T) {
	if _, err := domain.ValidateQuery("x"); err == nil {
		t.Error("expected error for 1-char query")
	}
	if _, err := domain.ValidateQuery(strings.Repeat("a", 121)); err == nil {
		t.Error("expected error for 121-char query")
	}
	if _, err := domain.ValidateQuery(strings.Repeat("a", 120)); err != nil {
		t.Errorf("120-char query should pass: %v", err)
	}
	// Length is in runes, not bytes
	if _, err := domain.ValidateQuery(strings.Repeat("ü", 120)); err != nil {
		t.Errorf("120-rune query should pass: %v", err)
	}
}

func TestValidateQuery_Charset(t *testing.T) {
	valid := []string{
		"Darmstadt, Hessen, DE",
		"Sant Julià de Lòria",
		"Provence-Alpes-Côte d'Azur",
		"東京都",
		"Foo/Bar (Baz)",
	}
	for _, q := range valid {
		if _, err := domain.ValidateQuery(q); err != nil {
			t.Errorf("%q should be valid: %v", q, err)
		}
	}

	invalid := []string{
		"<script>alert(1)</script>",
		"foo;drop table",
		"a&b",
		`x"y`,
	}
	for _, q := range invalid {
		if _, err := domain.ValidateQuery(q); err == nil {
			t.Errorf("%q should be rejected", q)
		}
	}
}

func TestValidateQuery_ErrorCarriesHint(t *testing.T) {
	_, err := domain.ValidateQuery("x")
	ue, ok := domain.AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	if ue.Kind != domain.KindValidation {
		t.Errorf("expected validation kind, got %v", ue.Kind)
	}
	if ue.Hint == "" {
		t.Error("expected a hint on the validation error")
	}
}

func TestParseRadiusKm(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"", 2, false},
		{"2", 2, false},
		{"0.1", 0.1, false},
		{"50", 50, false},
		{"5.5", 5.5, false},
		{"0.05", 0, true},
		{"51", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := domain.ParseRadiusKm(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRadiusKm(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRadiusKm(%q): %v", tt.raw, err)
		} else if got != tt.want {
			t.Errorf("ParseRadiusKm(%q) = %g, want %g", tt.raw, got, tt.want)
		}
	}
}

func TestParseLimit(t *testing.T) {
	if got, err := domain.ParseLimit("", 500); err != nil || got != 500 {
		t.Errorf("empty limit should default to 500, got %d (%v)", got, err)
	}
	if got, err := domain.ParseLimit("2000", 500); err != nil || got != 2000 {
		t.Errorf("limit 2000 should pass, got %d (%v)", got, err)
	}
	for _, raw := range []string{"0", "2001", "-5", "12.5", "many"} {
		if _, err := domain.ParseLimit(raw, 500); err == nil {
			t.Errorf("ParseLimit(%q): expected error", raw)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := domain.ParseMode(""); err != nil || m != domain.ModeCount {
		t.Errorf("empty mode should default to count, got %q (%v)", m, err)
	}
	if m, err := domain.ParseMode("SAMPLE"); err != nil || m != domain.ModeSample {
		t.Errorf("mode should be case-insensitive, got %q (%v)", m, err)
	}
	if _, err := domain.ParseMode("everything"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestParseQueryMode(t *testing.T) {
	if m, err := domain.ParseQueryMode(""); err != nil || m != domain.QueryModeBoundary {
		t.Errorf("empty query mode should default to boundary, got %q (%v)", m, err)
	}
	if m, err := domain.ParseQueryMode("radius"); err != nil || m != domain.QueryModeRadius {
		t.Errorf("radius mode failed, got %q (%v)", m, err)
	}
	if _, err := domain.ParseQueryMode("square"); err == nil {
		t.Error("expected error for unknown query mode")
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		q    string
		want string
	}{
		{"Darmstadt", "trees_Darmstadt.geojson"},
		{"Darmstadt, Hessen, DE", "trees_Darmstadt_Hessen_DE.geojson"},
		{"a/b\\c", "trees_a_b_c.geojson"},
	}
	for _, tt := range tests {
		if got := domain.ExportFilename(tt.q); got != tt.want {
			t.Errorf("ExportFilename(%q) = %q, want %q", tt.q, got, tt.want)
		}
	}

	long := domain.ExportFilename(strings.Repeat("a", 100))
	if len(long) > len("trees_")+60+len(".geojson") {
		t.Errorf("filename not truncated: %q", long)
	}
}

func TestAreaID(t *testing.T) {
	rel := &domain.Place{OSMType: "relation", OSMID: 62581}
	if id, ok := rel.AreaID(); !ok || id != 3600062581 {
		t.Errorf("relation area ID = %d, %v", id, ok)
	}
	way := &domain.Place{OSMType: "way", OSMID: 100}
	if id, ok := way.AreaID(); !ok || id != 2400000100 {
		t.Errorf("way area ID = %d, %v", id, ok)
	}
	node := &domain.Place{OSMType: "node", OSMID: 1}
	if _, ok := node.AreaID(); ok {
		t.Error("node must not map to an area")
	}
}
