package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Letters (any script), digits, underscore, whitespace and a small
	// set of punctuation that occurs in real place names.
	queryCharsRe   = regexp.MustCompile(`^[\p{L}\p{N}_\s.,\-'/()]+$`)
	filenameSafeRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

// NormalizeQuery trims the place name and collapses runs of whitespace.
func NormalizeQuery(q string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(q), " ")
}

// ValidateQuery normalizes and checks a place name.
func ValidateQuery(q string) (string, error) {
	q = NormalizeQuery(q)
	if n := len([]rune(q)); n < QueryMinLen || n > QueryMaxLen {
		return "", Invalid(
			fmt.Sprintf("place name must be %d-%d characters", QueryMinLen, QueryMaxLen),
			`example: "Darmstadt, Hessen, DE"`,
		)
	}
	if !queryCharsRe.MatchString(q) {
		return "", Invalid(
			"place name contains characters that are not allowed",
			"allowed: letters, digits, whitespace and . , - ' / ( )",
		)
	}
	return q, nil
}

// ParseRadiusKm parses and bounds-checks a radius. Empty input yields the
// default radius.
func ParseRadiusKm(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return RadiusDefaultKm, nil
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, Invalid("radius must be a number", "example: 2 or 5.5")
	}
	if val < RadiusMinKm || val > RadiusMaxKm {
		return 0, Invalid(
			fmt.Sprintf("radius must be between %g and %g km", RadiusMinKm, RadiusMaxKm), "")
	}
	return val, nil
}

// ParseLimit parses and bounds-checks a sample limit. Empty input yields
// the given default.
func ParseLimit(raw string, def int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, Invalid("limit must be an integer", fmt.Sprintf("1-%d", SampleMax))
	}
	if val < 1 || val > SampleMax {
		return 0, Invalid(fmt.Sprintf("limit must be between 1 and %d", SampleMax), "")
	}
	return val, nil
}

// ParseMode validates the output mode. Empty input defaults to count.
func ParseMode(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ModeCount:
		return ModeCount, nil
	case ModeSample:
		return ModeSample, nil
	}
	return "", Invalid("invalid mode", "allowed: count, sample")
}

// ParseQueryMode validates the search mode. Empty input defaults to boundary.
func ParseQueryMode(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", QueryModeBoundary:
		return QueryModeBoundary, nil
	case QueryModeRadius:
		return QueryModeRadius, nil
	}
	return "", Invalid("invalid query mode", "allowed: boundary, radius")
}

// ExportFilename builds a download filename for a GeoJSON export from the
// place query, keeping only filesystem-safe characters.
func ExportFilename(q string) string {
	safe := filenameSafeRe.ReplaceAllString(q, "_")
	if len(safe) > 60 {
		safe = safe[:60]
	}
	return "trees_" + safe + ".geojson"
}
