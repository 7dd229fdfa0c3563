package changelog

import (
	"fmt"
	"strings"
	"testing"
)

// generateLargeChangelog creates a CHANGELOG.md string with the specified
// number of version entries, each with a few subsections.
func generateLargeChangelog(entryCount int) string {
	var buf strings.Builder

	buf.WriteString("# Changelog\n\nAll notable changes to this project will be documented in this file.\n\n")
	buf.WriteString("## [Unreleased]\n\n### Added\n- Work in progress\n\n")

	for v := entryCount - 1; v >= 1; v-- {
		buf.WriteString(fmt.Sprintf("## [%d.0.0] - 2024-%02d-%02d\n\n", v, (v%12)+1, (v%28)+1))
		writeVersionSections(&buf)
	}

	return buf.String()
}

// writeVersionSections writes a fixed set of subsections for one version.
func writeVersionSections(buf *strings.Builder) {
	categories := []string{"Added", "Changed", "Fixed"}

	for _, cat := range categories {
		buf.WriteString(fmt.Sprintf("### %s\n", cat))
		for j := 0; j < 3; j++ {
			buf.WriteString(fmt.Sprintf("- Entry %d for %s category with some description text\n", j+1, cat))
		}
		buf.WriteString("\n")
	}
}

// BenchmarkParse_1000Entries benchmarks parsing a changelog with 1000 versions.
func BenchmarkParse_1000Entries(b *testing.B) {
	content := generateLargeChangelog(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log := Parse(content)
		if log.Len() != 1000 {
			b.Fatalf("unexpected entry count: %d", log.Len())
		}
	}
}

// BenchmarkParse_100Entries benchmarks a typical changelog size.
func BenchmarkParse_100Entries(b *testing.B) {
	content := generateLargeChangelog(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Parse(content)
	}
}

// BenchmarkValidate_1000Entries benchmarks validation over the whole changelog.
func BenchmarkValidate_1000Entries(b *testing.B) {
	log := Parse(generateLargeChangelog(1000))
	opts := ValidationOptions{Level: LevelError, Depth: 1000}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := Validate(log, opts)
		if !result.Valid {
			b.Fatalf("unexpected validation errors: %v", result.Errors)
		}
	}
}

func TestGenerateLargeChangelog(t *testing.T) {
	log := Parse(generateLargeChangelog(50))

	if log.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", log.Len())
	}
	if !log.Entries[0].IsUnreleased() {
		t.Errorf("expected first entry to be unreleased, got %q", log.Entries[0].Version)
	}
	if log.Entries[49].Version != "1.0.0" {
		t.Errorf("expected last entry 1.0.0, got %q", log.Entries[49].Version)
	}
}
