// Package changelog reads Keep a Changelog markdown documents.
//
// This package implements:
//   - Parsing a CHANGELOG.md into ordered version entries
//   - Semantic version and date checks over the most recent entries
//   - Version lookup and status queries
//   - Output records and their text, markdown, JSON, YAML and GitHub encodings
//
// Parsing is total: malformed input never fails, it only yields fewer or
// partial entries. Entries are kept in document order, newest first by
// convention.
package changelog
