package changelog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Levels(t *testing.T) {
	log := &Changelog{Entries: []Entry{
		{Version: "Unreleased", Status: StatusUnreleased, Changes: "- Pending"},
		{Version: "v1.1", Date: "2024/02/01", Status: StatusReleased, Changes: "- Change"},
		{Version: "1.0.0", Date: "2024-01-01", Status: StatusReleased, Changes: "  \n"},
	}}

	tests := map[string]struct {
		level        ValidationLevel
		wantValid    bool
		wantErrors   []string
		wantWarnings []string
	}{
		"none suppresses version and date findings": {
			level:        LevelNone,
			wantValid:    true,
			wantErrors:   []string{},
			wantWarnings: []string{"Version 1.0.0 has no changes"},
		},
		"warn reports warnings": {
			level:      LevelWarn,
			wantValid:  true,
			wantErrors: []string{},
			wantWarnings: []string{
				"Invalid version format: v1.1",
				"Invalid date format for version v1.1: 2024/02/01. Expected YYYY-MM-DD",
				"Version 1.0.0 has no changes",
			},
		},
		"error reports errors": {
			level:     LevelError,
			wantValid: false,
			wantErrors: []string{
				"Invalid version format: v1.1",
				"Invalid date format for version v1.1: 2024/02/01. Expected YYYY-MM-DD",
			},
			wantWarnings: []string{"Version 1.0.0 has no changes"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Validate(log, ValidationOptions{Level: tt.level, Depth: 10})
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestValidate_Depth(t *testing.T) {
	entries := make([]Entry, 20)
	for i := range entries {
		entries[i] = Entry{Version: fmt.Sprintf("bad-%d", i), Status: StatusReleased, Changes: "- x"}
	}
	log := &Changelog{Entries: entries}

	tests := map[string]struct {
		depth int
		want  int
	}{
		"depth 5 of 20":         {depth: 5, want: 5},
		"depth larger than log": {depth: 50, want: 20},
		"zero uses default":     {depth: 0, want: DefaultValidationDepth},
		"negative uses default": {depth: -3, want: DefaultValidationDepth},
		"depth 1":               {depth: 1, want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Validate(log, ValidationOptions{Level: LevelError, Depth: tt.depth})
			require.Len(t, got.Errors, tt.want)
			assert.Equal(t, "Invalid version format: bad-0", got.Errors[0])
			assert.False(t, got.Valid)
		})
	}
}

func TestValidate_DepthSkipsOlderEntries(t *testing.T) {
	log := &Changelog{Entries: []Entry{
		{Version: "2.0.0", Date: "2024-02-01", Changes: "- ok"},
		{Version: "1.0.0", Date: "2024-01-01", Changes: "- ok"},
		{Version: "not-semver", Date: "yesterday", Changes: ""},
	}}

	got := Validate(log, ValidationOptions{Level: LevelError, Depth: 2})

	assert.True(t, got.Valid)
	assert.Empty(t, got.Errors)
	assert.Empty(t, got.Warnings)
}

func TestValidate_UnreleasedDateAccepted(t *testing.T) {
	log := &Changelog{Entries: []Entry{
		{Version: "1.0.0", Date: "Unreleased", Changes: "- x"},
		{Version: "0.9.0", Changes: "- y"},
	}}

	got := Validate(log, ValidationOptions{Level: LevelError})

	assert.True(t, got.Valid)
	assert.Empty(t, got.Errors)
}

func TestValidate_EmptyChangelog(t *testing.T) {
	for name, log := range map[string]*Changelog{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			got := Validate(log, ValidationOptions{Level: LevelError})
			assert.True(t, got.Valid)
			assert.NotNil(t, got.Errors)
			assert.NotNil(t, got.Warnings)
		})
	}
}

func TestParseValidationLevel(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    ValidationLevel
		wantErr bool
	}{
		"none":       {input: "none", want: LevelNone},
		"empty":      {input: "", want: LevelNone},
		"warn":       {input: "warn", want: LevelWarn},
		"error":      {input: "error", want: LevelError},
		"mixed case": {input: " Error ", want: LevelError},
		"invalid":    {input: "fatal", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseValidationLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid validation level")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
