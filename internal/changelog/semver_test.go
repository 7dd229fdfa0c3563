package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSemVer(t *testing.T) {
	tests := map[string]struct {
		version string
		want    bool
	}{
		"simple":                     {version: "1.0.0", want: true},
		"zeros":                      {version: "0.0.0", want: true},
		"large numbers":              {version: "10.200.3000", want: true},
		"prerelease":                 {version: "1.0.0-alpha", want: true},
		"dotted prerelease":          {version: "1.0.0-alpha.1", want: true},
		"numeric prerelease":         {version: "1.0.0-0.3.7", want: true},
		"hyphenated prerelease":      {version: "1.0.0-x-y-z.--", want: true},
		"build metadata":             {version: "1.0.0+20130313144700", want: true},
		"prerelease and build":       {version: "1.0.0-beta+exp.sha.5114f85", want: true},
		"build leading zero":         {version: "1.0.0+001", want: true},
		"unreleased":                 {version: "Unreleased", want: true},
		"unreleased upper":           {version: "UNRELEASED", want: true},
		"unreleased lower":           {version: "unreleased", want: true},
		"missing patch":              {version: "1.0", want: false},
		"v prefix":                   {version: "v1.0.0", want: false},
		"leading zero major":         {version: "01.0.0", want: false},
		"leading zero minor":         {version: "1.02.0", want: false},
		"leading zero prerelease":    {version: "1.0.0-01", want: false},
		"empty prerelease":           {version: "1.0.0-", want: false},
		"empty build":                {version: "1.0.0+", want: false},
		"empty prerelease ident":     {version: "1.0.0-alpha..1", want: false},
		"invalid prerelease char":    {version: "1.0.0-alpha_1", want: false},
		"four components":            {version: "1.0.0.0", want: false},
		"empty":                      {version: "", want: false},
		"word":                       {version: "latest", want: false},
		"surrounding whitespace":     {version: " 1.0.0", want: false},
		"unreleased with extra text": {version: "Unreleased changes", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSemVer(tt.version))
		})
	}
}
