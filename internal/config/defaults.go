package config

import "time"

// DefaultPath is the changelog read when neither path nor repo_url is set.
const DefaultPath = "./CHANGELOG.md"

// GetDefaultConfigTemplate returns a config file with every key at its
// default value, suitable for .changelog-reader.json.
func GetDefaultConfigTemplate() string {
	return `{
  "path": "./CHANGELOG.md",
  "repo_url": "",
  "ref": "main",
  "repo_type": "auto",
  "validation_level": "none",
  "validation_depth": 10,
  "output_file": "",
  "format": "text",
  "skip_certificate_check": false,
  "timeout": "30s",
  "retries": 2
}
`
}

// GetDefaults returns the default configuration values. path is left empty
// so that a repo_url from any source takes precedence over the local default.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"path":                   "",
		"repo_url":               "",
		"ref":                    "main",
		"repo_type":              "auto",
		"validation_level":       "none",
		"validation_depth":       10,
		"token":                  "",
		"version":                "",
		"output_file":            "",
		"format":                 "text",
		"skip_certificate_check": false,
		"timeout":                (30 * time.Second).String(),
		"retries":                2,
		"from_remote":            false,
		"remote":                 "origin",
		"local_ref":              "",
	}
}
