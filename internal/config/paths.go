package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileNames are the config files searched for, in order.
var ConfigFileNames = []string{
	".changelog-reader.json",
	".changelog-reader.yml",
	".changelog-reader.yaml",
	".changelogrc",
	".changelogrc.json",
}

// FindConfigFile returns the first config file present in dir, or an empty
// string when there is none. An empty dir means the working directory.
func FindConfigFile(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}
