// Package config provides configuration management for changelog-reader using koanf.
// Values are merged with priority: explicit CLI flags > environment variables
// (CHANGELOG_READER_*) > config file (.changelog-reader.json and friends) > defaults.
// Only JSON config files are supported.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHANGELOG_READER_"

// Config is the merged reader configuration.
type Config struct {
	// Path is a local changelog path, a URL to a changelog file or a
	// repository root URL. Empty means ./CHANGELOG.md unless RepoURL is set.
	Path string `koanf:"path"`
	// RepoURL names a repository whose CHANGELOG.md is fetched at Ref.
	RepoURL  string `koanf:"repo_url"`
	Ref      string `koanf:"ref" validate:"required"`
	RepoType string `koanf:"repo_type" validate:"oneof=auto github gitea gitlab bitbucket"`

	ValidationLevel string `koanf:"validation_level" validate:"oneof=none warn error"`
	ValidationDepth int    `koanf:"validation_depth" validate:"min=1"`

	// Token authenticates HTTP requests. Never logged in full.
	Token string `koanf:"token"`
	// Version selects the entry to read. Empty means the first entry.
	Version    string `koanf:"version"`
	OutputFile string `koanf:"output_file"`
	Format     string `koanf:"format" validate:"oneof=text markdown json yaml github"`

	SkipCertificateCheck bool          `koanf:"skip_certificate_check"`
	Timeout              time.Duration `koanf:"timeout"`
	Retries              int           `koanf:"retries" validate:"min=0,max=10"`

	// FromRemote derives RepoURL from the local git remote when RepoURL is empty.
	FromRemote bool   `koanf:"from_remote"`
	Remote     string `koanf:"remote"`
	// LocalRef reads a local changelog from this git ref instead of the worktree.
	LocalRef string `koanf:"local_ref"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file. It must exist.
	ConfigPath string
	// Dir is searched for a config file when ConfigPath is empty (default: working directory).
	Dir string
	// SkipDiscovery disables the search in Dir.
	SkipDiscovery bool
	// Overrides holds explicitly set CLI flags keyed by config key.
	Overrides map[string]interface{}
}

// Load merges defaults, the config file, environment variables and overrides
// into a validated Config.
func Load(opts LoadOptions) (Config, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path, err := configFilePath(opts)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := LoadFile(k, path); err != nil {
			return Config{}, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return Config{}, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("setting %s: %w", key, err)
		}
	}

	cfg, err := finalizeConfig(k, path)
	if err != nil {
		return Config{}, err
	}
	cfg.File = path
	return cfg, nil
}

// configFilePath picks the explicit config file or discovers one.
func configFilePath(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		path, err := homedir.Expand(opts.ConfigPath)
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", opts.ConfigPath, err)
		}
		if !fileExists(path) {
			return "", &NotFoundError{Path: opts.ConfigPath}
		}
		return path, nil
	}

	if opts.SkipDiscovery {
		return "", nil
	}
	return FindConfigFile(opts.Dir)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

// LoadFile loads one config file into k. JSON files load; YAML files and
// any other extension are rejected.
func LoadFile(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return &NotFoundError{Path: path}
	}

	if err := checkFormat(path); err != nil {
		return err
	}

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// checkFormat accepts .json files and the extensionless .changelogrc.
func checkFormat(path string) error {
	base := filepath.Base(path)
	if base == ".changelogrc" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".json":
		return nil
	case ".yml", ".yaml":
		return ErrYAMLNotSupported
	default:
		return &UnsupportedFormatError{Ext: ext}
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, expands paths and validates
func finalizeConfig(k *koanf.Koanf, source string) (Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Path = expandHomePath(cfg.Path)
	cfg.OutputFile = expandHomePath(cfg.OutputFile)

	if source == "" {
		source = "config"
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// fileExists returns true if the file exists and is not a directory
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform converts environment variable names to config keys
// Example: CHANGELOG_READER_REPO_URL -> repo_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// Values returns the configuration keyed by config key, as shown by
// "config show".
func (c Config) Values() map[string]interface{} {
	return map[string]interface{}{
		"path":                   c.Path,
		"repo_url":               c.RepoURL,
		"ref":                    c.Ref,
		"repo_type":              c.RepoType,
		"validation_level":       c.ValidationLevel,
		"validation_depth":       c.ValidationDepth,
		"token":                  c.Token,
		"version":                c.Version,
		"output_file":            c.OutputFile,
		"format":                 c.Format,
		"skip_certificate_check": c.SkipCertificateCheck,
		"timeout":                c.Timeout.String(),
		"retries":                c.Retries,
		"from_remote":            c.FromRemote,
		"remote":                 c.Remote,
		"local_ref":              c.LocalRef,
	}
}
