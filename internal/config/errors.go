package config

import (
	"errors"
	"fmt"
)

// ErrYAMLNotSupported is returned for .yml and .yaml config files.
var ErrYAMLNotSupported = errors.New("YAML configuration files are not yet supported. Please use JSON format.")

// UnsupportedFormatError is returned for config files that are neither JSON nor YAML.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported configuration file format: %s", e.Ext)
}

// NotFoundError is returned when an explicitly named config file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}
