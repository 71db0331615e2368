package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidWorkers indicates an invalid worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidReplace indicates a malformed placeholder replacement
	ErrInvalidReplace = errors.New("invalid replacement")
)

var validFormats = map[string]bool{
	"markdown": true,
	"md":       true,
	"json":     true,
	"html":     true,
	"csv":      true,
	"table":    true,
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if !validFormats[strings.ToLower(cfg.Output.Format)] {
		errs = append(errs, fmt.Errorf("%w: got '%s' (valid: markdown, json, html, csv, table)", ErrInvalidFormat, cfg.Output.Format))
	}

	if cfg.Scan.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Scan.Workers))
	}

	for name := range cfg.Scan.Replace {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%w: placeholder name cannot be empty", ErrInvalidReplace))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
