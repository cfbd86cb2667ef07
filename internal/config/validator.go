package config

import (
	"fmt"
	"strings"

	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration. It checks the shape of the config only;
// whether a prefix root actually contains bin/wine is checked when the prefix
// is opened.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.validateLog(&cfg.Log)
	v.validatePrefixes(cfg)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}
}

func (v *Validator) validatePrefixes(cfg *Config) {
	if cfg.DefaultPrefix != "" {
		if _, ok := cfg.Prefixes[cfg.DefaultPrefix]; !ok {
			v.addError("default_prefix", cfg.DefaultPrefix, "no prefix with this name is configured")
		}
	}

	for _, name := range cfg.PrefixNames() {
		v.validatePrefix("prefixes."+name, cfg.Prefixes[name])
	}
}

func (v *Validator) validatePrefix(field string, cfg PrefixConfig) {
	if strings.TrimSpace(cfg.Path) == "" {
		v.addError(field+".path", cfg.Path, "path required")
	}

	for i, lib := range cfg.LibraryPaths {
		if strings.ContainsRune(lib, ':') {
			v.addError(fmt.Sprintf("%s.library_paths[%d]", field, i), lib, "must not contain ':'")
		}
	}

	for i, rule := range cfg.Debug {
		ruleField := fmt.Sprintf("%s.debug[%d]", field, i)
		if strings.TrimSpace(rule.Channel) == "" {
			v.addError(ruleField+".channel", rule.Channel, "channel required")
		}
		if _, ok := wine.ParseClass(rule.Class); !ok {
			v.addError(ruleField+".class", rule.Class, "must be one of: trace, warn, err, fixme")
		}
	}
}

// ValidateConfig is a convenience function that creates a validator and validates config.
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
