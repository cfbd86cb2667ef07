package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project-level config file name.
const DefaultFileName = ".winepfx.yaml"

const defaultHeader = `# winepfx configuration
#
# Each prefix is a Wine installation root containing bin/wine.
# Debug rules become WINEDEBUG, in order; later rules win.
`

// Default returns the configuration written by "winepfx init".
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		DefaultPrefix: "default",
		Prefixes: map[string]PrefixConfig{
			"default": {
				Path:         "~/.wine",
				LibraryPaths: append([]string(nil), DefaultLibraryPaths...),
				Debug: []DebugRule{
					{Class: "fixme", Channel: "all", Enabled: false},
				},
			},
		},
	}
}

// RenderYAML encodes cfg as a commented YAML document.
func RenderYAML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(defaultHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
