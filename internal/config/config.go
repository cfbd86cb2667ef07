package config

// Config holds all application configuration.
type Config struct {
	Log           LogConfig               `mapstructure:"log" yaml:"log"`
	DefaultPrefix string                  `mapstructure:"default_prefix" yaml:"default_prefix"`
	Prefixes      map[string]PrefixConfig `mapstructure:"prefixes" yaml:"prefixes"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// PrefixConfig describes one Wine prefix.
type PrefixConfig struct {
	Path         string      `mapstructure:"path" yaml:"path"`
	LibraryPaths []string    `mapstructure:"library_paths" yaml:"library_paths"`
	ESync        bool        `mapstructure:"esync" yaml:"esync"`
	MSync        bool        `mapstructure:"msync" yaml:"msync"`
	Debug        []DebugRule `mapstructure:"debug" yaml:"debug,omitempty"`
}

// DebugRule is the config form of a WINEDEBUG rule. Process and Class are
// optional filters.
type DebugRule struct {
	Process string `mapstructure:"process" yaml:"process,omitempty"`
	Class   string `mapstructure:"class" yaml:"class,omitempty"`
	Channel string `mapstructure:"channel" yaml:"channel"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}
