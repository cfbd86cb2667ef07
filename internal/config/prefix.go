package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

// DefaultLibraryPaths is used for prefixes that are not configured.
var DefaultLibraryPaths = []string{"/usr/local/lib"}

// Rules converts the configured debug rules, in order, to a RuleSet.
func (p PrefixConfig) Rules() (wine.RuleSet, error) {
	b := wine.NewRuleSetBuilder()
	for i, r := range p.Debug {
		class, ok := wine.ParseClass(r.Class)
		if !ok {
			return wine.RuleSet{}, core.ErrValidation(core.CodeInvalidConfig,
				fmt.Sprintf("debug[%d]: unknown class %q", i, r.Class))
		}
		b.Add(wine.Rule{
			Process: r.Process,
			Class:   class,
			Channel: wine.ChannelByName(r.Channel),
			Enabled: r.Enabled,
		})
	}
	return b.Build(), nil
}

// Settings returns the prefix feature toggles.
func (p PrefixConfig) Settings() wine.Settings {
	return wine.Settings{ESync: p.ESync, MSync: p.MSync}
}

// Open expands the configured paths and constructs the prefix.
func (p PrefixConfig) Open() (*wine.Prefix, error) {
	libs := make([]string, len(p.LibraryPaths))
	for i, lib := range p.LibraryPaths {
		libs[i] = ExpandPath(lib)
	}
	return wine.New(ExpandPath(p.Path), libs, p.Settings())
}

// ExpandPath replaces a leading ~ with the user's home directory and expands
// environment variables.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// LooksLikePath reports whether a --prefix value names a directory rather
// than a configured prefix.
func LooksLikePath(value string) bool {
	return strings.ContainsRune(value, '/') ||
		strings.ContainsRune(value, filepath.Separator) ||
		strings.HasPrefix(value, "~") ||
		strings.HasPrefix(value, ".")
}

// PrefixNames returns the configured prefix names, sorted.
func (c *Config) PrefixNames() []string {
	names := make([]string, 0, len(c.Prefixes))
	for name := range c.Prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePrefix selects a prefix by name or path. An empty selector picks the
// configured default, then the only configured prefix, then $WINEPREFIX, then
// ~/.wine. Prefixes given as paths use DefaultLibraryPaths.
func (c *Config) ResolvePrefix(selector string) (string, PrefixConfig, error) {
	if selector != "" && LooksLikePath(selector) {
		return selector, adHocPrefix(selector), nil
	}

	name := selector
	if name == "" {
		name = c.DefaultPrefix
	}
	if name == "" && len(c.Prefixes) == 1 {
		name = c.PrefixNames()[0]
	}
	if name == "" {
		path := os.Getenv(wine.EnvPrefix)
		if path == "" {
			path = "~/.wine"
		}
		return path, adHocPrefix(path), nil
	}

	pc, ok := c.Prefixes[name]
	if !ok {
		err := core.ErrNotFound("prefix", name).
			WithDetail("code", core.CodePrefixNotConfigured)
		if suggestions := c.SuggestPrefixes(name); len(suggestions) > 0 {
			err.Message += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
			err.WithDetail("suggestions", suggestions)
		}
		return "", PrefixConfig{}, err
	}
	return name, pc, nil
}

// SuggestPrefixes returns configured prefix names that fuzzily match name,
// best match first.
func (c *Config) SuggestPrefixes(name string) []string {
	matches := fuzzy.Find(name, c.PrefixNames())
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Str)
	}
	return names
}

func adHocPrefix(path string) PrefixConfig {
	libs := make([]string, len(DefaultLibraryPaths))
	copy(libs, DefaultLibraryPaths)
	return PrefixConfig{Path: path, LibraryPaths: libs}
}
