package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

func TestPrefixConfig_Rules(t *testing.T) {
	pc := PrefixConfig{Debug: []DebugRule{
		{Channel: "heap", Enabled: true},
		{Process: "foo.exe", Class: "error", Channel: "heap"},
		{Class: "fixme", Channel: "d3d11"},
	}}

	rules, err := pc.Rules()
	require.NoError(t, err)
	assert.Equal(t, "+heap,foo.exe:err:-heap,fixme:-d3d11", rules.String())
	assert.Equal(t, wine.ChannelHeap, rules.Rules()[0].Channel)
	assert.True(t, rules.Rules()[2].Channel.IsOther())
}

func TestPrefixConfig_RulesEmpty(t *testing.T) {
	rules, err := PrefixConfig{}.Rules()
	require.NoError(t, err)
	assert.True(t, rules.IsEmpty())
}

func TestPrefixConfig_RulesUnknownClass(t *testing.T) {
	_, err := PrefixConfig{Debug: []DebugRule{{Class: "loud", Channel: "heap"}}}.Rules()
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation(core.CodeInvalidConfig, "")))
}

func TestPrefixConfig_Open(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := filepath.Join(home, "pfx")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "wine"), []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test executable

	p, err := PrefixConfig{
		Path:         "~/pfx",
		LibraryPaths: []string{"~/lib", "/usr/lib"},
		MSync:        true,
	}.Open()
	require.NoError(t, err)

	assert.Equal(t, root, p.Root())
	assert.Equal(t, filepath.Join(home, "lib")+":/usr/lib", p.LibraryPath())
	assert.Equal(t, wine.Settings{MSync: true}, p.Settings())
}

func TestPrefixConfig_OpenInvalid(t *testing.T) {
	_, err := PrefixConfig{Path: t.TempDir()}.Open()
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatValidation))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("GAMES", "/srv/games")

	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/home/tester/.wine", ExpandPath("~/.wine"))
	assert.Equal(t, "/srv/games/pfx", ExpandPath("$GAMES/pfx"))
	assert.Equal(t, "/abs", ExpandPath("/abs"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}

func TestResolvePrefix(t *testing.T) {
	cfg := &Config{
		DefaultPrefix: "main",
		Prefixes: map[string]PrefixConfig{
			"main":  {Path: "/opt/main"},
			"games": {Path: "/opt/games"},
		},
	}

	name, pc, err := cfg.ResolvePrefix("")
	require.NoError(t, err)
	assert.Equal(t, "main", name)
	assert.Equal(t, "/opt/main", pc.Path)

	name, pc, err = cfg.ResolvePrefix("games")
	require.NoError(t, err)
	assert.Equal(t, "games", name)
	assert.Equal(t, "/opt/games", pc.Path)

	name, pc, err = cfg.ResolvePrefix("./local")
	require.NoError(t, err)
	assert.Equal(t, "./local", name)
	assert.Equal(t, "./local", pc.Path)
	assert.Equal(t, DefaultLibraryPaths, pc.LibraryPaths)

	_, _, err = cfg.ResolvePrefix("missing")
	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))
}

func TestResolvePrefix_SingleConfigured(t *testing.T) {
	cfg := &Config{Prefixes: map[string]PrefixConfig{"only": {Path: "/opt/only"}}}

	name, _, err := cfg.ResolvePrefix("")
	require.NoError(t, err)
	assert.Equal(t, "only", name)
}

func TestResolvePrefix_Fallbacks(t *testing.T) {
	cfg := &Config{}

	t.Setenv(wine.EnvPrefix, "/env/pfx")
	_, pc, err := cfg.ResolvePrefix("")
	require.NoError(t, err)
	assert.Equal(t, "/env/pfx", pc.Path)

	t.Setenv(wine.EnvPrefix, "")
	_, pc, err = cfg.ResolvePrefix("")
	require.NoError(t, err)
	assert.Equal(t, "~/.wine", pc.Path)
}

func TestSuggestPrefixes(t *testing.T) {
	cfg := &Config{Prefixes: map[string]PrefixConfig{
		"steam":    {Path: "/opt/steam"},
		"gog":      {Path: "/opt/gog"},
		"steam-32": {Path: "/opt/steam32"},
	}}

	assert.ElementsMatch(t, []string{"steam", "steam-32"}, cfg.SuggestPrefixes("stm"))
	assert.Empty(t, cfg.SuggestPrefixes("battlenet"))

	_, _, err := cfg.ResolvePrefix("gg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean gog?")

	_, _, err = cfg.ResolvePrefix("xyz")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestPrefixNamesSorted(t *testing.T) {
	cfg := &Config{Prefixes: map[string]PrefixConfig{"b": {}, "a": {}, "c": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, cfg.PrefixNames())
}
