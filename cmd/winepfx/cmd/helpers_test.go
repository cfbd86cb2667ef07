package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a fresh temp dir so no
// real configuration is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("WINEPREFIX", "")
	t.Chdir(dir)
	return dir
}

// fakePrefix creates a prefix root with the given executables under bin/.
// bin/wine is always present.
func fakePrefix(t *testing.T, scripts map[string]string) string {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	if _, ok := scripts["wine"]; !ok {
		scripts = mergeScripts(scripts, map[string]string{"wine": "#!/bin/sh\n"})
	}
	for name, body := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte(body), 0o755)) //nolint:gosec // test executables
	}
	return root
}

func mergeScripts(a, b map[string]string) map[string]string {
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// writeConfig writes body as a config file in dir and returns its path.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "winepfx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// resetFlags restores every flag variable and its changed state so that
// commands can be executed repeatedly in one process.
func resetFlags() {
	cfgFile, logLevel, logFormat, noColor = "", "info", "auto", false
	prefixFlag, libPaths, esyncFlag, msyncFlag = "", nil, false, false
	runStart, runEnable, runDisable, runDetach = false, nil, nil, false
	envFormat, envStart, envEnable, envDisable = "text", false, nil, nil
	killAll, psAll = false, false
	initForce, initUser = false, false

	var unmark func(c *cobra.Command)
	unmark = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			unmark(sub)
		}
	}
	unmark(rootCmd)
}

// execute runs the root command with args and returns what it wrote to
// stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
