package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	logLevel   string
	logFormat  string
	noColor    bool
	prefixFlag string
	libPaths   []string
	esyncFlag  bool
	msyncFlag  bool

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "winepfx",
	Short: "Launch programs inside Wine prefixes",
	Long: `winepfx runs Windows programs inside a Wine prefix with a controlled
environment: the prefix root, the dynamic library search path, the
ESYNC/MSYNC synchronization toggles and WINEDEBUG diagnostic rules.

Prefixes are declared in .winepfx.yaml or ~/.config/winepfx/config.yaml
and selected with --prefix, which also accepts a directory path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// GetVersion returns the application version string.
func GetVersion() string {
	return appVersion
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .winepfx.yaml, then ~/.config/winepfx/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().StringVarP(&prefixFlag, "prefix", "p", "",
		"configured prefix name or prefix directory")
	rootCmd.PersistentFlags().StringArrayVar(&libPaths, "lib-path", nil,
		"library search directory, repeatable; replaces the configured list")
	rootCmd.PersistentFlags().BoolVar(&esyncFlag, "esync", false,
		"enable eventfd-based synchronization")
	rootCmd.PersistentFlags().BoolVar(&msyncFlag, "msync", false,
		"enable Mach-based synchronization")
}
