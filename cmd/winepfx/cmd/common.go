package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/winepfx/internal/config"
	"github.com/hugo-lorenzo-mato/winepfx/internal/logging"
	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

// session is the per-invocation state shared by subcommands.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
}

// prefixTarget is a resolved and opened prefix.
type prefixTarget struct {
	name   string
	conf   config.PrefixConfig
	prefix *wine.Prefix
	logger *logging.Logger
}

// loadSession reads and validates configuration, binding the logging flags of
// cmd so that they take precedence over file and environment values.
func loadSession(cmd *cobra.Command) (*session, error) {
	v := viper.New()
	// Bind flags to viper (errors are nil when flag exists)
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))

	loader := config.NewLoaderWithViper(v)
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cmd.ErrOrStderr(),
		NoColor: noColor,
	})
	if used := loader.ConfigFile(); used != "" {
		logger.Debug("config loaded", "file", used)
	}

	return &session{cfg: cfg, logger: logger}, nil
}

// open resolves selector against the configuration, applies the command-line
// overrides and opens the prefix.
func (s *session) open(selector string) (*prefixTarget, error) {
	name, conf, err := s.cfg.ResolvePrefix(selector)
	if err != nil {
		return nil, err
	}
	conf = applyOverrides(conf)

	prefix, err := conf.Open()
	if err != nil {
		return nil, err
	}

	return &prefixTarget{
		name:   name,
		conf:   conf,
		prefix: prefix,
		logger: s.logger.WithPrefix(name, prefix.Root()),
	}, nil
}

// applyOverrides layers --lib-path, --esync and --msync over conf. The
// toggles only ever enable a feature.
func applyOverrides(conf config.PrefixConfig) config.PrefixConfig {
	if len(libPaths) > 0 {
		conf.LibraryPaths = append([]string(nil), libPaths...)
	}
	if esyncFlag {
		conf.ESync = true
	}
	if msyncFlag {
		conf.MSync = true
	}
	return conf
}

// debugRules returns the configured rules of conf followed by the enable
// and disable requests from the command line.
func debugRules(conf config.PrefixConfig, enable, disable []string) (wine.RuleSet, error) {
	configured, err := conf.Rules()
	if err != nil {
		return wine.RuleSet{}, err
	}

	b := wine.NewRuleSetBuilder()
	for _, r := range configured.Rules() {
		b.Add(r)
	}
	for _, name := range enable {
		b.Enable(wine.ChannelByName(name))
	}
	for _, name := range disable {
		b.Disable(wine.ChannelByName(name))
	}
	return b.Build(), nil
}

// relayOutput copies captured child output to the command's streams.
func relayOutput(cmd *cobra.Command, out *wine.Output) {
	writeAll(cmd.OutOrStdout(), out.Stdout)
	writeAll(cmd.ErrOrStderr(), out.Stderr)
}

func writeAll(w io.Writer, data []byte) {
	if len(data) == 0 {
		return
	}
	_, _ = w.Write(data)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
