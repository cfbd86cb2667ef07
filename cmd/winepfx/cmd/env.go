package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

var (
	envFormat  string
	envStart   bool
	envEnable  []string
	envDisable []string
)

var envCmd = &cobra.Command{
	Use:   "env [flags] [PROGRAM]",
	Short: "Show the launch a run would perform",
	Long: `Print the executable, working directory, arguments and environment
overrides that "winepfx run" would use, without starting anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVar(&envFormat, "format", "text",
		"output format (text, yaml)")
	envCmd.Flags().BoolVar(&envStart, "start", false,
		"launch through Wine's start command")
	envCmd.Flags().StringArrayVar(&envEnable, "enable", nil,
		"enable a debug channel, repeatable")
	envCmd.Flags().StringArrayVar(&envDisable, "disable", nil,
		"disable a debug channel, repeatable")
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	if envFormat != "text" && envFormat != "yaml" {
		return fmt.Errorf("unknown format %q (use text or yaml)", envFormat)
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	target, err := s.open(prefixFlag)
	if err != nil {
		return err
	}
	rules, err := debugRules(target.conf, envEnable, envDisable)
	if err != nil {
		return err
	}

	program := "PROGRAM"
	if len(args) == 1 {
		program = args[0]
	}
	launch := target.prefix.Command(envStart, program, rules)

	out := cmd.OutOrStdout()
	if envFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(launch); err != nil {
			return fmt.Errorf("encoding launch: %w", err)
		}
		return enc.Close()
	}
	return writeLaunchText(out, launch)
}

// writeLaunchText renders launch as a shell snippet.
func writeLaunchText(w io.Writer, launch *wine.Launch) error {
	var b strings.Builder
	fmt.Fprintf(&b, "cd %s\n", shellQuote(launch.Dir))
	for _, v := range launch.Env {
		fmt.Fprintf(&b, "export %s=%s\n", v.Name, shellQuote(v.Value))
	}
	b.WriteString(shellQuote(launch.Path))
	for _, arg := range launch.Args {
		b.WriteByte(' ')
		b.WriteString(shellQuote(arg))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:,+=@%", r):
		return false
	}
	return true
}
