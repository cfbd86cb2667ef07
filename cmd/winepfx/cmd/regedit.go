package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
)

var regeditCmd = &cobra.Command{
	Use:   "regedit FILE",
	Short: "Import a .reg file into a prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegedit,
}

func init() {
	rootCmd.AddCommand(regeditCmd)
}

func runRegedit(cmd *cobra.Command, args []string) error {
	// regedit runs from the prefix root, so relative paths must be resolved here.
	regFile, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	target, err := s.open(prefixFlag)
	if err != nil {
		return err
	}

	target.logger.Info("importing registry file", "file", regFile)
	out, err := target.prefix.Import(cmd.Context(), regFile)
	if err != nil {
		return err
	}
	relayOutput(cmd, out)
	if !out.Success() {
		target.logger.Error("regedit failed", "exit_code", out.ExitCode)
		return &core.ExitError{Code: out.ExitCode}
	}
	return nil
}
