package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/winepfx/internal/config"
)

var (
	initForce bool
	initUser  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration with a single "default" prefix at ~/.wine to
.winepfx.yaml in the current directory, or to the user config file with
--user.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"overwrite an existing configuration")
	initCmd.Flags().BoolVar(&initUser, "user", false,
		"write ~/.config/winepfx/config.yaml instead")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := initTarget()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := config.RenderYAML(config.Default())
	if err != nil {
		return err
	}
	if err := config.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func initTarget() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if initUser {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		return filepath.Join(home, ".config", "winepfx", "config.yaml"), nil
	}
	return config.DefaultFileName, nil
}
