package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

var (
	runStart   bool
	runEnable  []string
	runDisable []string
	runDetach  bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] PROGRAM",
	Short: "Run a program inside a prefix",
	Long: `Run PROGRAM with the prefix's wine launcher.

Debug rules from the configuration are applied first, then every --enable,
then every --disable. Wine applies WINEDEBUG rules in order, so later rules
win. The exit status of the program becomes the exit status of winepfx.`,
	Example: `  winepfx run --prefix steam --start "C:\\Program Files\\Steam\\steam.exe"
  winepfx run --enable relay --disable heap notepad.exe`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runStart, "start", false,
		"launch through Wine's start command")
	runCmd.Flags().StringArrayVar(&runEnable, "enable", nil,
		"enable a debug channel, repeatable")
	runCmd.Flags().StringArrayVar(&runDisable, "disable", nil,
		"disable a debug channel, repeatable")
	runCmd.Flags().BoolVar(&runDetach, "detach", false,
		"start the program in its own process group and return immediately")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	target, err := s.open(prefixFlag)
	if err != nil {
		return err
	}
	rules, err := debugRules(target.conf, runEnable, runDisable)
	if err != nil {
		return err
	}

	program := args[0]
	launch := target.prefix.Command(runStart, program, rules)
	logger := target.logger.WithLaunch(uuid.NewString())
	logger.Info("launching program",
		"program", program,
		"start", runStart,
		"winedebug", rules.String(),
		"detach", runDetach)

	c := launch.Cmd(cmd.Context())
	if runDetach {
		wine.Detach(c)
		if err := c.Start(); err != nil {
			return core.ErrSpawn(launch.Path, err)
		}
		pid := c.Process.Pid
		logger.Info("program detached", "pid", pid)
		fmt.Fprintln(cmd.OutOrStdout(), pid)
		return c.Process.Release()
	}

	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn("program exited", "exit_code", exitErr.ExitCode())
			return &core.ExitError{Code: exitErr.ExitCode()}
		}
		return core.ErrSpawn(launch.Path, err)
	}

	logger.Info("program exited", "exit_code", 0)
	return nil
}
