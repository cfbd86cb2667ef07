package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

// maxParallelKills bounds concurrent wineserver invocations for --all.
const maxParallelKills = 4

var killAll bool

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Terminate every process in a prefix",
	Long: `Run "wineserver -k" for the selected prefix, or for every configured
prefix with --all. A non-zero wineserver status is reported but is not an
error: it usually means no server was running.`,
	Args: cobra.NoArgs,
	RunE: runKill,
}

func init() {
	killCmd.Flags().BoolVar(&killAll, "all", false,
		"terminate every configured prefix")
	rootCmd.AddCommand(killCmd)
}

// killResult is the outcome of one wineserver -k run.
type killResult struct {
	target *prefixTarget
	output *wine.Output
}

func runKill(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	selectors := []string{prefixFlag}
	if killAll {
		selectors = s.cfg.PrefixNames()
		if len(selectors) == 0 {
			return fmt.Errorf("no prefixes configured")
		}
	}

	targets := make([]*prefixTarget, 0, len(selectors))
	for _, sel := range selectors {
		target, err := s.open(sel)
		if err != nil {
			if !killAll {
				return err
			}
			// Skip prefixes that are configured but not installed.
			s.logger.Warn("skipping prefix", "prefix", sel, "error", err)
			continue
		}
		targets = append(targets, target)
	}

	results, err := killTargets(cmd.Context(), targets)
	for _, r := range results {
		if r.output == nil {
			continue
		}
		relayOutput(cmd, r.output)
		if r.output.Success() {
			r.target.logger.Info("prefix terminated")
			fmt.Fprintf(cmd.OutOrStdout(), "%s: terminated\n", r.target.name)
		} else {
			r.target.logger.Warn("wineserver exited", "exit_code", r.output.ExitCode)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: wineserver exited with code %d\n",
				r.target.name, r.output.ExitCode)
		}
	}
	return err
}

// killTargets runs KillAll on every target concurrently. Results keep the
// order of targets; the first spawn failure is returned after all finish.
func killTargets(ctx context.Context, targets []*prefixTarget) ([]killResult, error) {
	results := make([]killResult, len(targets))

	var g errgroup.Group
	g.SetLimit(maxParallelKills)
	for i, target := range targets {
		results[i].target = target
		g.Go(func() error {
			out, err := target.prefix.KillAll(ctx)
			if err != nil {
				target.logger.Error("wineserver failed", "error", err)
				return fmt.Errorf("%s: %w", target.name, err)
			}
			results[i].output = out
			return nil
		})
	}

	return results, g.Wait()
}
