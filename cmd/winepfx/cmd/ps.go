package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/winepfx/internal/procscan"
)

var psAll bool

// psLister is replaced in tests.
var psLister procscan.Lister

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List processes running in a prefix",
	Long: `List host processes whose environment points WINEPREFIX at the selected
prefix, or at any configured prefix with --all.`,
	Args: cobra.NoArgs,
	RunE: runPs,
}

func init() {
	psCmd.Flags().BoolVar(&psAll, "all", false,
		"list processes of every configured prefix")
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	selectors := []string{prefixFlag}
	if psAll {
		selectors = s.cfg.PrefixNames()
	}

	scanner := procscan.NewScanner(psLister)
	out := cmd.OutOrStdout()
	styles := newPalette(out)

	total := 0
	for _, sel := range selectors {
		target, err := s.open(sel)
		if err != nil {
			if !psAll {
				return err
			}
			s.logger.Warn("skipping prefix", "prefix", sel, "error", err)
			continue
		}

		procs, err := scanner.Find(cmd.Context(), target.prefix.Root())
		if err != nil {
			return fmt.Errorf("listing processes: %w", err)
		}
		total += len(procs)

		fmt.Fprintln(out, styles.header.Render(fmt.Sprintf("%s (%s)", target.name, target.prefix.Root())))
		if len(procs) == 0 {
			fmt.Fprintln(out, styles.muted.Render("  no processes"))
			continue
		}
		writeProcesses(out, procs)
	}

	s.logger.Debug("process scan complete", "matched", total)
	fmt.Fprintf(out, "\n%s\n", plural(total, "process", "processes"))
	return nil
}

func writeProcesses(w io.Writer, procs []procscan.Process) {
	fmt.Fprintf(w, "  %-8s %-24s %s\n", "PID", "NAME", "COMMAND")
	for _, p := range procs {
		fmt.Fprintf(w, "  %-8d %-24s %s\n", p.PID, p.Name, p.Cmdline)
	}
}
