package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/winepfx/internal/config"
	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check a prefix installation",
	Long: `Verify that the configuration is valid and that the selected prefix has
the executables and library directories it needs.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck is one line of the doctor report.
type doctorCheck struct {
	name     string
	err      error
	required bool
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	styles := newPalette(out)

	s, err := loadSession(cmd)
	if err != nil {
		printChecks(out, styles, []doctorCheck{{name: "configuration", err: err, required: true}})
		return fmt.Errorf("configuration check failed")
	}

	name, conf, err := s.cfg.ResolvePrefix(prefixFlag)
	if err != nil {
		printChecks(out, styles, []doctorCheck{{name: "prefix selection", err: err, required: true}})
		return fmt.Errorf("prefix check failed")
	}
	conf = applyOverrides(conf)
	root := config.ExpandPath(conf.Path)

	fmt.Fprintf(out, "Checking prefix %s (%s)...\n\n", name, root)
	checks := append(prefixChecks(conf, root), graphicsCheck())
	printChecks(out, styles, checks)
	fmt.Fprintln(out)

	failed := 0
	for _, c := range checks {
		if c.err != nil && c.required {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintln(out, styles.fail.Render("Prefix is not usable"))
		return fmt.Errorf("doctor found %s", plural(failed, "problem", "problems"))
	}

	fmt.Fprintln(out, styles.ok.Render("Prefix is ready"))
	return nil
}

func prefixChecks(conf config.PrefixConfig, root string) []doctorCheck {
	exes := wine.ExecutablesAt(root)

	checks := []doctorCheck{
		{name: "prefix directory", err: checkDir(root), required: true},
		{name: "bin/wine", err: checkExecutable(exes.Wine), required: true},
		{name: "bin/wineserver", err: checkExecutable(exes.Wineserver), required: true},
		{name: "bin/regedit", err: checkExecutable(exes.Regedit)},
	}
	for _, lib := range conf.LibraryPaths {
		checks = append(checks, doctorCheck{
			name: "library path " + lib,
			err:  checkDir(config.ExpandPath(lib)),
		})
	}
	_, err := conf.Rules()
	checks = append(checks, doctorCheck{name: "debug rules", err: err, required: true})
	return checks
}

// detectGPUs is replaced in tests.
var detectGPUs = hostGPUs

// graphicsCheck reports the host graphics adapters Wine renders through.
func graphicsCheck() doctorCheck {
	names, err := detectGPUs()
	if err == nil && len(names) == 0 {
		err = fmt.Errorf("none detected")
	}
	if err != nil {
		return doctorCheck{name: "graphics adapter", err: err}
	}
	return doctorCheck{name: "graphics adapter: " + strings.Join(names, ", ")}
}

func hostGPUs() ([]string, error) {
	info, err := ghw.GPU()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(info.GraphicsCards))
	for _, card := range info.GraphicsCards {
		name := ""
		if card.DeviceInfo != nil {
			if card.DeviceInfo.Vendor != nil && card.DeviceInfo.Product != nil {
				name = strings.TrimSpace(card.DeviceInfo.Vendor.Name + " " + card.DeviceInfo.Product.Name)
			} else if card.DeviceInfo.Product != nil {
				name = strings.TrimSpace(card.DeviceInfo.Product.Name)
			}
		}
		if name == "" {
			name = fmt.Sprintf("GPU %d", card.Index)
		}
		names = append(names, name)
	}
	return names, nil
}

func printChecks(w io.Writer, styles palette, checks []doctorCheck) {
	for _, c := range checks {
		switch {
		case c.err == nil:
			fmt.Fprintf(w, "  %s %s\n", styles.ok.Render("✓"), c.name)
		case c.required:
			fmt.Fprintf(w, "  %s %s: %v\n", styles.fail.Render("✗"), c.name, c.err)
		default:
			fmt.Fprintf(w, "  %s %s (optional): %v\n", styles.warn.Render("○"), c.name, c.err)
		}
	}
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("not executable")
	}
	return nil
}
