package main

import (
	"fmt"
	"os"

	"github.com/hugo-lorenzo-mato/winepfx/cmd/winepfx/cmd"
	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
)

// Version information - set by goreleaser at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)

	if err := cmd.Execute(); err != nil {
		// A launched program's exit status is passed through as ours.
		if code, ok := core.IsExitError(err); ok {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
