package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status colors
var (
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#9CA3AF") // Muted gray
)

// palette holds the styles used for terminal reports.
type palette struct {
	header lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	muted  lipgloss.Style
}

// newPalette returns styles bound to w. Color is only emitted when w is a
// terminal and --no-color is unset.
func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	if noColor {
		plain := r.NewStyle()
		return palette{header: plain, ok: plain, warn: plain, fail: plain, muted: plain}
	}
	return palette{
		header: r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(colorSuccess),
		warn:   r.NewStyle().Foreground(colorWarning),
		fail:   r.NewStyle().Foreground(colorError).Bold(true),
		muted:  r.NewStyle().Foreground(colorMuted),
	}
}
