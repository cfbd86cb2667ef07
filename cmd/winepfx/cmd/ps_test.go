package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/winepfx/internal/procscan"
)

type stubLister struct {
	snapshots []procscan.Snapshot
	err       error
}

func (s stubLister) List(_ context.Context) ([]procscan.Snapshot, error) {
	return s.snapshots, s.err
}

func withLister(t *testing.T, l procscan.Lister) {
	t.Helper()
	old := psLister
	psLister = l
	t.Cleanup(func() { psLister = old })
}

func TestPsCommand_SelectedPrefix(t *testing.T) {
	isolate(t)
	root := fakePrefix(t, nil)
	withLister(t, stubLister{snapshots: []procscan.Snapshot{
		{PID: 301, Name: "wineserver", Cmdline: "wineserver", Environ: []string{"WINEPREFIX=" + root}},
		{PID: 120, Name: "game.exe", Cmdline: "C:\\game.exe", Environ: []string{"WINEPREFIX=" + root}},
		{PID: 500, Name: "other.exe", Environ: []string{"WINEPREFIX=/elsewhere"}},
	}})

	out, _, err := execute(t, "--no-color", "--prefix", root, "ps")
	require.NoError(t, err)

	assert.Contains(t, out, root)
	assert.Contains(t, out, "game.exe")
	assert.Contains(t, out, "wineserver")
	assert.NotContains(t, out, "other.exe")
	assert.Contains(t, out, "2 processes")
	assert.Less(t, strings.Index(out, "game.exe"), strings.Index(out, "wineserver"), "ordered by pid")
}

func TestPsCommand_All(t *testing.T) {
	dir := isolate(t)
	alpha := fakePrefix(t, nil)
	beta := fakePrefix(t, nil)
	path := writeConfig(t, dir, fmt.Sprintf("prefixes:\n  alpha:\n    path: %s\n  beta:\n    path: %s\n", alpha, beta))
	withLister(t, stubLister{snapshots: []procscan.Snapshot{
		{PID: 7, Name: "a.exe", Environ: []string{"WINEPREFIX=" + alpha}},
	}})

	out, _, err := execute(t, "--no-color", "--config", path, "ps", "--all")
	require.NoError(t, err)

	assert.Contains(t, out, "a.exe")
	assert.Contains(t, out, "no processes")
	assert.Contains(t, out, "1 process\n")
	assert.Less(t, strings.Index(out, "alpha ("), strings.Index(out, "beta ("))
}

func TestPsCommand_ListError(t *testing.T) {
	isolate(t)
	root := fakePrefix(t, nil)
	withLister(t, stubLister{err: errors.New("permission denied")})

	_, _, err := execute(t, "--prefix", root, "ps")
	assert.ErrorContains(t, err, "permission denied")
}
