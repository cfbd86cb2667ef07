//go:build !windows

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/winepfx/internal/core"
)

func TestRegeditCommand_ResolvesRelativeFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts.reg"), []byte("REGEDIT4\n"), 0o600))
	root := fakePrefix(t, map[string]string{
		"regedit": "#!/bin/sh\nhead -n 1 \"$1\"\necho \"file=$1\"\n",
	})

	out, _, err := execute(t, "--prefix", root, "regedit", "fonts.reg")
	require.NoError(t, err)

	want, err := filepath.Abs("fonts.reg")
	require.NoError(t, err)
	assert.Contains(t, out, "REGEDIT4\n")
	assert.Contains(t, out, "file="+want+"\n")
}

func TestRegeditCommand_Failure(t *testing.T) {
	isolate(t)
	root := fakePrefix(t, map[string]string{"regedit": "#!/bin/sh\necho bad file >&2\nexit 4\n"})

	_, errOut, err := execute(t, "--prefix", root, "regedit", "broken.reg")
	require.Error(t, err)
	code, ok := core.IsExitError(err)
	require.True(t, ok)
	assert.Equal(t, 4, code)
	assert.Contains(t, errOut, "bad file")
}
