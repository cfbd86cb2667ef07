// Package procscan finds host processes that belong to a Wine prefix by
// inspecting the WINEPREFIX entry of their environment.
package procscan

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hugo-lorenzo-mato/winepfx/internal/wine"
)

// Snapshot is what a Lister reports for one host process.
type Snapshot struct {
	PID     int32
	Name    string
	Cmdline string
	Environ []string
}

// Lister enumerates host processes.
type Lister interface {
	List(ctx context.Context) ([]Snapshot, error)
}

// Process is a host process running under a prefix.
type Process struct {
	PID     int32
	Name    string
	Cmdline string
}

// Scanner matches host processes against prefix roots.
type Scanner struct {
	lister Lister
}

// NewScanner creates a scanner over lister. A nil lister uses the host
// process table.
func NewScanner(lister Lister) *Scanner {
	if lister == nil {
		lister = HostLister{}
	}
	return &Scanner{lister: lister}
}

// Find returns the processes whose WINEPREFIX equals root, ordered by PID.
func (s *Scanner) Find(ctx context.Context, root string) ([]Process, error) {
	snapshots, err := s.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	want := filepath.Clean(root)
	var found []Process
	for _, snap := range snapshots {
		value, ok := lookupEnv(snap.Environ, wine.EnvPrefix)
		if !ok || value == "" || filepath.Clean(value) != want {
			continue
		}
		found = append(found, Process{PID: snap.PID, Name: snap.Name, Cmdline: snap.Cmdline})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].PID < found[j].PID })
	return found, nil
}

// lookupEnv returns the last value of key, matching how exec resolves
// duplicate entries.
func lookupEnv(environ []string, key string) (string, bool) {
	var value string
	var found bool
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == key {
			value, found = v, true
		}
	}
	return value, found
}
