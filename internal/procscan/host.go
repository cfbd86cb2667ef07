package procscan

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// HostLister reads the host process table. Processes whose environment
// cannot be read (other users, exited mid-scan) are skipped.
type HostLister struct{}

// List implements Lister.
func (HostLister) List(ctx context.Context) ([]Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	snapshots := make([]Snapshot, 0, len(procs))
	for _, p := range procs {
		environ, err := p.EnvironWithContext(ctx)
		if err != nil {
			continue
		}
		name, _ := p.NameWithContext(ctx)
		cmdline, _ := p.CmdlineWithContext(ctx)
		snapshots = append(snapshots, Snapshot{
			PID:     p.Pid,
			Name:    name,
			Cmdline: cmdline,
			Environ: environ,
		})
	}
	return snapshots, nil
}
