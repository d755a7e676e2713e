// Package procio reads per-process I/O accounting from /proc/[pid]/io.
package procio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/iowhy/iowhy/pkg/types"
)

// listPIDs allows tests to stub process enumeration.
var listPIDs = process.PidsWithContext

// Collector reads process I/O counters from a proc filesystem root.
type Collector struct {
	logger   logr.Logger
	procPath string
}

// New returns a collector rooted at procPath ("/proc" when empty).
func New(logger logr.Logger, procPath string) *Collector {
	if procPath == "" {
		procPath = "/proc"
	}
	return &Collector{logger: logger, procPath: procPath}
}

// CollectAll gathers I/O counters for every visible process. Individual
// processes that vanish or deny access are skipped; only a missing or
// unreadable proc root is an error.
func (c *Collector) CollectAll(ctx context.Context) ([]types.ProcessIOStats, error) {
	if _, err := os.Stat(c.procPath); err != nil {
		return nil, fmt.Errorf("process accounting unavailable at %s: %w", c.procPath, err)
	}

	pids, err := listPIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes under %s: %w", c.procPath, err)
	}

	stats := make([]types.ProcessIOStats, 0, len(pids))
	for _, pid := range pids {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stat, err := c.Collect(pid)
		if err != nil {
			c.logger.V(2).Info("skipping process", "pid", pid, "reason", err)
			continue
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// Collect reads the counters for a single PID. Errors mean the process is not
// observable right now (exited, kernel thread without io file, or permission
// denied) and the caller should drop it from the snapshot.
func (c *Collector) Collect(pid int32) (types.ProcessIOStats, error) {
	dir := filepath.Join(c.procPath, strconv.FormatInt(int64(pid), 10))

	data, err := os.ReadFile(filepath.Join(dir, "io"))
	if err != nil {
		return types.ProcessIOStats{}, err
	}

	stat := types.ProcessIOStats{
		PID:     pid,
		Name:    readComm(dir),
		Command: readCommand(dir),
	}
	parseIOCounters(data, &stat)
	return stat, nil
}

// parseIOCounters fills the six counters from "key: value" lines. Unknown keys
// and unparsable values are ignored so a partially readable file still yields
// the counters it does carry.
func parseIOCounters(data []byte, stat *types.ProcessIOStats) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSpace(key) {
		case "rchar":
			stat.Rchar = v
		case "wchar":
			stat.Wchar = v
		case "read_bytes":
			stat.ReadBytes = v
		case "write_bytes":
			stat.WriteBytes = v
		case "syscr":
			stat.Syscr = v
		case "syscw":
			stat.Syscw = v
		}
	}
}

func readComm(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "comm"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readCommand returns the first cmdline element, truncated for display.
// Kernel threads have an empty cmdline; that is fine, the comm still names them.
func readCommand(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "cmdline"))
	if err != nil {
		return ""
	}
	first, _, _ := bytes.Cut(bytes.Trim(data, "\x00"), []byte{0})
	return truncateCommand(string(first))
}

func truncateCommand(cmd string) string {
	if len(cmd) <= types.CommandDisplayLimit {
		return cmd
	}
	return cmd[:types.CommandDisplayLimit-3] + "..."
}
