// Package diskio reads system-wide block device accounting from /proc/diskstats.
package diskio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/iowhy/iowhy/pkg/types"
)

// diskstatsFieldCount is the expected number of whitespace-separated fields:
// major, minor, name, then eleven metrics.
// Reference: https://www.kernel.org/doc/Documentation/iostats.txt
const diskstatsFieldCount = 14

// Collector reads device I/O counters from a proc filesystem root.
type Collector struct {
	logger        logr.Logger
	diskstatsPath string
}

// New returns a collector rooted at procPath ("/proc" when empty).
func New(logger logr.Logger, procPath string) *Collector {
	if procPath == "" {
		procPath = "/proc"
	}
	return &Collector{
		logger:        logger,
		diskstatsPath: filepath.Join(procPath, "diskstats"),
	}
}

// Collect parses diskstats into a per-device map. Malformed lines are skipped
// whole; a record is either fully populated or absent. Partitions are kept
// alongside whole disks, filtering is a display concern.
func (c *Collector) Collect(ctx context.Context) (map[string]types.DeviceIOStats, error) {
	file, err := os.Open(c.diskstatsPath)
	if err != nil {
		return nil, fmt.Errorf("device accounting unavailable at %s: %w", c.diskstatsPath, err)
	}
	defer file.Close()

	devices := make(map[string]types.DeviceIOStats)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stat, ok := parseLine(scanner.Text())
		if !ok {
			c.logger.V(2).Info("skipping malformed diskstats line", "line", scanner.Text())
			continue
		}
		devices[stat.Name] = stat
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.diskstatsPath, err)
	}

	c.logger.V(1).Info("collected device statistics", "devices", len(devices))
	return devices, nil
}

func parseLine(line string) (types.DeviceIOStats, bool) {
	fields := strings.Fields(line)
	if len(fields) < diskstatsFieldCount {
		return types.DeviceIOStats{}, false
	}

	major, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return types.DeviceIOStats{}, false
	}
	minor, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return types.DeviceIOStats{}, false
	}

	metrics := make([]uint64, 11)
	for i := range metrics {
		v, err := strconv.ParseUint(fields[3+i], 10, 64)
		if err != nil {
			return types.DeviceIOStats{}, false
		}
		metrics[i] = v
	}

	return types.DeviceIOStats{
		Name:             fields[2],
		Major:            uint32(major),
		Minor:            uint32(minor),
		Reads:            metrics[0],
		ReadMerges:       metrics[1],
		ReadSectors:      metrics[2],
		ReadTimeMs:       metrics[3],
		Writes:           metrics[4],
		WriteMerges:      metrics[5],
		WriteSectors:     metrics[6],
		WriteTimeMs:      metrics[7],
		IOsInProgress:    metrics[8],
		IOTimeMs:         metrics[9],
		WeightedIOTimeMs: metrics[10],
	}, true
}
