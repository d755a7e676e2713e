package report

import (
	"sort"
	"time"

	"github.com/iowhy/iowhy/pkg/types"
)

// TopProcesses orders processes by storage-level I/O (read_bytes +
// write_bytes, not the syscall-buffer counters) and keeps the first limit
// entries. The sort is stable so equally active processes keep their input
// order and re-ranking an already ranked slice is a no-op.
func TopProcesses(stats []types.ProcessIOStats, limit int) []types.ProcessIOStats {
	ranked := make([]types.ProcessIOStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalBytes() > ranked[j].TotalBytes()
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopDevices flattens the device map and orders it by sector traffic, capped
// at types.DeviceTableLimit. Entries are pre-sorted by name so map iteration
// order never leaks into the ranking of equally busy devices.
func TopDevices(devices map[string]types.DeviceIOStats) []types.DeviceIOStats {
	ranked := make([]types.DeviceIOStats, 0, len(devices))
	for _, dev := range devices {
		ranked = append(ranked, dev)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Name < ranked[j].Name })
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSectors() > ranked[j].TotalSectors()
	})
	if len(ranked) > types.DeviceTableLimit {
		ranked = ranked[:types.DeviceTableLimit]
	}
	return ranked
}

// Rate converts a windowed count into a per-second rate. A zero window means
// the values are cumulative and no rate exists.
func Rate(v uint64, window time.Duration) float64 {
	secs := window.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(v) / secs
}
