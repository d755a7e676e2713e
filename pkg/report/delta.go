// Package report turns raw counter snapshots into the ranked deltas the
// renderer consumes.
package report

import (
	"github.com/iowhy/iowhy/pkg/types"
)

// counterDelta subtracts monotonic counters with a clamp at zero. A counter
// that went backwards means a reset (process restart on a reused PID, device
// replug, wraparound); reporting zero for that window beats reporting garbage.
func counterDelta(after, before uint64) uint64 {
	if after < before {
		return 0
	}
	return after - before
}

// ProcessDeltas returns one entry per process present in the after snapshot,
// holding the counter change since before. Processes new since the first
// snapshot keep their after values verbatim; processes that exited during the
// window are dropped. Neither input is mutated.
func ProcessDeltas(before, after []types.ProcessIOStats) []types.ProcessIOStats {
	prev := make(map[int32]types.ProcessIOStats, len(before))
	for _, stat := range before {
		prev[stat.PID] = stat
	}

	deltas := make([]types.ProcessIOStats, 0, len(after))
	for _, cur := range after {
		base, ok := prev[cur.PID]
		if !ok {
			deltas = append(deltas, cur)
			continue
		}
		deltas = append(deltas, types.ProcessIOStats{
			PID:        cur.PID,
			Name:       cur.Name,
			Command:    cur.Command,
			Rchar:      counterDelta(cur.Rchar, base.Rchar),
			Wchar:      counterDelta(cur.Wchar, base.Wchar),
			ReadBytes:  counterDelta(cur.ReadBytes, base.ReadBytes),
			WriteBytes: counterDelta(cur.WriteBytes, base.WriteBytes),
			Syscr:      counterDelta(cur.Syscr, base.Syscr),
			Syscw:      counterDelta(cur.Syscw, base.Syscw),
		})
	}
	return deltas
}

// DeviceDeltas is the device-keyed equivalent of ProcessDeltas. IOsInProgress
// is a gauge and carries the after value untouched; everything else follows
// counter semantics.
func DeviceDeltas(before, after map[string]types.DeviceIOStats) map[string]types.DeviceIOStats {
	deltas := make(map[string]types.DeviceIOStats, len(after))
	for name, cur := range after {
		base, ok := before[name]
		if !ok {
			deltas[name] = cur
			continue
		}
		deltas[name] = types.DeviceIOStats{
			Name:             cur.Name,
			Major:            cur.Major,
			Minor:            cur.Minor,
			Reads:            counterDelta(cur.Reads, base.Reads),
			ReadMerges:       counterDelta(cur.ReadMerges, base.ReadMerges),
			ReadSectors:      counterDelta(cur.ReadSectors, base.ReadSectors),
			ReadTimeMs:       counterDelta(cur.ReadTimeMs, base.ReadTimeMs),
			Writes:           counterDelta(cur.Writes, base.Writes),
			WriteMerges:      counterDelta(cur.WriteMerges, base.WriteMerges),
			WriteSectors:     counterDelta(cur.WriteSectors, base.WriteSectors),
			WriteTimeMs:      counterDelta(cur.WriteTimeMs, base.WriteTimeMs),
			IOsInProgress:    cur.IOsInProgress,
			IOTimeMs:         counterDelta(cur.IOTimeMs, base.IOTimeMs),
			WeightedIOTimeMs: counterDelta(cur.WeightedIOTimeMs, base.WeightedIOTimeMs),
		}
	}
	return deltas
}
