package types

import "time"

// DefaultTopN controls how many top processes we display when no limit is given.
const DefaultTopN = 5

// DeviceTableLimit caps the device breakdown at the busiest devices.
const DeviceTableLimit = 10

// SectorSize is the fixed /proc/diskstats sector size in bytes.
const SectorSize = 512

// CommandDisplayLimit bounds the captured command line, ellipsis included.
const CommandDisplayLimit = 60

// DefaultDuration is the sampling window used when none is configured.
const DefaultDuration = 2 * time.Second

// ProcessIOStats holds the I/O counters for one process as read from
// /proc/[pid]/io, or the delta between two such reads. Values are never
// mutated after construction; deltas are new values, not updates in place.
//
// The role tag marks each numeric field as a monotonic counter or a gauge.
// Counters are clamped-subtracted between snapshots, gauges carry the most
// recent reading verbatim.
type ProcessIOStats struct {
	PID     int32
	Name    string // comm, may be empty
	Command string // first cmdline element, truncated

	Rchar      uint64 `role:"counter"` // bytes passed through read-like syscalls
	Wchar      uint64 `role:"counter"` // bytes passed through write-like syscalls
	ReadBytes  uint64 `role:"counter"` // bytes fetched from the storage layer
	WriteBytes uint64 `role:"counter"` // bytes sent to the storage layer
	Syscr      uint64 `role:"counter"`
	Syscw      uint64 `role:"counter"`
}

// TotalBytes is the storage-level activity score used for ranking.
func (p ProcessIOStats) TotalBytes() uint64 {
	return p.ReadBytes + p.WriteBytes
}

// DeviceIOStats holds one /proc/diskstats row, or the delta between two rows
// for the same device. IOsInProgress is the only gauge: it is an instantaneous
// queue depth, not an accumulated count, so the delta engine copies it instead
// of diffing it.
type DeviceIOStats struct {
	Name  string
	Major uint32
	Minor uint32

	Reads            uint64 `role:"counter"`
	ReadMerges       uint64 `role:"counter"`
	ReadSectors      uint64 `role:"counter"`
	ReadTimeMs       uint64 `role:"counter"`
	Writes           uint64 `role:"counter"`
	WriteMerges      uint64 `role:"counter"`
	WriteSectors     uint64 `role:"counter"`
	WriteTimeMs      uint64 `role:"counter"`
	IOsInProgress    uint64 `role:"gauge"`
	IOTimeMs         uint64 `role:"counter"`
	WeightedIOTimeMs uint64 `role:"counter"`
}

// TotalSectors is the activity score used for ranking devices.
func (d DeviceIOStats) TotalSectors() uint64 {
	return d.ReadSectors + d.WriteSectors
}

// ReadBytesTotal converts read sectors to bytes.
func (d DeviceIOStats) ReadBytesTotal() uint64 {
	return d.ReadSectors * SectorSize
}

// WriteBytesTotal converts written sectors to bytes.
func (d DeviceIOStats) WriteBytesTotal() uint64 {
	return d.WriteSectors * SectorSize
}
