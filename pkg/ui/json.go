package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/iowhy/iowhy/pkg/report"
	"github.com/iowhy/iowhy/pkg/types"
)

// hostInfo allows tests to stub the host lookup.
var hostInfo = host.Info

type processEntry struct {
	PID                 int32  `json:"pid"`
	Name                string `json:"name"`
	Command             string `json:"command"`
	ReadBytes           uint64 `json:"read_bytes"`
	WriteBytes          uint64 `json:"write_bytes"`
	ReadBytesFormatted  string `json:"read_bytes_formatted"`
	WriteBytesFormatted string `json:"write_bytes_formatted"`
	ReadOperations      uint64 `json:"read_operations"`
	WriteOperations     uint64 `json:"write_operations"`
	TotalIOBytes        uint64 `json:"total_io_bytes"`
}

type deviceEntry struct {
	Name                string   `json:"name"`
	Major               uint32   `json:"major"`
	Minor               uint32   `json:"minor"`
	Reads               uint64   `json:"reads"`
	Writes              uint64   `json:"writes"`
	ReadSectors         uint64   `json:"read_sectors"`
	WriteSectors        uint64   `json:"write_sectors"`
	ReadBytes           uint64   `json:"read_bytes"`
	WriteBytes          uint64   `json:"write_bytes"`
	ReadBytesFormatted  string   `json:"read_bytes_formatted"`
	WriteBytesFormatted string   `json:"write_bytes_formatted"`
	ReadsPerSecond      *float64 `json:"reads_per_second,omitempty"`
	WritesPerSecond     *float64 `json:"writes_per_second,omitempty"`
	ReadBytesPerSecond  *float64 `json:"read_bytes_per_second,omitempty"`
	WriteBytesPerSecond *float64 `json:"write_bytes_per_second,omitempty"`
}

type jsonReport struct {
	Timestamp               string         `json:"timestamp"`
	Hostname                string         `json:"hostname,omitempty"`
	KernelVersion           string         `json:"kernel_version,omitempty"`
	SamplingDurationSeconds *float64       `json:"sampling_duration_seconds"`
	TopProcesses            []processEntry `json:"top_processes"`
	Devices                 []deviceEntry  `json:"devices,omitempty"`
	Summary                 string         `json:"summary"`
}

// RenderJSON writes the machine-readable report. Host metadata is best effort
// and simply absent when the lookup fails.
func RenderJSON(w io.Writer, rep Report) error {
	out := jsonReport{
		Timestamp:    time.Now().Format(time.RFC3339),
		TopProcesses: make([]processEntry, 0, len(rep.Processes)),
		Summary:      Summary(rep),
	}

	if info, err := hostInfo(); err == nil {
		out.Hostname = info.Hostname
		out.KernelVersion = info.KernelVersion
	}

	if rep.Sampled() {
		secs := rep.Duration.Seconds()
		out.SamplingDurationSeconds = &secs
	}

	for _, proc := range rep.Processes {
		out.TopProcesses = append(out.TopProcesses, processEntry{
			PID:                 proc.PID,
			Name:                proc.Name,
			Command:             proc.Command,
			ReadBytes:           proc.ReadBytes,
			WriteBytes:          proc.WriteBytes,
			ReadBytesFormatted:  FormatBytes(proc.ReadBytes),
			WriteBytesFormatted: FormatBytes(proc.WriteBytes),
			ReadOperations:      proc.Syscr,
			WriteOperations:     proc.Syscw,
			TotalIOBytes:        proc.TotalBytes(),
		})
	}

	for _, dev := range rep.Devices {
		out.Devices = append(out.Devices, makeDeviceEntry(dev, rep.Duration))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func makeDeviceEntry(dev types.DeviceIOStats, window time.Duration) deviceEntry {
	entry := deviceEntry{
		Name:                dev.Name,
		Major:               dev.Major,
		Minor:               dev.Minor,
		Reads:               dev.Reads,
		Writes:              dev.Writes,
		ReadSectors:         dev.ReadSectors,
		WriteSectors:        dev.WriteSectors,
		ReadBytes:           dev.ReadBytesTotal(),
		WriteBytes:          dev.WriteBytesTotal(),
		ReadBytesFormatted:  FormatBytes(dev.ReadBytesTotal()),
		WriteBytesFormatted: FormatBytes(dev.WriteBytesTotal()),
	}
	if window > 0 {
		entry.ReadsPerSecond = rate(dev.Reads, window)
		entry.WritesPerSecond = rate(dev.Writes, window)
		entry.ReadBytesPerSecond = rate(dev.ReadBytesTotal(), window)
		entry.WriteBytesPerSecond = rate(dev.WriteBytesTotal(), window)
	}
	return entry
}

func rate(v uint64, window time.Duration) *float64 {
	r := report.Rate(v, window)
	return &r
}
