package ui

import (
	"fmt"
	"strings"

	"github.com/iowhy/iowhy/pkg/report"
	"github.com/iowhy/iowhy/pkg/types"
)

// Summary writes a short diagnosis: who did the most I/O, whether anyone else
// mattered, and which device took the traffic.
func Summary(rep Report) string {
	if len(rep.Processes) == 0 {
		return "No I/O activity detected or insufficient permissions to read process statistics."
	}

	var lines []string

	top := rep.Processes[0]
	totalIO := top.TotalBytes()
	if rep.Sampled() {
		rate := report.Rate(totalIO, rep.Duration)
		lines = append(lines, fmt.Sprintf(
			"Highest I/O activity: Process '%s' (PID %d) with %s/s (%s in %.1fs)",
			top.Name, top.PID, FormatBytes(uint64(rate)), FormatBytesRaw(totalIO), rep.Duration.Seconds()))
	} else {
		lines = append(lines, fmt.Sprintf(
			"Highest I/O activity: Process '%s' (PID %d) with %s total",
			top.Name, top.PID, FormatBytesRaw(totalIO)))
	}

	if len(rep.Processes) > 1 {
		second := rep.Processes[1]
		if secondIO := second.TotalBytes(); secondIO*10 > totalIO {
			lines = append(lines, fmt.Sprintf(
				"Secondary contributor: Process '%s' (PID %d) with %s",
				second.Name, second.PID, FormatBytesRaw(secondIO)))
		}
	}

	if len(rep.Devices) > 0 {
		lines = append(lines, deviceSummary(rep)...)
	}

	return strings.Join(lines, "\n")
}

func deviceSummary(rep Report) []string {
	topDev := rep.Devices[0]
	totalBytes := topDev.TotalSectors() * types.SectorSize

	var lines []string
	if rep.Sampled() {
		rate := report.Rate(totalBytes, rep.Duration)
		lines = append(lines, fmt.Sprintf("Most active device: %s (%s/s, %s in %.1fs)",
			topDev.Name, FormatBytes(uint64(rate)), FormatBytesRaw(totalBytes), rep.Duration.Seconds()))
	} else {
		lines = append(lines, fmt.Sprintf("Most active device: %s (%s total)",
			topDev.Name, FormatBytesRaw(totalBytes)))
	}
	lines = append(lines, fmt.Sprintf("I/O seems concentrated on /dev/%s by process '%s'",
		topDev.Name, rep.Processes[0].Name))
	return lines
}
