package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/iowhy/iowhy/pkg/report"
)

// defaultNameWidth bounds the process-name column.
const defaultNameWidth = 18

// TextOptions carries presentation configuration. Everything is a plain value
// read once at startup; there is no global color state.
type TextOptions struct {
	Palette   Palette
	NameWidth int // 0 means defaultNameWidth
}

// RenderText writes the human-readable report: a ranked process table, an
// optional device breakdown, and the summary paragraph.
func RenderText(w io.Writer, rep Report, opts TextOptions) {
	pal := opts.Palette
	nameWidth := opts.NameWidth
	if nameWidth <= 0 {
		nameWidth = defaultNameWidth
	}

	fmt.Fprintf(w, "%s=== I/O Activity Analysis ===%s\n", pal.Header, pal.Reset)
	if rep.Sampled() {
		fmt.Fprintf(w, "Sampling duration: %.1f seconds\n", rep.Duration.Seconds())
		fmt.Fprintln(w, "(Values shown are totals for the sampling period)")
	} else {
		fmt.Fprintln(w, "(Values shown are cumulative since process start)")
	}
	fmt.Fprintln(w)

	if len(rep.Processes) == 0 {
		fmt.Fprintln(w, "No process I/O statistics available.")
		return
	}

	fmt.Fprintf(w, "Top %d processes by I/O:\n\n", len(rep.Processes))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sPID\tPROCESS\tREAD\tWRITE\tREAD OPS\tWRITE OPS%s\n", pal.Column, pal.Reset)
	for _, proc := range rep.Processes {
		fmt.Fprintf(tw, "%s%d%s\t%s\t%s\t%s\t%d\t%d\n",
			pal.PID, proc.PID, pal.Reset,
			truncateName(proc.Name, nameWidth),
			FormatBytesRaw(proc.ReadBytes),
			FormatBytesRaw(proc.WriteBytes),
			proc.Syscr, proc.Syscw)
	}
	tw.Flush()
	fmt.Fprintln(w)

	if len(rep.Devices) > 0 {
		renderDeviceTable(w, rep, pal)
	}

	fmt.Fprintf(w, "Summary:\n\n%s%s%s\n", pal.Summary, Summary(rep), pal.Reset)
}

func renderDeviceTable(w io.Writer, rep Report, pal Palette) {
	fmt.Fprintf(w, "Device I/O Statistics:\n\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sDEVICE\tREADS\tWRITES\tREAD VOLUME\tWRITE VOLUME%s\n", pal.Column, pal.Reset)
	for _, dev := range rep.Devices {
		var reads, writes, readVol, writeVol string
		if rep.Sampled() {
			reads = fmt.Sprintf("%.1f/s", report.Rate(dev.Reads, rep.Duration))
			writes = fmt.Sprintf("%.1f/s", report.Rate(dev.Writes, rep.Duration))
			readVol = FormatBytes(uint64(report.Rate(dev.ReadBytesTotal(), rep.Duration))) + "/s"
			writeVol = FormatBytes(uint64(report.Rate(dev.WriteBytesTotal(), rep.Duration))) + "/s"
		} else {
			reads = fmt.Sprintf("%d", dev.Reads)
			writes = fmt.Sprintf("%d", dev.Writes)
			readVol = FormatBytes(dev.ReadBytesTotal())
			writeVol = FormatBytes(dev.WriteBytesTotal())
		}
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s\t%s\t%s\n",
			pal.Device, dev.Name, pal.Reset, reads, writes, readVol, writeVol)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func truncateName(name string, width int) string {
	if len(name) <= width {
		return name
	}
	if width <= 3 {
		return name[:width]
	}
	return name[:width-3] + "..."
}
