package ui

import "fmt"

// FormatBytes renders a byte count in the largest unit that keeps the value
// above one, with a single decimal. Plain bytes stay integral.
func FormatBytes(v uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
		tb = 1 << 40
	)
	switch {
	case v < kb:
		return fmt.Sprintf("%d B", v)
	case v < mb:
		return fmt.Sprintf("%.1f KB", float64(v)/kb)
	case v < gb:
		return fmt.Sprintf("%.1f MB", float64(v)/mb)
	case v < tb:
		return fmt.Sprintf("%.1f GB", float64(v)/gb)
	default:
		return fmt.Sprintf("%.1f TB", float64(v)/tb)
	}
}

// FormatBytesRaw appends the exact count so operators can paste real numbers
// into follow-up tooling: "1.5 GB (1610612736)".
func FormatBytesRaw(v uint64) string {
	return fmt.Sprintf("%s (%d)", FormatBytes(v), v)
}
