package ui

import "golang.org/x/sys/unix"

// narrowTerminalWidth is the column count below which the process-name column
// shrinks to keep rows on one line.
const narrowTerminalWidth = 100

// DetectNameWidth sizes the process-name column for the terminal behind fd.
// Non-terminals (pipes, files) get the full default width.
func DetectNameWidth(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return defaultNameWidth
	}
	if int(ws.Col) > 0 && int(ws.Col) < narrowTerminalWidth {
		return defaultNameWidth / 2
	}
	return defaultNameWidth
}
