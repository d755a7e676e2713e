package ui

import (
	"time"

	"github.com/iowhy/iowhy/pkg/types"
)

// Report is the renderer input: ranked processes, ranked devices (possibly
// empty), and the sampling window (zero when the values are cumulative).
type Report struct {
	Processes []types.ProcessIOStats
	Devices   []types.DeviceIOStats
	Duration  time.Duration
}

// Sampled reports whether the values cover a sampling window rather than
// process lifetimes.
func (r Report) Sampled() bool {
	return r.Duration > 0
}
