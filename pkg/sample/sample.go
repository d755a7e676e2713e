// Package sample drives the two-snapshot observation window.
package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/iowhy/iowhy/pkg/report"
	"github.com/iowhy/iowhy/pkg/types"
)

// ProcessSource yields a point-in-time per-process counter snapshot.
type ProcessSource interface {
	CollectAll(ctx context.Context) ([]types.ProcessIOStats, error)
}

// DeviceSource yields a point-in-time per-device counter snapshot.
type DeviceSource interface {
	Collect(ctx context.Context) (map[string]types.DeviceIOStats, error)
}

// Result carries the windowed deltas plus the window they cover.
type Result struct {
	Processes []types.ProcessIOStats
	Devices   map[string]types.DeviceIOStats
	Duration  time.Duration
}

// Sampler captures two snapshots separated by a fixed wait and reduces them
// to deltas. It is single-shot and synchronous; the wait between snapshots is
// the only suspension point and cancelling the context during it is the only
// way to interrupt a run.
type Sampler struct {
	logger    logr.Logger
	processes ProcessSource
	devices   DeviceSource
}

// New assembles a sampler over the given sources.
func New(logger logr.Logger, processes ProcessSource, devices DeviceSource) *Sampler {
	return &Sampler{logger: logger, processes: processes, devices: devices}
}

// Run samples over the window d. Snapshot failures propagate without retry;
// a transient read failure counts as permanent for this window. Cancellation
// while waiting surfaces as ctx.Err() so the caller can tell interruption
// apart from collection failure.
func (s *Sampler) Run(ctx context.Context, d time.Duration) (Result, error) {
	if d <= 0 {
		return Result{}, fmt.Errorf("sampling window must be positive, got %v", d)
	}

	beforeProcs, err := s.processes.CollectAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("first process snapshot: %w", err)
	}
	beforeDevs, err := s.devices.Collect(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("first device snapshot: %w", err)
	}
	s.logger.V(1).Info("captured first snapshot",
		"processes", len(beforeProcs), "devices", len(beforeDevs), "window", d)

	select {
	case <-time.After(d):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	afterProcs, err := s.processes.CollectAll(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("second process snapshot: %w", err)
	}
	afterDevs, err := s.devices.Collect(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("second device snapshot: %w", err)
	}

	return Result{
		Processes: report.ProcessDeltas(beforeProcs, afterProcs),
		Devices:   report.DeviceDeltas(beforeDevs, afterDevs),
		Duration:  d,
	}, nil
}
