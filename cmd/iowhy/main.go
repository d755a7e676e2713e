// Command iowhy reports which processes and devices are behind the machine's
// disk I/O, sampled over a short window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iowhy/iowhy/pkg/collector/diskio"
	"github.com/iowhy/iowhy/pkg/collector/procio"
	"github.com/iowhy/iowhy/pkg/config"
	"github.com/iowhy/iowhy/pkg/report"
	"github.com/iowhy/iowhy/pkg/sample"
	"github.com/iowhy/iowhy/pkg/types"
	"github.com/iowhy/iowhy/pkg/ui"
)

// Exit codes follow shell conventions: 130 is 128+SIGINT.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

type runConfig struct {
	top       int
	duration  time.Duration
	byDevice  bool
	jsonOut   bool
	colorMode string
	verbosity int
}

func parseConfig(args []string) (runConfig, error) {
	fs := flag.NewFlagSet("iowhy", flag.ExitOnError)
	top := fs.Int("top", types.DefaultTopN, "number of top processes to show")
	duration := fs.Duration("duration", types.DefaultDuration, "sampling duration (0 reports cumulative totals)")
	byDevice := fs.Bool("by-device", false, "include the device I/O breakdown")
	jsonOut := fs.Bool("json", false, "output results as JSON")
	noColor := fs.Bool("no-color", false, "disable colored output")
	configPath := fs.String("config", config.DefaultPath(), "path to an optional defaults file")
	verbosity := fs.Int("v", 0, "log verbosity (higher is chattier)")
	fs.Parse(args)

	file, err := config.Load(*configPath)
	if err != nil {
		return runConfig{}, err
	}

	// Flags given on the command line beat file values.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := runConfig{
		top:       *top,
		duration:  *duration,
		byDevice:  *byDevice,
		jsonOut:   *jsonOut,
		colorMode: config.ColorAuto,
		verbosity: *verbosity,
	}
	if !set["top"] && file.Top > 0 {
		cfg.top = file.Top
	}
	if !set["duration"] && file.Duration > 0 {
		cfg.duration = time.Duration(file.Duration)
	}
	if !set["by-device"] && file.ByDevice != nil {
		cfg.byDevice = *file.ByDevice
	}
	if !set["json"] && file.JSON != nil {
		cfg.jsonOut = *file.JSON
	}
	if *noColor {
		cfg.colorMode = config.ColorNever
	} else if file.Color != "" {
		cfg.colorMode = file.Color
	}

	if cfg.top < 1 {
		return runConfig{}, fmt.Errorf("top must be at least 1, got %d", cfg.top)
	}
	if cfg.duration < 0 {
		return runConfig{}, fmt.Errorf("duration must be non-negative, got %v", cfg.duration)
	}
	return cfg, nil
}

func newLogger(verbosity int) logr.Logger {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zapCfg.OutputPaths = []string{"stderr"}
	zapLog, err := zapCfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(zapLog)
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	logger := newLogger(cfg.verbosity)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	procs := procio.New(logger, "")
	devs := diskio.New(logger, "")

	var (
		processes []types.ProcessIOStats
		devices   map[string]types.DeviceIOStats
	)
	if cfg.duration > 0 {
		res, err := sample.New(logger, procs, devs).Run(ctx, cfg.duration)
		if err != nil {
			return reportFailure(err)
		}
		processes, devices = res.Processes, res.Devices
	} else {
		// Degenerate mode: one instantaneous snapshot, cumulative values.
		processes, err = procs.CollectAll(ctx)
		if err != nil {
			return reportFailure(err)
		}
		if cfg.byDevice {
			devices, err = devs.Collect(ctx)
			if err != nil {
				return reportFailure(err)
			}
		}
	}
	if !cfg.byDevice {
		devices = nil
	}

	rep := ui.Report{
		Processes: report.TopProcesses(processes, cfg.top),
		Devices:   report.TopDevices(devices),
		Duration:  cfg.duration,
	}

	if cfg.jsonOut {
		if err := ui.RenderJSON(os.Stdout, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	stdoutFD := int(os.Stdout.Fd())
	ui.RenderText(os.Stdout, rep, ui.TextOptions{
		Palette:   ui.NewPalette(colorEnabled(cfg.colorMode, stdoutFD)),
		NameWidth: ui.DetectNameWidth(stdoutFD),
	})
	return exitOK
}

func colorEnabled(mode string, fd int) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return ui.AutoColor(fd)
	}
}

// reportFailure maps a collection or sampling error to a message and exit
// code. Not-found means the wrong OS, permission means insufficient privilege;
// the remediation differs so the wording does too.
func reportFailure(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "\nInterrupted by user")
		return exitInterrupted
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(os.Stderr, "Error: %v\nThis tool requires Linux with the /proc filesystem.\n", err)
		return exitError
	case errors.Is(err, os.ErrPermission):
		fmt.Fprintf(os.Stderr, "Error: %v\nSome I/O statistics may require root privileges to read.\n", err)
		return exitError
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
}
