package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iowhy/iowhy/pkg/types"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "absent.yaml")})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.top != types.DefaultTopN {
		t.Fatalf("expected default top %d, got %d", types.DefaultTopN, cfg.top)
	}
	if cfg.duration != types.DefaultDuration {
		t.Fatalf("expected default duration %v, got %v", types.DefaultDuration, cfg.duration)
	}
	if cfg.byDevice || cfg.jsonOut {
		t.Fatalf("breakdown and json should default off: %+v", cfg)
	}
	if cfg.colorMode != "auto" {
		t.Fatalf("expected auto color, got %q", cfg.colorMode)
	}
}

func TestParseConfigFileAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "top: 12\nduration: 9s\nby_device: true\ncolor: never\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// File fills in whatever the command line left alone.
	cfg, err := parseConfig([]string{"-config", path})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.top != 12 || cfg.duration != 9*time.Second || !cfg.byDevice || cfg.colorMode != "never" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	// Explicit flags beat the file.
	cfg, err = parseConfig([]string{"-config", path, "-top", "3", "-duration", "1s"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.top != 3 || cfg.duration != time.Second {
		t.Fatalf("flags should override file: %+v", cfg)
	}
	if !cfg.byDevice {
		t.Fatalf("unset flag should still take the file value: %+v", cfg)
	}
}

func TestParseConfigValidation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	if _, err := parseConfig([]string{"-config", missing, "-top", "0"}); err == nil {
		t.Fatalf("top below 1 must be rejected")
	}
	if _, err := parseConfig([]string{"-config", missing, "-duration", "-2s"}); err == nil {
		t.Fatalf("negative duration must be rejected")
	}
	if _, err := parseConfig([]string{"-config", missing, "-duration", "0s"}); err != nil {
		t.Fatalf("zero duration is the degenerate single-snapshot mode: %v", err)
	}
}

func TestReportFailureExitCodes(t *testing.T) {
	if got := reportFailure(context.Canceled); got != exitInterrupted {
		t.Fatalf("interruption should exit %d, got %d", exitInterrupted, got)
	}
	if got := reportFailure(os.ErrNotExist); got != exitError {
		t.Fatalf("missing interface should exit %d, got %d", exitError, got)
	}
	if got := reportFailure(errors.New("boom")); got != exitError {
		t.Fatalf("generic failure should exit %d, got %d", exitError, got)
	}
}

func TestColorEnabledModes(t *testing.T) {
	if !colorEnabled("always", -1) {
		t.Fatalf("always must enable color even without a terminal")
	}
	if colorEnabled("never", -1) {
		t.Fatalf("never must disable color")
	}
	if colorEnabled("auto", -1) {
		t.Fatalf("auto must disable color for a non-terminal fd")
	}
}
