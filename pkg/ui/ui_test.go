package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/iowhy/iowhy/pkg/types"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in       uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
		{1610612736, "1.5 GB"},
		{3 << 40, "3.0 TB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.expected {
			t.Fatalf("FormatBytes(%d): expected %q, got %q", tc.in, tc.expected, got)
		}
	}

	if got := FormatBytesRaw(1610612736); got != "1.5 GB (1610612736)" {
		t.Fatalf("unexpected raw format: %q", got)
	}
}

func TestNewPaletteDisabledIsEmpty(t *testing.T) {
	pal := NewPalette(false)
	if pal != (Palette{}) {
		t.Fatalf("disabled palette must be all empty strings: %+v", pal)
	}
	if on := NewPalette(true); on.Header == "" || on.Reset == "" {
		t.Fatalf("enabled palette missing codes: %+v", on)
	}
}

func sampleReport() Report {
	return Report{
		Processes: []types.ProcessIOStats{
			{PID: 42, Name: "postgres", Command: "/usr/bin/postgres", ReadBytes: 4096, WriteBytes: 8192, Syscr: 10, Syscw: 20},
			{PID: 7, Name: "rsync", ReadBytes: 2048, Syscr: 4},
		},
		Devices: []types.DeviceIOStats{
			{Name: "sda", Major: 8, Reads: 30, Writes: 10, ReadSectors: 100, WriteSectors: 50},
		},
		Duration: 2 * time.Second,
	}
}

func TestRenderTextSampled(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, sampleReport(), TextOptions{Palette: NewPalette(false)})
	out := buf.String()

	for _, want := range []string{
		"=== I/O Activity Analysis ===",
		"Sampling duration: 2.0 seconds",
		"Top 2 processes by I/O:",
		"postgres",
		"4.0 KB (4096)",
		"Device I/O Statistics:",
		"15.0/s", // 30 reads over 2s
		"Summary:",
		"Highest I/O activity: Process 'postgres' (PID 42)",
		"Most active device: sda",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("disabled palette leaked escape codes:\n%s", out)
	}
}

func TestRenderTextCumulativeAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	rep := sampleReport()
	rep.Duration = 0
	RenderText(&buf, rep, TextOptions{})
	if !strings.Contains(buf.String(), "cumulative since process start") {
		t.Fatalf("missing cumulative note:\n%s", buf.String())
	}

	buf.Reset()
	RenderText(&buf, Report{}, TextOptions{})
	if !strings.Contains(buf.String(), "No process I/O statistics available.") {
		t.Fatalf("missing empty-report message:\n%s", buf.String())
	}
}

func TestSummarySecondaryContributor(t *testing.T) {
	rep := Report{
		Processes: []types.ProcessIOStats{
			{PID: 1, Name: "big", ReadBytes: 1000},
			{PID: 2, Name: "meaningful", ReadBytes: 500},
		},
	}
	out := Summary(rep)
	if !strings.Contains(out, "Secondary contributor: Process 'meaningful'") {
		t.Fatalf("expected secondary contributor line:\n%s", out)
	}

	rep.Processes[1].ReadBytes = 5 // below the 10% threshold
	if strings.Contains(Summary(rep), "Secondary contributor") {
		t.Fatalf("tiny contributor should not be mentioned")
	}
}

func TestRenderJSON(t *testing.T) {
	t.Cleanup(func() { hostInfo = host.Info })
	hostInfo = func() (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "box1", KernelVersion: "6.8.0"}, nil
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out["hostname"] != "box1" || out["kernel_version"] != "6.8.0" {
		t.Fatalf("host metadata missing: %v", out)
	}
	if out["sampling_duration_seconds"] != 2.0 {
		t.Fatalf("unexpected duration: %v", out["sampling_duration_seconds"])
	}

	procs := out["top_processes"].([]any)
	if len(procs) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(procs))
	}
	first := procs[0].(map[string]any)
	if first["pid"] != 42.0 || first["total_io_bytes"] != 12288.0 {
		t.Fatalf("unexpected top process: %v", first)
	}

	devs := out["devices"].([]any)
	dev := devs[0].(map[string]any)
	if dev["read_bytes"] != float64(100*types.SectorSize) {
		t.Fatalf("sector conversion wrong: %v", dev)
	}
	if dev["reads_per_second"] != 15.0 {
		t.Fatalf("expected reads_per_second 15, got %v", dev["reads_per_second"])
	}
}

func TestRenderJSONCumulativeOmitsRates(t *testing.T) {
	t.Cleanup(func() { hostInfo = host.Info })
	hostInfo = func() (*host.InfoStat, error) { return nil, errors.New("no host info") }

	rep := sampleReport()
	rep.Duration = 0

	var buf bytes.Buffer
	if err := RenderJSON(&buf, rep); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out["sampling_duration_seconds"] != nil {
		t.Fatalf("duration should be null without sampling: %v", out["sampling_duration_seconds"])
	}
	if _, ok := out["hostname"]; ok {
		t.Fatalf("hostname should be omitted when lookup fails")
	}
	dev := out["devices"].([]any)[0].(map[string]any)
	if _, ok := dev["reads_per_second"]; ok {
		t.Fatalf("per-second fields should be omitted without a window")
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("short", 18); got != "short" {
		t.Fatalf("short name changed: %q", got)
	}
	long := strings.Repeat("a", 30)
	got := truncateName(long, 18)
	if len(got) != 18 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
