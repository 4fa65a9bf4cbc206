package profiling

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func nonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile %s not written: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("profile %s is empty", path)
	}
}

func TestProfilerStartStop(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfilePath: filepath.Join(dir, "cpu.prof"),
		MemProfilePath: filepath.Join(dir, "mem.prof"),
	}
	p := New(cfg)

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !p.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}
	if err := p.Start(); err == nil {
		t.Error("second Start() succeeded")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if p.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
	nonEmpty(t, cfg.CPUProfilePath)
	nonEmpty(t, cfg.MemProfilePath)
}

func TestProfilerStopWithoutStart(t *testing.T) {
	if err := New(Config{}).Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() error = %v, want ErrNotRunning", err)
	}
}

func TestProfilerMemoryOnly(t *testing.T) {
	mem := filepath.Join(t.TempDir(), "mem.prof")
	p := New(Config{MemProfilePath: mem})
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	nonEmpty(t, mem)
}

func TestProfilerInvalidPaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "x.prof")

	if err := New(Config{CPUProfilePath: missing}).Start(); err == nil {
		t.Error("Start() with an unwritable CPU path succeeded")
	}

	p := New(Config{MemProfilePath: missing})
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err == nil {
		t.Error("Stop() with an unwritable heap path succeeded")
	}
	if p.IsRunning() {
		t.Error("failed Stop() left the profiler running")
	}
}

func TestConfigEnabled(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{}, false},
		{Config{CPUProfilePath: "c"}, true},
		{Config{MemProfilePath: "m"}, true},
	}
	for _, tt := range tests {
		if got := tt.cfg.Enabled(); got != tt.want {
			t.Errorf("%+v.Enabled() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}
