package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	restoreWorkdir(t, dir)

	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Name != "hireboard" {
		t.Fatalf("app name = %q", cfg.App.Name)
	}
	if cfg.Pipeline.TargetFillDays != 45 {
		t.Fatalf("target fill days = %d", cfg.Pipeline.TargetFillDays)
	}
	if cfg.Pipeline.StageSLADays["screen"] != 7 {
		t.Fatalf("screen sla = %d", cfg.Pipeline.StageSLADays["screen"])
	}
	if cfg.Forecast.Trials != 1000 || cfg.Forecast.HorizonDays != 365 {
		t.Fatalf("forecast defaults = %+v", cfg.Forecast)
	}
	if cfg.Server.Addr != ":8714" {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadReadsExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: hireboard-test
  env: test
database:
  dsn: test.sqlite
pipeline:
  target_fill_days: 30
forecast:
  trials: 250
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Name != "hireboard-test" || cfg.App.Env != "test" {
		t.Fatalf("app = %+v", cfg.App)
	}
	if cfg.Database.DSN != "test.sqlite" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Pipeline.TargetFillDays != 30 {
		t.Fatalf("target fill days = %d", cfg.Pipeline.TargetFillDays)
	}
	if cfg.Forecast.Trials != 250 {
		t.Fatalf("trials = %d", cfg.Forecast.Trials)
	}
	// Unset keys keep their defaults.
	if cfg.Capacity.RecruiterWU != 8.0 {
		t.Fatalf("recruiter wu = %v", cfg.Capacity.RecruiterWU)
	}
}

func TestLoadRejectsMissingExplicitFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero trials", "forecast:\n  trials: 0\n"},
		{"negative horizon", "forecast:\n  horizon_days: -1\n"},
		{"zero recruiter wu", "capacity:\n  recruiter_wu: 0\n"},
		{"empty dsn", "database:\n  dsn: \"\"\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", tc.name, err)
		}
		if _, err := Load(context.Background(), path); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func restoreWorkdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}
