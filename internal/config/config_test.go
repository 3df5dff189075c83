package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/aicontext-cli/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Template != "default" {
		t.Errorf("template = %q, want default", c.Template)
	}
	if c.ArchiveThreshold != 50000 || c.SplitThreshold != 100000 || c.LargeFileThreshold != 10000 {
		t.Errorf("unexpected thresholds: %+v", c)
	}
	if c.NoColor {
		t.Errorf("no_color should default to false")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load missing explicit file: %v", err)
	}
	if err := c.Set("template", "minimal"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("large_file_threshold", "2500"); err != nil {
		t.Fatal(err)
	}
	if err := config.Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Template != "minimal" || got.LargeFileThreshold != 2500 {
		t.Fatalf("reloaded config mismatch: %+v", got)
	}
	if got.SplitThreshold != 100000 {
		t.Fatalf("untouched key lost its value: %d", got.SplitThreshold)
	}
}

func TestSaveDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := config.Save(c, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(home, ".aic", "config.yaml"))
	if err != nil {
		t.Fatalf("expected config under ~/.aic: %v", err)
	}
	if !strings.Contains(string(b), "archive_threshold: 50000") {
		t.Fatalf("saved config missing threshold:\n%s", b)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("template: fromfile\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AIC_TEMPLATE", "fromenv")
	c, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Template != "fromenv" {
		t.Fatalf("template = %q, want fromenv", c.Template)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("template: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestSetValidation(t *testing.T) {
	c := &config.Global{}
	for _, tc := range []struct{ key, val string }{
		{"archive_threshold", "abc"},
		{"split_threshold", "0"},
		{"large_file_threshold", "-5"},
		{"no_color", "maybe"},
		{"api_key", "x"},
	} {
		if err := c.Set(tc.key, tc.val); err == nil {
			t.Errorf("Set(%q, %q) succeeded, want error", tc.key, tc.val)
		}
	}
	if err := c.Set("no_color", "true"); err != nil || !c.NoColor {
		t.Fatalf("no_color not set: %v", err)
	}
	for _, k := range config.Keys {
		if _, err := c.Get(k); err != nil {
			t.Errorf("Get(%q): %v", k, err)
		}
	}
}
