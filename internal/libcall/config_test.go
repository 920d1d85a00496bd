package libcall_test

import (
	"os"
	"path/filepath"
	"testing"

	"helios/internal/libcall"
)

// TestLoadConfig tests reading the [simplify] table from TOML.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helios.toml")
	data := `
[simplify]
prelink = true
unsafe_math = true
use_native = ["sin", "cos"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := libcall.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.PreLink || !cfg.UnsafeMath {
		t.Errorf("expected prelink and unsafe_math set, got %+v", cfg)
	}
	if !cfg.UseNativeFunc("sin") || !cfg.UseNativeFunc("cos") || cfg.UseNativeFunc("tan") {
		t.Errorf("unexpected native opt-in set: %+v", cfg.UseNative)
	}
}

// TestLoadConfigMissingTable tests that an empty file yields the zero
// configuration.
func TestLoadConfigMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helios.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := libcall.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.PreLink || cfg.UnsafeMath || len(cfg.UseNative) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

// TestLoadConfigBadTOML tests the parse error path.
func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helios.toml")
	if err := os.WriteFile(path, []byte("[simplify\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := libcall.LoadConfig(path); err == nil {
		t.Errorf("expected a parse error")
	}
}

// TestAllNative tests the two spellings of the all-native opt-in.
func TestAllNative(t *testing.T) {
	cases := []struct {
		list []string
		want bool
	}{
		{nil, false},
		{[]string{"sin"}, false},
		{[]string{"all"}, true},
		{[]string{""}, true},
		{[]string{"sin", "all"}, true},
		{[]string{"", "sin"}, false},
	}
	for _, c := range cases {
		cfg := libcall.Config{UseNative: c.list}
		if got := cfg.AllNative(); got != c.want {
			t.Errorf("AllNative(%v) = %v, want %v", c.list, got, c.want)
		}
	}
}
