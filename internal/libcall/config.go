package libcall

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

// Config is the read-only pass configuration. It is established once before
// any function is visited and shared by every Simplifier.
type Config struct {
	// PreLink allows declaring unresolved library symbols on demand; after
	// linking, replacement symbols must already exist in the module.
	PreLink bool `toml:"prelink"`
	// UnsafeMath enables the value-changing rewrites for every call site,
	// regardless of per-site fast-math flags.
	UnsafeMath bool `toml:"unsafe_math"`
	// UseNative lists the base function names eligible for native_
	// substitution. "all" (or a single empty entry) enables every candidate.
	UseNative []string `toml:"use_native"`
}

// AllNative reports whether native substitution applies to every candidate.
func (c Config) AllNative() bool {
	if slices.Contains(c.UseNative, "all") {
		return true
	}
	return len(c.UseNative) == 1 && c.UseNative[0] == ""
}

// UseNativeFunc reports whether the named function may be replaced by its
// native_ variant.
func (c Config) UseNativeFunc(name string) bool {
	return c.AllNative() || slices.Contains(c.UseNative, name)
}

type configFile struct {
	Simplify Config `toml:"simplify"`
}

// LoadConfig reads pass configuration from the [simplify] table of a TOML
// file. Missing keys keep their zero values.
func LoadConfig(path string) (Config, error) {
	var cfg configFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg.Simplify, nil
}
