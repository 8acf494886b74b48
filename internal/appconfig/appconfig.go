// Package appconfig implements SPEC_FULL.md §4.10's runtime settings file:
// window size, the resolution-scale slider spec.md §5 describes as an
// external GUI control, and host-level overrides for the renderer's bounce
// limit and target sample count. Grounded directly on noisetorch's
// config.go (a flat TOML-tagged struct, BurntSushi/toml.DecodeFile on read,
// toml.NewEncoder on write, a fixed set of defaults applied before the file
// exists) using github.com/BurntSushi/toml.
package appconfig

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything cmd/pathtracer needs that isn't part of the
// scene description itself.
type Config struct {
	WindowWidth      int     `toml:"window_width"`
	WindowHeight     int     `toml:"window_height"`
	ResScale         float64 `toml:"res_scale"`
	BounceLimit      int     `toml:"bounce_limit"`
	TargetSamples    int     `toml:"target_samples"`
	EnvironmentLight bool    `toml:"environment_light"`
	ScenePath        string  `toml:"scene_path"`
}

// Default returns the settings a fresh install starts with, mirroring
// noisetorch's initializeConfigIfNot default literal.
func Default() Config {
	return Config{
		WindowWidth:      1280,
		WindowHeight:     720,
		ResScale:         1.0,
		BounceLimit:      10,
		TargetSamples:    0, // loaded and saved only; cmd/pathtracer does not read it and renders until quit.
		EnvironmentLight: true,
		ScenePath:        "scene.yaml",
	}
}

// Load decodes path as TOML, overlaying only the fields the file sets on
// top of Default. A missing file is not an error — it means a fresh
// install that hasn't saved a config yet, so Load returns Default()
// unchanged. Unlike noisetorch, this never os.Exit/log.Fatal's on a genuine
// parse error either: a config error is the host's to report (spec.md §7's
// "never crashes the core" ethos extended to the ambient stack).
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("appconfig: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating it.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return fmt.Errorf("appconfig: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("appconfig: write: %w", err)
	}
	return nil
}
