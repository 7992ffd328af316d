// Package config resolves the run configuration from command-line flags and
// the environment exactly once, before any action runs.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stevehiehn/drt/internal/engine"
)

// ActiveEnv forces Apply mode when set, whatever its value.
const ActiveEnv = "DRT_ACTIVE"

// Flags are the raw command-line switches.
type Flags struct {
	Debug       bool
	Interactive bool
	Active      bool
	Strict      bool
	JSON        bool
	DiffTool    string
	LogFormat   string
	ActionFile  string
}

// Config holds everything an invocation needs. It is not modified after
// Resolve returns.
type Config struct {
	Mode       engine.Mode
	ModeSource string // flag or environment that selected Mode
	Debug      bool
	Strict     bool
	JSON       bool
	DiffTool   string
	LogLevel   string
	LogFormat  string
	ActionFile string
	WorkDir    string
}

// Resolve combines flags with the environment. lookupEnv is normally
// os.LookupEnv.
func Resolve(f Flags, workDir string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if f.Interactive && f.Active {
		return nil, errors.New("--interactive and --active are mutually exclusive")
	}

	cfg := &Config{
		Mode:       engine.Simulate,
		ModeSource: "default",
		Debug:      f.Debug,
		Strict:     f.Strict,
		JSON:       f.JSON,
		DiffTool:   f.DiffTool,
		LogLevel:   "warn",
		LogFormat:  strings.ToLower(f.LogFormat),
		ActionFile: f.ActionFile,
		WorkDir:    workDir,
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", f.LogFormat)
	}

	_, envActive := lookupEnv(ActiveEnv)
	switch {
	case f.Interactive:
		cfg.Mode, cfg.ModeSource = engine.Confirm, "--interactive"
	case f.Active:
		cfg.Mode, cfg.ModeSource = engine.Apply, "--active"
	case envActive:
		cfg.Mode, cfg.ModeSource = engine.Apply, ActiveEnv
	}
	return cfg, nil
}
