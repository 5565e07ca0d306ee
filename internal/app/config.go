package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/rotation"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath   string // rotations file
	RunFilePath string // .hcl file or directory, replaces InputPath

	Preset      dial.Preset
	ParsePolicy rotation.Policy
	Quiet       bool
	LogFormat   string
	LogLevel    string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch {
	case cfg.InputPath == "" && cfg.RunFilePath == "":
		return nil, errors.New("either an input path or a run file path is required")
	case cfg.InputPath != "" && cfg.RunFilePath != "":
		return nil, errors.New("input path and run file path are mutually exclusive")
	}

	preset, err := dial.ParsePreset(string(cfg.Preset))
	if err != nil {
		return nil, err
	}
	cfg.Preset = preset

	switch cfg.ParsePolicy {
	case rotation.PolicyAbort, rotation.PolicySkip:
	default:
		return nil, fmt.Errorf("invalid parse policy: %v", cfg.ParsePolicy)
	}

	return &cfg, nil
}
