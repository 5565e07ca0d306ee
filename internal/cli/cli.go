package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/dialgo/internal/app"
	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/rotation"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("dialgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dialgo - Turns a safe dial by a list of rotations and counts how often it hits zero.

Usage:
  dialgo [options] [INPUT_PATH]

Arguments:
  INPUT_PATH
    Path to a rotations file with one command per line, e.g. "R48" or "L5".

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the rotations file.")
	iFlag := flagSet.String("i", "", "Path to the rotations file (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an .hcl run file or a directory of run files. Replaces the input path.")
	cFlag := flagSet.String("c", "", "Path to an .hcl run file or directory (shorthand).")
	presetFlag := flagSet.String("preset", string(dial.PresetDefault), "Dial preset, also the default for run-file puzzles. Options: "+presetOptions()+".")
	policyFlag := flagSet.String("on-parse-error", "abort", "What to do with a malformed rotation, also the default for run-file puzzles. Options: 'abort' or 'skip'.")
	quietFlag := flagSet.Bool("quiet", false, "Only print the summary, not every rotation.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := firstNonEmpty(*inputFlag, *iFlag)
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	runFile := firstNonEmpty(*configFlag, *cFlag)
	slog.Debug("Input determined.", "path", path, "run_file", runFile)

	if path == "" && runFile == "" {
		slog.Debug("No input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	preset, err := dial.ParsePreset(*presetFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid preset: " + err.Error()}
	}
	policy, err := rotation.ParsePolicy(*policyFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid on-parse-error: " + err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InputPath:   path,
		RunFilePath: runFile,
		Preset:      preset,
		ParsePolicy: policy,
		Quiet:       *quietFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// presetOptions renders every preset as e.g. "'clock' (12 positions, starts at 6)".
func presetOptions() string {
	opts := make([]string, 0, len(dial.Presets()))
	for _, p := range dial.Presets() {
		d, err := dial.New(p)
		if err != nil {
			continue
		}
		opts = append(opts, fmt.Sprintf("'%s' (%d positions, starts at %d)", p, d.Modulus(), d.Position()))
	}
	return strings.Join(opts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
