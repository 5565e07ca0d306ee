// Package runfile loads puzzle definitions from HCL run files. A run file
// names one or more puzzles, each pointing at a rotations file together with
// the dial preset and parse policy to use for it:
//
//	puzzle "day1" {
//	  input          = "${env.PUZZLE_DIR}/day1.txt"
//	  preset         = "clock"
//	  on_parse_error = "skip"
//	}
//
// Relative input paths are resolved against the directory of the run file.
package runfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/dialgo/internal/ctxlog"
	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/fsutil"
	"github.com/specialistvlad/dialgo/internal/rotation"
	"github.com/zclconf/go-cty/cty"
)

// Puzzle is a single decoded puzzle block.
type Puzzle struct {
	Name   string
	Input  string
	Preset dial.Preset
	Policy rotation.Policy
	// Source is the run file the puzzle was declared in.
	Source string
}

// Defaults supplies the preset and parse policy for puzzles that do not set
// their own.
type Defaults struct {
	Preset dial.Preset
	Policy rotation.Policy
}

type hclRunFile struct {
	Puzzles []*hclPuzzle `hcl:"puzzle,block"`
}

type hclPuzzle struct {
	Name         string         `hcl:"name,label"`
	Input        string         `hcl:"input"`
	Preset       hcl.Expression `hcl:"preset,optional"`
	OnParseError hcl.Expression `hcl:"on_parse_error,optional"`
}

// Load parses the run file at path, or every .hcl file below it when path is
// a directory, and returns the puzzles in file order. Puzzles that omit
// preset or on_parse_error take the value from defaults.
func Load(ctx context.Context, path string, defaults Defaults) ([]*Puzzle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading run files.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find run files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl run files found in %s", path)
	}
	logger.Debug("Discovered run files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(os.Environ())

	var puzzles []*Puzzle
	seen := make(map[string]string)
	for _, file := range files {
		filePuzzles, err := loadFile(parser, evalCtx, file, defaults)
		if err != nil {
			return nil, err
		}
		for _, p := range filePuzzles {
			if prev, ok := seen[p.Name]; ok {
				return nil, fmt.Errorf("duplicate puzzle %q declared in %s and %s", p.Name, prev, p.Source)
			}
			seen[p.Name] = p.Source
			puzzles = append(puzzles, p)
		}
	}

	if len(puzzles) == 0 {
		return nil, fmt.Errorf("no puzzle blocks found in %s", path)
	}
	logger.Debug("Run files loaded.", "puzzles", len(puzzles))
	return puzzles, nil
}

func loadFile(parser *hclparse.Parser, evalCtx *hcl.EvalContext, file string, defaults Defaults) ([]*Puzzle, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse run file %s: %w", file, diags)
	}

	var root hclRunFile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run file %s: %w", file, diags)
	}

	puzzles := make([]*Puzzle, 0, len(root.Puzzles))
	for _, block := range root.Puzzles {
		p, diags := newPuzzle(block, evalCtx, file, defaults)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid puzzle %q in %s: %w", block.Name, file, diags)
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

func newPuzzle(block *hclPuzzle, evalCtx *hcl.EvalContext, file string, defaults Defaults) (*Puzzle, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	presetName, d := optionalString(block.Preset, evalCtx, "preset")
	diags = append(diags, d...)
	policyName, d := optionalString(block.OnParseError, evalCtx, "on_parse_error")
	diags = append(diags, d...)
	if diags.HasErrors() {
		return nil, diags
	}

	preset := defaults.Preset
	if presetName != "" {
		p, err := dial.ParsePreset(presetName)
		if err != nil {
			diags = append(diags, invalidValue("preset", err, block.Preset))
		}
		preset = p
	}
	if preset == "" {
		preset = dial.PresetDefault
	}

	policy := defaults.Policy
	if policyName != "" {
		p, err := rotation.ParsePolicy(policyName)
		if err != nil {
			diags = append(diags, invalidValue("on_parse_error", err, block.OnParseError))
		}
		policy = p
	}

	input := strings.TrimSpace(block.Input)
	if input == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty input path",
			Detail:   "The \"input\" attribute must name a rotations file.",
		})
	}
	if diags.HasErrors() {
		return nil, diags
	}

	if !filepath.IsAbs(input) {
		input = filepath.Join(filepath.Dir(file), input)
	}

	return &Puzzle{
		Name:   block.Name,
		Input:  input,
		Preset: preset,
		Policy: policy,
		Source: file,
	}, nil
}

// optionalString evaluates an optional attribute. A missing or null attribute
// yields "".
func optionalString(expr hcl.Expression, evalCtx *hcl.EvalContext, name string) (string, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsKnown() || !val.Type().Equals(cty.String) {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   fmt.Sprintf("The %q attribute must be a string.", name),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}

func invalidValue(name string, err error, expr hcl.Expression) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %q value", name),
		Detail:   err.Error(),
		Subject:  expr.Range().Ptr(),
	}
}

// newEvalContext exposes the process environment as the "env" object.
func newEvalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
