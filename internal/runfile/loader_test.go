package runfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/rotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeRunFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SingleFileWithDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeRunFile(t, dir, "day1.hcl", `
puzzle "sample" {
  input = "rotations.txt"
}

puzzle "clock" {
  input          = "/abs/clock.txt"
  preset         = "clock"
  on_parse_error = "skip"
}
`)

	puzzles, err := Load(context.Background(), path, Defaults{})
	require.NoError(t, err)

	want := []*Puzzle{
		{
			Name:   "sample",
			Input:  filepath.Join(dir, "rotations.txt"),
			Preset: dial.PresetDefault,
			Policy: rotation.PolicyAbort,
			Source: path,
		},
		{
			Name:   "clock",
			Input:  "/abs/clock.txt",
			Preset: dial.PresetClock,
			Policy: rotation.PolicySkip,
			Source: path,
		},
	}
	if diff := cmp.Diff(want, puzzles); diff != "" {
		t.Errorf("puzzles mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DirectoryAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRunFile(t, dir, "a.hcl", `puzzle "one" { input = "one.txt" }`)
	writeRunFile(t, dir, filepath.Join("nested", "b.hcl"), `puzzle "two" { input = "two.txt" }`)
	writeRunFile(t, dir, "README.md", "not a run file")

	puzzles, err := Load(context.Background(), dir, Defaults{})
	require.NoError(t, err)
	require.Len(t, puzzles, 2)
	assert.Equal(t, "one", puzzles[0].Name)
	assert.Equal(t, "two", puzzles[1].Name)
	assert.Equal(t, filepath.Join(dir, "nested", "two.txt"), puzzles[1].Input)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `puzzle "broken" {`,
			wantErr: "failed to parse run file",
		},
		{
			name:    "missing input",
			content: `puzzle "x" {}`,
			wantErr: "failed to decode run file",
		},
		{
			name:    "unknown attribute",
			content: `
puzzle "x" {
  input = "a.txt"
  modulus = 7
}
`,
			wantErr: "failed to decode run file",
		},
		{
			name:    "unknown preset",
			content: `
puzzle "x" {
  input = "a.txt"
  preset = "safe"
}
`,
			wantErr: "unknown dial preset",
		},
		{
			name:    "unknown policy",
			content: `
puzzle "x" {
  input = "a.txt"
  on_parse_error = "retry"
}
`,
			wantErr: "unknown parse error policy",
		},
		{
			name:    "preset of wrong type",
			content: `
puzzle "x" {
  input = "a.txt"
  preset = 12
}
`,
			wantErr: "must be a string",
		},
		{
			name:    "empty input",
			content: `puzzle "x" { input = "  " }`,
			wantErr: "Empty input path",
		},
		{
			name: "duplicate names",
			content: `
puzzle "x" { input = "a.txt" }
puzzle "x" { input = "b.txt" }
`,
			wantErr: `duplicate puzzle "x"`,
		},
		{
			name:    "no puzzles",
			content: ``,
			wantErr: "no puzzle blocks found",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeRunFile(t, t.TempDir(), "run.hcl", tc.content)

			_, err := Load(context.Background(), path, Defaults{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"), Defaults{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find run files")
}

func TestLoad_EmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), t.TempDir(), Defaults{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .hcl run files found")
}

// Not parallel: mutates the process environment.
func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("DIALGO_PUZZLE_DIR", "/puzzles")
	t.Setenv("DIALGO_PRESET", "clock")

	path := writeRunFile(t, t.TempDir(), "run.hcl", `
puzzle "env" {
  input  = "${env.DIALGO_PUZZLE_DIR}/day1.txt"
  preset = env.DIALGO_PRESET
}
`)

	puzzles, err := Load(context.Background(), path, Defaults{})
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	assert.Equal(t, "/puzzles/day1.txt", puzzles[0].Input)
	assert.Equal(t, dial.PresetClock, puzzles[0].Preset)
}

func TestNewEvalContext(t *testing.T) {
	t.Parallel()

	evalCtx := newEvalContext([]string{"A=1", "B=x=y", "=skipped", "NOVALUE"})

	env := evalCtx.Variables["env"]
	require.True(t, env.Type().IsObjectType())
	assert.True(t, env.GetAttr("A").RawEquals(cty.StringVal("1")))
	assert.True(t, env.GetAttr("B").RawEquals(cty.StringVal("x=y")))
	assert.False(t, env.Type().HasAttribute("NOVALUE"))
	assert.Len(t, env.Type().AttributeTypes(), 2)
}

func TestLoad_DefaultsFillOmittedAttributes(t *testing.T) {
	t.Parallel()

	path := writeRunFile(t, t.TempDir(), "run.hcl", `
puzzle "inherits" {
  input = "a.txt"
}

puzzle "overrides" {
  input          = "b.txt"
  preset         = "default"
  on_parse_error = "abort"
}
`)

	puzzles, err := Load(context.Background(), path, Defaults{
		Preset: dial.PresetClock,
		Policy: rotation.PolicySkip,
	})
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	assert.Equal(t, dial.PresetClock, puzzles[0].Preset)
	assert.Equal(t, rotation.PolicySkip, puzzles[0].Policy)
	assert.Equal(t, dial.PresetDefault, puzzles[1].Preset)
	assert.Equal(t, rotation.PolicyAbort, puzzles[1].Policy)
}
