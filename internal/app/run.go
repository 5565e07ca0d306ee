package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/dialgo/internal/ctxlog"
	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/fsutil"
	"github.com/specialistvlad/dialgo/internal/rotation"
	"github.com/specialistvlad/dialgo/internal/runfile"
	"github.com/specialistvlad/dialgo/internal/sequence"
)

// job is one rotations file to solve. name is empty for a plain input path.
type job struct {
	name   string
	input  string
	preset dial.Preset
	policy rotation.Policy
}

// Run solves every configured puzzle in order and stops at the first error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	jobs, err := a.jobs(ctx)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		if _, err := a.solve(ctx, j); err != nil {
			if j.name != "" {
				return fmt.Errorf("puzzle %q: %w", j.name, err)
			}
			return err
		}
	}

	a.logger.Debug("App.Run method finished.", "puzzles", len(jobs))
	return nil
}

func (a *App) jobs(ctx context.Context) ([]job, error) {
	if a.config.RunFilePath == "" {
		return []job{{
			input:  a.config.InputPath,
			preset: a.config.Preset,
			policy: a.config.ParsePolicy,
		}}, nil
	}

	puzzles, err := runfile.Load(ctx, a.config.RunFilePath, runfile.Defaults{
		Preset: a.config.Preset,
		Policy: a.config.ParsePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load run files: %w", err)
	}

	jobs := make([]job, 0, len(puzzles))
	for _, p := range puzzles {
		jobs = append(jobs, job{name: p.Name, input: p.Input, preset: p.Preset, policy: p.Policy})
	}
	return jobs, nil
}

func (a *App) solve(ctx context.Context, j job) (sequence.Result, error) {
	logger := ctxlog.FromContext(ctx)
	if j.name != "" {
		logger = logger.With("puzzle", j.name)
	}

	lines, err := fsutil.ReadLines(j.input)
	if err != nil {
		return sequence.Result{}, fmt.Errorf("failed to read rotations: %w", err)
	}
	logger.Info("Rotations file read.", "path", j.input, "lines", len(lines))

	cmds, skipped, err := rotation.ParseLines(lines, j.policy)
	if err != nil {
		return sequence.Result{}, fmt.Errorf("failed to parse rotations in %s: %w", j.input, err)
	}
	for _, perr := range skipped {
		logger.Warn("Skipping malformed rotation.", "line", perr.Line, "token", perr.Token, "error", perr.Err)
	}

	d, err := dial.New(j.preset)
	if err != nil {
		return sequence.Result{}, err
	}

	if j.name != "" {
		fmt.Fprintf(a.outW, "== %s (%s)\n", j.name, j.preset)
	}
	fmt.Fprintf(a.outW, "Read %d rotations\n", len(cmds))

	var opts []sequence.Option
	if !a.config.Quiet {
		opts = append(opts, sequence.WithObserver(func(s sequence.Step) {
			writeStep(a.outW, s)
		}))
	}
	res := sequence.Run(ctxlog.WithLogger(ctx, logger), d, cmds, opts...)

	writeSummary(a.outW, res)
	logger.Info("Puzzle solved.", "zero_landings", res.ZeroLandings, "crossings", res.Crossings, "skipped", len(skipped))
	return res, nil
}
