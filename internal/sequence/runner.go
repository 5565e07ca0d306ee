// Package sequence folds a list of rotation commands over a dial and totals
// how often the dial touched zero.
package sequence

import (
	"context"

	"github.com/specialistvlad/dialgo/internal/ctxlog"
	"github.com/specialistvlad/dialgo/internal/dial"
	"github.com/specialistvlad/dialgo/internal/rotation"
)

// Step pairs a command with the turn it produced.
type Step struct {
	Command rotation.Command
	Turn    dial.Turn
}

// Result holds the totals of a run.
type Result struct {
	// ZeroLandings counts commands after which the dial rested on zero.
	ZeroLandings int
	// Crossings sums the per-rotation crossing counts.
	Crossings int
	Steps     []Step
}

// Option configures Run.
type Option func(*runOptions)

type runOptions struct {
	observer func(Step)
}

// WithObserver registers fn to be called after every rotation, in order.
func WithObserver(fn func(Step)) Option {
	return func(o *runOptions) {
		o.observer = fn
	}
}

// Run applies cmds to d in input order. d is mutated.
func Run(ctx context.Context, d *dial.Dial, cmds []rotation.Command, opts ...Option) Result {
	logger := ctxlog.FromContext(ctx)
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger.Debug("Sequence run started.", "commands", len(cmds), "start", d.Position(), "modulus", d.Modulus())

	res := Result{Steps: make([]Step, 0, len(cmds))}
	for _, cmd := range cmds {
		turn := d.Rotate(cmd)
		step := Step{Command: cmd, Turn: turn}

		res.Crossings += turn.Crossings()
		if turn.Position == 0 {
			res.ZeroLandings++
		}
		res.Steps = append(res.Steps, step)

		logger.Debug("Dial rotated.",
			"rotation", cmd.String(),
			"from", turn.From,
			"to", turn.Position,
			"full_laps", turn.FullLaps,
			"overflow", turn.Overflow,
			"underflow", turn.Underflow,
			"crossings", turn.Crossings(),
		)

		if o.observer != nil {
			o.observer(step)
		}
	}

	logger.Debug("Sequence run finished.", "zero_landings", res.ZeroLandings, "crossings", res.Crossings)
	return res
}
