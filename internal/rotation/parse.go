package rotation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxMagnitude is the largest accepted magnitude. It keeps per-line lap counts
// small enough that summing a whole file cannot overflow an int.
const MaxMagnitude = math.MaxInt32

var (
	ErrEmptyCommand     = errors.New("empty command")
	ErrInvalidDirection = errors.New("direction must be 'L' or 'R'")
	ErrInvalidMagnitude = fmt.Errorf("magnitude must be an integer between 0 and %d", MaxMagnitude)
)

// ParseError describes a token that could not be turned into a Command.
// Line is 1-based and zero when the token was parsed on its own.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid rotation %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("invalid rotation %q: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse turns a token such as "R48" into a Command.
func Parse(token string) (Command, error) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return Command{}, &ParseError{Token: token, Err: ErrEmptyCommand}
	}

	var dir Direction
	switch raw[0] {
	case 'L':
		dir = Left
	case 'R':
		dir = Right
	default:
		return Command{}, &ParseError{Token: raw, Err: ErrInvalidDirection}
	}

	// ParseUint rejects signs, so "R-5" and "R+5" fail here.
	digits := raw[1:]
	n, err := strconv.ParseUint(digits, 10, 31)
	if err != nil {
		return Command{}, &ParseError{Token: raw, Err: fmt.Errorf("%w: %q", ErrInvalidMagnitude, digits)}
	}

	return Command{Direction: dir, Magnitude: int(n), Raw: raw}, nil
}

// Policy decides what ParseLines does with a malformed line.
type Policy int

const (
	// PolicyAbort stops at the first malformed line.
	PolicyAbort Policy = iota
	// PolicySkip drops malformed lines and reports them to the caller.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps the textual form used by the CLI and run files.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("unknown parse error policy %q: must be 'abort' or 'skip'", s)
	}
}

// ParseLines parses one command per line. Under PolicyAbort the first failure
// is returned as a *ParseError. Under PolicySkip failures are collected in the
// second return value and the error is always nil.
func ParseLines(lines []string, policy Policy) ([]Command, []*ParseError, error) {
	cmds := make([]Command, 0, len(lines))
	var skipped []*ParseError

	for i, line := range lines {
		cmd, err := Parse(line)
		if err == nil {
			cmds = append(cmds, cmd)
			continue
		}

		var perr *ParseError
		if !errors.As(err, &perr) {
			return nil, nil, err
		}
		perr.Line = i + 1

		if policy == PolicyAbort {
			return nil, nil, perr
		}
		skipped = append(skipped, perr)
	}

	return cmds, skipped, nil
}
