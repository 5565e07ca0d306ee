// Package dial models the circular safe dial: a counter over 0..modulus-1
// that is turned by rotation commands and reports how often it touches zero.
package dial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/dialgo/internal/rotation"
)

// ErrUnknownPreset is returned by ParsePreset for names other than the
// supported presets.
var ErrUnknownPreset = errors.New("unknown dial preset")

// Preset selects one of the fixed dial configurations.
type Preset string

const (
	// PresetDefault is the 100-position dial starting at 50.
	PresetDefault Preset = "default"
	// PresetClock is the 12-position dial starting at 6.
	PresetClock Preset = "clock"
)

type presetSpec struct {
	start   int
	modulus int
}

var presets = map[Preset]presetSpec{
	PresetDefault: {start: 50, modulus: 100},
	PresetClock:   {start: 6, modulus: 12},
}

// Presets lists the supported preset names in a stable order.
func Presets() []Preset {
	return []Preset{PresetDefault, PresetClock}
}

func presetList() string {
	names := make([]string, 0, len(presets))
	for _, p := range Presets() {
		names = append(names, "'"+string(p)+"'")
	}
	return strings.Join(names, ", ")
}

// ParsePreset maps a preset name to a Preset. The empty string selects
// PresetDefault.
func ParsePreset(name string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return PresetDefault, nil
	}
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownPreset, name, presetList())
	}
	return p, nil
}

// Dial holds the current position of the dial.
type Dial struct {
	position int
	modulus  int
}

// New returns a dial set to the starting position of the given preset.
func New(p Preset) (*Dial, error) {
	spec, ok := presets[p]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, string(p))
	}
	return &Dial{position: spec.start, modulus: spec.modulus}, nil
}

// Position returns the current position.
func (d *Dial) Position() int { return d.position }

// Modulus returns the number of positions on the dial.
func (d *Dial) Modulus() int { return d.modulus }

// Turn describes the outcome of a single rotation.
type Turn struct {
	From     int
	Position int

	// FullLaps is magnitude / modulus.
	FullLaps int
	// Overflow is 1 when a right rotation's remainder wrapped past zero.
	Overflow int
	// Underflow is 1 when a left rotation's remainder wrapped past zero.
	Underflow int
	// AtZero is 1 when the rotation ended on zero.
	AtZero int
}

// Crossings is the number of times the rotation landed on or passed zero.
func (t Turn) Crossings() int {
	return t.FullLaps + t.Overflow + t.Underflow + t.AtZero
}

// Rotate applies cmd to the dial and returns the resulting Turn.
//
// The wrap checks use a strict '>' against the modulus: a remainder that ends
// exactly on zero is counted once, by AtZero.
func (d *Dial) Rotate(cmd rotation.Command) Turn {
	m := d.modulus
	from := d.position
	n := cmd.Magnitude % m

	var to int
	switch cmd.Direction {
	case rotation.Right:
		to = (from + n) % m
	case rotation.Left:
		to = from - n
		if to < 0 {
			to += m
		}
	default:
		panic(fmt.Sprintf("dial: invalid direction %v", cmd.Direction))
	}

	turn := Turn{
		From:     from,
		Position: to,
		FullLaps: cmd.Magnitude / m,
	}
	if cmd.Direction == rotation.Right && from+n > m {
		turn.Overflow = 1
	}
	if cmd.Direction == rotation.Left && to+n > m {
		turn.Underflow = 1
	}
	if to == 0 {
		turn.AtZero = 1
	}

	d.position = to
	return turn
}
