package rotation

import "fmt"

// Direction is the way the dial is turned.
type Direction int

const (
	// Left turns the dial towards lower numbers.
	Left Direction = iota + 1
	// Right turns the dial towards higher numbers.
	Right
)

// String returns the single-letter form used in input files.
func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Command is a single parsed rotation instruction.
type Command struct {
	Direction Direction
	Magnitude int
	// Raw is the token the command was parsed from, without surrounding whitespace.
	Raw string
}

// String returns the canonical token for the command.
func (c Command) String() string {
	return fmt.Sprintf("%s%d", c.Direction, c.Magnitude)
}
