package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/dialgo/internal/sequence"
)

// writeStep prints one progress line, e.g.
// "- The dial is rotated L68 to point at 82; during this rotation, it points at 0 1 times."
func writeStep(w io.Writer, s sequence.Step) {
	var b strings.Builder
	fmt.Fprintf(&b, "- The dial is rotated %s to point at %d", s.Command.Raw, s.Turn.Position)
	if n := s.Turn.Crossings(); n > 0 {
		fmt.Fprintf(&b, "; during this rotation, it points at 0 %d times", n)
	}
	b.WriteString(".\n")
	io.WriteString(w, b.String())
}

func writeSummary(w io.Writer, res sequence.Result) {
	fmt.Fprintf(w, "The secret code is\n\t- Part 1: %d\n\t- Part 2: %d\n", res.ZeroLandings, res.Crossings)
}
