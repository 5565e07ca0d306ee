package fsutil

import (
	"bufio"
	"fmt"
	"os"
)

// MaxLineLength is the longest line ReadLines accepts, in bytes.
const MaxLineLength = 1 << 20

// ReadLines reads a text file into a slice of lines. bufio.ScanLines strips
// "\n" and "\r\n" terminators and yields no empty line after a final newline.
// A line longer than MaxLineLength fails with bufio.ErrTooLong and its line number.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s at line %d: %w", path, len(lines)+1, err)
	}
	return lines, nil
}
